package todo_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maiwenn-k/jot/internal/storage/memkv"
	"github.com/maiwenn-k/jot/internal/store"
	"github.com/maiwenn-k/jot/internal/todo"
)

func newController(t *testing.T, kv *memkv.KV) *todo.Controller {
	t.Helper()
	var id int64
	c := todo.New(kv, store.Options{
		Now:    func() time.Time { return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC) },
		NextID: func() int64 { id++; return id },
	})
	require.NoError(t, c.Hydrate())
	return c
}

func TestAddPrependsValidTodo(t *testing.T) {
	c := newController(t, memkv.New())

	before := len(c.List(todo.FilterAll, ""))
	added, err := c.Add("  Buy milk  ")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", added.Text, "text is trimmed")
	assert.False(t, added.Completed)
	assert.NotZero(t, added.ID)

	all := c.List(todo.FilterAll, "")
	require.Len(t, all, before+1)
	assert.Equal(t, added, all[0], "new todo sits at the front")
}

func TestAddRejectsEmptyText(t *testing.T) {
	c := newController(t, memkv.New())

	_, err := c.Add("   ")
	var ve *store.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "text", ve.Field)
	assert.Empty(t, c.List(todo.FilterAll, ""), "state unchanged")
}

func TestAddTextLengthBoundary(t *testing.T) {
	c := newController(t, memkv.New())

	_, err := c.Add(strings.Repeat("x", 200))
	assert.NoError(t, err, "exactly 200 characters is accepted")

	_, err = c.Add(strings.Repeat("x", 201))
	var ve *store.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "text", ve.Field)
}

func TestToggleFlipsAndIsIdempotentInPairs(t *testing.T) {
	c := newController(t, memkv.New())
	added, err := c.Add("flip me")
	require.NoError(t, err)

	require.NoError(t, c.Toggle(added.ID))
	assert.True(t, c.List(todo.FilterAll, "")[0].Completed)

	require.NoError(t, c.Toggle(added.ID))
	assert.False(t, c.List(todo.FilterAll, "")[0].Completed, "double toggle restores the flag")
}

func TestToggleAbsentIDIsNoOp(t *testing.T) {
	c := newController(t, memkv.New())
	_, err := c.Add("keep")
	require.NoError(t, err)

	require.NoError(t, c.Toggle(404))
	all := c.List(todo.FilterAll, "")
	require.Len(t, all, 1)
	assert.False(t, all[0].Completed)
}

func TestDeleteAbsentIDIsNoOp(t *testing.T) {
	c := newController(t, memkv.New())
	_, err := c.Add("keep")
	require.NoError(t, err)

	require.NoError(t, c.Delete(404))
	assert.Len(t, c.List(todo.FilterAll, ""), 1)
}

func TestListFilters(t *testing.T) {
	c := newController(t, memkv.New())
	a, err := c.Add("active one")
	require.NoError(t, err)
	_, err = c.Add("active two")
	require.NoError(t, err)
	done, err := c.Add("done one")
	require.NoError(t, err)
	require.NoError(t, c.Toggle(done.ID))

	all := c.List(todo.FilterAll, "")
	assert.Len(t, all, 3)

	active := c.List(todo.FilterActive, "")
	require.Len(t, active, 2)
	for _, it := range active {
		assert.False(t, it.Completed)
	}
	assert.Equal(t, a.ID, active[1].ID, "order preserved")

	completed := c.List(todo.FilterCompleted, "")
	require.Len(t, completed, 1)
	assert.Equal(t, done.ID, completed[0].ID)
}

func TestListSearchThenFilter(t *testing.T) {
	c := newController(t, memkv.New())
	_, err := c.Add("buy milk")
	require.NoError(t, err)
	match, err := c.Add("buy MILK again")
	require.NoError(t, err)
	_, err = c.Add("walk dog")
	require.NoError(t, err)
	require.NoError(t, c.Toggle(match.ID))

	got := c.List(todo.FilterCompleted, "milk")
	require.Len(t, got, 1)
	assert.Equal(t, match.ID, got[0].ID)

	for _, it := range c.List(todo.FilterAll, "milk") {
		assert.Contains(t, strings.ToLower(it.Text), "milk")
	}
}

func TestCounts(t *testing.T) {
	c := newController(t, memkv.New())
	_, err := c.Add("one")
	require.NoError(t, err)
	two, err := c.Add("two")
	require.NoError(t, err)
	require.NoError(t, c.Toggle(two.ID))

	total, completed := c.Counts()
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, completed)
}

func TestAddSurvivesPersistenceFailure(t *testing.T) {
	kv := memkv.New()
	c := newController(t, kv)
	kv.FailSet = errors.New("write denied")

	_, err := c.Add("kept in memory")
	var pe *store.PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Len(t, c.List(todo.FilterAll, ""), 1)
}

func TestRoundTripThroughStorage(t *testing.T) {
	kv := memkv.New()
	c := newController(t, kv)
	_, err := c.Add("persist me")
	require.NoError(t, err)
	done, err := c.Add("and me")
	require.NoError(t, err)
	require.NoError(t, c.Toggle(done.ID))
	want := c.List(todo.FilterAll, "")

	fresh := newController(t, kv)
	assert.Equal(t, want, fresh.List(todo.FilterAll, ""))
}

func TestParseFilter(t *testing.T) {
	f, err := todo.ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, todo.FilterAll, f)

	f, err = todo.ParseFilter("completed")
	require.NoError(t, err)
	assert.Equal(t, todo.FilterCompleted, f)

	_, err = todo.ParseFilter("bogus")
	assert.Error(t, err)
}
