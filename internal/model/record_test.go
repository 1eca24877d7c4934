package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maiwenn-k/jot/internal/model"
)

func TestTodoWireShape(t *testing.T) {
	todo := model.Todo{
		ID:        7,
		Text:      "ship it",
		Completed: true,
		CreatedAt: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	}
	b, err := json.Marshal(todo)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":7,"text":"ship it","completed":true,"createdAt":"2026-03-14T09:26:53Z"}`,
		string(b))
}

func TestContactMessageWireShape(t *testing.T) {
	msg := model.ContactMessage{
		ID:        3,
		Name:      "Ada",
		Email:     "ada@example.org",
		Message:   "please call back",
		Timestamp: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	}
	b, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":3,"name":"Ada","email":"ada@example.org","message":"please call back","timestamp":"2026-03-14T09:26:53Z"}`,
		string(b))
}

func TestTodoValid(t *testing.T) {
	now := time.Now()
	assert.True(t, model.Todo{ID: 1, Text: "x", CreatedAt: now}.Valid())
	assert.False(t, model.Todo{ID: 0, Text: "x", CreatedAt: now}.Valid(), "missing id")
	assert.False(t, model.Todo{ID: 1, Text: "  ", CreatedAt: now}.Valid(), "blank text")
	assert.False(t, model.Todo{ID: 1, Text: "x"}.Valid(), "zero timestamp")
}

func TestContactMessageValid(t *testing.T) {
	now := time.Now()
	ok := model.ContactMessage{ID: 1, Name: "Ada", Email: "a@b.co", Message: "hello there", Timestamp: now}
	assert.True(t, ok.Valid())

	missingEmail := ok
	missingEmail.Email = ""
	assert.False(t, missingEmail.Valid())
}

func TestContactSearchTextSpansFields(t *testing.T) {
	m := model.ContactMessage{Name: "Ada", Email: "ada@example.org", Message: "invoice"}
	s := m.SearchText()
	assert.Contains(t, s, "Ada")
	assert.Contains(t, s, "example.org")
	assert.Contains(t, s, "invoice")
}
