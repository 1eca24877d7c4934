// Package todo is the todo-list flavor of the record store: validation rules
// for todo text plus the status-filtered view.
package todo

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/maiwenn-k/jot/internal/model"
	"github.com/maiwenn-k/jot/internal/storage"
	"github.com/maiwenn-k/jot/internal/store"
)

// MaxTextLen bounds the todo text, in characters.
const MaxTextLen = 200

// Filter restricts List by completion status.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter maps a user-supplied filter name, defaulting empty to all.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterActive:
		return FilterActive, nil
	case FilterCompleted:
		return FilterCompleted, nil
	}
	return "", fmt.Errorf("unknown filter: %q", s)
}

// Controller owns the todo collection. Construct with New, then Hydrate.
type Controller struct {
	store *store.Store[model.Todo]
}

func New(kv storage.KV, opt store.Options) *Controller {
	return &Controller{store: store.New[model.Todo](kv, model.TodosKey, opt)}
}

// Hydrate loads persisted todos. See store.Store.Hydrate for failure modes.
func (c *Controller) Hydrate() error { return c.store.Hydrate() }

// Add validates text, prepends a fresh todo and persists. A ValidationError
// means nothing changed; a PersistenceError means the todo was still added
// in memory and is returned alongside the error.
func (c *Controller) Add(text string) (model.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Todo{}, &store.ValidationError{Field: "text", Reason: "cannot be empty"}
	}
	if utf8.RuneCountInString(text) > MaxTextLen {
		return model.Todo{}, &store.ValidationError{
			Field:  "text",
			Reason: fmt.Sprintf("must be at most %d characters", MaxTextLen),
		}
	}
	t := model.Todo{
		ID:        c.store.NextID(),
		Text:      text,
		CreatedAt: c.store.Now(),
	}
	return t, c.store.Insert(t)
}

// Toggle flips the completed flag of the todo with the given id and persists.
// No-op when the id is absent.
func (c *Controller) Toggle(id int64) error {
	t, ok := c.store.Find(id)
	if !ok {
		return nil
	}
	t.Completed = !t.Completed
	return c.store.Replace(t)
}

// Delete removes the todo with the given id. No-op when absent.
func (c *Controller) Delete(id int64) error {
	return c.store.Remove(id)
}

// List applies the search term first, then the status filter, preserving
// collection order (newest first).
func (c *Controller) List(f Filter, term string) []model.Todo {
	matched := c.store.Search(term)
	if f == FilterAll || f == "" {
		return matched
	}
	wantDone := f == FilterCompleted
	out := make([]model.Todo, 0, len(matched))
	for _, t := range matched {
		if t.Completed == wantDone {
			out = append(out, t)
		}
	}
	return out
}

// Counts reports the totals shown in status headers.
func (c *Controller) Counts() (total, completed int) {
	for _, t := range c.store.All() {
		total++
		if t.Completed {
			completed++
		}
	}
	return
}
