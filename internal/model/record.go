package model

import (
	"strings"
	"time"
)

// Storage keys. Each key holds one JSON array — the whole collection is
// written and read as a single blob.
const (
	TodosKey           = "todos"
	ContactMessagesKey = "contactMessages"
)

// Todo is the domain model for a todo entry.
type Todo struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecordID implements store.Record.
func (t Todo) RecordID() int64 { return t.ID }

// SearchText returns the field live search matches against.
func (t Todo) SearchText() string { return t.Text }

// Valid reports whether a hydrated entry has the required shape.
// Entries failing this check are dropped during hydration, not fatal.
func (t Todo) Valid() bool {
	return t.ID > 0 && strings.TrimSpace(t.Text) != "" && !t.CreatedAt.IsZero()
}

// ContactMessage represents a message submitted via the contact form.
type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (m ContactMessage) RecordID() int64 { return m.ID }

// SearchText spans name, email and message so a search term can hit any of them.
func (m ContactMessage) SearchText() string {
	return m.Name + " " + m.Email + " " + m.Message
}

func (m ContactMessage) Valid() bool {
	return m.ID > 0 &&
		strings.TrimSpace(m.Name) != "" &&
		strings.TrimSpace(m.Email) != "" &&
		strings.TrimSpace(m.Message) != "" &&
		!m.Timestamp.IsZero()
}
