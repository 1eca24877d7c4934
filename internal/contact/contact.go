// Package contact is the contact-form flavor of the record store. The
// per-field checks are exported separately so the form can validate fields
// as the user types, ahead of submit.
package contact

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/maiwenn-k/jot/internal/model"
	"github.com/maiwenn-k/jot/internal/storage"
	"github.com/maiwenn-k/jot/internal/store"
)

const (
	MinNameLen    = 2
	MinMessageLen = 10
)

// Basic shape check: something before the @, something after, and a dot in
// the domain part. Not RFC 5322, on purpose.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CheckName validates the (trimmed) name field.
func CheckName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &store.ValidationError{Field: "name", Reason: "cannot be empty"}
	}
	if utf8.RuneCountInString(name) < MinNameLen {
		return &store.ValidationError{
			Field:  "name",
			Reason: fmt.Sprintf("must be at least %d characters", MinNameLen),
		}
	}
	return nil
}

// CheckEmail validates the (trimmed) email field.
func CheckEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return &store.ValidationError{Field: "email", Reason: "cannot be empty"}
	}
	if !emailRe.MatchString(email) {
		return &store.ValidationError{Field: "email", Reason: "is not a valid address"}
	}
	return nil
}

// CheckMessage validates the (trimmed) message field.
func CheckMessage(message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return &store.ValidationError{Field: "message", Reason: "cannot be empty"}
	}
	if utf8.RuneCountInString(message) < MinMessageLen {
		return &store.ValidationError{
			Field:  "message",
			Reason: fmt.Sprintf("must be at least %d characters", MinMessageLen),
		}
	}
	return nil
}

// Controller owns the contact-message collection.
type Controller struct {
	store *store.Store[model.ContactMessage]
}

func New(kv storage.KV, opt store.Options) *Controller {
	return &Controller{store: store.New[model.ContactMessage](kv, model.ContactMessagesKey, opt)}
}

func (c *Controller) Hydrate() error { return c.store.Hydrate() }

// Submit validates all fields, prepends a fresh message and persists. The
// first failing field's ValidationError is returned and nothing changes; a
// PersistenceError means the message was still recorded in memory.
func (c *Controller) Submit(name, email, message string) (model.ContactMessage, error) {
	if err := CheckName(name); err != nil {
		return model.ContactMessage{}, err
	}
	if err := CheckEmail(email); err != nil {
		return model.ContactMessage{}, err
	}
	if err := CheckMessage(message); err != nil {
		return model.ContactMessage{}, err
	}
	m := model.ContactMessage{
		ID:        c.store.NextID(),
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Message:   strings.TrimSpace(message),
		Timestamp: c.store.Now(),
	}
	return m, c.store.Insert(m)
}

// Delete removes the message with the given id. No-op when absent.
func (c *Controller) Delete(id int64) error {
	return c.store.Remove(id)
}

// List returns messages matching term (case-insensitive, over name, email and
// message), newest first. Empty term returns everything.
func (c *Controller) List(term string) []model.ContactMessage {
	return c.store.Search(term)
}

// Len reports how many messages are stored.
func (c *Controller) Len() int { return c.store.Len() }
