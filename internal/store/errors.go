package store

import "fmt"

// ValidationError rejects user input before any state change. Field names the
// offending payload field; Reason is suitable for inline display.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// PersistenceError reports a storage read or write failure. The in-memory
// collection stays authoritative; callers surface it as a transient
// notification rather than aborting.
type PersistenceError struct {
	Op  string // "load" or "save"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
