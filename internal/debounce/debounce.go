// Package debounce coalesces rapid repeated triggers into one deferred action
// per key. Rescheduling a key silently discards its pending action and
// restarts the delay; keys are independent of each other.
package debounce

import (
	"sync"
	"time"
)

type Scheduler struct {
	mu      sync.Mutex
	pending map[string]*time.Timer
}

func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(map[string]*time.Timer)}
}

// Schedule runs action after delay of quiescence on key. A later Schedule on
// the same key before the delay elapses cancels this one entirely; at most
// one action is pending per key at any instant.
func (s *Scheduler) Schedule(key string, delay time.Duration, action func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.pending[key]; ok {
		t.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		s.mu.Lock()
		// A reschedule may have replaced us between firing and locking;
		// only the current timer gets to run and clear the slot.
		current := s.pending[key] == timer
		if current {
			delete(s.pending, key)
		}
		s.mu.Unlock()
		if current {
			action()
		}
	})
	s.pending[key] = timer
}

// Cancel discards the pending action under key, if any.
func (s *Scheduler) Cancel(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.pending[key]; ok {
		t.Stop()
		delete(s.pending, key)
	}
}

// Stop cancels every pending action.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, t := range s.pending {
		t.Stop()
		delete(s.pending, key)
	}
}
