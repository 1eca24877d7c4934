package debounce_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maiwenn-k/jot/internal/debounce"
)

func TestLatestCallWins(t *testing.T) {
	s := debounce.NewScheduler()
	defer s.Stop()

	var aRan, bRan atomic.Bool
	done := make(chan struct{})

	s.Schedule("k", 80*time.Millisecond, func() { aRan.Store(true) })
	time.Sleep(30 * time.Millisecond)
	s.Schedule("k", 80*time.Millisecond, func() { bRan.Store(true); close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced action never fired")
	}
	// Wait past A's original deadline to be sure it stays cancelled.
	time.Sleep(120 * time.Millisecond)
	assert.False(t, aRan.Load(), "superseded action must never run")
	assert.True(t, bRan.Load())
}

func TestActionRunsAfterQuiescence(t *testing.T) {
	s := debounce.NewScheduler()
	defer s.Stop()

	start := time.Now()
	done := make(chan struct{})
	s.Schedule("k", 60*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("action never fired")
	}
	require.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
}

func TestKeysAreIndependent(t *testing.T) {
	s := debounce.NewScheduler()
	defer s.Stop()

	var fired atomic.Int32
	done := make(chan string, 2)
	s.Schedule("search", 40*time.Millisecond, func() { fired.Add(1); done <- "search" })
	s.Schedule("email", 40*time.Millisecond, func() { fired.Add(1); done <- "email" })

	// Rescheduling one key must not disturb the other.
	s.Schedule("search", 40*time.Millisecond, func() { fired.Add(1); done <- "search" })

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("pending actions never fired")
		}
	}
	assert.Equal(t, int32(2), fired.Load(), "one firing per key")
}

func TestCancelDiscardsPendingAction(t *testing.T) {
	s := debounce.NewScheduler()
	defer s.Stop()

	var ran atomic.Bool
	s.Schedule("k", 40*time.Millisecond, func() { ran.Store(true) })
	s.Cancel("k")

	time.Sleep(100 * time.Millisecond)
	assert.False(t, ran.Load())
}

func TestStopCancelsEverything(t *testing.T) {
	s := debounce.NewScheduler()

	var ran atomic.Int32
	s.Schedule("a", 40*time.Millisecond, func() { ran.Add(1) })
	s.Schedule("b", 40*time.Millisecond, func() { ran.Add(1) })
	s.Stop()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), ran.Load())
}

func TestRescheduleAfterFiringRunsAgain(t *testing.T) {
	s := debounce.NewScheduler()
	defer s.Stop()

	done := make(chan struct{}, 2)
	s.Schedule("k", 20*time.Millisecond, func() { done <- struct{}{} })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("first firing missing")
	}

	s.Schedule("k", 20*time.Millisecond, func() { done <- struct{}{} })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second firing missing")
	}
}
