package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// programSender feeds messages into the running program from timer goroutines
// (debounce firings). Messages sent before the program is attached are
// dropped; that can only happen during startup, before any keystroke.
type programSender struct {
	mu sync.Mutex
	p  *tea.Program
}

func (s *programSender) attach(p *tea.Program) {
	s.mu.Lock()
	s.p = p
	s.mu.Unlock()
}

func (s *programSender) Send(msg tea.Msg) {
	s.mu.Lock()
	p := s.p
	s.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}
