package tui

import "sync"

const (
	statusLoading = "loading"
	statusSuccess = "success"
	statusError   = "error"
)

// Status is a panel.Notifier that keeps the latest notification for the
// status line. Panel operations run in tea.Cmd goroutines, so access is
// locked.
type Status struct {
	mu      sync.Mutex
	kind    string
	message string
}

func (s *Status) set(kind, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kind, s.message = kind, msg
}

func (s *Status) Loading(msg string) { s.set(statusLoading, msg+"...") }
func (s *Status) Success(msg string) { s.set(statusSuccess, msg) }
func (s *Status) Error(msg string)   { s.set(statusError, msg) }

// Current returns the latest notification kind and message.
func (s *Status) Current() (kind, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kind, s.message
}
