package session

import (
	"context"
	"sync"
)

// Runtime is the boundary to the external agent runtime that owns the
// live voice session: audio transport, turn-taking, interruption
// handling. This package hands a fully-resolved Session across once and
// never calls back in.
type Runtime interface {
	// StartSession hands the session to the runtime and blocks until
	// the runtime's session ends or ctx is cancelled.
	StartSession(ctx context.Context, s *Session) error
}

// MockRuntime implements Runtime for testing.
// The StartFunc field can be customized; calls are tracked.
type MockRuntime struct {
	// StartFunc is called when StartSession is invoked.
	// If nil, StartSession returns nil immediately.
	StartFunc func(ctx context.Context, s *Session) error

	mu       sync.Mutex
	sessions []*Session
}

// NewMockRuntime creates a mock runtime that accepts every session.
func NewMockRuntime() *MockRuntime {
	return &MockRuntime{}
}

// StartSession records the session and calls StartFunc.
func (m *MockRuntime) StartSession(ctx context.Context, s *Session) error {
	m.mu.Lock()
	m.sessions = append(m.sessions, s)
	m.mu.Unlock()
	if m.StartFunc != nil {
		return m.StartFunc(ctx, s)
	}
	return nil
}

// Sessions returns all sessions handed to the runtime so far.
func (m *MockRuntime) Sessions() []*Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*Session(nil), m.sessions...)
}

// StartCount returns how many session starts were attempted.
func (m *MockRuntime) StartCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Reset clears tracked sessions.
func (m *MockRuntime) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = nil
}
