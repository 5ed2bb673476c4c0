// Package linksession tracks the lifecycle of one bank-linking attempt as an
// explicit object instead of process-wide flags, so concurrent sessions never
// leak state into each other.
package linksession

import (
	"fmt"
	"sync"
)

// State is the current phase of a linking session.
type State string

const (
	StateIdle          State = "idle"
	StateFetchingToken State = "fetchingToken"
	StateReady         State = "ready"
	StateError         State = "error"
)

// Session holds the link token and phase for a single user's linking attempt.
// Safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	state     State
	linkToken string
	err       error
}

// New returns an idle session.
func New() *Session {
	return &Session{state: StateIdle}
}

// Begin moves the session into the fetchingToken phase. It fails when a token
// fetch is already in flight, so only one fetch runs per session.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateFetchingToken {
		return fmt.Errorf("link token fetch already in progress")
	}
	s.state = StateFetchingToken
	s.linkToken = ""
	s.err = nil
	return nil
}

// Ready records a fetched link token and marks the session ready.
func (s *Session) Ready(linkToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateReady
	s.linkToken = linkToken
	s.err = nil
}

// Fail records a fetch failure.
func (s *Session) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateError
	s.linkToken = ""
	s.err = err
}

// Reset returns the session to idle, discarding any token or error.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	s.linkToken = ""
	s.err = nil
}

// State returns the current phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LinkToken returns the fetched token, or empty when the session is not ready.
func (s *Session) LinkToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.linkToken
}

// Err returns the recorded failure, or nil.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Store hands out one session per user id. Safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Get returns the session for a user, creating it on first use.
func (st *Store) Get(userID string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[userID]
	if !ok {
		s = New()
		st.sessions[userID] = s
	}
	return s
}
