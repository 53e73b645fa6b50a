// Package session manages live editing sessions for the HTTP API.
//
// A session ties a UUID to one running workbench so a stateless client can
// edit, visualize, and convert the same automaton across requests. Sessions
// carry a sliding lease: every successful lookup extends it, and a janitor
// sweeps sessions whose lease ran out, closing their workbenches.
//
// Sessions are process-local by construction. A workbench is a live actor
// with in-flight conversions, not data, so there is nothing meaningful to
// persist or share between instances; durable automata belong to pkg/store.
//
// # Usage
//
//	manager := session.NewManager(converter, session.DefaultTTL)
//	defer manager.Close()
//
//	sess, err := manager.Create(automaton.Draft{})
//	if err != nil {
//		return err
//	}
//
//	sess, err = manager.Get(sess.ID)
//	switch {
//	case errors.Is(err, session.ErrNotFound):
//		// unknown ID
//	case errors.Is(err, session.ErrExpired):
//		// lease ran out; the workbench is already closed
//	}
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/nfalab/machina/pkg/workbench"
)

// Sentinel errors for session lookups.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("session not found")

	// ErrExpired is returned when a session's lease ran out. The session is
	// removed and its workbench closed before this is returned.
	ErrExpired = errors.New("session expired")

	// ErrClosed is returned by Create after the manager shut down.
	ErrClosed = errors.New("session manager closed")
)

// DefaultTTL is the default session lease. Each successful Get renews it.
const DefaultTTL = 30 * time.Minute

// Session is one live editing session: a workbench plus its lease.
type Session struct {
	ID        string
	Workbench *workbench.Workbench
	CreatedAt time.Time

	mu        sync.Mutex
	expiresAt time.Time
}

// ExpiresAt returns the current lease deadline.
func (s *Session) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiresAt
}

// IsExpired reports whether the lease has run out.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt())
}

// touch renews the lease for another ttl from now.
func (s *Session) touch(ttl time.Duration) {
	s.mu.Lock()
	s.expiresAt = time.Now().Add(ttl)
	s.mu.Unlock()
}
