package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nfalab/machina/pkg/automaton"
	"github.com/nfalab/machina/pkg/workbench"
)

// janitorInterval is how often the background sweep runs.
const janitorInterval = time.Minute

// Manager owns every live session. It hands out UUIDs, enforces the lease,
// and closes workbenches when their session goes away, so workbench
// goroutines never outlive the session that created them.
type Manager struct {
	converter workbench.Converter
	ttl       time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool

	done chan struct{}
	stop sync.Once
}

// NewManager creates a manager whose sessions live for ttl after their last
// use. A ttl of zero or less means DefaultTTL. The background janitor starts
// immediately and runs until Close.
func NewManager(converter workbench.Converter, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Manager{
		converter: converter,
		ttl:       ttl,
		sessions:  make(map[string]*Session),
		done:      make(chan struct{}),
	}
	go m.janitor()
	return m
}

// Create starts a new session seeded with draft.
func (m *Manager) Create(draft automaton.Draft) (*Session, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sess := &Session{
		ID:        id.String(),
		Workbench: workbench.New(m.converter, draft),
		CreatedAt: now,
		expiresAt: now.Add(m.ttl),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		sess.Workbench.Close()
		return nil, ErrClosed
	}
	m.sessions[sess.ID] = sess
	return sess, nil
}

// Get looks up a session and renews its lease. An expired session is
// removed, its workbench closed, and ErrExpired returned.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	expired := ok && sess.IsExpired()
	if expired {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return nil, ErrNotFound
	}
	if expired {
		sess.Workbench.Close()
		return nil, ErrExpired
	}

	sess.touch(m.ttl)
	return sess, nil
}

// Delete removes a session and closes its workbench. Deleting an unknown ID
// is a no-op.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		sess.Workbench.Close()
	}
}

// Len returns the number of live sessions, expired ones included until the
// next sweep.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep removes every expired session, closing their workbenches, and
// returns how many it removed. The janitor calls this periodically; it is
// exported so callers can force a sweep.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	var expired []*Session
	for id, sess := range m.sessions {
		if sess.IsExpired() {
			expired = append(expired, sess)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, sess := range expired {
		sess.Workbench.Close()
	}
	return len(expired)
}

// Close stops the janitor and closes every remaining workbench. The manager
// accepts no new sessions afterwards.
func (m *Manager) Close() {
	m.stop.Do(func() { close(m.done) })

	m.mu.Lock()
	m.closed = true
	remaining := make([]*Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		remaining = append(remaining, sess)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, sess := range remaining {
		sess.Workbench.Close()
	}
}

func (m *Manager) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.Sweep()
		case <-m.done:
			return
		}
	}
}
