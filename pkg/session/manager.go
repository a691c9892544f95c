package session

import (
	"context"
	"sync"
	"time"
)

// Exchange is one turn of conversation held in the fast-path cache.
type Exchange struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	DefaultHistoryCap = 5
	DefaultTTL        = 1 * time.Hour
)

// Manager keeps a bounded rolling history per session. It is a non-durable
// prompt-construction cache, distinct from the durable conversation audit
// trail; rebuilding it empty after a restart is safe.
//
// Same-session mutations are serialized by a per-session mutex; distinct
// sessions never contend on anything but the short map lookup.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*state
	cap      int
	ttl      time.Duration
}

type state struct {
	mu         sync.Mutex
	turns      []Exchange
	lastActive time.Time
}

func NewManager(historyCap int, ttl time.Duration) *Manager {
	if historyCap <= 0 {
		historyCap = DefaultHistoryCap
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		sessions: make(map[string]*state),
		cap:      historyCap,
		ttl:      ttl,
	}
}

// History returns up to cap most recent turns, oldest first. A copy is
// returned; callers never see internal slices.
func (m *Manager) History(sessionID string) []Exchange {
	m.mu.RLock()
	s, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	out := make([]Exchange, len(s.turns))
	copy(out, s.turns)
	return out
}

// Append adds a turn, creating the session lazily and dropping the oldest
// turn once the cap is exceeded.
func (m *Manager) Append(sessionID string, ex Exchange) {
	s := m.getOrCreate(sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	s.turns = append(s.turns, ex)
	if len(s.turns) > m.cap {
		s.turns = s.turns[len(s.turns)-m.cap:]
	}
}

// Delete drops a session immediately.
func (m *Manager) Delete(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) getOrCreate(sessionID string) *state {
	m.mu.RLock()
	s, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok = m.sessions[sessionID]; ok {
		return s
	}
	s = &state{lastActive: time.Now()}
	m.sessions[sessionID] = s
	return s
}

// Sweep evicts sessions inactive beyond the TTL and returns the eviction count.
func (m *Manager) Sweep() int {
	cutoff := time.Now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	evicted := 0
	for id, s := range m.sessions {
		s.mu.Lock()
		stale := s.lastActive.Before(cutoff)
		s.mu.Unlock()
		if stale {
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Run sweeps on a fixed interval until ctx is cancelled.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}
