package intent

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// SessionMemory is the per-session context snapshot the classifier reads and
// writes. One logical writer per session; readers get a copy.
type SessionMemory struct {
	SessionID        string
	LastQuery        string
	LastIntent       string
	HasSearchContext bool
	UpdatedAt        time.Time
}

// Memory stores SessionMemory entries with a TTL. The go-cache janitor is
// disabled; expiry is enforced by an explicit, cancellable sweep so shutdown
// can stop it deterministically.
type Memory struct {
	cache *cache.Cache
}

const DefaultMemoryTTL = 1 * time.Hour

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultMemoryTTL
	}
	// cleanupInterval <= 0 keeps the internal janitor off
	return &Memory{cache: cache.New(ttl, 0)}
}

// Snapshot returns a copy of the session context, or false when none exists
// (or it already expired).
func (m *Memory) Snapshot(sessionID string) (SessionMemory, bool) {
	if x, found := m.cache.Get(sessionID); found {
		return *(x.(*SessionMemory)), true
	}
	return SessionMemory{}, false
}

// Update replaces the session entry wholesale (single-writer discipline).
func (m *Memory) Update(mem SessionMemory) {
	mem.UpdatedAt = time.Now()
	m.cache.Set(mem.SessionID, &mem, cache.DefaultExpiration)
}

// MarkSearchContext flags that a document search produced context for this
// session, without touching the rest of the snapshot.
func (m *Memory) MarkSearchContext(sessionID string, has bool) {
	mem, _ := m.Snapshot(sessionID)
	mem.SessionID = sessionID
	mem.HasSearchContext = has
	m.Update(mem)
}

func (m *Memory) Delete(sessionID string) {
	m.cache.Delete(sessionID)
}

func (m *Memory) Len() int {
	return m.cache.ItemCount()
}

// Sweep evicts expired entries immediately.
func (m *Memory) Sweep() {
	m.cache.DeleteExpired()
}

// Run sweeps on a fixed interval until ctx is cancelled.
func (m *Memory) Run(ctx context.Context, interval time.Duration) {
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
