package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerHistoryCapDropsOldest(t *testing.T) {
	m := NewManager(5, time.Hour)

	for i := 1; i <= 6; i++ {
		m.Append("s1", Exchange{Role: "user", Content: fmt.Sprintf("turn-%d", i)})
	}

	history := m.History("s1")
	require.Len(t, history, 5)
	assert.Equal(t, "turn-2", history[0].Content, "oldest turn must be dropped first")
	assert.Equal(t, "turn-6", history[4].Content)
}

func TestManagerHistoryIsACopy(t *testing.T) {
	m := NewManager(5, time.Hour)
	m.Append("s1", Exchange{Role: "user", Content: "original"})

	history := m.History("s1")
	history[0].Content = "mutated"

	assert.Equal(t, "original", m.History("s1")[0].Content)
}

func TestManagerUnknownSession(t *testing.T) {
	m := NewManager(5, time.Hour)
	assert.Nil(t, m.History("never-seen"))
	assert.Equal(t, 0, m.Len())
}

func TestManagerDelete(t *testing.T) {
	m := NewManager(5, time.Hour)
	m.Append("s1", Exchange{Role: "user", Content: "x"})
	m.Delete("s1")

	assert.Nil(t, m.History("s1"))
	assert.Equal(t, 0, m.Len())
}

func TestManagerSweepEvictsIdleSessions(t *testing.T) {
	m := NewManager(5, 20*time.Millisecond)
	m.Append("stale", Exchange{Role: "user", Content: "x"})

	time.Sleep(50 * time.Millisecond)
	m.Append("fresh", Exchange{Role: "user", Content: "y"})

	evicted := m.Sweep()
	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, m.Len())
	assert.Nil(t, m.History("stale"))
	require.Len(t, m.History("fresh"), 1)
}

func TestManagerConcurrentAppends(t *testing.T) {
	m := NewManager(50, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sessionID := fmt.Sprintf("s%d", n%2)
			for j := 0; j < 10; j++ {
				m.Append(sessionID, Exchange{Role: "user", Content: "x"})
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 2, m.Len())
	assert.Len(t, m.History("s0"), 50)
	assert.Len(t, m.History("s1"), 50)
}
