package intent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docucortex-be/internal/constant"
)

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory(time.Hour)

	_, ok := m.Snapshot("missing")
	assert.False(t, ok)

	m.Update(SessionMemory{
		SessionID:  "s1",
		LastQuery:  "trouve le rapport",
		LastIntent: constant.IntentDocumentSearch,
	})

	snap, ok := m.Snapshot("s1")
	require.True(t, ok)
	assert.Equal(t, "trouve le rapport", snap.LastQuery)
	assert.Equal(t, constant.IntentDocumentSearch, snap.LastIntent)
	assert.False(t, snap.UpdatedAt.IsZero())
}

func TestMemorySnapshotReturnsCopy(t *testing.T) {
	m := NewMemory(time.Hour)
	m.Update(SessionMemory{SessionID: "s1", LastIntent: constant.IntentConversation})

	snap, _ := m.Snapshot("s1")
	snap.LastIntent = "mutated"

	again, _ := m.Snapshot("s1")
	assert.Equal(t, constant.IntentConversation, again.LastIntent)
}

func TestMemoryMarkSearchContext(t *testing.T) {
	m := NewMemory(time.Hour)
	m.Update(SessionMemory{SessionID: "s1", LastQuery: "q", LastIntent: constant.IntentDocumentSearch})

	m.MarkSearchContext("s1", true)

	snap, ok := m.Snapshot("s1")
	require.True(t, ok)
	assert.True(t, snap.HasSearchContext)
	assert.Equal(t, "q", snap.LastQuery, "flagging context must keep the rest of the snapshot")

	// Works for sessions that never classified anything yet.
	m.MarkSearchContext("fresh", true)
	snap, ok = m.Snapshot("fresh")
	require.True(t, ok)
	assert.True(t, snap.HasSearchContext)
}

func TestMemoryTTLEviction(t *testing.T) {
	m := NewMemory(20 * time.Millisecond)
	m.Update(SessionMemory{SessionID: "s1"})
	m.Update(SessionMemory{SessionID: "s2"})
	assert.Equal(t, 2, m.Len())

	time.Sleep(50 * time.Millisecond)

	_, ok := m.Snapshot("s1")
	assert.False(t, ok, "expired entry must not be readable")

	m.Sweep()
	assert.Equal(t, 0, m.Len())
}

func TestMemoryDelete(t *testing.T) {
	m := NewMemory(time.Hour)
	m.Update(SessionMemory{SessionID: "s1"})
	m.Delete("s1")

	_, ok := m.Snapshot("s1")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}
