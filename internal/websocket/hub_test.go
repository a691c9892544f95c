package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docucortex-be/internal/pkg/logger"
)

func newTestHub() *Hub {
	h := NewHub(nil, logger.NewNopLogger())
	go h.Run()
	return h
}

func newTestClient(h *Hub, sessionID string, buffer int) *Client {
	return &Client{Hub: h, SessionID: sessionID, Send: make(chan []byte, buffer), done: make(chan struct{})}
}

func waitForClients(t *testing.T, h *Hub, sessionID string, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		return len(h.clients[sessionID]) == n
	}, time.Second, 5*time.Millisecond)
}

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case data := <-c.Send:
		return data
	case <-time.After(time.Second):
		t.Fatal("no broadcast received")
		return nil
	}
}

func isDone(c *Client) func() bool {
	return func() bool {
		select {
		case <-c.done:
			return true
		default:
			return false
		}
	}
}

func TestHubBroadcastReachesEverySessionClient(t *testing.T) {
	h := newTestHub()
	a := newTestClient(h, "s1", 4)
	b := newTestClient(h, "s1", 4)
	other := newTestClient(h, "s2", 4)
	h.register <- a
	h.register <- b
	h.register <- other
	waitForClients(t, h, "s1", 2)
	waitForClients(t, h, "s2", 1)

	h.BroadcastToSession("s1", map[string]interface{}{"type": "ai_message"})

	assert.Contains(t, string(receive(t, a)), "ai_message")
	assert.Contains(t, string(receive(t, b)), "ai_message")
	select {
	case <-other.Send:
		t.Fatal("broadcast leaked to another session")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnregisterSignalsClientWithoutClosingSend(t *testing.T) {
	h := newTestHub()
	c := newTestClient(h, "s1", 4)
	h.register <- c
	waitForClients(t, h, "s1", 1)

	h.unregister <- c
	require.Eventually(t, isDone(c), time.Second, 5*time.Millisecond)

	// A broadcast racing the removal must not panic on a closed channel:
	// Send stays open, the message is simply never drained.
	assert.NotPanics(t, func() {
		h.BroadcastToSession("s1", map[string]interface{}{"type": "ai_message"})
	})

	// A repeat unregister for an already removed client is a no-op.
	h.unregister <- c
	h.BroadcastToSession("s1", map[string]interface{}{"type": "ai_message"})
}

func TestHubDropsSlowConsumerViaDoneSignal(t *testing.T) {
	h := newTestHub()
	slow := newTestClient(h, "s1", 1)
	h.register <- slow
	waitForClients(t, h, "s1", 1)

	// First broadcast fills the buffer, the second trips the slow-consumer
	// path and detaches the client.
	h.BroadcastToSession("s1", map[string]interface{}{"seq": 1})
	h.BroadcastToSession("s1", map[string]interface{}{"seq": 2})
	require.Eventually(t, isDone(slow), time.Second, 5*time.Millisecond)

	// The queued message is still drainable, the channel was never closed.
	assert.NotEmpty(t, receive(t, slow))
}
