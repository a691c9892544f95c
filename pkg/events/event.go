package events

import "time"

const (
	// EventConversationRecorded fires after a chat turn is persisted.
	EventConversationRecorded = "CONVERSATION_RECORDED"
	// EventProviderRevoked fires when a provider is disabled after an auth failure.
	EventProviderRevoked = "PROVIDER_REVOKED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CONVERSATION_RECORDED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used by all emitters.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewConversationRecorded builds the event emitted once per completed turn.
func NewConversationRecorded(sessionID, provider string, confidence float64, sourceCount int) Event {
	return BaseEvent{
		Type: EventConversationRecorded,
		Data: map[string]interface{}{
			"session_id":   sessionID,
			"provider":     provider,
			"confidence":   confidence,
			"source_count": sourceCount,
		},
		OccurredAt: time.Now(),
	}
}

// NewProviderRevoked builds the event emitted when the dispatcher drops a
// provider for the rest of the process lifetime.
func NewProviderRevoked(provider, reason string) Event {
	return BaseEvent{
		Type: EventProviderRevoked,
		Data: map[string]interface{}{
			"provider": provider,
			"reason":   reason,
		},
		OccurredAt: time.Now(),
	}
}
