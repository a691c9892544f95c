package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConversationSource is one document excerpt that grounded a response.
type ConversationSource struct {
	Filename string  `json:"filename"`
	Filepath string  `json:"filepath"`
	Score    float64 `json:"score"`
	Snippet  string  `json:"snippet"`
}

// ConversationRecord is the durable audit trail of one chat turn,
// distinct from the in-memory rolling history.
type ConversationRecord struct {
	Id          uuid.UUID
	SessionID   string
	UserID      *uuid.UUID
	UserMessage string
	Response    string
	Confidence  float64
	Provider    string
	Intent      string
	Sources     []ConversationSource
	CreatedAt   time.Time
}
