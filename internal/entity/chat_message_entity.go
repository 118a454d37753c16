package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is immutable once created; there is no edit operation.
// Timestamp is epoch milliseconds assigned client-side before persistence.
type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Content       string
	Sender        string
	Timestamp     int64
	CreatedAt     time.Time
}
