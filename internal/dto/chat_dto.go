package dto

import (
	"time"

	"github.com/google/uuid"
)

type SessionItem struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MessageItem struct {
	Id        uuid.UUID `json:"id"`
	SessionId uuid.UUID `json:"session_id"`
	Content   string    `json:"content"`
	Sender    string    `json:"sender"`
	Timestamp int64     `json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
}

type SendChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type SendChatResponse struct {
	SessionId   uuid.UUID    `json:"session_id"`
	UserMessage MessageItem  `json:"user_message"`
	Reply       *MessageItem `json:"reply"` // nil when no endpoint is configured or the reply was empty
}

type ListSessionsResponse struct {
	Sessions         []SessionItem `json:"sessions"`
	CurrentSessionId *uuid.UUID    `json:"current_session_id"`
	State            string        `json:"state"`
}

type CreateSessionRequest struct {
	Title string `json:"title"`
}

type SelectSessionResponse struct {
	Session  SessionItem   `json:"session"`
	Messages []MessageItem `json:"messages"`
}

type RenameSessionRequest struct {
	Id    uuid.UUID
	Title string `json:"title"`
}

type BatchDeleteSessionsRequest struct {
	Ids []uuid.UUID `json:"ids" validate:"required,min=1"`
}

type GetMessagesResponse struct {
	SessionId *uuid.UUID    `json:"session_id"`
	Messages  []MessageItem `json:"messages"`
	LastError string        `json:"last_error,omitempty"`
}
