package contract

import (
	"context"

	"webhook-chat-be/internal/entity"
	"webhook-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
}
