package contract

import (
	"context"
	"time"

	"webhook-chat-be/internal/entity"
	"webhook-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	Update(ctx context.Context, session *entity.ChatSession) error
	// Touch advances updated_at only; used on every message append so the
	// most-recently-active ordering stays correct.
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByIds(ctx context.Context, ids []uuid.UUID) error
	// FindOne returns (nil, nil) when no row matches; "absent" is not an error.
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
}
