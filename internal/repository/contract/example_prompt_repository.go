package contract

import (
	"context"

	"webhook-chat-be/internal/entity"

	"github.com/google/uuid"
)

type ExamplePromptRepository interface {
	// FindAllByUserId returns prompts ordered by display_order ascending.
	FindAllByUserId(ctx context.Context, userId uuid.UUID) ([]*entity.ExamplePrompt, error)
	Create(ctx context.Context, prompt *entity.ExamplePrompt) error
	UpdateText(ctx context.Context, id uuid.UUID, text string) error
	UpdateDisplayOrder(ctx context.Context, id uuid.UUID, order int) error
	Delete(ctx context.Context, id uuid.UUID) error
}
