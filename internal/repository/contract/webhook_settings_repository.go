package contract

import (
	"context"

	"webhook-chat-be/internal/entity"

	"github.com/google/uuid"
)

type WebhookSettingsRepository interface {
	// FindByUserId returns (nil, nil) when the user has no settings row yet;
	// callers use that as the create-vs-update signal.
	FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.WebhookSettings, error)
	Create(ctx context.Context, settings *entity.WebhookSettings) error
	Update(ctx context.Context, settings *entity.WebhookSettings) error
}
