package entity

import (
	"time"

	"github.com/google/uuid"
)

// WebhookSettings is a per-user singleton; an empty WebhookUrl means dispatch
// is not configured and every send is a silent no-op.
type WebhookSettings struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	WebhookUrl       string
	WebhookVariables map[string]string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
