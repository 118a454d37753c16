package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpsertSettingsRequest struct {
	WebhookUrl       string            `json:"webhook_url" validate:"required,url"`
	WebhookVariables map[string]string `json:"webhook_variables"`
}

type SettingsResponse struct {
	Id               uuid.UUID         `json:"id"`
	WebhookUrl       string            `json:"webhook_url"`
	WebhookVariables map[string]string `json:"webhook_variables"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// TestDispatchRequest probes the URL as entered, not the saved one, so the
// user can validate before committing.
type TestDispatchRequest struct {
	WebhookUrl       string            `json:"webhook_url" validate:"required,url"`
	WebhookVariables map[string]string `json:"webhook_variables"`
}

type TestDispatchResponse struct {
	Reply string `json:"reply"`
}
