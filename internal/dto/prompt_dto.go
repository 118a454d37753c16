package dto

import (
	"time"

	"github.com/google/uuid"
)

type PromptItem struct {
	Id           uuid.UUID `json:"id"`
	PromptText   string    `json:"prompt_text"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreatePromptRequest struct {
	PromptText string `json:"prompt_text" validate:"required"`
}

type UpdatePromptRequest struct {
	Id         uuid.UUID
	PromptText string `json:"prompt_text" validate:"required"`
}

// MovePromptRequest shifts one prompt a single step; the list stays densely
// numbered from zero.
type MovePromptRequest struct {
	Id        uuid.UUID
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

// ReorderPromptsRequest carries the full desired ordering; Ids must be a
// permutation of the caller's prompt ids.
type ReorderPromptsRequest struct {
	Ids []uuid.UUID `json:"ids" validate:"required,min=1"`
}
