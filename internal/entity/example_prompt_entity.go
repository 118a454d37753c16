package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExamplePrompt rows keep a dense 0-based DisplayOrder per user; delete and
// reorder renumber the survivors in the store, not just in memory.
type ExamplePrompt struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	PromptText   string
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
