package model

import (
	"time"

	"github.com/google/uuid"
)

type ExamplePrompt struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;index"`
	PromptText   string    `gorm:"type:text;not null"`
	DisplayOrder int       `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time
}

func (ExamplePrompt) TableName() string {
	return "example_prompts"
}
