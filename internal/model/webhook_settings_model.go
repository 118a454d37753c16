package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type WebhookSettings struct {
	Id               uuid.UUID         `gorm:"type:uuid;primaryKey"`
	UserId           uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex"` // singleton per user
	WebhookUrl       string            `gorm:"type:text"`
	WebhookVariables datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt        time.Time         `gorm:"autoCreateTime"`
	UpdatedAt        time.Time
}

func (WebhookSettings) TableName() string {
	return "settings"
}
