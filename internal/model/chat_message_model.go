package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChatSessionId uuid.UUID `gorm:"type:uuid;not null;index;column:session_id"`
	Content       string    `gorm:"type:text;not null"`
	Sender        string    `gorm:"type:varchar(20);not null"`
	Timestamp     int64     `gorm:"not null;index"` // epoch millis, client-assigned
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "messages"
}
