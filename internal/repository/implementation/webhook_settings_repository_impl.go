package implementation

import (
	"context"
	"errors"

	"webhook-chat-be/internal/entity"
	"webhook-chat-be/internal/mapper"
	"webhook-chat-be/internal/model"
	"webhook-chat-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WebhookSettingsRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SettingsMapper
}

func NewWebhookSettingsRepository(db *gorm.DB) contract.WebhookSettingsRepository {
	return &WebhookSettingsRepositoryImpl{
		db:     db,
		mapper: mapper.NewSettingsMapper(),
	}
}

func (r *WebhookSettingsRepositoryImpl) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.WebhookSettings, error) {
	var m model.WebhookSettings
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.WebhookSettingsToEntity(&m), nil
}

func (r *WebhookSettingsRepositoryImpl) Create(ctx context.Context, settings *entity.WebhookSettings) error {
	m := r.mapper.WebhookSettingsToModel(settings)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*settings = *r.mapper.WebhookSettingsToEntity(m)
	return nil
}

func (r *WebhookSettingsRepositoryImpl) Update(ctx context.Context, settings *entity.WebhookSettings) error {
	m := r.mapper.WebhookSettingsToModel(settings)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*settings = *r.mapper.WebhookSettingsToEntity(m)
	return nil
}
