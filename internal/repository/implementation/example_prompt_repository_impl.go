package implementation

import (
	"context"
	"time"

	"webhook-chat-be/internal/entity"
	"webhook-chat-be/internal/mapper"
	"webhook-chat-be/internal/model"
	"webhook-chat-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExamplePromptRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SettingsMapper
}

func NewExamplePromptRepository(db *gorm.DB) contract.ExamplePromptRepository {
	return &ExamplePromptRepositoryImpl{
		db:     db,
		mapper: mapper.NewSettingsMapper(),
	}
}

func (r *ExamplePromptRepositoryImpl) FindAllByUserId(ctx context.Context, userId uuid.UUID) ([]*entity.ExamplePrompt, error) {
	var models []*model.ExamplePrompt
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("display_order ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	entities := make([]*entity.ExamplePrompt, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ExamplePromptToEntity(m)
	}
	return entities, nil
}

func (r *ExamplePromptRepositoryImpl) Create(ctx context.Context, prompt *entity.ExamplePrompt) error {
	m := r.mapper.ExamplePromptToModel(prompt)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*prompt = *r.mapper.ExamplePromptToEntity(m)
	return nil
}

func (r *ExamplePromptRepositoryImpl) UpdateText(ctx context.Context, id uuid.UUID, text string) error {
	return r.db.WithContext(ctx).
		Model(&model.ExamplePrompt{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"prompt_text": text,
			"updated_at":  time.Now(),
		}).Error
}

func (r *ExamplePromptRepositoryImpl) UpdateDisplayOrder(ctx context.Context, id uuid.UUID, order int) error {
	return r.db.WithContext(ctx).
		Model(&model.ExamplePrompt{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"display_order": order,
			"updated_at":    time.Now(),
		}).Error
}

func (r *ExamplePromptRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ExamplePrompt{}).Error
}
