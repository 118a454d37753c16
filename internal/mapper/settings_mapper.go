package mapper

import (
	"fmt"

	"webhook-chat-be/internal/entity"
	"webhook-chat-be/internal/model"

	"gorm.io/datatypes"
)

type SettingsMapper struct{}

func NewSettingsMapper() *SettingsMapper {
	return &SettingsMapper{}
}

// Webhook Settings Mappers

func (m *SettingsMapper) WebhookSettingsToEntity(s *model.WebhookSettings) *entity.WebhookSettings {
	if s == nil {
		return nil
	}

	variables := make(map[string]string, len(s.WebhookVariables))
	for k, v := range s.WebhookVariables {
		// JSONMap values come back as interface{}; the app only ever writes strings
		variables[k] = fmt.Sprintf("%v", v)
	}

	return &entity.WebhookSettings{
		Id:               s.Id,
		UserId:           s.UserId,
		WebhookUrl:       s.WebhookUrl,
		WebhookVariables: variables,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func (m *SettingsMapper) WebhookSettingsToModel(s *entity.WebhookSettings) *model.WebhookSettings {
	if s == nil {
		return nil
	}

	variables := make(datatypes.JSONMap, len(s.WebhookVariables))
	for k, v := range s.WebhookVariables {
		variables[k] = v
	}

	return &model.WebhookSettings{
		Id:               s.Id,
		UserId:           s.UserId,
		WebhookUrl:       s.WebhookUrl,
		WebhookVariables: variables,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// Prompt Mappers

func (m *SettingsMapper) ExamplePromptToEntity(p *model.ExamplePrompt) *entity.ExamplePrompt {
	if p == nil {
		return nil
	}

	return &entity.ExamplePrompt{
		Id:           p.Id,
		UserId:       p.UserId,
		PromptText:   p.PromptText,
		DisplayOrder: p.DisplayOrder,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (m *SettingsMapper) ExamplePromptToModel(p *entity.ExamplePrompt) *model.ExamplePrompt {
	if p == nil {
		return nil
	}

	return &model.ExamplePrompt{
		Id:           p.Id,
		UserId:       p.UserId,
		PromptText:   p.PromptText,
		DisplayOrder: p.DisplayOrder,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
