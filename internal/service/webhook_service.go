package service

import (
	"context"
	"time"

	"webhook-chat-be/internal/dto"
	"webhook-chat-be/internal/entity"
	"webhook-chat-be/internal/repository/contract"
	"webhook-chat-be/pkg/webhook"

	"github.com/google/uuid"
)

type IWebhookService interface {
	Get(ctx context.Context, userId uuid.UUID) (*dto.SettingsResponse, error)
	Upsert(ctx context.Context, userId uuid.UUID, req *dto.UpsertSettingsRequest) (*dto.SettingsResponse, error)
	Test(ctx context.Context, principal webhook.Principal, req *dto.TestDispatchRequest) (*dto.TestDispatchResponse, error)
}

type webhookService struct {
	settingsRepo contract.WebhookSettingsRepository
	dispatcher   *webhook.Dispatcher
}

func NewWebhookService(settingsRepo contract.WebhookSettingsRepository, dispatcher *webhook.Dispatcher) IWebhookService {
	return &webhookService{
		settingsRepo: settingsRepo,
		dispatcher:   dispatcher,
	}
}

func (s *webhookService) Get(ctx context.Context, userId uuid.UUID) (*dto.SettingsResponse, error) {
	settings, err := s.settingsRepo.FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, nil // Not configured yet
	}
	return toSettingsResponse(settings), nil
}

// Upsert keeps at most one settings row per user: the first save creates it,
// every later save overwrites url and variables in place.
func (s *webhookService) Upsert(ctx context.Context, userId uuid.UUID, req *dto.UpsertSettingsRequest) (*dto.SettingsResponse, error) {
	existing, err := s.settingsRepo.FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if existing == nil {
		settings := &entity.WebhookSettings{
			Id:               uuid.New(),
			UserId:           userId,
			WebhookUrl:       req.WebhookUrl,
			WebhookVariables: req.WebhookVariables,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
		return toSettingsResponse(settings), nil
	}

	existing.WebhookUrl = req.WebhookUrl
	existing.WebhookVariables = req.WebhookVariables
	existing.UpdatedAt = now
	if err := s.settingsRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return toSettingsResponse(existing), nil
}

// Test probes the URL as submitted without touching the saved row, so a
// broken endpoint can be caught before committing it.
func (s *webhookService) Test(ctx context.Context, principal webhook.Principal, req *dto.TestDispatchRequest) (*dto.TestDispatchResponse, error) {
	result, err := s.dispatcher.SendTest(ctx, req.WebhookUrl, req.WebhookVariables, principal)
	if err != nil {
		return nil, err
	}

	res := &dto.TestDispatchResponse{}
	if result != nil {
		res.Reply = result.Content
	}
	return res, nil
}

func toSettingsResponse(settings *entity.WebhookSettings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		Id:               settings.Id,
		WebhookUrl:       settings.WebhookUrl,
		WebhookVariables: settings.WebhookVariables,
		CreatedAt:        settings.CreatedAt,
		UpdatedAt:        settings.UpdatedAt,
	}
}
