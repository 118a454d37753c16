package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"webhook-chat-be/internal/dto"
	"webhook-chat-be/internal/entity"
	"webhook-chat-be/internal/pkg/logger"
	"webhook-chat-be/pkg/webhook"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeSettingsRepo struct {
	mu       sync.Mutex
	byUser   map[uuid.UUID]*entity.WebhookSettings
	creates  int
	updates  int
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{byUser: make(map[uuid.UUID]*entity.WebhookSettings)}
}

func (f *fakeSettingsRepo) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.WebhookSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	settings, ok := f.byUser[userId]
	if !ok {
		return nil, nil
	}
	clone := *settings
	return &clone, nil
}

func (f *fakeSettingsRepo) Create(ctx context.Context, settings *entity.WebhookSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *settings
	f.byUser[settings.UserId] = &clone
	f.creates++
	return nil
}

func (f *fakeSettingsRepo) Update(ctx context.Context, settings *entity.WebhookSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *settings
	f.byUser[settings.UserId] = &clone
	f.updates++
	return nil
}

func newTestWebhookService(repo *fakeSettingsRepo) IWebhookService {
	dispatcher := webhook.NewDispatcher(time.Second, logger.NewNopLogger())
	return NewWebhookService(repo, dispatcher)
}

func TestSettingsGetUnconfigured(t *testing.T) {
	svc := newTestWebhookService(newFakeSettingsRepo())

	res, err := svc.Get(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, res)
}

func TestSettingsUpsertIsSingleton(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := newTestWebhookService(repo)
	userId := uuid.New()

	first, err := svc.Upsert(context.Background(), userId, &dto.UpsertSettingsRequest{
		WebhookUrl:       "https://hooks.example.com/a",
		WebhookVariables: map[string]string{"env": "dev"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "https://hooks.example.com/a", first.WebhookUrl)

	second, err := svc.Upsert(context.Background(), userId, &dto.UpsertSettingsRequest{
		WebhookUrl:       "https://hooks.example.com/b",
		WebhookVariables: map[string]string{"env": "prod"},
	})
	assert.NoError(t, err)

	// Same row overwritten, never a second one.
	assert.Equal(t, first.Id, second.Id)
	assert.Equal(t, "https://hooks.example.com/b", second.WebhookUrl)
	assert.Equal(t, "prod", second.WebhookVariables["env"])
	assert.Equal(t, 1, repo.creates)
	assert.Equal(t, 1, repo.updates)

	got, err := svc.Get(context.Background(), userId)
	assert.NoError(t, err)
	assert.Equal(t, "https://hooks.example.com/b", got.WebhookUrl)
}

func TestSettingsTestProbesSubmittedUrl(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"output":"pong"}`))
	}))
	defer srv.Close()

	repo := newFakeSettingsRepo()
	svc := newTestWebhookService(repo)
	principal := webhook.Principal{Id: uuid.New(), Email: "user@example.com"}

	res, err := svc.Test(context.Background(), principal, &dto.TestDispatchRequest{WebhookUrl: srv.URL})
	assert.NoError(t, err)
	assert.Equal(t, "pong", res.Reply)

	// The probe never writes settings.
	saved, err := svc.Get(context.Background(), principal.Id)
	assert.NoError(t, err)
	assert.Nil(t, saved)
}

func TestSettingsTestSurfacesRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := newTestWebhookService(newFakeSettingsRepo())
	principal := webhook.Principal{Id: uuid.New(), Email: "user@example.com"}

	res, err := svc.Test(context.Background(), principal, &dto.TestDispatchRequest{WebhookUrl: srv.URL})
	assert.Nil(t, res)
	assert.Error(t, err)
}
