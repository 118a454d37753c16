package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"webhook-chat-be/internal/constant"
	"webhook-chat-be/internal/entity"
	"webhook-chat-be/internal/repository/implementation"
	"webhook-chat-be/internal/repository/specification"
	"webhook-chat-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormRepositoriesRoundtrip(t *testing.T) {
	// Load .env from root (2 levels up) because tests run in package dir
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	ctx := context.Background()
	sessionRepo := implementation.NewChatSessionRepository(gormDB)
	messageRepo := implementation.NewChatMessageRepository(gormDB)
	userId := uuid.New()

	// Session create + find
	now := time.Now()
	sess := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     "integration test session",
		CreatedAt: now,
		UpdatedAt: now,
	}
	assert.NoError(t, sessionRepo.Create(ctx, sess))

	found, err := sessionRepo.FindOne(ctx,
		specification.ByID{ID: sess.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	assert.NoError(t, err)
	if assert.NotNil(t, found) {
		assert.Equal(t, sess.Title, found.Title)
	}

	// Absent row is (nil, nil), not an error
	absent, err := sessionRepo.FindOne(ctx, specification.ByID{ID: uuid.New()})
	assert.NoError(t, err)
	assert.Nil(t, absent)

	// Message create + ordered find
	msg := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sess.Id,
		Content:       "hello",
		Sender:        constant.MessageSenderUser,
		Timestamp:     now.UnixMilli(),
		CreatedAt:     now,
	}
	assert.NoError(t, messageRepo.Create(ctx, msg))

	messages, err := messageRepo.FindAll(ctx,
		specification.BySessionID{SessionID: sess.Id},
		specification.OrderBy{Field: "timestamp", Desc: false},
	)
	assert.NoError(t, err)
	assert.Len(t, messages, 1)

	// Touch advances updated_at
	later := now.Add(time.Minute)
	assert.NoError(t, sessionRepo.Touch(ctx, sess.Id, later))

	touched, err := sessionRepo.FindOne(ctx, specification.ByID{ID: sess.Id})
	assert.NoError(t, err)
	if assert.NotNil(t, touched) {
		assert.True(t, touched.UpdatedAt.After(found.UpdatedAt))
	}

	// Cleanup (messages first, then the session)
	assert.NoError(t, messageRepo.DeleteBySessionId(ctx, sess.Id))
	assert.NoError(t, sessionRepo.Delete(ctx, sess.Id))
}

func TestWebhookSettingsSingletonRow(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	ctx := context.Background()
	settingsRepo := implementation.NewWebhookSettingsRepository(gormDB)
	userId := uuid.New()

	absent, err := settingsRepo.FindByUserId(ctx, userId)
	assert.NoError(t, err)
	assert.Nil(t, absent)

	now := time.Now()
	settings := &entity.WebhookSettings{
		Id:               uuid.New(),
		UserId:           userId,
		WebhookUrl:       "https://hooks.example.com/test",
		WebhookVariables: map[string]string{"env": "ci"},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	assert.NoError(t, settingsRepo.Create(ctx, settings))

	saved, err := settingsRepo.FindByUserId(ctx, userId)
	assert.NoError(t, err)
	if assert.NotNil(t, saved) {
		assert.Equal(t, "https://hooks.example.com/test", saved.WebhookUrl)
		assert.Equal(t, "ci", saved.WebhookVariables["env"])
	}

	saved.WebhookUrl = "https://hooks.example.com/other"
	assert.NoError(t, settingsRepo.Update(ctx, saved))

	updated, err := settingsRepo.FindByUserId(ctx, userId)
	assert.NoError(t, err)
	if assert.NotNil(t, updated) {
		assert.Equal(t, settings.Id, updated.Id)
		assert.Equal(t, "https://hooks.example.com/other", updated.WebhookUrl)
	}

	gormDB.Exec("DELETE FROM settings WHERE user_id = ?", userId)
}
