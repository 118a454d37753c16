package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"webhook-chat-be/internal/constant"
	"webhook-chat-be/internal/dto"
	"webhook-chat-be/internal/entity"
	"webhook-chat-be/internal/pkg/logger"
	"webhook-chat-be/internal/repository/memory"
	"webhook-chat-be/internal/repository/specification"
	"webhook-chat-be/pkg/webhook"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeChatSessionRepo struct {
	mu       sync.Mutex
	sessions []*entity.ChatSession
}

func (f *fakeChatSessionRepo) Create(ctx context.Context, sess *entity.ChatSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *sess
	f.sessions = append(f.sessions, &clone)
	return nil
}

func (f *fakeChatSessionRepo) Update(ctx context.Context, sess *entity.ChatSession) error {
	return nil
}

func (f *fakeChatSessionRepo) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sess := range f.sessions {
		if sess.Id == id {
			sess.UpdatedAt = at
		}
	}
	return nil
}

func (f *fakeChatSessionRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeChatSessionRepo) DeleteAllByIds(ctx context.Context, ids []uuid.UUID) error { return nil }

func (f *fakeChatSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	return nil, nil
}

func (f *fakeChatSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.ChatSession, len(f.sessions))
	copy(out, f.sessions)
	return out, nil
}

type fakeChatMessageRepo struct {
	mu       sync.Mutex
	created  []*entity.ChatMessage
	failNext error
}

func (f *fakeChatMessageRepo) Create(ctx context.Context, msg *entity.ChatMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	clone := *msg
	f.created = append(f.created, &clone)
	return nil
}

func (f *fakeChatMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	return nil, nil
}

func (f *fakeChatMessageRepo) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return nil
}

func (f *fakeChatMessageRepo) senders() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.created))
	for _, msg := range f.created {
		out = append(out, msg.Sender)
	}
	return out
}

func newTestChatService(msgRepo *fakeChatMessageRepo, settings *fakeSettingsRepo, timeout time.Duration) IChatService {
	log := logger.NewNopLogger()
	workspaces := memory.NewWorkspaceRepository(&fakeChatSessionRepo{}, msgRepo, log)
	dispatcher := webhook.NewDispatcher(timeout, log)
	return NewChatService(workspaces, settings, dispatcher, log)
}

func seedWebhookUrl(settings *fakeSettingsRepo, userId uuid.UUID, url string) {
	settings.Create(context.Background(), &entity.WebhookSettings{
		Id:         uuid.New(),
		UserId:     userId,
		WebhookUrl: url,
	})
}

func TestSendChatHappyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"output":"hello back"}`))
	}))
	defer srv.Close()

	settings := newFakeSettingsRepo()
	msgRepo := &fakeChatMessageRepo{}
	svc := newTestChatService(msgRepo, settings, time.Second)
	userId := uuid.New()
	seedWebhookUrl(settings, userId, srv.URL)
	principal := webhook.Principal{Id: userId, Email: "user@example.com"}

	res, err := svc.SendChat(context.Background(), principal, &dto.SendChatRequest{Message: "hi"})
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, res.SessionId)
	assert.Equal(t, "hi", res.UserMessage.Content)
	assert.NotNil(t, res.Reply)
	assert.Equal(t, "hello back", res.Reply.Content)

	// Both sides of the turn reached the store.
	assert.Equal(t, []string{constant.MessageSenderUser, constant.MessageSenderSystem}, msgRepo.senders())

	// A second turn reuses the session instead of creating another.
	again, err := svc.SendChat(context.Background(), principal, &dto.SendChatRequest{Message: "more"})
	assert.NoError(t, err)
	assert.Equal(t, res.SessionId, again.SessionId)
}

func TestSendChatTimeoutPersistsOnlyUserMessage(t *testing.T) {
	released := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-released
		w.Write([]byte(`{"output":"too late"}`))
	}))
	defer srv.Close()
	defer close(released)

	settings := newFakeSettingsRepo()
	msgRepo := &fakeChatMessageRepo{}
	svc := newTestChatService(msgRepo, settings, 50*time.Millisecond)
	userId := uuid.New()
	seedWebhookUrl(settings, userId, srv.URL)

	res, err := svc.SendChat(context.Background(), webhook.Principal{Id: userId}, &dto.SendChatRequest{Message: "hi"})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, webhook.ErrTimeout)

	// The deadline is terminal: no reply is ever recorded for this turn.
	assert.Equal(t, []string{constant.MessageSenderUser}, msgRepo.senders())
}

func TestSendChatNoEndpointConfigured(t *testing.T) {
	msgRepo := &fakeChatMessageRepo{}
	svc := newTestChatService(msgRepo, newFakeSettingsRepo(), time.Second)

	res, err := svc.SendChat(context.Background(), webhook.Principal{Id: uuid.New()}, &dto.SendChatRequest{Message: "hi"})
	assert.NoError(t, err)
	assert.Equal(t, "hi", res.UserMessage.Content)
	assert.Nil(t, res.Reply)
	assert.Equal(t, []string{constant.MessageSenderUser}, msgRepo.senders())
}

func TestSendChatFalsyReplyNotRecorded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	}))
	defer srv.Close()

	settings := newFakeSettingsRepo()
	msgRepo := &fakeChatMessageRepo{}
	svc := newTestChatService(msgRepo, settings, time.Second)
	userId := uuid.New()
	seedWebhookUrl(settings, userId, srv.URL)

	res, err := svc.SendChat(context.Background(), webhook.Principal{Id: userId}, &dto.SendChatRequest{Message: "hi"})
	assert.NoError(t, err)
	assert.Nil(t, res.Reply)
	assert.Equal(t, []string{constant.MessageSenderUser}, msgRepo.senders())
}

func TestSendChatContinuesPastUserPersistFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"output":"still here"}`))
	}))
	defer srv.Close()

	settings := newFakeSettingsRepo()
	msgRepo := &fakeChatMessageRepo{failNext: errors.New("store unavailable")}
	svc := newTestChatService(msgRepo, settings, time.Second)
	userId := uuid.New()
	seedWebhookUrl(settings, userId, srv.URL)
	principal := webhook.Principal{Id: userId}

	res, err := svc.SendChat(context.Background(), principal, &dto.SendChatRequest{Message: "hi"})
	assert.NoError(t, err)
	assert.Equal(t, "hi", res.UserMessage.Content)
	assert.NotNil(t, res.Reply)
	assert.Equal(t, "still here", res.Reply.Content)

	// Only the reply reached the store; the user message stayed optimistic.
	assert.Equal(t, []string{constant.MessageSenderSystem}, msgRepo.senders())

	// The optimistic entry is still visible in the conversation.
	msgs, err := svc.GetMessages(context.Background(), userId)
	assert.NoError(t, err)
	assert.Len(t, msgs.Messages, 2)
	assert.Equal(t, "hi", msgs.Messages[0].Content)
}
