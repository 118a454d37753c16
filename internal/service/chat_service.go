package service

import (
	"context"

	"webhook-chat-be/internal/dto"
	"webhook-chat-be/internal/entity"
	"webhook-chat-be/internal/pkg/logger"
	"webhook-chat-be/internal/repository/contract"
	"webhook-chat-be/internal/repository/memory"
	"webhook-chat-be/pkg/webhook"

	"github.com/google/uuid"
)

type IChatService interface {
	SendChat(ctx context.Context, principal webhook.Principal, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	ListSessions(ctx context.Context, userId uuid.UUID) (*dto.ListSessionsResponse, error)
	CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionItem, error)
	SelectSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.SelectSessionResponse, error)
	RenameSession(ctx context.Context, userId uuid.UUID, req *dto.RenameSessionRequest) error
	DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error
	BatchDeleteSessions(ctx context.Context, userId uuid.UUID, req *dto.BatchDeleteSessionsRequest) error
	GetMessages(ctx context.Context, userId uuid.UUID) (*dto.GetMessagesResponse, error)
	Reset(userId uuid.UUID)
}

type chatService struct {
	workspaces   *memory.WorkspaceRepository
	settingsRepo contract.WebhookSettingsRepository
	dispatcher   *webhook.Dispatcher
	log          logger.ILogger
}

func NewChatService(
	workspaces *memory.WorkspaceRepository,
	settingsRepo contract.WebhookSettingsRepository,
	dispatcher *webhook.Dispatcher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		workspaces:   workspaces,
		settingsRepo: settingsRepo,
		dispatcher:   dispatcher,
		log:          log,
	}
}

// SendChat runs one full chat turn: ensure a session exists, record the user
// message, dispatch it, record the normalized reply. The user message is
// recorded optimistically; a persistence failure does not abort the turn.
func (c *chatService) SendChat(ctx context.Context, principal webhook.Principal, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	ws := c.workspaces.GetOrCreate(principal.Id)
	ws.Lock()
	defer ws.Unlock()

	sess, err := ws.Sessions.Ensure(ctx)
	if err != nil {
		return nil, err
	}

	userMsg, err := ws.Log.AppendUser(ctx, req.Message)
	if err != nil {
		// Optimistic entry is retained locally; the turn continues.
		c.log.Warn("chat-service", "user message failed to persist", map[string]interface{}{
			"session_id": sess.Id.String(),
			"error":      err.Error(),
		})
	}

	settings, err := c.settingsRepo.FindByUserId(ctx, principal.Id)
	if err != nil {
		return nil, err
	}

	var url string
	var variables map[string]string
	if settings != nil {
		url = settings.WebhookUrl
		variables = settings.WebhookVariables
	}

	result, err := c.dispatcher.Send(ctx, url, variables, principal, sess, userMsg)
	if err != nil {
		return nil, err
	}

	res := &dto.SendChatResponse{
		SessionId:   sess.Id,
		UserMessage: toMessageItem(userMsg),
	}

	if result != nil && result.Content != "" {
		reply, err := ws.Log.AppendSystem(ctx, result.Content)
		if err != nil {
			c.log.Warn("chat-service", "reply failed to persist", map[string]interface{}{
				"session_id": sess.Id.String(),
				"error":      err.Error(),
			})
		}
		item := toMessageItem(reply)
		res.Reply = &item
	}

	return res, nil
}

func (c *chatService) ListSessions(ctx context.Context, userId uuid.UUID) (*dto.ListSessionsResponse, error) {
	ws := c.workspaces.GetOrCreate(userId)
	ws.Lock()
	defer ws.Unlock()

	sessions, err := ws.Sessions.List(ctx)
	if err != nil {
		return nil, err
	}

	res := &dto.ListSessionsResponse{
		Sessions: make([]dto.SessionItem, 0, len(sessions)),
		State:    string(ws.Sessions.State()),
	}
	for _, sess := range sessions {
		res.Sessions = append(res.Sessions, toSessionItem(sess))
	}
	if current := ws.Sessions.Current(); current != nil {
		id := current.Id
		res.CurrentSessionId = &id
	}
	return res, nil
}

func (c *chatService) CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionItem, error) {
	ws := c.workspaces.GetOrCreate(userId)
	ws.Lock()
	defer ws.Unlock()

	sess, err := ws.Sessions.Create(ctx, req.Title)
	if err != nil {
		return nil, err
	}
	item := toSessionItem(sess)
	return &item, nil
}

func (c *chatService) SelectSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.SelectSessionResponse, error) {
	ws := c.workspaces.GetOrCreate(userId)
	ws.Lock()
	defer ws.Unlock()

	if err := ws.Sessions.Select(ctx, sessionId); err != nil {
		return nil, err
	}

	res := &dto.SelectSessionResponse{
		Session:  toSessionItem(ws.Sessions.Current()),
		Messages: toMessageItems(ws.Log.Messages()),
	}
	return res, nil
}

func (c *chatService) RenameSession(ctx context.Context, userId uuid.UUID, req *dto.RenameSessionRequest) error {
	ws := c.workspaces.GetOrCreate(userId)
	ws.Lock()
	defer ws.Unlock()
	return ws.Sessions.Rename(ctx, req.Id, req.Title)
}

func (c *chatService) DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error {
	ws := c.workspaces.GetOrCreate(userId)
	ws.Lock()
	defer ws.Unlock()
	return ws.Sessions.Delete(ctx, sessionId)
}

func (c *chatService) BatchDeleteSessions(ctx context.Context, userId uuid.UUID, req *dto.BatchDeleteSessionsRequest) error {
	ws := c.workspaces.GetOrCreate(userId)
	ws.Lock()
	defer ws.Unlock()
	return ws.Sessions.BatchDelete(ctx, req.Ids)
}

func (c *chatService) GetMessages(ctx context.Context, userId uuid.UUID) (*dto.GetMessagesResponse, error) {
	ws := c.workspaces.GetOrCreate(userId)
	ws.Lock()
	defer ws.Unlock()

	res := &dto.GetMessagesResponse{
		Messages:  toMessageItems(ws.Log.Messages()),
		LastError: ws.Log.LastError(),
	}
	if sess := ws.Log.Session(); sess != nil {
		id := sess.Id
		res.SessionId = &id
	}
	return res, nil
}

// Reset tears down the user's in-memory workspace (sign-out). Store rows are
// untouched; the next request rebuilds from them.
func (c *chatService) Reset(userId uuid.UUID) {
	ws := c.workspaces.GetOrCreate(userId)
	ws.Lock()
	ws.Sessions.Reset()
	ws.Unlock()
	c.workspaces.Delete(userId)
}

func toSessionItem(sess *entity.ChatSession) dto.SessionItem {
	return dto.SessionItem{
		Id:        sess.Id,
		Title:     sess.Title,
		CreatedAt: sess.CreatedAt,
		UpdatedAt: sess.UpdatedAt,
	}
}

func toMessageItem(msg *entity.ChatMessage) dto.MessageItem {
	return dto.MessageItem{
		Id:        msg.Id,
		SessionId: msg.ChatSessionId,
		Content:   msg.Content,
		Sender:    msg.Sender,
		Timestamp: msg.Timestamp,
		CreatedAt: msg.CreatedAt,
	}
}

func toMessageItems(messages []*entity.ChatMessage) []dto.MessageItem {
	items := make([]dto.MessageItem, 0, len(messages))
	for _, msg := range messages {
		items = append(items, toMessageItem(msg))
	}
	return items
}
