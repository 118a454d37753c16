package message

import (
	"context"
	"errors"
	"sync"
	"time"

	"webhook-chat-be/internal/constant"
	"webhook-chat-be/internal/entity"
	"webhook-chat-be/internal/pkg/logger"
	"webhook-chat-be/internal/repository/contract"
	"webhook-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ErrNoActiveSession is returned when a message is appended with no session
// bound; session creation is the registry's job, never this component's.
var ErrNoActiveSession = errors.New("no active session")

// Synchronizer owns the message log of the bound session. Appends are
// optimistic: the message is visible locally before the store confirms, and a
// failed persistence call leaves the entry in place (the log and the store
// diverge until the next Load). Switching sessions is a full load-and-replace,
// never a merge.
type Synchronizer struct {
	mu          sync.Mutex
	messageRepo contract.ChatMessageRepository
	sessionRepo contract.ChatSessionRepository
	log         logger.ILogger

	session  *entity.ChatSession
	messages []*entity.ChatMessage
	lastErr  string
}

func NewSynchronizer(
	messageRepo contract.ChatMessageRepository,
	sessionRepo contract.ChatSessionRepository,
	log logger.ILogger,
) *Synchronizer {
	return &Synchronizer{
		messageRepo: messageRepo,
		sessionRepo: sessionRepo,
		log:         log,
	}
}

func (s *Synchronizer) AppendUser(ctx context.Context, content string) (*entity.ChatMessage, error) {
	return s.append(ctx, content, constant.MessageSenderUser)
}

// AppendSystem records a normalized dispatch reply; no other code path writes
// the system sender.
func (s *Synchronizer) AppendSystem(ctx context.Context, content string) (*entity.ChatMessage, error) {
	return s.append(ctx, content, constant.MessageSenderSystem)
}

func (s *Synchronizer) append(ctx context.Context, content, sender string) (*entity.ChatMessage, error) {
	s.mu.Lock()
	sess := s.session
	if sess == nil {
		s.lastErr = ErrNoActiveSession.Error()
		s.mu.Unlock()
		return nil, ErrNoActiveSession
	}

	now := time.Now()
	msg := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sess.Id,
		Content:       content,
		Sender:        sender,
		Timestamp:     now.UnixMilli(),
		CreatedAt:     now,
	}

	// Optimistic append: the caller observes the message before persistence
	// confirms.
	s.messages = append(s.messages, msg)
	s.mu.Unlock()

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		// The optimistic entry is retained; the divergence heals on the next
		// full Load.
		s.setErr(err)
		return msg, err
	}

	// Advance the owning session's recency, best effort.
	if err := s.sessionRepo.Touch(ctx, sess.Id, now); err != nil {
		s.log.Warn("message-sync", "failed to advance session updated_at", map[string]interface{}{
			"session_id": sess.Id.String(),
			"error":      err.Error(),
		})
	} else {
		s.mu.Lock()
		sess.UpdatedAt = now
		s.mu.Unlock()
	}

	s.clearErr()
	return msg, nil
}

// Load fetches the full message history of the given session and replaces the
// local log wholesale. The swap happens only after a successful fetch, so a
// failed load leaves the previous session's log intact.
func (s *Synchronizer) Load(ctx context.Context, sess *entity.ChatSession) error {
	messages, err := s.messageRepo.FindAll(ctx,
		specification.BySessionID{SessionID: sess.Id},
		specification.OrderBy{Field: "timestamp", Desc: false},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	s.session = sess
	s.messages = messages
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// Bind attaches a freshly created session with an empty log; nothing to fetch.
func (s *Synchronizer) Bind(sess *entity.ChatSession) {
	s.mu.Lock()
	s.session = sess
	s.messages = nil
	s.mu.Unlock()
}

func (s *Synchronizer) Clear() {
	s.mu.Lock()
	s.session = nil
	s.messages = nil
	s.mu.Unlock()
}

func (s *Synchronizer) Session() *entity.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *Synchronizer) Messages() []*entity.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Synchronizer) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Synchronizer) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
}

func (s *Synchronizer) clearErr() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}
