package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"webhook-chat-be/internal/constant"
	"webhook-chat-be/internal/entity"
	"webhook-chat-be/internal/pkg/logger"
	"webhook-chat-be/internal/repository/contract"
	"webhook-chat-be/internal/repository/specification"
	"webhook-chat-be/pkg/chat/message"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// State tracks the current-session lifecycle: None -> Loading -> Ready.
type State string

const (
	StateNone    State = "NONE"
	StateLoading State = "LOADING"
	StateReady   State = "READY"
)

// Registry owns the session list of a principal, the notion of "current
// session", and session lifecycle. At most one session is current at any
// time; selecting one replaces the message log wholesale via the
// synchronizer.
type Registry struct {
	mu          sync.Mutex
	userId      uuid.UUID
	sessionRepo contract.ChatSessionRepository
	messageRepo contract.ChatMessageRepository
	messages    *message.Synchronizer
	log         logger.ILogger

	sessions []*entity.ChatSession
	current  *entity.ChatSession
	state    State
	lastErr  string
}

func NewRegistry(
	userId uuid.UUID,
	sessionRepo contract.ChatSessionRepository,
	messageRepo contract.ChatMessageRepository,
	messages *message.Synchronizer,
	log logger.ILogger,
) *Registry {
	return &Registry{
		userId:      userId,
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
		messages:    messages,
		log:         log,
		state:       StateNone,
	}
}

// List refreshes the session list, most recently updated first. When nothing
// is current yet and sessions exist, the most recent one is resumed (its
// messages load as a side effect).
func (r *Registry) List(ctx context.Context) ([]*entity.ChatSession, error) {
	all, err := r.sessionRepo.FindAll(ctx,
		specification.UserOwnedBy{UserID: r.userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		r.setErr(err)
		return nil, err
	}

	r.mu.Lock()
	r.sessions = all
	current := r.current
	r.mu.Unlock()

	if current == nil && len(all) > 0 {
		if err := r.Select(ctx, all[0].Id); err != nil {
			r.log.Warn("session-registry", "failed to resume most recent session", map[string]interface{}{
				"session_id": all[0].Id.String(),
				"error":      err.Error(),
			})
		}
	}

	return r.Sessions(), nil
}

// Ensure returns the current session, creating one when none exists. Calling
// it twice without an intervening switch never creates a duplicate.
func (r *Registry) Ensure(ctx context.Context) (*entity.ChatSession, error) {
	r.mu.Lock()
	current := r.current
	r.mu.Unlock()

	if current != nil {
		return current, nil
	}
	return r.Create(ctx, "")
}

// Create starts a new chat unconditionally. An empty title derives one from
// the creation timestamp.
func (r *Registry) Create(ctx context.Context, title string) (*entity.ChatSession, error) {
	now := time.Now()
	if title == "" {
		title = constant.SessionTitlePrefix + now.Format(constant.SessionTitleTimeFormat)
	}

	sess := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    r.userId,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.sessionRepo.Create(ctx, sess); err != nil {
		r.setErr(err)
		return nil, err
	}

	r.mu.Lock()
	// Prepend: the new session is now the most recent.
	r.sessions = append([]*entity.ChatSession{sess}, r.sessions...)
	r.current = sess
	r.state = StateReady
	r.lastErr = ""
	r.mu.Unlock()

	r.messages.Bind(sess)
	return sess, nil
}

// Select loads the session record and its full history, replacing the
// current-session view wholesale. On failure the state stays at the last
// successfully loaded session.
func (r *Registry) Select(ctx context.Context, sessionId uuid.UUID) error {
	r.mu.Lock()
	r.state = StateLoading
	r.mu.Unlock()

	sess, err := r.sessionRepo.FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: r.userId},
	)
	if err != nil {
		r.revertState()
		r.setErr(err)
		return err
	}
	if sess == nil {
		r.revertState()
		r.setErr(ErrNotFound)
		return ErrNotFound
	}

	if err := r.messages.Load(ctx, sess); err != nil {
		r.revertState()
		r.setErr(err)
		return err
	}

	r.mu.Lock()
	r.current = sess
	r.state = StateReady
	r.lastErr = ""
	r.mu.Unlock()
	return nil
}

// Rename persists a new title and updated_at. A blank (trimmed-empty) title
// is a no-op; rejecting it louder is the caller's responsibility.
func (r *Registry) Rename(ctx context.Context, sessionId uuid.UUID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}

	r.mu.Lock()
	var target *entity.ChatSession
	for _, sess := range r.sessions {
		if sess.Id == sessionId {
			target = sess
			break
		}
	}
	r.mu.Unlock()

	if target == nil {
		found, err := r.sessionRepo.FindOne(ctx,
			specification.ByID{ID: sessionId},
			specification.UserOwnedBy{UserID: r.userId},
		)
		if err != nil {
			r.setErr(err)
			return err
		}
		if found == nil {
			r.setErr(ErrNotFound)
			return ErrNotFound
		}
		target = found
	}

	updated := *target
	updated.Title = title
	updated.UpdatedAt = time.Now()
	if err := r.sessionRepo.Update(ctx, &updated); err != nil {
		r.setErr(err)
		return err
	}

	r.mu.Lock()
	for _, sess := range r.sessions {
		if sess.Id == sessionId {
			sess.Title = updated.Title
			sess.UpdatedAt = updated.UpdatedAt
		}
	}
	if r.current != nil && r.current.Id == sessionId {
		r.current.Title = updated.Title
		r.current.UpdatedAt = updated.UpdatedAt
	}
	r.lastErr = ""
	r.mu.Unlock()
	return nil
}

// Delete cascades remotely (messages first, then the session — two sequential
// calls, not a transaction; a second-phase failure leaves the first phase
// applied). Local state only changes after both remote calls succeed. When
// the current session dies, the most recent survivor is selected, or the log
// clears to None.
func (r *Registry) Delete(ctx context.Context, sessionId uuid.UUID) error {
	owned, err := r.sessionRepo.FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: r.userId},
	)
	if err != nil {
		r.setErr(err)
		return err
	}
	if owned == nil {
		r.setErr(ErrNotFound)
		return ErrNotFound
	}

	if err := r.messageRepo.DeleteBySessionId(ctx, sessionId); err != nil {
		r.setErr(err)
		return err
	}
	if err := r.sessionRepo.Delete(ctx, sessionId); err != nil {
		r.setErr(err)
		return err
	}

	fallback, wasCurrent := r.removeLocal(map[uuid.UUID]bool{sessionId: true})
	if wasCurrent {
		r.selectFallback(ctx, fallback)
	}
	return nil
}

// BatchDelete runs the message cascade per id sequentially, then removes the
// session rows in one call. A failure aborts the batch; remote deletes that
// already happened stay, and local state is untouched until everything
// succeeded.
func (r *Registry) BatchDelete(ctx context.Context, sessionIds []uuid.UUID) error {
	if len(sessionIds) == 0 {
		return nil
	}

	owned, err := r.sessionRepo.FindAll(ctx,
		specification.ByIDs{IDs: sessionIds},
		specification.UserOwnedBy{UserID: r.userId},
	)
	if err != nil {
		r.setErr(err)
		return err
	}
	if len(owned) != len(sessionIds) {
		r.setErr(ErrNotFound)
		return ErrNotFound
	}

	for _, id := range sessionIds {
		if err := r.messageRepo.DeleteBySessionId(ctx, id); err != nil {
			r.setErr(err)
			return err
		}
	}
	if err := r.sessionRepo.DeleteAllByIds(ctx, sessionIds); err != nil {
		r.setErr(err)
		return err
	}

	deleted := make(map[uuid.UUID]bool, len(sessionIds))
	for _, id := range sessionIds {
		deleted[id] = true
	}

	fallback, wasCurrent := r.removeLocal(deleted)
	if wasCurrent {
		r.selectFallback(ctx, fallback)
	}
	return nil
}

// Reset tears the registry down to its initial empty state (sign-out).
func (r *Registry) Reset() {
	r.mu.Lock()
	r.sessions = nil
	r.current = nil
	r.state = StateNone
	r.lastErr = ""
	r.mu.Unlock()
	r.messages.Clear()
}

func (r *Registry) Sessions() []*entity.ChatSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.ChatSession, len(r.sessions))
	copy(out, r.sessions)
	return out
}

func (r *Registry) Current() *entity.ChatSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *Registry) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Registry) LastError() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// removeLocal drops the given ids from the list; when the current session is
// among them it clears current/log and reports the most recent survivor.
func (r *Registry) removeLocal(deleted map[uuid.UUID]bool) (*entity.ChatSession, bool) {
	r.mu.Lock()
	remaining := r.sessions[:0]
	for _, sess := range r.sessions {
		if !deleted[sess.Id] {
			remaining = append(remaining, sess)
		}
	}
	r.sessions = remaining

	wasCurrent := r.current != nil && deleted[r.current.Id]
	var fallback *entity.ChatSession
	if wasCurrent {
		r.current = nil
		r.state = StateNone
		if len(remaining) > 0 {
			fallback = remaining[0]
		}
	}
	r.mu.Unlock()

	if wasCurrent {
		r.messages.Clear()
	}
	return fallback, wasCurrent
}

func (r *Registry) selectFallback(ctx context.Context, fallback *entity.ChatSession) {
	if fallback == nil {
		return
	}
	if err := r.Select(ctx, fallback.Id); err != nil {
		r.log.Warn("session-registry", "failed to load fallback session after delete", map[string]interface{}{
			"session_id": fallback.Id.String(),
			"error":      err.Error(),
		})
	}
}

func (r *Registry) revertState() {
	r.mu.Lock()
	if r.current != nil {
		r.state = StateReady
	} else {
		r.state = StateNone
	}
	r.mu.Unlock()
}

func (r *Registry) setErr(err error) {
	r.mu.Lock()
	r.lastErr = err.Error()
	r.mu.Unlock()
}
