package memory

import (
	"sync"
	"time"

	"webhook-chat-be/internal/pkg/logger"
	"webhook-chat-be/internal/repository/contract"
	"webhook-chat-be/pkg/chat"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const (
	workspaceTTL   = 1 * time.Hour
	workspaceSweep = 10 * time.Minute
)

// WorkspaceRepository holds the live chat workspaces, one per principal. A
// workspace idle past its TTL is evicted; the next request rebuilds it from
// the store (sessions and messages live there, nothing is lost).
type WorkspaceRepository struct {
	mu          sync.Mutex
	cache       *gocache.Cache
	sessionRepo contract.ChatSessionRepository
	messageRepo contract.ChatMessageRepository
	log         logger.ILogger
}

func NewWorkspaceRepository(
	sessionRepo contract.ChatSessionRepository,
	messageRepo contract.ChatMessageRepository,
	log logger.ILogger,
) *WorkspaceRepository {
	return &WorkspaceRepository{
		cache:       gocache.New(workspaceTTL, workspaceSweep),
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
		log:         log,
	}
}

// GetOrCreate returns the principal's workspace, building one on first use.
// Every hit refreshes the TTL so active users never lose their workspace
// mid-conversation.
func (r *WorkspaceRepository) GetOrCreate(userId uuid.UUID) *chat.Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := userId.String()
	if cached, found := r.cache.Get(key); found {
		ws := cached.(*chat.Workspace)
		r.cache.Set(key, ws, workspaceTTL)
		return ws
	}

	ws := chat.NewWorkspace(userId, r.sessionRepo, r.messageRepo, r.log)
	r.cache.Set(key, ws, workspaceTTL)
	return ws
}

// Delete drops the workspace outright (sign-out).
func (r *WorkspaceRepository) Delete(userId uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Delete(userId.String())
}
