package chat

import (
	"sync"

	"webhook-chat-be/internal/pkg/logger"
	"webhook-chat-be/internal/repository/contract"
	"webhook-chat-be/pkg/chat/message"
	"webhook-chat-be/pkg/chat/session"

	"github.com/google/uuid"
)

// Workspace bundles one principal's session registry and message log. The
// embedded mutex serializes whole operations (ensure, append, dispatch,
// append reply) so interleaved requests from the same user cannot observe a
// half-applied chat turn.
type Workspace struct {
	sync.Mutex
	UserId   uuid.UUID
	Sessions *session.Registry
	Log      *message.Synchronizer
}

func NewWorkspace(
	userId uuid.UUID,
	sessionRepo contract.ChatSessionRepository,
	messageRepo contract.ChatMessageRepository,
	log logger.ILogger,
) *Workspace {
	synchronizer := message.NewSynchronizer(messageRepo, sessionRepo, log)
	return &Workspace{
		UserId:   userId,
		Sessions: session.NewRegistry(userId, sessionRepo, messageRepo, synchronizer, log),
		Log:      synchronizer,
	}
}
