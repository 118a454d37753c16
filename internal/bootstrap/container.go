package bootstrap

import (
	"time"

	"webhook-chat-be/internal/config"
	"webhook-chat-be/internal/controller"
	"webhook-chat-be/internal/pkg/logger"
	"webhook-chat-be/internal/repository/implementation"
	"webhook-chat-be/internal/repository/memory"
	"webhook-chat-be/internal/service"
	"webhook-chat-be/pkg/webhook"

	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	SettingsController controller.ISettingsController
	PromptController   controller.IPromptController

	// Exposed for graceful shutdown
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// The dispatch subsystem writes to its own file so the main log stays
	// readable during webhook storms.
	dispatchLogger := logger.NewIsolatedLogger(cfg.App.DispatchLogPath)

	// Repositories
	sessionRepo := implementation.NewChatSessionRepository(db)
	messageRepo := implementation.NewChatMessageRepository(db)
	settingsRepo := implementation.NewWebhookSettingsRepository(db)
	promptRepo := implementation.NewExamplePromptRepository(db)
	workspaceRepo := memory.NewWorkspaceRepository(sessionRepo, messageRepo, sysLogger)

	// Dispatch
	dispatcher := webhook.NewDispatcher(
		time.Duration(cfg.Dispatch.TimeoutSeconds)*time.Second,
		dispatchLogger,
	)

	// Services
	chatService := service.NewChatService(workspaceRepo, settingsRepo, dispatcher, sysLogger)
	webhookService := service.NewWebhookService(settingsRepo, dispatcher)
	promptService := service.NewPromptService(promptRepo)

	return &Container{
		ChatController:     controller.NewChatController(chatService),
		SettingsController: controller.NewSettingsController(webhookService),
		PromptController:   controller.NewPromptController(promptService),
		Logger:             sysLogger,
	}
}
