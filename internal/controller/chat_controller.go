package controller

import (
	"webhook-chat-be/internal/dto"
	"webhook-chat-be/internal/pkg/serverutils"
	"webhook-chat-be/internal/service"
	"webhook-chat-be/pkg/webhook"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
	CreateSession(ctx *fiber.Ctx) error
	SelectSession(ctx *fiber.Ctx) error
	RenameSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	BatchDeleteSessions(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("send", c.Send)
	h.Get("sessions", c.ListSessions)
	h.Post("sessions", c.CreateSession)
	h.Post("sessions/batch-delete", c.BatchDeleteSessions)
	h.Put("sessions/:id/select", c.SelectSession)
	h.Put("sessions/:id", c.RenameSession)
	h.Delete("sessions/:id", c.DeleteSession)
	h.Get("messages", c.GetMessages)
	h.Post("reset", c.Reset)
}

func principalFromCtx(ctx *fiber.Ctx) webhook.Principal {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	email, _ := ctx.Locals("email").(string)
	return webhook.Principal{Id: userId, Email: email}
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	principal := principalFromCtx(ctx)

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.chatService.SendChat(ctx.Context(), principal, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *chatController) ListSessions(ctx *fiber.Ctx) error {
	principal := principalFromCtx(ctx)

	res, err := c.chatService.ListSessions(ctx.Context(), principal.Id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	principal := principalFromCtx(ctx)

	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.chatService.CreateSession(ctx.Context(), principal.Id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *chatController) SelectSession(ctx *fiber.Ctx) error {
	principal := principalFromCtx(ctx)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	res, err := c.chatService.SelectSession(ctx.Context(), principal.Id, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success select session", res))
}

func (c *chatController) RenameSession(ctx *fiber.Ctx) error {
	principal := principalFromCtx(ctx)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	var req dto.RenameSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	err := c.chatService.RenameSession(ctx.Context(), principal.Id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success rename session", nil))
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	principal := principalFromCtx(ctx)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	err := c.chatService.DeleteSession(ctx.Context(), principal.Id, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}

func (c *chatController) BatchDeleteSessions(ctx *fiber.Ctx) error {
	principal := principalFromCtx(ctx)

	var req dto.BatchDeleteSessionsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	err = c.chatService.BatchDeleteSessions(ctx.Context(), principal.Id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete sessions", nil))
}

func (c *chatController) GetMessages(ctx *fiber.Ctx) error {
	principal := principalFromCtx(ctx)

	res, err := c.chatService.GetMessages(ctx.Context(), principal.Id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}

func (c *chatController) Reset(ctx *fiber.Ctx) error {
	principal := principalFromCtx(ctx)

	c.chatService.Reset(principal.Id)

	return ctx.JSON(serverutils.SuccessResponse[any]("Success reset workspace", nil))
}
