package controller

import (
	"webhook-chat-be/internal/dto"
	"webhook-chat-be/internal/pkg/serverutils"
	"webhook-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISettingsController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Upsert(ctx *fiber.Ctx) error
	Test(ctx *fiber.Ctx) error
}

type settingsController struct {
	webhookService service.IWebhookService
}

func NewSettingsController(webhookService service.IWebhookService) ISettingsController {
	return &settingsController{
		webhookService: webhookService,
	}
}

func (c *settingsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/settings/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.Show)
	h.Put("", c.Upsert)
	h.Post("test", c.Test)
}

func (c *settingsController) Show(ctx *fiber.Ctx) error {
	principal := principalFromCtx(ctx)

	res, err := c.webhookService.Get(ctx.Context(), principal.Id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show settings", res))
}

func (c *settingsController) Upsert(ctx *fiber.Ctx) error {
	principal := principalFromCtx(ctx)

	var req dto.UpsertSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.webhookService.Upsert(ctx.Context(), principal.Id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save settings", res))
}

func (c *settingsController) Test(ctx *fiber.Ctx) error {
	principal := principalFromCtx(ctx)

	var req dto.TestDispatchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.webhookService.Test(ctx.Context(), principal, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success test webhook", res))
}
