package controller

import (
	"webhook-chat-be/internal/dto"
	"webhook-chat-be/internal/pkg/serverutils"
	"webhook-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPromptController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Move(ctx *fiber.Ctx) error
	Reorder(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type promptController struct {
	promptService service.IPromptService
}

func NewPromptController(promptService service.IPromptService) IPromptController {
	return &promptController{
		promptService: promptService,
	}
}

func (c *promptController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/prompt/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Put("reorder", c.Reorder)
	h.Put(":id/move", c.Move)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *promptController) List(ctx *fiber.Ctx) error {
	principal := principalFromCtx(ctx)

	res, err := c.promptService.List(ctx.Context(), principal.Id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list prompts", res))
}

func (c *promptController) Create(ctx *fiber.Ctx) error {
	principal := principalFromCtx(ctx)

	var req dto.CreatePromptRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.promptService.Create(ctx.Context(), principal.Id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create prompt", res))
}

func (c *promptController) Update(ctx *fiber.Ctx) error {
	principal := principalFromCtx(ctx)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	var req dto.UpdatePromptRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.promptService.Update(ctx.Context(), principal.Id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update prompt", res))
}

func (c *promptController) Move(ctx *fiber.Ctx) error {
	principal := principalFromCtx(ctx)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	var req dto.MovePromptRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.promptService.Move(ctx.Context(), principal.Id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success move prompt", res))
}

func (c *promptController) Reorder(ctx *fiber.Ctx) error {
	principal := principalFromCtx(ctx)

	var req dto.ReorderPromptsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.promptService.Reorder(ctx.Context(), principal.Id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reorder prompts", res))
}

func (c *promptController) Delete(ctx *fiber.Ctx) error {
	principal := principalFromCtx(ctx)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	res, err := c.promptService.Delete(ctx.Context(), principal.Id, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete prompt", res))
}
