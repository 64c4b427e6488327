package interactionHandler

import (
	"LulaiPlatform/internal/api/interaction"
	contextPkg "LulaiPlatform/pkg/context"
	"LulaiPlatform/pkg/handlerUtil"
	"LulaiPlatform/pkg/log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *InteractionHandler) WidgetConfig(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	config, err := h.interactionService.WidgetConfig(c, ctx.Get(widgetKeyHeader))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "widget_config")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, config)
	}
}

func (h *InteractionHandler) Interact(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing widget interact request")

	var req interaction.InteractRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := h.interactionService.Interact(c, ctx.Get(widgetKeyHeader), req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "widget_interact")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *InteractionHandler) InteractVoice(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 60*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	audioFile, err := ctx.FormFile("audio")
	if err != nil {
		return errHandler.Handle(ctx, requestID, interaction.ErrInvalidAudioFile, ctx.Path(), "widget_interact_voice")
	}

	result, err := h.interactionService.InteractVoice(
		c,
		ctx.Get(widgetKeyHeader),
		audioFile,
		ctx.FormValue("conversation_id"),
		ctx.FormValue("visitor_id"),
	)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "widget_interact_voice")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *InteractionHandler) SubmitFeedback(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req interaction.FeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.interactionService.SubmitFeedback(c, ctx.Get(widgetKeyHeader), req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "widget_feedback")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, nil)
	}
}
