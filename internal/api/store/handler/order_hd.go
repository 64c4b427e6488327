package storeHandler

import (
	"LulaiPlatform/internal/api/store"
	contextPkg "LulaiPlatform/pkg/context"
	"LulaiPlatform/pkg/handlerUtil"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *StoreHandler) Checkout(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	sessionID := ctx.Get(sessionHeader)
	if sessionID == "" {
		return errHandler.Handle(ctx, requestID, store.ErrMissingSession, ctx.Path(), "checkout")
	}

	var req store.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := h.storeService.Checkout(c, sessionID, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "checkout")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, result)
	}
}

func (h *StoreHandler) Webhook(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	signature := ctx.Get("Stripe-Signature")
	if err := h.storeService.HandleWebhook(c, ctx.Body(), signature); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "store_webhook")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, nil)
}

func (h *StoreHandler) ListOrders(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	sessionID := ctx.Get(sessionHeader)
	if sessionID == "" {
		return errHandler.Handle(ctx, requestID, store.ErrMissingSession, ctx.Path(), "list_orders")
	}

	orders, err := h.storeService.ListOrders(c, sessionID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_orders")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, orders)
	}
}

func (h *StoreHandler) GetOrder(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	sessionID := ctx.Get(sessionHeader)
	if sessionID == "" {
		return errHandler.Handle(ctx, requestID, store.ErrMissingSession, ctx.Path(), "get_order")
	}

	order, err := h.storeService.GetOrder(c, sessionID, ctx.Params("id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_order")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, order)
	}
}
