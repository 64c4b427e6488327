package storeHandler

import (
	"LulaiPlatform/internal/api/store"
	contextPkg "LulaiPlatform/pkg/context"
	"LulaiPlatform/pkg/handlerUtil"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *StoreHandler) GetCart(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	sessionID := ctx.Get(sessionHeader)
	if sessionID == "" {
		return errHandler.Handle(ctx, requestID, store.ErrMissingSession, ctx.Path(), "get_cart")
	}

	cart, err := h.storeService.GetCart(c, sessionID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_cart")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, cart)
	}
}

func (h *StoreHandler) AddCartItem(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	sessionID := ctx.Get(sessionHeader)
	if sessionID == "" {
		return errHandler.Handle(ctx, requestID, store.ErrMissingSession, ctx.Path(), "add_cart_item")
	}

	var req store.AddCartItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	cart, err := h.storeService.AddCartItem(c, sessionID, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "add_cart_item")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, cart)
	}
}

func (h *StoreHandler) UpdateCartItem(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	sessionID := ctx.Get(sessionHeader)
	if sessionID == "" {
		return errHandler.Handle(ctx, requestID, store.ErrMissingSession, ctx.Path(), "update_cart_item")
	}

	var req store.UpdateCartItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	cart, err := h.storeService.UpdateCartItem(c, sessionID, ctx.Params("itemID"), req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "update_cart_item")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, cart)
	}
}

func (h *StoreHandler) RemoveCartItem(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	sessionID := ctx.Get(sessionHeader)
	if sessionID == "" {
		return errHandler.Handle(ctx, requestID, store.ErrMissingSession, ctx.Path(), "remove_cart_item")
	}

	cart, err := h.storeService.RemoveCartItem(c, sessionID, ctx.Params("itemID"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "remove_cart_item")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, cart)
	}
}

func (h *StoreHandler) ClearCart(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	sessionID := ctx.Get(sessionHeader)
	if sessionID == "" {
		return errHandler.Handle(ctx, requestID, store.ErrMissingSession, ctx.Path(), "clear_cart")
	}

	if err := h.storeService.ClearCart(c, sessionID); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "clear_cart")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, nil)
	}
}
