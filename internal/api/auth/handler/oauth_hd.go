package authHandler

import (
	"LulaiPlatform/pkg/handlerUtil"
	"LulaiPlatform/pkg/log"
	"errors"

	"github.com/gofiber/fiber/v2"
)

const oauthStateCookie = "oauth_state"

func (h *AuthHandler) GoogleLogin(ctx *fiber.Ctx) error {
	state := ctx.Query("state")
	if state == "" {
		state = "lulai"
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return ctx.Redirect(h.authService.GoogleLoginURL(state), fiber.StatusTemporaryRedirect)
}

func (h *AuthHandler) GoogleCallback(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing google callback")

	state := ctx.Query("state")
	if state == "" || state != ctx.Cookies(oauthStateCookie) {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("oauth state mismatch"), ctx.Path())
	}

	code := ctx.Query("code")
	if code == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("authorization code is required"), ctx.Path())
	}

	token, err := h.authService.GoogleCallback(ctx, code)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "google_callback")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, token)
}
