package analyticsHandler

import (
	"LulaiPlatform/internal/api/analytics"
	contextPkg "LulaiPlatform/pkg/context"
	"LulaiPlatform/pkg/handlerUtil"
	jwtPkg "LulaiPlatform/pkg/jwt"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

const (
	defaultRangeDays = 30
	dateLayout       = "2006-01-02"

	defaultPageLimit = 20
	maxPageLimit     = 100
)

// parseDateRange reads start_date and end_date query parameters and returns
// an inclusive-from, exclusive-to window, defaulting to the last 30 days.
func parseDateRange(ctx *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	to := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	from := to.AddDate(0, 0, -defaultRangeDays)

	if raw := ctx.Query("start_date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, analytics.ErrInvalidDateRange
		}
		from = parsed
	}

	if raw := ctx.Query("end_date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, analytics.ErrInvalidDateRange
		}
		to = parsed.AddDate(0, 0, 1)
	}

	if !from.Before(to) {
		return time.Time{}, time.Time{}, analytics.ErrInvalidDateRange
	}

	return from, to, nil
}

func parsePagination(ctx *fiber.Ctx) (int, int) {
	limit := ctx.QueryInt("limit", defaultPageLimit)
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	offset := ctx.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return limit, offset
}

func (h *AnalyticsHandler) ChatbotAnalytics(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	from, to, err := parseDateRange(ctx)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "chatbot_analytics")
	}

	result, err := h.analyticsService.ChatbotAnalytics(c, userData.ID, ctx.Params("id"), from, to)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "chatbot_analytics")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *AnalyticsHandler) ListConversations(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	from, to, err := parseDateRange(ctx)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_conversations")
	}

	limit, offset := parsePagination(ctx)

	result, err := h.analyticsService.ListConversations(c, userData.ID, ctx.Params("id"), from, to, limit, offset)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_conversations")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *AnalyticsHandler) ConversationDetail(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	result, err := h.analyticsService.ConversationDetail(c, userData.ID, ctx.Params("id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "conversation_detail")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *AnalyticsHandler) MarkConversion(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	var req analytics.MarkConversionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.analyticsService.MarkConversionForOwner(c, userData.ID, ctx.Params("id"), req.Value); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "mark_conversion")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, nil)
	}
}
