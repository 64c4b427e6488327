package analyticsHandler

import (
	analyticsService "LulaiPlatform/internal/api/analytics/service"
	"LulaiPlatform/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AnalyticsHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	analyticsService analyticsService.IAnalyticsService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	as analyticsService.IAnalyticsService,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		log:              log,
		validator:        validate,
		middleware:       middleware,
		analyticsService: as,
	}
}

func (h *AnalyticsHandler) Start(srv fiber.Router) {
	stats := srv.Group("/analytics", h.middleware.NewTokenMiddleware)

	stats.Get("/chatbots/:id", h.ChatbotAnalytics)
	stats.Get("/chatbots/:id/conversations", h.ListConversations)
	stats.Get("/conversations/:id", h.ConversationDetail)
	stats.Post("/conversations/:id/conversion", h.MarkConversion)
}
