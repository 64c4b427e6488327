package subscriptionHandler

import (
	subscriptionService "LulaiPlatform/internal/api/subscription/service"
	"LulaiPlatform/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type SubscriptionHandler struct {
	log                 *logrus.Logger
	validator           *validator.Validate
	middleware          middleware.Middleware
	subscriptionService subscriptionService.ISubscriptionService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ss subscriptionService.ISubscriptionService,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		log:                 log,
		validator:           validate,
		middleware:          middleware,
		subscriptionService: ss,
	}
}

func (h *SubscriptionHandler) Start(srv fiber.Router) {
	billing := srv.Group("/billing")

	billing.Get("/plans", h.ListPlans)
	billing.Post("/webhook", h.Webhook)

	billing.Get("/subscription", h.middleware.NewTokenMiddleware, h.CurrentSubscription)
	billing.Post("/checkout", h.middleware.NewTokenMiddleware, h.CreateCheckout)
	billing.Post("/cancel", h.middleware.NewTokenMiddleware, h.CancelSubscription)
	billing.Post("/change-plan", h.middleware.NewTokenMiddleware, h.ChangePlan)
}
