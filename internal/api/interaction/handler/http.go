package interactionHandler

import (
	interactionService "LulaiPlatform/internal/api/interaction/service"
	"LulaiPlatform/internal/middleware"
	websocketPkg "LulaiPlatform/pkg/websocket"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	fiberWebsocket "github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

// widgetKeyHeader carries the chatbot API key on every embedded widget
// request. The websocket endpoint takes it as a query parameter instead
// because browsers cannot set headers on websocket upgrades.
const widgetKeyHeader = "X-Widget-Key"

type InteractionHandler struct {
	log                *logrus.Logger
	validator          *validator.Validate
	middleware         middleware.Middleware
	interactionService interactionService.IInteractionService
	speechStream       websocketPkg.IWebsocket
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	is interactionService.IInteractionService,
	speechStream websocketPkg.IWebsocket,
) *InteractionHandler {
	return &InteractionHandler{
		log:                log,
		validator:          validate,
		middleware:         middleware,
		interactionService: is,
		speechStream:       speechStream,
	}
}

func (h *InteractionHandler) Start(srv fiber.Router) {
	widget := srv.Group("/widget", h.middleware.NewRateLimiter)

	widget.Get("/config", h.WidgetConfig)
	widget.Post("/interact", h.Interact)
	widget.Post("/interact/voice", h.InteractVoice)
	widget.Post("/feedback", h.SubmitFeedback)

	widget.Use("/ws", func(ctx *fiber.Ctx) error {
		if fiberWebsocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	widget.Get("/ws", fiberWebsocket.New(h.LiveChat))
}
