package chatbotHandler

import (
	chatbotService "LulaiPlatform/internal/api/chatbot/service"
	"LulaiPlatform/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ChatbotHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	chatbotService chatbotService.IChatbotService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs chatbotService.IChatbotService,
) *ChatbotHandler {
	return &ChatbotHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		chatbotService: cs,
	}
}

func (h *ChatbotHandler) Start(srv fiber.Router) {
	bots := srv.Group("/chatbots", h.middleware.NewTokenMiddleware)

	bots.Post("/", h.CreateChatbot)
	bots.Get("", h.ListChatbots)
	bots.Get("/templates", h.ListTemplates)
	bots.Get("/:id", h.GetChatbot)
	bots.Put("/:id", h.UpdateChatbot)
	bots.Delete("/:id", h.DeleteChatbot)
	bots.Post("/:id/api-key", h.RegenerateAPIKey)
	bots.Post("/:id/avatar", h.UploadAvatar)

	bots.Post("/:id/responses", h.CreateRule)
	bots.Get("/:id/responses", h.ListRules)
	bots.Put("/:id/responses/reorder", h.ReorderRules)
	bots.Put("/:id/responses/:ruleID", h.UpdateRule)
	bots.Delete("/:id/responses/:ruleID", h.DeleteRule)
	bots.Post("/:id/responses/:ruleID/enhance", h.EnhanceRuleResponse)
}
