package chatbotService

import (
	"LulaiPlatform/internal/api/chatbot"
	chatbotRepository "LulaiPlatform/internal/api/chatbot/repository"
	"LulaiPlatform/internal/entity"
	"LulaiPlatform/pkg/openai"
	"LulaiPlatform/pkg/redis"
	"LulaiPlatform/pkg/s3"
	"LulaiPlatform/pkg/utils"
	"context"
	"mime/multipart"

	"github.com/sirupsen/logrus"
)

// PlanProvider reports the billing plan a user is currently on. The
// subscription service implements it.
type PlanProvider interface {
	ActivePlan(ctx context.Context, userID string) (entity.Plan, error)
}

type IChatbotService interface {
	CreateChatbot(ctx context.Context, userID string, req chatbot.CreateChatbotRequest) (chatbot.ChatbotResponse, error)
	ListChatbots(ctx context.Context, userID string) (chatbot.ChatbotListResponse, error)
	GetChatbot(ctx context.Context, userID string, chatbotID string) (chatbot.ChatbotResponse, error)
	UpdateChatbot(ctx context.Context, userID string, chatbotID string, req chatbot.UpdateChatbotRequest) error
	DeleteChatbot(ctx context.Context, userID string, chatbotID string) error
	RegenerateAPIKey(ctx context.Context, userID string, chatbotID string) (chatbot.APIKeyResponse, error)
	UploadAvatar(ctx context.Context, userID string, chatbotID string, avatar *multipart.FileHeader) (string, error)

	CreateRule(ctx context.Context, userID string, chatbotID string, req chatbot.CreateRuleRequest) (chatbot.RuleResponse, error)
	ListRules(ctx context.Context, userID string, chatbotID string) (chatbot.RuleListResponse, error)
	UpdateRule(ctx context.Context, userID string, chatbotID string, ruleID string, req chatbot.UpdateRuleRequest) error
	ReorderRules(ctx context.Context, userID string, chatbotID string, req chatbot.ReorderRulesRequest) error
	DeleteRule(ctx context.Context, userID string, chatbotID string, ruleID string) error
	EnhanceRuleResponse(ctx context.Context, userID string, chatbotID string, ruleID string) (chatbot.RuleResponse, error)

	ListTemplates(ctx context.Context) (chatbot.TemplateListResponse, error)
}

type chatbotServiceImpl struct {
	log         *logrus.Logger
	chatbotRepo chatbotRepository.Repository
	utils       utils.IUtils
	redisServer redis.IRedis
	s3Client    s3.ItfS3
	chatGPT     openai.IChatGPT
	plans       PlanProvider
}

func New(
	log *logrus.Logger,
	chatbotRepo chatbotRepository.Repository,
	utils utils.IUtils,
	redisServer redis.IRedis,
	s3Client s3.ItfS3,
	chatGPT openai.IChatGPT,
	plans PlanProvider,
) IChatbotService {
	return &chatbotServiceImpl{
		log:         log,
		chatbotRepo: chatbotRepo,
		utils:       utils,
		redisServer: redisServer,
		s3Client:    s3Client,
		chatGPT:     chatGPT,
		plans:       plans,
	}
}
