package analyticsService

import (
	"LulaiPlatform/internal/api/analytics"
	analyticsRepository "LulaiPlatform/internal/api/analytics/repository"
	chatbotRepository "LulaiPlatform/internal/api/chatbot/repository"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IAnalyticsService interface {
	ChatbotAnalytics(ctx context.Context, userID string, chatbotID string, from, to time.Time) (analytics.AnalyticsResponse, error)
	ListConversations(ctx context.Context, userID string, chatbotID string, from, to time.Time, limit, offset int) (analytics.ConversationListResponse, error)
	ConversationDetail(ctx context.Context, userID string, conversationID string) (analytics.ConversationDetailResponse, error)
	MarkConversionForOwner(ctx context.Context, userID string, conversationID string, value float64) error
	MarkConversion(ctx context.Context, conversationID string, value float64) error
}

type analyticsServiceImpl struct {
	log           *logrus.Logger
	analyticsRepo analyticsRepository.Repository
	chatbotRepo   chatbotRepository.Repository
}

func New(
	log *logrus.Logger,
	analyticsRepo analyticsRepository.Repository,
	chatbotRepo chatbotRepository.Repository,
) IAnalyticsService {
	return &analyticsServiceImpl{
		log:           log,
		analyticsRepo: analyticsRepo,
		chatbotRepo:   chatbotRepo,
	}
}
