package analyticsService

import (
	"LulaiPlatform/internal/api/analytics"
	"LulaiPlatform/internal/entity"
	"strings"
	"time"

	"golang.org/x/net/context"
)

const popularTopicsLimit = 10

func (s *analyticsServiceImpl) ChatbotAnalytics(ctx context.Context, userID string, chatbotID string, from, to time.Time) (analytics.AnalyticsResponse, error) {
	if err := s.ownedChatbot(ctx, userID, chatbotID); err != nil {
		return analytics.AnalyticsResponse{}, err
	}

	repo, err := s.analyticsRepo.NewClient(false)
	if err != nil {
		return analytics.AnalyticsResponse{}, err
	}

	overview, err := repo.Analytics.Overview(ctx, chatbotID, from, to)
	if err != nil {
		return analytics.AnalyticsResponse{}, err
	}

	avgLength, err := repo.Analytics.AvgConversationLength(ctx, chatbotID, from, to)
	if err != nil {
		return analytics.AnalyticsResponse{}, err
	}

	avgResponseTime, err := repo.Analytics.AvgResponseTimeMs(ctx, chatbotID, from, to)
	if err != nil {
		return analytics.AnalyticsResponse{}, err
	}

	daily, err := repo.Analytics.DailyMetrics(ctx, chatbotID, from, to)
	if err != nil {
		return analytics.AnalyticsResponse{}, err
	}

	topics, err := repo.Analytics.PopularTopics(ctx, chatbotID, from, to, popularTopicsLimit)
	if err != nil {
		return analytics.AnalyticsResponse{}, err
	}

	return makeAnalyticsResponse(overview, avgLength, avgResponseTime, daily, topics), nil
}

func (s *analyticsServiceImpl) ListConversations(ctx context.Context, userID string, chatbotID string, from, to time.Time, limit, offset int) (analytics.ConversationListResponse, error) {
	if err := s.ownedChatbot(ctx, userID, chatbotID); err != nil {
		return analytics.ConversationListResponse{}, err
	}

	repo, err := s.analyticsRepo.NewClient(false)
	if err != nil {
		return analytics.ConversationListResponse{}, err
	}

	total, err := repo.Analytics.CountConversations(ctx, chatbotID, from, to)
	if err != nil {
		return analytics.ConversationListResponse{}, err
	}

	summaries, err := repo.Analytics.ListConversations(ctx, chatbotID, from, to, limit, offset)
	if err != nil {
		return analytics.ConversationListResponse{}, err
	}

	conversations := make([]analytics.ConversationSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		conversations = append(conversations, analytics.ConversationSummaryResponse{
			ID:              summary.ID,
			VisitorID:       summary.VisitorID,
			MessageCount:    summary.MessageCount,
			FirstMessage:    summary.FirstMessage,
			LastMessage:     summary.LastMessage,
			Converted:       summary.Converted,
			ConversionValue: summary.ConversionValue.Float64,
			StartedAt:       summary.CreatedAt,
			LastActivityAt:  summary.UpdatedAt,
		})
	}

	return analytics.ConversationListResponse{
		Conversations: conversations,
		Total:         total,
		Limit:         limit,
		Offset:        offset,
	}, nil
}

func (s *analyticsServiceImpl) ConversationDetail(ctx context.Context, userID string, conversationID string) (analytics.ConversationDetailResponse, error) {
	repo, err := s.analyticsRepo.NewClient(false)
	if err != nil {
		return analytics.ConversationDetailResponse{}, err
	}

	conversation, err := repo.Analytics.GetConversation(ctx, conversationID)
	if err != nil {
		return analytics.ConversationDetailResponse{}, err
	}

	if err := s.ownedChatbot(ctx, userID, conversation.ChatbotID); err != nil {
		return analytics.ConversationDetailResponse{}, analytics.ErrConversationNotFound
	}

	messages, err := repo.Analytics.ListMessages(ctx, conversationID)
	if err != nil {
		return analytics.ConversationDetailResponse{}, err
	}

	feedback, err := repo.Analytics.ListFeedback(ctx, conversationID)
	if err != nil {
		return analytics.ConversationDetailResponse{}, err
	}

	detail := analytics.ConversationDetailResponse{
		ID:              conversation.ID,
		ChatbotID:       conversation.ChatbotID,
		VisitorID:       conversation.VisitorID,
		Converted:       conversation.Converted,
		ConversionValue: conversation.ConversionValue.Float64,
		StartedAt:       conversation.CreatedAt,
		LastActivityAt:  conversation.UpdatedAt,
		Messages:        make([]analytics.MessageResponse, 0, len(messages)),
		Feedback:        make([]analytics.FeedbackResponse, 0, len(feedback)),
	}

	for _, message := range messages {
		detail.Messages = append(detail.Messages, analytics.MessageResponse{
			ID:              message.ID,
			Sender:          message.Sender,
			Content:         message.Content,
			Matched:         message.Matched,
			IsAI:            message.IsAI,
			IsGeneralAI:     message.IsGeneralAI,
			ResponseID:      message.ResponseID.String,
			MatchedTriggers: message.MatchedTriggers,
			ConfidenceScore: message.ConfidenceScore.Float64,
			SentAt:          message.CreatedAt,
		})
	}

	for _, row := range feedback {
		detail.Feedback = append(detail.Feedback, analytics.FeedbackResponse{
			ID:          row.ID,
			MessageID:   row.MessageID,
			Rating:      row.Rating,
			Comment:     row.Comment.String,
			SubmittedAt: row.CreatedAt,
		})
	}

	return detail, nil
}

func (s *analyticsServiceImpl) MarkConversionForOwner(ctx context.Context, userID string, conversationID string, value float64) error {
	repo, err := s.analyticsRepo.NewClient(false)
	if err != nil {
		return err
	}

	conversation, err := repo.Analytics.GetConversation(ctx, conversationID)
	if err != nil {
		return err
	}

	if err := s.ownedChatbot(ctx, userID, conversation.ChatbotID); err != nil {
		return analytics.ErrConversationNotFound
	}

	return repo.Analytics.MarkConversion(ctx, conversationID, value)
}

// MarkConversion records a widget-driven purchase without an ownership
// check. It is called from the order flow, never from a user-facing route.
func (s *analyticsServiceImpl) MarkConversion(ctx context.Context, conversationID string, value float64) error {
	repo, err := s.analyticsRepo.NewClient(false)
	if err != nil {
		return err
	}

	return repo.Analytics.MarkConversion(ctx, conversationID, value)
}

func (s *analyticsServiceImpl) ownedChatbot(ctx context.Context, userID string, chatbotID string) error {
	repo, err := s.chatbotRepo.NewClient(false)
	if err != nil {
		return err
	}

	bot, err := repo.Chatbots.GetChatbotByID(ctx, chatbotID)
	if err != nil {
		return analytics.ErrChatbotNotFound
	}
	if bot.UserID != userID {
		return analytics.ErrChatbotNotFound
	}

	return nil
}

func makeAnalyticsResponse(
	overview entity.ChatbotOverview,
	avgLength float64,
	avgResponseTime float64,
	daily []entity.DailyMetric,
	topics []entity.TopicCount,
) analytics.AnalyticsResponse {
	resp := analytics.AnalyticsResponse{
		Overview: analytics.OverviewResponse{
			TotalConversations:    overview.TotalConversations,
			TotalMessages:         overview.TotalMessages,
			UniqueVisitors:        overview.UniqueVisitors,
			SuccessfulMatches:     overview.SuccessfulMatches,
			AIFallbacks:           overview.AIFallbacks,
			AvgFeedbackScore:      overview.AvgFeedbackScore,
			AvgConversationLength: avgLength,
			AvgResponseTimeMs:     avgResponseTime,
			ConversionCount:       overview.ConversionCount,
			ConversionRate:        overview.ConversionRate,
			TotalConversionValue:  overview.TotalConversionValue,
		},
		DailyMetrics:  make([]analytics.DailyMetricResponse, 0, len(daily)),
		PopularTopics: make([]analytics.TopicResponse, 0, len(topics)),
	}

	for _, metric := range daily {
		resp.DailyMetrics = append(resp.DailyMetrics, analytics.DailyMetricResponse{
			Date:              metric.Date.Format("2006-01-02"),
			ConversationCount: metric.ConversationCount,
			MessageCount:      metric.MessageCount,
			ConversionCount:   metric.ConversionCount,
			ConversionRate:    metric.ConversionRate,
		})
	}

	for _, topic := range topics {
		trigger := strings.TrimSpace(topic.Trigger)
		if trigger == "" {
			continue
		}
		resp.PopularTopics = append(resp.PopularTopics, analytics.TopicResponse{
			Trigger: trigger,
			Count:   topic.Count,
		})
	}

	return resp
}
