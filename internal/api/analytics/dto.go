package analytics

import "time"

type OverviewResponse struct {
	TotalConversations    int     `json:"total_conversations"`
	TotalMessages         int     `json:"total_messages"`
	UniqueVisitors        int     `json:"unique_visitors"`
	SuccessfulMatches     int     `json:"successful_matches"`
	AIFallbacks           int     `json:"ai_fallbacks"`
	AvgFeedbackScore      float64 `json:"avg_feedback_score"`
	AvgConversationLength float64 `json:"avg_conversation_length"`
	AvgResponseTimeMs     float64 `json:"avg_response_time_ms"`
	ConversionCount       int     `json:"conversion_count"`
	ConversionRate        float64 `json:"conversion_rate"`
	TotalConversionValue  float64 `json:"total_conversion_value"`
}

type DailyMetricResponse struct {
	Date              string  `json:"date"`
	ConversationCount int     `json:"conversation_count"`
	MessageCount      int     `json:"message_count"`
	ConversionCount   int     `json:"conversion_count"`
	ConversionRate    float64 `json:"conversion_rate"`
}

type TopicResponse struct {
	Trigger string `json:"trigger"`
	Count   int    `json:"count"`
}

type AnalyticsResponse struct {
	Overview      OverviewResponse      `json:"overview"`
	DailyMetrics  []DailyMetricResponse `json:"daily_metrics"`
	PopularTopics []TopicResponse       `json:"popular_topics"`
}

type ConversationSummaryResponse struct {
	ID              string    `json:"id"`
	VisitorID       string    `json:"visitor_id"`
	MessageCount    int       `json:"message_count"`
	FirstMessage    string    `json:"first_message"`
	LastMessage     string    `json:"last_message"`
	Converted       bool      `json:"converted"`
	ConversionValue float64   `json:"conversion_value"`
	StartedAt       time.Time `json:"started_at"`
	LastActivityAt  time.Time `json:"last_activity_at"`
}

type ConversationListResponse struct {
	Conversations []ConversationSummaryResponse `json:"conversations"`
	Total         int                           `json:"total"`
	Limit         int                           `json:"limit"`
	Offset        int                           `json:"offset"`
}

type MessageResponse struct {
	ID              string    `json:"id"`
	Sender          string    `json:"sender"`
	Content         string    `json:"content"`
	Matched         bool      `json:"matched"`
	IsAI            bool      `json:"is_ai"`
	IsGeneralAI     bool      `json:"is_general_ai"`
	ResponseID      string    `json:"response_id,omitempty"`
	MatchedTriggers []string  `json:"matched_triggers,omitempty"`
	ConfidenceScore float64   `json:"confidence_score,omitempty"`
	SentAt          time.Time `json:"sent_at"`
}

type FeedbackResponse struct {
	ID          string    `json:"id"`
	MessageID   string    `json:"message_id"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type ConversationDetailResponse struct {
	ID              string             `json:"id"`
	ChatbotID       string             `json:"chatbot_id"`
	VisitorID       string             `json:"visitor_id"`
	Converted       bool               `json:"converted"`
	ConversionValue float64            `json:"conversion_value"`
	StartedAt       time.Time          `json:"started_at"`
	LastActivityAt  time.Time          `json:"last_activity_at"`
	Messages        []MessageResponse  `json:"messages"`
	Feedback        []FeedbackResponse `json:"feedback"`
}

type MarkConversionRequest struct {
	Value float64 `json:"value" validate:"omitempty,gte=0"`
}
