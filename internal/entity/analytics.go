package entity

import (
	"database/sql"
	"time"
)

// ChatbotOverview aggregates a chatbot's conversation log over a date range.
type ChatbotOverview struct {
	TotalConversations   int     `db:"total_conversations"`
	TotalMessages        int     `db:"total_messages"`
	UniqueVisitors       int     `db:"unique_visitors"`
	SuccessfulMatches    int     `db:"successful_matches"`
	AIFallbacks          int     `db:"ai_fallbacks"`
	AvgFeedbackScore     float64 `db:"avg_feedback_score"`
	ConversionCount      int     `db:"conversion_count"`
	ConversionRate       float64 `db:"conversion_rate"`
	TotalConversionValue float64 `db:"total_conversion_value"`
}

type DailyMetric struct {
	Date              time.Time `db:"date"`
	ConversationCount int       `db:"conversation_count"`
	MessageCount      int       `db:"message_count"`
	ConversionCount   int       `db:"conversion_count"`
	ConversionRate    float64   `db:"conversion_rate"`
}

type TopicCount struct {
	Trigger string `db:"trigger"`
	Count   int    `db:"count"`
}

type ConversationSummary struct {
	ID              string          `db:"id"`
	VisitorID       string          `db:"visitor_id"`
	MessageCount    int             `db:"message_count"`
	FirstMessage    string          `db:"first_message"`
	LastMessage     string          `db:"last_message"`
	Converted       bool            `db:"converted"`
	ConversionValue sql.NullFloat64 `db:"conversion_value"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}
