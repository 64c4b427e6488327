package entity

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type Conversation struct {
	ID              string          `db:"id"`
	ChatbotID       string          `db:"chatbot_id"`
	VisitorID       string          `db:"visitor_id"`
	Converted       bool            `db:"converted"`
	ConversionValue sql.NullFloat64 `db:"conversion_value"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

type ConversationMessage struct {
	ID              string          `db:"id"`
	ConversationID  string          `db:"conversation_id"`
	Sender          string          `db:"sender"`
	Content         string          `db:"content"`
	Matched         bool            `db:"matched"`
	IsAI            bool            `db:"is_ai"`
	IsGeneralAI     bool            `db:"is_general_ai"`
	ResponseID      sql.NullString  `db:"response_id"`
	MatchedTriggers pq.StringArray  `db:"matched_triggers"`
	ConfidenceScore sql.NullFloat64 `db:"confidence_score"`
	AudioURL        sql.NullString  `db:"audio_url"`
	ResponseTimeMs  sql.NullInt64   `db:"response_time_ms"`
	CreatedAt       time.Time       `db:"created_at"`
}

const (
	MessageSenderUser = "user"
	MessageSenderBot  = "bot"
)

type MessageFeedback struct {
	ID        string         `db:"id"`
	MessageID string         `db:"message_id"`
	Rating    int            `db:"rating"`
	Comment   sql.NullString `db:"comment"`
	CreatedAt time.Time      `db:"created_at"`
}

// SpeechStreamResult is one partial transcript from the realtime speech
// service behind the voice widget.
type SpeechStreamResult struct {
	Transcript string `json:"transcript"`
	IsFinal    bool   `json:"is_final"`
}
