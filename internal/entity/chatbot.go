package entity

import "time"

type Chatbot struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	Name           string    `db:"name"`
	Description    string    `db:"description"`
	Industry       string    `db:"industry"`
	APIKey         string    `db:"api_key"`
	AvatarURL      string    `db:"avatar_url"`
	WidgetTheme    string    `db:"widget_theme"`
	WidgetGreeting string    `db:"widget_greeting"`
	VoiceID        string    `db:"voice_id"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type TriggerRule struct {
	ID           string    `db:"id"`
	ChatbotID    string    `db:"chatbot_id"`
	Trigger      string    `db:"trigger"`
	Response     string    `db:"response"`
	IsAI         bool      `db:"is_ai"`
	IsAIEnhanced bool      `db:"is_ai_enhanced"`
	Position     int       `db:"position"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type IndustryTemplate struct {
	ID          string    `db:"id"`
	Industry    string    `db:"industry"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

type TemplateRule struct {
	ID         string `db:"id"`
	TemplateID string `db:"template_id"`
	Trigger    string `db:"trigger"`
	Response   string `db:"response"`
	Position   int    `db:"position"`
}
