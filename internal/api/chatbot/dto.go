package chatbot

import "time"

type CreateChatbotRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=100"`
	Description    string `json:"description" validate:"omitempty,max=500"`
	Industry       string `json:"industry" validate:"required,max=100"`
	TemplateID     string `json:"template_id" validate:"omitempty"`
	WidgetTheme    string `json:"widget_theme" validate:"omitempty,max=50"`
	WidgetGreeting string `json:"widget_greeting" validate:"omitempty,max=300"`
	VoiceID        string `json:"voice_id" validate:"omitempty,max=100"`
}

type UpdateChatbotRequest struct {
	Name           string `json:"name" validate:"omitempty,min=2,max=100"`
	Description    string `json:"description" validate:"omitempty,max=500"`
	Industry       string `json:"industry" validate:"omitempty,max=100"`
	WidgetTheme    string `json:"widget_theme" validate:"omitempty,max=50"`
	WidgetGreeting string `json:"widget_greeting" validate:"omitempty,max=300"`
	VoiceID        string `json:"voice_id" validate:"omitempty,max=100"`
}

type CreateRuleRequest struct {
	Trigger  string `json:"trigger" validate:"required,min=1,max=300"`
	Response string `json:"response" validate:"required,min=1"`
	IsAI     bool   `json:"is_ai"`
}

type UpdateRuleRequest struct {
	Trigger  string `json:"trigger" validate:"omitempty,min=1,max=300"`
	Response string `json:"response" validate:"omitempty,min=1"`
	IsAI     *bool  `json:"is_ai" validate:"omitempty"`
}

type ReorderRulesRequest struct {
	RuleIDs []string `json:"rule_ids" validate:"required,min=1,dive,required"`
}

type ChatbotResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Industry       string    `json:"industry"`
	APIKey         string    `json:"api_key"`
	AvatarURL      string    `json:"avatar_url"`
	WidgetTheme    string    `json:"widget_theme"`
	WidgetGreeting string    `json:"widget_greeting"`
	VoiceID        string    `json:"voice_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ChatbotListResponse struct {
	Chatbots []ChatbotResponse `json:"chatbots"`
	Total    int               `json:"total"`
}

type RuleResponse struct {
	ID           string    `json:"id"`
	Trigger      string    `json:"trigger"`
	Response     string    `json:"response"`
	IsAI         bool      `json:"is_ai"`
	IsAIEnhanced bool      `json:"is_ai_enhanced"`
	Position     int       `json:"position"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
}

type TemplateResponse struct {
	ID          string `json:"id"`
	Industry    string `json:"industry"`
	Name        string `json:"name"`
	Description string `json:"description"`
	RuleCount   int    `json:"rule_count"`
}

type TemplateListResponse struct {
	Templates []TemplateResponse `json:"templates"`
}

type APIKeyResponse struct {
	APIKey string `json:"api_key"`
}
