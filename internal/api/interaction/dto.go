package interaction

type InteractRequest struct {
	Message        string `json:"message" validate:"required,min=1"`
	ConversationID string `json:"conversation_id" validate:"omitempty"`
	VisitorID      string `json:"visitor_id" validate:"omitempty,max=100"`
	Voice          bool   `json:"voice"`
}

type InteractResponse struct {
	Response        string   `json:"response"`
	Matched         bool     `json:"matched"`
	IsAI            bool     `json:"is_ai"`
	IsGeneralAI     bool     `json:"is_general_ai"`
	ConversationID  string   `json:"conversation_id"`
	MessageID       string   `json:"message_id"`
	ResponseID      string   `json:"response_id,omitempty"`
	MatchedTriggers []string `json:"matched_triggers,omitempty"`
	ConfidenceScore float64  `json:"confidence_score,omitempty"`
	AudioURL        string   `json:"audio_url,omitempty"`
}

type FeedbackRequest struct {
	MessageID string `json:"message_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"omitempty,max=1000"`
}

type WidgetConfigResponse struct {
	ChatbotName  string `json:"chatbot_name"`
	Greeting     string `json:"greeting"`
	Theme        string `json:"theme"`
	AvatarURL    string `json:"avatar_url"`
	VoiceEnabled bool   `json:"voice_enabled"`
}
