package analytics

import "LulaiPlatform/pkg/response"

var (
	ErrChatbotNotFound      = response.NewError(404, "chatbot not found")
	ErrConversationNotFound = response.NewError(404, "conversation not found")
	ErrInvalidDateRange     = response.NewError(400, "invalid date range")
)
