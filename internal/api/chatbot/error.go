package chatbot

import "LulaiPlatform/pkg/response"

var (
	ErrChatbotNotFound      = response.NewError(404, "chatbot not found")
	ErrChatbotNotOwned      = response.NewError(403, "chatbot does not belong to user")
	ErrRuleNotFound         = response.NewError(404, "trigger rule not found")
	ErrTemplateNotFound     = response.NewError(404, "industry template not found")
	ErrChatbotQuotaExceeded = response.NewError(403, "chatbot quota exceeded for current plan")
	ErrInvalidRuleOrder     = response.NewError(400, "rule order does not match chatbot rules")
	ErrInvalidFileType      = response.NewError(400, "invalid file type")
	ErrFailedToUpload       = response.NewError(500, "failed to upload file")
	ErrEnhanceFailed        = response.NewError(502, "failed to enhance response")
)
