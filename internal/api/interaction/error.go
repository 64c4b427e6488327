package interaction

import "LulaiPlatform/pkg/response"

var (
	ErrInvalidAPIKey        = response.NewError(401, "invalid widget api key")
	ErrConversationNotFound = response.NewError(404, "conversation not found")
	ErrMessageNotFound      = response.NewError(404, "message not found")
	ErrInvalidAudioFile     = response.NewError(400, "invalid audio file")
	ErrTranscriptionFailed  = response.NewError(502, "failed to transcribe audio")
)
