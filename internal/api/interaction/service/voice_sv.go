package interactionService

import (
	"LulaiPlatform/internal/api/interaction"
	"mime/multipart"
	"strings"

	"golang.org/x/net/context"
)

// InteractVoice transcribes a recorded widget message and runs it through
// the same pipeline as a typed one, replying with audio as well.
func (s *interactionServiceImpl) InteractVoice(ctx context.Context, apiKey string, audioFile *multipart.FileHeader, conversationID string, visitorID string) (interaction.InteractResponse, error) {
	if audioFile == nil {
		return interaction.InteractResponse{}, interaction.ErrInvalidAudioFile
	}

	if err := s.utils.ValidateAudioFile(audioFile); err != nil {
		return interaction.InteractResponse{}, interaction.ErrInvalidAudioFile
	}

	file, err := audioFile.Open()
	if err != nil {
		return interaction.InteractResponse{}, interaction.ErrInvalidAudioFile
	}
	defer file.Close()

	transcript, err := s.transcriber.Transcribe(ctx, file, audioFile.Filename)
	if err != nil {
		return interaction.InteractResponse{}, interaction.ErrTranscriptionFailed
	}

	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return interaction.InteractResponse{}, interaction.ErrTranscriptionFailed
	}

	return s.Interact(ctx, apiKey, interaction.InteractRequest{
		Message:        transcript,
		ConversationID: conversationID,
		VisitorID:      visitorID,
		Voice:          true,
	})
}
