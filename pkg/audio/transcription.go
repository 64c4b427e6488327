package audio

import (
	"context"
	"io"
	"os"

	"github.com/sashabaranov/go-openai"
)

type TranscriptionService struct {
	client *openai.Client
}

func NewTranscriptionService() *TranscriptionService {
	apiKey := os.Getenv("OPENAI_API_KEY")
	return &TranscriptionService{
		client: openai.NewClient(apiKey),
	}
}

// Transcribe converts a widget voice message into text via Whisper.
func (t *TranscriptionService) Transcribe(ctx context.Context, audio io.Reader, fileName string) (string, error) {
	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   audio,
		FilePath: fileName,
		Language: "en",
	})
	if err != nil {
		return "", err
	}

	return resp.Text, nil
}
