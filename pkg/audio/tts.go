package audio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// DefaultVoiceID is used when a widget has no voice configured.
const DefaultVoiceID = "pNInz6obpgDQGcFmaJgB"

type TTSService struct {
	apiKey string
}

func NewTTSService() *TTSService {
	return &TTSService{
		apiKey: os.Getenv("ELEVENLABS_API_KEY"),
	}
}

func (tts *TTSService) IsConfigured() bool {
	return tts.apiKey != ""
}

// GenerateAudio synthesizes the bot reply with the widget's configured
// voice and returns MP3 bytes.
func (tts *TTSService) GenerateAudio(text string, voiceID string) ([]byte, error) {
	if voiceID == "" {
		voiceID = DefaultVoiceID
	}

	url := "https://api.elevenlabs.io/v1/text-to-speech/" + voiceID

	requestBody := map[string]interface{}{
		"text":     text,
		"model_id": "eleven_multilingual_v2",
		"voice_settings": map[string]interface{}{
			"stability":         0.5,
			"similarity_boost":  0.8,
			"style":             0.0,
			"use_speaker_boost": true,
		},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", tts.apiKey)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ElevenLabs API error: %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}
