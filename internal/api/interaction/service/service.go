package interactionService

import (
	"LulaiPlatform/internal/api/interaction"
	interactionRepository "LulaiPlatform/internal/api/interaction/repository"
	chatbotRepository "LulaiPlatform/internal/api/chatbot/repository"
	"LulaiPlatform/internal/entity"
	"LulaiPlatform/pkg/matcher"
	"LulaiPlatform/pkg/redis"
	"LulaiPlatform/pkg/s3"
	"LulaiPlatform/pkg/utils"
	"context"
	"io"
	"mime/multipart"

	"github.com/sirupsen/logrus"
)

// SpeechSynthesizer turns a bot reply into audio for the voice widget.
type SpeechSynthesizer interface {
	GenerateAudio(text string, voiceID string) ([]byte, error)
	IsConfigured() bool
}

// Transcriber converts widget voice recordings into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, fileName string) (string, error)
}

type PlanProvider interface {
	ActivePlan(ctx context.Context, userID string) (entity.Plan, error)
}

type IInteractionService interface {
	WidgetConfig(ctx context.Context, apiKey string) (interaction.WidgetConfigResponse, error)
	Interact(ctx context.Context, apiKey string, req interaction.InteractRequest) (interaction.InteractResponse, error)
	InteractVoice(ctx context.Context, apiKey string, audioFile *multipart.FileHeader, conversationID string, visitorID string) (interaction.InteractResponse, error)
	SubmitFeedback(ctx context.Context, apiKey string, req interaction.FeedbackRequest) error
}

type interactionServiceImpl struct {
	log             *logrus.Logger
	interactionRepo interactionRepository.Repository
	chatbotRepo     chatbotRepository.Repository
	redisServer     redis.IRedis
	interactor      *matcher.Interactor
	tts             SpeechSynthesizer
	transcriber     Transcriber
	s3Client        s3.ItfS3
	utils           utils.IUtils
	plans           PlanProvider
}

func New(
	log *logrus.Logger,
	interactionRepo interactionRepository.Repository,
	chatbotRepo chatbotRepository.Repository,
	redisServer redis.IRedis,
	fallback matcher.FallbackGenerator,
	tts SpeechSynthesizer,
	transcriber Transcriber,
	s3Client s3.ItfS3,
	utils utils.IUtils,
	plans PlanProvider,
) IInteractionService {
	return &interactionServiceImpl{
		log:             log,
		interactionRepo: interactionRepo,
		chatbotRepo:     chatbotRepo,
		redisServer:     redisServer,
		interactor:      matcher.NewInteractor(matcher.NewMatcher(), matcher.NewClassifier(), fallback),
		tts:             tts,
		transcriber:     transcriber,
		s3Client:        s3Client,
		utils:           utils,
		plans:           plans,
	}
}
