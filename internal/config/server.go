package config

import (
	"LulaiPlatform/database/postgres"
	analyticsHandler "LulaiPlatform/internal/api/analytics/handler"
	analyticsRepository "LulaiPlatform/internal/api/analytics/repository"
	analyticsService "LulaiPlatform/internal/api/analytics/service"
	authHandler "LulaiPlatform/internal/api/auth/handler"
	authRepository "LulaiPlatform/internal/api/auth/repository"
	authService "LulaiPlatform/internal/api/auth/service"
	chatbotHandler "LulaiPlatform/internal/api/chatbot/handler"
	chatbotRepository "LulaiPlatform/internal/api/chatbot/repository"
	chatbotService "LulaiPlatform/internal/api/chatbot/service"
	interactionHandler "LulaiPlatform/internal/api/interaction/handler"
	interactionRepository "LulaiPlatform/internal/api/interaction/repository"
	interactionService "LulaiPlatform/internal/api/interaction/service"
	storeHandler "LulaiPlatform/internal/api/store/handler"
	storeRepository "LulaiPlatform/internal/api/store/repository"
	storeService "LulaiPlatform/internal/api/store/service"
	subscriptionHandler "LulaiPlatform/internal/api/subscription/handler"
	subscriptionRepository "LulaiPlatform/internal/api/subscription/repository"
	subscriptionService "LulaiPlatform/internal/api/subscription/service"
	"LulaiPlatform/internal/middleware"
	"LulaiPlatform/pkg/audio"
	"LulaiPlatform/pkg/bcrypt"
	"LulaiPlatform/pkg/gemini"
	"LulaiPlatform/pkg/google"
	"LulaiPlatform/pkg/openai"
	"LulaiPlatform/pkg/redis"
	"LulaiPlatform/pkg/s3"
	"LulaiPlatform/pkg/smtp"
	stripePkg "LulaiPlatform/pkg/stripe"
	"LulaiPlatform/pkg/utils"
	websocketPkg "LulaiPlatform/pkg/websocket"
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine         *fiber.App
	db             *sqlx.DB
	log            *logrus.Logger
	middleware     middleware.Middleware
	validator      *validator.Validate
	utils          utils.IUtils
	bcryptUtils    bcrypt.IBcrypt
	handlers       []handler
	googleProvider google.ItfGoogle
	redisServer    redis.IRedis
	smtpMailer     smtp.ItfSmtp
	speechStream   websocketPkg.IWebsocket
	chatGPT        openai.IChatGPT
	geminiClient   gemini.IGemini
	stripeClient   stripePkg.IStripe
	ttsService     *audio.TTSService
	transcriber    *audio.TranscriptionService
	s3Client       s3.ItfS3
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithGoogleProvider(provider google.ItfGoogle) ServerOption {
	return func(s *Server) error {
		s.googleProvider = provider
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithSMTPMailer(smtpMailer smtp.ItfSmtp) ServerOption {
	return func(s *Server) error {
		s.smtpMailer = smtpMailer
		return nil
	}
}

func WithSpeechStream(speechStream websocketPkg.IWebsocket) ServerOption {
	return func(s *Server) error {
		s.speechStream = speechStream
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithChatGPTClient() ServerOption {
	return func(s *Server) error {
		s.chatGPT = openai.NewChatGPT()
		return nil
	}
}

func WithGeminiClient() ServerOption {
	return func(s *Server) error {
		client, err := gemini.NewGeminiClient()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create Gemini client: %v", err)
			}
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = client
		return nil
	}
}

func WithStripeClient() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before stripe client")
		}
		client := stripePkg.NewStripeService(s.log)
		if err := client.Init(); err != nil {
			s.log.Errorf("Failed to initialize Stripe client: %v", err)
			return fmt.Errorf("failed to initialize stripe client: %w", err)
		}
		s.stripeClient = client
		return nil
	}
}

func WithAudioServices() ServerOption {
	return func(s *Server) error {
		s.ttsService = audio.NewTTSService()
		s.transcriber = audio.NewTranscriptionService()
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Auth Domain
	authRepo := authRepository.New(s.db, s.log)
	authServices := authService.New(s.log, authRepo, s.bcryptUtils, s.utils, s.redisServer, s.smtpMailer, s.s3Client, s.googleProvider)
	authHandlers := authHandler.New(s.log, s.validator, s.middleware, authServices)

	if err := authServices.SeedRootAdmin(context.Background()); err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Failed to seed root admin account")
	}

	// Billing Domain
	subscriptionRepo := subscriptionRepository.New(s.db, s.log)
	subscriptionServices := subscriptionService.New(s.log, subscriptionRepo, s.stripeClient, s.utils)
	subscriptionHandlers := subscriptionHandler.New(s.log, s.validator, s.middleware, subscriptionServices)

	// Chatbot Domain
	chatbotRepo := chatbotRepository.New(s.db, s.log)
	chatbotServices := chatbotService.New(s.log, chatbotRepo, s.utils, s.redisServer, s.s3Client, s.chatGPT, subscriptionServices)
	chatbotHandlers := chatbotHandler.New(s.log, s.validator, s.middleware, chatbotServices)

	// Widget Interaction Domain
	interactionRepo := interactionRepository.New(s.db, s.log)
	interactionServices := interactionService.New(s.log, interactionRepo, chatbotRepo, s.redisServer, s.chatGPT, s.ttsService, s.transcriber, s.s3Client, s.utils, subscriptionServices)
	interactionHandlers := interactionHandler.New(s.log, s.validator, s.middleware, interactionServices, s.speechStream)

	// Analytics Domain
	analyticsRepo := analyticsRepository.New(s.db, s.log)
	analyticsServices := analyticsService.New(s.log, analyticsRepo, chatbotRepo)
	analyticsHandlers := analyticsHandler.New(s.log, s.validator, s.middleware, analyticsServices)

	// Storefront Domain
	storeRepo := storeRepository.New(s.db, s.log)
	storeServices := storeService.New(s.log, storeRepo, s.stripeClient, s.s3Client, s.geminiClient, s.smtpMailer, s.utils, analyticsServices)
	storeHandlers := storeHandler.New(s.log, s.validator, s.middleware, storeServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, authHandlers, subscriptionHandlers, chatbotHandlers, interactionHandlers, analyticsHandlers, storeHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	if err := s.engine.Listen(fmt.Sprintf(":%s", port)); err != nil {
		if s.speechStream != nil {
			s.speechStream.CloseConnections()
		}
		if s.geminiClient != nil {
			s.geminiClient.Close()
		}
		return err
	}

	return nil
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
