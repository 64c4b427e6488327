package main

import (
	"LulaiPlatform/internal/config"
	"LulaiPlatform/pkg/google"
	"LulaiPlatform/pkg/log"
	"LulaiPlatform/pkg/redis"
	"LulaiPlatform/pkg/smtp"
	websocketPkg "LulaiPlatform/pkg/websocket"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Fatalf("Error loading .env file: %v", err)
	}

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()
	googleProvider := google.New()
	redisServer := redis.New()
	smtpMailer := smtp.New()
	speechStream := websocketPkg.NewSpeechStreamClient()

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithDatabase(),
		config.WithGoogleProvider(googleProvider),
		config.WithRedisServer(redisServer),
		config.WithSMTPMailer(smtpMailer),
		config.WithSpeechStream(speechStream),
		config.WithMiddleware(),
		config.WithS3Client(),
		config.WithChatGPTClient(),
		config.WithGeminiClient(),
		config.WithStripeClient(),
		config.WithAudioServices(),
		config.WithBcryptUtils(),
		config.WithUtils(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")
	speechStream.CloseConnections()
}
