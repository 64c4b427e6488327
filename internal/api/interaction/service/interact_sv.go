package interactionService

import (
	"LulaiPlatform/internal/api/interaction"
	"LulaiPlatform/internal/entity"
	contextPkg "LulaiPlatform/pkg/context"
	"LulaiPlatform/pkg/matcher"
	"LulaiPlatform/pkg/redis"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const (
	fallbackTimeout = 10 * time.Second

	// Returned instead of an answer when the chatbot owner is over
	// their monthly message quota.
	overQuotaMessage = "This assistant has reached its monthly message limit. Please check back soon."
)

func (s *interactionServiceImpl) WidgetConfig(ctx context.Context, apiKey string) (interaction.WidgetConfigResponse, error) {
	bot, err := s.chatbotByAPIKey(ctx, apiKey)
	if err != nil {
		return interaction.WidgetConfigResponse{}, err
	}

	return interaction.WidgetConfigResponse{
		ChatbotName:  bot.Name,
		Greeting:     bot.WidgetGreeting,
		Theme:        bot.WidgetTheme,
		AvatarURL:    bot.AvatarURL,
		VoiceEnabled: bot.VoiceID != "" && s.tts.IsConfigured(),
	}, nil
}

func (s *interactionServiceImpl) Interact(ctx context.Context, apiKey string, req interaction.InteractRequest) (interaction.InteractResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)
	started := time.Now()

	bot, err := s.chatbotByAPIKey(ctx, apiKey)
	if err != nil {
		return interaction.InteractResponse{}, err
	}

	conversationID, err := s.ensureConversation(ctx, bot.ID, req.ConversationID, req.VisitorID)
	if err != nil {
		return interaction.InteractResponse{}, err
	}

	overQuota, err := s.isOverMessageQuota(ctx, bot.UserID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Quota check failed, allowing message")
		overQuota = false
	}

	if overQuota {
		return s.logTurn(ctx, bot, conversationID, req.Message, matcher.InteractionResult{
			Response: overQuotaMessage,
		}, started, false)
	}

	rules, err := s.loadRules(ctx, bot.ID)
	if err != nil {
		return interaction.InteractResponse{}, err
	}

	fallbackCtx, cancel := context.WithTimeout(ctx, fallbackTimeout)
	defer cancel()

	result := s.interactor.Interact(fallbackCtx, req.Message, rules, bot.Industry, bot.Name)

	return s.logTurn(ctx, bot, conversationID, req.Message, result, started, req.Voice)
}

func (s *interactionServiceImpl) ensureConversation(ctx context.Context, chatbotID string, conversationID string, visitorID string) (string, error) {
	repo, err := s.interactionRepo.NewClient(false)
	if err != nil {
		return "", err
	}

	if conversationID != "" {
		conversation, err := repo.Conversations.GetConversationByID(ctx, conversationID)
		if err != nil {
			return "", err
		}
		if conversation.ChatbotID != chatbotID {
			return "", interaction.ErrConversationNotFound
		}
		return conversation.ID, nil
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return "", err
	}

	now := time.Now()
	if err := repo.Conversations.CreateConversation(ctx, entity.Conversation{
		ID:        id,
		ChatbotID: chatbotID,
		VisitorID: visitorID,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return "", err
	}

	return id, nil
}

func (s *interactionServiceImpl) logTurn(ctx context.Context, bot entity.Chatbot, conversationID string, userInput string, result matcher.InteractionResult, started time.Time, voice bool) (interaction.InteractResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	var audioURL, audioServeURL string
	if voice && s.tts.IsConfigured() {
		audioBytes, err := s.tts.GenerateAudio(result.Response, bot.VoiceID)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("TTS generation failed, returning text only")
		} else {
			fileName := fmt.Sprintf("widget-audio/%s-%d.mp3", conversationID, time.Now().UnixNano())
			url, err := s.s3Client.UploadBytes(audioBytes, fileName, "audio/mpeg")
			if err != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"error":      err.Error(),
				}).Warn("Audio upload failed, returning text only")
			} else {
				audioURL = url
				audioServeURL = url
				if presigned, err := s.s3Client.PresignUrl(url); err == nil {
					audioServeURL = presigned
				}
			}
		}
	}

	repo, err := s.interactionRepo.NewClient(true)
	if err != nil {
		return interaction.InteractResponse{}, err
	}
	defer repo.Rollback()

	now := time.Now()

	userMessageID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		return interaction.InteractResponse{}, err
	}

	if err := repo.Conversations.CreateMessage(ctx, entity.ConversationMessage{
		ID:             userMessageID,
		ConversationID: conversationID,
		Sender:         entity.MessageSenderUser,
		Content:        userInput,
		CreatedAt:      now,
	}); err != nil {
		return interaction.InteractResponse{}, err
	}

	botMessageID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		return interaction.InteractResponse{}, err
	}

	// Strictly after the user message so transcripts sorted by created_at
	// keep the turn order even within one write.
	botMessage := entity.ConversationMessage{
		ID:             botMessageID,
		ConversationID: conversationID,
		Sender:         entity.MessageSenderBot,
		Content:        result.Response,
		Matched:        result.Matched,
		IsAI:           result.IsAI,
		IsGeneralAI:    result.IsGeneralAI,
		ResponseTimeMs: sql.NullInt64{Int64: time.Since(started).Milliseconds(), Valid: true},
		CreatedAt:      now.Add(time.Millisecond),
	}

	if result.Matched {
		botMessage.ResponseID = sql.NullString{String: result.ResponseID, Valid: result.ResponseID != ""}
		botMessage.MatchedTriggers = pq.StringArray(result.MatchedTriggers)
		botMessage.ConfidenceScore = sql.NullFloat64{Float64: result.ConfidenceScore, Valid: true}
	}
	if audioURL != "" {
		botMessage.AudioURL = sql.NullString{String: audioURL, Valid: true}
	}

	if err := repo.Conversations.CreateMessage(ctx, botMessage); err != nil {
		return interaction.InteractResponse{}, err
	}

	if err := repo.Conversations.TouchConversation(ctx, conversationID); err != nil {
		return interaction.InteractResponse{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit conversation turn")
		return interaction.InteractResponse{}, err
	}

	resp := interaction.InteractResponse{
		Response:       result.Response,
		Matched:        result.Matched,
		IsAI:           result.IsAI,
		IsGeneralAI:    result.IsGeneralAI,
		ConversationID: conversationID,
		MessageID:      botMessageID,
		AudioURL:       audioServeURL,
	}
	if result.Matched {
		resp.ResponseID = result.ResponseID
		resp.MatchedTriggers = result.MatchedTriggers
		resp.ConfidenceScore = result.ConfidenceScore
	}

	return resp, nil
}

func (s *interactionServiceImpl) chatbotByAPIKey(ctx context.Context, apiKey string) (entity.Chatbot, error) {
	if apiKey == "" {
		return entity.Chatbot{}, interaction.ErrInvalidAPIKey
	}

	repo, err := s.chatbotRepo.NewClient(false)
	if err != nil {
		return entity.Chatbot{}, err
	}

	bot, err := repo.Chatbots.GetChatbotByAPIKey(ctx, apiKey)
	if err != nil {
		return entity.Chatbot{}, interaction.ErrInvalidAPIKey
	}

	return bot, nil
}

func (s *interactionServiceImpl) isOverMessageQuota(ctx context.Context, userID string) (bool, error) {
	plan, err := s.plans.ActivePlan(ctx, userID)
	if err != nil {
		return false, err
	}

	repo, err := s.interactionRepo.NewClient(false)
	if err != nil {
		return false, err
	}

	used, err := repo.Conversations.CountBotMessagesForUserInMonth(ctx, userID)
	if err != nil {
		return false, err
	}

	return used >= plan.MessageQuota, nil
}

// loadRules serves the ordered trigger rules from the Redis cache,
// falling back to Postgres and repopulating the cache on a miss.
func (s *interactionServiceImpl) loadRules(ctx context.Context, chatbotID string) ([]matcher.TriggerRule, error) {
	requestID := contextPkg.GetRequestID(ctx)

	cached, err := s.redisServer.GetChatbotRules(ctx, chatbotID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Rule cache read failed, falling back to database")
	}
	if cached != nil {
		rules := make([]matcher.TriggerRule, 0, len(cached))
		for _, rule := range cached {
			rules = append(rules, matcher.TriggerRule{
				ID:       rule.ID,
				Trigger:  rule.Trigger,
				Response: rule.Response,
				IsAI:     rule.IsAI,
			})
		}
		return rules, nil
	}

	repo, err := s.chatbotRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	stored, err := repo.Rules.ListRulesByChatbot(ctx, chatbotID)
	if err != nil {
		return nil, err
	}

	rules := make([]matcher.TriggerRule, 0, len(stored))
	toCache := make([]redis.CachedRule, 0, len(stored))
	for _, rule := range stored {
		rules = append(rules, matcher.TriggerRule{
			ID:       rule.ID,
			Trigger:  rule.Trigger,
			Response: rule.Response,
			IsAI:     rule.IsAI,
		})
		toCache = append(toCache, redis.CachedRule{
			ID:       rule.ID,
			Trigger:  rule.Trigger,
			Response: rule.Response,
			IsAI:     rule.IsAI,
		})
	}

	if err := s.redisServer.SetChatbotRules(ctx, chatbotID, toCache); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Rule cache write failed")
	}

	return rules, nil
}
