package interactionService

import (
	"LulaiPlatform/internal/api/interaction"
	"LulaiPlatform/internal/entity"
	"database/sql"
	"time"

	"golang.org/x/net/context"
)

func (s *interactionServiceImpl) SubmitFeedback(ctx context.Context, apiKey string, req interaction.FeedbackRequest) error {
	bot, err := s.chatbotByAPIKey(ctx, apiKey)
	if err != nil {
		return err
	}

	repo, err := s.interactionRepo.NewClient(false)
	if err != nil {
		return err
	}

	message, err := repo.Conversations.GetMessageByID(ctx, req.MessageID)
	if err != nil {
		return err
	}

	conversation, err := repo.Conversations.GetConversationByID(ctx, message.ConversationID)
	if err != nil {
		return err
	}
	if conversation.ChatbotID != bot.ID {
		return interaction.ErrMessageNotFound
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return err
	}

	feedback := entity.MessageFeedback{
		ID:        id,
		MessageID: req.MessageID,
		Rating:    req.Rating,
		CreatedAt: time.Now(),
	}
	if req.Comment != "" {
		feedback.Comment = sql.NullString{String: req.Comment, Valid: true}
	}

	return repo.Conversations.CreateFeedback(ctx, feedback)
}
