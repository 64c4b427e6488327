package interactionRepository

import (
	"LulaiPlatform/internal/api/interaction"
	"LulaiPlatform/internal/entity"
	contextPkg "LulaiPlatform/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func (r *conversationsRepository) CreateConversation(ctx context.Context, conversation entity.Conversation) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":         conversation.ID,
		"chatbot_id": conversation.ChatbotID,
		"visitor_id": conversation.VisitorID,
		"created_at": conversation.CreatedAt,
		"updated_at": conversation.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateConversation, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateConversation named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating conversation")
		return err
	}

	return nil
}

func (r *conversationsRepository) GetConversationByID(ctx context.Context, id string) (entity.Conversation, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var conversation entity.Conversation

	query, args, err := sqlx.Named(queryGetConversationByID, map[string]interface{}{"id": id})
	if err != nil {
		return entity.Conversation{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&conversation); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Conversation{}, interaction.ErrConversationNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetConversationByID execution err")
		return entity.Conversation{}, err
	}

	return conversation, nil
}

func (r *conversationsRepository) TouchConversation(ctx context.Context, id string) error {
	query, args, err := sqlx.Named(queryTouchConversation, map[string]interface{}{
		"id":         id,
		"updated_at": time.Now(),
	})
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	return err
}

func (r *conversationsRepository) CreateMessage(ctx context.Context, message entity.ConversationMessage) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":               message.ID,
		"conversation_id":  message.ConversationID,
		"sender":           message.Sender,
		"content":          message.Content,
		"matched":          message.Matched,
		"is_ai":            message.IsAI,
		"is_general_ai":    message.IsGeneralAI,
		"response_id":      message.ResponseID,
		"matched_triggers": message.MatchedTriggers,
		"confidence_score": message.ConfidenceScore,
		"audio_url":        message.AudioURL,
		"response_time_ms": message.ResponseTimeMs,
		"created_at":       message.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateMessage, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateMessage named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating conversation message")
		return err
	}

	return nil
}

func (r *conversationsRepository) GetMessageByID(ctx context.Context, id string) (entity.ConversationMessage, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var message entity.ConversationMessage

	query, args, err := sqlx.Named(queryGetMessageByID, map[string]interface{}{"id": id})
	if err != nil {
		return entity.ConversationMessage{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&message); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.ConversationMessage{}, interaction.ErrMessageNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetMessageByID execution err")
		return entity.ConversationMessage{}, err
	}

	return message, nil
}

func (r *conversationsRepository) CreateFeedback(ctx context.Context, feedback entity.MessageFeedback) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":         feedback.ID,
		"message_id": feedback.MessageID,
		"rating":     feedback.Rating,
		"comment":    feedback.Comment,
		"created_at": feedback.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateFeedback, argsKV)
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating feedback")
		return err
	}

	return nil
}

func (r *conversationsRepository) CountBotMessagesForUserInMonth(ctx context.Context, userID string) (int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var total int

	query, args, err := sqlx.Named(queryCountBotMessagesForUserInMonth, map[string]interface{}{"user_id": userID})
	if err != nil {
		return 0, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountBotMessagesForUserInMonth execution err")
		return 0, err
	}

	return total, nil
}
