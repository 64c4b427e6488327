package analyticsRepository

import (
	"LulaiPlatform/internal/api/analytics"
	"LulaiPlatform/internal/entity"
	contextPkg "LulaiPlatform/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func (r *analyticsRepo) rebindNamed(query string, argsKV map[string]interface{}) (string, []interface{}, error) {
	q, args, err := sqlx.Named(query, argsKV)
	if err != nil {
		return "", nil, err
	}
	return r.q.Rebind(q), args, nil
}

func rangeArgs(chatbotID string, from, to time.Time) map[string]interface{} {
	return map[string]interface{}{
		"chatbot_id": chatbotID,
		"from":       from,
		"to":         to,
	}
}

func (r *analyticsRepo) Overview(ctx context.Context, chatbotID string, from, to time.Time) (entity.ChatbotOverview, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var overview entity.ChatbotOverview

	query, args, err := r.rebindNamed(queryOverview, rangeArgs(chatbotID, from, to))
	if err != nil {
		return entity.ChatbotOverview{}, err
	}

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&overview); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when loading analytics overview")
		return entity.ChatbotOverview{}, err
	}

	return overview, nil
}

func (r *analyticsRepo) AvgConversationLength(ctx context.Context, chatbotID string, from, to time.Time) (float64, error) {
	query, args, err := r.rebindNamed(queryAvgConversationLength, rangeArgs(chatbotID, from, to))
	if err != nil {
		return 0, err
	}

	var avg float64
	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&avg); err != nil {
		return 0, err
	}

	return avg, nil
}

func (r *analyticsRepo) AvgResponseTimeMs(ctx context.Context, chatbotID string, from, to time.Time) (float64, error) {
	query, args, err := r.rebindNamed(queryAvgResponseTimeMs, rangeArgs(chatbotID, from, to))
	if err != nil {
		return 0, err
	}

	var avg float64
	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&avg); err != nil {
		return 0, err
	}

	return avg, nil
}

func (r *analyticsRepo) DailyMetrics(ctx context.Context, chatbotID string, from, to time.Time) ([]entity.DailyMetric, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := r.rebindNamed(queryDailyMetrics, rangeArgs(chatbotID, from, to))
	if err != nil {
		return nil, err
	}

	var metrics []entity.DailyMetric
	if err := r.q.SelectContext(ctx, &metrics, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when loading daily metrics")
		return nil, err
	}

	return metrics, nil
}

func (r *analyticsRepo) PopularTopics(ctx context.Context, chatbotID string, from, to time.Time, limit int) ([]entity.TopicCount, error) {
	argsKV := rangeArgs(chatbotID, from, to)
	argsKV["limit"] = limit

	query, args, err := r.rebindNamed(queryPopularTopics, argsKV)
	if err != nil {
		return nil, err
	}

	var topics []entity.TopicCount
	if err := r.q.SelectContext(ctx, &topics, query, args...); err != nil {
		return nil, err
	}

	return topics, nil
}

func (r *analyticsRepo) CountConversations(ctx context.Context, chatbotID string, from, to time.Time) (int, error) {
	query, args, err := r.rebindNamed(queryCountConversations, rangeArgs(chatbotID, from, to))
	if err != nil {
		return 0, err
	}

	var total int
	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

func (r *analyticsRepo) ListConversations(ctx context.Context, chatbotID string, from, to time.Time, limit, offset int) ([]entity.ConversationSummary, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := rangeArgs(chatbotID, from, to)
	argsKV["limit"] = limit
	argsKV["offset"] = offset

	query, args, err := r.rebindNamed(queryListConversations, argsKV)
	if err != nil {
		return nil, err
	}

	var summaries []entity.ConversationSummary
	if err := r.q.SelectContext(ctx, &summaries, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when listing conversations")
		return nil, err
	}

	return summaries, nil
}

func (r *analyticsRepo) GetConversation(ctx context.Context, conversationID string) (entity.Conversation, error) {
	query, args, err := r.rebindNamed(queryGetConversation, map[string]interface{}{"conversation_id": conversationID})
	if err != nil {
		return entity.Conversation{}, err
	}

	var conversation entity.Conversation
	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&conversation); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Conversation{}, analytics.ErrConversationNotFound
		}
		return entity.Conversation{}, err
	}

	return conversation, nil
}

func (r *analyticsRepo) ListMessages(ctx context.Context, conversationID string) ([]entity.ConversationMessage, error) {
	query, args, err := r.rebindNamed(queryListMessages, map[string]interface{}{"conversation_id": conversationID})
	if err != nil {
		return nil, err
	}

	var messages []entity.ConversationMessage
	if err := r.q.SelectContext(ctx, &messages, query, args...); err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *analyticsRepo) ListFeedback(ctx context.Context, conversationID string) ([]entity.MessageFeedback, error) {
	query, args, err := r.rebindNamed(queryListFeedback, map[string]interface{}{"conversation_id": conversationID})
	if err != nil {
		return nil, err
	}

	var feedback []entity.MessageFeedback
	if err := r.q.SelectContext(ctx, &feedback, query, args...); err != nil {
		return nil, err
	}

	return feedback, nil
}

func (r *analyticsRepo) MarkConversion(ctx context.Context, conversationID string, value float64) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := r.rebindNamed(queryMarkConversion, map[string]interface{}{
		"conversation_id":  conversationID,
		"conversion_value": value,
	})
	if err != nil {
		return err
	}

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when marking conversion")
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return analytics.ErrConversationNotFound
	}

	return nil
}
