package chatbotRepository

import (
	"LulaiPlatform/internal/api/chatbot"
	"LulaiPlatform/internal/entity"
	contextPkg "LulaiPlatform/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ChatbotDB struct {
	ID             sql.NullString `db:"id"`
	UserID         sql.NullString `db:"user_id"`
	Name           sql.NullString `db:"name"`
	Description    sql.NullString `db:"description"`
	Industry       sql.NullString `db:"industry"`
	APIKey         sql.NullString `db:"api_key"`
	AvatarURL      sql.NullString `db:"avatar_url"`
	WidgetTheme    sql.NullString `db:"widget_theme"`
	WidgetGreeting sql.NullString `db:"widget_greeting"`
	VoiceID        sql.NullString `db:"voice_id"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func (r *chatbotsRepository) CreateChatbot(ctx context.Context, bot entity.Chatbot) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":              bot.ID,
		"user_id":         bot.UserID,
		"name":            bot.Name,
		"description":     bot.Description,
		"industry":        bot.Industry,
		"api_key":         bot.APIKey,
		"avatar_url":      bot.AvatarURL,
		"widget_theme":    bot.WidgetTheme,
		"widget_greeting": bot.WidgetGreeting,
		"voice_id":        bot.VoiceID,
		"created_at":      bot.CreatedAt,
		"updated_at":      bot.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateChatbot, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateChatbot named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating chatbot")
		return err
	}

	return nil
}

func (r *chatbotsRepository) GetChatbotByID(ctx context.Context, id string) (entity.Chatbot, error) {
	return r.getChatbot(ctx, queryGetChatbotByID, map[string]interface{}{"id": id}, "GetChatbotByID")
}

func (r *chatbotsRepository) GetChatbotByAPIKey(ctx context.Context, apiKey string) (entity.Chatbot, error) {
	return r.getChatbot(ctx, queryGetChatbotByAPIKey, map[string]interface{}{"api_key": apiKey}, "GetChatbotByAPIKey")
}

func (r *chatbotsRepository) getChatbot(ctx context.Context, namedQuery string, argsKV map[string]interface{}, operation string) (entity.Chatbot, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var bot ChatbotDB

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(operation + " named query preparation err")
		return entity.Chatbot{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&bot); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Chatbot{}, chatbot.ErrChatbotNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(operation + " execution err")
		return entity.Chatbot{}, err
	}

	return r.makeChatbot(bot), nil
}

func (r *chatbotsRepository) ListChatbotsByUser(ctx context.Context, userID string) ([]entity.Chatbot, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []ChatbotDB

	query, args, err := sqlx.Named(queryListChatbotsByUser, map[string]interface{}{"user_id": userID})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListChatbotsByUser named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListChatbotsByUser execution err")
		return nil, err
	}

	bots := make([]entity.Chatbot, 0, len(rows))
	for _, row := range rows {
		bots = append(bots, r.makeChatbot(row))
	}

	return bots, nil
}

func (r *chatbotsRepository) CountChatbotsByUser(ctx context.Context, userID string) (int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var total int

	query, args, err := sqlx.Named(queryCountChatbotsByUser, map[string]interface{}{"user_id": userID})
	if err != nil {
		return 0, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountChatbotsByUser execution err")
		return 0, err
	}

	return total, nil
}

func (r *chatbotsRepository) UpdateChatbot(ctx context.Context, bot entity.Chatbot) error {
	argsKV := map[string]interface{}{
		"id":              bot.ID,
		"name":            bot.Name,
		"description":     bot.Description,
		"industry":        bot.Industry,
		"widget_theme":    bot.WidgetTheme,
		"widget_greeting": bot.WidgetGreeting,
		"voice_id":        bot.VoiceID,
		"updated_at":      time.Now(),
	}

	return r.execExpectingRows(ctx, queryUpdateChatbot, argsKV, "UpdateChatbot")
}

func (r *chatbotsRepository) UpdateAPIKey(ctx context.Context, id string, apiKey string) error {
	argsKV := map[string]interface{}{
		"id":         id,
		"api_key":    apiKey,
		"updated_at": time.Now(),
	}

	return r.execExpectingRows(ctx, queryUpdateChatbotAPIKey, argsKV, "UpdateAPIKey")
}

func (r *chatbotsRepository) UpdateAvatar(ctx context.Context, id string, avatarURL string) error {
	argsKV := map[string]interface{}{
		"id":         id,
		"avatar_url": avatarURL,
		"updated_at": time.Now(),
	}

	return r.execExpectingRows(ctx, queryUpdateChatbotAvatar, argsKV, "UpdateAvatar")
}

func (r *chatbotsRepository) DeleteChatbot(ctx context.Context, id string) error {
	return r.execExpectingRows(ctx, queryDeleteChatbot, map[string]interface{}{"id": id}, "DeleteChatbot")
}

func (r *chatbotsRepository) execExpectingRows(ctx context.Context, namedQuery string, argsKV map[string]interface{}, operation string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(operation + " named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(operation + " execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return chatbot.ErrChatbotNotFound
	}

	return nil
}

func (r *chatbotsRepository) makeChatbot(bot ChatbotDB) entity.Chatbot {
	return entity.Chatbot{
		ID:             bot.ID.String,
		UserID:         bot.UserID.String,
		Name:           bot.Name.String,
		Description:    bot.Description.String,
		Industry:       bot.Industry.String,
		APIKey:         bot.APIKey.String,
		AvatarURL:      bot.AvatarURL.String,
		WidgetTheme:    bot.WidgetTheme.String,
		WidgetGreeting: bot.WidgetGreeting.String,
		VoiceID:        bot.VoiceID.String,
		CreatedAt:      bot.CreatedAt,
		UpdatedAt:      bot.UpdatedAt,
	}
}
