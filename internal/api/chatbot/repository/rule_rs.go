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

type RuleDB struct {
	ID           sql.NullString `db:"id"`
	ChatbotID    sql.NullString `db:"chatbot_id"`
	Trigger      sql.NullString `db:"trigger"`
	Response     sql.NullString `db:"response"`
	IsAI         bool           `db:"is_ai"`
	IsAIEnhanced bool           `db:"is_ai_enhanced"`
	Position     int            `db:"position"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (r *rulesRepository) CreateRule(ctx context.Context, rule entity.TriggerRule) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":             rule.ID,
		"chatbot_id":     rule.ChatbotID,
		"trigger":        rule.Trigger,
		"response":       rule.Response,
		"is_ai":          rule.IsAI,
		"is_ai_enhanced": rule.IsAIEnhanced,
		"position":       rule.Position,
		"created_at":     rule.CreatedAt,
		"updated_at":     rule.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateRule, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateRule named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating trigger rule")
		return err
	}

	return nil
}

func (r *rulesRepository) GetRuleByID(ctx context.Context, id string) (entity.TriggerRule, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rule RuleDB

	query, args, err := sqlx.Named(queryGetRuleByID, map[string]interface{}{"id": id})
	if err != nil {
		return entity.TriggerRule{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&rule); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.TriggerRule{}, chatbot.ErrRuleNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRuleByID execution err")
		return entity.TriggerRule{}, err
	}

	return r.makeRule(rule), nil
}

func (r *rulesRepository) ListRulesByChatbot(ctx context.Context, chatbotID string) ([]entity.TriggerRule, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []RuleDB

	query, args, err := sqlx.Named(queryListRulesByChatbot, map[string]interface{}{"chatbot_id": chatbotID})
	if err != nil {
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListRulesByChatbot execution err")
		return nil, err
	}

	rules := make([]entity.TriggerRule, 0, len(rows))
	for _, row := range rows {
		rules = append(rules, r.makeRule(row))
	}

	return rules, nil
}

func (r *rulesRepository) NextPosition(ctx context.Context, chatbotID string) (int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var next int

	query, args, err := sqlx.Named(queryNextRulePosition, map[string]interface{}{"chatbot_id": chatbotID})
	if err != nil {
		return 0, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&next); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("NextPosition execution err")
		return 0, err
	}

	return next, nil
}

func (r *rulesRepository) UpdateRule(ctx context.Context, rule entity.TriggerRule) error {
	argsKV := map[string]interface{}{
		"id":         rule.ID,
		"trigger":    rule.Trigger,
		"response":   rule.Response,
		"is_ai":      rule.IsAI,
		"updated_at": time.Now(),
	}

	return r.execExpectingRows(ctx, queryUpdateRule, argsKV, "UpdateRule")
}

func (r *rulesRepository) SetRulePosition(ctx context.Context, id string, position int) error {
	argsKV := map[string]interface{}{
		"id":         id,
		"position":   position,
		"updated_at": time.Now(),
	}

	return r.execExpectingRows(ctx, querySetRulePosition, argsKV, "SetRulePosition")
}

func (r *rulesRepository) MarkAIEnhanced(ctx context.Context, id string, response string) error {
	argsKV := map[string]interface{}{
		"id":         id,
		"response":   response,
		"updated_at": time.Now(),
	}

	return r.execExpectingRows(ctx, queryMarkRuleAIEnhanced, argsKV, "MarkAIEnhanced")
}

func (r *rulesRepository) DeleteRule(ctx context.Context, id string) error {
	return r.execExpectingRows(ctx, queryDeleteRule, map[string]interface{}{"id": id}, "DeleteRule")
}

func (r *rulesRepository) execExpectingRows(ctx context.Context, namedQuery string, argsKV map[string]interface{}, operation string) error {
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
		return chatbot.ErrRuleNotFound
	}

	return nil
}

func (r *rulesRepository) makeRule(rule RuleDB) entity.TriggerRule {
	return entity.TriggerRule{
		ID:           rule.ID.String,
		ChatbotID:    rule.ChatbotID.String,
		Trigger:      rule.Trigger.String,
		Response:     rule.Response.String,
		IsAI:         rule.IsAI,
		IsAIEnhanced: rule.IsAIEnhanced,
		Position:     rule.Position,
		CreatedAt:    rule.CreatedAt,
		UpdatedAt:    rule.UpdatedAt,
	}
}
