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

type TemplateDB struct {
	ID          sql.NullString `db:"id"`
	Industry    sql.NullString `db:"industry"`
	Name        sql.NullString `db:"name"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
	RuleCount   int            `db:"rule_count"`
}

type TemplateRuleDB struct {
	ID         sql.NullString `db:"id"`
	TemplateID sql.NullString `db:"template_id"`
	Trigger    sql.NullString `db:"trigger"`
	Response   sql.NullString `db:"response"`
	Position   int            `db:"position"`
}

func (r *templatesRepository) ListTemplates(ctx context.Context) ([]entity.IndustryTemplate, []int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []TemplateDB

	if err := r.q.SelectContext(ctx, &rows, queryListTemplates); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListTemplates execution err")
		return nil, nil, err
	}

	templates := make([]entity.IndustryTemplate, 0, len(rows))
	counts := make([]int, 0, len(rows))
	for _, row := range rows {
		templates = append(templates, entity.IndustryTemplate{
			ID:          row.ID.String,
			Industry:    row.Industry.String,
			Name:        row.Name.String,
			Description: row.Description.String,
			CreatedAt:   row.CreatedAt,
		})
		counts = append(counts, row.RuleCount)
	}

	return templates, counts, nil
}

func (r *templatesRepository) GetTemplateByID(ctx context.Context, id string) (entity.IndustryTemplate, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var tpl TemplateDB

	query, args, err := sqlx.Named(queryGetTemplateByID, map[string]interface{}{"id": id})
	if err != nil {
		return entity.IndustryTemplate{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&tpl); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.IndustryTemplate{}, chatbot.ErrTemplateNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTemplateByID execution err")
		return entity.IndustryTemplate{}, err
	}

	return entity.IndustryTemplate{
		ID:          tpl.ID.String,
		Industry:    tpl.Industry.String,
		Name:        tpl.Name.String,
		Description: tpl.Description.String,
		CreatedAt:   tpl.CreatedAt,
	}, nil
}

func (r *templatesRepository) ListTemplateRules(ctx context.Context, templateID string) ([]entity.TemplateRule, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []TemplateRuleDB

	query, args, err := sqlx.Named(queryListTemplateRules, map[string]interface{}{"template_id": templateID})
	if err != nil {
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListTemplateRules execution err")
		return nil, err
	}

	rules := make([]entity.TemplateRule, 0, len(rows))
	for _, row := range rows {
		rules = append(rules, entity.TemplateRule{
			ID:         row.ID.String,
			TemplateID: row.TemplateID.String,
			Trigger:    row.Trigger.String,
			Response:   row.Response.String,
			Position:   row.Position,
		})
	}

	return rules, nil
}
