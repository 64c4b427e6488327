package subscriptionRepository

import (
	"LulaiPlatform/internal/api/subscription"
	"LulaiPlatform/internal/entity"
	contextPkg "LulaiPlatform/pkg/context"
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func (r *plansRepository) ListPlans(ctx context.Context) ([]entity.Plan, error) {
	requestID := contextPkg.GetRequestID(ctx)

	var plans []entity.Plan
	if err := r.q.SelectContext(ctx, &plans, r.q.Rebind(queryListPlans)); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when listing plans")
		return nil, err
	}

	return plans, nil
}

func (r *plansRepository) GetPlanByID(ctx context.Context, id string) (entity.Plan, error) {
	return r.getPlan(ctx, queryGetPlanByID, map[string]interface{}{"id": id})
}

func (r *plansRepository) GetPlanByName(ctx context.Context, name string) (entity.Plan, error) {
	return r.getPlan(ctx, queryGetPlanByName, map[string]interface{}{"name": name})
}

func (r *plansRepository) GetPlanByStripePriceID(ctx context.Context, priceID string) (entity.Plan, error) {
	return r.getPlan(ctx, queryGetPlanByStripePriceID, map[string]interface{}{"stripe_price_id": priceID})
}

func (r *plansRepository) getPlan(ctx context.Context, namedQuery string, argsKV map[string]interface{}) (entity.Plan, error) {
	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		return entity.Plan{}, err
	}
	query = r.q.Rebind(query)

	var plan entity.Plan
	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&plan); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Plan{}, subscription.ErrPlanNotFound
		}
		return entity.Plan{}, err
	}

	return plan, nil
}
