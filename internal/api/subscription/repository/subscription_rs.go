package subscriptionRepository

import (
	"LulaiPlatform/internal/api/subscription"
	"LulaiPlatform/internal/entity"
	contextPkg "LulaiPlatform/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func (r *subscriptionsRepository) GetSubscriptionByUser(ctx context.Context, userID string) (entity.Subscription, error) {
	return r.getSubscription(ctx, queryGetSubscriptionByUser, map[string]interface{}{"user_id": userID})
}

func (r *subscriptionsRepository) GetSubscriptionByStripeID(ctx context.Context, stripeSubscriptionID string) (entity.Subscription, error) {
	return r.getSubscription(ctx, queryGetSubscriptionByStripeID, map[string]interface{}{"stripe_subscription_id": stripeSubscriptionID})
}

func (r *subscriptionsRepository) getSubscription(ctx context.Context, namedQuery string, argsKV map[string]interface{}) (entity.Subscription, error) {
	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		return entity.Subscription{}, err
	}
	query = r.q.Rebind(query)

	var sub entity.Subscription
	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&sub); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Subscription{}, subscription.ErrSubscriptionNotFound
		}
		return entity.Subscription{}, err
	}

	return sub, nil
}

func (r *subscriptionsRepository) UpsertSubscription(ctx context.Context, sub entity.Subscription) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":                     sub.ID,
		"user_id":                sub.UserID,
		"plan_id":                sub.PlanID,
		"stripe_customer_id":     sub.StripeCustomerID,
		"stripe_subscription_id": sub.StripeSubscriptionID,
		"status":                 sub.Status,
		"current_period_end":     sub.CurrentPeriodEnd,
		"created_at":             sub.CreatedAt,
		"updated_at":             sub.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryUpsertSubscription, argsKV)
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when upserting subscription")
		return err
	}

	return nil
}

func (r *subscriptionsRepository) SyncSubscription(ctx context.Context, stripeSubscriptionID string, planID string, status string, currentPeriodEnd time.Time) error {
	return r.execSubscriptionUpdate(ctx, querySyncSubscription, map[string]interface{}{
		"stripe_subscription_id": stripeSubscriptionID,
		"plan_id":                planID,
		"status":                 status,
		"current_period_end":     currentPeriodEnd,
	})
}

func (r *subscriptionsRepository) UpdateSubscriptionStatus(ctx context.Context, stripeSubscriptionID string, status string) error {
	return r.execSubscriptionUpdate(ctx, queryUpdateSubscriptionStatus, map[string]interface{}{
		"stripe_subscription_id": stripeSubscriptionID,
		"status":                 status,
	})
}

func (r *subscriptionsRepository) execSubscriptionUpdate(ctx context.Context, namedQuery string, argsKV map[string]interface{}) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when updating subscription")
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return subscription.ErrSubscriptionNotFound
	}

	return nil
}
