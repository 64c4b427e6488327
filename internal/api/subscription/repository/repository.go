package subscriptionRepository

import (
	"LulaiPlatform/internal/entity"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Plans:         &plansRepository{q: sqlExecutor, log: r.log},
		Subscriptions: &subscriptionsRepository{q: sqlExecutor, log: r.log},
		Commit:        commitFunc,
		Rollback:      rollbackFunc,
	}, nil
}

type Client struct {
	Plans interface {
		ListPlans(ctx context.Context) ([]entity.Plan, error)
		GetPlanByID(ctx context.Context, id string) (entity.Plan, error)
		GetPlanByName(ctx context.Context, name string) (entity.Plan, error)
		GetPlanByStripePriceID(ctx context.Context, priceID string) (entity.Plan, error)
	}

	Subscriptions interface {
		GetSubscriptionByUser(ctx context.Context, userID string) (entity.Subscription, error)
		GetSubscriptionByStripeID(ctx context.Context, stripeSubscriptionID string) (entity.Subscription, error)
		UpsertSubscription(ctx context.Context, subscription entity.Subscription) error
		SyncSubscription(ctx context.Context, stripeSubscriptionID string, planID string, status string, currentPeriodEnd time.Time) error
		UpdateSubscriptionStatus(ctx context.Context, stripeSubscriptionID string, status string) error
	}

	Commit   func() error
	Rollback func() error
}

type plansRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type subscriptionsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
