package analyticsRepository

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
		Analytics: &analyticsRepo{q: sqlExecutor, log: r.log},
		Commit:    commitFunc,
		Rollback:  rollbackFunc,
	}, nil
}

type Client struct {
	Analytics interface {
		Overview(ctx context.Context, chatbotID string, from, to time.Time) (entity.ChatbotOverview, error)
		AvgConversationLength(ctx context.Context, chatbotID string, from, to time.Time) (float64, error)
		AvgResponseTimeMs(ctx context.Context, chatbotID string, from, to time.Time) (float64, error)
		DailyMetrics(ctx context.Context, chatbotID string, from, to time.Time) ([]entity.DailyMetric, error)
		PopularTopics(ctx context.Context, chatbotID string, from, to time.Time, limit int) ([]entity.TopicCount, error)
		CountConversations(ctx context.Context, chatbotID string, from, to time.Time) (int, error)
		ListConversations(ctx context.Context, chatbotID string, from, to time.Time, limit, offset int) ([]entity.ConversationSummary, error)
		GetConversation(ctx context.Context, conversationID string) (entity.Conversation, error)
		ListMessages(ctx context.Context, conversationID string) ([]entity.ConversationMessage, error)
		ListFeedback(ctx context.Context, conversationID string) ([]entity.MessageFeedback, error)
		MarkConversion(ctx context.Context, conversationID string, value float64) error
	}

	Commit   func() error
	Rollback func() error
}

type analyticsRepo struct {
	q   SQLExecutor
	log *logrus.Logger
}
