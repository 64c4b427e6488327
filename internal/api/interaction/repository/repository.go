package interactionRepository

import (
	"LulaiPlatform/internal/entity"

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
		Conversations: &conversationsRepository{q: sqlExecutor, log: r.log},
		Commit:        commitFunc,
		Rollback:      rollbackFunc,
	}, nil
}

type Client struct {
	Conversations interface {
		CreateConversation(ctx context.Context, conversation entity.Conversation) error
		GetConversationByID(ctx context.Context, id string) (entity.Conversation, error)
		TouchConversation(ctx context.Context, id string) error
		CreateMessage(ctx context.Context, message entity.ConversationMessage) error
		GetMessageByID(ctx context.Context, id string) (entity.ConversationMessage, error)
		CreateFeedback(ctx context.Context, feedback entity.MessageFeedback) error
		CountBotMessagesForUserInMonth(ctx context.Context, userID string) (int, error)
	}

	Commit   func() error
	Rollback func() error
}

type conversationsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
