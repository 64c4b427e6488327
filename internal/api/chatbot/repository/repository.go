package chatbotRepository

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
		Chatbots:  &chatbotsRepository{q: sqlExecutor, log: r.log},
		Rules:     &rulesRepository{q: sqlExecutor, log: r.log},
		Templates: &templatesRepository{q: sqlExecutor, log: r.log},
		Commit:    commitFunc,
		Rollback:  rollbackFunc,
	}, nil
}

type Client struct {
	Chatbots interface {
		CreateChatbot(ctx context.Context, chatbot entity.Chatbot) error
		GetChatbotByID(ctx context.Context, id string) (entity.Chatbot, error)
		GetChatbotByAPIKey(ctx context.Context, apiKey string) (entity.Chatbot, error)
		ListChatbotsByUser(ctx context.Context, userID string) ([]entity.Chatbot, error)
		CountChatbotsByUser(ctx context.Context, userID string) (int, error)
		UpdateChatbot(ctx context.Context, chatbot entity.Chatbot) error
		UpdateAPIKey(ctx context.Context, id string, apiKey string) error
		UpdateAvatar(ctx context.Context, id string, avatarURL string) error
		DeleteChatbot(ctx context.Context, id string) error
	}

	Rules interface {
		CreateRule(ctx context.Context, rule entity.TriggerRule) error
		GetRuleByID(ctx context.Context, id string) (entity.TriggerRule, error)
		ListRulesByChatbot(ctx context.Context, chatbotID string) ([]entity.TriggerRule, error)
		NextPosition(ctx context.Context, chatbotID string) (int, error)
		UpdateRule(ctx context.Context, rule entity.TriggerRule) error
		SetRulePosition(ctx context.Context, id string, position int) error
		MarkAIEnhanced(ctx context.Context, id string, response string) error
		DeleteRule(ctx context.Context, id string) error
	}

	Templates interface {
		ListTemplates(ctx context.Context) ([]entity.IndustryTemplate, []int, error)
		GetTemplateByID(ctx context.Context, id string) (entity.IndustryTemplate, error)
		ListTemplateRules(ctx context.Context, templateID string) ([]entity.TemplateRule, error)
	}

	Commit   func() error
	Rollback func() error
}

type chatbotsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type rulesRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type templatesRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
