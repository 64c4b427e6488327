package storeRepository

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
		Products: &productsRepository{q: sqlExecutor, log: r.log},
		Cart:     &cartRepository{q: sqlExecutor, log: r.log},
		Orders:   &ordersRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Products interface {
		CreateProduct(ctx context.Context, product entity.Product) error
		GetProductByID(ctx context.Context, id string) (entity.Product, error)
		ListProducts(ctx context.Context, activeOnly bool) ([]entity.Product, error)
		UpdateProduct(ctx context.Context, product entity.Product) error
		UpdateProductImage(ctx context.Context, id string, imageURL string, altText string) error
		AdjustStock(ctx context.Context, id string, delta int) error
		DeleteProduct(ctx context.Context, id string) error
	}

	Cart interface {
		UpsertCartItem(ctx context.Context, item entity.CartItem) error
		GetCartItemByID(ctx context.Context, id string) (entity.CartItem, error)
		ListCartItems(ctx context.Context, sessionID string) ([]entity.CartItem, error)
		SetCartItemQuantity(ctx context.Context, id string, quantity int) error
		DeleteCartItem(ctx context.Context, id string) error
		ClearCart(ctx context.Context, sessionID string) error
	}

	Orders interface {
		CreateOrder(ctx context.Context, order entity.Order) error
		CreateOrderItem(ctx context.Context, item entity.OrderItem) error
		GetOrderByID(ctx context.Context, id string) (entity.Order, error)
		GetOrderByPaymentIntent(ctx context.Context, paymentIntentID string) (entity.Order, error)
		ListOrdersBySession(ctx context.Context, sessionID string) ([]entity.Order, error)
		ListOrderItems(ctx context.Context, orderID string) ([]entity.OrderItem, error)
		UpdateOrderStatus(ctx context.Context, id string, status string) error
	}

	Commit   func() error
	Rollback func() error
}

type productsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type cartRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type ordersRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
