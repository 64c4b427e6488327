package storeRepository

import (
	"LulaiPlatform/internal/api/store"
	"LulaiPlatform/internal/entity"
	contextPkg "LulaiPlatform/pkg/context"
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func (r *ordersRepository) CreateOrder(ctx context.Context, order entity.Order) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":                       order.ID,
		"session_id":               order.SessionID,
		"email":                    order.Email,
		"status":                   order.Status,
		"total_cents":              order.TotalCents,
		"stripe_payment_intent_id": order.StripePaymentIntentID,
		"conversation_id":          order.ConversationID,
		"created_at":               order.CreatedAt,
		"updated_at":               order.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateOrder, argsKV)
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating order")
		return err
	}

	return nil
}

func (r *ordersRepository) CreateOrderItem(ctx context.Context, item entity.OrderItem) error {
	argsKV := map[string]interface{}{
		"id":           item.ID,
		"order_id":     item.OrderID,
		"product_id":   item.ProductID,
		"product_name": item.ProductName,
		"price_cents":  item.PriceCents,
		"quantity":     item.Quantity,
	}

	query, args, err := sqlx.Named(queryCreateOrderItem, argsKV)
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return nil
}

func (r *ordersRepository) GetOrderByID(ctx context.Context, id string) (entity.Order, error) {
	return r.getOrder(ctx, queryGetOrderByID, map[string]interface{}{"id": id})
}

func (r *ordersRepository) GetOrderByPaymentIntent(ctx context.Context, paymentIntentID string) (entity.Order, error) {
	return r.getOrder(ctx, queryGetOrderByPaymentIntent, map[string]interface{}{"stripe_payment_intent_id": paymentIntentID})
}

func (r *ordersRepository) getOrder(ctx context.Context, namedQuery string, argsKV map[string]interface{}) (entity.Order, error) {
	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		return entity.Order{}, err
	}
	query = r.q.Rebind(query)

	var order entity.Order
	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&order); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Order{}, store.ErrOrderNotFound
		}
		return entity.Order{}, err
	}

	return order, nil
}

func (r *ordersRepository) ListOrdersBySession(ctx context.Context, sessionID string) ([]entity.Order, error) {
	query, args, err := sqlx.Named(queryListOrdersBySession, map[string]interface{}{"session_id": sessionID})
	if err != nil {
		return nil, err
	}
	query = r.q.Rebind(query)

	var orders []entity.Order
	if err := r.q.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *ordersRepository) ListOrderItems(ctx context.Context, orderID string) ([]entity.OrderItem, error) {
	query, args, err := sqlx.Named(queryListOrderItems, map[string]interface{}{"order_id": orderID})
	if err != nil {
		return nil, err
	}
	query = r.q.Rebind(query)

	var items []entity.OrderItem
	if err := r.q.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *ordersRepository) UpdateOrderStatus(ctx context.Context, id string, status string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryUpdateOrderStatus, map[string]interface{}{
		"id":     id,
		"status": status,
	})
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when updating order status")
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrOrderNotFound
	}

	return nil
}
