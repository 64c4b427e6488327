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

func (r *cartRepository) UpsertCartItem(ctx context.Context, item entity.CartItem) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":         item.ID,
		"session_id": item.SessionID,
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
		"created_at": item.CreatedAt,
		"updated_at": item.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryUpsertCartItem, argsKV)
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when adding cart item")
		return err
	}

	return nil
}

func (r *cartRepository) GetCartItemByID(ctx context.Context, id string) (entity.CartItem, error) {
	query, args, err := sqlx.Named(queryGetCartItemByID, map[string]interface{}{"id": id})
	if err != nil {
		return entity.CartItem{}, err
	}
	query = r.q.Rebind(query)

	var item entity.CartItem
	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.CartItem{}, store.ErrCartItemNotFound
		}
		return entity.CartItem{}, err
	}

	return item, nil
}

func (r *cartRepository) ListCartItems(ctx context.Context, sessionID string) ([]entity.CartItem, error) {
	query, args, err := sqlx.Named(queryListCartItems, map[string]interface{}{"session_id": sessionID})
	if err != nil {
		return nil, err
	}
	query = r.q.Rebind(query)

	var items []entity.CartItem
	if err := r.q.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *cartRepository) SetCartItemQuantity(ctx context.Context, id string, quantity int) error {
	return r.execExpectingRows(ctx, querySetCartItemQuantity, map[string]interface{}{
		"id":       id,
		"quantity": quantity,
	})
}

func (r *cartRepository) DeleteCartItem(ctx context.Context, id string) error {
	return r.execExpectingRows(ctx, queryDeleteCartItem, map[string]interface{}{"id": id})
}

func (r *cartRepository) ClearCart(ctx context.Context, sessionID string) error {
	query, args, err := sqlx.Named(queryClearCart, map[string]interface{}{"session_id": sessionID})
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return nil
}

func (r *cartRepository) execExpectingRows(ctx context.Context, namedQuery string, argsKV map[string]interface{}) error {
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
		}).Error("Database error when updating cart")
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrCartItemNotFound
	}

	return nil
}
