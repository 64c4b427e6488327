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

func (r *productsRepository) CreateProduct(ctx context.Context, product entity.Product) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":             product.ID,
		"name":           product.Name,
		"description":    product.Description,
		"price_cents":    product.PriceCents,
		"image_url":      product.ImageURL,
		"image_alt_text": product.ImageAltText,
		"stock":          product.Stock,
		"is_active":      product.IsActive,
		"created_at":     product.CreatedAt,
		"updated_at":     product.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateProduct, argsKV)
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating product")
		return err
	}

	return nil
}

func (r *productsRepository) GetProductByID(ctx context.Context, id string) (entity.Product, error) {
	query, args, err := sqlx.Named(queryGetProductByID, map[string]interface{}{"id": id})
	if err != nil {
		return entity.Product{}, err
	}
	query = r.q.Rebind(query)

	var product entity.Product
	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Product{}, store.ErrProductNotFound
		}
		return entity.Product{}, err
	}

	return product, nil
}

func (r *productsRepository) ListProducts(ctx context.Context, activeOnly bool) ([]entity.Product, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryListProducts, map[string]interface{}{"active_only": activeOnly})
	if err != nil {
		return nil, err
	}
	query = r.q.Rebind(query)

	var products []entity.Product
	if err := r.q.SelectContext(ctx, &products, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when listing products")
		return nil, err
	}

	return products, nil
}

func (r *productsRepository) UpdateProduct(ctx context.Context, product entity.Product) error {
	return r.execExpectingRows(ctx, queryUpdateProduct, map[string]interface{}{
		"id":          product.ID,
		"name":        product.Name,
		"description": product.Description,
		"price_cents": product.PriceCents,
		"stock":       product.Stock,
		"is_active":   product.IsActive,
	}, store.ErrProductNotFound)
}

func (r *productsRepository) UpdateProductImage(ctx context.Context, id string, imageURL string, altText string) error {
	return r.execExpectingRows(ctx, queryUpdateProductImage, map[string]interface{}{
		"id":             id,
		"image_url":      imageURL,
		"image_alt_text": altText,
	}, store.ErrProductNotFound)
}

// AdjustStock applies a signed delta and refuses to take stock below zero.
func (r *productsRepository) AdjustStock(ctx context.Context, id string, delta int) error {
	return r.execExpectingRows(ctx, queryAdjustStock, map[string]interface{}{
		"id":    id,
		"delta": delta,
	}, store.ErrInsufficientStock)
}

func (r *productsRepository) DeleteProduct(ctx context.Context, id string) error {
	return r.execExpectingRows(ctx, queryDeleteProduct, map[string]interface{}{"id": id}, store.ErrProductNotFound)
}

func (r *productsRepository) execExpectingRows(ctx context.Context, namedQuery string, argsKV map[string]interface{}, noRowsErr error) error {
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
		}).Error("Database error when updating product")
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return noRowsErr
	}

	return nil
}
