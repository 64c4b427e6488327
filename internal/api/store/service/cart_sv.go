package storeService

import (
	"LulaiPlatform/internal/api/store"
	storeRepository "LulaiPlatform/internal/api/store/repository"
	"LulaiPlatform/internal/entity"
	"time"

	"golang.org/x/net/context"
)

func (s *storeServiceImpl) GetCart(ctx context.Context, sessionID string) (store.CartResponse, error) {
	repo, err := s.storeRepo.NewClient(false)
	if err != nil {
		return store.CartResponse{}, err
	}

	return s.buildCart(ctx, repo, sessionID)
}

func (s *storeServiceImpl) AddCartItem(ctx context.Context, sessionID string, req store.AddCartItemRequest) (store.CartResponse, error) {
	repo, err := s.storeRepo.NewClient(false)
	if err != nil {
		return store.CartResponse{}, err
	}

	product, err := repo.Products.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return store.CartResponse{}, err
	}
	if !product.IsActive {
		return store.CartResponse{}, store.ErrProductInactive
	}
	if product.Stock < req.Quantity {
		return store.CartResponse{}, store.ErrInsufficientStock
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return store.CartResponse{}, err
	}

	now := time.Now()
	if err := repo.Cart.UpsertCartItem(ctx, entity.CartItem{
		ID:        id,
		SessionID: sessionID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return store.CartResponse{}, err
	}

	return s.buildCart(ctx, repo, sessionID)
}

func (s *storeServiceImpl) UpdateCartItem(ctx context.Context, sessionID string, itemID string, req store.UpdateCartItemRequest) (store.CartResponse, error) {
	repo, err := s.storeRepo.NewClient(false)
	if err != nil {
		return store.CartResponse{}, err
	}

	item, err := repo.Cart.GetCartItemByID(ctx, itemID)
	if err != nil {
		return store.CartResponse{}, err
	}
	if item.SessionID != sessionID {
		return store.CartResponse{}, store.ErrCartItemNotFound
	}

	product, err := repo.Products.GetProductByID(ctx, item.ProductID)
	if err != nil {
		return store.CartResponse{}, err
	}
	if product.Stock < req.Quantity {
		return store.CartResponse{}, store.ErrInsufficientStock
	}

	if err := repo.Cart.SetCartItemQuantity(ctx, itemID, req.Quantity); err != nil {
		return store.CartResponse{}, err
	}

	return s.buildCart(ctx, repo, sessionID)
}

func (s *storeServiceImpl) RemoveCartItem(ctx context.Context, sessionID string, itemID string) (store.CartResponse, error) {
	repo, err := s.storeRepo.NewClient(false)
	if err != nil {
		return store.CartResponse{}, err
	}

	item, err := repo.Cart.GetCartItemByID(ctx, itemID)
	if err != nil {
		return store.CartResponse{}, err
	}
	if item.SessionID != sessionID {
		return store.CartResponse{}, store.ErrCartItemNotFound
	}

	if err := repo.Cart.DeleteCartItem(ctx, itemID); err != nil {
		return store.CartResponse{}, err
	}

	return s.buildCart(ctx, repo, sessionID)
}

func (s *storeServiceImpl) ClearCart(ctx context.Context, sessionID string) error {
	repo, err := s.storeRepo.NewClient(false)
	if err != nil {
		return err
	}

	return repo.Cart.ClearCart(ctx, sessionID)
}

func (s *storeServiceImpl) buildCart(ctx context.Context, repo storeRepository.Client, sessionID string) (store.CartResponse, error) {
	items, err := repo.Cart.ListCartItems(ctx, sessionID)
	if err != nil {
		return store.CartResponse{}, err
	}

	cart := store.CartResponse{Items: make([]store.CartItemResponse, 0, len(items))}
	for _, item := range items {
		product, err := repo.Products.GetProductByID(ctx, item.ProductID)
		if err != nil {
			return store.CartResponse{}, err
		}

		cart.Items = append(cart.Items, store.CartItemResponse{
			ID:          item.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			PriceCents:  product.PriceCents,
			ImageURL:    product.ImageURL,
			Quantity:    item.Quantity,
		})
		cart.TotalCents += product.PriceCents * int64(item.Quantity)
	}

	return cart, nil
}
