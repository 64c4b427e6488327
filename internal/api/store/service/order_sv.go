package storeService

import (
	"LulaiPlatform/internal/api/store"
	"LulaiPlatform/internal/entity"
	contextPkg "LulaiPlatform/pkg/context"
	stripePkg "LulaiPlatform/pkg/stripe"
	"database/sql"
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v82"
	"golang.org/x/net/context"
)

// Checkout turns the session's cart into a pending order, reserves stock
// and opens a Stripe payment intent. The webhook finishes the order once
// the payment settles.
func (s *storeServiceImpl) Checkout(ctx context.Context, sessionID string, req store.CheckoutRequest) (store.CheckoutResponse, error) {
	repo, err := s.storeRepo.NewClient(true)
	if err != nil {
		return store.CheckoutResponse{}, err
	}
	defer repo.Rollback()

	items, err := repo.Cart.ListCartItems(ctx, sessionID)
	if err != nil {
		return store.CheckoutResponse{}, err
	}
	if len(items) == 0 {
		return store.CheckoutResponse{}, store.ErrCartEmpty
	}

	orderID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return store.CheckoutResponse{}, err
	}

	var totalCents int64
	orderItems := make([]entity.OrderItem, 0, len(items))

	for _, item := range items {
		product, err := repo.Products.GetProductByID(ctx, item.ProductID)
		if err != nil {
			return store.CheckoutResponse{}, err
		}
		if !product.IsActive {
			return store.CheckoutResponse{}, store.ErrProductInactive
		}

		if err := repo.Products.AdjustStock(ctx, product.ID, -item.Quantity); err != nil {
			return store.CheckoutResponse{}, err
		}

		itemID, err := s.utils.NewULIDFromTimestamp(time.Now())
		if err != nil {
			return store.CheckoutResponse{}, err
		}

		orderItems = append(orderItems, entity.OrderItem{
			ID:          itemID,
			OrderID:     orderID,
			ProductID:   product.ID,
			ProductName: product.Name,
			PriceCents:  product.PriceCents,
			Quantity:    item.Quantity,
		})
		totalCents += product.PriceCents * int64(item.Quantity)
	}

	intent, err := s.stripeClient.CreatePaymentIntent(stripePkg.PaymentIntentRequest{
		AmountCents: totalCents,
		Metadata: map[string]string{
			"order_id": orderID,
		},
	})
	if err != nil {
		return store.CheckoutResponse{}, store.ErrPaymentFailed
	}

	now := time.Now()
	order := entity.Order{
		ID:                    orderID,
		SessionID:             sessionID,
		Email:                 req.Email,
		Status:                entity.OrderStatusPending,
		TotalCents:            totalCents,
		StripePaymentIntentID: intent.ID,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if req.ConversationID != "" {
		order.ConversationID = sql.NullString{String: req.ConversationID, Valid: true}
	}

	if err := repo.Orders.CreateOrder(ctx, order); err != nil {
		return store.CheckoutResponse{}, err
	}
	for _, item := range orderItems {
		if err := repo.Orders.CreateOrderItem(ctx, item); err != nil {
			return store.CheckoutResponse{}, err
		}
	}

	if err := repo.Commit(); err != nil {
		return store.CheckoutResponse{}, err
	}

	return store.CheckoutResponse{
		OrderID:      orderID,
		ClientSecret: intent.ClientSecret,
		TotalCents:   totalCents,
	}, nil
}

func (s *storeServiceImpl) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.stripeClient.VerifyWebhook(payload, signature)
	if err != nil {
		return store.ErrPaymentFailed
	}

	switch event.Type {
	case "payment_intent.succeeded":
		return s.applyPaymentSucceeded(ctx, event)
	case "payment_intent.payment_failed", "payment_intent.canceled":
		return s.applyPaymentFailed(ctx, event)
	default:
		return nil
	}
}

func (s *storeServiceImpl) applyPaymentSucceeded(ctx context.Context, event stripe.Event) error {
	requestID := contextPkg.GetRequestID(ctx)

	var intent stripe.PaymentIntent
	json := jsoniter.ConfigCompatibleWithStandardLibrary
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return store.ErrPaymentFailed
	}

	repo, err := s.storeRepo.NewClient(false)
	if err != nil {
		return err
	}

	order, err := repo.Orders.GetOrderByPaymentIntent(ctx, intent.ID)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			// Payment intent from another system sharing the account.
			return nil
		}
		return err
	}
	if order.Status == entity.OrderStatusPaid {
		return nil
	}

	if err := repo.Orders.UpdateOrderStatus(ctx, order.ID, entity.OrderStatusPaid); err != nil {
		return err
	}

	if err := repo.Cart.ClearCart(ctx, order.SessionID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"order_id":   order.ID,
			"error":      err.Error(),
		}).Warn("Failed to clear cart after payment")
	}

	if order.ConversationID.Valid {
		value := float64(order.TotalCents) / 100
		if err := s.conversions.MarkConversion(ctx, order.ConversationID.String, value); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id":      requestID,
				"order_id":        order.ID,
				"conversation_id": order.ConversationID.String,
				"error":           err.Error(),
			}).Warn("Failed to mark widget conversion")
		}
	}

	if err := s.smtpMailer.SendOrderReceipt(order.Email, order.ID, float64(order.TotalCents)/100); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"order_id":   order.ID,
			"error":      err.Error(),
		}).Warn("Failed to send order receipt")
	}

	return nil
}

func (s *storeServiceImpl) applyPaymentFailed(ctx context.Context, event stripe.Event) error {
	var intent stripe.PaymentIntent
	json := jsoniter.ConfigCompatibleWithStandardLibrary
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return store.ErrPaymentFailed
	}

	repo, err := s.storeRepo.NewClient(true)
	if err != nil {
		return err
	}
	defer repo.Rollback()

	order, err := repo.Orders.GetOrderByPaymentIntent(ctx, intent.ID)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			return nil
		}
		return err
	}
	if order.Status != entity.OrderStatusPending {
		return nil
	}

	if err := repo.Orders.UpdateOrderStatus(ctx, order.ID, entity.OrderStatusCanceled); err != nil {
		return err
	}

	// Return the reserved stock.
	items, err := repo.Orders.ListOrderItems(ctx, order.ID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := repo.Products.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}

	return repo.Commit()
}

func (s *storeServiceImpl) ListOrders(ctx context.Context, sessionID string) ([]store.OrderResponse, error) {
	repo, err := s.storeRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	orders, err := repo.Orders.ListOrdersBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	resp := make([]store.OrderResponse, 0, len(orders))
	for _, order := range orders {
		resp = append(resp, makeOrderResponse(order, nil))
	}

	return resp, nil
}

func (s *storeServiceImpl) GetOrder(ctx context.Context, sessionID string, orderID string) (store.OrderResponse, error) {
	repo, err := s.storeRepo.NewClient(false)
	if err != nil {
		return store.OrderResponse{}, err
	}

	order, err := repo.Orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return store.OrderResponse{}, err
	}
	if order.SessionID != sessionID {
		return store.OrderResponse{}, store.ErrOrderNotFound
	}

	items, err := repo.Orders.ListOrderItems(ctx, orderID)
	if err != nil {
		return store.OrderResponse{}, err
	}

	return makeOrderResponse(order, items), nil
}

func makeOrderResponse(order entity.Order, items []entity.OrderItem) store.OrderResponse {
	resp := store.OrderResponse{
		ID:         order.ID,
		Email:      order.Email,
		Status:     order.Status,
		TotalCents: order.TotalCents,
		CreatedAt:  order.CreatedAt,
	}

	for _, item := range items {
		resp.Items = append(resp.Items, store.OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			PriceCents:  item.PriceCents,
			Quantity:    item.Quantity,
		})
	}

	return resp
}
