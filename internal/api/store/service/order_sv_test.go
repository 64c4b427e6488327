package storeService

import (
	"LulaiPlatform/internal/api/store"
	storeRepository "LulaiPlatform/internal/api/store/repository"
	"LulaiPlatform/internal/entity"
	stripePkg "LulaiPlatform/pkg/stripe"
	"LulaiPlatform/pkg/utils"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v82"
	"golang.org/x/net/context"
)

type stubStoreData struct {
	products   map[string]entity.Product
	cartItems  map[string]entity.CartItem
	orders     map[string]entity.Order
	orderItems map[string][]entity.OrderItem

	committed       int
	clearedSessions []string
}

func newStubStoreData() *stubStoreData {
	return &stubStoreData{
		products:   map[string]entity.Product{},
		cartItems:  map[string]entity.CartItem{},
		orders:     map[string]entity.Order{},
		orderItems: map[string][]entity.OrderItem{},
	}
}

func (s *stubStoreData) CreateProduct(_ context.Context, product entity.Product) error {
	s.products[product.ID] = product
	return nil
}

func (s *stubStoreData) GetProductByID(_ context.Context, id string) (entity.Product, error) {
	product, ok := s.products[id]
	if !ok {
		return entity.Product{}, store.ErrProductNotFound
	}
	return product, nil
}

func (s *stubStoreData) ListProducts(_ context.Context, activeOnly bool) ([]entity.Product, error) {
	var out []entity.Product
	for _, product := range s.products {
		if activeOnly && !product.IsActive {
			continue
		}
		out = append(out, product)
	}
	return out, nil
}

func (s *stubStoreData) UpdateProduct(_ context.Context, product entity.Product) error {
	if _, ok := s.products[product.ID]; !ok {
		return store.ErrProductNotFound
	}
	s.products[product.ID] = product
	return nil
}

func (s *stubStoreData) UpdateProductImage(_ context.Context, id string, imageURL string, altText string) error {
	product, ok := s.products[id]
	if !ok {
		return store.ErrProductNotFound
	}
	product.ImageURL = imageURL
	product.ImageAltText = altText
	s.products[id] = product
	return nil
}

func (s *stubStoreData) AdjustStock(_ context.Context, id string, delta int) error {
	product, ok := s.products[id]
	if !ok || product.Stock+delta < 0 {
		return store.ErrInsufficientStock
	}
	product.Stock += delta
	s.products[id] = product
	return nil
}

func (s *stubStoreData) DeleteProduct(_ context.Context, id string) error {
	delete(s.products, id)
	return nil
}

func (s *stubStoreData) UpsertCartItem(_ context.Context, item entity.CartItem) error {
	s.cartItems[item.ID] = item
	return nil
}

func (s *stubStoreData) GetCartItemByID(_ context.Context, id string) (entity.CartItem, error) {
	item, ok := s.cartItems[id]
	if !ok {
		return entity.CartItem{}, store.ErrCartItemNotFound
	}
	return item, nil
}

func (s *stubStoreData) ListCartItems(_ context.Context, sessionID string) ([]entity.CartItem, error) {
	var out []entity.CartItem
	for _, item := range s.cartItems {
		if item.SessionID == sessionID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubStoreData) SetCartItemQuantity(_ context.Context, id string, quantity int) error {
	item, ok := s.cartItems[id]
	if !ok {
		return store.ErrCartItemNotFound
	}
	item.Quantity = quantity
	s.cartItems[id] = item
	return nil
}

func (s *stubStoreData) DeleteCartItem(_ context.Context, id string) error {
	delete(s.cartItems, id)
	return nil
}

func (s *stubStoreData) ClearCart(_ context.Context, sessionID string) error {
	s.clearedSessions = append(s.clearedSessions, sessionID)
	for id, item := range s.cartItems {
		if item.SessionID == sessionID {
			delete(s.cartItems, id)
		}
	}
	return nil
}

func (s *stubStoreData) CreateOrder(_ context.Context, order entity.Order) error {
	s.orders[order.ID] = order
	return nil
}

func (s *stubStoreData) CreateOrderItem(_ context.Context, item entity.OrderItem) error {
	s.orderItems[item.OrderID] = append(s.orderItems[item.OrderID], item)
	return nil
}

func (s *stubStoreData) GetOrderByID(_ context.Context, id string) (entity.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return entity.Order{}, store.ErrOrderNotFound
	}
	return order, nil
}

func (s *stubStoreData) GetOrderByPaymentIntent(_ context.Context, paymentIntentID string) (entity.Order, error) {
	for _, order := range s.orders {
		if order.StripePaymentIntentID == paymentIntentID {
			return order, nil
		}
	}
	return entity.Order{}, store.ErrOrderNotFound
}

func (s *stubStoreData) ListOrdersBySession(_ context.Context, sessionID string) ([]entity.Order, error) {
	var out []entity.Order
	for _, order := range s.orders {
		if order.SessionID == sessionID {
			out = append(out, order)
		}
	}
	return out, nil
}

func (s *stubStoreData) ListOrderItems(_ context.Context, orderID string) ([]entity.OrderItem, error) {
	return s.orderItems[orderID], nil
}

func (s *stubStoreData) UpdateOrderStatus(_ context.Context, id string, status string) error {
	order, ok := s.orders[id]
	if !ok {
		return store.ErrOrderNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	s.orders[id] = order
	return nil
}

type stubStoreRepo struct {
	data *stubStoreData
}

func (r *stubStoreRepo) NewClient(_ bool) (storeRepository.Client, error) {
	return storeRepository.Client{
		Products: r.data,
		Cart:     r.data,
		Orders:   r.data,
		Commit: func() error {
			r.data.committed++
			return nil
		},
		Rollback: func() error { return nil },
	}, nil
}

type stubStripe struct {
	intentErr  error
	webhookErr error
	event      stripe.Event
	intents    int
}

func (s *stubStripe) Init() error { return nil }

func (s *stubStripe) CreateCheckoutSession(_ stripePkg.CheckoutRequest) (*stripe.CheckoutSession, error) {
	return &stripe.CheckoutSession{URL: "https://checkout.stripe.test/session"}, nil
}

func (s *stubStripe) CreatePaymentIntent(_ stripePkg.PaymentIntentRequest) (*stripe.PaymentIntent, error) {
	if s.intentErr != nil {
		return nil, s.intentErr
	}
	s.intents++
	return &stripe.PaymentIntent{ID: "pi-1", ClientSecret: "cs-secret"}, nil
}

func (s *stubStripe) CancelSubscription(_ string) error { return nil }

func (s *stubStripe) ChangeSubscriptionPrice(_ string, _ string) error { return nil }

func (s *stubStripe) VerifyWebhook(_ []byte, _ string) (stripe.Event, error) {
	if s.webhookErr != nil {
		return stripe.Event{}, s.webhookErr
	}
	return s.event, nil
}

type stubS3Client struct{}

func (s *stubS3Client) UploadFile(_ *multipart.FileHeader) (string, error) {
	return "https://bucket.s3.test/object", nil
}

func (s *stubS3Client) UploadBytes(_ []byte, fileName string, _ string) (string, error) {
	return "https://bucket.s3.test/" + fileName, nil
}

func (s *stubS3Client) PresignUrl(fileName string) (string, error) { return fileName, nil }

func (s *stubS3Client) DeleteFile(_ string) error { return nil }

type stubGemini struct{}

func (s *stubGemini) DescribeProductImage(_ context.Context, _ string, productName string) (string, error) {
	return "photo of " + productName, nil
}

func (s *stubGemini) Close() {}

type stubMailer struct {
	receipts []string
}

func (s *stubMailer) SendOTP(_ string, _ string) error { return nil }

func (s *stubMailer) SendAdminInvite(_ string, _ string) error { return nil }

func (s *stubMailer) SendOrderReceipt(customerEmail string, _ string, _ float64) error {
	s.receipts = append(s.receipts, customerEmail)
	return nil
}

type stubConversions struct {
	conversationIDs []string
	values          []float64
}

func (s *stubConversions) MarkConversion(_ context.Context, conversationID string, value float64) error {
	s.conversationIDs = append(s.conversationIDs, conversationID)
	s.values = append(s.values, value)
	return nil
}

type orderFixture struct {
	service     IStoreService
	data        *stubStoreData
	stripe      *stubStripe
	mailer      *stubMailer
	conversions *stubConversions
}

func newOrderFixture() *orderFixture {
	data := newStubStoreData()
	data.products["prod-1"] = entity.Product{
		ID:         "prod-1",
		Name:       "Ceramic Mug",
		PriceCents: 1500,
		Stock:      10,
		IsActive:   true,
	}
	data.products["prod-2"] = entity.Product{
		ID:         "prod-2",
		Name:       "Retired Mug",
		PriceCents: 900,
		Stock:      3,
		IsActive:   false,
	}
	data.cartItems["item-1"] = entity.CartItem{
		ID:        "item-1",
		SessionID: "sess-1",
		ProductID: "prod-1",
		Quantity:  2,
	}

	logger := logrus.New()
	stripeStub := &stubStripe{}
	mailer := &stubMailer{}
	conversions := &stubConversions{}

	service := New(
		logger,
		&stubStoreRepo{data: data},
		stripeStub,
		&stubS3Client{},
		&stubGemini{},
		mailer,
		utils.New(),
		conversions,
	)

	return &orderFixture{
		service:     service,
		data:        data,
		stripe:      stripeStub,
		mailer:      mailer,
		conversions: conversions,
	}
}

func TestCheckoutCreatesPendingOrder(t *testing.T) {
	f := newOrderFixture()

	resp, err := f.service.Checkout(context.Background(), "sess-1", store.CheckoutRequest{Email: "buyer@example.com"})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if resp.TotalCents != 3000 {
		t.Fatalf("TotalCents = %d, want 3000", resp.TotalCents)
	}
	if resp.ClientSecret != "cs-secret" {
		t.Fatalf("ClientSecret = %q", resp.ClientSecret)
	}

	order, ok := f.data.orders[resp.OrderID]
	if !ok {
		t.Fatal("order was not persisted")
	}
	if order.Status != entity.OrderStatusPending {
		t.Fatalf("order status = %q, want pending", order.Status)
	}
	if order.StripePaymentIntentID != "pi-1" {
		t.Fatalf("payment intent id = %q", order.StripePaymentIntentID)
	}
	if got := f.data.products["prod-1"].Stock; got != 8 {
		t.Fatalf("stock after reservation = %d, want 8", got)
	}
	if len(f.data.orderItems[resp.OrderID]) != 1 {
		t.Fatalf("order items = %d, want 1", len(f.data.orderItems[resp.OrderID]))
	}
	if f.data.committed != 1 {
		t.Fatalf("commits = %d, want 1", f.data.committed)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newOrderFixture()

	_, err := f.service.Checkout(context.Background(), "sess-empty", store.CheckoutRequest{Email: "buyer@example.com"})
	if !errors.Is(err, store.ErrCartEmpty) {
		t.Fatalf("err = %v, want ErrCartEmpty", err)
	}
}

func TestCheckoutInactiveProduct(t *testing.T) {
	f := newOrderFixture()
	f.data.cartItems["item-2"] = entity.CartItem{
		ID:        "item-2",
		SessionID: "sess-2",
		ProductID: "prod-2",
		Quantity:  1,
	}

	_, err := f.service.Checkout(context.Background(), "sess-2", store.CheckoutRequest{Email: "buyer@example.com"})
	if !errors.Is(err, store.ErrProductInactive) {
		t.Fatalf("err = %v, want ErrProductInactive", err)
	}
}

func TestCheckoutInsufficientStock(t *testing.T) {
	f := newOrderFixture()
	item := f.data.cartItems["item-1"]
	item.Quantity = 99
	f.data.cartItems["item-1"] = item

	_, err := f.service.Checkout(context.Background(), "sess-1", store.CheckoutRequest{Email: "buyer@example.com"})
	if !errors.Is(err, store.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
	if f.data.committed != 0 {
		t.Fatal("failed checkout must not commit")
	}
}

func TestCheckoutPaymentIntentFailure(t *testing.T) {
	f := newOrderFixture()
	f.stripe.intentErr = errors.New("stripe down")

	_, err := f.service.Checkout(context.Background(), "sess-1", store.CheckoutRequest{Email: "buyer@example.com"})
	if !errors.Is(err, store.ErrPaymentFailed) {
		t.Fatalf("err = %v, want ErrPaymentFailed", err)
	}
	if len(f.data.orders) != 0 {
		t.Fatal("no order should be persisted when the payment intent fails")
	}
}

func seedPendingOrder(f *orderFixture, conversationID string) entity.Order {
	order := entity.Order{
		ID:                    "order-1",
		SessionID:             "sess-1",
		Email:                 "buyer@example.com",
		Status:                entity.OrderStatusPending,
		TotalCents:            3000,
		StripePaymentIntentID: "pi-1",
	}
	if conversationID != "" {
		order.ConversationID.String = conversationID
		order.ConversationID.Valid = true
	}
	f.data.orders[order.ID] = order
	f.data.orderItems[order.ID] = []entity.OrderItem{
		{ID: "oi-1", OrderID: order.ID, ProductID: "prod-1", ProductName: "Ceramic Mug", PriceCents: 1500, Quantity: 2},
	}
	return order
}

func paymentEvent(eventType string) stripe.Event {
	return stripe.Event{
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: []byte(`{"id":"pi-1"}`)},
	}
}

func TestWebhookPaymentSucceeded(t *testing.T) {
	f := newOrderFixture()
	seedPendingOrder(f, "conv-1")
	f.stripe.event = paymentEvent("payment_intent.succeeded")

	if err := f.service.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}

	if got := f.data.orders["order-1"].Status; got != entity.OrderStatusPaid {
		t.Fatalf("order status = %q, want paid", got)
	}
	if len(f.data.clearedSessions) != 1 || f.data.clearedSessions[0] != "sess-1" {
		t.Fatalf("cleared sessions = %v", f.data.clearedSessions)
	}
	if len(f.conversions.conversationIDs) != 1 || f.conversions.conversationIDs[0] != "conv-1" {
		t.Fatalf("conversions = %v", f.conversions.conversationIDs)
	}
	if f.conversions.values[0] != 30 {
		t.Fatalf("conversion value = %v, want 30", f.conversions.values[0])
	}
	if len(f.mailer.receipts) != 1 || f.mailer.receipts[0] != "buyer@example.com" {
		t.Fatalf("receipts = %v", f.mailer.receipts)
	}
}

func TestWebhookPaymentSucceededIdempotent(t *testing.T) {
	f := newOrderFixture()
	order := seedPendingOrder(f, "")
	order.Status = entity.OrderStatusPaid
	f.data.orders[order.ID] = order
	f.stripe.event = paymentEvent("payment_intent.succeeded")

	if err := f.service.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}

	if len(f.mailer.receipts) != 0 {
		t.Fatal("already-paid order must not send another receipt")
	}
	if len(f.data.clearedSessions) != 0 {
		t.Fatal("already-paid order must not clear the cart again")
	}
}

func TestWebhookUnknownPaymentIntentIgnored(t *testing.T) {
	f := newOrderFixture()
	f.stripe.event = paymentEvent("payment_intent.succeeded")

	if err := f.service.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}
}

func TestWebhookPaymentFailedRestocks(t *testing.T) {
	f := newOrderFixture()
	seedPendingOrder(f, "")
	product := f.data.products["prod-1"]
	product.Stock = 8
	f.data.products["prod-1"] = product
	f.stripe.event = paymentEvent("payment_intent.payment_failed")

	if err := f.service.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}

	if got := f.data.orders["order-1"].Status; got != entity.OrderStatusCanceled {
		t.Fatalf("order status = %q, want canceled", got)
	}
	if got := f.data.products["prod-1"].Stock; got != 10 {
		t.Fatalf("stock after restock = %d, want 10", got)
	}
}

func TestWebhookBadSignature(t *testing.T) {
	f := newOrderFixture()
	f.stripe.webhookErr = errors.New("bad signature")

	err := f.service.HandleWebhook(context.Background(), []byte("{}"), "sig")
	if !errors.Is(err, store.ErrPaymentFailed) {
		t.Fatalf("err = %v, want ErrPaymentFailed", err)
	}
}

func TestGetOrderForeignSession(t *testing.T) {
	f := newOrderFixture()
	seedPendingOrder(f, "")

	_, err := f.service.GetOrder(context.Background(), "sess-other", "order-1")
	if !errors.Is(err, store.ErrOrderNotFound) {
		t.Fatalf("err = %v, want ErrOrderNotFound", err)
	}
}
