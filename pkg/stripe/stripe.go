package stripePkg

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v82"
	checkoutSession "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/paymentintent"
	stripeSubscription "github.com/stripe/stripe-go/v82/subscription"
	"github.com/stripe/stripe-go/v82/webhook"
)

type CheckoutRequest struct {
	PriceID       string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

type PaymentIntentRequest struct {
	AmountCents int64
	Currency    string
	Metadata    map[string]string
}

type IStripe interface {
	Init() error
	CreateCheckoutSession(req CheckoutRequest) (*stripe.CheckoutSession, error)
	CreatePaymentIntent(req PaymentIntentRequest) (*stripe.PaymentIntent, error)
	CancelSubscription(subscriptionID string) error
	ChangeSubscriptionPrice(subscriptionID string, newPriceID string) error
	VerifyWebhook(payload []byte, signatureHeader string) (stripe.Event, error)
}

type stripeService struct {
	log           *logrus.Logger
	webhookSecret string
}

func NewStripeService(log *logrus.Logger) IStripe {
	return &stripeService{
		log: log,
	}
}

func (s *stripeService) Init() error {
	apiKey := os.Getenv("STRIPE_SECRET_KEY")
	if apiKey == "" {
		return fmt.Errorf("STRIPE_SECRET_KEY not set")
	}

	s.webhookSecret = os.Getenv("STRIPE_WEBHOOK_SECRET")
	if s.webhookSecret == "" {
		return fmt.Errorf("STRIPE_WEBHOOK_SECRET not set")
	}

	stripe.Key = apiKey

	s.log.Info("Stripe client initialized")
	return nil
}

func (s *stripeService) CreateCheckoutSession(req CheckoutRequest) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(req.CustomerEmail),
		SuccessURL:    stripe.String(req.SuccessURL),
		CancelURL:     stripe.String(req.CancelURL),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: req.Metadata,
		},
	}

	sess, err := checkoutSession.New(params)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"price_id": req.PriceID,
			"error":    err.Error(),
		}).Error("Failed to create checkout session")
		return nil, err
	}

	return sess, nil
}

func (s *stripeService) CreatePaymentIntent(req PaymentIntentRequest) (*stripe.PaymentIntent, error) {
	currency := req.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.AmountCents),
		Currency: stripe.String(currency),
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"amount_cents": req.AmountCents,
			"error":        err.Error(),
		}).Error("Failed to create payment intent")
		return nil, err
	}

	return intent, nil
}

func (s *stripeService) CancelSubscription(subscriptionID string) error {
	if _, err := stripeSubscription.Cancel(subscriptionID, nil); err != nil {
		s.log.WithFields(logrus.Fields{
			"subscription_id": subscriptionID,
			"error":           err.Error(),
		}).Error("Failed to cancel subscription")
		return err
	}

	return nil
}

func (s *stripeService) ChangeSubscriptionPrice(subscriptionID string, newPriceID string) error {
	current, err := stripeSubscription.Get(subscriptionID, nil)
	if err != nil {
		return err
	}

	if len(current.Items.Data) == 0 {
		return fmt.Errorf("subscription %s has no items", subscriptionID)
	}

	params := &stripe.SubscriptionParams{
		Items: []*stripe.SubscriptionItemsParams{
			{
				ID:    stripe.String(current.Items.Data[0].ID),
				Price: stripe.String(newPriceID),
			},
		},
		ProrationBehavior: stripe.String("create_prorations"),
	}

	if _, err := stripeSubscription.Update(subscriptionID, params); err != nil {
		s.log.WithFields(logrus.Fields{
			"subscription_id": subscriptionID,
			"new_price_id":    newPriceID,
			"error":           err.Error(),
		}).Error("Failed to change subscription price")
		return err
	}

	return nil
}

func (s *stripeService) VerifyWebhook(payload []byte, signatureHeader string) (stripe.Event, error) {
	event, err := webhook.ConstructEvent(payload, signatureHeader, s.webhookSecret)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Webhook signature verification failed")
		return stripe.Event{}, err
	}

	return event, nil
}
