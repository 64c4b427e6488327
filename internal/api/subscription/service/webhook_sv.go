package subscriptionService

import (
	"LulaiPlatform/internal/api/subscription"
	"LulaiPlatform/internal/entity"
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v82"
	"golang.org/x/net/context"
)

// HandleWebhook applies Stripe subscription lifecycle events to the local
// subscription row. The payload signature is verified before anything is
// parsed.
func (s *subscriptionServiceImpl) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.stripeClient.VerifyWebhook(payload, signature)
	if err != nil {
		return subscription.ErrInvalidWebhookPayload
	}

	switch event.Type {
	case "customer.subscription.created", "customer.subscription.updated":
		return s.applySubscriptionEvent(ctx, event)
	case "customer.subscription.deleted":
		return s.applySubscriptionDeleted(ctx, event)
	default:
		s.log.WithFields(logrus.Fields{
			"event_type": event.Type,
		}).Debug("Ignoring unhandled Stripe event")
		return nil
	}
}

func (s *subscriptionServiceImpl) applySubscriptionEvent(ctx context.Context, event stripe.Event) error {
	var stripeSub stripe.Subscription
	json := jsoniter.ConfigCompatibleWithStandardLibrary
	if err := json.Unmarshal(event.Data.Raw, &stripeSub); err != nil {
		return subscription.ErrInvalidWebhookPayload
	}

	status := mapStripeStatus(stripeSub.Status)
	periodEnd := subscriptionPeriodEnd(&stripeSub)

	repo, err := s.subscriptionRepo.NewClient(false)
	if err != nil {
		return err
	}

	planID := stripeSub.Metadata["plan_id"]
	if planID == "" {
		plan, err := s.planFromPrice(ctx, &stripeSub)
		if err != nil {
			return err
		}
		planID = plan.ID
	}

	if _, err := repo.Subscriptions.GetSubscriptionByStripeID(ctx, stripeSub.ID); err == nil {
		return repo.Subscriptions.SyncSubscription(ctx, stripeSub.ID, planID, status, periodEnd)
	} else if !errors.Is(err, subscription.ErrSubscriptionNotFound) {
		return err
	}

	userID := stripeSub.Metadata["user_id"]
	if userID == "" {
		s.log.WithFields(logrus.Fields{
			"stripe_subscription_id": stripeSub.ID,
		}).Warn("Subscription event without user metadata, skipping")
		return nil
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return err
	}

	var customerID string
	if stripeSub.Customer != nil {
		customerID = stripeSub.Customer.ID
	}

	now := time.Now()
	return repo.Subscriptions.UpsertSubscription(ctx, entity.Subscription{
		ID:                   id,
		UserID:               userID,
		PlanID:               planID,
		StripeCustomerID:     customerID,
		StripeSubscriptionID: stripeSub.ID,
		Status:               status,
		CurrentPeriodEnd:     periodEnd,
		CreatedAt:            now,
		UpdatedAt:            now,
	})
}

func (s *subscriptionServiceImpl) applySubscriptionDeleted(ctx context.Context, event stripe.Event) error {
	var stripeSub stripe.Subscription
	json := jsoniter.ConfigCompatibleWithStandardLibrary
	if err := json.Unmarshal(event.Data.Raw, &stripeSub); err != nil {
		return subscription.ErrInvalidWebhookPayload
	}

	repo, err := s.subscriptionRepo.NewClient(false)
	if err != nil {
		return err
	}

	err = repo.Subscriptions.UpdateSubscriptionStatus(ctx, stripeSub.ID, entity.SubscriptionStatusCanceled)
	if errors.Is(err, subscription.ErrSubscriptionNotFound) {
		// Already gone locally, nothing to cancel.
		return nil
	}
	return err
}

func (s *subscriptionServiceImpl) planFromPrice(ctx context.Context, stripeSub *stripe.Subscription) (entity.Plan, error) {
	repo, err := s.subscriptionRepo.NewClient(false)
	if err != nil {
		return entity.Plan{}, err
	}

	if stripeSub.Items == nil || len(stripeSub.Items.Data) == 0 || stripeSub.Items.Data[0].Price == nil {
		return entity.Plan{}, subscription.ErrInvalidWebhookPayload
	}

	return repo.Plans.GetPlanByStripePriceID(ctx, stripeSub.Items.Data[0].Price.ID)
}

func mapStripeStatus(status stripe.SubscriptionStatus) string {
	switch status {
	case stripe.SubscriptionStatusActive, stripe.SubscriptionStatusTrialing:
		return entity.SubscriptionStatusActive
	case stripe.SubscriptionStatusPastDue, stripe.SubscriptionStatusUnpaid:
		return entity.SubscriptionStatusPastDue
	default:
		return entity.SubscriptionStatusCanceled
	}
}

func subscriptionPeriodEnd(stripeSub *stripe.Subscription) time.Time {
	if stripeSub.Items != nil && len(stripeSub.Items.Data) > 0 {
		if end := stripeSub.Items.Data[0].CurrentPeriodEnd; end > 0 {
			return time.Unix(end, 0)
		}
	}
	return time.Time{}
}
