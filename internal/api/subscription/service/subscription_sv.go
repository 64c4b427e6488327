package subscriptionService

import (
	"LulaiPlatform/internal/api/subscription"
	"LulaiPlatform/internal/entity"
	stripePkg "LulaiPlatform/pkg/stripe"
	"errors"
	"os"

	"golang.org/x/net/context"
)

func (s *subscriptionServiceImpl) ListPlans(ctx context.Context) ([]subscription.PlanResponse, error) {
	repo, err := s.subscriptionRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	plans, err := repo.Plans.ListPlans(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]subscription.PlanResponse, 0, len(plans))
	for _, plan := range plans {
		resp = append(resp, makePlanResponse(plan))
	}

	return resp, nil
}

func (s *subscriptionServiceImpl) CurrentSubscription(ctx context.Context, userID string) (subscription.SubscriptionResponse, error) {
	repo, err := s.subscriptionRepo.NewClient(false)
	if err != nil {
		return subscription.SubscriptionResponse{}, err
	}

	sub, err := repo.Subscriptions.GetSubscriptionByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, subscription.ErrSubscriptionNotFound) {
			return s.freeTierResponse(ctx)
		}
		return subscription.SubscriptionResponse{}, err
	}

	if sub.Status != entity.SubscriptionStatusActive && sub.Status != entity.SubscriptionStatusPastDue {
		return s.freeTierResponse(ctx)
	}

	plan, err := repo.Plans.GetPlanByID(ctx, sub.PlanID)
	if err != nil {
		return subscription.SubscriptionResponse{}, err
	}

	return subscription.SubscriptionResponse{
		PlanID:           plan.ID,
		PlanName:         plan.Name,
		Status:           sub.Status,
		ChatbotQuota:     plan.ChatbotQuota,
		MessageQuota:     plan.MessageQuota,
		CurrentPeriodEnd: sub.CurrentPeriodEnd,
	}, nil
}

func (s *subscriptionServiceImpl) freeTierResponse(ctx context.Context) (subscription.SubscriptionResponse, error) {
	repo, err := s.subscriptionRepo.NewClient(false)
	if err != nil {
		return subscription.SubscriptionResponse{}, err
	}

	plan, err := repo.Plans.GetPlanByName(ctx, freePlanName)
	if err != nil {
		return subscription.SubscriptionResponse{}, err
	}

	return subscription.SubscriptionResponse{
		PlanID:       plan.ID,
		PlanName:     plan.Name,
		Status:       entity.SubscriptionStatusActive,
		ChatbotQuota: plan.ChatbotQuota,
		MessageQuota: plan.MessageQuota,
	}, nil
}

func (s *subscriptionServiceImpl) CreateCheckout(ctx context.Context, userID string, email string, req subscription.CheckoutRequest) (subscription.CheckoutResponse, error) {
	repo, err := s.subscriptionRepo.NewClient(false)
	if err != nil {
		return subscription.CheckoutResponse{}, err
	}

	plan, err := repo.Plans.GetPlanByID(ctx, req.PlanID)
	if err != nil {
		return subscription.CheckoutResponse{}, err
	}
	if plan.StripePriceID == "" {
		return subscription.CheckoutResponse{}, subscription.ErrPlanNotPurchasable
	}

	baseURL := os.Getenv("DASHBOARD_BASE_URL")

	sess, err := s.stripeClient.CreateCheckoutSession(stripePkg.CheckoutRequest{
		PriceID:       plan.StripePriceID,
		CustomerEmail: email,
		SuccessURL:    baseURL + "/billing/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     baseURL + "/billing",
		Metadata: map[string]string{
			"user_id": userID,
			"plan_id": plan.ID,
		},
	})
	if err != nil {
		return subscription.CheckoutResponse{}, subscription.ErrCheckoutFailed
	}

	return subscription.CheckoutResponse{CheckoutURL: sess.URL}, nil
}

func (s *subscriptionServiceImpl) CancelSubscription(ctx context.Context, userID string) error {
	repo, err := s.subscriptionRepo.NewClient(false)
	if err != nil {
		return err
	}

	sub, err := repo.Subscriptions.GetSubscriptionByUser(ctx, userID)
	if err != nil {
		return err
	}
	if sub.Status == entity.SubscriptionStatusCanceled {
		return subscription.ErrSubscriptionNotFound
	}

	if err := s.stripeClient.CancelSubscription(sub.StripeSubscriptionID); err != nil {
		return err
	}

	return repo.Subscriptions.UpdateSubscriptionStatus(ctx, sub.StripeSubscriptionID, entity.SubscriptionStatusCanceled)
}

func (s *subscriptionServiceImpl) ChangePlan(ctx context.Context, userID string, req subscription.ChangePlanRequest) error {
	repo, err := s.subscriptionRepo.NewClient(false)
	if err != nil {
		return err
	}

	sub, err := repo.Subscriptions.GetSubscriptionByUser(ctx, userID)
	if err != nil {
		return err
	}
	if sub.Status != entity.SubscriptionStatusActive {
		return subscription.ErrSubscriptionNotFound
	}

	plan, err := repo.Plans.GetPlanByID(ctx, req.PlanID)
	if err != nil {
		return err
	}
	if plan.StripePriceID == "" {
		return subscription.ErrPlanNotPurchasable
	}

	if err := s.stripeClient.ChangeSubscriptionPrice(sub.StripeSubscriptionID, plan.StripePriceID); err != nil {
		return err
	}

	return repo.Subscriptions.SyncSubscription(ctx, sub.StripeSubscriptionID, plan.ID, sub.Status, sub.CurrentPeriodEnd)
}

// ActivePlan resolves the quota-bearing plan for a user: their paid plan
// while the subscription is active or past due, the free tier otherwise.
func (s *subscriptionServiceImpl) ActivePlan(ctx context.Context, userID string) (entity.Plan, error) {
	repo, err := s.subscriptionRepo.NewClient(false)
	if err != nil {
		return entity.Plan{}, err
	}

	sub, err := repo.Subscriptions.GetSubscriptionByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, subscription.ErrSubscriptionNotFound) {
			return repo.Plans.GetPlanByName(ctx, freePlanName)
		}
		return entity.Plan{}, err
	}

	if sub.Status != entity.SubscriptionStatusActive && sub.Status != entity.SubscriptionStatusPastDue {
		return repo.Plans.GetPlanByName(ctx, freePlanName)
	}

	return repo.Plans.GetPlanByID(ctx, sub.PlanID)
}

func makePlanResponse(plan entity.Plan) subscription.PlanResponse {
	return subscription.PlanResponse{
		ID:           plan.ID,
		Name:         plan.Name,
		PriceCents:   plan.PriceCents,
		ChatbotQuota: plan.ChatbotQuota,
		MessageQuota: plan.MessageQuota,
	}
}
