package subscriptionService

import (
	"LulaiPlatform/internal/api/subscription"
	subscriptionRepository "LulaiPlatform/internal/api/subscription/repository"
	"LulaiPlatform/internal/entity"
	stripePkg "LulaiPlatform/pkg/stripe"
	"LulaiPlatform/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// freePlanName is the catalog row every user falls back to when they have
// no paid subscription.
const freePlanName = "free"

type ISubscriptionService interface {
	ListPlans(ctx context.Context) ([]subscription.PlanResponse, error)
	CurrentSubscription(ctx context.Context, userID string) (subscription.SubscriptionResponse, error)
	CreateCheckout(ctx context.Context, userID string, email string, req subscription.CheckoutRequest) (subscription.CheckoutResponse, error)
	CancelSubscription(ctx context.Context, userID string) error
	ChangePlan(ctx context.Context, userID string, req subscription.ChangePlanRequest) error
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	ActivePlan(ctx context.Context, userID string) (entity.Plan, error)
}

type subscriptionServiceImpl struct {
	log              *logrus.Logger
	subscriptionRepo subscriptionRepository.Repository
	stripeClient     stripePkg.IStripe
	utils            utils.IUtils
}

func New(
	log *logrus.Logger,
	subscriptionRepo subscriptionRepository.Repository,
	stripeClient stripePkg.IStripe,
	utils utils.IUtils,
) ISubscriptionService {
	return &subscriptionServiceImpl{
		log:              log,
		subscriptionRepo: subscriptionRepo,
		stripeClient:     stripeClient,
		utils:            utils,
	}
}
