package subscription

import "LulaiPlatform/pkg/response"

var (
	ErrPlanNotFound          = response.NewError(404, "plan not found")
	ErrSubscriptionNotFound  = response.NewError(404, "no active subscription")
	ErrPlanNotPurchasable    = response.NewError(400, "plan cannot be purchased")
	ErrCheckoutFailed        = response.NewError(502, "failed to create checkout session")
	ErrInvalidWebhookPayload = response.NewError(400, "invalid webhook payload")
)
