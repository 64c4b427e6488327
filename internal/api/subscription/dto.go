package subscription

import "time"

type PlanResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PriceCents   int64  `json:"price_cents"`
	ChatbotQuota int    `json:"chatbot_quota"`
	MessageQuota int    `json:"message_quota"`
}

type CheckoutRequest struct {
	PlanID string `json:"plan_id" validate:"required"`
}

type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
}

type ChangePlanRequest struct {
	PlanID string `json:"plan_id" validate:"required"`
}

type SubscriptionResponse struct {
	PlanID           string    `json:"plan_id"`
	PlanName         string    `json:"plan_name"`
	Status           string    `json:"status"`
	ChatbotQuota     int       `json:"chatbot_quota"`
	MessageQuota     int       `json:"message_quota"`
	CurrentPeriodEnd time.Time `json:"current_period_end,omitempty"`
}
