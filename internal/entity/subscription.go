package entity

import "time"

type Plan struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	StripePriceID string    `db:"stripe_price_id"`
	PriceCents    int64     `db:"price_cents"`
	ChatbotQuota  int       `db:"chatbot_quota"`
	MessageQuota  int       `db:"message_quota"`
	CreatedAt     time.Time `db:"created_at"`
}

type Subscription struct {
	ID                   string    `db:"id"`
	UserID               string    `db:"user_id"`
	PlanID               string    `db:"plan_id"`
	StripeCustomerID     string    `db:"stripe_customer_id"`
	StripeSubscriptionID string    `db:"stripe_subscription_id"`
	Status               string    `db:"status"`
	CurrentPeriodEnd     time.Time `db:"current_period_end"`
	CreatedAt            time.Time `db:"created_at"`
	UpdatedAt            time.Time `db:"updated_at"`
}

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusCanceled = "canceled"
)
