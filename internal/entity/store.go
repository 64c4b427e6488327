package entity

import (
	"database/sql"
	"time"
)

type Product struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Description  string    `db:"description"`
	PriceCents   int64     `db:"price_cents"`
	ImageURL     string    `db:"image_url"`
	ImageAltText string    `db:"image_alt_text"`
	Stock        int       `db:"stock"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type CartItem struct {
	ID        string    `db:"id"`
	SessionID string    `db:"session_id"`
	ProductID string    `db:"product_id"`
	Quantity  int       `db:"quantity"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Order struct {
	ID                    string         `db:"id"`
	SessionID             string         `db:"session_id"`
	Email                 string         `db:"email"`
	Status                string         `db:"status"`
	TotalCents            int64          `db:"total_cents"`
	StripePaymentIntentID string         `db:"stripe_payment_intent_id"`
	ConversationID        sql.NullString `db:"conversation_id"`
	CreatedAt             time.Time      `db:"created_at"`
	UpdatedAt             time.Time      `db:"updated_at"`
}

const (
	OrderStatusPending  = "pending"
	OrderStatusPaid     = "paid"
	OrderStatusCanceled = "canceled"
)

type OrderItem struct {
	ID          string `db:"id"`
	OrderID     string `db:"order_id"`
	ProductID   string `db:"product_id"`
	ProductName string `db:"product_name"`
	PriceCents  int64  `db:"price_cents"`
	Quantity    int    `db:"quantity"`
}
