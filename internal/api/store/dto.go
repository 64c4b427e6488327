package store

import "time"

type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=150"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	PriceCents  int64  `json:"price_cents" validate:"required,gt=0"`
	Stock       int    `json:"stock" validate:"gte=0"`
	IsActive    *bool  `json:"is_active" validate:"omitempty"`
}

type UpdateProductRequest struct {
	Name        string `json:"name" validate:"omitempty,min=2,max=150"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	PriceCents  int64  `json:"price_cents" validate:"omitempty,gt=0"`
	Stock       *int   `json:"stock" validate:"omitempty,gte=0"`
	IsActive    *bool  `json:"is_active" validate:"omitempty"`
}

type ProductResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	PriceCents   int64     `json:"price_cents"`
	ImageURL     string    `json:"image_url"`
	ImageAltText string    `json:"image_alt_text"`
	Stock        int       `json:"stock"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0,lte=99"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0,lte=99"`
}

type CartItemResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	PriceCents  int64  `json:"price_cents"`
	ImageURL    string `json:"image_url"`
	Quantity    int    `json:"quantity"`
}

type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	TotalCents int64              `json:"total_cents"`
}

type CheckoutRequest struct {
	Email          string `json:"email" validate:"required,email"`
	ConversationID string `json:"conversation_id" validate:"omitempty"`
}

type CheckoutResponse struct {
	OrderID      string `json:"order_id"`
	ClientSecret string `json:"client_secret"`
	TotalCents   int64  `json:"total_cents"`
}

type OrderItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	PriceCents  int64  `json:"price_cents"`
	Quantity    int    `json:"quantity"`
}

type OrderResponse struct {
	ID         string              `json:"id"`
	Email      string              `json:"email"`
	Status     string              `json:"status"`
	TotalCents int64               `json:"total_cents"`
	Items      []OrderItemResponse `json:"items,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}
