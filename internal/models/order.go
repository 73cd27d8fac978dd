package models

import "time"

// OrderItem represents a single product entry within an order.
type OrderItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order is created only when a verified payment-completed event arrives. It is
// never mutated afterwards; there is no refund or cancellation flow.
type Order struct {
	ID              int64       `json:"id"`
	CustomerName    string      `json:"customerName"`
	CustomerEmail   string      `json:"customerEmail"`
	Items           []OrderItem `json:"items"`
	Subtotal        float64     `json:"subtotal"`
	Shipping        float64     `json:"shipping"`
	Total           float64     `json:"total"`
	ShippingAddress string      `json:"shippingAddress,omitempty"`
	Status          string      `json:"status"`
	StripeSessionID string      `json:"stripeSessionId,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
}
