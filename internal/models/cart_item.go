package models

import "time"

// CartItem is a convenience row for the storefront UI. The checkout path never
// reads it back; the cart snapshot sent by the client is authoritative there.
type CartItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	ProductID int64     `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}
