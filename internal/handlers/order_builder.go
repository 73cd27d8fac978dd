package handlers

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"backend/internal/models"
	"backend/internal/payments"
)

// ShippingCost is the flat shipping fee in dollars, matching the rate the
// storefront shows at checkout.
const ShippingCost = 5.95

// ShippingFee returns the fee applied when reconstructing orders.
func ShippingFee(freeShipping bool) float64 {
	if freeShipping {
		return 0
	}
	return ShippingCost
}

type orderItemMetadata struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// buildOrderFromSession reconstructs the order entirely from the session and
// its metadata as declared at intent-creation time. Prices are NOT re-read
// from the catalog; the persisted order reflects the declared values.
func buildOrderFromSession(session payments.Session, shipping float64) (models.Order, error) {
	totalRaw, ok := session.Metadata["orderTotal"]
	if !ok || totalRaw == "" {
		return models.Order{}, errors.New("session metadata missing orderTotal")
	}
	total, err := strconv.ParseFloat(totalRaw, 64)
	if err != nil {
		return models.Order{}, errors.New("invalid orderTotal in session metadata")
	}

	items := make([]models.OrderItem, 0)
	if raw := session.Metadata["orderItems"]; raw != "" {
		var parsed []orderItemMetadata
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			return models.Order{}, errors.New("invalid orderItems in session metadata")
		}
		for _, item := range parsed {
			quantity := item.Quantity
			if quantity < 1 {
				quantity = 1
			}
			items = append(items, models.OrderItem{
				ProductID: item.ProductID,
				Name:      item.Name,
				Quantity:  quantity,
				Price:     item.Price,
			})
		}
	}

	customerName := session.CustomerName
	if customerName == "" {
		customerName = session.Metadata["customerName"]
	}
	customerEmail := session.CustomerEmail
	if customerEmail == "" {
		customerEmail = session.Metadata["email"]
	}

	return models.Order{
		CustomerName:    customerName,
		CustomerEmail:   customerEmail,
		Items:           items,
		Subtotal:        total - shipping,
		Shipping:        shipping,
		Total:           total,
		ShippingAddress: session.Metadata["shippingAddress"],
		Status:          "completed",
		StripeSessionID: session.ID,
		CreatedAt:       time.Now(),
	}, nil
}
