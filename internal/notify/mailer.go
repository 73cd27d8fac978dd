package notify

import (
	"context"
	"fmt"
	"strings"

	"backend/internal/models"
)

// OrderMailer sends the two order-confirmation messages. Both sends are
// best-effort: callers log failures and move on.
type OrderMailer struct {
	sender     Sender
	adminEmail string
}

func NewOrderMailer(sender Sender, adminEmail string) *OrderMailer {
	return &OrderMailer{sender: sender, adminEmail: adminEmail}
}

func (m *OrderMailer) SendAdminNotification(ctx context.Context, order models.Order) error {
	if m.adminEmail == "" {
		return nil
	}
	subject := fmt.Sprintf("New order from %s", customerLabel(order))
	return m.sender.Send(ctx, m.adminEmail, subject, orderSummary(order))
}

func (m *OrderMailer) SendCustomerConfirmation(ctx context.Context, order models.Order) error {
	if order.CustomerEmail == "" {
		return nil
	}
	subject := "Your order confirmation"
	body := fmt.Sprintf("Hi %s,\n\nThanks for your order!\n\n%s\nWe'll let you know when it ships.\n",
		customerLabel(order), orderSummary(order))
	return m.sender.Send(ctx, order.CustomerEmail, subject, body)
}

func customerLabel(order models.Order) string {
	if strings.TrimSpace(order.CustomerName) != "" {
		return order.CustomerName
	}
	return "Customer"
}

func orderSummary(order models.Order) string {
	var b strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  %dx %s - $%.2f\n", item.Quantity, itemLabel(item), item.Price)
	}
	fmt.Fprintf(&b, "Subtotal: $%.2f\n", order.Subtotal)
	fmt.Fprintf(&b, "Shipping: $%.2f\n", order.Shipping)
	fmt.Fprintf(&b, "Total:    $%.2f\n", order.Total)
	if order.ShippingAddress != "" {
		fmt.Fprintf(&b, "Ship to:  %s\n", order.ShippingAddress)
	}
	return b.String()
}

func itemLabel(item models.OrderItem) string {
	if item.Name != "" {
		return item.Name
	}
	return fmt.Sprintf("Product %d", item.ProductID)
}
