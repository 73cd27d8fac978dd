package handlers

import (
	"math"
	"testing"

	"backend/internal/payments"
)

func TestBuildOrderFromSession(t *testing.T) {
	session := payments.Session{
		ID:           "cs_1",
		CustomerName: "Jane Doe",
		Metadata: map[string]string{
			"orderTotal":      "29.95",
			"orderItems":      `[{"productId":7,"name":"Lavender Soap","quantity":2,"price":12}]`,
			"email":           "jane@example.com",
			"shippingAddress": "1 Main St",
		},
	}

	order, err := buildOrderFromSession(session, ShippingCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Total != 29.95 || order.Shipping != ShippingCost {
		t.Fatalf("unexpected totals: %+v", order)
	}
	if math.Abs(order.Subtotal-24.00) > 1e-9 {
		t.Fatalf("expected subtotal 24.00, got %v", order.Subtotal)
	}
	if order.CustomerName != "Jane Doe" {
		t.Fatalf("unexpected name %q", order.CustomerName)
	}
	// Email absent on the session falls back to metadata.
	if order.CustomerEmail != "jane@example.com" {
		t.Fatalf("unexpected email %q", order.CustomerEmail)
	}
	if order.ShippingAddress != "1 Main St" {
		t.Fatalf("unexpected address %q", order.ShippingAddress)
	}
	if len(order.Items) != 1 || order.Items[0].Name != "Lavender Soap" {
		t.Fatalf("unexpected items: %+v", order.Items)
	}
	if order.Status != "completed" {
		t.Fatalf("unexpected status %q", order.Status)
	}
}

func TestBuildOrderFromSessionFreeShipping(t *testing.T) {
	session := payments.Session{
		ID:       "cs_2",
		Metadata: map[string]string{"orderTotal": "24.00"},
	}
	order, err := buildOrderFromSession(session, ShippingFee(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Shipping != 0 || order.Subtotal != 24.00 {
		t.Fatalf("expected free shipping to leave the full total as subtotal, got %+v", order)
	}
}

func TestBuildOrderFromSessionRejectsBadMetadata(t *testing.T) {
	cases := map[string]map[string]string{
		"missing total": {"orderItems": "[]"},
		"empty total":   {"orderTotal": ""},
		"bad total":     {"orderTotal": "twenty"},
		"bad items":     {"orderTotal": "10", "orderItems": "not json"},
	}
	for name, metadata := range cases {
		if _, err := buildOrderFromSession(payments.Session{ID: "cs_x", Metadata: metadata}, ShippingCost); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestBuildOrderFromSessionClampsQuantity(t *testing.T) {
	session := payments.Session{
		ID: "cs_3",
		Metadata: map[string]string{
			"orderTotal": "10.00",
			"orderItems": `[{"productId":1,"quantity":0,"price":10}]`,
		},
	}
	order, err := buildOrderFromSession(session, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Items[0].Quantity != 1 {
		t.Fatalf("expected quantity clamped to 1, got %d", order.Items[0].Quantity)
	}
}
