package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"backend/internal/payments"
)

func TestCreateCheckoutSessionEvenSplitFallback(t *testing.T) {
	processor := &fakeProcessor{
		SessionResult: &payments.Session{ID: "cs_123", URL: "https://pay.example/cs_123"},
	}
	handler := CreateCheckoutSession(processor, "https://shop.example", false)

	// Three lines with no prices: the declared total is split evenly even
	// though real carts rarely price that way.
	body := `{
		"amount": 3000,
		"orderItems": [
			{"productId": 1, "quantity": 2},
			{"productId": 2, "quantity": 1},
			{"productId": 3}
		]
	}`
	w := postJSON(t, handler, "/api/checkout/create-session", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if processor.SessionCalls != 1 {
		t.Fatalf("expected one session call, got %d", processor.SessionCalls)
	}
	lines := processor.LastSession.Lines
	if len(lines) != 3 {
		t.Fatalf("expected 3 line items, got %d", len(lines))
	}
	for i, line := range lines {
		if line.UnitAmount != 1000 {
			t.Fatalf("line %d: expected even-split unit amount 1000, got %d", i, line.UnitAmount)
		}
	}
	if lines[2].Quantity != 1 {
		t.Fatalf("expected missing quantity to default to 1, got %d", lines[2].Quantity)
	}
	if lines[0].Name != "Product 1" {
		t.Fatalf("unexpected line name %q", lines[0].Name)
	}
}

func TestSessionLinesRoundEvenSplit(t *testing.T) {
	// 200 over 3 lines is 66.67 cents per line; the quotient rounds rather
	// than truncates.
	lines := sessionLines(200, []checkoutItemRequest{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 1},
		{ProductID: 3, Quantity: 1},
	})
	for i, line := range lines {
		if line.UnitAmount != 67 {
			t.Fatalf("line %d: expected rounded unit amount 67, got %d", i, line.UnitAmount)
		}
	}
}

func TestCreateCheckoutSessionPrefersLinePrices(t *testing.T) {
	processor := &fakeProcessor{
		SessionResult: &payments.Session{ID: "cs_456", URL: "https://pay.example/cs_456"},
	}
	handler := CreateCheckoutSession(processor, "https://shop.example", false)

	body := `{
		"amount": 5000,
		"orderItems": [{"productId": 1, "quantity": 2, "price": 1250}]
	}`
	w := postJSON(t, handler, "/api/checkout/create-session", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := processor.LastSession.Lines[0].UnitAmount; got != 1250 {
		t.Fatalf("expected the line's own price 1250, got %d", got)
	}
}

func TestCreateCheckoutSessionURLsFollowOrigin(t *testing.T) {
	processor := &fakeProcessor{
		SessionResult: &payments.Session{ID: "cs_789", URL: "https://pay.example/cs_789"},
	}
	handler := CreateCheckoutSession(processor, "https://fallback.example", false)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/checkout/create-session", handler)

	req := httptest.NewRequest("POST", "/api/checkout/create-session",
		strings.NewReader(`{"amount": 100, "orderItems": [{"productId": 1, "quantity": 1, "price": 100}]}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://storefront.example")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	params := processor.LastSession
	if !strings.HasPrefix(params.SuccessURL, "https://storefront.example/checkout/success") {
		t.Fatalf("expected success URL derived from Origin, got %q", params.SuccessURL)
	}
	if params.CancelURL != "https://storefront.example/cart" {
		t.Fatalf("expected cancel URL derived from Origin, got %q", params.CancelURL)
	}
}

func TestCreateCheckoutSessionMissingAmount(t *testing.T) {
	processor := &fakeProcessor{}
	w := postJSON(t, CreateCheckoutSession(processor, "https://shop.example", false),
		"/api/checkout/create-session", `{"orderItems": []}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if processor.SessionCalls != 0 {
		t.Fatal("processor should not be called without an amount")
	}
}

func TestGetOrderDetails(t *testing.T) {
	processor := &fakeProcessor{
		GetResult: &payments.Session{
			ID:            "cs_123",
			AmountTotal:   2995,
			PaymentStatus: "paid",
			CustomerEmail: "jane@example.com",
		},
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/order-details", GetOrderDetails(processor))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/order-details?session_id=cs_123", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		OrderID       string  `json:"orderId"`
		Total         float64 `json:"total"`
		Status        string  `json:"status"`
		CustomerEmail string  `json:"customerEmail"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if resp.OrderID != "cs_123" || resp.Total != 29.95 || resp.Status != "paid" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	// Missing session_id is rejected before any processor call.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/order-details", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without session_id, got %d", w.Code)
	}
	if processor.GetCalls != 1 {
		t.Fatalf("expected exactly one session lookup, got %d", processor.GetCalls)
	}
}
