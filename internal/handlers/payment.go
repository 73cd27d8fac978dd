package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"backend/internal/payments"
)

// Processor is the payment-processor surface the checkout handlers consume.
type Processor interface {
	CreatePaymentIntent(ctx context.Context, params payments.IntentParams) (*payments.Intent, error)
	CreateCheckoutSession(ctx context.Context, params payments.SessionParams) (*payments.Session, error)
	GetCheckoutSession(ctx context.Context, id string) (*payments.Session, error)
}

/* =========================
   REQUEST DTOs
========================= */

type checkoutItemRequest struct {
	ProductID int64   `json:"productId"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
}

type checkoutRequest struct {
	Amount     *int64                `json:"amount"`
	OrderItems []checkoutItemRequest `json:"orderItems"`
	Currency   string                `json:"currency"`
	Metadata   map[string]string     `json:"metadata"`
}

/* =========================
   CREATE PAYMENT INTENT
========================= */

// CreatePaymentIntent reserves a charge for the client-declared total. The
// amount is not recomputed from catalog prices; whatever the client declares
// is what gets charged (see DESIGN.md).
func CreatePaymentIntent(processor Processor, devMode bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/create-payment-intent"
		defer handlePanic(c, route)

		requestID := uuid.NewString()

		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondCheckoutError(c, http.StatusBadRequest, route, "Missing amount", "", nil)
			return
		}
		if req.Amount == nil || *req.Amount <= 0 {
			respondCheckoutError(c, http.StatusBadRequest, route, "Missing amount", "", nil)
			return
		}

		currency := req.Currency
		if currency == "" {
			currency = "usd"
		}

		log.Printf("[%s] [%s] amount=%d currency=%s items=%d", route, requestID, *req.Amount, currency, len(req.OrderItems))

		params := payments.IntentParams{
			Amount:       *req.Amount,
			Currency:     currency,
			Metadata:     checkoutMetadata(req, requestID),
			ReceiptEmail: req.Metadata["email"],
			Description:  orderDescription(req.Metadata["customerName"]),
		}

		intent, err := processor.CreatePaymentIntent(c.Request.Context(), params)
		if err != nil {
			log.Printf("[%s] [%s] payment intent creation failed: %v", route, requestID, err)
			message, details := processorErrorDetails(err, devMode)
			respondCheckoutError(c, http.StatusInternalServerError, route,
				"Failed to create payment intent", message, details)
			return
		}

		log.Printf("[%s] [%s] payment intent created: %s", route, requestID, intent.ID)
		c.JSON(http.StatusOK, gin.H{
			"success":         true,
			"clientSecret":    intent.ClientSecret,
			"paymentIntentId": intent.ID,
			"timestamp":       nowStamp(),
		})
	}
}

/* =========================
   STRIPE DIAGNOSTICS
========================= */

// StripeTest creates a $1.00 intent to prove processor connectivity.
func StripeTest(processor Processor) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/stripe/test"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		intent, err := processor.CreatePaymentIntent(ctx, payments.IntentParams{
			Amount:   100,
			Currency: "usd",
		})
		if err != nil {
			message, details := processorErrorDetails(err, true)
			respondCheckoutError(c, http.StatusInternalServerError, route,
				"Stripe connection failed", message, details)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Stripe connection successful",
			"data":      gin.H{"paymentIntentId": intent.ID},
			"timestamp": nowStamp(),
		})
	}
}

/* =========================
   HELPERS
========================= */

// checkoutMetadata embeds the cart snapshot and declared total as opaque
// strings on the processor object, alongside any caller-provided keys.
func checkoutMetadata(req checkoutRequest, requestID string) map[string]string {
	meta := make(map[string]string, len(req.Metadata)+3)
	for key, value := range req.Metadata {
		meta[key] = value
	}

	items := req.OrderItems
	if items == nil {
		items = []checkoutItemRequest{}
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		encoded = []byte("[]")
	}

	meta["orderItems"] = string(encoded)
	if req.Amount != nil {
		meta["orderTotal"] = strconv.FormatInt(*req.Amount, 10)
	}
	meta["requestId"] = requestID
	return meta
}

func orderDescription(customerName string) string {
	if customerName == "" {
		customerName = "Customer"
	}
	return "Order for " + customerName
}

func processorErrorDetails(err error, devMode bool) (string, gin.H) {
	if !devMode {
		return "Internal server error", nil
	}

	message := err.Error()
	var pe *payments.Error
	if errors.As(err, &pe) {
		return message, gin.H{
			"type":       pe.Type,
			"code":       pe.Code,
			"statusCode": pe.StatusCode,
		}
	}
	return message, nil
}
