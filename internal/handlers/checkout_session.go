package handlers

import (
	"context"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"backend/internal/payments"
)

/* =========================
   CREATE CHECKOUT SESSION
========================= */

// CreateCheckoutSession builds a hosted redirect session, one line item per
// cart entry. When a line carries no price the total is split evenly across
// all lines — wrong for mixed-price carts, but it is what the storefront has
// always done and the client compensates by sending prices.
func CreateCheckoutSession(processor Processor, fallbackOrigin string, devMode bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/checkout/create-session"
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

		origin := c.GetHeader("Origin")
		if origin == "" {
			origin = fallbackOrigin
		}

		log.Printf("[%s] [%s] amount=%d items=%d", route, requestID, *req.Amount, len(req.OrderItems))

		params := payments.SessionParams{
			Currency:      currency,
			Lines:         sessionLines(*req.Amount, req.OrderItems),
			Metadata:      checkoutMetadata(req, requestID),
			CustomerEmail: req.Metadata["email"],
			SuccessURL:    origin + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
			CancelURL:     origin + "/cart",
		}

		session, err := processor.CreateCheckoutSession(c.Request.Context(), params)
		if err != nil {
			log.Printf("[%s] [%s] checkout session creation failed: %v", route, requestID, err)
			message, details := processorErrorDetails(err, devMode)
			respondCheckoutError(c, http.StatusInternalServerError, route,
				"Failed to create checkout session", message, details)
			return
		}

		log.Printf("[%s] [%s] checkout session created: %s", route, requestID, session.ID)
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"sessionId": session.ID,
			"url":       session.URL,
			"timestamp": nowStamp(),
		})
	}
}

// sessionLines derives the per-line unit price: the line's own price when
// present, otherwise an even split of the declared total across all lines.
func sessionLines(amount int64, items []checkoutItemRequest) []payments.SessionLine {
	lines := make([]payments.SessionLine, 0, len(items))
	for _, item := range items {
		unit := int64(math.Round(item.Price))
		if unit <= 0 {
			unit = int64(math.Round(float64(amount) / float64(len(items))))
		}

		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}

		lines = append(lines, payments.SessionLine{
			Name:        fmt.Sprintf("Product %d", item.ProductID),
			Description: fmt.Sprintf("Quantity: %d", quantity),
			UnitAmount:  unit,
			Quantity:    quantity,
		})
	}
	return lines
}

/* =========================
   ORDER DETAILS
========================= */

// GetOrderDetails re-queries the processor for session state; nothing is read
// from the local database.
func GetOrderDetails(processor Processor) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/order-details"
		defer handlePanic(c, route)

		sessionID := c.Query("session_id")
		if sessionID == "" {
			respondCheckoutError(c, http.StatusBadRequest, route, "Session ID is required", "", nil)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		session, err := processor.GetCheckoutSession(ctx, sessionID)
		if err != nil {
			log.Printf("[%s] failed to retrieve session %s: %v", route, sessionID, err)
			respondCheckoutError(c, http.StatusInternalServerError, route,
				"Failed to fetch order details", "", nil)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orderId":       session.ID,
			"total":         float64(session.AmountTotal) / 100,
			"status":        session.PaymentStatus,
			"customerEmail": session.CustomerEmail,
			"timestamp":     nowStamp(),
		})
	}
}
