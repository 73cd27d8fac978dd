package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"backend/internal/models"
	"backend/internal/payments"
)

// OrderStore persists materialized orders and the webhook dedup ledger.
type OrderStore interface {
	MarkEventProcessed(ctx context.Context, eventID, eventType string) (bool, error)
	InsertOrder(ctx context.Context, order models.Order) (int64, error)
}

// OrderNotifier sends the admin and customer order emails.
type OrderNotifier interface {
	SendAdminNotification(ctx context.Context, order models.Order) error
	SendCustomerConfirmation(ctx context.Context, order models.Order) error
}

// StripeWebhook is the only place order rows are created. Verification is a
// pure step; the projection that follows is idempotent per event id. Once the
// signature checks out the processor always gets {received: true} back —
// downstream failures are logged, never turned into a retryable status, to
// avoid processor-side redelivery storms.
func StripeWebhook(signingSecret string, store OrderStore, notifier OrderNotifier, shipping float64) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/stripe/webhook"
		defer handlePanic(c, route)

		payload, err := c.GetRawData()
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "could not read request body")
			return
		}

		event, err := payments.VerifyWebhook(payload, c.GetHeader("Stripe-Signature"), signingSecret)
		if err != nil {
			log.Printf("[%s] signature verification failed: %v", route, err)
			respondWithError(c, http.StatusBadRequest, route, "signature verification failed")
			return
		}

		if event.Type != payments.EventCheckoutSessionCompleted || event.Session == nil {
			log.Printf("[%s] ignoring event type %s", route, event.Type)
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		fresh, err := store.MarkEventProcessed(ctx, event.ID, event.Type)
		if err != nil {
			log.Printf("[%s] could not record event %s: %v", route, event.ID, err)
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
		if !fresh {
			log.Printf("[%s] event %s already processed, skipping", route, event.ID)
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		order, err := buildOrderFromSession(*event.Session, shipping)
		if err != nil {
			log.Printf("[%s] could not reconstruct order from session %s: %v", route, event.Session.ID, err)
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		orderID, err := store.InsertOrder(ctx, order)
		if err != nil {
			log.Printf("[%s] order insert failed for session %s: %v", route, event.Session.ID, err)
		} else {
			order.ID = orderID
			log.Printf("[%s] order %d created for session %s", route, orderID, event.Session.ID)
		}

		// Both sends are best-effort and never affect the acknowledgment.
		if err := notifier.SendAdminNotification(ctx, order); err != nil {
			log.Printf("[%s] admin notification failed: %v", route, err)
		}
		if err := notifier.SendCustomerConfirmation(ctx, order); err != nil {
			log.Printf("[%s] customer confirmation failed: %v", route, err)
		}

		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}
