package payments

import (
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const EventCheckoutSessionCompleted = "checkout.session.completed"

// WebhookEvent is a verified processor event. Session is populated only for
// checkout.session.completed deliveries.
type WebhookEvent struct {
	ID      string
	Type    string
	Session *Session
}

// VerifyWebhook checks the raw payload against the signature header and the
// signing secret and returns a typed event. It performs no side effects, so
// callers can apply the event idempotently afterwards.
func VerifyWebhook(payload []byte, signatureHeader, signingSecret string) (WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signatureHeader, signingSecret)
	if err != nil {
		return WebhookEvent{}, fmt.Errorf("webhook verification failed: %w", err)
	}

	result := WebhookEvent{ID: event.ID, Type: string(event.Type)}
	if result.Type != EventCheckoutSessionCompleted {
		return result, nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return WebhookEvent{}, fmt.Errorf("could not decode session payload: %w", err)
	}
	result.Session = sessionFromStripe(&session)
	return result, nil
}
