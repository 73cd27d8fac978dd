package payments

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// Client talks to Stripe. It is constructed once at startup and passed down;
// nothing in this package holds global state.
type Client struct {
	api   *client.API
	retry RetryPolicy
}

func NewClient(secretKey string, timeout time.Duration, retry RetryPolicy) *Client {
	httpClient := &http.Client{Timeout: timeout}
	api := &client.API{}
	api.Init(secretKey, stripe.NewBackends(httpClient))
	return &Client{api: api, retry: retry}
}

// CreatePaymentIntent reserves a charge for the declared amount. Transient
// processor failures are retried per the client's policy; retries carry no
// idempotency key, so a retry after a processor-side timeout can leave a
// duplicate reserved intent behind.
func (c *Client) CreatePaymentIntent(ctx context.Context, params IntentParams) (*Intent, error) {
	piParams := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(params.Amount),
		Currency: stripe.String(params.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	piParams.Context = ctx
	if params.ReceiptEmail != "" {
		piParams.ReceiptEmail = stripe.String(params.ReceiptEmail)
	}
	if params.Description != "" {
		piParams.Description = stripe.String(params.Description)
	}
	for key, value := range params.Metadata {
		piParams.AddMetadata(key, value)
	}

	var pi *stripe.PaymentIntent
	err := c.retry.Do(func() error {
		var callErr error
		pi, callErr = c.api.PaymentIntents.New(piParams)
		return wrapStripeError(callErr)
	})
	if err != nil {
		return nil, err
	}

	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

// CreateCheckoutSession builds a hosted redirect session. No retry: the
// client redirects immediately, so a late duplicate session is worse than a
// surfaced error.
func (c *Client) CreateCheckoutSession(ctx context.Context, params SessionParams) (*Session, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(params.Lines))
	for _, line := range params.Lines {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(params.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(line.Name),
					Description: stripe.String(line.Description),
				},
				UnitAmount: stripe.Int64(line.UnitAmount),
			},
			Quantity: stripe.Int64(line.Quantity),
		})
	}

	sessionParams := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(params.SuccessURL),
		CancelURL:          stripe.String(params.CancelURL),
	}
	sessionParams.Context = ctx
	if params.CustomerEmail != "" {
		sessionParams.CustomerEmail = stripe.String(params.CustomerEmail)
	}
	for key, value := range params.Metadata {
		sessionParams.AddMetadata(key, value)
	}

	session, err := c.api.CheckoutSessions.New(sessionParams)
	if err != nil {
		return nil, wrapStripeError(err)
	}
	return sessionFromStripe(session), nil
}

func (c *Client) GetCheckoutSession(ctx context.Context, id string) (*Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	session, err := c.api.CheckoutSessions.Get(id, params)
	if err != nil {
		return nil, wrapStripeError(err)
	}
	return sessionFromStripe(session), nil
}

func sessionFromStripe(session *stripe.CheckoutSession) *Session {
	result := &Session{
		ID:            session.ID,
		URL:           session.URL,
		AmountTotal:   session.AmountTotal,
		PaymentStatus: string(session.PaymentStatus),
		CustomerEmail: session.CustomerEmail,
		Metadata:      session.Metadata,
	}
	if session.CustomerDetails != nil {
		result.CustomerName = session.CustomerDetails.Name
		if session.CustomerDetails.Email != "" {
			result.CustomerEmail = session.CustomerDetails.Email
		}
	}
	return result
}

// wrapStripeError converts SDK errors into a processor Error, classifying
// retryability: 5xx and rate-limit responses plus transport-level failures
// are transient, validation and auth failures are not.
func wrapStripeError(err error) error {
	if err == nil {
		return nil
	}

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		transient := stripeErr.HTTPStatusCode >= http.StatusInternalServerError ||
			stripeErr.HTTPStatusCode == http.StatusTooManyRequests ||
			stripeErr.Type == stripe.ErrorTypeAPI
		return &Error{
			Type:       string(stripeErr.Type),
			Code:       string(stripeErr.Code),
			StatusCode: stripeErr.HTTPStatusCode,
			Transient:  transient,
			Message:    stripeErr.Msg,
			err:        err,
		}
	}

	// No typed processor response: the request may never have arrived.
	return &Error{Transient: true, Message: err.Error(), err: err}
}
