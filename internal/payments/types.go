package payments

import "fmt"

// IntentParams describes a payment-intent creation request. Amount is in minor
// currency units and is taken as declared by the caller; it is not recomputed
// from catalog prices.
type IntentParams struct {
	Amount       int64
	Currency     string
	Metadata     map[string]string
	ReceiptEmail string
	Description  string
}

type Intent struct {
	ID           string
	ClientSecret string
}

// SessionLine is one hosted-checkout line item.
type SessionLine struct {
	Name        string
	Description string
	UnitAmount  int64
	Quantity    int64
}

type SessionParams struct {
	Currency      string
	Lines         []SessionLine
	Metadata      map[string]string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

// Session carries the subset of processor session state the backend consumes.
type Session struct {
	ID            string
	URL           string
	AmountTotal   int64
	PaymentStatus string
	CustomerEmail string
	CustomerName  string
	Metadata      map[string]string
}

// Error is a processor failure with enough detail to decide on retries and to
// surface type/code in development responses.
type Error struct {
	Type       string
	Code       string
	StatusCode int
	Transient  bool
	Message    string
	err        error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("payment processor: %s", e.Message)
	}
	return "payment processor error"
}

func (e *Error) Unwrap() error {
	return e.err
}
