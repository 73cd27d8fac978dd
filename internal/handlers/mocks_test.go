package handlers

import (
	"context"

	"backend/internal/models"
	"backend/internal/payments"
)

// fakeProcessor implements Processor, capturing the params of each call.
type fakeProcessor struct {
	IntentCalls    int
	LastIntent     payments.IntentParams
	IntentResult   *payments.Intent
	IntentErr      error
	SessionCalls   int
	LastSession    payments.SessionParams
	SessionResult  *payments.Session
	SessionErr     error
	GetCalls       int
	LastSessionID  string
	GetResult      *payments.Session
	GetErr         error
}

func (f *fakeProcessor) CreatePaymentIntent(_ context.Context, params payments.IntentParams) (*payments.Intent, error) {
	f.IntentCalls++
	f.LastIntent = params
	return f.IntentResult, f.IntentErr
}

func (f *fakeProcessor) CreateCheckoutSession(_ context.Context, params payments.SessionParams) (*payments.Session, error) {
	f.SessionCalls++
	f.LastSession = params
	return f.SessionResult, f.SessionErr
}

func (f *fakeProcessor) GetCheckoutSession(_ context.Context, id string) (*payments.Session, error) {
	f.GetCalls++
	f.LastSessionID = id
	return f.GetResult, f.GetErr
}

// fakeOrderStore implements OrderStore.
type fakeOrderStore struct {
	MarkCalls    int
	LastEventID  string
	Fresh        bool
	MarkErr      error
	InsertCalls  int
	LastOrder    models.Order
	InsertID     int64
	InsertErr    error
}

func (f *fakeOrderStore) MarkEventProcessed(_ context.Context, eventID, _ string) (bool, error) {
	f.MarkCalls++
	f.LastEventID = eventID
	return f.Fresh, f.MarkErr
}

func (f *fakeOrderStore) InsertOrder(_ context.Context, order models.Order) (int64, error) {
	f.InsertCalls++
	f.LastOrder = order
	return f.InsertID, f.InsertErr
}

// fakeNotifier implements OrderNotifier.
type fakeNotifier struct {
	AdminCalls    int
	CustomerCalls int
	LastOrder     models.Order
}

func (f *fakeNotifier) SendAdminNotification(_ context.Context, order models.Order) error {
	f.AdminCalls++
	f.LastOrder = order
	return nil
}

func (f *fakeNotifier) SendCustomerConfirmation(_ context.Context, order models.Order) error {
	f.CustomerCalls++
	return nil
}
