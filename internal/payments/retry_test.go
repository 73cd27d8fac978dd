package payments

import (
	"errors"
	"testing"
	"time"
)

func transientErr(msg string) error {
	return &Error{Transient: true, Message: msg, StatusCode: 503}
}

func TestRetryPolicySucceedsAfterTransientFailures(t *testing.T) {
	var slept []time.Duration
	policy := DefaultRetryPolicy().WithSleep(func(d time.Duration) {
		slept = append(slept, d)
	})

	calls := 0
	err := policy.Do(func() error {
		calls++
		if calls <= 2 {
			return transientErr("processor unavailable")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}

	var total time.Duration
	for _, d := range slept {
		total += d
	}
	if total < 6*time.Second {
		t.Fatalf("expected total backoff >= 6s, got %v (slept %v)", total, slept)
	}
	if len(slept) != 2 || slept[0] != 2*time.Second || slept[1] != 4*time.Second {
		t.Fatalf("expected backoff schedule [2s 4s], got %v", slept)
	}
}

func TestRetryPolicyStopsAfterMaxAttempts(t *testing.T) {
	var slept []time.Duration
	policy := DefaultRetryPolicy().WithSleep(func(d time.Duration) {
		slept = append(slept, d)
	})

	calls := 0
	final := transientErr("still down")
	err := policy.Do(func() error {
		calls++
		return final
	})
	if calls != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", calls)
	}
	if !errors.Is(err, final) {
		t.Fatalf("expected final error to surface, got %v", err)
	}
	// No sleep after the last failed attempt.
	if len(slept) != 2 {
		t.Fatalf("expected 2 sleeps, got %v", slept)
	}
}

func TestRetryPolicyDoesNotRetryNonTransientErrors(t *testing.T) {
	policy := DefaultRetryPolicy().WithSleep(func(time.Duration) {
		t.Fatal("should not sleep for a non-transient error")
	})

	calls := 0
	authErr := &Error{Type: "invalid_request_error", StatusCode: 401, Message: "bad key"}
	err := policy.Do(func() error {
		calls++
		return authErr
	})
	if calls != 1 {
		t.Fatalf("expected a single attempt, got %d", calls)
	}
	if !errors.Is(err, authErr) {
		t.Fatalf("expected the auth error back, got %v", err)
	}
}

func TestIsTransient(t *testing.T) {
	if IsTransient(errors.New("plain")) {
		t.Fatal("plain errors should not be treated as transient")
	}
	if !IsTransient(transientErr("x")) {
		t.Fatal("processor 5xx should be transient")
	}
	if IsTransient(&Error{Type: "card_error", StatusCode: 402}) {
		t.Fatal("card errors should not be transient")
	}
}
