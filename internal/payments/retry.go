package payments

import (
	"errors"
	"time"
)

// RetryPolicy is an explicit retry schedule: up to MaxAttempts calls with the
// delay doubling after each transient failure (BaseDelay, 2*BaseDelay, ...).
// The sleep function is injectable so the schedule is testable without real
// waiting; the zero value for sleep means time.Sleep.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration

	sleep func(time.Duration)
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: 2 * time.Second}
}

// WithSleep returns a copy of the policy using the given sleep function.
func (p RetryPolicy) WithSleep(sleep func(time.Duration)) RetryPolicy {
	p.sleep = sleep
	return p
}

// Do runs fn until it succeeds, fails non-transiently, or MaxAttempts is
// reached. The final error is returned as-is; there is no sleep after the
// last attempt.
func (p RetryPolicy) Do(fn func() error) error {
	sleep := p.sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	delay := p.BaseDelay
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn()
		if err == nil || !IsTransient(err) {
			return err
		}
		if attempt == attempts {
			break
		}
		sleep(delay)
		delay *= 2
	}
	return err
}

// IsTransient reports whether the error is worth retrying: processor-side
// failures (5xx, rate limits) and transport errors qualify; validation and
// auth errors do not.
func IsTransient(err error) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Transient
	}
	return false
}
