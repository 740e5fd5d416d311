// Package retry re-runs fallible operations with an additive backoff between attempts.
package retry

import (
	"context"
	"time"

	"github.com/davidbz/ollamagen/internal/observability"
)

const (
	defaultMaxAttempts      = 5
	defaultInitialDelay     = 5 * time.Second
	defaultBackoffIncrement = 15 * time.Second
)

// Policy describes how many attempts are made and how long to wait between them.
// The delay grows by BackoffIncrement after every failed attempt.
type Policy struct {
	MaxAttempts      int
	InitialDelay     time.Duration
	BackoffIncrement time.Duration
}

// DefaultPolicy returns 5 attempts, 5s initial delay and a 15s increment.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:      defaultMaxAttempts,
		InitialDelay:     defaultInitialDelay,
		BackoffIncrement: defaultBackoffIncrement,
	}
}

// WithIncrement returns a copy of the policy using a different backoff increment.
func (p Policy) WithIncrement(increment time.Duration) Policy {
	p.BackoffIncrement = increment
	return p
}

// Delays returns the sleep durations taken before attempts 2..MaxAttempts.
func (p Policy) Delays() []time.Duration {
	if p.MaxAttempts <= 1 {
		return nil
	}

	delays := make([]time.Duration, 0, p.MaxAttempts-1)
	delay := p.InitialDelay
	for attempt := 1; attempt < p.MaxAttempts; attempt++ {
		delays = append(delays, delay)
		delay += p.BackoffIncrement
	}
	return delays
}

// Do runs op until it succeeds or the policy is exhausted. Any error is retried except on
// the final attempt, whose error is returned unchanged.
func Do[T any](ctx context.Context, policy Policy, op func(ctx context.Context) (T, error)) (T, error) {
	maxAttempts := policy.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	logger := observability.FromContext(ctx)
	delay := policy.InitialDelay

	for attempt := 1; ; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		if attempt >= maxAttempts {
			return result, err
		}

		logger.Warn("attempt failed, retrying",
			observability.Int("attempt", attempt),
			observability.Int("max_attempts", maxAttempts),
			observability.Duration("delay", delay),
			observability.Error(err))

		if sleepErr := sleep(ctx, delay); sleepErr != nil {
			var zero T
			return zero, sleepErr
		}

		delay += policy.BackoffIncrement
	}
}

// Run is Do for operations that only return an error.
func Run(ctx context.Context, policy Policy, op func(ctx context.Context) error) error {
	_, err := Do(ctx, policy, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
