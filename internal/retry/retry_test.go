package retry_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/ollamagen/internal/retry"
)

func instantPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: 5}
}

func TestDefaultPolicy(t *testing.T) {
	policy := retry.DefaultPolicy()

	require.Equal(t, 5, policy.MaxAttempts)
	require.Equal(t, 5*time.Second, policy.InitialDelay)
	require.Equal(t, 15*time.Second, policy.BackoffIncrement)
}

func TestPolicy_Delays(t *testing.T) {
	tests := []struct {
		name      string
		increment time.Duration
	}{
		{name: "default increment", increment: 15 * time.Second},
		{name: "parse increment", increment: 1 * time.Second},
		{name: "no increment", increment: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := retry.DefaultPolicy().WithIncrement(tt.increment)
			k := tt.increment
			base := 5 * time.Second

			delays := policy.Delays()

			require.Equal(t, []time.Duration{base, base + k, base + 2*k, base + 3*k}, delays)

			var total time.Duration
			for _, d := range delays {
				total += d
			}
			require.Equal(t, 4*base+6*k, total)
		})
	}
}

func TestDo_SucceedsOnFifthAttempt(t *testing.T) {
	attempts := 0

	result, err := retry.Do(context.Background(), instantPolicy(), func(context.Context) (string, error) {
		attempts++
		if attempts < 5 {
			return "", fmt.Errorf("failure %d", attempts)
		}
		return "ok", nil
	})

	require.NoError(t, err)
	require.Equal(t, "ok", result)
	require.Equal(t, 5, attempts)
}

func TestDo_PropagatesFifthError(t *testing.T) {
	attempts := 0
	var last error

	_, err := retry.Do(context.Background(), instantPolicy(), func(context.Context) (int, error) {
		attempts++
		last = fmt.Errorf("failure %d", attempts)
		return 0, last
	})

	require.Error(t, err)
	require.Equal(t, 5, attempts)
	require.Same(t, last, err)
	require.EqualError(t, err, "failure 5")
}

func TestDo_SleepsBetweenAttempts(t *testing.T) {
	policy := retry.Policy{
		MaxAttempts:      5,
		InitialDelay:     2 * time.Millisecond,
		BackoffIncrement: 1 * time.Millisecond,
	}
	attempts := 0

	start := time.Now()
	_, err := retry.Do(context.Background(), policy, func(context.Context) (int, error) {
		attempts++
		return 0, errors.New("boom")
	})
	elapsed := time.Since(start)

	require.Error(t, err)
	require.Equal(t, 5, attempts)
	// 2 + 3 + 4 + 5 ms
	require.GreaterOrEqual(t, elapsed, 14*time.Millisecond)
}

func TestDo_StopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := retry.Policy{MaxAttempts: 5, InitialDelay: time.Hour}
	attempts := 0

	_, err := retry.Do(ctx, policy, func(context.Context) (int, error) {
		attempts++
		cancel()
		return 0, errors.New("boom")
	})

	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, attempts)
}

func TestDo_SingleAttemptWhenPolicyEmpty(t *testing.T) {
	attempts := 0

	_, err := retry.Do(context.Background(), retry.Policy{}, func(context.Context) (int, error) {
		attempts++
		return 0, errors.New("boom")
	})

	require.Error(t, err)
	require.Equal(t, 1, attempts)
}

func TestRun(t *testing.T) {
	t.Run("should return nil once the operation succeeds", func(t *testing.T) {
		attempts := 0

		err := retry.Run(context.Background(), instantPolicy(), func(context.Context) error {
			attempts++
			if attempts == 1 {
				return errors.New("transient")
			}
			return nil
		})

		require.NoError(t, err)
		require.Equal(t, 2, attempts)
	})

	t.Run("should return the last error unchanged", func(t *testing.T) {
		sentinel := errors.New("permanent")

		err := retry.Run(context.Background(), instantPolicy(), func(context.Context) error {
			return sentinel
		})

		require.Same(t, sentinel, err)
	})
}
