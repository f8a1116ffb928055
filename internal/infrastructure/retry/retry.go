// Package retry wraps calls to rate-limited upstream sources in an
// exponential backoff loop. Only transient failures are retried; validation
// and not-found errors surface immediately.
package retry

import (
	"context"
	"time"

	"github.com/buildingcarbon/backend/internal/domain/shared"
	"github.com/cenkalti/backoff/v4"
)

// Policy controls how an operation is retried. The zero value is unusable;
// build policies with DefaultPolicy and override fields as needed.
type Policy struct {
	// MaxAttempts is the total number of tries, first call included.
	MaxAttempts uint64
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	// Retryable decides whether a failure is worth another attempt.
	// Defaults to shared.IsTransient when nil.
	Retryable func(error) bool
}

// DefaultPolicy matches the rate-limit behavior of the open-data endpoints:
// short first pause, doubling with jitter, capped well under request timeout.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 4,
		BaseDelay:   250 * time.Millisecond,
		MaxDelay:    5 * time.Second,
	}
}

// Do runs op until it succeeds, exhausts the attempt budget, fails
// permanently, or ctx is done. The returned error is op's last error, or
// ctx.Err() when the context cut the loop short.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	retryable := p.Retryable
	if retryable == nil {
		retryable = shared.IsTransient
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.BaseDelay
	eb.MaxInterval = p.MaxDelay
	eb.MaxElapsedTime = 0
	eb.Reset()

	var b backoff.BackOff = eb
	if p.MaxAttempts > 0 {
		b = backoff.WithMaxRetries(eb, p.MaxAttempts-1)
	}
	b = backoff.WithContext(b, ctx)

	return backoff.Retry(func() error {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, b)
}
