package llm

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

// WaitReady pings p until it answers, retrying with exponential backoff.
// It is only used for the startup reachability check; completions are
// never retried.
func WaitReady(ctx context.Context, p Provider, attempts uint64, base time.Duration) error {
	backoff := retry.WithMaxRetries(attempts, retry.NewExponential(base))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := p.Ping(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}
