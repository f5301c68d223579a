package cvn1

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/cvn1-standard/cvn1-sdk-go/pkg/ledger"
)

const defaultReadRetryInterval = 200 * time.Millisecond

// withReadRetry runs read, retrying unreachable failures up to the
// configured bound. Any other failure is returned immediately.
func (c *Client) withReadRetry(ctx context.Context, read func() error) error {
	if c.readRetries <= 0 {
		return read()
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.readRetryInterval
	policy.MaxElapsedTime = 0

	operation := func() error {
		err := read()
		if err != nil && !ledger.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	return backoff.Retry(
		operation,
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.readRetries)), ctx),
	)
}
