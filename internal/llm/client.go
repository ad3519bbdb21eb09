// Package llm invokes the model provider with schema-constrained output and
// an explicit, testable retry policy.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"resume-parser/internal/prompt"
)

// Caller performs a single provider invocation. Implementations classify
// their own failures with Transient or Denied; anything they cannot parse
// into a payload is returned as raw bytes for the validator to judge.
type Caller interface {
	Invoke(ctx context.Context, req prompt.Request) (json.RawMessage, error)
}

// RetryPolicy bounds the retry loop. MaxAttempts counts every attempt
// including the first; a budget of 3 permits two retries.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryPolicy matches the production defaults: three attempts with
// exponential backoff starting at half a second.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    8 * time.Second,
	}
}

// backoff returns the delay before retry number retry (1-based).
func (p RetryPolicy) backoff(retry int) time.Duration {
	d := p.BaseDelay << (retry - 1)
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}

// Client wraps a provider caller with the retry policy and per-attempt
// timeout. It holds no per-request state and is safe for concurrent use.
type Client struct {
	caller  Caller
	policy  RetryPolicy
	timeout time.Duration
}

// NewClient builds an extraction client. A non-positive timeout disables
// the per-attempt deadline.
func NewClient(caller Caller, policy RetryPolicy, timeout time.Duration) *Client {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = 1
	}
	return &Client{caller: caller, policy: policy, timeout: timeout}
}

// Extract invokes the provider, retrying transient failures within the
// policy budget. Access-denied failures and unclassified errors return
// immediately; malformed payloads are not an error here, the validator is
// the sole authority on structural correctness.
func (c *Client) Extract(ctx context.Context, req prompt.Request) (json.RawMessage, error) {
	var lastErr error
	for attempt := 1; attempt <= c.policy.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, c.policy.backoff(attempt-1)); err != nil {
				return nil, err
			}
			log.Printf("provider retry %d/%d after transient failure: %v", attempt, c.policy.MaxAttempts, lastErr)
		}

		raw, err := c.invokeOnce(ctx, req)
		if err == nil {
			return raw, nil
		}
		if isDenied(err) {
			return nil, fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
		if !isTransient(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w after %d attempts: %v", ErrUnavailable, c.policy.MaxAttempts, lastErr)
}

func (c *Client) invokeOnce(ctx context.Context, req prompt.Request) (json.RawMessage, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.caller.Invoke(ctx, req)
}

// sleep waits for d or until the context is done, whichever comes first, so
// a caller disconnect never sits out the remaining retry budget.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
