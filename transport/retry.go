package transport

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// RetryPolicy configures opt-in retry behavior. The zero value (and a nil
// policy on Options) means no retries: failed requests surface to the
// caller on the first attempt.
type RetryPolicy struct {
	// MaxRetries is the number of retry attempts after the first try.
	MaxRetries int
	// InitialBackoff is the wait before the first retry; subsequent waits
	// grow exponentially.
	InitialBackoff time.Duration
	// MaxBackoff caps the wait between attempts.
	MaxBackoff time.Duration
	// RetryableStatusCodes are the HTTP statuses worth retrying.
	RetryableStatusCodes []int
}

// DefaultRetryPolicy returns sensible defaults for callers that opt in.
// The pointer plugs straight into Options.Retry and Config.Retry.
func DefaultRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		MaxRetries:     3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     10 * time.Second,
		RetryableStatusCodes: []int{
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout,
		},
	}
}

func (p RetryPolicy) apply(client *resty.Client) {
	if p.MaxRetries <= 0 {
		return
	}

	client.SetRetryCount(p.MaxRetries)
	if p.InitialBackoff > 0 {
		client.SetRetryWaitTime(p.InitialBackoff)
	}
	if p.MaxBackoff > 0 {
		client.SetRetryMaxWaitTime(p.MaxBackoff)
	}

	retryable := make(map[int]struct{}, len(p.RetryableStatusCodes))
	for _, code := range p.RetryableStatusCodes {
		retryable[code] = struct{}{}
	}

	client.AddRetryCondition(func(resp *resty.Response, err error) bool {
		if resp == nil {
			return false
		}
		_, ok := retryable[resp.StatusCode()]
		return ok
	})
}
