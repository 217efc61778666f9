package httpx

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type HTTPStatusCoder interface {
	HTTPStatusCode() int
}

// StatusError is returned for non-2xx responses the caller did not expect.
type StatusError struct {
	Method string
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.Status)
}

func (e *StatusError) HTTPStatusCode() int { return e.Status }

func IsRetryableHTTPStatus(code int) bool {
	if code == http.StatusRequestTimeout || code == http.StatusTooManyRequests {
		return true
	}
	return code >= 500 && code <= 599
}

func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var sc HTTPStatusCoder
	if errors.As(err, &sc) {
		return IsRetryableHTTPStatus(sc.HTTPStatusCode())
	}
	return false
}

func RetryAfterDuration(resp *http.Response, fallback, max time.Duration) time.Duration {
	sleepFor := fallback
	if resp != nil {
		if ra := strings.TrimSpace(resp.Header.Get("Retry-After")); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil && secs > 0 {
				sleepFor = time.Duration(secs) * time.Second
			}
		}
	}
	if max > 0 && sleepFor > max {
		sleepFor = max
	}
	return sleepFor
}

// JitterSleep spreads base by +/-20%.
func JitterSleep(base time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	delta := base.Seconds() * 0.2
	low := base.Seconds() - delta
	if low < 0 {
		low = 0
	}
	v := low + rand.Float64()*(2*delta)
	return time.Duration(v * float64(time.Second))
}

type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
	MaxWait  time.Duration
}

// Do sends the request built by newReq, retrying transport errors and retryable
// statuses. Statuses listed in accept are returned to the caller as-is; any other
// non-2xx ends up as a *StatusError. The caller owns the returned body.
func Do(ctx context.Context, client *http.Client, policy RetryPolicy, newReq func(ctx context.Context) (*http.Request, error), accept ...int) (*http.Response, error) {
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		req, err := newReq(ctx)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		wait := policy.Backoff * time.Duration(attempt)
		switch {
		case err != nil:
			lastErr = err
			if !IsRetryableError(err) {
				return nil, err
			}
		case resp.StatusCode >= 200 && resp.StatusCode < 300, containsStatus(accept, resp.StatusCode):
			return resp, nil
		default:
			lastErr = &StatusError{Method: req.Method, URL: req.URL.Redacted(), Status: resp.StatusCode}
			wait = RetryAfterDuration(resp, wait, policy.MaxWait)
			resp.Body.Close()
			if !IsRetryableHTTPStatus(resp.StatusCode) {
				return nil, lastErr
			}
		}
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(JitterSleep(wait)):
		}
	}
	return nil, lastErr
}

func containsStatus(list []int, code int) bool {
	for _, c := range list {
		if c == code {
			return true
		}
	}
	return false
}
