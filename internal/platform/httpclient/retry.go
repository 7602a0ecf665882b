package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/jsamuelsen11/numeral-service/internal/platform/config"
	"github.com/jsamuelsen11/numeral-service/internal/platform/logging"
)

// jitterFraction is the maximum jitter as a fraction of the delay (±25%).
const jitterFraction = 0.25

// retryPolicy is the exponential backoff schedule for one client.
type retryPolicy struct {
	maxAttempts int
	initial     time.Duration
	max         time.Duration
	multiplier  float64
}

func newRetryPolicy(cfg config.RetryConfig) retryPolicy {
	return retryPolicy{
		maxAttempts: cfg.MaxAttempts,
		initial:     cfg.InitialInterval,
		max:         cfg.MaxInterval,
		multiplier:  cfg.Multiplier,
	}
}

// backoff returns the delay before retry number attempt (1 for the first
// retry). jitter in [-1, 1] moves the delay by up to jitterFraction of it.
func (p retryPolicy) backoff(attempt int, jitter float64) time.Duration {
	delay := float64(p.initial) * math.Pow(p.multiplier, float64(attempt-1))
	delay = min(delay, float64(p.max))
	delay += delay * jitterFraction * jitter
	return time.Duration(max(delay, 0))
}

// delay picks the wait before retry number attempt. A Retry-After header on
// the previous response wins over the backoff schedule, capped at the
// policy's maximum interval.
func (p retryPolicy) delay(attempt int, prev *http.Response) time.Duration {
	if d, ok := retryAfter(prev, time.Now()); ok {
		return min(d, p.max)
	}
	return p.backoff(attempt, 2*rand.Float64()-1)
}

// retryAfter parses a Retry-After header given either as seconds or as an
// HTTP date.
func retryAfter(resp *http.Response, now time.Time) (time.Duration, bool) {
	if resp == nil {
		return 0, false
	}
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}
	if at, err := http.ParseTime(v); err == nil {
		return max(at.Sub(now), 0), true
	}
	return 0, false
}

// doWithRetry sends req up to maxAttempts times. The body is buffered so it
// can be replayed. On a retryable status the last response is returned with
// its body open alongside the error.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.retry.maxAttempts <= 0 {
		return nil, fmt.Errorf("httpclient: max attempts must be >= 1, got %d", c.retry.maxAttempts)
	}

	body, err := bufferBody(req)
	if err != nil {
		return nil, err
	}

	var (
		lastErr  error
		lastResp *http.Response
	)
	for attempt := range c.retry.maxAttempts {
		if attempt > 0 {
			if err := c.wait(ctx, req, attempt, lastResp, lastErr); err != nil {
				return nil, err
			}
		}
		if body != nil {
			req.Body = io.NopCloser(bytes.NewReader(body))
			req.ContentLength = int64(len(body))
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if !isRetryable(err) {
				return nil, err
			}
			lastErr, lastResp = err, nil
			continue
		}
		if !isRetryableStatus(resp.StatusCode) {
			return resp, nil
		}

		lastErr = fmt.Errorf("HTTP %d from %s", resp.StatusCode, c.name)
		if attempt == c.retry.maxAttempts-1 {
			return resp, lastErr
		}
		lastResp = resp
		drain(resp)
	}
	return nil, lastErr
}

// wait sleeps before a retry, logging the attempt at warn.
func (c *Client) wait(ctx context.Context, req *http.Request, attempt int, prev *http.Response, lastErr error) error {
	d := c.retry.delay(attempt, prev)

	logging.FromContext(ctx).WarnContext(ctx, "retrying HTTP request",
		slog.String("operation", "httpclient.Do"),
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.String("peer_service", c.name),
		slog.Int("attempt", attempt+1),
		slog.Int("max_attempts", c.retry.maxAttempts),
		slog.Duration("backoff", d),
		slog.Any("error", lastErr),
	)

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// bufferBody reads and closes the request body. Returns nil for no body.
func bufferBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	b, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	_ = req.Body.Close()
	return b, nil
}

// drain discards and closes a body so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// isRetryable reports whether a transport error is worth another attempt.
// Caller cancellation and deadlines are final; everything else is retried.
func isRetryable(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// isRetryableStatus reports whether a status is worth another attempt:
// 429 and every 5xx.
func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
