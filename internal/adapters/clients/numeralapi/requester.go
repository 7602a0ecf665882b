package numeralapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/numeral-service/internal/domain"
	"github.com/jsamuelsen11/numeral-service/internal/platform/httpclient"
)

// requester runs one JSON exchange with the remote service: encode, send
// through the resilient client, check the status, decode, close.
type requester struct {
	client *httpclient.Client
	logger *slog.Logger
}

// do sends in (if non-nil) as JSON to path and decodes a wantStatus reply
// into out (if non-nil). Any other status goes through TranslateHTTPError.
func (r *requester) do(ctx context.Context, method, path string, wantStatus int, in, out any) error {
	var body io.Reader = http.NoBody
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.client.BaseURL()+path, body)
	if err != nil {
		return fmt.Errorf("building %s %s: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(ctx, req)
	if resp != nil {
		defer r.close(ctx, resp)
	}

	log := r.logger.With(slog.String("method", method), slog.String("path", path))
	switch {
	case resp != nil && resp.StatusCode != wantStatus:
		// Also covers retries running out on a retryable status.
		log.WarnContext(ctx, "unexpected status from numeral API",
			slog.Int("status", resp.StatusCode),
			slog.Int("want_status", wantStatus),
		)
		return TranslateHTTPError(resp)
	case err != nil:
		log.ErrorContext(ctx, "numeral API request failed", slog.Any("error", err))
		return transportError(method, path, err)
	case out == nil:
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

func (r *requester) close(ctx context.Context, resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	if err := resp.Body.Close(); err != nil {
		r.logger.WarnContext(ctx, "closing response body", slog.Any("error", err))
	}
}

// transportError wraps a failure that produced no response. Breaker
// rejections and network errors make the remote unavailable; caller
// cancellation passes through unchanged.
func transportError(method, path string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	return fmt.Errorf("%s %s: %w: %w", method, path, domain.ErrUnavailable, err)
}
