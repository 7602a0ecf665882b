// Package numeralapi is the outbound adapter for a remote numeral service.
// It speaks the service's HTTP API through the instrumented
// httpclient.Client and translates responses back into numeral and domain
// types, so remote results can be handled exactly like local ones.
package numeralapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jsamuelsen11/numeral-service/internal/domain/numeral"
	"github.com/jsamuelsen11/numeral-service/internal/platform/httpclient"
	"github.com/jsamuelsen11/numeral-service/internal/ports"
)

// ServiceName identifies the remote service in health checks, traces and
// metrics.
const ServiceName = "numeral-api"

const basePath = "/api/v1/numerals"

// Compile-time checks.
var (
	_ ports.NumeralClient = (*Client)(nil)
	_ ports.HealthChecker = (*Client)(nil)
)

// Client implements ports.NumeralClient against the numeral service API.
type Client struct {
	http *httpclient.Client
	req  *requester
}

// NewClient creates a Client backed by the given HTTP client. A nil logger
// discards logs.
func NewClient(client *httpclient.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		http: client,
		req:  &requester{client: client, logger: logger},
	}
}

// Convert asks the remote service for the numeral of value.
func (c *Client) Convert(ctx context.Context, value int) (numeral.Numeral, error) {
	var resp numeralDTO
	if err := c.req.do(ctx, http.MethodGet, basePath+"/"+strconv.Itoa(value), http.StatusOK, nil, &resp); err != nil {
		return numeral.Numeral{}, err
	}
	if resp.Value != value {
		return numeral.Numeral{}, fmt.Errorf("%w: asked for %d, got answer for %d", ErrRemoteMismatch, value, resp.Value)
	}
	return toNumeral(resp)
}

// ConvertBatch sends all values in one request.
func (c *Client) ConvertBatch(ctx context.Context, values []int) (*ports.BatchResult, error) {
	var resp batchResponseDTO
	if err := c.req.do(ctx, http.MethodPost, basePath+"/batch", http.StatusOK, batchRequestDTO{Values: values}, &resp); err != nil {
		return nil, err
	}
	return toBatchResult(values, resp)
}

// Name returns ServiceName.
func (c *Client) Name() string {
	return ServiceName
}

// HealthCheck reports the remote service's availability from the circuit
// breaker state. No network call is made.
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.http.HealthCheck(ctx)
}
