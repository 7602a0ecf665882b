package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Values of the result attribute.
const (
	ResultSuccess     = "success"
	ResultError       = "error"
	ResultOutOfRange  = "out_of_range"
	ResultCircuitOpen = "circuit_open"
)

// Attribute keys shared by spans and metrics.
var (
	AttrHTTPMethod  = attribute.Key("http.method")
	AttrHTTPRoute   = attribute.Key("http.route")
	AttrHTTPStatus  = attribute.Key("http.status_code")
	AttrPeerService = attribute.Key("peer.service")
	AttrResult      = attribute.Key("result")
)

// Metrics holds the service's instruments. A nil *Metrics accepts every
// Record call and drops it.
type Metrics struct {
	ServerRequestDuration metric.Float64Histogram
	ServerRequestTotal    metric.Int64Counter
	ClientRequestDuration metric.Float64Histogram
	ClientRequestTotal    metric.Int64Counter
	ConversionTotal       metric.Int64Counter
}

// NewMetrics registers the instruments on a meter named name.
func NewMetrics(mp metric.MeterProvider, name string) (*Metrics, error) {
	meter := mp.Meter(name)
	var errs []error

	seconds := func(name, desc string) metric.Float64Histogram {
		h, err := meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit("s"))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
		return h
	}
	count := func(name, desc, unit string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
		return c
	}

	m := &Metrics{
		ServerRequestDuration: seconds("http.server.request.duration", "Duration of inbound HTTP requests"),
		ServerRequestTotal:    count("http.server.request.total", "Inbound HTTP requests", "{request}"),
		ClientRequestDuration: seconds("http.client.request.duration", "Duration of outbound HTTP requests"),
		ClientRequestTotal:    count("http.client.request.total", "Outbound HTTP requests", "{request}"),
		ConversionTotal:       count("numeral.conversion.total", "Integer to Roman numeral conversions", "{conversion}"),
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("creating instruments: %w", err)
	}
	return m, nil
}

// RecordConversion counts one conversion with the given result.
func (m *Metrics) RecordConversion(ctx context.Context, result string) {
	if m == nil {
		return
	}
	m.ConversionTotal.Add(ctx, 1, metric.WithAttributes(AttrResult.String(result)))
}

// RecordServerRequest records one inbound request. Statuses of 400 and above
// count as errors.
func (m *Metrics) RecordServerRequest(ctx context.Context, method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		AttrHTTPMethod.String(method),
		AttrHTTPRoute.String(route),
		AttrHTTPStatus.Int(status),
		AttrResult.String(statusResult(status)),
	)
	m.ServerRequestDuration.Record(ctx, elapsed.Seconds(), attrs)
	m.ServerRequestTotal.Add(ctx, 1, attrs)
}

// RecordClientRequest records one outbound request to peer. A zero status
// means no response arrived.
func (m *Metrics) RecordClientRequest(ctx context.Context, method, peer string, status int, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		AttrHTTPMethod.String(method),
		AttrHTTPStatus.Int(status),
		AttrPeerService.String(peer),
		AttrResult.String(result),
	)
	m.ClientRequestDuration.Record(ctx, elapsed.Seconds(), attrs)
	m.ClientRequestTotal.Add(ctx, 1, attrs)
}

func statusResult(status int) string {
	if status >= http.StatusBadRequest {
		return ResultError
	}
	return ResultSuccess
}
