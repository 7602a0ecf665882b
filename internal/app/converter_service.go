// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	appctx "github.com/jsamuelsen11/numeral-service/internal/app/context"
	"github.com/jsamuelsen11/numeral-service/internal/app/fanout"
	"github.com/jsamuelsen11/numeral-service/internal/domain"
	"github.com/jsamuelsen11/numeral-service/internal/domain/numeral"
	"github.com/jsamuelsen11/numeral-service/internal/platform/config"
	"github.com/jsamuelsen11/numeral-service/internal/platform/telemetry"
	"github.com/jsamuelsen11/numeral-service/internal/ports"
)

// Compile-time checks.
var (
	_ ports.ConverterService = (*ConverterService)(nil)
	_ ports.HealthChecker    = (*ConverterService)(nil)
)

// Batch limits used when the configuration leaves them unset.
const (
	DefaultBatchMaxItems = 100
	DefaultBatchWorkers  = 8
)

// selfTest pairs used by HealthCheck. They cover every subtractive form and
// both ends of the range.
var selfTest = []struct {
	value int
	want  string
}{
	{1, "I"},
	{4, "IV"},
	{9, "IX"},
	{40, "XL"},
	{90, "XC"},
	{400, "CD"},
	{900, "CM"},
	{1994, "MCMXCIV"},
	{3999, "MMMCMXCIX"},
}

// ConverterService implements ports.ConverterService on top of the numeral
// package. It adds logging, metrics and batch handling around the pure
// conversion.
type ConverterService struct {
	maxItems int
	workers  int
	metrics  *telemetry.Metrics
	logger   *slog.Logger
}

// NewConverterService creates a ConverterService. Zero batch limits in cfg
// fall back to DefaultBatchMaxItems and DefaultBatchWorkers. A nil metrics
// disables counting and a nil logger discards logs.
func NewConverterService(cfg config.ConverterConfig, metrics *telemetry.Metrics, logger *slog.Logger) *ConverterService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	maxItems := cfg.BatchMaxItems
	if maxItems <= 0 {
		maxItems = DefaultBatchMaxItems
	}
	workers := cfg.BatchWorkers
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}
	return &ConverterService{
		maxItems: maxItems,
		workers:  workers,
		metrics:  metrics,
		logger:   logger,
	}
}

// Convert returns the numeral for value.
func (s *ConverterService) Convert(ctx context.Context, value int) (numeral.Numeral, error) {
	n, err := numeral.Convert(value)
	if err != nil {
		s.logger.WarnContext(ctx, "conversion rejected",
			slog.String("operation", "Convert"),
			slog.Int("value", value),
			slog.Any("error", err),
		)
		s.metrics.RecordConversion(ctx, resultFor(err))
		return numeral.Numeral{}, err
	}

	s.logger.DebugContext(ctx, "converted value",
		slog.Int("value", value),
		slog.String("numeral", n.String()),
	)
	s.metrics.RecordConversion(ctx, telemetry.ResultSuccess)
	return n, nil
}

// ConvertBatch converts every value independently over a bounded worker
// pool. Values repeated within one request are converted once.
func (s *ConverterService) ConvertBatch(ctx context.Context, values []int) (*ports.BatchResult, error) {
	if err := s.validateBatch(values); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "converting batch",
		slog.Int("count", len(values)),
		slog.Int("workers", min(s.workers, len(values))),
	)

	rc := appctx.FromContextOrNew(ctx)
	results := fanout.Run(ctx, s.workers, values, func(ctx context.Context, v int) (numeral.Numeral, error) {
		return appctx.GetOrFetch(rc, memoKey(v), func(context.Context) (numeral.Numeral, error) {
			return s.Convert(ctx, v)
		})
	})

	if err := ctx.Err(); err != nil {
		s.logger.WarnContext(ctx, "batch aborted",
			slog.String("operation", "ConvertBatch"),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("converting batch: %w", err)
	}

	out := &ports.BatchResult{
		Converted: make([]ports.Conversion, 0, len(values)),
	}
	for i, r := range results {
		if r.Err != nil {
			out.Errors = append(out.Errors, ports.ConversionError{Index: i, Value: values[i], Err: r.Err})
			continue
		}
		out.Converted = append(out.Converted, ports.Conversion{Index: i, Value: values[i], Numeral: r.Value})
	}

	if len(out.Errors) > 0 {
		s.logger.InfoContext(ctx, "batch completed with failures",
			slog.Int("succeeded", len(out.Converted)),
			slog.Int("failed", len(out.Errors)),
		)
	}
	return out, nil
}

// Name implements ports.HealthChecker.
func (s *ConverterService) Name() string {
	return "converter"
}

// HealthCheck converts a fixed set of values and compares them with their
// known numerals.
func (s *ConverterService) HealthCheck(ctx context.Context) error {
	for _, tc := range selfTest {
		if err := ctx.Err(); err != nil {
			return err
		}
		got, err := numeral.Convert(tc.value)
		if err != nil {
			return fmt.Errorf("converter self-test %d: %w", tc.value, err)
		}
		if got.String() != tc.want {
			return fmt.Errorf("converter self-test %d: got %q, want %q", tc.value, got, tc.want)
		}
	}
	return nil
}

func (s *ConverterService) validateBatch(values []int) error {
	switch {
	case len(values) == 0:
		return domain.Invalid("values", "must contain at least one value")
	case len(values) > s.maxItems:
		return domain.Invalid("values", fmt.Sprintf("must contain at most %d values, got %d", s.maxItems, len(values)))
	}
	return nil
}

func memoKey(v int) string {
	return "numeral:" + strconv.Itoa(v)
}

func resultFor(err error) string {
	if errors.Is(err, numeral.ErrOutOfRange) {
		return telemetry.ResultOutOfRange
	}
	return telemetry.ResultError
}
