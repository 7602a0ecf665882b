package ports

import (
	"context"

	"github.com/jsamuelsen11/numeral-service/internal/domain/numeral"
)

// NumeralClient defines the client port for a remote numeral service.
// Implemented by the numeralapi adapter; used by the CLI in remote mode.
// It mirrors ConverterService so callers can switch between local and remote
// conversion without changing how they handle results.
type NumeralClient interface {
	// Convert asks the remote service for the numeral of value.
	// Returns a *numeral.OutOfRangeError when the remote rejects the value as
	// out of range, or domain.ErrUnavailable when the remote is failing.
	Convert(ctx context.Context, value int) (numeral.Numeral, error)

	// ConvertBatch sends all values in one request. Per-value failures reported
	// by the remote are returned in BatchResult.Errors.
	ConvertBatch(ctx context.Context, values []int) (*BatchResult, error)
}
