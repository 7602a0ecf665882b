package ports

import (
	"context"

	"github.com/jsamuelsen11/numeral-service/internal/domain/numeral"
)

// ConverterService defines the service port for Roman numeral conversion.
// Implemented by the application layer; called by inbound adapters (HTTP
// handlers, the MCP tool server and the CLI).
type ConverterService interface {
	// Convert returns the Roman numeral for value.
	// Returns a *numeral.OutOfRangeError (matching domain.ErrValidation) when
	// value is outside [numeral.MinValue, numeral.MaxValue].
	Convert(ctx context.Context, value int) (numeral.Numeral, error)

	// ConvertBatch converts every value independently and returns the results
	// in input order. Returns a hard error only for request-level failures
	// (empty or oversized batch). Per-value failures are collected in
	// BatchResult.Errors.
	ConvertBatch(ctx context.Context, values []int) (*BatchResult, error)
}

// Conversion pairs an input value with its numeral.
type Conversion struct {
	Index   int
	Value   int
	Numeral numeral.Numeral
}

// ConversionError records a single failed value within a batch.
type ConversionError struct {
	Index int
	Value int
	Err   error
}

// BatchResult holds the outcomes of a batch conversion. Converted and Errors
// are each ordered by Index.
type BatchResult struct {
	Converted []Conversion
	Errors    []ConversionError
}

// Total returns the number of values in the batch.
func (r *BatchResult) Total() int {
	return len(r.Converted) + len(r.Errors)
}
