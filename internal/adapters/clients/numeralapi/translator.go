package numeralapi

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/jsamuelsen11/numeral-service/internal/domain/numeral"
	"github.com/jsamuelsen11/numeral-service/internal/ports"
)

// toNumeral rebuilds a Numeral from a remote answer. Numerals can only be
// created by conversion, so the value is converted locally and the remote
// text must agree with it.
func toNumeral(dto numeralDTO) (numeral.Numeral, error) {
	n, err := numeral.Convert(dto.Value)
	if err != nil {
		return numeral.Numeral{}, fmt.Errorf("%w: %d is not convertible", ErrRemoteMismatch, dto.Value)
	}
	if n.String() != dto.Numeral {
		return numeral.Numeral{}, fmt.Errorf("%w: %d is %q, remote sent %q", ErrRemoteMismatch, dto.Value, n, dto.Numeral)
	}
	return n, nil
}

// toBatchResult maps a batch response onto the values that were sent. Every
// index must appear exactly once across results and errors.
func toBatchResult(values []int, dto batchResponseDTO) (*ports.BatchResult, error) {
	if got := len(dto.Results) + len(dto.Errors); got != len(values) {
		return nil, fmt.Errorf("%w: sent %d values, got %d outcomes", ErrRemoteMismatch, len(values), got)
	}

	seen := make([]bool, len(values))
	claim := func(index int) error {
		if seen[index] {
			return fmt.Errorf("%w: index %d answered more than once", ErrRemoteMismatch, index)
		}
		seen[index] = true
		return nil
	}

	out := &ports.BatchResult{
		Converted: make([]ports.Conversion, 0, len(dto.Results)),
		Errors:    make([]ports.ConversionError, 0, len(dto.Errors)),
	}

	for _, item := range dto.Results {
		if err := checkIndex(values, item.Index, item.Value); err != nil {
			return nil, err
		}
		if err := claim(item.Index); err != nil {
			return nil, err
		}
		n, err := toNumeral(item.numeralDTO)
		if err != nil {
			return nil, err
		}
		out.Converted = append(out.Converted, ports.Conversion{Index: item.Index, Value: item.Value, Numeral: n})
	}

	for _, item := range dto.Errors {
		if item.Index < 0 || item.Index >= len(values) {
			return nil, fmt.Errorf("%w: error index %d outside batch of %d", ErrRemoteMismatch, item.Index, len(values))
		}
		if err := claim(item.Index); err != nil {
			return nil, err
		}
		out.Errors = append(out.Errors, ports.ConversionError{
			Index: item.Index,
			Value: values[item.Index],
			Err:   detailError(item.errorDetail),
		})
	}

	slices.SortFunc(out.Converted, func(a, b ports.Conversion) int { return cmp.Compare(a.Index, b.Index) })
	slices.SortFunc(out.Errors, func(a, b ports.ConversionError) int { return cmp.Compare(a.Index, b.Index) })
	return out, nil
}

func checkIndex(values []int, index, value int) error {
	if index < 0 || index >= len(values) {
		return fmt.Errorf("%w: result index %d outside batch of %d", ErrRemoteMismatch, index, len(values))
	}
	if values[index] != value {
		return fmt.Errorf("%w: result %d is for %d, sent %d", ErrRemoteMismatch, index, value, values[index])
	}
	return nil
}
