// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"fmt"

	"github.com/jsamuelsen11/numeral-service/internal/domain/numeral"
	"github.com/jsamuelsen11/numeral-service/internal/ports"
)

// NumeralResponse represents a single converted value in HTTP responses.
type NumeralResponse struct {
	Value   int    `json:"value"`
	Numeral string `json:"numeral"`
	Length  int    `json:"length"`
}

// ToNumeralResponse converts a value and its numeral to an HTTP response DTO.
func ToNumeralResponse(value int, n numeral.Numeral) NumeralResponse {
	return NumeralResponse{
		Value:   value,
		Numeral: n.String(),
		Length:  n.Len(),
	}
}

// BatchResponse represents the result of a batch conversion. It includes
// both converted values and per-item errors.
type BatchResponse struct {
	Results   []BatchItem      `json:"results"`
	Errors    []BatchItemError `json:"errors"`
	Total     int              `json:"total"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
}

// BatchItem is one converted value within a batch, tagged with its position
// in the request.
type BatchItem struct {
	Index int `json:"index"`
	NumeralResponse
}

// BatchItemError represents a single failed value within a batch.
type BatchItemError struct {
	Index int `json:"index"`
	ErrorDetail
}

// ToBatchResponse converts a ports.BatchResult to an HTTP response DTO.
func ToBatchResponse(result *ports.BatchResult) BatchResponse {
	items := make([]BatchItem, len(result.Converted))
	for i, c := range result.Converted {
		items[i] = BatchItem{Index: c.Index, NumeralResponse: ToNumeralResponse(c.Value, c.Numeral)}
	}

	errs := make([]BatchItemError, len(result.Errors))
	for i, e := range result.Errors {
		errs[i] = BatchItemError{
			Index:       e.Index,
			ErrorDetail: NewErrorDetail(fmt.Sprintf("body.values[%d]", e.Index), e.Err),
		}
	}

	return BatchResponse{
		Results:   items,
		Errors:    errs,
		Total:     result.Total(),
		Succeeded: len(result.Converted),
		Failed:    len(result.Errors),
	}
}
