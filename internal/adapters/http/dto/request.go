package dto

import "github.com/jsamuelsen11/numeral-service/internal/domain"

// BatchConvertRequest is the body of POST /api/v1/numerals/batch.
type BatchConvertRequest struct {
	Values []int `json:"values"`
}

// Validate only requires a non-empty list. Per-value range and batch size
// are the converter's concern.
func (r *BatchConvertRequest) Validate() error {
	if len(r.Values) == 0 {
		return domain.Invalid("values", "is required")
	}
	return nil
}
