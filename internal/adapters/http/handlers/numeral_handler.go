package handlers

import (
	"errors"
	"net/http"

	"github.com/jsamuelsen11/numeral-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/numeral-service/internal/domain/numeral"
	"github.com/jsamuelsen11/numeral-service/internal/ports"
)

// NumeralHandler serves the conversion endpoints.
type NumeralHandler struct {
	converter ports.ConverterService
}

// NewNumeralHandler returns a NumeralHandler backed by converter.
func NewNumeralHandler(converter ports.ConverterService) *NumeralHandler {
	return &NumeralHandler{converter: converter}
}

// Convert handles GET /api/v1/numerals/{value}.
func (h *NumeralHandler) Convert(w http.ResponseWriter, r *http.Request) {
	value, err := pathInt(r, "value")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	n, err := h.converter.Convert(r.Context(), value)
	if err != nil {
		if errors.Is(err, numeral.ErrOutOfRange) {
			err = dto.AtLocation("path.value", err)
		}
		dto.WriteErrorResponse(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, dto.ToNumeralResponse(value, n))
}

// ConvertBatch handles POST /api/v1/numerals/batch. Per-value failures are
// reported in the 200 response body; only request-level failures produce an
// error status.
func (h *NumeralHandler) ConvertBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.BatchConvertRequest
	if !readJSON(w, r, &req) {
		return
	}

	result, err := h.converter.ConvertBatch(r.Context(), req.Values)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, dto.ToBatchResponse(result))
}
