package dto

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/jsamuelsen11/numeral-service/internal/domain"
	"github.com/jsamuelsen11/numeral-service/internal/domain/numeral"
)

// ProblemContentType is the media type of every error body (RFC 9457).
const ProblemContentType = "application/problem+json"

// CodeOutOfRange tags an ErrorDetail for a value outside the convertible
// range. Clients use it to rebuild *numeral.OutOfRangeError.
const CodeOutOfRange = "out_of_range"

// ErrorResponse is an RFC 9457 problem document.
type ErrorResponse struct {
	Type     string        `json:"type"`
	Title    string        `json:"title"`
	Status   int           `json:"status"`
	Detail   string        `json:"detail,omitempty"`
	Instance string        `json:"instance,omitempty"`
	Errors   []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail points at one rejected part of a request.
type ErrorDetail struct {
	Location string `json:"location"`
	Message  string `json:"message"`
	Code     string `json:"code,omitempty"`
	Value    any    `json:"value,omitempty"`
}

// LocatedError ties an error to the part of the request that caused it,
// such as "path.value" or "body.values[2]".
type LocatedError struct {
	Location string
	Err      error
}

func (e *LocatedError) Error() string { return e.Err.Error() }

func (e *LocatedError) Unwrap() error { return e.Err }

// AtLocation wraps err with a request location.
func AtLocation(location string, err error) error {
	return &LocatedError{Location: location, Err: err}
}

func problem(r *http.Request, status int) ErrorResponse {
	return ErrorResponse{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Instance: r.RequestURI,
	}
}

// NewErrorResponse builds the problem document for err. Validation failures
// carry one ErrorDetail per field, sorted by location.
func NewErrorResponse(r *http.Request, err error) ErrorResponse {
	resp := problem(r, StatusFor(err))
	resp.Detail = err.Error()

	var (
		located *LocatedError
		verr    *domain.ValidationError
	)
	switch {
	case errors.As(err, &located):
		resp.Errors = []ErrorDetail{NewErrorDetail(located.Location, located.Err)}
	case errors.As(err, &verr):
		resp.Errors = fieldDetails(verr.Fields)
	}
	return resp
}

// NewErrorDetail describes err at location. An out-of-range error carries
// CodeOutOfRange and the rejected value; a single-field validation error
// contributes just its message.
func NewErrorDetail(location string, err error) ErrorDetail {
	var oor *numeral.OutOfRangeError
	if errors.As(err, &oor) {
		return ErrorDetail{
			Location: location,
			Message:  fmt.Sprintf("must be between %d and %d", numeral.MinValue, numeral.MaxValue),
			Code:     CodeOutOfRange,
			Value:    oor.Value,
		}
	}

	d := ErrorDetail{Location: location, Message: err.Error()}
	var verr *domain.ValidationError
	if errors.As(err, &verr) && len(verr.Fields) == 1 {
		for _, msg := range verr.Fields {
			d.Message = msg
		}
	}
	return d
}

// WriteErrorResponse writes the problem document for err.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	writeProblem(w, r, NewErrorResponse(r, err))
}

// WriteStatusResponse writes a bare problem document for status, for
// failures with no domain error behind them such as an unknown route.
func WriteStatusResponse(w http.ResponseWriter, r *http.Request, status int) {
	writeProblem(w, r, problem(r, status))
}

func writeProblem(w http.ResponseWriter, r *http.Request, resp ErrorResponse) {
	w.Header().Set("Content-Type", ProblemContentType)
	w.WriteHeader(resp.Status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode error response", slog.Any("error", err))
	}
}

// StatusFor maps domain sentinels to HTTP status codes. Anything
// unrecognized is a 500.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func fieldDetails(fields map[string]string) []ErrorDetail {
	details := make([]ErrorDetail, 0, len(fields))
	for field, msg := range fields {
		details = append(details, ErrorDetail{Location: "body." + field, Message: msg})
	}
	slices.SortFunc(details, func(a, b ErrorDetail) int {
		return cmp.Compare(a.Location, b.Location)
	})
	return details
}
