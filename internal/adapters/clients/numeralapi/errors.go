package numeralapi

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/numeral-service/internal/domain"
	"github.com/jsamuelsen11/numeral-service/internal/domain/numeral"
)

const (
	problemMediaType = "application/problem+json"
	codeOutOfRange   = "out_of_range"

	// problemBodyLimit caps how much of an error body is decoded.
	problemBodyLimit = 1 << 20
)

// ErrRemoteMismatch is returned when the remote service answers with a
// numeral that differs from the canonical one for the same value.
var ErrRemoteMismatch = errors.New("remote numeral does not match local conversion")

// TranslateHTTPError turns a non-success response into a domain error,
// reading an RFC 9457 body when the response carries one.
//
// A 400 or 422 whose details include an out_of_range entry with a value
// becomes a *numeral.OutOfRangeError; other details become a
// *domain.ValidationError. 429 and 5xx wrap domain.ErrUnavailable.
func TranslateHTTPError(resp *http.Response) error {
	pd := readProblem(resp)
	msg := cmp.Or(pd.Detail, http.StatusText(resp.StatusCode))

	sentinel := sentinelFor(resp.StatusCode)
	if sentinel == nil {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, msg)
	}
	if sentinel == domain.ErrValidation && len(pd.Errors) > 0 {
		return fromDetails(pd.Errors)
	}
	return fmt.Errorf("%s: %w", msg, sentinel)
}

func sentinelFor(status int) error {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrValidation
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusTooManyRequests:
		return domain.ErrUnavailable
	}
	if status >= http.StatusInternalServerError {
		return domain.ErrUnavailable
	}
	return nil
}

// fromDetails returns the first out-of-range detail as an
// *numeral.OutOfRangeError, or all details as one *domain.ValidationError.
func fromDetails(details []errorDetail) error {
	fields := make(map[string]string, len(details))
	for _, d := range details {
		var oor *numeral.OutOfRangeError
		if err := detailError(d); errors.As(err, &oor) {
			return oor
		}
		fields[fieldName(d.Location)] = d.Message
	}
	return &domain.ValidationError{Fields: fields}
}

// detailError rebuilds the error described by a single error detail.
func detailError(d errorDetail) error {
	if d.Code == codeOutOfRange && d.Value != nil {
		return &numeral.OutOfRangeError{Value: *d.Value}
	}
	return domain.Invalid(fieldName(d.Location), cmp.Or(d.Message, "conversion failed"))
}

// readProblem decodes a problem document from resp. Any other media type,
// or a body that does not decode, yields the zero value.
func readProblem(resp *http.Response) problemDetail {
	var pd problemDetail
	if resp.Body == nil {
		return pd
	}
	mt, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || mt != problemMediaType {
		return pd
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, problemBodyLimit)).Decode(&pd); err != nil {
		return problemDetail{}
	}
	return pd
}

// fieldName strips the "body." or "path." prefix from a location.
func fieldName(location string) string {
	for _, prefix := range []string{"body.", "path."} {
		if rest, ok := strings.CutPrefix(location, prefix); ok {
			return rest
		}
	}
	return cmp.Or(location, "value")
}
