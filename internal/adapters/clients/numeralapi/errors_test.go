package numeralapi

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/jsamuelsen11/numeral-service/internal/domain"
	"github.com/jsamuelsen11/numeral-service/internal/domain/numeral"
)

func newResponse(status int, contentType, body string) *http.Response {
	resp := &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
	if contentType != "" {
		resp.Header.Set("Content-Type", contentType)
	}
	return resp
}

func TestTranslateHTTPError_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		wantErr    error
	}{
		{"400 maps to ErrValidation", http.StatusBadRequest, domain.ErrValidation},
		{"422 maps to ErrValidation", http.StatusUnprocessableEntity, domain.ErrValidation},
		{"404 maps to ErrNotFound", http.StatusNotFound, domain.ErrNotFound},
		{"401 maps to ErrForbidden", http.StatusUnauthorized, domain.ErrForbidden},
		{"403 maps to ErrForbidden", http.StatusForbidden, domain.ErrForbidden},
		{"429 maps to ErrUnavailable", http.StatusTooManyRequests, domain.ErrUnavailable},
		{"500 maps to ErrUnavailable", http.StatusInternalServerError, domain.ErrUnavailable},
		{"503 maps to ErrUnavailable", http.StatusServiceUnavailable, domain.ErrUnavailable},
		{"504 maps to ErrUnavailable", http.StatusGatewayTimeout, domain.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := TranslateHTTPError(newResponse(tt.statusCode, "", ""))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("TranslateHTTPError(%d) = %v, want %v", tt.statusCode, err, tt.wantErr)
			}
		})
	}
}

func TestTranslateHTTPError_UsesProblemDetail(t *testing.T) {
	t.Parallel()

	err := TranslateHTTPError(newResponse(http.StatusServiceUnavailable, "application/problem+json",
		`{"title":"Service Unavailable","status":503,"detail":"converter warming up"}`))
	if !strings.Contains(err.Error(), "converter warming up") {
		t.Errorf("error = %q, want it to contain the detail", err)
	}
}

func TestTranslateHTTPError_IgnoresNonProblemBody(t *testing.T) {
	t.Parallel()

	err := TranslateHTTPError(newResponse(http.StatusInternalServerError, "text/plain", "stack trace here"))
	if strings.Contains(err.Error(), "stack trace") {
		t.Errorf("error = %q, should not include a non-problem body", err)
	}
	if !strings.Contains(err.Error(), "Internal Server Error") {
		t.Errorf("error = %q, want the status text", err)
	}
}

func TestTranslateHTTPError_OutOfRange(t *testing.T) {
	t.Parallel()

	err := TranslateHTTPError(newResponse(http.StatusBadRequest, "application/problem+json",
		`{"status":400,"errors":[{"location":"path.value","message":"must be between 1 and 3999","code":"out_of_range","value":0}]}`))

	var oor *numeral.OutOfRangeError
	if !errors.As(err, &oor) {
		t.Fatalf("error = %v, want *OutOfRangeError", err)
	}
	if oor.Value != 0 {
		t.Errorf("Value = %d, want 0", oor.Value)
	}
}

func TestTranslateHTTPError_OutOfRangeWithoutValue(t *testing.T) {
	t.Parallel()

	err := TranslateHTTPError(newResponse(http.StatusBadRequest, "application/problem+json",
		`{"errors":[{"location":"path.value","message":"must be between 1 and 3999","code":"out_of_range"}]}`))

	if errors.Is(err, numeral.ErrOutOfRange) {
		t.Errorf("error = %v, should not claim out of range without a value", err)
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestTranslateHTTPError_ValidationFields(t *testing.T) {
	t.Parallel()

	err := TranslateHTTPError(newResponse(http.StatusBadRequest, "application/problem+json",
		`{"errors":[{"location":"path.value","message":"must be an integer"},{"location":"body.values","message":"is required"}]}`))

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if verr.Fields["value"] != "must be an integer" {
		t.Errorf(`Fields["value"] = %q, want %q`, verr.Fields["value"], "must be an integer")
	}
	if verr.Fields["values"] != "is required" {
		t.Errorf(`Fields["values"] = %q, want %q`, verr.Fields["values"], "is required")
	}
}

func TestTranslateHTTPError_UnexpectedStatus(t *testing.T) {
	t.Parallel()

	err := TranslateHTTPError(newResponse(http.StatusTeapot, "", ""))
	for _, sentinel := range []error{domain.ErrValidation, domain.ErrNotFound, domain.ErrUnavailable} {
		if errors.Is(err, sentinel) {
			t.Errorf("error = %v, should not match %v", err, sentinel)
		}
	}
	if !strings.Contains(err.Error(), "418") {
		t.Errorf("error = %q, want it to mention the status", err)
	}
}

func TestTranslateHTTPError_NilBody(t *testing.T) {
	t.Parallel()

	resp := &http.Response{StatusCode: http.StatusBadGateway, Header: http.Header{}}
	if err := TranslateHTTPError(resp); !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("TranslateHTTPError() = %v, want ErrUnavailable", err)
	}
}

func TestFieldName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"path.value":     "value",
		"body.values":    "values",
		"body.values[3]": "values[3]",
		"query.q":        "query.q",
		"":               "value",
	}
	for in, want := range tests {
		if got := fieldName(in); got != want {
			t.Errorf("fieldName(%q) = %q, want %q", in, got, want)
		}
	}
}
