// Package handlers holds the HTTP handlers for the numeral API and the
// health probes.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/numeral-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/numeral-service/internal/domain"
	"github.com/jsamuelsen11/numeral-service/internal/platform/logging"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// pathInt reads an integer chi URL parameter. Errors are located at
// "path.<name>".
func pathInt(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, dto.AtLocation("path."+name, domain.Invalid(name, "must be an integer"))
	}
	return v, nil
}

func respond(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "failed to encode response", slog.Any("error", err))
	}
}

type validator interface {
	Validate() error
}

// readJSON decodes a bounded JSON body into dst and validates it. On
// failure it has already written the problem response and returns false.
func readJSON(w http.ResponseWriter, r *http.Request, dst validator) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err != nil {
		dto.WriteErrorResponse(w, r, bodyError(err))
		return false
	}
	if err := dst.Validate(); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return domain.Invalid("body", fmt.Sprintf("must not exceed %d bytes", tooLarge.Limit))
	}
	return domain.Invalid("body", "invalid JSON")
}
