package middleware

import (
	"net/http"

	appctx "github.com/jsamuelsen11/numeral-service/internal/app/context"
)

// AppContext returns middleware that gives each HTTP request its own
// conversion memo. The converter service finds it with appctx.FromContext,
// so repeated values within one batch request are converted once.
//
// Register after CorrelationID so the memo's embedded context carries the
// request and correlation IDs.
func AppContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rc := appctx.New(r.Context())
			ctx := appctx.WithRequestContext(r.Context(), rc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
