package middleware

import (
	"bytes"
	"context"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/jsamuelsen11/numeral-service/internal/adapters/http/dto"
)

// Timeout bounds each request to d. The handler runs with a deadline on its
// context and writes into a buffer; if it has not returned by the deadline
// (or finished only after it passed) the client gets a 504 problem response
// and the buffer is dropped. A panic
// in the handler is re-raised on the serving goroutine so Recovery sees it.
//
// A non-positive d disables the middleware.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			dw := &deferredWriter{header: make(http.Header)}
			done := make(chan struct{})
			panicked := make(chan any, 1)

			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
						return
					}
					close(done)
				}()
				next.ServeHTTP(dw, r.WithContext(ctx))
			}()

			select {
			case p := <-panicked:
				panic(p)
			case <-done:
				if ctx.Err() == nil {
					dw.commit(w)
					return
				}
			case <-ctx.Done():
			}
			dw.abandon()
			dto.WriteStatusResponse(w, r, http.StatusGatewayTimeout)
		})
	}
}

// deferredWriter holds a response until the handler finishes in time.
// Writes after abandon fail with http.ErrHandlerTimeout.
type deferredWriter struct {
	mu        sync.Mutex
	header    http.Header
	body      bytes.Buffer
	status    int
	abandoned bool
}

func (dw *deferredWriter) Header() http.Header {
	return dw.header
}

func (dw *deferredWriter) WriteHeader(code int) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.status == 0 {
		dw.status = code
	}
}

func (dw *deferredWriter) Write(b []byte) (int, error) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.abandoned {
		return 0, http.ErrHandlerTimeout
	}
	if dw.status == 0 {
		dw.status = http.StatusOK
	}
	return dw.body.Write(b)
}

func (dw *deferredWriter) abandon() {
	dw.mu.Lock()
	dw.abandoned = true
	dw.mu.Unlock()
}

func (dw *deferredWriter) commit(w http.ResponseWriter) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	maps.Copy(w.Header(), dw.header)
	if dw.status != 0 {
		w.WriteHeader(dw.status)
	}
	_, _ = dw.body.WriteTo(w)
}
