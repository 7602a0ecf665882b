package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jsamuelsen11/numeral-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/numeral-service/internal/adapters/http/middleware"
)

func serveWithTimeout(d time.Duration, h http.HandlerFunc) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	middleware.Timeout(d)(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/numerals/batch", http.NoBody))
	return rec
}

func TestTimeout_CommitsResponseFinishedInTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantBody   string
	}{
		{
			name: "explicit status and header",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("X-Numeral", "MCMXCIV")
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte("MCMXCIV"))
			},
			wantStatus: http.StatusCreated,
			wantBody:   "MCMXCIV",
		},
		{
			name: "implicit 200",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("IV"))
			},
			wantStatus: http.StatusOK,
			wantBody:   "IV",
		},
		{
			name:       "no writes",
			handler:    func(http.ResponseWriter, *http.Request) {},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := serveWithTimeout(time.Second, tt.handler)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}

	rec := serveWithTimeout(time.Second, tests[0].handler)
	if got := rec.Header().Get("X-Numeral"); got != "MCMXCIV" {
		t.Errorf("X-Numeral = %q, want %q", got, "MCMXCIV")
	}
}

func TestTimeout_HandlerSeesDeadline(t *testing.T) {
	t.Parallel()

	var ok bool
	serveWithTimeout(time.Second, func(_ http.ResponseWriter, r *http.Request) {
		_, ok = r.Context().Deadline()
	})
	if !ok {
		t.Error("handler context has no deadline")
	}
}

func TestTimeout_RespondsWithProblemAfterDeadline(t *testing.T) {
	t.Parallel()

	lateWrite := make(chan error, 1)
	rec := serveWithTimeout(20*time.Millisecond, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		time.Sleep(20 * time.Millisecond)
		_, err := w.Write([]byte("MMM"))
		lateWrite <- err
	})

	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusGatewayTimeout)
	}
	if ct := rec.Header().Get("Content-Type"); ct != dto.ProblemContentType {
		t.Errorf("Content-Type = %q, want %q", ct, dto.ProblemContentType)
	}
	if err := <-lateWrite; !errors.Is(err, http.ErrHandlerTimeout) {
		t.Errorf("late Write() error = %v, want http.ErrHandlerTimeout", err)
	}
}

func TestTimeout_HandlerReturningAtDeadlineTimesOut(t *testing.T) {
	t.Parallel()

	rec := serveWithTimeout(20*time.Millisecond, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		w.WriteHeader(http.StatusOK)
	})

	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusGatewayTimeout)
	}
}

func TestTimeout_RepanicsOnServingGoroutine(t *testing.T) {
	t.Parallel()

	defer func() {
		if got := recover(); got != "bad numeral" {
			t.Errorf("recover() = %v, want %q", got, "bad numeral")
		}
	}()
	serveWithTimeout(time.Second, func(http.ResponseWriter, *http.Request) {
		panic("bad numeral")
	})
	t.Error("Timeout did not re-panic")
}

func TestTimeout_NonPositiveDisables(t *testing.T) {
	t.Parallel()

	for _, d := range []time.Duration{0, -time.Second} {
		var ok bool
		rec := serveWithTimeout(d, func(w http.ResponseWriter, r *http.Request) {
			_, ok = r.Context().Deadline()
			w.WriteHeader(http.StatusNoContent)
		})
		if ok {
			t.Errorf("Timeout(%v): handler context has a deadline", d)
		}
		if rec.Code != http.StatusNoContent {
			t.Errorf("Timeout(%v): status = %d, want %d", d, rec.Code, http.StatusNoContent)
		}
	}
}
