package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRecorder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		do         func(w http.ResponseWriter)
		wantStatus int
		wantBytes  int64
		started    bool
	}{
		{
			name:       "nothing written",
			do:         func(http.ResponseWriter) {},
			wantStatus: http.StatusOK,
		},
		{
			name:       "first WriteHeader wins",
			do:         func(w http.ResponseWriter) { w.WriteHeader(http.StatusCreated); w.WriteHeader(http.StatusTeapot) },
			wantStatus: http.StatusCreated,
			started:    true,
		},
		{
			name: "bytes accumulate across writes",
			do: func(w http.ResponseWriter) {
				_, _ = w.Write([]byte("MCM"))
				_, _ = w.Write([]byte("XCIV"))
			},
			wantStatus: http.StatusOK,
			wantBytes:  7,
			started:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := record(httptest.NewRecorder())
			tt.do(rec)

			if rec.status != tt.wantStatus || rec.bytes != tt.wantBytes || rec.started != tt.started {
				t.Errorf("recorder = {%d %d %v}, want {%d %d %v}",
					rec.status, rec.bytes, rec.started, tt.wantStatus, tt.wantBytes, tt.started)
			}
		})
	}
}

func TestRecord_ReusesExistingRecorder(t *testing.T) {
	t.Parallel()

	outer := record(httptest.NewRecorder())
	if inner := record(outer); inner != outer {
		t.Error("record(recorder) wrapped again, want the same recorder")
	}
}

func TestRecorder_Unwrap(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	if got := record(w).Unwrap(); got != w {
		t.Errorf("Unwrap() = %v, want the wrapped writer", got)
	}
}
