package middleware_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jsamuelsen11/numeral-service/internal/adapters/http/middleware"
	appctx "github.com/jsamuelsen11/numeral-service/internal/app/context"
)

func TestAppContext_FreshMemoPerRequest(t *testing.T) {
	t.Parallel()

	var seen []*appctx.RequestContext
	h := middleware.AppContext()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		rc := appctx.FromContext(r.Context())
		if _, err := appctx.GetOrFetch(rc, "numeral:4", func(context.Context) (string, error) {
			return "IV", nil
		}); err != nil {
			t.Errorf("GetOrFetch() error = %v", err)
		}
		seen = append(seen, rc)
	}))

	serve(h, http.MethodGet, "/")
	serve(h, http.MethodGet, "/")

	if len(seen) != 2 || seen[0] == nil || seen[0] == seen[1] {
		t.Fatalf("request contexts = %v, want two distinct memos", seen)
	}
	if seen[1].Len() != 1 {
		t.Errorf("second memo holds %d keys, want 1", seen[1].Len())
	}
}

func TestAppContext_MemoSeesRequestIDs(t *testing.T) {
	t.Parallel()

	var got string
	h := chain(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = middleware.RequestIDFromContext(appctx.FromContext(r.Context()))
	}), middleware.RequestID(), middleware.AppContext())

	serve(h, http.MethodGet, "/", "X-Request-ID", "memo-req")

	if got != "memo-req" {
		t.Errorf("request ID through RequestContext = %q, want %q", got, "memo-req")
	}
}
