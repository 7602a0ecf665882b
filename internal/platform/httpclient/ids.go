package httpclient

import (
	"context"
	"net/http"
)

// Headers carrying request identity across services.
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
)

type idKey int

const (
	requestIDKey idKey = iota
	correlationIDKey
)

var idHeaders = map[idKey]string{
	requestIDKey:     HeaderRequestID,
	correlationIDKey: HeaderCorrelationID,
}

// WithRequestID marks ctx so Do sends id as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// WithCorrelationID marks ctx so Do sends id as X-Correlation-ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

func injectIDs(ctx context.Context, req *http.Request) {
	for key, header := range idHeaders {
		if id, _ := ctx.Value(key).(string); id != "" {
			req.Header.Set(header, id)
		}
	}
}
