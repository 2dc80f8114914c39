package web

import (
	"context"
	"net/http"
)

type requestIDKey struct{}

const RequestIDHeader = "X-Request-Id"

func SetRequestID(r *http.Request, id string) *http.Request {
	return AddValueToContext(r, requestIDKey{}, id)
}

// RequestID returns the id assigned to the current request, or "" outside a request.
func RequestID(ctx context.Context) string {
	id, _ := GetValueFromContext[string](ctx, requestIDKey{})
	return id
}
