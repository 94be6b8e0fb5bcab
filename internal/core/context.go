// AngelaMos | 2026
// context.go

package core

import (
	"context"
)

type ctxKey string

const (
	requestIDKey   ctxKey = "request_id"
	requestBodyKey ctxKey = "request_body"
)

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

func WithRequestBody(ctx context.Context, body []byte) context.Context {
	return context.WithValue(ctx, requestBodyKey, body)
}

func RequestBodyFromContext(ctx context.Context) []byte {
	if body, ok := ctx.Value(requestBodyKey).([]byte); ok {
		return body
	}
	return nil
}
