// Package requestid threads the correlation ID of a verdict request from the
// access log through the service's prediction log.
package requestid

import "context"

// Header carries the ID in both directions so the extension can match its
// request to the service's log lines.
const Header = "X-Request-ID"

// maxLen bounds a client-supplied ID.
const maxLen = 128

type ctxKey struct{}

// NewContext returns a context that carries the given request ID.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the request ID stored in ctx, or an empty string.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Valid reports whether a client-supplied id may be logged as is: non-empty,
// at most 128 bytes, printable ASCII without spaces.
func Valid(id string) bool {
	if id == "" || len(id) > maxLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}
