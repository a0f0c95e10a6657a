package introspectmiddleware

import (
	"context"
	"errors"

	"github.com/flexgate/go-introspection-middleware/introspection"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey int

const (
	resultKey contextKey = iota
)

// ErrResultNotFound is returned when no introspection result is stored
// in the context.
var ErrResultNotFound = errors.New("introspection result not found in context")

// SetResult stores an introspection result in the context. This is a
// helper for adapters; the net/http middleware calls it on every
// allowed request.
func SetResult(ctx context.Context, result *introspection.Result) context.Context {
	return context.WithValue(ctx, resultKey, result)
}

// ResultFromContext retrieves the introspection result for the current
// request.
//
// Example:
//
//	result, err := introspectmiddleware.ResultFromContext(r.Context())
//	if err != nil {
//	    http.Error(w, "no introspection result", http.StatusInternalServerError)
//	    return
//	}
//	fmt.Println(result.Scope)
func ResultFromContext(ctx context.Context) (*introspection.Result, error) {
	result, ok := ctx.Value(resultKey).(*introspection.Result)
	if !ok || result == nil {
		return nil, ErrResultNotFound
	}
	return result, nil
}

// HasResult checks if an introspection result exists in the context
// without retrieving it.
func HasResult(ctx context.Context) bool {
	result, ok := ctx.Value(resultKey).(*introspection.Result)
	return ok && result != nil
}
