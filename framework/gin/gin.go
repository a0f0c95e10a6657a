// Package ginintrospect provides a Gin adapter for the introspection
// middleware.
package ginintrospect

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	introspectmiddleware "github.com/flexgate/go-introspection-middleware"
	"github.com/flexgate/go-introspection-middleware/introspection"
)

const DefaultResultKey = "introspection"

var (
	ErrMissingResult = errors.New("no introspection result found in context")
	ErrInvalidResult = errors.New("invalid introspection result type")
)

type middlewareConfig struct {
	errorHandler   func(*gin.Context, error)
	contextKey     string
	tokenExtractor introspectmiddleware.TokenExtractor
}

// New creates a Gin middleware that authorizes requests via token
// introspection. The introspector is typically a
// *introspection.Introspector; it must be safe for concurrent use.
func New(introspector introspectmiddleware.TokenChecker, opts ...Option) (gin.HandlerFunc, error) {
	config := &middlewareConfig{
		errorHandler: defaultErrorHandler,
		contextKey:   DefaultResultKey,
	}

	for _, opt := range opts {
		opt(config)
	}

	middlewareOpts := []introspectmiddleware.Option{
		introspectmiddleware.WithIntrospector(introspector),
		introspectmiddleware.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			c, exists := r.Context().Value(gin.ContextKey).(*gin.Context)
			if !exists || c == nil {
				introspectmiddleware.DefaultErrorHandler(w, r, err)
				return
			}
			config.errorHandler(c, err)
		}),
	}

	if config.tokenExtractor != nil {
		middlewareOpts = append(middlewareOpts, introspectmiddleware.WithTokenExtractor(config.tokenExtractor))
	}

	middleware, err := introspectmiddleware.New(middlewareOpts...)
	if err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		encounteredError := true
		var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			encounteredError = false
			c.Request = r

			if result, err := introspectmiddleware.ResultFromContext(r.Context()); err == nil {
				c.Set(config.contextKey, result)
			}

			c.Next()
		}

		middleware.CheckToken(handler).ServeHTTP(c.Writer, c.Request)

		if encounteredError {
			c.Abort()
		}
	}, nil
}

// defaultErrorHandler preserves the middleware's standard outcome
// mapping in Gin terms: 401 with the Bearer challenge for token-level
// rejections, 500 otherwise, no body in either case.
func defaultErrorHandler(c *gin.Context, err error) {
	switch introspectmiddleware.OutcomeLabel(err) {
	case introspectmiddleware.OutcomeNoToken,
		introspectmiddleware.OutcomeInactiveToken,
		introspectmiddleware.OutcomeExpiredToken,
		introspectmiddleware.OutcomeNotYetActive:
		c.Header("WWW-Authenticate", `Bearer realm="oauth2"`)
		c.AbortWithStatus(http.StatusUnauthorized)
	default:
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

// GetResult extracts the introspection result from the Gin context.
func GetResult(c *gin.Context, contextKey string) (*introspection.Result, error) {
	if contextKey == "" {
		contextKey = DefaultResultKey
	}
	value, exists := c.Get(contextKey)
	if !exists {
		return nil, ErrMissingResult
	}

	result, ok := value.(*introspection.Result)
	if !ok {
		return nil, ErrInvalidResult
	}

	return result, nil
}
