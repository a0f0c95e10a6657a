// Package echointrospect provides an Echo adapter for the introspection
// middleware.
package echointrospect

import (
	"net/http"

	"github.com/labstack/echo/v4"

	introspectmiddleware "github.com/flexgate/go-introspection-middleware"
	"github.com/flexgate/go-introspection-middleware/introspection"
)

var DefaultResultKey = "introspection"

// echoMiddlewareConfig holds all configuration for the middleware.
type echoMiddlewareConfig struct {
	errorHandler   func(echo.Context, error)
	contextKey     string
	tokenExtractor introspectmiddleware.TokenExtractor
}

// New creates an Echo middleware that authorizes requests via token
// introspection.
func New(introspector introspectmiddleware.TokenChecker, opts ...Option) (echo.MiddlewareFunc, error) {
	config := &echoMiddlewareConfig{
		errorHandler: defaultErrorHandler,
		contextKey:   DefaultResultKey,
	}

	for _, opt := range opts {
		opt(config)
	}

	middlewareOpts := []introspectmiddleware.Option{
		introspectmiddleware.WithIntrospector(introspector),
		introspectmiddleware.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			// Adapt the standard error handler to the Echo context.
			e := echo.New()
			c := e.NewContext(r, w)
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

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			encounteredError := true
			var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
				encounteredError = false
				c.SetRequest(r)

				if result, err := introspectmiddleware.ResultFromContext(r.Context()); err == nil {
					c.Set(config.contextKey, result)
				}

				_ = next(c)
			}

			middleware.CheckToken(handler).ServeHTTP(c.Response(), c.Request())

			if encounteredError {
				return nil // Prevent further handlers from being called.
			}
			return nil
		}
	}, nil
}

// defaultErrorHandler preserves the middleware's standard outcome
// mapping in Echo terms.
func defaultErrorHandler(c echo.Context, err error) {
	switch introspectmiddleware.OutcomeLabel(err) {
	case introspectmiddleware.OutcomeNoToken,
		introspectmiddleware.OutcomeInactiveToken,
		introspectmiddleware.OutcomeExpiredToken,
		introspectmiddleware.OutcomeNotYetActive:
		c.Response().Header().Set("WWW-Authenticate", `Bearer realm="oauth2"`)
		_ = c.NoContent(http.StatusUnauthorized)
	default:
		_ = c.NoContent(http.StatusInternalServerError)
	}
}

// GetResult extracts the introspection result from the Echo context.
func GetResult(c echo.Context, contextKey string) (*introspection.Result, bool) {
	if contextKey == "" {
		contextKey = DefaultResultKey
	}
	value := c.Get(contextKey)
	if value == nil {
		return nil, false
	}

	result, ok := value.(*introspection.Result)
	return result, ok
}
