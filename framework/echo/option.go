package echointrospect

import (
	"github.com/labstack/echo/v4"

	introspectmiddleware "github.com/flexgate/go-introspection-middleware"
)

// Option configures the Echo middleware.
type Option func(*echoMiddlewareConfig)

// WithErrorHandler sets a custom error handler invoked with the Echo
// context when a request is rejected.
func WithErrorHandler(handler func(echo.Context, error)) Option {
	return func(c *echoMiddlewareConfig) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithContextKey sets the Echo context key under which the
// introspection result is stored.
//
// Default: DefaultResultKey
func WithContextKey(key string) Option {
	return func(c *echoMiddlewareConfig) {
		if key != "" {
			c.contextKey = key
		}
	}
}

// WithTokenExtractor sets a custom token extractor.
//
// Default: introspectmiddleware.AuthHeaderTokenExtractor
func WithTokenExtractor(extractor introspectmiddleware.TokenExtractor) Option {
	return func(c *echoMiddlewareConfig) {
		if extractor != nil {
			c.tokenExtractor = extractor
		}
	}
}
