package ginintrospect

import (
	"github.com/gin-gonic/gin"

	introspectmiddleware "github.com/flexgate/go-introspection-middleware"
)

// Option configures the Gin middleware.
type Option func(*middlewareConfig)

// WithErrorHandler sets a custom error handler invoked with the Gin
// context when a request is rejected.
func WithErrorHandler(handler func(*gin.Context, error)) Option {
	return func(c *middlewareConfig) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithContextKey sets the Gin context key under which the introspection
// result is stored.
//
// Default: DefaultResultKey
func WithContextKey(key string) Option {
	return func(c *middlewareConfig) {
		if key != "" {
			c.contextKey = key
		}
	}
}

// WithTokenExtractor sets a custom token extractor.
//
// Default: introspectmiddleware.AuthHeaderTokenExtractor
func WithTokenExtractor(extractor introspectmiddleware.TokenExtractor) Option {
	return func(c *middlewareConfig) {
		if extractor != nil {
			c.tokenExtractor = extractor
		}
	}
}
