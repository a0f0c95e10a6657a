package grpcintrospect

import (
	"errors"

	introspectmiddleware "github.com/flexgate/go-introspection-middleware"
)

// Option configures the gRPC interceptor.
type Option func(*Interceptor) error

// Sentinel errors for configuration validation.
var (
	ErrIntrospectorNil   = errors.New("introspector cannot be nil")
	ErrTokenExtractorNil = errors.New("tokenExtractor cannot be nil")
	ErrErrorHandlerNil   = errors.New("errorHandler cannot be nil")
	ErrLoggerNil         = errors.New("logger cannot be nil")
)

// WithIntrospector sets the decision engine used to validate tokens
// (REQUIRED). Typically a *introspection.Introspector.
func WithIntrospector(i introspectmiddleware.TokenChecker) Option {
	return func(interceptor *Interceptor) error {
		if i == nil {
			return ErrIntrospectorNil
		}
		interceptor.introspector = i
		return nil
	}
}

// WithTokenExtractor sets the function to extract the token from the
// call metadata.
//
// Default: MetadataTokenExtractor
func WithTokenExtractor(e TokenExtractor) Option {
	return func(interceptor *Interceptor) error {
		if e == nil {
			return ErrTokenExtractorNil
		}
		interceptor.tokenExtractor = e
		return nil
	}
}

// WithErrorHandler sets the function converting introspection errors to
// gRPC status errors.
//
// Default: DefaultErrorHandler
func WithErrorHandler(h ErrorHandler) Option {
	return func(interceptor *Interceptor) error {
		if h == nil {
			return ErrErrorHandlerNil
		}
		interceptor.errorHandler = h
		return nil
	}
}

// WithExcludedMethods configures full method names (e.g.
// "/package.Service/Method") that skip token validation.
func WithExcludedMethods(methods []string) Option {
	return func(interceptor *Interceptor) error {
		for _, method := range methods {
			interceptor.excludedMethods[method] = true
		}
		return nil
	}
}

// WithLogger sets an optional logger for the interceptor.
func WithLogger(logger introspectmiddleware.Logger) Option {
	return func(interceptor *Interceptor) error {
		if logger == nil {
			return ErrLoggerNil
		}
		interceptor.logger = logger
		return nil
	}
}
