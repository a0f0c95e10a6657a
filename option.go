package introspectmiddleware

import (
	"errors"
	"net/http"
)

// Option configures the Middleware.
// Returns error for validation failures.
type Option func(*Middleware) error

// Sentinel errors for configuration validation.
var (
	ErrIntrospectorRequired = errors.New("an introspector is required (use WithIntrospector)")
	ErrIntrospectorNil      = errors.New("introspector cannot be nil")
	ErrErrorHandlerNil      = errors.New("errorHandler cannot be nil")
	ErrTokenExtractorNil    = errors.New("tokenExtractor cannot be nil")
	ErrExclusionURLsEmpty   = errors.New("exclusion URLs list cannot be empty")
	ErrLoggerNil            = errors.New("logger cannot be nil")
	ErrMetricsNil           = errors.New("metrics cannot be nil")
	ErrTracerNil            = errors.New("tracer cannot be nil")
)

// WithIntrospector sets the decision engine used to validate tokens
// (REQUIRED). Typically a *introspection.Introspector.
//
// Example:
//
//	introspector, err := introspection.New(
//	    introspection.WithUpstreamURL(upstreamURL),
//	    introspection.WithPath("/oauth2/introspect"),
//	    introspection.WithAuthorization(credential),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	middleware, err := introspectmiddleware.New(
//	    introspectmiddleware.WithIntrospector(introspector),
//	)
func WithIntrospector(i TokenChecker) Option {
	return func(m *Middleware) error {
		if i == nil {
			return ErrIntrospectorNil
		}
		m.introspector = i
		return nil
	}
}

// WithErrorHandler sets the handler called when a request is rejected.
// See the ErrorHandler type for more information.
//
// Default: DefaultErrorHandler
func WithErrorHandler(h ErrorHandler) Option {
	return func(m *Middleware) error {
		if h == nil {
			return ErrErrorHandlerNil
		}
		m.errorHandler = h
		return nil
	}
}

// WithTokenExtractor sets the function to extract the token from the request.
//
// Default: AuthHeaderTokenExtractor
func WithTokenExtractor(e TokenExtractor) Option {
	return func(m *Middleware) error {
		if e == nil {
			return ErrTokenExtractorNil
		}
		m.tokenExtractor = e
		return nil
	}
}

// WithValidateOnOptions sets whether OPTIONS requests should have their
// token validated.
//
// Default: true (OPTIONS requests are validated)
func WithValidateOnOptions(value bool) Option {
	return func(m *Middleware) error {
		m.validateOnOptions = value
		return nil
	}
}

// WithExclusionURLs configures URL patterns to exclude from token
// validation. URLs can be full URLs or just paths.
func WithExclusionURLs(exclusions []string) Option {
	return func(m *Middleware) error {
		if len(exclusions) == 0 {
			return ErrExclusionURLsEmpty
		}
		m.exclusionHandler = func(r *http.Request) bool {
			requestFullURL := r.URL.String()
			requestPath := r.URL.Path

			for _, exclusion := range exclusions {
				if requestFullURL == exclusion || requestPath == exclusion {
					return true
				}
			}
			return false
		}
		return nil
	}
}

// WithLogger sets an optional logger for the middleware. Rejections are
// logged exactly once per request: at debug level for expected
// client-side rejections, at warn level for environmental failures.
func WithLogger(logger Logger) Option {
	return func(m *Middleware) error {
		if logger == nil {
			return ErrLoggerNil
		}
		m.logger = logger
		return nil
	}
}

// WithMetrics sets an optional metrics sink. The middleware records one
// counter increment per check, labelled by outcome, and a latency
// histogram.
//
// Default: NoopMetrics
func WithMetrics(metrics Metrics) Option {
	return func(m *Middleware) error {
		if metrics == nil {
			return ErrMetricsNil
		}
		m.metrics = metrics
		return nil
	}
}

// WithTracer sets an optional tracer. The middleware opens one span per
// check, tagged with the outcome.
//
// Default: NoopTracer
func WithTracer(tracer Tracer) Option {
	return func(m *Middleware) error {
		if tracer == nil {
			return ErrTracerNil
		}
		m.tracer = tracer
		return nil
	}
}
