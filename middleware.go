package introspectmiddleware

import (
	"context"
	"net/http"
	"time"

	"github.com/flexgate/go-introspection-middleware/introspection"
)

// Middleware gates inbound HTTP requests on OAuth2 token introspection.
// For every request it extracts a bearer token, asks the configured
// introspector for a verdict, and either hands the request to the next
// handler or emits an early 401/500 response via the ErrorHandler.
type Middleware struct {
	introspector      TokenChecker
	errorHandler      ErrorHandler
	tokenExtractor    TokenExtractor
	validateOnOptions bool
	exclusionHandler  ExclusionURLHandler
	logger            Logger
	metrics           Metrics
	tracer            Tracer
}

// TokenChecker is the decision engine the middleware consults once per
// request. It is satisfied by *introspection.Introspector and kept as
// an interface so the middleware can be tested without a network.
type TokenChecker interface {
	CheckToken(ctx context.Context, token string) (*introspection.Result, error)
}

// ExclusionURLHandler is a function that takes in a http.Request and
// returns true if the request should skip token validation entirely.
type ExclusionURLHandler func(r *http.Request) bool

// New constructs a new Middleware instance with the supplied options.
// All parameters are passed via options (pure options pattern).
//
// Example:
//
//	middleware, err := introspectmiddleware.New(
//	    introspectmiddleware.WithIntrospector(introspector),
//	)
//	if err != nil {
//	    log.Fatalf("failed to create middleware: %v", err)
//	}
func New(opts ...Option) (*Middleware, error) {
	m := &Middleware{
		// Validate OPTIONS requests by default.
		validateOnOptions: true,
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	if m.introspector == nil {
		return nil, ErrIntrospectorRequired
	}

	m.applyDefaults()

	return m, nil
}

// applyDefaults sets default values for optional fields not set by options.
func (m *Middleware) applyDefaults() {
	if m.errorHandler == nil {
		m.errorHandler = DefaultErrorHandler
	}
	if m.tokenExtractor == nil {
		m.tokenExtractor = AuthHeaderTokenExtractor
	}
	if m.metrics == nil {
		m.metrics = &NoopMetrics{}
	}
	if m.tracer == nil {
		m.tracer = &NoopTracer{}
	}
}

// CheckToken is the main Middleware function which performs the main
// logic. It is passed a http.Handler which will be called if the token
// passes introspection.
func (m *Middleware) CheckToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// If there's an exclusion handler and the URL matches, skip validation.
		if m.exclusionHandler != nil && m.exclusionHandler(r) {
			if m.logger != nil {
				m.logger.Debugf("skipping token validation for excluded URL %s", r.URL.Path)
			}
			next.ServeHTTP(w, r)
			return
		}

		// If we don't validate on OPTIONS and this is OPTIONS
		// then continue onto next without validating.
		if !m.validateOnOptions && r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		span := m.tracer.StartSpan("oauth2.introspection.check")
		defer span.Finish()
		start := time.Now()

		result, err := m.check(r)

		m.metrics.ObserveHistogram(
			"oauth2_introspection_check_duration_seconds",
			time.Since(start).Seconds(),
			nil,
		)
		m.metrics.IncCounter(
			"oauth2_introspection_checks_total",
			map[string]string{"outcome": OutcomeLabel(err)},
		)
		span.SetTag("outcome", OutcomeLabel(err))

		if err != nil {
			m.logRejection(err)
			m.errorHandler(w, r, err)
			return
		}

		// Verdict obtained and token valid: expose the introspection
		// result to downstream handlers and continue.
		r = r.Clone(SetResult(r.Context(), result))
		next.ServeHTTP(w, r)
	})
}

// check runs the per-request decision sequence: token extraction, then
// the introspector's verdict. Extraction failures of any kind mean the
// request carries no usable token, so they surface as ErrNoToken and
// never as a server error.
func (m *Middleware) check(r *http.Request) (*introspection.Result, error) {
	token, err := m.tokenExtractor(r)
	if err != nil {
		// Logged once by logRejection, like every other rejection.
		return nil, ErrNoToken
	}
	if token == "" {
		return nil, ErrNoToken
	}

	return m.introspector.CheckToken(r.Context(), token)
}

// logRejection writes the single log line for a rejected request:
// debug for expected client-side rejections, warn for environmental
// failures.
func (m *Middleware) logRejection(err error) {
	if m.logger == nil {
		return
	}

	switch OutcomeLabel(err) {
	case OutcomeNoToken:
		m.logger.Debugf("no authorization token was provided")
	case OutcomeInactiveToken:
		m.logger.Debugf("token is marked as inactive by the introspection endpoint")
	case OutcomeExpiredToken:
		m.logger.Debugf("expiration time on the token has been exceeded")
	case OutcomeNotYetActive:
		m.logger.Debugf("token is not yet valid, since the time set in the nbf claim has not been reached")
	case OutcomeClientError:
		m.logger.Warnf("error sending the request to the introspection endpoint: %s", err)
	case OutcomeNonParsableBody:
		m.logger.Warnf("error parsing the response from the introspection endpoint: %s", err)
	default:
		m.logger.Warnf("unexpected error occurred while processing the request: %s", err)
	}
}
