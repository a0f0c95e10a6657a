package introspectmiddleware

import (
	"errors"
	"net/http"

	"github.com/flexgate/go-introspection-middleware/introspection"
)

// ErrNoToken is returned when no bearer token could be extracted from
// the request.
var ErrNoToken = errors.New("no token provided")

// bearerChallenge is the WWW-Authenticate value carried by every 401
// this middleware produces.
const bearerChallenge = `Bearer realm="oauth2"`

// ErrorHandler is a handler which is called when a request is rejected.
// The err is either ErrNoToken or one of the introspection package's
// closed error set, so a custom handler can distinguish every failure
// mode. The default handler answers 401 with a Bearer challenge for
// token-level rejections and 500 for everything else; if you implement
// your own ErrorHandler you MUST cover both classes, as an unhandled
// error would leave the request without a response.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// DefaultErrorHandler is the default error handler implementation for
// the Middleware. If an error handler is not provided via the
// WithErrorHandler option this will be used.
//
// Token-level rejections (missing, inactive, expired, not yet active)
// get a 401 with `WWW-Authenticate: Bearer realm="oauth2"`. Failures
// talking to the introspection endpoint, along with anything
// unrecognized, get a 500. Neither response carries a body.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNoToken),
		errors.Is(err, introspection.ErrTokenInactive),
		errors.Is(err, introspection.ErrTokenExpired),
		errors.Is(err, introspection.ErrTokenNotYetActive):
		w.Header().Set("WWW-Authenticate", bearerChallenge)
		w.WriteHeader(http.StatusUnauthorized)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// Outcome labels used for metrics, tracing and log routing. One label
// per rejection reason plus one for allowed requests.
const (
	OutcomeAllowed         = "allowed"
	OutcomeNoToken         = "no_token"
	OutcomeInactiveToken   = "inactive_token"
	OutcomeExpiredToken    = "expired_token"
	OutcomeNotYetActive    = "not_yet_active"
	OutcomeClientError     = "client_error"
	OutcomeNonParsableBody = "non_parsable_body"
	OutcomeUnexpected      = "unexpected"
)

// OutcomeLabel classifies a check error into its outcome label. A nil
// error is an allowed request. Errors outside the known set classify
// as unexpected, which keeps them in the 500/warn class.
func OutcomeLabel(err error) string {
	if err == nil {
		return OutcomeAllowed
	}

	var clientErr *introspection.ClientError
	var parseErr *introspection.ParseError

	switch {
	case errors.Is(err, ErrNoToken):
		return OutcomeNoToken
	case errors.Is(err, introspection.ErrTokenInactive):
		return OutcomeInactiveToken
	case errors.Is(err, introspection.ErrTokenExpired):
		return OutcomeExpiredToken
	case errors.Is(err, introspection.ErrTokenNotYetActive):
		return OutcomeNotYetActive
	case errors.As(err, &clientErr):
		return OutcomeClientError
	case errors.As(err, &parseErr):
		return OutcomeNonParsableBody
	default:
		return OutcomeUnexpected
	}
}
