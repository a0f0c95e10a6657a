package introspection

import (
	"errors"
	"net/http"
	"net/url"
	"time"
)

// Option configures the Introspector.
// Returns error for validation failures.
type Option func(*Introspector) error

// Sentinel errors for configuration validation.
var (
	ErrEndpointRequired      = errors.New("an introspection endpoint is required (use WithUpstreamURL or WithIssuerURL)")
	ErrEndpointAmbiguous     = errors.New("WithUpstreamURL and WithIssuerURL are mutually exclusive")
	ErrAuthorizationRequired = errors.New("an authorization value is required (use WithAuthorization)")
	ErrUpstreamURLNil        = errors.New("upstream URL cannot be nil")
	ErrIssuerURLNil          = errors.New("issuer URL cannot be nil")
	ErrClientNil             = errors.New("http client cannot be nil")
	ErrClockNil              = errors.New("clock function cannot be nil")
)

// WithUpstreamURL sets the base URL of the introspection server. The
// endpoint path (WithPath) is joined onto it.
func WithUpstreamURL(u *url.URL) Option {
	return func(i *Introspector) error {
		if u == nil {
			return ErrUpstreamURLNil
		}
		i.upstreamURL = u
		return nil
	}
}

// WithIssuerURL sets the authorization server issuer URL. The
// introspection endpoint is discovered from the issuer's RFC 8414
// metadata document instead of being configured directly.
func WithIssuerURL(u *url.URL) Option {
	return func(i *Introspector) error {
		if u == nil {
			return ErrIssuerURLNil
		}
		i.issuerURL = u
		return nil
	}
}

// WithPath sets the introspection endpoint path on the upstream server.
// Ignored when the endpoint is discovered via WithIssuerURL.
func WithPath(p string) Option {
	return func(i *Introspector) error {
		i.endpointPath = p
		return nil
	}
}

// WithHost overrides the Host header sent with the introspection call.
// Useful when the upstream is addressed by IP or by an internal name
// while the server routes on a virtual host.
func WithHost(host string) Option {
	return func(i *Introspector) error {
		i.host = host
		return nil
	}
}

// WithAuthorization sets the static Authorization header value sent
// with every introspection call (REQUIRED). It authenticates this
// service to the authorization server, not the end user; it is sent
// verbatim, so include the scheme, e.g. "Basic czZCaGRS...".
func WithAuthorization(value string) Option {
	return func(i *Introspector) error {
		i.authorization = value
		return nil
	}
}

// WithClient sets a custom HTTP client for introspection calls.
//
// Default: &http.Client{Timeout: 30 * time.Second}
func WithClient(client *http.Client) Option {
	return func(i *Introspector) error {
		if client == nil {
			return ErrClientNil
		}
		i.client = client
		return nil
	}
}

// WithClock sets the time source used for the exp/nbf checks. The
// clock is read exactly once per CheckToken call.
//
// Default: time.Now
func WithClock(now func() time.Time) Option {
	return func(i *Introspector) error {
		if now == nil {
			return ErrClockNil
		}
		i.now = now
		return nil
	}
}
