/*
Package introspection implements RFC 7662 OAuth2 token introspection.

An Introspector asks a remote authorization server whether a bearer
token is currently usable. It posts the token as a form-encoded body to
the configured introspection endpoint, decodes the JSON verdict, and
applies the time-based validity rules (the active flag and the exp/nbf
claims) against a single wall-clock reading.

Every failure mode is one value of a closed error set, so callers can
map each outcome to exactly one HTTP response:

  - ErrTokenInactive, ErrTokenExpired, ErrTokenNotYetActive: the token
    was rejected and the caller should answer 401.
  - *ClientError, *ParseError, ErrUnexpected: talking to the
    authorization server failed and the caller should answer 500.

The Introspector never retries and never caches: each CheckToken call
is one fresh network round trip.
*/
package introspection
