package introspection

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/flexgate/go-introspection-middleware/internal/oauthmeta"
)

// Result is the decoded verdict of the authorization server for one
// token. Active is the only field the server is required to send;
// absent exp/nbf claims mean no constraint of that kind. The remaining
// fields are the optional RFC 7662 response members and are passed
// through for the benefit of downstream handlers.
type Result struct {
	Active    bool     `json:"active"`
	ExpiresAt *int64   `json:"exp,omitempty"`
	NotBefore *int64   `json:"nbf,omitempty"`
	Scope     string   `json:"scope,omitempty"`
	ClientID  string   `json:"client_id,omitempty"`
	Username  string   `json:"username,omitempty"`
	TokenType string   `json:"token_type,omitempty"`
	Subject   string   `json:"sub,omitempty"`
	Issuer    string   `json:"iss,omitempty"`
	Audience  []string `json:"-"`
}

// Introspector validates bearer tokens against a remote RFC 7662
// introspection endpoint. It is safe for concurrent use: the
// configuration is fixed at construction, the resolved endpoint URL is
// guarded by a mutex, and every CheckToken call is independent.
type Introspector struct {
	upstreamURL   *url.URL     // Introspection server base URL.
	issuerURL     *url.URL     // Alternative: discover the endpoint from the issuer.
	endpointPath  string       // Joined onto the upstream URL path.
	host          string       // Optional Host header override.
	authorization string       // Static Authorization header value, sent verbatim.
	client        *http.Client // Required.
	now           func() time.Time

	resolveMu   sync.Mutex
	endpointURL *url.URL
}

// New builds and returns a new *Introspector.
//
// Exactly one of WithUpstreamURL and WithIssuerURL is required. With an
// upstream URL the endpoint is upstream plus WithPath; with an issuer
// URL the endpoint is discovered from the issuer's RFC 8414 metadata
// document on first use.
//
// Example:
//
//	introspector, err := introspection.New(
//	    introspection.WithUpstreamURL(upstreamURL),
//	    introspection.WithPath("/oauth2/introspect"),
//	    introspection.WithAuthorization("Basic "+basicCredentials),
//	)
func New(opts ...Option) (*Introspector, error) {
	i := &Introspector{
		client: &http.Client{Timeout: 30 * time.Second},
		now:    time.Now,
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}

	if i.upstreamURL == nil && i.issuerURL == nil {
		return nil, ErrEndpointRequired
	}
	if i.upstreamURL != nil && i.issuerURL != nil {
		return nil, ErrEndpointAmbiguous
	}
	if i.authorization == "" {
		return nil, ErrAuthorizationRequired
	}

	return i, nil
}

// CheckToken runs the full validation sequence for one token: a fresh
// introspection round trip, then the active, exp and nbf checks in that
// order against one wall-clock reading, short-circuiting on the first
// failure. On success it returns the decoded Result; on failure the
// error is one of the closed set described in the package
// documentation.
func (i *Introspector) CheckToken(ctx context.Context, token string) (*Result, error) {
	result, err := i.introspect(ctx, token)
	if err != nil {
		return nil, err
	}

	now := i.now().Unix()
	if now < 0 {
		// System clock before the UNIX epoch.
		return nil, ErrUnexpected
	}

	if !result.Active {
		return nil, ErrTokenInactive
	}

	// A token expiring exactly now is still valid this instant.
	if result.ExpiresAt != nil && now > *result.ExpiresAt {
		return nil, ErrTokenExpired
	}

	// A token becoming valid exactly now is already valid.
	if result.NotBefore != nil && now < *result.NotBefore {
		return nil, ErrTokenNotYetActive
	}

	return result, nil
}

// introspect performs one POST to the introspection endpoint and
// decodes the verdict.
func (i *Introspector) introspect(ctx context.Context, token string) (*Result, error) {
	endpoint, err := i.endpoint(ctx)
	if err != nil {
		return nil, &ClientError{Err: err}
	}

	form := url.Values{"token": []string{token}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, ErrUnexpected
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", i.authorization)
	if i.host != "" {
		req.Host = i.host
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, &ClientError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// The endpoint declined the call; the token is not usable.
		// The body is intentionally not decoded, only drained so the
		// connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, ErrTokenInactive
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ClientError{Err: err}
	}

	return decodeResult(body)
}

// endpoint returns the resolved introspection endpoint URL. With a
// configured upstream this is a pure join; with an issuer the RFC 8414
// metadata document is fetched and the result reused for the lifetime
// of the Introspector. Only a successful resolution is cached: a
// failed discovery (the issuer being briefly unreachable, or the
// first caller's context getting canceled mid-fetch) fails that one
// check and the next call retries.
func (i *Introspector) endpoint(ctx context.Context) (*url.URL, error) {
	i.resolveMu.Lock()
	defer i.resolveMu.Unlock()

	if i.endpointURL != nil {
		return i.endpointURL, nil
	}

	if i.upstreamURL != nil {
		u := *i.upstreamURL
		u.Path = path.Join(u.Path, i.endpointPath)
		i.endpointURL = &u
		return i.endpointURL, nil
	}

	meta, err := oauthmeta.GetServerMetadata(ctx, i.client, *i.issuerURL)
	if err != nil {
		return nil, err
	}
	endpoint, err := url.Parse(meta.IntrospectionEndpoint)
	if err != nil {
		return nil, err
	}
	i.endpointURL = endpoint

	return i.endpointURL, nil
}

// decodeResult parses a 200 introspection body. The active field is
// required; a body without it is as unusable as one that is not JSON.
func decodeResult(body []byte) (*Result, error) {
	var payload struct {
		Active    *bool           `json:"active"`
		ExpiresAt *int64          `json:"exp"`
		NotBefore *int64          `json:"nbf"`
		Scope     string          `json:"scope"`
		ClientID  string          `json:"client_id"`
		Username  string          `json:"username"`
		TokenType string          `json:"token_type"`
		Subject   string          `json:"sub"`
		Issuer    string          `json:"iss"`
		Audience  json.RawMessage `json:"aud"`
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ParseError{Err: err}
	}
	if payload.Active == nil {
		return nil, &ParseError{Err: errors.New(`missing required "active" field`)}
	}

	return &Result{
		Active:    *payload.Active,
		ExpiresAt: payload.ExpiresAt,
		NotBefore: payload.NotBefore,
		Scope:     payload.Scope,
		ClientID:  payload.ClientID,
		Username:  payload.Username,
		TokenType: payload.TokenType,
		Subject:   payload.Subject,
		Issuer:    payload.Issuer,
		Audience:  decodeAudience(payload.Audience),
	}, nil
}

// decodeAudience accepts the two shapes RFC 7662 allows for aud: a
// single string or an array of strings. Anything else is ignored
// rather than failing the whole verdict, since aud plays no part in
// the validity decision.
func decodeAudience(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		return many
	}
	return nil
}
