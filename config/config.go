// Package config loads the middleware's JSON configuration document and
// assembles a ready-to-use Middleware from it.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"

	introspectmiddleware "github.com/flexgate/go-introspection-middleware"
	"github.com/flexgate/go-introspection-middleware/introspection"
)

// Extractor sources accepted in the token_extractor descriptor.
const (
	SourceHeader = "header"
	SourceCookie = "cookie"
	SourceQuery  = "query"
)

// Config is the process-wide middleware configuration. It is parsed
// once at startup and read-only thereafter; a parse or validation
// failure is fatal to initialization and is returned, not recovered.
type Config struct {
	// Upstream is the base URL of the introspection server.
	Upstream string `json:"upstream"`

	// Host optionally overrides the Host header on introspection calls.
	Host string `json:"host"`

	// Path is the introspection endpoint path on the upstream.
	Path string `json:"path"`

	// Authorization is the static credential sent verbatim as the
	// Authorization header of every introspection call.
	Authorization string `json:"authorization"`

	// TokenExtractor describes how to pull the token out of a request.
	TokenExtractor ExtractorConfig `json:"token_extractor"`
}

// ExtractorConfig describes a token extractor. Source selects where the
// token is read from; Name is the header, cookie or query parameter
// name. A header extractor with no name (or named "Authorization")
// parses the standard Bearer Authorization header.
type ExtractorConfig struct {
	Source string `json:"source"`
	Name   string `json:"name"`
}

// Parse deserializes and validates a configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads and parses a configuration document from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read configuration file: %w", err)
	}
	return Parse(data)
}

func (c *Config) validate() error {
	if c.Upstream == "" {
		return errors.New("configuration field upstream is required")
	}
	if _, err := url.Parse(c.Upstream); err != nil {
		return fmt.Errorf("configuration field upstream is not a valid URL: %w", err)
	}
	if c.Path == "" {
		return errors.New("configuration field path is required")
	}
	if c.Authorization == "" {
		return errors.New("configuration field authorization is required")
	}

	switch c.TokenExtractor.Source {
	case "", SourceHeader:
		// Name optional: defaults to the Bearer Authorization header.
	case SourceCookie, SourceQuery:
		if c.TokenExtractor.Name == "" {
			return fmt.Errorf("token_extractor source %q requires a name", c.TokenExtractor.Source)
		}
	default:
		return fmt.Errorf("unknown token_extractor source %q", c.TokenExtractor.Source)
	}

	return nil
}

// Extractor builds the TokenExtractor described by the configuration.
func (c *Config) Extractor() introspectmiddleware.TokenExtractor {
	switch c.TokenExtractor.Source {
	case SourceCookie:
		return introspectmiddleware.CookieTokenExtractor(c.TokenExtractor.Name)
	case SourceQuery:
		return introspectmiddleware.ParameterTokenExtractor(c.TokenExtractor.Name)
	default:
		if c.TokenExtractor.Name == "" || c.TokenExtractor.Name == "Authorization" {
			return introspectmiddleware.AuthHeaderTokenExtractor
		}
		return introspectmiddleware.HeaderTokenExtractor(c.TokenExtractor.Name)
	}
}

// NewIntrospector builds the Introspector described by the configuration.
func (c *Config) NewIntrospector(opts ...introspection.Option) (*introspection.Introspector, error) {
	upstreamURL, err := url.Parse(c.Upstream)
	if err != nil {
		return nil, fmt.Errorf("configuration field upstream is not a valid URL: %w", err)
	}

	options := []introspection.Option{
		introspection.WithUpstreamURL(upstreamURL),
		introspection.WithPath(c.Path),
		introspection.WithAuthorization(c.Authorization),
	}
	if c.Host != "" {
		options = append(options, introspection.WithHost(c.Host))
	}
	options = append(options, opts...)

	return introspection.New(options...)
}

// NewMiddleware assembles the full middleware stack from the
// configuration: introspector, token extractor and middleware. Extra
// middleware options (logger, metrics, tracer, error handler) are
// appended after the configured ones.
func (c *Config) NewMiddleware(opts ...introspectmiddleware.Option) (*introspectmiddleware.Middleware, error) {
	introspector, err := c.NewIntrospector()
	if err != nil {
		return nil, err
	}

	options := []introspectmiddleware.Option{
		introspectmiddleware.WithIntrospector(introspector),
		introspectmiddleware.WithTokenExtractor(c.Extractor()),
	}
	options = append(options, opts...)

	return introspectmiddleware.New(options...)
}
