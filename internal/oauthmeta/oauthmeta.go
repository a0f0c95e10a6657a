// Package oauthmeta fetches RFC 8414 authorization server metadata.
package oauthmeta

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
)

// ServerMetadata holds the subset of the authorization server metadata
// document that this module consumes.
type ServerMetadata struct {
	Issuer                string `json:"issuer"`
	IntrospectionEndpoint string `json:"introspection_endpoint"`
}

// GetServerMetadata gets the RFC 8414 metadata document for the passed
// in issuer URL and returns it. It fails if the document does not
// advertise an introspection endpoint.
func GetServerMetadata(ctx context.Context, client *http.Client, issuerURL url.URL) (*ServerMetadata, error) {
	issuerURL.Path = path.Join(issuerURL.Path, ".well-known/oauth-authorization-server")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, issuerURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("could not build request to get server metadata: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not get server metadata from url %s: %w", issuerURL.String(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d getting server metadata from url %s", resp.StatusCode, issuerURL.String())
	}

	var metadata ServerMetadata
	if err := json.NewDecoder(resp.Body).Decode(&metadata); err != nil {
		return nil, fmt.Errorf("could not decode json body when getting server metadata: %w", err)
	}

	if metadata.IntrospectionEndpoint == "" {
		return nil, errors.New("server metadata does not advertise an introspection endpoint")
	}

	return &metadata, nil
}
