package oauthmeta

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GetServerMetadata(t *testing.T) {
	t.Run("fetches the metadata document", func(t *testing.T) {
		var gotPath string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_ = json.NewEncoder(w).Encode(map[string]string{
				"issuer":                 "https://issuer.example.com/",
				"introspection_endpoint": "https://issuer.example.com/oauth2/introspect",
			})
		}))
		defer server.Close()

		issuerURL, err := url.Parse(server.URL)
		require.NoError(t, err)

		metadata, err := GetServerMetadata(context.Background(), server.Client(), *issuerURL)
		require.NoError(t, err)

		assert.Equal(t, "/.well-known/oauth-authorization-server", gotPath)
		assert.Equal(t, "https://issuer.example.com/oauth2/introspect", metadata.IntrospectionEndpoint)
	})

	t.Run("non-200 status fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer server.Close()

		issuerURL, err := url.Parse(server.URL)
		require.NoError(t, err)

		_, err = GetServerMetadata(context.Background(), server.Client(), *issuerURL)
		assert.ErrorContains(t, err, "unexpected status 404")
	})

	t.Run("missing introspection endpoint fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"issuer": "https://issuer.example.com/"})
		}))
		defer server.Close()

		issuerURL, err := url.Parse(server.URL)
		require.NoError(t, err)

		_, err = GetServerMetadata(context.Background(), server.Client(), *issuerURL)
		assert.ErrorContains(t, err, "does not advertise an introspection endpoint")
	})
}
