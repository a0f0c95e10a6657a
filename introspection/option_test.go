package introspection

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_New_Validation(t *testing.T) {
	upstreamURL, err := url.Parse("https://auth.internal:8443")
	require.NoError(t, err)

	issuerURL, err := url.Parse("https://issuer.example.com")
	require.NoError(t, err)

	testCases := []struct {
		name    string
		options []Option
		wantErr error
	}{
		{
			name:    "no endpoint",
			options: []Option{WithAuthorization("Basic abc")},
			wantErr: ErrEndpointRequired,
		},
		{
			name: "both upstream and issuer",
			options: []Option{
				WithUpstreamURL(upstreamURL),
				WithIssuerURL(issuerURL),
				WithAuthorization("Basic abc"),
			},
			wantErr: ErrEndpointAmbiguous,
		},
		{
			name:    "no authorization",
			options: []Option{WithUpstreamURL(upstreamURL)},
			wantErr: ErrAuthorizationRequired,
		},
		{
			name:    "nil upstream URL",
			options: []Option{WithUpstreamURL(nil)},
			wantErr: ErrUpstreamURLNil,
		},
		{
			name:    "nil issuer URL",
			options: []Option{WithIssuerURL(nil)},
			wantErr: ErrIssuerURLNil,
		},
		{
			name: "nil client",
			options: []Option{
				WithUpstreamURL(upstreamURL),
				WithAuthorization("Basic abc"),
				WithClient(nil),
			},
			wantErr: ErrClientNil,
		},
		{
			name: "nil clock",
			options: []Option{
				WithUpstreamURL(upstreamURL),
				WithAuthorization("Basic abc"),
				WithClock(nil),
			},
			wantErr: ErrClockNil,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			introspector, err := New(testCase.options...)
			assert.ErrorIs(t, err, testCase.wantErr)
			assert.Nil(t, introspector)
		})
	}
}

func Test_New_Defaults(t *testing.T) {
	upstreamURL, err := url.Parse("https://auth.internal:8443/base")
	require.NoError(t, err)

	introspector, err := New(
		WithUpstreamURL(upstreamURL),
		WithPath("/introspect"),
		WithAuthorization("Basic abc"),
	)
	require.NoError(t, err)

	assert.NotNil(t, introspector.client)
	assert.Equal(t, 30*time.Second, introspector.client.Timeout)
	assert.NotNil(t, introspector.now)
}

func Test_Endpoint_JoinsUpstreamAndPath(t *testing.T) {
	upstreamURL, err := url.Parse("https://auth.internal:8443/base")
	require.NoError(t, err)

	introspector, err := New(
		WithUpstreamURL(upstreamURL),
		WithPath("/oauth2/introspect"),
		WithAuthorization("Basic abc"),
		WithClient(&http.Client{}),
	)
	require.NoError(t, err)

	endpoint, err := introspector.endpoint(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://auth.internal:8443/base/oauth2/introspect", endpoint.String())
}
