package introspectmiddleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flexgate/go-introspection-middleware/introspection"
)

func Test_DefaultErrorHandler(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		wantStatusCode int
		wantChallenge  bool
	}{
		{
			name:           "no token",
			err:            ErrNoToken,
			wantStatusCode: http.StatusUnauthorized,
			wantChallenge:  true,
		},
		{
			name:           "inactive token",
			err:            introspection.ErrTokenInactive,
			wantStatusCode: http.StatusUnauthorized,
			wantChallenge:  true,
		},
		{
			name:           "expired token",
			err:            introspection.ErrTokenExpired,
			wantStatusCode: http.StatusUnauthorized,
			wantChallenge:  true,
		},
		{
			name:           "not yet active token",
			err:            introspection.ErrTokenNotYetActive,
			wantStatusCode: http.StatusUnauthorized,
			wantChallenge:  true,
		},
		{
			name:           "unexpected",
			err:            introspection.ErrUnexpected,
			wantStatusCode: http.StatusInternalServerError,
		},
		{
			name:           "client error",
			err:            &introspection.ClientError{Err: errors.New("connection refused")},
			wantStatusCode: http.StatusInternalServerError,
		},
		{
			name:           "non-parsable body",
			err:            &introspection.ParseError{Err: errors.New("unexpected EOF")},
			wantStatusCode: http.StatusInternalServerError,
		},
		{
			name:           "unknown error",
			err:            errors.New("something else"),
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/", nil)

			DefaultErrorHandler(recorder, request, testCase.err)

			response := recorder.Result()
			defer response.Body.Close()

			assert.Equal(t, testCase.wantStatusCode, response.StatusCode)

			if testCase.wantChallenge {
				assert.Equal(t, `Bearer realm="oauth2"`, response.Header.Get("WWW-Authenticate"))
			} else {
				assert.Empty(t, response.Header.Get("WWW-Authenticate"))
			}

			body, err := io.ReadAll(response.Body)
			require.NoError(t, err)
			assert.Empty(t, body)
		})
	}
}

func Test_OutcomeLabel(t *testing.T) {
	testCases := []struct {
		err  error
		want string
	}{
		{err: nil, want: OutcomeAllowed},
		{err: ErrNoToken, want: OutcomeNoToken},
		{err: introspection.ErrTokenInactive, want: OutcomeInactiveToken},
		{err: introspection.ErrTokenExpired, want: OutcomeExpiredToken},
		{err: introspection.ErrTokenNotYetActive, want: OutcomeNotYetActive},
		{err: &introspection.ClientError{Err: errors.New("refused")}, want: OutcomeClientError},
		{err: &introspection.ParseError{Err: errors.New("bad json")}, want: OutcomeNonParsableBody},
		{err: introspection.ErrUnexpected, want: OutcomeUnexpected},
		{err: errors.New("anything else"), want: OutcomeUnexpected},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.want, OutcomeLabel(testCase.err))
	}
}
