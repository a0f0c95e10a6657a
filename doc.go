/*
Package introspectmiddleware provides HTTP middleware that authorizes
requests via OAuth2 token introspection (RFC 7662).

The middleware extracts a bearer token from each inbound request, asks
a remote introspection endpoint for a verdict, and either lets the
request continue or answers early: 401 with a Bearer challenge when the
token is missing or rejected, 500 when the introspection call itself
fails. The decoded introspection result is made available in the
request context for allowed requests.

# Quick Start

	import (
	    introspectmiddleware "github.com/flexgate/go-introspection-middleware"
	    "github.com/flexgate/go-introspection-middleware/introspection"
	)

	func main() {
	    upstreamURL, _ := url.Parse("https://auth.internal:8443")

	    introspector, err := introspection.New(
	        introspection.WithUpstreamURL(upstreamURL),
	        introspection.WithPath("/oauth2/introspect"),
	        introspection.WithAuthorization("Basic "+credentials),
	    )
	    if err != nil {
	        log.Fatal(err)
	    }

	    middleware, err := introspectmiddleware.New(
	        introspectmiddleware.WithIntrospector(introspector),
	    )
	    if err != nil {
	        log.Fatal(err)
	    }

	    handler := middleware.CheckToken(http.HandlerFunc(myHandler))
	    http.ListenAndServe(":8080", handler)
	}

Inside a protected handler the verdict is available via the context:

	result, err := introspectmiddleware.ResultFromContext(r.Context())
	if err == nil {
	    fmt.Println(result.Scope)
	}

Adapters for Gin, Echo and gRPC live under framework/ and
grpcintrospect/. A JSON configuration loader that assembles the whole
stack lives under config/.
*/
package introspectmiddleware
