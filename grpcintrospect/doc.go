/*
Package grpcintrospect provides gRPC server interceptors that authorize
calls via OAuth2 token introspection.

The interceptors extract a bearer token from the "authorization"
metadata key, check it against the configured introspector, and map
every rejection to a gRPC status: Unauthenticated for token-level
rejections, Internal for failures talking to the introspection
endpoint. The introspection result is made available in the handler
context via the root package's ResultFromContext.

	interceptor, err := grpcintrospect.New(
	    grpcintrospect.WithIntrospector(introspector),
	)
	if err != nil {
	    log.Fatal(err)
	}

	server := grpc.NewServer(
	    grpc.UnaryInterceptor(interceptor.UnaryServerInterceptor()),
	    grpc.StreamInterceptor(interceptor.StreamServerInterceptor()),
	)
*/
package grpcintrospect
