package grpcintrospect

import (
	"context"

	"google.golang.org/grpc"

	introspectmiddleware "github.com/flexgate/go-introspection-middleware"
)

// Interceptor provides token introspection for gRPC servers.
type Interceptor struct {
	introspector    introspectmiddleware.TokenChecker
	tokenExtractor  TokenExtractor
	errorHandler    ErrorHandler
	excludedMethods map[string]bool
	logger          introspectmiddleware.Logger
}

// New creates a new gRPC introspection interceptor with the provided
// options. WithIntrospector is required.
func New(opts ...Option) (*Interceptor, error) {
	interceptor := &Interceptor{
		tokenExtractor:  MetadataTokenExtractor,
		errorHandler:    DefaultErrorHandler,
		excludedMethods: make(map[string]bool),
	}

	for _, opt := range opts {
		if err := opt(interceptor); err != nil {
			return nil, err
		}
	}

	if interceptor.introspector == nil {
		return nil, introspectmiddleware.ErrIntrospectorRequired
	}

	return interceptor, nil
}

// UnaryServerInterceptor returns a grpc.UnaryServerInterceptor that
// introspects the bearer token from the call metadata and makes the
// result available in the handler context.
func (i *Interceptor) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		if i.excludedMethods[info.FullMethod] {
			if i.logger != nil {
				i.logger.Debugf("skipping token validation for excluded method %s", info.FullMethod)
			}
			return handler(ctx, req)
		}

		validatedCtx, err := i.validateRequest(ctx, info.FullMethod)
		if err != nil {
			return nil, err
		}

		return handler(validatedCtx, req)
	}
}

// StreamServerInterceptor returns a grpc.StreamServerInterceptor that
// introspects the bearer token from the stream metadata and makes the
// result available in the stream context.
func (i *Interceptor) StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(
		srv interface{},
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		if i.excludedMethods[info.FullMethod] {
			if i.logger != nil {
				i.logger.Debugf("skipping token validation for excluded method %s", info.FullMethod)
			}
			return handler(srv, ss)
		}

		validatedCtx, err := i.validateRequest(ss.Context(), info.FullMethod)
		if err != nil {
			return err
		}

		return handler(srv, &wrappedServerStream{
			ServerStream: ss,
			ctx:          validatedCtx,
		})
	}
}

// validateRequest extracts and introspects the token from the context.
func (i *Interceptor) validateRequest(ctx context.Context, method string) (context.Context, error) {
	token, err := i.tokenExtractor(ctx)
	if err != nil {
		if i.logger != nil {
			i.logger.Debugf("failed to extract token from metadata for %s: %s", method, err)
		}
		return ctx, i.errorHandler(err)
	}

	if token == "" {
		if i.logger != nil {
			i.logger.Debugf("no authorization token was provided for %s", method)
		}
		return ctx, i.errorHandler(introspectmiddleware.ErrNoToken)
	}

	result, err := i.introspector.CheckToken(ctx, token)
	if err != nil {
		i.logRejection(method, err)
		return ctx, i.errorHandler(err)
	}

	return introspectmiddleware.SetResult(ctx, result), nil
}

// logRejection mirrors the HTTP middleware's severity rules: debug for
// token-level rejections, warn for environmental failures.
func (i *Interceptor) logRejection(method string, err error) {
	if i.logger == nil {
		return
	}

	switch introspectmiddleware.OutcomeLabel(err) {
	case introspectmiddleware.OutcomeInactiveToken,
		introspectmiddleware.OutcomeExpiredToken,
		introspectmiddleware.OutcomeNotYetActive:
		i.logger.Debugf("token rejected for %s: %s", method, err)
	default:
		i.logger.Warnf("introspection failed for %s: %s", method, err)
	}
}

// wrappedServerStream wraps grpc.ServerStream with a custom context.
type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

// Context returns the wrapped context carrying the introspection result.
func (w *wrappedServerStream) Context() context.Context {
	return w.ctx
}
