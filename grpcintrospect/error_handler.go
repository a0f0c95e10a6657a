package grpcintrospect

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	introspectmiddleware "github.com/flexgate/go-introspection-middleware"
)

// ErrorHandler converts introspection errors to gRPC status errors.
type ErrorHandler func(error) error

// DefaultErrorHandler maps the closed introspection error set to gRPC
// status codes, mirroring the HTTP middleware's 401/500 split:
// token-level rejections become Unauthenticated, failures talking to
// the introspection endpoint become Internal. Malformed authorization
// metadata becomes InvalidArgument.
func DefaultErrorHandler(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrMultipleAuthHeaders) ||
		errors.Is(err, ErrInvalidAuthFormat) ||
		errors.Is(err, ErrUnsupportedScheme) {
		return status.Error(codes.InvalidArgument, err.Error())
	}

	switch introspectmiddleware.OutcomeLabel(err) {
	case introspectmiddleware.OutcomeNoToken:
		return status.Error(codes.Unauthenticated, "missing credentials")
	case introspectmiddleware.OutcomeInactiveToken:
		return status.Error(codes.Unauthenticated, "token inactive")
	case introspectmiddleware.OutcomeExpiredToken:
		return status.Error(codes.Unauthenticated, "token expired")
	case introspectmiddleware.OutcomeNotYetActive:
		return status.Error(codes.Unauthenticated, "token not yet valid")
	default:
		// Client, parse and unexpected errors are server-side
		// infrastructure failures; never surface them as a token
		// problem.
		return status.Error(codes.Internal, "unable to verify token")
	}
}
