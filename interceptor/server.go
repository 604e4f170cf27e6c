// Package interceptor installs the error-chain encoding on gRPC servers and
// the matching reconstruction on gRPC clients.
package interceptor

import (
	"context"

	"github.com/thanhminhmr/go-errchain/errors"
	"github.com/thanhminhmr/go-errchain/remote"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Classifier picks the status code sent for a handler error.
type Classifier func(err error) codes.Code

// DefaultClassifier keeps the code of errors carrying a gRPC status, maps
// context cancellation and deadline errors to their codes, and reports
// anything else as codes.Internal.
func DefaultClassifier(err error) codes.Code {
	if converted, ok := status.FromError(err); ok {
		return converted.Code()
	}
	switch {
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	}
	return codes.Internal
}

type serverOptions struct {
	classifier Classifier
	encoder    *remote.Encoder
}

type ServerOption func(*serverOptions)

func WithClassifier(classifier Classifier) ServerOption {
	return func(options *serverOptions) {
		options.classifier = classifier
	}
}

func WithEncoder(encoder *remote.Encoder) ServerOption {
	return func(options *serverOptions) {
		options.encoder = encoder
	}
}

func newServerOptions(options []ServerOption) serverOptions {
	result := serverOptions{
		classifier: DefaultClassifier,
		encoder:    &remote.Encoder{},
	}
	for _, option := range options {
		option(&result)
	}
	return result
}

// UnaryServerInterceptor converts handler errors and panics into status
// errors whose trailers carry the whole error chain.
func UnaryServerInterceptor(serviceName string, options ...ServerOption) grpc.UnaryServerInterceptor {
	server := newServerOptions(options)
	return func(ctx context.Context, request any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (response any, err error) {
		defer func() {
			if recovered := errors.Recover(recover(), 0); recovered != nil {
				zerolog.Ctx(ctx).Error().Str("method", info.FullMethod).Err(recovered).Msg("Recovered from panic")
				response, err = nil, server.send(ctx, recovered, codes.Internal, serviceName, func(md metadata.MD) error {
					return grpc.SetTrailer(ctx, md)
				})
			}
		}()
		response, err = handler(ctx, request)
		if err != nil {
			zerolog.Ctx(ctx).Error().Str("method", info.FullMethod).Err(err).Msg("Call failed")
			err = server.send(ctx, err, server.classifier(err), serviceName, func(md metadata.MD) error {
				return grpc.SetTrailer(ctx, md)
			})
		}
		return response, err
	}
}

// StreamServerInterceptor is UnaryServerInterceptor for streaming calls.
func StreamServerInterceptor(serviceName string, options ...ServerOption) grpc.StreamServerInterceptor {
	server := newServerOptions(options)
	return func(service any, stream grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) (err error) {
		ctx := stream.Context()
		setTrailer := func(md metadata.MD) error {
			stream.SetTrailer(md)
			return nil
		}
		defer func() {
			if recovered := errors.Recover(recover(), 0); recovered != nil {
				zerolog.Ctx(ctx).Error().Str("method", info.FullMethod).Err(recovered).Msg("Recovered from panic")
				err = server.send(ctx, recovered, codes.Internal, serviceName, setTrailer)
			}
		}()
		if err = handler(service, stream); err != nil {
			zerolog.Ctx(ctx).Error().Str("method", info.FullMethod).Err(err).Msg("Call failed")
			err = server.send(ctx, err, server.classifier(err), serviceName, setTrailer)
		}
		return err
	}
}

func (s serverOptions) send(
	ctx context.Context,
	err error,
	code codes.Code,
	serviceName string,
	setTrailer func(metadata.MD) error,
) error {
	// plain status errors have no chain worth sending
	if _, ok := err.(interface{ GRPCStatus() *status.Status }); ok {
		if _, wrapped := err.(*remote.Wrapper); !wrapped {
			return err
		}
	}
	converted := s.encoder.ToStatus(err, code, serviceName)
	if md := converted.Metadata(); md.Len() > 0 {
		if trailerErr := setTrailer(md); trailerErr != nil {
			zerolog.Ctx(ctx).Warn().Err(trailerErr).Msg("Failed to set error chain trailer")
		}
	}
	return converted.Err()
}
