package interceptor

import (
	"context"
	"io"

	"github.com/thanhminhmr/go-errchain/errors"
	"github.com/thanhminhmr/go-errchain/remote"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// UnaryClientInterceptor returns failures as *remote.Wrapper, with the error
// chain rebuilt from the received trailers.
func UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		request, reply any,
		connection *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		options ...grpc.CallOption,
	) error {
		var trailer metadata.MD
		err := invoker(ctx, method, request, reply, connection, append(options, grpc.Trailer(&trailer))...)
		if err == nil {
			return nil
		}
		return remote.Wrap(ctx, remote.FromError(err, trailer))
	}
}

// StreamClientInterceptor is UnaryClientInterceptor for streaming calls. The
// chain is rebuilt when RecvMsg fails with anything but io.EOF.
func StreamClientInterceptor() grpc.StreamClientInterceptor {
	return func(
		ctx context.Context,
		description *grpc.StreamDesc,
		connection *grpc.ClientConn,
		method string,
		streamer grpc.Streamer,
		options ...grpc.CallOption,
	) (grpc.ClientStream, error) {
		stream, err := streamer(ctx, description, connection, method, options...)
		if err != nil {
			return nil, remote.Wrap(ctx, remote.FromError(err, nil))
		}
		return &clientStream{ClientStream: stream}, nil
	}
}

type clientStream struct {
	grpc.ClientStream
}

func (s *clientStream) RecvMsg(message any) error {
	err := s.ClientStream.RecvMsg(message)
	if err == nil || errors.Is(err, io.EOF) {
		return err
	}
	return remote.Wrap(s.Context(), remote.FromError(err, s.Trailer()))
}
