package remote

import (
	"github.com/thanhminhmr/go-errchain/errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Status is the outcome of a call as it crosses the wire: a code, a message
// and the trailer metadata. It may also hold the error it was built from, a
// process-local reference that is never sent.
type Status struct {
	code     codes.Code
	message  string
	metadata metadata.MD
	source   error
}

// WithMetadata builds a Status from its wire parts.
func WithMetadata(code codes.Code, message string, md metadata.MD) *Status {
	return &Status{
		code:     code,
		message:  message,
		metadata: md,
	}
}

// FromError builds a Status from the error returned by a gRPC call and the
// trailers received with it. Errors that are not gRPC status errors become
// codes.Unknown. An error already converted by Wrap gives back its own status.
func FromError(err error, trailer metadata.MD) *Status {
	var wrapper *Wrapper
	if errors.As(err, &wrapper) {
		return wrapper.Inner()
	}
	converted := status.Convert(err)
	return WithMetadata(converted.Code(), converted.Message(), trailer)
}

func (s *Status) Code() codes.Code {
	return s.code
}

func (s *Status) Message() string {
	return s.message
}

func (s *Status) Metadata() metadata.MD {
	return s.metadata
}

// GetBinary returns the first value stored under a binary key.
func (s *Status) GetBinary(key string) ([]byte, bool) {
	values := s.metadata.Get(key)
	if len(values) == 0 {
		return nil, false
	}
	return []byte(values[0]), true
}

// Source returns the error attached in this process, if any.
func (s *Status) Source() error {
	return s.source
}

// GRPC returns the gRPC status with the same code and message.
func (s *Status) GRPC() *status.Status {
	return status.New(s.code, s.message)
}

// Err returns the gRPC status error to be returned from a handler, or nil for
// codes.OK.
func (s *Status) Err() error {
	return s.GRPC().Err()
}
