package remote

import (
	"context"
	"iter"

	"github.com/thanhminhmr/go-errchain/chain"
	"github.com/thanhminhmr/go-errchain/errors"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Wrapper is a received Status seen as an error. Its source chain is
// resolved once, when the Wrapper is built, and never changes afterward, so
// a Wrapper can be read from several goroutines.
type Wrapper struct {
	inner Status
}

// NewWrapper is Wrap with the global logger.
func NewWrapper(received *Status) *Wrapper {
	return Wrap(context.Background(), received)
}

// Wrap rebuilds the error chain carried by received. A status that already has
// a source is kept as is. When the metadata entry cannot be decoded, a single
// warning goes to the logger of ctx and the Wrapper falls back to the plain
// message. A context without a logger falls back to the global logger. A nil
// received is an empty status with codes.Unknown.
func Wrap(ctx context.Context, received *Status) *Wrapper {
	if received == nil {
		received = WithMetadata(codes.Unknown, "", nil)
	}
	wrapper := &Wrapper{inner: *received}
	if wrapper.inner.source != nil {
		decodedTotal.WithLabelValues(resultSkipped).Inc()
		return wrapper
	}
	data, exists := wrapper.inner.GetBinary(MetadataKey)
	if !exists {
		decodedTotal.WithLabelValues(resultAbsent).Inc()
		return wrapper
	}
	record, err := chain.Unmarshal(data)
	if err != nil {
		decodedTotal.WithLabelValues(resultFailed).Inc()
		logger(ctx).Warn().
			Err(err).
			Str("key", MetadataKey).
			Int("size", len(data)).
			Stringer("code", wrapper.inner.code).
			Msg("Failed to decode error chain from metadata")
		return wrapper
	}
	decodedTotal.WithLabelValues(resultOK).Inc()
	wrapper.inner.source = record.Err()
	return wrapper
}

func logger(ctx context.Context) *zerolog.Logger {
	if logger := zerolog.Ctx(ctx); logger.GetLevel() != zerolog.Disabled {
		return logger
	}
	return &zlog.Logger
}

func (w *Wrapper) Code() codes.Code {
	return w.inner.code
}

// Message returns the raw status message.
func (w *Wrapper) Message() string {
	return w.inner.message
}

// ServiceName returns the name of the service that produced the chain, or ""
// when there is no chain or the producer did not name itself.
func (w *Wrapper) ServiceName() string {
	if remote, ok := w.inner.source.(*chain.RemoteError); ok {
		return remote.ServiceName()
	}
	return ""
}

// Source returns the outermost error of the rebuilt chain, or nil.
func (w *Wrapper) Source() error {
	return w.inner.source
}

// SourceChain iterates over the rebuilt chain, outermost first. It yields
// nothing when no chain was rebuilt.
func (w *Wrapper) SourceChain() iter.Seq[error] {
	return errors.Chain(w.inner.source)
}

// Inner returns a copy of the wrapped status, source included.
func (w *Wrapper) Inner() *Status {
	inner := w.inner
	return &inner
}

// IntoInner returns the wrapped status by value.
func (w *Wrapper) IntoInner() Status {
	return w.inner
}

// Unwrap makes the Wrapper transparent: errors.Is and errors.As continue
// into the rebuilt chain.
func (w *Wrapper) Unwrap() error {
	return w.inner.source
}

// GRPCStatus keeps status.Code and status.FromError working on the Wrapper.
func (w *Wrapper) GRPCStatus() *status.Status {
	return w.inner.GRPC()
}

func (w *Wrapper) MarshalZerologObject(event *zerolog.Event) {
	event.Str("error", w.Error()).Stringer("code", w.inner.code)
	if remote, ok := w.inner.source.(*chain.RemoteError); ok {
		event.Object("source", remote)
	}
}
