package chain

import (
	"github.com/thanhminhmr/go-errchain/errors"

	"github.com/rs/zerolog"
)

// RemoteError is a frame of a chain received from another process. Its
// Unwrap walks the following frames in their original order.
type RemoteError struct {
	Frame
	serviceName string
	cause       *RemoteError
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	if e.cause == nil {
		return nil
	}
	return e.cause
}

// ServiceName returns the service that produced the chain, or "" if the
// producer did not name itself.
func (e *RemoteError) ServiceName() string {
	return e.serviceName
}

func (e *RemoteError) ErrorType() string {
	return e.Type
}

func (e *RemoteError) ErrorDetails() map[string]any {
	return e.Details
}

func (e *RemoteError) GetStackTrace() errors.StackFrames {
	return e.StackTrace
}

// Is matches in-house errors by message, the same rule they follow locally,
// so a sentinel declared with errors.String keeps matching after the trip.
func (e *RemoteError) Is(target error) bool {
	if err, ok := target.(errors.Error); ok {
		return e.Message == err.Error()
	}
	return false
}

func (e *RemoteError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("error", e.Message)
	if e.Type != "" {
		event.Str("type", e.Type)
	}
	if e.serviceName != "" {
		event.Str("service", e.serviceName)
	}
	if len(e.Details) > 0 {
		event.Any("details", e.Details)
	}
	if e.StackTrace != nil {
		event.Array("stack_trace", e.StackTrace)
	}
	if e.cause != nil {
		event.Object("cause", e.cause)
	}
}
