package chain

import (
	"fmt"
	"strings"

	"github.com/thanhminhmr/go-errchain/errors"
)

// Version is the record layout understood by this package. Fields may be
// added without changing it; a different value is rejected on decoding.
const Version = 1

// Detailer is implemented by errors that expose structured fields to be
// carried next to their message.
type Detailer interface {
	ErrorDetails() map[string]any
}

// Typer is implemented by errors that report a type name other than their Go
// type, typically errors forwarded from another process.
type Typer interface {
	ErrorType() string
}

type stackTracer interface {
	GetStackTrace() errors.StackFrames
}

// Frame is one node of a captured chain.
type Frame struct {
	Message    string
	Type       string
	Details    map[string]any
	StackTrace errors.StackFrames
}

// Record is a captured chain, outermost frame first. It references nothing
// but plain values and can be stored or forwarded freely.
type Record struct {
	Version     uint32
	Chain       []Frame
	ServiceName string
}

type Options struct {
	// MaxDepth limits the number of captured frames, 0 means unlimited.
	MaxDepth int
	// StackTraces includes the stack trace of errors that carry one.
	StackTraces bool
}

// Capture walks err and its causes, outermost first, and renders each node
// into a Frame. The record of a nil error has no frames.
func Capture(err error, serviceName string, options Options) Record {
	record := Record{
		Version:     Version,
		ServiceName: validUTF8(serviceName),
	}
	dropped := 0
	for node := range errors.Chain(err) {
		if options.MaxDepth > 0 && len(record.Chain) >= options.MaxDepth {
			dropped++
			continue
		}
		record.Chain = append(record.Chain, newFrame(node, options.StackTraces))
	}
	if dropped > 0 {
		last := &record.Chain[len(record.Chain)-1]
		details := make(map[string]any, len(last.Details)+1)
		for key, value := range last.Details {
			details[key] = value
		}
		details["truncated"] = dropped
		last.Details = details
	}
	return record
}

func newFrame(node error, stackTraces bool) Frame {
	frame := Frame{Message: validUTF8(node.Error())}
	if typer, ok := node.(Typer); ok {
		frame.Type = validUTF8(typer.ErrorType())
	} else {
		frame.Type = fmt.Sprintf("%T", node)
	}
	if detailer, ok := node.(Detailer); ok {
		frame.Details = detailer.ErrorDetails()
	}
	if tracer, ok := node.(stackTracer); ok && stackTraces {
		for _, entry := range tracer.GetStackTrace() {
			entry.Function = validUTF8(entry.Function)
			entry.File = validUTF8(entry.File)
			frame.StackTrace = append(frame.StackTrace, entry)
		}
	}
	return frame
}

// validUTF8 replaces invalid byte sequences with U+FFFD. Rendered messages
// may carry raw bytes, file paths in particular.
func validUTF8(value string) string {
	return strings.ToValidUTF8(value, "\uFFFD")
}

// Err materializes the record into a chain of *RemoteError, or nil if the
// record has no frames.
func (r Record) Err() *RemoteError {
	var next *RemoteError
	for index := len(r.Chain) - 1; index >= 0; index-- {
		next = &RemoteError{
			Frame:       r.Chain[index],
			serviceName: r.ServiceName,
			cause:       next,
		}
	}
	return next
}
