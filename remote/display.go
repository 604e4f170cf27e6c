package remote

import (
	"strings"

	"google.golang.org/grpc/codes"
)

var codeDescriptions = map[codes.Code]string{
	codes.OK:                 "The operation completed successfully",
	codes.Canceled:           "The operation was cancelled",
	codes.Unknown:            "Unknown error",
	codes.InvalidArgument:    "Client specified an invalid argument",
	codes.DeadlineExceeded:   "Deadline expired before operation could complete",
	codes.NotFound:           "Some requested entity was not found",
	codes.AlreadyExists:      "Some entity that we attempted to create already exists",
	codes.PermissionDenied:   "The caller does not have permission to execute the specified operation",
	codes.ResourceExhausted:  "Some resource has been exhausted",
	codes.FailedPrecondition: "The system is not in a state required for the operation's execution",
	codes.Aborted:            "The operation was aborted",
	codes.OutOfRange:         "Operation was attempted past the valid range",
	codes.Unimplemented:      "Operation is not implemented or not supported",
	codes.Internal:           "Internal error",
	codes.Unavailable:        "The service is currently unavailable",
	codes.DataLoss:           "Unrecoverable data loss or corruption",
	codes.Unauthenticated:    "The request does not have valid authentication credentials",
}

// Describe returns a human-readable description of code.
func Describe(code codes.Code) string {
	if description, ok := codeDescriptions[code]; ok {
		return description
	}
	return code.String()
}

// Error renders the Wrapper as
//
//	remote call[ to <service> service] failed: <code description>: <body>
//
// where body is the outermost rebuilt error, or the raw message when there
// is no chain.
func (w *Wrapper) Error() string {
	var builder strings.Builder
	builder.WriteString("remote call")
	if serviceName := w.ServiceName(); serviceName != "" {
		builder.WriteString(" to ")
		builder.WriteString(serviceName)
		builder.WriteString(" service")
	}
	builder.WriteString(" failed: ")
	builder.WriteString(Describe(w.inner.code))
	builder.WriteString(": ")
	if w.inner.source != nil {
		builder.WriteString(w.inner.source.Error())
	} else {
		builder.WriteString(w.inner.message)
	}
	return builder.String()
}
