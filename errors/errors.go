package errors

import "fmt"

// Error is an error that carries its own causes, suppressed errors, a
// recovered panic value and a stack trace. Its Error() string is only its own
// message; the causes are reachable through GetCause and Unwrap.
//
// Methods that modify an Error return the modified value. Always use the
// returned value.
type Error interface {
	error

	GetCause() []error
	AddCause(...error) Error

	GetSuppressed() []error
	AddSuppressed(...error) Error

	GetRecovered() any
	SetRecovered(any) Error

	GetStackTrace() StackFrames
	FillStackTrace(skip int) Error
}

// ========================================

type Template string

func (e Template) Format(arg ...any) String {
	return String(fmt.Sprintf(string(e), arg...))
}
