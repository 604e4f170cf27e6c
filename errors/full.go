package errors

import "fmt"

type fullError struct {
	String     string
	Cause      []error
	Suppressed []error
	Recovered  any
	StackTrace StackFrames
}

func (e fullError) Error() string {
	return e.String
}

func (e fullError) GetCause() []error {
	return e.Cause
}

func (e fullError) AddCause(errors ...error) Error {
	e.Cause = concat(e.Cause, errors...)
	return e
}

func (e fullError) GetSuppressed() []error {
	return e.Suppressed
}

func (e fullError) AddSuppressed(errors ...error) Error {
	e.Suppressed = concat(e.Suppressed, errors...)
	return e
}

func (e fullError) GetRecovered() any {
	return e.Recovered
}

func (e fullError) SetRecovered(recovered any) Error {
	e.Recovered = recovered
	return e
}

func (e fullError) GetStackTrace() StackFrames {
	return e.StackTrace
}

func (e fullError) FillStackTrace(skip int) Error {
	e.StackTrace = StackTrace(skip + 1)
	return e
}

// ErrorDetails exposes the recovered panic value, if any, as a structured
// field so that it survives being rendered into a remote error chain.
func (e fullError) ErrorDetails() map[string]any {
	if e.Recovered == nil {
		return nil
	}
	return map[string]any{"recovered": fmt.Sprint(e.Recovered)}
}

func (e fullError) Unwrap() []error {
	return e.Cause
}

func (e fullError) Is(target error) bool {
	return is(e, target)
}

func (e fullError) As(target any) bool {
	return as(e, target)
}
