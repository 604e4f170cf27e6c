package errors

import "strings"

// Errors combines errors into one. Nil values are dropped and nested
// combinations are flattened. It returns nil when nothing is left, and the
// error itself when exactly one Error is left.
func Errors(errors ...error) Error {
	var multiple []error
	if !combine(&multiple, errors...) {
		return nil
	}
	if len(multiple) == 1 {
		if inner, ok := multiple[0].(Error); ok {
			return inner
		}
	}
	return multipleErrors(multiple)
}

type multipleErrors []error

func (e multipleErrors) Error() string {
	var builder strings.Builder
	for index, inner := range e {
		if index > 0 {
			builder.WriteString("; ")
		}
		builder.WriteString(inner.Error())
	}
	return builder.String()
}

func (e multipleErrors) GetCause() []error {
	return e
}

func (e multipleErrors) AddCause(errors ...error) Error {
	return multipleErrors(concat(e, errors...))
}

func (e multipleErrors) GetSuppressed() []error {
	return nil
}

func (e multipleErrors) AddSuppressed(errors ...error) Error {
	var suppressed []error
	if combine(&suppressed, errors...) {
		return fullError{
			String:     e.Error(),
			Cause:      e,
			Suppressed: suppressed,
		}
	}
	return e
}

func (e multipleErrors) GetRecovered() any {
	return nil
}

func (e multipleErrors) SetRecovered(recovered any) Error {
	if recovered == nil {
		return e
	}
	return fullError{
		String:    e.Error(),
		Cause:     e,
		Recovered: recovered,
	}
}

func (e multipleErrors) GetStackTrace() StackFrames {
	return nil
}

func (e multipleErrors) FillStackTrace(skip int) Error {
	return fullError{
		String:     e.Error(),
		Cause:      e,
		StackTrace: StackTrace(skip + 1),
	}
}

func (e multipleErrors) Unwrap() []error {
	return e
}
