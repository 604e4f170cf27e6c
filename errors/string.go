package errors

// String is an Error made of its message alone, meant to be declared as a constant.
type String string

func (e String) Error() string {
	return string(e)
}

// promote returns the fullError filled by fill, or e itself when fill added
// nothing.
func (e String) promote(fill func(*fullError) bool) Error {
	err := fullError{String: string(e)}
	if !fill(&err) {
		return e
	}
	return err
}

func (e String) GetCause() []error {
	return nil
}

func (e String) AddCause(errors ...error) Error {
	return e.promote(func(err *fullError) bool {
		return combine(&err.Cause, errors...)
	})
}

func (e String) GetSuppressed() []error {
	return nil
}

func (e String) AddSuppressed(errors ...error) Error {
	return e.promote(func(err *fullError) bool {
		return combine(&err.Suppressed, errors...)
	})
}

func (e String) GetRecovered() any {
	return nil
}

func (e String) SetRecovered(recovered any) Error {
	return e.promote(func(err *fullError) bool {
		err.Recovered = recovered
		return recovered != nil
	})
}

func (e String) GetStackTrace() StackFrames {
	return nil
}

func (e String) FillStackTrace(skip int) Error {
	return fullError{
		String:     string(e),
		StackTrace: StackTrace(skip + 1),
	}
}

func (e String) Is(target error) bool {
	return is(e, target)
}

func (e String) As(target any) bool {
	return as(e, target)
}
