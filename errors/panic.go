package errors

const PanicError = String("panicked")

// Panic panics with an Error carrying a stack trace.
func Panic(recovered any, skip int) {
	panic(fromRecovered(recovered, skip+1))
}

// Recover turns the value returned by the builtin recover into an Error, or
// returns nil if nothing was recovered. It must be given the result of
// recover() called directly in the deferred function:
//
//	defer func() {
//		if err := errors.Recover(recover(), 0); err != nil {
//			...
//		}
//	}()
func Recover(recovered any, skip int) Error {
	if recovered == nil {
		return nil
	}
	return fromRecovered(recovered, skip+1)
}

func fromRecovered(recovered any, skip int) Error {
	if err, ok := recovered.(Error); ok {
		if err.GetStackTrace() == nil {
			err = err.FillStackTrace(skip + 1)
		}
		return err
	}
	err := fullError{
		String:     string(PanicError),
		Recovered:  recovered,
		StackTrace: StackTrace(skip + 1),
	}
	if cause, ok := recovered.(error); ok {
		err.Cause = []error{cause}
	}
	return err
}
