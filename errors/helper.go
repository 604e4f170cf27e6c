package errors

// is reports equality by message: two in-house errors with the same text are
// the same error, wherever they were created.
func is(source Error, target error) bool {
	if err, ok := target.(Error); ok {
		return source.Error() == err.Error()
	}
	return false
}

func as(source Error, target any) bool {
	if err, ok := target.(*Error); ok && *err != nil {
		if source.Error() == (*err).Error() {
			*err = source
			return true
		}
	}
	return false
}

// ========================================

func combine(result *[]error, errors ...error) (changed bool) {
	// assert result != nil
	for _, err := range errors {
		combineAdd(result, &changed, err)
	}
	return
}

func combineAdd(result *[]error, changed *bool, err error) {
	if err == nil {
		return
	}
	if multiple, ok := err.(multipleErrors); ok {
		for _, inner := range multiple {
			combineAdd(result, changed, inner)
		}
	} else {
		*result = append(*result, err)
		*changed = true
	}
}

// concat returns a new slice so that values sharing the old backing array
// are never modified.
func concat(base []error, errors ...error) []error {
	result := make([]error, len(base), len(base)+len(errors))
	copy(result, base)
	combine(&result, errors...)
	return result
}
