package errors

import (
	"errors"
	"iter"
)

const ErrUnsupported = String("unsupported operation")

func New(message string) error {
	return String(message)
}

func Join(errors ...error) error {
	return Errors(errors...)
}

func Unwrap(err error) error {
	return errors.Unwrap(err)
}

func Is(err error, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// Cause returns the direct cause of err, or nil if there is none.
//
// A single-cause error (Unwrap() error) yields its wrapped error. An error
// carrying a list of causes (Unwrap() []error) yields the first non-nil one,
// which is how errors built with AddCause form a linear chain.
func Cause(err error) error {
	switch e := err.(type) {
	case interface{ Unwrap() error }:
		return e.Unwrap()
	case interface{ Unwrap() []error }:
		for _, cause := range e.Unwrap() {
			if cause != nil {
				return cause
			}
		}
	}
	return nil
}

// Chain iterates over err and its causes, outermost first.
func Chain(err error) iter.Seq[error] {
	return func(yield func(error) bool) {
		for ; err != nil; err = Cause(err) {
			if !yield(err) {
				return
			}
		}
	}
}
