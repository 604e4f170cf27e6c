package log

import (
	"fmt"
	"reflect"
	"runtime"

	"github.com/rs/zerolog"
)

// Func describes a function value by its name and definition site.
func Func(v any) fmt.Stringer {
	return funcName{v: v}
}

// Funcs is Func for a slice of function values.
func Funcs[S ~[]E, E any](v S) zerolog.LogArrayMarshaler {
	return funcNames[S, E]{v: v}
}

type funcName struct {
	v any
}

func (f funcName) String() string {
	if f.v == nil {
		return "<nil>"
	}
	v := reflect.ValueOf(f.v)
	if v.Kind() != reflect.Func {
		return "<unknown>"
	}
	if v.IsNil() {
		return "<nil>"
	}
	function := runtime.FuncForPC(v.Pointer())
	if function == nil {
		return "<unknown>"
	}
	file, line := function.FileLine(function.Entry())
	return fmt.Sprintf("%s() at %s:%d", function.Name(), file, line)
}

type funcNames[S ~[]E, E any] struct {
	v S
}

func (f funcNames[S, E]) MarshalZerologArray(array *zerolog.Array) {
	for _, v := range f.v {
		array.Str(funcName{v: v}.String())
	}
}
