package errors

import "runtime"

type StackFrame struct {
	Function string
	File     string
	Line     int
}

type StackFrames []StackFrame

// StackTrace captures at most 32 frames of the current goroutine, starting at
// the caller of StackTrace when skip is 0.
func StackTrace(skip int) StackFrames {
	const depth = 32
	var programCounters [depth]uintptr
	programCountersLength := runtime.Callers(2+skip, programCounters[:])
	frames := runtime.CallersFrames(programCounters[:programCountersLength])
	// create stack frames
	stack := make(StackFrames, 0, programCountersLength)
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			stack = append(stack, StackFrame{
				Function: frame.Function,
				File:     frame.File,
				Line:     frame.Line,
			})
		}
		if !more {
			break
		}
	}
	return stack
}
