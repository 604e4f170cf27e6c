package errors_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thanhminhmr/go-errchain/errors"
)

func TestStackTrace(t *testing.T) {
	trace := errors.StackTrace(0)
	require.NotEmpty(t, trace)
	for _, frame := range trace {
		require.NotEmpty(t, frame.Function, "frame %+v", frame)
		require.NotEmpty(t, frame.File, "frame %+v", frame)
		require.NotZero(t, frame.Line, "frame %+v", frame)
	}
	require.True(t, strings.HasSuffix(trace[0].Function, "/errors_test.TestStackTrace"),
		"expected first function is this function, got %+v", trace[0])
}

func TestFillStackTrace(t *testing.T) {
	err := errors.String("boom").FillStackTrace(0)
	require.Equal(t, "boom", err.Error())
	require.NotEmpty(t, err.GetStackTrace())
	require.True(t, strings.HasSuffix(err.GetStackTrace()[0].Function, "/errors_test.TestFillStackTrace"))
}
