package errors_test

import (
	stderrors "errors"
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanhminhmr/go-errchain/errors"
)

const (
	errOuter = errors.String("outer")
	errInner = errors.String("inner")
)

func messages(err error) []string {
	var result []string
	for node := range errors.Chain(err) {
		result = append(result, node.Error())
	}
	return result
}

func TestStringAddCause(t *testing.T) {
	err := errOuter.AddCause(errInner)
	assert.Equal(t, "outer", err.Error())
	assert.Equal(t, []error{errInner}, err.GetCause())
	assert.True(t, errors.Is(err, errOuter))
	assert.True(t, errors.Is(err, errInner))

	// nothing to add keeps the plain string
	assert.Equal(t, errors.Error(errOuter), errOuter.AddCause(nil, nil))
}

func TestAddCauseDoesNotShareBacking(t *testing.T) {
	base := errOuter.AddCause(errInner)
	first := base.AddCause(errors.String("first"))
	second := base.AddCause(errors.String("second"))
	assert.Len(t, base.GetCause(), 1)
	assert.Equal(t, "first", first.GetCause()[1].Error())
	assert.Equal(t, "second", second.GetCause()[1].Error())
}

func TestChain(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{"nil", nil, nil},
		{"single", errOuter, []string{"outer"}},
		{"cause list", errOuter.AddCause(errInner.AddCause(errors.String("root"))), []string{"outer", "inner", "root"}},
		{"fmt wrap", fmt.Errorf("read config: %w", errInner), []string{"read config: inner", "inner"}},
		{"std join", stderrors.Join(errOuter, errInner), []string{"outer\ninner", "outer"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, messages(test.err))
		})
	}
}

func TestChainStopsEarly(t *testing.T) {
	err := errOuter.AddCause(errInner.AddCause(errors.String("root")))
	var seen []error
	for node := range errors.Chain(err) {
		seen = append(seen, node)
		if len(seen) == 2 {
			break
		}
	}
	require.Len(t, seen, 2)
}

func TestCause(t *testing.T) {
	assert.Nil(t, errors.Cause(errOuter))
	assert.Equal(t, errInner, errors.Cause(errOuter.AddCause(nil, errInner)))
	assert.Equal(t, errInner, errors.Cause(fmt.Errorf("wrap: %w", errInner)))
}

func TestErrors(t *testing.T) {
	assert.Nil(t, errors.Errors(nil, nil))
	assert.Equal(t, errors.Error(errOuter), errors.Errors(nil, errOuter))

	joined := errors.Errors(errOuter, errors.Errors(errInner, errors.New("plain")))
	assert.Equal(t, "outer; inner; plain", joined.Error())
	assert.Len(t, joined.GetCause(), 3)
	assert.True(t, slices.Contains(joined.GetCause(), error(errInner)))
}

func TestRecover(t *testing.T) {
	assert.Nil(t, errors.Recover(nil, 0))

	recovered := func() (err errors.Error) {
		defer func() {
			err = errors.Recover(recover(), 0)
		}()
		panic("boom")
	}()
	require.NotNil(t, recovered)
	assert.True(t, errors.Is(recovered, errors.PanicError))
	assert.Equal(t, "boom", recovered.GetRecovered())
	assert.NotEmpty(t, recovered.GetStackTrace())

	recovered = func() (err errors.Error) {
		defer func() {
			err = errors.Recover(recover(), 0)
		}()
		errors.Panic(errInner, 0)
		return nil
	}()
	require.NotNil(t, recovered)
	assert.Equal(t, "inner", recovered.Error())
	assert.NotEmpty(t, recovered.GetStackTrace())
}

func TestRecoverKeepsPanickedError(t *testing.T) {
	recovered := func() (err errors.Error) {
		defer func() {
			err = errors.Recover(recover(), 0)
		}()
		panic(fmt.Errorf("index: %w", errInner))
	}()
	require.NotNil(t, recovered)
	assert.Equal(t, []string{"panicked", "index: inner", "inner"}, messages(recovered))
}

func TestStringPromotion(t *testing.T) {
	assert.Equal(t, errors.Error(errOuter), errOuter.AddSuppressed(nil))
	assert.Equal(t, errors.Error(errOuter), errOuter.SetRecovered(nil))

	suppressed := errOuter.AddSuppressed(errInner)
	assert.Equal(t, "outer", suppressed.Error())
	assert.Equal(t, []error{errInner}, suppressed.GetSuppressed())
	assert.Empty(t, suppressed.GetCause())

	recovered := errOuter.SetRecovered("boom")
	assert.Equal(t, "outer", recovered.Error())
	assert.Equal(t, "boom", recovered.GetRecovered())
	assert.True(t, errors.Is(recovered, errOuter))
}
