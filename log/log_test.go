package log_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanhminhmr/go-errchain/errors"
	"github.com/thanhminhmr/go-errchain/log"
	"go.uber.org/fx/fxevent"
	"go.uber.org/fx/fxtest"
)

func namedFunction() {}

func TestFunc(t *testing.T) {
	var nilFunction func()
	assert.Contains(t, log.Func(namedFunction).String(), "/log_test.namedFunction() at ")
	assert.Equal(t, "<nil>", log.Func(nil).String())
	assert.Equal(t, "<nil>", log.Func(nilFunction).String())
	assert.Equal(t, "<unknown>", log.Func(42).String())
}

func TestFuncs(t *testing.T) {
	var buffer bytes.Buffer
	logger := zerolog.New(&buffer)
	logger.Info().Array("functions", log.Funcs([]func(){namedFunction, nil})).Msg("")
	assert.Contains(t, buffer.String(), "namedFunction")
	assert.Contains(t, buffer.String(), "<nil>")
}

func TestFxLogger(t *testing.T) {
	var buffer bytes.Buffer
	logger := zerolog.New(&buffer)
	fxLogger := log.InitFxLogger(&logger)

	fxLogger.LogEvent(&fxevent.Provided{ConstructorName: "newCatalog", Err: errors.String("boom")})
	assert.Contains(t, buffer.String(), `"level":"error"`)
	assert.Contains(t, buffer.String(), "Provided failed")
	assert.Contains(t, buffer.String(), "boom")

	buffer.Reset()
	fxLogger.LogEvent(&fxevent.Started{})
	assert.Contains(t, buffer.String(), `"level":"info"`)
	assert.Contains(t, buffer.String(), `"message":"Started"`)
}

func TestConsoleLogger(t *testing.T) {
	lifecycle := fxtest.NewLifecycle(t)
	logger, ctx, err := log.ConsoleLogger(lifecycle, &log.Config{Level: "debug"})
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
	assert.Same(t, logger, zerolog.Ctx(ctx))

	lifecycle.RequireStart()
	require.NoError(t, ctx.Err())
	lifecycle.RequireStop()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestConsoleLoggerInvalidLevel(t *testing.T) {
	_, _, err := log.ConsoleLogger(fxtest.NewLifecycle(t), &log.Config{Level: "loud"})
	require.Error(t, err)
}
