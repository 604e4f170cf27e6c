package log

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/dig"
	"go.uber.org/fx/fxevent"
)

// fxLogger is an event logger that logs events to Zerolog.
type fxLogger struct {
	*zerolog.Logger
}

// InitFxLogger returns an fx event logger writing to logger.
func InitFxLogger(logger *zerolog.Logger) fxevent.Logger {
	return fxLogger{Logger: logger}
}

type moduleName string

func (m moduleName) MarshalZerologObject(event *zerolog.Event) {
	if m != "" {
		event.Str("module", string(m))
	}
}

// LogEvent logs the given event. Failures are logged as errors with the root
// cause, lifecycle hooks at trace level, everything else at info level.
func (l fxLogger) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuting:
		l.hookExecuting("OnStart", e.FunctionName, e.CallerName)
	case *fxevent.OnStartExecuted:
		l.hookExecuted("OnStart", e.FunctionName, e.CallerName, e.Runtime, e.Err)
	case *fxevent.OnStopExecuting:
		l.hookExecuting("OnStop", e.FunctionName, e.CallerName)
	case *fxevent.OnStopExecuted:
		l.hookExecuted("OnStop", e.FunctionName, e.CallerName, e.Runtime, e.Err)
	case *fxevent.Supplied:
		l.outcome(e.Err).Str("type", e.TypeName).EmbedObject(moduleName(e.ModuleName)).Msg(message(e.Err, "Supplied"))
	case *fxevent.Provided:
		l.outcome(e.Err).
			Str("constructor", e.ConstructorName).
			Strs("types", e.OutputTypeNames).
			Bool("private", e.Private).
			EmbedObject(moduleName(e.ModuleName)).
			Msg(message(e.Err, "Provided"))
	case *fxevent.Replaced:
		l.outcome(e.Err).Strs("types", e.OutputTypeNames).EmbedObject(moduleName(e.ModuleName)).Msg(message(e.Err, "Replaced"))
	case *fxevent.Decorated:
		l.outcome(e.Err).
			Str("decorator", e.DecoratorName).
			Strs("types", e.OutputTypeNames).
			EmbedObject(moduleName(e.ModuleName)).
			Msg(message(e.Err, "Decorated"))
	case *fxevent.Invoking:
		// Do not log stack as it will make logs hard to read.
		l.Debug().Str("function", e.FunctionName).EmbedObject(moduleName(e.ModuleName)).Msg("Invoking")
	case *fxevent.Invoked:
		if e.Err != nil {
			l.Error().
				Str("function", e.FunctionName).
				EmbedObject(moduleName(e.ModuleName)).
				Err(dig.RootCause(e.Err)).
				Str("stack", e.Trace).
				Msg("Invoke failed")
		}
	case *fxevent.Stopping:
		l.Info().Stringer("signal", e.Signal).Msg("Received signal")
	case *fxevent.Stopped:
		l.outcome(e.Err).Msg(message(e.Err, "Stopped"))
	case *fxevent.RollingBack:
		l.Error().Err(e.StartErr).Msg("Start failed, rolling back")
	case *fxevent.RolledBack:
		if e.Err != nil {
			l.Error().Err(dig.RootCause(e.Err)).Msg("Rollback failed")
		}
	case *fxevent.Started:
		l.outcome(e.Err).Msg(message(e.Err, "Started"))
	case *fxevent.LoggerInitialized:
		l.outcome(e.Err).Str("function", e.ConstructorName).Msg(message(e.Err, "Initialized logger"))
	default:
		l.Trace().Str("event", fmt.Sprintf("%T", event)).Msg("Event")
	}
}

func (l fxLogger) hookExecuting(hook string, callee string, caller string) {
	l.Trace().Str("callee", callee).Str("caller", caller).Msgf("%s hook executing", hook)
}

func (l fxLogger) hookExecuted(hook string, callee string, caller string, runtime time.Duration, err error) {
	if err != nil {
		l.Error().Str("callee", callee).Str("caller", caller).Err(dig.RootCause(err)).Msgf("%s hook failed", hook)
		return
	}
	l.Trace().Str("callee", callee).Str("caller", caller).Dur("runtime", runtime).Msgf("%s hook executed", hook)
}

// outcome starts an error event with the root cause of err, or an info event.
func (l fxLogger) outcome(err error) *zerolog.Event {
	if err != nil {
		return l.Error().Err(dig.RootCause(err))
	}
	return l.Info()
}

func message(err error, success string) string {
	if err != nil {
		return success + " failed"
	}
	return success
}
