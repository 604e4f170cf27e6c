package log

import (
	"context"
	"os"

	"github.com/thanhminhmr/go-errchain/configuration"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	Level string `env:"LOG_LEVEL" validate:"oneof=trace debug info warn error"`
}

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixNano
	configuration.SetDefault("LOG_LEVEL", "info")
}

// ConsoleLogger creates a human-readable logger on stderr and the global
// context carrying it. The context is cancelled when the application stops.
func ConsoleLogger(lifecycle fx.Lifecycle, config *Config) (*zerolog.Logger, context.Context, error) {
	level, err := zerolog.ParseLevel(config.Level)
	if err != nil {
		return nil, nil, err
	}
	// create the logger
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "2006-01-02T15:04:05.000000000Z07:00",
	}).Level(level).With().Timestamp().Caller().Logger()
	// create the global context with lifecycle cancel binding and the logger
	ctx, cancel := context.WithCancel(logger.WithContext(context.Background()))
	lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return zerolog.Ctx(ctx), ctx, nil
}
