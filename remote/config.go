package remote

import "github.com/thanhminhmr/go-errchain/configuration"

type Config struct {
	MaxDepth    int  `env:"ERRCHAIN_MAX_DEPTH" validate:"min=0,max=4096"`
	StackTraces bool `env:"ERRCHAIN_STACK_TRACES"`
	MaxSize     int  `env:"ERRCHAIN_MAX_SIZE" validate:"min=0"`
}

func init() {
	configuration.SetDefault("ERRCHAIN_MAX_DEPTH", "0")
	configuration.SetDefault("ERRCHAIN_STACK_TRACES", "false")
	configuration.SetDefault("ERRCHAIN_MAX_SIZE", "0")
}
