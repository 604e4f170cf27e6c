package rpc

import "github.com/thanhminhmr/go-errchain/configuration"

type ServerConfig struct {
	// Port 0 picks a free port, see Server.Addr.
	Port            uint16 `env:"GRPC_SERVER_PORT"`
	ServiceName     string `env:"GRPC_SERVER_SERVICE_NAME" validate:"max=128"`
	ShutdownOnError bool   `env:"GRPC_SERVER_SHUTDOWN_ON_ERROR"`
}

func init() {
	configuration.SetDefault("GRPC_SERVER_PORT", "50051")
}
