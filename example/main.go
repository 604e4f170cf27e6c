// Command example runs a "catalog" gRPC service whose health check fails with
// a chained error, calls it once, logs what the client sees, and exits.
package main

import (
	"context"
	"fmt"
	"net"

	"github.com/thanhminhmr/go-errchain/configuration"
	"github.com/thanhminhmr/go-errchain/errors"
	"github.com/thanhminhmr/go-errchain/interceptor"
	"github.com/thanhminhmr/go-errchain/log"
	"github.com/thanhminhmr/go-errchain/remote"
	"github.com/thanhminhmr/go-errchain/rpc"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	errLookup  = errors.String("catalog lookup failed")
	errSegment = errors.Template("read segment %d")
	errCorrupt = errors.String("index corrupted")
)

func init() {
	configuration.SetDefault("GRPC_SERVER_PORT", "0")
	configuration.SetDefault("GRPC_SERVER_SERVICE_NAME", "catalog")
}

type catalogHealth struct {
	healthpb.UnimplementedHealthServer
}

func (catalogHealth) Check(ctx context.Context, request *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	zerolog.Ctx(ctx).Info().Str("service", request.GetService()).Msg("Checking")
	return nil, errLookup.AddCause(errSegment.Format(7).AddCause(errCorrupt))
}

func registerCatalog(registrar grpc.ServiceRegistrar) {
	healthpb.RegisterHealthServer(registrar, catalogHealth{})
}

func newRegistry() (*prometheus.Registry, error) {
	registry := prometheus.NewRegistry()
	for _, collector := range remote.Collectors() {
		if err := registry.Register(collector); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func runClient(
	ctx context.Context,
	lifecycle fx.Lifecycle,
	shutdowner fx.Shutdowner,
	server *rpc.Server,
	registry *prometheus.Registry,
) {
	lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go call(ctx, shutdowner, server, registry)
			return nil
		},
	})
}

func call(ctx context.Context, shutdowner fx.Shutdowner, server *rpc.Server, registry *prometheus.Registry) {
	logger := zerolog.Ctx(ctx)
	defer func() {
		if err := shutdowner.Shutdown(); err != nil {
			logger.Error().Err(err).Msg("Failed to send shutdown signal")
		}
	}()
	target := fmt.Sprintf("passthrough:///127.0.0.1:%d", server.Addr().(*net.TCPAddr).Port)
	connection, err := grpc.NewClient(target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(interceptor.UnaryClientInterceptor()),
	)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create client")
		return
	}
	defer func() {
		if err := connection.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close client")
		}
	}()
	_, err = healthpb.NewHealthClient(connection).Check(ctx, &healthpb.HealthCheckRequest{Service: "books"})
	var wrapper *remote.Wrapper
	if !errors.As(err, &wrapper) {
		logger.Error().Err(err).Msg("Unexpected result")
		return
	}
	logger.Info().Str("error", wrapper.Error()).Msg("Call failed")
	for cause := range wrapper.SourceChain() {
		logger.Info().Str("cause", cause.Error()).Msg("Caused by")
	}
	logger.Info().Bool("corrupted", errors.Is(err, errCorrupt)).Msg("Matched sentinel")
	// dump counters
	families, err := registry.Gather()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to gather metrics")
		return
	}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			logger.Info().
				Str("name", family.GetName()).
				Str("result", metric.GetLabel()[0].GetValue()).
				Float64("value", metric.GetCounter().GetValue()).
				Msg("Metric")
		}
	}
}

func main() {
	fx.New(
		fx.WithLogger(log.InitFxLogger),
		fx.Provide(
			configuration.Loader(&log.Config{}),
			configuration.Loader(&rpc.ServerConfig{}),
			configuration.Loader(&remote.Config{}),
			log.ConsoleLogger,
			newRegistry,
		),
		rpc.Module,
		rpc.Register(registerCatalog),
		fx.Invoke(runClient),
	).Run()
}
