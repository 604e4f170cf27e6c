package rpc_test

import (
	"context"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanhminhmr/go-errchain/errors"
	"github.com/thanhminhmr/go-errchain/interceptor"
	"github.com/thanhminhmr/go-errchain/remote"
	"github.com/thanhminhmr/go-errchain/rpc"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	errLookup  = errors.String("catalog lookup failed")
	errCorrupt = errors.String("index corrupted")
)

type failingHealth struct {
	healthpb.UnimplementedHealthServer
}

func (failingHealth) Check(context.Context, *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	return nil, errLookup.AddCause(errCorrupt)
}

func startServer(t *testing.T, options ...fx.Option) *rpc.Server {
	t.Helper()
	var server *rpc.Server
	app := fxtest.New(t, append([]fx.Option{
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		fx.Supply(&rpc.ServerConfig{ServiceName: "catalog"}),
		rpc.Module,
		rpc.Register(func(registrar grpc.ServiceRegistrar) {
			healthpb.RegisterHealthServer(registrar, failingHealth{})
		}),
		fx.Populate(&server),
	}, options...)...)
	app.RequireStart()
	t.Cleanup(app.RequireStop)
	require.NotNil(t, server.Addr())
	return server
}

func newClient(t *testing.T, server *rpc.Server) healthpb.HealthClient {
	t.Helper()
	target := fmt.Sprintf("passthrough:///127.0.0.1:%d", server.Addr().(*net.TCPAddr).Port)
	connection, err := grpc.NewClient(target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(interceptor.UnaryClientInterceptor()),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = connection.Close()
	})
	return healthpb.NewHealthClient(connection)
}

func TestServerSendsErrorChain(t *testing.T) {
	client := newClient(t, startServer(t))

	_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{})
	var wrapper *remote.Wrapper
	require.True(t, errors.As(err, &wrapper))
	assert.Equal(t, codes.Internal, wrapper.Code())
	assert.Equal(t, "remote call to catalog service failed: Internal error: catalog lookup failed", wrapper.Error())
	assert.True(t, errors.Is(err, errCorrupt))
}

func TestServerUsesEncoderConfig(t *testing.T) {
	client := newClient(t, startServer(t, fx.Supply(&remote.Config{MaxDepth: 1})))

	_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{})
	var wrapper *remote.Wrapper
	require.True(t, errors.As(err, &wrapper))
	var messages []string
	for node := range wrapper.SourceChain() {
		messages = append(messages, node.Error())
	}
	assert.Equal(t, []string{"catalog lookup failed"}, messages)
	assert.False(t, errors.Is(err, errCorrupt))
}

func TestServerStops(t *testing.T) {
	var server *rpc.Server
	app := fxtest.New(t,
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		fx.Supply(&rpc.ServerConfig{}),
		rpc.Module,
		fx.Populate(&server),
	)
	app.RequireStart()
	require.NotNil(t, server.Addr())
	app.RequireStop()
	assert.Nil(t, server.Addr())
}
