package rpc

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net"
	"sync/atomic"
	"time"

	"github.com/thanhminhmr/go-errchain/errors"
	"github.com/thanhminhmr/go-errchain/interceptor"
	"github.com/thanhminhmr/go-errchain/log"
	"github.com/thanhminhmr/go-errchain/remote"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

const errListen = errors.String("gRPC: Failed to listen")

// Registrar registers services on the server before it starts.
type Registrar func(grpc.ServiceRegistrar)

// Register adds a Registrar to the application.
func Register(registrar Registrar) fx.Option {
	return fx.Provide(fx.Annotated{
		Group:  "grpc_registrars",
		Target: func() Registrar { return registrar },
	})
}

// Module provides a started *Server. It needs a context.Context carrying the
// logger, a *ServerConfig and optionally a *remote.Config.
var Module = fx.Module("rpc",
	fx.Provide(NewServer),
	fx.Invoke(func(*Server) {}),
)

type ServerParams struct {
	fx.In

	Context    context.Context
	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Config     *ServerConfig
	Encoder    *remote.Config `optional:"true"`
	Registrars []Registrar    `group:"grpc_registrars"`
}

type Server struct {
	ctx        context.Context
	shutdown   fx.Shutdowner
	config     *ServerConfig
	server     *grpc.Server
	registrars []Registrar
	listener   atomic.Pointer[net.TCPListener]
	done       chan struct{}
}

// NewServer creates a gRPC server whose failures carry their error chain to
// the client, registers the services and binds it to the lifecycle.
func NewServer(params ServerParams) *Server {
	var encoder *remote.Encoder
	if params.Encoder != nil {
		encoder = remote.NewEncoder(params.Encoder)
	} else {
		encoder = &remote.Encoder{}
	}
	s := &Server{
		ctx:        params.Context,
		shutdown:   params.Shutdowner,
		config:     params.Config,
		registrars: params.Registrars,
		done:       make(chan struct{}),
	}
	s.server = grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			s.logUnary,
			interceptor.UnaryServerInterceptor(params.Config.ServiceName, interceptor.WithEncoder(encoder)),
		),
		grpc.ChainStreamInterceptor(
			s.logStream,
			interceptor.StreamServerInterceptor(params.Config.ServiceName, interceptor.WithEncoder(encoder)),
		),
	)
	for _, registrar := range params.Registrars {
		registrar(s.server)
	}
	params.Lifecycle.Append(fx.Hook{
		OnStart: s.onStart,
		OnStop:  s.onStop,
	})
	return s
}

// Addr returns the listening address, or nil if the server is not running.
func (s *Server) Addr() net.Addr {
	if listener := s.listener.Load(); listener != nil {
		return listener.Addr()
	}
	return nil
}

func (s *Server) onStart(context.Context) error {
	logger := zerolog.Ctx(s.ctx)
	// create listener
	listener, err := net.ListenTCP("tcp", &net.TCPAddr{Port: int(s.config.Port)})
	if err != nil {
		logger.Error().Err(err).Uint16("port", s.config.Port).Msg("Failed to listen")
		return errListen.AddCause(err)
	}
	s.listener.Store(listener)
	// dump registered services
	for name, info := range s.server.GetServiceInfo() {
		methods := make([]string, 0, len(info.Methods))
		for _, method := range info.Methods {
			methods = append(methods, method.Name)
		}
		logger.Info().Strs("methods", methods).Msgf("Service: %s", name)
	}
	logger.Info().
		Stringer("addr", listener.Addr()).
		Str("service_name", s.config.ServiceName).
		Array("registrars", log.Funcs(s.registrars)).
		Msg("Start serving")
	go s.serve(listener)
	return nil
}

func (s *Server) serve(listener *net.TCPListener) {
	defer close(s.done)
	logger := zerolog.Ctx(s.ctx)
	err := s.server.Serve(listener)
	// a listener taken by onStop means a requested stop
	if s.listener.Swap(nil) == nil {
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("Stop serving unexpectedly")
	}
	if s.config.ShutdownOnError {
		if err := s.shutdown.Shutdown(fx.ExitCode(1)); err != nil {
			logger.Error().Err(err).Msg("Failed to send shutdown signal")
		}
	}
}

func (s *Server) onStop(ctx context.Context) error {
	if s.listener.Swap(nil) == nil {
		return nil
	}
	zerolog.Ctx(s.ctx).Info().Uint16("port", s.config.Port).Msg("Stop serving")
	// waiting for calls to finish
	stopped := make(chan struct{})
	go func(stopped chan<- struct{}) {
		s.server.GracefulStop()
		close(stopped)
	}(stopped)
	// ... or timeout/cancel from global/local context
	select {
	case <-s.ctx.Done():
		s.server.Stop()
	case <-ctx.Done():
		s.server.Stop()
	case <-stopped:
	}
	<-s.done
	return nil
}

func (s *Server) callLogger(method string) zerolog.Logger {
	return zerolog.Ctx(s.ctx).With().
		Str("call_id", fmt.Sprintf("%016x", rand.Uint64())).
		Str("method", method).
		Logger()
}

func (s *Server) logUnary(ctx context.Context, request any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	logger := s.callLogger(info.FullMethod)
	logger.Trace().Msg("Start handling call")
	start := time.Now()
	response, err := handler(logger.WithContext(ctx), request)
	logger.Trace().Stringer("code", status.Code(err)).Dur("duration", time.Since(start)).Msg("Finish handling call")
	return response, err
}

func (s *Server) logStream(service any, stream grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	logger := s.callLogger(info.FullMethod)
	logger.Trace().Msg("Start handling call")
	start := time.Now()
	err := handler(service, &loggedServerStream{
		ServerStream: stream,
		ctx:          logger.WithContext(stream.Context()),
	})
	logger.Trace().Stringer("code", status.Code(err)).Dur("duration", time.Since(start)).Msg("Finish handling call")
	return err
}

// loggedServerStream carries the call logger in its context.
type loggedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *loggedServerStream) Context() context.Context {
	return s.ctx
}
