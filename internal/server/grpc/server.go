// Package grpc serves the CloudSync service: account sign-up and sign-in,
// and per-account document storage behind ID-token authentication.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/epicquest/internal/logging"
	"github.com/dmitrijs2005/epicquest/internal/server/services"
	"github.com/dmitrijs2005/epicquest/internal/syncpb"
	"google.golang.org/grpc"
)

type IdentityService interface {
	SignUp(ctx context.Context, email, password string) (*services.Identity, error)
	SignIn(ctx context.Context, email, password string) (*services.Identity, error)
	VerifyToken(token string) (string, error)
}

type DocumentService interface {
	Save(ctx context.Context, uid, collection, id string, data map[string]any) error
	Get(ctx context.Context, uid, collection, id string) (map[string]any, error)
}

type GRPCServer struct {
	address      string
	identity     IdentityService
	documents    DocumentService
	logger       logging.Logger
	interceptors []grpc.UnaryServerInterceptor
}

// NewGRPCServer builds a server listening on address. extra interceptors
// run before authentication, in the order given.
func NewGRPCServer(address string, l logging.Logger, is IdentityService, ds DocumentService, extra ...grpc.UnaryServerInterceptor) *GRPCServer {
	return &GRPCServer{
		address:      address,
		identity:     is,
		documents:    ds,
		logger:       l.With("module", "grpc_server"),
		interceptors: extra,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	chain := append([]grpc.UnaryServerInterceptor{}, s.interceptors...)
	chain = append(chain, s.loggingInterceptor, s.accessTokenInterceptor)

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(chain...))
	syncpb.RegisterCloudSyncServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())
	return srv.Serve(lis)
}
