package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/epicquest/internal/common"
	"github.com/dmitrijs2005/epicquest/internal/syncpb"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const callTimeout = 12 * time.Second

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      syncpb.CloudSyncClient

	mu      sync.RWMutex
	uid     string
	idToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	md.Set(common.AccessTokenHeaderName, token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	s.mu.RLock()
	token := s.idToken
	s.mu.RUnlock()

	if token != "" {
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient dials endpointURL lazily; no traffic is sent until the
// first call.
func NewGRPCClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	conn, err := grpc.NewClient(endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor))
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = syncpb.NewCloudSyncClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func credentials(email string, password []byte) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		syncpb.FieldEmail:    email,
		syncpb.FieldPassword: string(password),
	})
}

func (s *GRPCClient) signIn(ctx context.Context, method func(context.Context, *structpb.Struct, ...grpc.CallOption) (*structpb.Struct, error), email string, password []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	req, err := credentials(email, password)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := method(ctx, req)
	if err != nil {
		return "", s.mapError(err)
	}

	fields := resp.GetFields()
	uid := fields[syncpb.FieldUID].GetStringValue()
	token := fields[syncpb.FieldIDToken].GetStringValue()
	if uid == "" || token == "" {
		return "", fmt.Errorf("malformed sign-in response")
	}

	s.mu.Lock()
	s.uid, s.idToken = uid, token
	s.mu.Unlock()
	return uid, nil
}

func (s *GRPCClient) SignUp(ctx context.Context, email string, password []byte) (string, error) {
	return s.signIn(ctx, s.client.SignUp, email, password)
}

func (s *GRPCClient) SignIn(ctx context.Context, email string, password []byte) (string, error) {
	return s.signIn(ctx, s.client.SignIn, email, password)
}

// SignOut forgets the ID token. Tokens are stateless, so nothing is sent.
func (s *GRPCClient) SignOut(_ context.Context) error {
	s.mu.Lock()
	s.uid, s.idToken = "", ""
	s.mu.Unlock()
	return nil
}

func (s *GRPCClient) CurrentUser() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.uid
}

func (s *GRPCClient) SaveDocument(ctx context.Context, collection, id string, data map[string]any) error {
	if s.CurrentUser() == "" {
		return ErrNotSignedIn
	}

	payload, err := structpb.NewStruct(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		syncpb.FieldCollection: structpb.NewStringValue(collection),
		syncpb.FieldDocumentID: structpb.NewStringValue(id),
		syncpb.FieldData:       structpb.NewStructValue(payload),
	}}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	if _, err := s.client.SaveDocument(ctx, req); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) GetDocument(ctx context.Context, collection, id string) (map[string]any, error) {
	if s.CurrentUser() == "" {
		return nil, ErrNotSignedIn
	}

	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		syncpb.FieldCollection: structpb.NewStringValue(collection),
		syncpb.FieldDocumentID: structpb.NewStringValue(id),
	}}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := s.client.GetDocument(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	data := resp.GetFields()[syncpb.FieldData].GetStructValue()
	if data == nil {
		return nil, ErrNotFound
	}
	return data.AsMap(), nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if _, err := s.client.Ping(ctx, &emptypb.Empty{}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.NotFound:
		return ErrNotFound
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidInput, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
