package client

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/epicquest/internal/common"
	"github.com/dmitrijs2005/epicquest/internal/syncpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

type fakeSync struct {
	lastSignUp *structpb.Struct
	lastSignIn *structpb.Struct
	lastSave   *structpb.Struct
	lastGet    *structpb.Struct

	signResp *structpb.Struct
	signErr  error
	saveErr  error
	getResp  *structpb.Struct
	getErr   error
	pingErr  error
}

func (f *fakeSync) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return &emptypb.Empty{}, f.pingErr
}

func (f *fakeSync) SignUp(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	f.lastSignUp = in
	return f.signResp, f.signErr
}

func (f *fakeSync) SignIn(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	f.lastSignIn = in
	return f.signResp, f.signErr
}

func (f *fakeSync) SaveDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	f.lastSave = in
	return &emptypb.Empty{}, f.saveErr
}

func (f *fakeSync) GetDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	f.lastGet = in
	return f.getResp, f.getErr
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func newFakeClient(f *fakeSync) *GRPCClient {
	return &GRPCClient{client: f}
}

func TestGRPCClient_SignInStoresToken(t *testing.T) {
	f := &fakeSync{}
	f.signResp = mustStruct(t, map[string]any{syncpb.FieldUID: "u-1", syncpb.FieldIDToken: "tok"})
	c := newFakeClient(f)

	uid, err := c.SignIn(context.Background(), "a@x.io", []byte("secret1"))
	require.NoError(t, err)
	assert.Equal(t, "u-1", uid)
	assert.Equal(t, "u-1", c.CurrentUser())
	assert.Equal(t, "a@x.io", f.lastSignIn.GetFields()[syncpb.FieldEmail].GetStringValue())
	assert.Equal(t, "secret1", f.lastSignIn.GetFields()[syncpb.FieldPassword].GetStringValue())

	require.NoError(t, c.SignOut(context.Background()))
	assert.Empty(t, c.CurrentUser())
}

func TestGRPCClient_SignUpMalformedResponse(t *testing.T) {
	f := &fakeSync{signResp: mustStruct(t, map[string]any{syncpb.FieldUID: "u-1"})}
	c := newFakeClient(f)

	_, err := c.SignUp(context.Background(), "a@x.io", []byte("secret1"))
	require.Error(t, err)
	assert.Empty(t, c.CurrentUser())
	assert.NotNil(t, f.lastSignUp)
}

func TestGRPCClient_DocumentsRequireSignIn(t *testing.T) {
	c := newFakeClient(&fakeSync{})

	require.ErrorIs(t, c.SaveDocument(context.Background(), "users", "u-1", map[string]any{"a": 1}), ErrNotSignedIn)
	_, err := c.GetDocument(context.Background(), "users", "u-1")
	require.ErrorIs(t, err, ErrNotSignedIn)
}

func TestGRPCClient_SaveAndGetDocument(t *testing.T) {
	f := &fakeSync{}
	c := newFakeClient(f)
	c.uid, c.idToken = "u-1", "tok"

	doc := map[string]any{"username": "alice", "cards": []any{"70", "644"}}
	require.NoError(t, c.SaveDocument(context.Background(), "users", "u-1", doc))

	fields := f.lastSave.GetFields()
	assert.Equal(t, "users", fields[syncpb.FieldCollection].GetStringValue())
	assert.Equal(t, "u-1", fields[syncpb.FieldDocumentID].GetStringValue())
	assert.Equal(t, doc, fields[syncpb.FieldData].GetStructValue().AsMap())

	f.getResp = &structpb.Struct{Fields: map[string]*structpb.Value{
		syncpb.FieldData: structpb.NewStructValue(mustStruct(t, doc)),
	}}
	got, err := c.GetDocument(context.Background(), "users", "u-1")
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	f.getResp = &structpb.Struct{}
	_, err = c.GetDocument(context.Background(), "users", "u-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGRPCClient_SaveRejectsUnsupportedValues(t *testing.T) {
	c := newFakeClient(&fakeSync{})
	c.uid = "u-1"

	err := c.SaveDocument(context.Background(), "users", "u-1", map[string]any{"ch": make(chan int)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGRPCClient_MapError(t *testing.T) {
	c := &GRPCClient{}
	tests := []struct {
		code codes.Code
		want error
	}{
		{codes.Unauthenticated, ErrUnauthorized},
		{codes.PermissionDenied, ErrUnauthorized},
		{codes.Unavailable, ErrUnavailable},
		{codes.DeadlineExceeded, ErrUnavailable},
		{codes.AlreadyExists, ErrAlreadyExists},
		{codes.NotFound, ErrNotFound},
		{codes.InvalidArgument, ErrInvalidInput},
	}
	for _, tc := range tests {
		t.Run(tc.code.String(), func(t *testing.T) {
			assert.ErrorIs(t, c.mapError(status.Error(tc.code, "x")), tc.want)
		})
	}

	other := c.mapError(status.Error(codes.Internal, "boom"))
	assert.ErrorContains(t, other, "rpc error")
	assert.Nil(t, c.mapError(nil))

	plain := errors.New("plain")
	assert.ErrorIs(t, c.mapError(plain), plain)
}

func TestGRPCClient_PingMapsErrors(t *testing.T) {
	c := newFakeClient(&fakeSync{pingErr: status.Error(codes.Unavailable, "down")})
	assert.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)

	c = newFakeClient(&fakeSync{})
	assert.NoError(t, c.Ping(context.Background()))
}

func TestAccessTokenInterceptor(t *testing.T) {
	c := &GRPCClient{idToken: "tok"}

	var got metadata.MD
	invoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		got, _ = metadata.FromOutgoingContext(ctx)
		return nil
	}

	ctx := metadata.AppendToOutgoingContext(context.Background(), "x-trace", "1")
	require.NoError(t, c.accessTokenInterceptor(ctx, syncpb.MethodSaveDocument, nil, nil, nil, invoker))
	assert.Equal(t, []string{"tok"}, got.Get(common.AccessTokenHeaderName))
	assert.Equal(t, []string{"1"}, got.Get("x-trace"))

	c.idToken = ""
	require.NoError(t, c.accessTokenInterceptor(context.Background(), syncpb.MethodPing, nil, nil, nil, invoker))
	assert.Empty(t, got.Get(common.AccessTokenHeaderName))
}
