// Package syncpb defines the CloudSync gRPC service shared by the client and
// the server. Messages are protobuf well-known types: requests and replies
// carrying fields travel as google.protobuf.Struct, empty ones as
// google.protobuf.Empty. Field names are listed below.
package syncpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "epicquest.sync.v1.CloudSync"

const (
	MethodPing         = "/" + ServiceName + "/Ping"
	MethodSignUp       = "/" + ServiceName + "/SignUp"
	MethodSignIn       = "/" + ServiceName + "/SignIn"
	MethodSaveDocument = "/" + ServiceName + "/SaveDocument"
	MethodGetDocument  = "/" + ServiceName + "/GetDocument"
)

// Struct field names.
const (
	FieldEmail      = "email"
	FieldPassword   = "password"
	FieldUID        = "uid"
	FieldIDToken    = "id_token"
	FieldCollection = "collection"
	FieldDocumentID = "document_id"
	FieldData       = "data"
)

type CloudSyncServer interface {
	Ping(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	// SignUp takes {email, password} and returns {uid, id_token}.
	SignUp(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// SignIn takes {email, password} and returns {uid, id_token}.
	SignIn(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// SaveDocument takes {collection, document_id, data}.
	SaveDocument(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	// GetDocument takes {collection, document_id} and returns {data}.
	GetDocument(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type CloudSyncClient interface {
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error)
	SignUp(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SignIn(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SaveDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	GetDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type cloudSyncClient struct {
	cc grpc.ClientConnInterface
}

func NewCloudSyncClient(cc grpc.ClientConnInterface) CloudSyncClient {
	return &cloudSyncClient{cc: cc}
}

func (c *cloudSyncClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, MethodPing, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cloudSyncClient) SignUp(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodSignUp, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cloudSyncClient) SignIn(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodSignIn, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cloudSyncClient) SaveDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, MethodSaveDocument, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cloudSyncClient) GetDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodGetDocument, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterCloudSyncServer attaches srv to s.
func RegisterCloudSyncServer(s grpc.ServiceRegistrar, srv CloudSyncServer) {
	s.RegisterService(&CloudSyncServiceDesc, srv)
}

var CloudSyncServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CloudSyncServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Ping",
			Handler: unary(MethodPing, func(s CloudSyncServer, ctx context.Context, in *emptypb.Empty) (any, error) {
				return s.Ping(ctx, in)
			}),
		},
		{
			MethodName: "SignUp",
			Handler: unary(MethodSignUp, func(s CloudSyncServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.SignUp(ctx, in)
			}),
		},
		{
			MethodName: "SignIn",
			Handler: unary(MethodSignIn, func(s CloudSyncServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.SignIn(ctx, in)
			}),
		},
		{
			MethodName: "SaveDocument",
			Handler: unary(MethodSaveDocument, func(s CloudSyncServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.SaveDocument(ctx, in)
			}),
		},
		{
			MethodName: "GetDocument",
			Handler: unary(MethodGetDocument, func(s CloudSyncServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.GetDocument(ctx, in)
			}),
		},
	},
	Streams: []grpc.StreamDesc{},
}

// unary adapts a typed method to grpc.MethodHandler, running it through the
// server's interceptor chain when one is installed.
func unary[Req any, PReq interface{ *Req }](
	fullMethod string,
	call func(CloudSyncServer, context.Context, PReq) (any, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := PReq(new(Req))
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CloudSyncServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CloudSyncServer), ctx, req.(PReq))
		}
		return interceptor(ctx, in, info, handler)
	}
}
