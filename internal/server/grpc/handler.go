package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/epicquest/internal/common"
	"github.com/dmitrijs2005/epicquest/internal/server/services"
	"github.com/dmitrijs2005/epicquest/internal/syncpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

func (s *GRPCServer) Ping(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) SignUp(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	email := stringField(req, syncpb.FieldEmail)
	id, err := s.identity.SignUp(ctx, email, stringField(req, syncpb.FieldPassword))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	s.logger.Info(ctx, "Account created", "uid", id.UID)
	return identityReply(id), nil
}

func (s *GRPCServer) SignIn(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := s.identity.SignIn(ctx, stringField(req, syncpb.FieldEmail), stringField(req, syncpb.FieldPassword))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return identityReply(id), nil
}

func (s *GRPCServer) SaveDocument(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	uid := userIDFromContext(ctx)
	collection := stringField(req, syncpb.FieldCollection)
	id := stringField(req, syncpb.FieldDocumentID)

	var data map[string]any
	if v := req.GetFields()[syncpb.FieldData].GetStructValue(); v != nil {
		data = v.AsMap()
	}

	if err := s.documents.Save(ctx, uid, collection, id, data); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	s.logger.Debug(ctx, "Document saved", "collection", collection, "id", id)
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) GetDocument(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	collection := stringField(req, syncpb.FieldCollection)
	id := stringField(req, syncpb.FieldDocumentID)

	data, err := s.documents.Get(ctx, userIDFromContext(ctx), collection, id)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	payload, err := structpb.NewStruct(data)
	if err != nil {
		s.logger.Error(ctx, "stored document is not representable", "collection", collection, "id", id, "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		syncpb.FieldData: structpb.NewStructValue(payload),
	}}, nil
}

func stringField(s *structpb.Struct, name string) string {
	return s.GetFields()[name].GetStringValue()
}

func identityReply(id *services.Identity) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		syncpb.FieldUID:     structpb.NewStringValue(id.UID),
		syncpb.FieldIDToken: structpb.NewStringValue(id.IDToken),
	}}
}

// toStatus maps service errors to gRPC codes. Unexpected errors are logged
// and reported as Internal without detail.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrForbidden):
		return status.Error(codes.PermissionDenied, "forbidden")
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	default:
		s.logger.Error(ctx, "request failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
