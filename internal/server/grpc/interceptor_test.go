package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/epicquest/internal/common"
	"github.com/dmitrijs2005/epicquest/internal/logging"
	"github.com/dmitrijs2005/epicquest/internal/server/auth"
	"github.com/dmitrijs2005/epicquest/internal/syncpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func incoming(token string) context.Context {
	return metadata.NewIncomingContext(context.Background(),
		metadata.Pairs(common.AccessTokenHeaderName, token))
}

func TestAccessTokenInterceptor(t *testing.T) {
	s := NewGRPCServer("", logging.Nop(), newFakeIdentity(), nil)

	valid, err := auth.GenerateToken("u-1", testSecret, time.Hour)
	require.NoError(t, err)
	expired, err := auth.GenerateToken("u-1", testSecret, -time.Minute)
	require.NoError(t, err)

	var gotUID string
	handler := func(ctx context.Context, req any) (any, error) {
		gotUID = userIDFromContext(ctx)
		return "ok", nil
	}

	tests := []struct {
		name     string
		ctx      context.Context
		method   string
		wantCode codes.Code
		wantUID  string
		wantMsg  string
	}{
		{"public method", context.Background(), syncpb.MethodSignIn, codes.OK, "", ""},
		{"missing token", context.Background(), syncpb.MethodSaveDocument, codes.Unauthenticated, "", "missing token"},
		{"expired token", incoming(expired), syncpb.MethodGetDocument, codes.Unauthenticated, "", "token expired"},
		{"bad token", incoming("junk"), syncpb.MethodGetDocument, codes.Unauthenticated, "", "invalid token"},
		{"valid token", incoming(valid), syncpb.MethodSaveDocument, codes.OK, "u-1", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gotUID = ""
			_, err := s.accessTokenInterceptor(tc.ctx, nil, &grpc.UnaryServerInfo{FullMethod: tc.method}, handler)
			assert.Equal(t, tc.wantCode, status.Code(err))
			assert.Equal(t, tc.wantUID, gotUID)
			if tc.wantMsg != "" {
				assert.Equal(t, tc.wantMsg, status.Convert(err).Message())
			}
		})
	}
}
