package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/epicquest/internal/common"
	"github.com/dmitrijs2005/epicquest/internal/logging"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestToStatus(t *testing.T) {
	s := NewGRPCServer("", logging.Nop(), nil, nil)

	tests := []struct {
		err  error
		want codes.Code
	}{
		{fmt.Errorf("%w: email format is invalid", common.ErrValidation), codes.InvalidArgument},
		{common.ErrAlreadyExists, codes.AlreadyExists},
		{common.ErrorUnauthorized, codes.Unauthenticated},
		{common.ErrTokenExpired, codes.Unauthenticated},
		{common.ErrForbidden, codes.PermissionDenied},
		{fmt.Errorf("get: %w", common.ErrorNotFound), codes.NotFound},
		{errors.New("connection reset"), codes.Internal},
	}
	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.want, status.Code(s.toStatus(context.Background(), tc.err)))
		})
	}

	st := status.Convert(s.toStatus(context.Background(), errors.New("pq: password=hunter2")))
	assert.NotContains(t, st.Message(), "hunter2")
}
