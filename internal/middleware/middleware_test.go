package middleware

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	workflowv1 "github.com/ledgerly111/ledgerly111.github.io-sub000/api/workflow/v1"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
)

type staticUsers map[string]models.User

func (s staticUsers) User(id string) (models.User, bool) {
	u, ok := s[id]
	return u, ok
}

func TestValidationInterceptor(t *testing.T) {
	v := NewValidationInterceptor(nil)

	tests := []struct {
		name    string
		req     interface{}
		wantErr string
	}{
		{
			name: "valid create",
			req: &workflowv1.CreateTaskRequest{Spec: models.TaskSpec{
				Title: "Q4", GoalType: models.GoalTypeSales, GoalTarget: 100, ParticipantLimit: 2,
			}},
		},
		{
			name:    "create without title and target",
			req:     &workflowv1.CreateTaskRequest{Spec: models.TaskSpec{ParticipantLimit: 1}},
			wantErr: "title is required; goal_target must be positive",
		},
		{
			name:    "limit too large",
			req:     &workflowv1.CreateTaskRequest{Spec: models.TaskSpec{Title: "x", GoalTarget: 1, ParticipantLimit: 501}},
			wantErr: "participant_limit too large",
		},
		{name: "get without id", req: &workflowv1.GetTaskRequest{}, wantErr: "id is required"},
		{name: "join without task", req: &workflowv1.JoinTaskRequest{}, wantErr: "task_id is required"},
		{name: "assign without branch", req: &workflowv1.AssignBranchRequest{TaskID: 1}, wantErr: "branch_id is required"},
		{name: "bad status filter", req: &workflowv1.ListTasksRequest{Status: "done"}, wantErr: "invalid status filter"},
		{
			name:    "sale with bad item",
			req:     &workflowv1.RecordSaleRequest{Sale: models.Sale{SalesPersonID: "u1", Items: []models.SaleItem{{ProductID: "p1"}}}},
			wantErr: "items[0]: quantity must be positive",
		},
		{
			name:    "stock request with unknown category",
			req:     &workflowv1.CreateStockRequestRequest{Request: models.StockRequest{WorkerID: "w", ProductID: "p", RequestedStock: 1, Category: "urgent"}},
			wantErr: `invalid category "urgent"`,
		},
		{name: "approval without action", req: &workflowv1.ApprovalActionRequest{MessageID: "m"}, wantErr: "action is required"},
		{name: "unknown request type passes", req: "anything"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				called = true
				return "ok", nil
			}
			_, err := v.Unary()(context.Background(), tt.req, &grpc.UnaryServerInfo{FullMethod: "/test"}, handler)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.True(t, called)
				return
			}
			require.Error(t, err)
			assert.Equal(t, codes.InvalidArgument, status.Code(err))
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.False(t, called)
		})
	}
}

func TestIdentityInterceptor(t *testing.T) {
	users := staticUsers{"u1": {ID: "u1", Name: "Uma", Role: models.RoleWorker}}
	interceptor := NewIdentityInterceptor(users).Unary()

	tests := []struct {
		name     string
		method   string
		md       metadata.MD
		wantCode codes.Code
		wantUser string
	}{
		{
			name:     "known caller",
			method:   workflowv1.WorkflowService_JoinTask_FullMethodName,
			md:       metadata.Pairs(UserIDHeader, "u1"),
			wantUser: "u1",
		},
		{
			name:     "missing header",
			method:   workflowv1.WorkflowService_JoinTask_FullMethodName,
			md:       metadata.Pairs("other", "x"),
			wantCode: codes.Unauthenticated,
		},
		{
			name:     "unknown caller",
			method:   workflowv1.WorkflowService_JoinTask_FullMethodName,
			md:       metadata.Pairs(UserIDHeader, "ghost"),
			wantCode: codes.Unauthenticated,
		},
		{
			name:     "recording a sale requires a caller",
			method:   workflowv1.WorkflowService_RecordSale_FullMethodName,
			wantCode: codes.Unauthenticated,
		},
		{
			name:   "public method without caller",
			method: workflowv1.WorkflowService_GetTask_FullMethodName,
		},
		{
			name:     "public method keeps a known caller",
			method:   workflowv1.WorkflowService_Leaderboard_FullMethodName,
			md:       metadata.Pairs(UserIDHeader, "u1"),
			wantUser: "u1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.md != nil {
				ctx = metadata.NewIncomingContext(ctx, tt.md)
			}

			var gotUser string
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				gotUser, _ = GetUserIDFromContext(ctx)
				return nil, nil
			}
			_, err := interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: tt.method}, handler)
			if tt.wantCode != codes.OK {
				assert.Equal(t, tt.wantCode, status.Code(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, gotUser)
		})
	}
}

func TestMetadataExtractorInterceptor(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("user-agent", "ledgerly-cli/1.0"))

	var gotUA string
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		gotUA = GetUserAgentFromContext(ctx)
		return nil, nil
	}
	_, err := NewMetadataExtractorInterceptor().Unary()(ctx, nil, &grpc.UnaryServerInfo{}, handler)
	require.NoError(t, err)
	assert.Equal(t, "ledgerly-cli/1.0", gotUA)
}

func TestLoggingInterceptor_PassesThrough(t *testing.T) {
	interceptor := NewLoggingInterceptor(zerolog.Nop()).Unary()
	wantErr := status.Error(codes.NotFound, "task not found")

	resp, err := interceptor(WithUserID(context.Background(), "u1"), nil, &grpc.UnaryServerInfo{FullMethod: "/x"},
		func(ctx context.Context, req interface{}) (interface{}, error) { return "resp", wantErr })
	assert.Equal(t, "resp", resp)
	assert.Equal(t, wantErr, err)
}
