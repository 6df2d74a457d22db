package workflowv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

// WorkflowServiceClient is the client API for the workflow service.
type WorkflowServiceClient interface {
	CreateTask(ctx context.Context, in *CreateTaskRequest, opts ...grpc.CallOption) (*TaskResponse, error)
	EditTask(ctx context.Context, in *EditTaskRequest, opts ...grpc.CallOption) (*TaskResponse, error)
	DeleteTask(ctx context.Context, in *DeleteTaskRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	GetTask(ctx context.Context, in *GetTaskRequest, opts ...grpc.CallOption) (*TaskResponse, error)
	ListTasks(ctx context.Context, in *ListTasksRequest, opts ...grpc.CallOption) (*ListTasksResponse, error)
	JoinTask(ctx context.Context, in *JoinTaskRequest, opts ...grpc.CallOption) (*TaskResponse, error)
	AssignBranch(ctx context.Context, in *AssignBranchRequest, opts ...grpc.CallOption) (*TaskResponse, error)
	RecordSale(ctx context.Context, in *RecordSaleRequest, opts ...grpc.CallOption) (*RecordSaleResponse, error)
	CreateStockRequest(ctx context.Context, in *CreateStockRequestRequest, opts ...grpc.CallOption) (*MessageResponse, error)
	ApprovalAction(ctx context.Context, in *ApprovalActionRequest, opts ...grpc.CallOption) (*MessageResponse, error)
	ListMessages(ctx context.Context, in *ListMessagesRequest, opts ...grpc.CallOption) (*ListMessagesResponse, error)
	MarkRead(ctx context.Context, in *MarkReadRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Leaderboard(ctx context.Context, in *LeaderboardRequest, opts ...grpc.CallOption) (*LeaderboardResponse, error)
}

type workflowServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewWorkflowServiceClient returns a client that speaks the JSON codec.
func NewWorkflowServiceClient(cc grpc.ClientConnInterface) WorkflowServiceClient {
	return &workflowServiceClient{cc}
}

func (c *workflowServiceClient) invoke(ctx context.Context, method string, in, out interface{}, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *workflowServiceClient) CreateTask(ctx context.Context, in *CreateTaskRequest, opts ...grpc.CallOption) (*TaskResponse, error) {
	out := new(TaskResponse)
	if err := c.invoke(ctx, WorkflowService_CreateTask_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *workflowServiceClient) EditTask(ctx context.Context, in *EditTaskRequest, opts ...grpc.CallOption) (*TaskResponse, error) {
	out := new(TaskResponse)
	if err := c.invoke(ctx, WorkflowService_EditTask_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *workflowServiceClient) DeleteTask(ctx context.Context, in *DeleteTaskRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.invoke(ctx, WorkflowService_DeleteTask_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *workflowServiceClient) GetTask(ctx context.Context, in *GetTaskRequest, opts ...grpc.CallOption) (*TaskResponse, error) {
	out := new(TaskResponse)
	if err := c.invoke(ctx, WorkflowService_GetTask_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *workflowServiceClient) ListTasks(ctx context.Context, in *ListTasksRequest, opts ...grpc.CallOption) (*ListTasksResponse, error) {
	out := new(ListTasksResponse)
	if err := c.invoke(ctx, WorkflowService_ListTasks_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *workflowServiceClient) JoinTask(ctx context.Context, in *JoinTaskRequest, opts ...grpc.CallOption) (*TaskResponse, error) {
	out := new(TaskResponse)
	if err := c.invoke(ctx, WorkflowService_JoinTask_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *workflowServiceClient) AssignBranch(ctx context.Context, in *AssignBranchRequest, opts ...grpc.CallOption) (*TaskResponse, error) {
	out := new(TaskResponse)
	if err := c.invoke(ctx, WorkflowService_AssignBranch_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *workflowServiceClient) RecordSale(ctx context.Context, in *RecordSaleRequest, opts ...grpc.CallOption) (*RecordSaleResponse, error) {
	out := new(RecordSaleResponse)
	if err := c.invoke(ctx, WorkflowService_RecordSale_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *workflowServiceClient) CreateStockRequest(ctx context.Context, in *CreateStockRequestRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	out := new(MessageResponse)
	if err := c.invoke(ctx, WorkflowService_CreateStockRequest_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *workflowServiceClient) ApprovalAction(ctx context.Context, in *ApprovalActionRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	out := new(MessageResponse)
	if err := c.invoke(ctx, WorkflowService_ApprovalAction_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *workflowServiceClient) ListMessages(ctx context.Context, in *ListMessagesRequest, opts ...grpc.CallOption) (*ListMessagesResponse, error) {
	out := new(ListMessagesResponse)
	if err := c.invoke(ctx, WorkflowService_ListMessages_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *workflowServiceClient) MarkRead(ctx context.Context, in *MarkReadRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.invoke(ctx, WorkflowService_MarkRead_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *workflowServiceClient) Leaderboard(ctx context.Context, in *LeaderboardRequest, opts ...grpc.CallOption) (*LeaderboardResponse, error) {
	out := new(LeaderboardResponse)
	if err := c.invoke(ctx, WorkflowService_Leaderboard_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
