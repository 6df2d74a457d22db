package workflowv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ServiceName = "workflow.v1.WorkflowService"

// Full method names
const (
	WorkflowService_CreateTask_FullMethodName         = "/" + ServiceName + "/CreateTask"
	WorkflowService_EditTask_FullMethodName           = "/" + ServiceName + "/EditTask"
	WorkflowService_DeleteTask_FullMethodName         = "/" + ServiceName + "/DeleteTask"
	WorkflowService_GetTask_FullMethodName            = "/" + ServiceName + "/GetTask"
	WorkflowService_ListTasks_FullMethodName          = "/" + ServiceName + "/ListTasks"
	WorkflowService_JoinTask_FullMethodName           = "/" + ServiceName + "/JoinTask"
	WorkflowService_AssignBranch_FullMethodName       = "/" + ServiceName + "/AssignBranch"
	WorkflowService_RecordSale_FullMethodName         = "/" + ServiceName + "/RecordSale"
	WorkflowService_CreateStockRequest_FullMethodName = "/" + ServiceName + "/CreateStockRequest"
	WorkflowService_ApprovalAction_FullMethodName     = "/" + ServiceName + "/ApprovalAction"
	WorkflowService_ListMessages_FullMethodName       = "/" + ServiceName + "/ListMessages"
	WorkflowService_MarkRead_FullMethodName           = "/" + ServiceName + "/MarkRead"
	WorkflowService_Leaderboard_FullMethodName        = "/" + ServiceName + "/Leaderboard"
)

// WorkflowServiceServer is the server API for the workflow service.
type WorkflowServiceServer interface {
	CreateTask(context.Context, *CreateTaskRequest) (*TaskResponse, error)
	EditTask(context.Context, *EditTaskRequest) (*TaskResponse, error)
	DeleteTask(context.Context, *DeleteTaskRequest) (*emptypb.Empty, error)
	GetTask(context.Context, *GetTaskRequest) (*TaskResponse, error)
	ListTasks(context.Context, *ListTasksRequest) (*ListTasksResponse, error)
	JoinTask(context.Context, *JoinTaskRequest) (*TaskResponse, error)
	AssignBranch(context.Context, *AssignBranchRequest) (*TaskResponse, error)
	RecordSale(context.Context, *RecordSaleRequest) (*RecordSaleResponse, error)
	CreateStockRequest(context.Context, *CreateStockRequestRequest) (*MessageResponse, error)
	ApprovalAction(context.Context, *ApprovalActionRequest) (*MessageResponse, error)
	ListMessages(context.Context, *ListMessagesRequest) (*ListMessagesResponse, error)
	MarkRead(context.Context, *MarkReadRequest) (*emptypb.Empty, error)
	Leaderboard(context.Context, *LeaderboardRequest) (*LeaderboardResponse, error)
}

// UnimplementedWorkflowServiceServer can be embedded for forward compatibility.
type UnimplementedWorkflowServiceServer struct{}

func (UnimplementedWorkflowServiceServer) CreateTask(context.Context, *CreateTaskRequest) (*TaskResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateTask not implemented")
}
func (UnimplementedWorkflowServiceServer) EditTask(context.Context, *EditTaskRequest) (*TaskResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method EditTask not implemented")
}
func (UnimplementedWorkflowServiceServer) DeleteTask(context.Context, *DeleteTaskRequest) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteTask not implemented")
}
func (UnimplementedWorkflowServiceServer) GetTask(context.Context, *GetTaskRequest) (*TaskResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTask not implemented")
}
func (UnimplementedWorkflowServiceServer) ListTasks(context.Context, *ListTasksRequest) (*ListTasksResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListTasks not implemented")
}
func (UnimplementedWorkflowServiceServer) JoinTask(context.Context, *JoinTaskRequest) (*TaskResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method JoinTask not implemented")
}
func (UnimplementedWorkflowServiceServer) AssignBranch(context.Context, *AssignBranchRequest) (*TaskResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AssignBranch not implemented")
}
func (UnimplementedWorkflowServiceServer) RecordSale(context.Context, *RecordSaleRequest) (*RecordSaleResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RecordSale not implemented")
}
func (UnimplementedWorkflowServiceServer) CreateStockRequest(context.Context, *CreateStockRequestRequest) (*MessageResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateStockRequest not implemented")
}
func (UnimplementedWorkflowServiceServer) ApprovalAction(context.Context, *ApprovalActionRequest) (*MessageResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ApprovalAction not implemented")
}
func (UnimplementedWorkflowServiceServer) ListMessages(context.Context, *ListMessagesRequest) (*ListMessagesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListMessages not implemented")
}
func (UnimplementedWorkflowServiceServer) MarkRead(context.Context, *MarkReadRequest) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method MarkRead not implemented")
}
func (UnimplementedWorkflowServiceServer) Leaderboard(context.Context, *LeaderboardRequest) (*LeaderboardResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Leaderboard not implemented")
}

// RegisterWorkflowServiceServer registers srv on s.
func RegisterWorkflowServiceServer(s grpc.ServiceRegistrar, srv WorkflowServiceServer) {
	s.RegisterService(&WorkflowService_ServiceDesc, srv)
}

// unary adapts a typed method onto the generic handler signature.
func unary[Req any, Resp any](fullMethod string, call func(WorkflowServiceServer, context.Context, *Req) (Resp, error)) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(WorkflowServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(WorkflowServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// WorkflowService_ServiceDesc describes the workflow service for grpc.Server.
var WorkflowService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*WorkflowServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateTask", Handler: unary(WorkflowService_CreateTask_FullMethodName, WorkflowServiceServer.CreateTask)},
		{MethodName: "EditTask", Handler: unary(WorkflowService_EditTask_FullMethodName, WorkflowServiceServer.EditTask)},
		{MethodName: "DeleteTask", Handler: unary(WorkflowService_DeleteTask_FullMethodName, WorkflowServiceServer.DeleteTask)},
		{MethodName: "GetTask", Handler: unary(WorkflowService_GetTask_FullMethodName, WorkflowServiceServer.GetTask)},
		{MethodName: "ListTasks", Handler: unary(WorkflowService_ListTasks_FullMethodName, WorkflowServiceServer.ListTasks)},
		{MethodName: "JoinTask", Handler: unary(WorkflowService_JoinTask_FullMethodName, WorkflowServiceServer.JoinTask)},
		{MethodName: "AssignBranch", Handler: unary(WorkflowService_AssignBranch_FullMethodName, WorkflowServiceServer.AssignBranch)},
		{MethodName: "RecordSale", Handler: unary(WorkflowService_RecordSale_FullMethodName, WorkflowServiceServer.RecordSale)},
		{MethodName: "CreateStockRequest", Handler: unary(WorkflowService_CreateStockRequest_FullMethodName, WorkflowServiceServer.CreateStockRequest)},
		{MethodName: "ApprovalAction", Handler: unary(WorkflowService_ApprovalAction_FullMethodName, WorkflowServiceServer.ApprovalAction)},
		{MethodName: "ListMessages", Handler: unary(WorkflowService_ListMessages_FullMethodName, WorkflowServiceServer.ListMessages)},
		{MethodName: "MarkRead", Handler: unary(WorkflowService_MarkRead_FullMethodName, WorkflowServiceServer.MarkRead)},
		{MethodName: "Leaderboard", Handler: unary(WorkflowService_Leaderboard_FullMethodName, WorkflowServiceServer.Leaderboard)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "workflow/v1/workflow.proto",
}
