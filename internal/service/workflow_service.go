// internal/service/workflow_service.go
package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	workflowv1 "github.com/ledgerly111/ledgerly111.github.io-sub000/api/workflow/v1"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/middleware"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/workflow"
)

type WorkflowService struct {
	workflowv1.UnimplementedWorkflowServiceServer
	engine *workflow.Engine
	log    zerolog.Logger
}

func NewWorkflowService(engine *workflow.Engine, log zerolog.Logger) *WorkflowService {
	return &WorkflowService{
		engine: engine,
		log:    log.With().Str("component", "workflow_service").Logger(),
	}
}

// CreateTask creates a main task owned by the caller
func (s *WorkflowService) CreateTask(ctx context.Context, req *workflowv1.CreateTaskRequest) (*workflowv1.TaskResponse, error) {
	callerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	task, err := s.engine.CreateTask(ctx, callerID, req.Spec)
	if err != nil {
		return nil, s.toStatus(err, "failed to create task")
	}
	return &workflowv1.TaskResponse{Task: task}, nil
}

// EditTask replaces the goal parameters of a task
func (s *WorkflowService) EditTask(ctx context.Context, req *workflowv1.EditTaskRequest) (*workflowv1.TaskResponse, error) {
	callerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.requireCreator(req.ID, callerID); err != nil {
		return nil, err
	}

	task, err := s.engine.EditTask(ctx, req.ID, req.Spec)
	if err != nil {
		return nil, s.toStatus(err, "failed to edit task")
	}
	return &workflowv1.TaskResponse{Task: task}, nil
}

// DeleteTask removes a task
func (s *WorkflowService) DeleteTask(ctx context.Context, req *workflowv1.DeleteTaskRequest) (*emptypb.Empty, error) {
	callerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.requireCreator(req.ID, callerID); err != nil {
		return nil, err
	}

	if err := s.engine.DeleteTask(ctx, req.ID); err != nil {
		return nil, s.toStatus(err, "failed to delete task")
	}
	return &emptypb.Empty{}, nil
}

// GetTask retrieves a task by ID
func (s *WorkflowService) GetTask(ctx context.Context, req *workflowv1.GetTaskRequest) (*workflowv1.TaskResponse, error) {
	task, err := s.engine.Task(req.ID)
	if err != nil {
		return nil, s.toStatus(err, "failed to get task")
	}
	return &workflowv1.TaskResponse{Task: task}, nil
}

// ListTasks retrieves tasks matching the filter
func (s *WorkflowService) ListTasks(ctx context.Context, req *workflowv1.ListTasksRequest) (*workflowv1.ListTasksResponse, error) {
	tasks := s.engine.Tasks(models.TaskFilter{
		UserID:   req.UserID,
		Status:   req.Status,
		MainOnly: req.MainOnly,
		BranchID: req.BranchID,
	})
	if tasks == nil {
		tasks = []*models.Task{}
	}
	return &workflowv1.ListTasksResponse{Tasks: tasks}, nil
}

// JoinTask enrolls the caller in a main task and returns the personal sub-task
func (s *WorkflowService) JoinTask(ctx context.Context, req *workflowv1.JoinTaskRequest) (*workflowv1.TaskResponse, error) {
	callerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	sub, err := s.engine.Join(ctx, req.TaskID, callerID)
	if err != nil {
		return nil, s.toStatus(err, "failed to join task")
	}
	return &workflowv1.TaskResponse{Task: sub}, nil
}

// AssignBranch associates a task with one of the caller's branches
func (s *WorkflowService) AssignBranch(ctx context.Context, req *workflowv1.AssignBranchRequest) (*workflowv1.TaskResponse, error) {
	callerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	task, err := s.engine.AssignToBranch(ctx, req.TaskID, req.BranchID, callerID)
	if err != nil {
		return nil, s.toStatus(err, "failed to assign branch")
	}
	return &workflowv1.TaskResponse{Task: task}, nil
}

// RecordSale applies a sale to every goal its seller participates in
func (s *WorkflowService) RecordSale(ctx context.Context, req *workflowv1.RecordSaleRequest) (*workflowv1.RecordSaleResponse, error) {
	out, err := s.engine.RecordSale(ctx, req.Sale)
	if err != nil {
		return nil, s.toStatus(err, "failed to record sale")
	}
	return &workflowv1.RecordSaleResponse{
		Profit:        out.Profit,
		UpdatedTasks:  out.UpdatedTasks,
		Completed:     out.Completed,
		Notifications: out.Notifications,
	}, nil
}

// CreateStockRequest opens a stock request on behalf of the caller
func (s *WorkflowService) CreateStockRequest(ctx context.Context, req *workflowv1.CreateStockRequestRequest) (*workflowv1.MessageResponse, error) {
	callerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	in := req.Request
	in.RequesterID = callerID
	msg, err := s.engine.CreateStockRequest(ctx, in)
	if err != nil {
		return nil, s.toStatus(err, "failed to create stock request")
	}
	return &workflowv1.MessageResponse{Message: msg}, nil
}

// ApprovalAction advances a stock request as the caller
func (s *WorkflowService) ApprovalAction(ctx context.Context, req *workflowv1.ApprovalActionRequest) (*workflowv1.MessageResponse, error) {
	callerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	action, err := workflow.ParseApprovalAction(req.Action)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	msg, err := s.engine.HandleApprovalAction(ctx, req.MessageID, callerID, action, req.Reason)
	if err != nil {
		return nil, s.toStatus(err, "failed to apply approval action")
	}
	return &workflowv1.MessageResponse{Message: msg}, nil
}

// ListMessages lists the caller's messages
func (s *WorkflowService) ListMessages(ctx context.Context, req *workflowv1.ListMessagesRequest) (*workflowv1.ListMessagesResponse, error) {
	callerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	msgs := s.engine.Messages(callerID, req.UnreadOnly)
	if msgs == nil {
		msgs = []*models.Message{}
	}
	return &workflowv1.ListMessagesResponse{Messages: msgs}, nil
}

// MarkRead flags one of the caller's messages as read
func (s *WorkflowService) MarkRead(ctx context.Context, req *workflowv1.MarkReadRequest) (*emptypb.Empty, error) {
	callerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.engine.MarkRead(ctx, req.MessageID, callerID); err != nil {
		return nil, s.toStatus(err, "failed to mark message read")
	}
	return &emptypb.Empty{}, nil
}

// Leaderboard ranks the participants of a task
func (s *WorkflowService) Leaderboard(ctx context.Context, req *workflowv1.LeaderboardRequest) (*workflowv1.LeaderboardResponse, error) {
	lb, err := s.engine.Leaderboard(req.TaskID)
	if err != nil {
		return nil, s.toStatus(err, "failed to build leaderboard")
	}
	return &workflowv1.LeaderboardResponse{Leaderboard: lb}, nil
}

func (s *WorkflowService) requireCreator(taskID int64, callerID string) error {
	task, err := s.engine.Task(taskID)
	if err != nil {
		return s.toStatus(err, "failed to get task")
	}
	if task.CreatedBy != callerID {
		return status.Error(codes.PermissionDenied, "only the task creator can change it")
	}
	return nil
}

func caller(ctx context.Context) (string, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "caller not identified")
	}
	return userID, nil
}

// toStatus maps engine errors onto gRPC status codes.
func (s *WorkflowService) toStatus(err error, msg string) error {
	var code codes.Code
	switch {
	case errors.Is(err, workflow.ErrTaskNotFound),
		errors.Is(err, workflow.ErrMessageNotFound),
		errors.Is(err, workflow.ErrBranchNotFound):
		code = codes.NotFound
	case errors.Is(err, workflow.ErrAlreadyJoined):
		code = codes.AlreadyExists
	case errors.Is(err, workflow.ErrCapacityExceeded):
		code = codes.ResourceExhausted
	case errors.Is(err, workflow.ErrInvalidTransition),
		errors.Is(err, workflow.ErrNotMainTask),
		errors.Is(err, workflow.ErrInventoryFailure):
		code = codes.FailedPrecondition
	case errors.Is(err, workflow.ErrMissingReason),
		errors.Is(err, workflow.ErrInvalidTask),
		errors.Is(err, workflow.ErrInvalidSale),
		errors.Is(err, workflow.ErrInvalidRequest):
		code = codes.InvalidArgument
	case errors.Is(err, workflow.ErrNotRecipient),
		errors.Is(err, workflow.ErrNotBranchMember):
		code = codes.PermissionDenied
	default:
		s.log.Error().Err(err).Msg(msg)
		return status.Errorf(codes.Internal, "%s: %v", msg, err)
	}
	return status.Error(code, err.Error())
}
