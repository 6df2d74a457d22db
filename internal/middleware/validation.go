// internal/middleware/validation.go
package middleware

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	workflowv1 "github.com/ledgerly111/ledgerly111.github.io-sub000/api/workflow/v1"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
)

// ValidationConfig holds validation configuration
type ValidationConfig struct {
	MaxTitleLength       int
	MaxDescriptionLength int
	MaxParticipantLimit  int
	MaxReasonLength      int
	MaxSaleItems         int
}

// DefaultValidationConfig returns default validation configuration
func DefaultValidationConfig() *ValidationConfig {
	return &ValidationConfig{
		MaxTitleLength:       200,
		MaxDescriptionLength: 5000,
		MaxParticipantLimit:  500,
		MaxReasonLength:      1000,
		MaxSaleItems:         500,
	}
}

// ValidationInterceptor rejects malformed requests before they reach the engine
type ValidationInterceptor struct {
	config *ValidationConfig
}

// NewValidationInterceptor creates a new validation interceptor
func NewValidationInterceptor(config *ValidationConfig) *ValidationInterceptor {
	if config == nil {
		config = DefaultValidationConfig()
	}
	return &ValidationInterceptor{
		config: config,
	}
}

// Unary returns a unary server interceptor for request validation
func (v *ValidationInterceptor) Unary() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		if err := v.validateRequest(req); err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

// validateRequest validates different request types
func (v *ValidationInterceptor) validateRequest(req interface{}) error {
	var errors []string
	switch r := req.(type) {
	case *workflowv1.CreateTaskRequest:
		errors = v.validateSpec(r.Spec)
	case *workflowv1.EditTaskRequest:
		errors = append(validID("id", r.ID), v.validateSpec(r.Spec)...)
	case *workflowv1.GetTaskRequest:
		errors = validID("id", r.ID)
	case *workflowv1.DeleteTaskRequest:
		errors = validID("id", r.ID)
	case *workflowv1.JoinTaskRequest:
		errors = validID("task_id", r.TaskID)
	case *workflowv1.LeaderboardRequest:
		errors = validID("task_id", r.TaskID)
	case *workflowv1.AssignBranchRequest:
		errors = validID("task_id", r.TaskID)
		if strings.TrimSpace(r.BranchID) == "" {
			errors = append(errors, "branch_id is required")
		}
	case *workflowv1.ListTasksRequest:
		if r.Status != "" && r.Status != models.TaskStatusActive && r.Status != models.TaskStatusCompleted {
			errors = append(errors, fmt.Sprintf("invalid status filter %q", r.Status))
		}
	case *workflowv1.RecordSaleRequest:
		errors = v.validateSale(r.Sale)
	case *workflowv1.CreateStockRequestRequest:
		if strings.TrimSpace(r.Request.WorkerID) == "" {
			errors = append(errors, "worker_id is required")
		}
		if strings.TrimSpace(r.Request.ProductID) == "" {
			errors = append(errors, "product_id is required")
		}
		if r.Request.RequestedStock <= 0 {
			errors = append(errors, "requested_stock must be positive")
		}
		if c := r.Request.Category; c != "" && c != models.CategoryEmergency && c != models.CategoryRoutine {
			errors = append(errors, fmt.Sprintf("invalid category %q", c))
		}
	case *workflowv1.ApprovalActionRequest:
		if strings.TrimSpace(r.MessageID) == "" {
			errors = append(errors, "message_id is required")
		}
		if strings.TrimSpace(r.Action) == "" {
			errors = append(errors, "action is required")
		}
		if len(r.Reason) > v.config.MaxReasonLength {
			errors = append(errors, fmt.Sprintf("reason too long (max %d characters)", v.config.MaxReasonLength))
		}
	case *workflowv1.MarkReadRequest:
		if strings.TrimSpace(r.MessageID) == "" {
			errors = append(errors, "message_id is required")
		}
	}

	if len(errors) > 0 {
		return status.Error(codes.InvalidArgument, strings.Join(errors, "; "))
	}
	return nil
}

func (v *ValidationInterceptor) validateSpec(spec models.TaskSpec) []string {
	var errors []string

	title := strings.TrimSpace(spec.Title)
	if title == "" {
		errors = append(errors, "title is required")
	} else if len(title) > v.config.MaxTitleLength {
		errors = append(errors, fmt.Sprintf("title too long (max %d characters)", v.config.MaxTitleLength))
	}

	if len(spec.Description) > v.config.MaxDescriptionLength {
		errors = append(errors, fmt.Sprintf("description too long (max %d characters)", v.config.MaxDescriptionLength))
	}

	if spec.GoalTarget <= 0 {
		errors = append(errors, "goal_target must be positive")
	}

	if spec.ParticipantLimit < 1 {
		errors = append(errors, "participant_limit must be at least 1")
	} else if spec.ParticipantLimit > v.config.MaxParticipantLimit {
		errors = append(errors, fmt.Sprintf("participant_limit too large (max %d)", v.config.MaxParticipantLimit))
	}

	return errors
}

func (v *ValidationInterceptor) validateSale(sale models.Sale) []string {
	var errors []string
	if strings.TrimSpace(sale.SalesPersonID) == "" {
		errors = append(errors, "sales_person_id is required")
	}
	if sale.Total < 0 {
		errors = append(errors, "total must not be negative")
	}
	if len(sale.Items) > v.config.MaxSaleItems {
		errors = append(errors, fmt.Sprintf("too many items (max %d)", v.config.MaxSaleItems))
	}
	for i, item := range sale.Items {
		if item.Quantity <= 0 {
			errors = append(errors, fmt.Sprintf("items[%d]: quantity must be positive", i))
		}
	}
	return errors
}

func validID(field string, id int64) []string {
	if id <= 0 {
		return []string{field + " is required"}
	}
	return nil
}
