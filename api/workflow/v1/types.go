package workflowv1

import (
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/workflow"
)

type CreateTaskRequest struct {
	Spec models.TaskSpec `json:"spec"`
}

type EditTaskRequest struct {
	ID   int64           `json:"id"`
	Spec models.TaskSpec `json:"spec"`
}

type GetTaskRequest struct {
	ID int64 `json:"id"`
}

type DeleteTaskRequest struct {
	ID int64 `json:"id"`
}

type TaskResponse struct {
	Task *models.Task `json:"task"`
}

type ListTasksRequest struct {
	UserID   string `json:"userId,omitempty"`
	Status   string `json:"status,omitempty"`
	MainOnly bool   `json:"mainOnly,omitempty"`
	BranchID string `json:"branchId,omitempty"`
}

type ListTasksResponse struct {
	Tasks []*models.Task `json:"tasks"`
}

type JoinTaskRequest struct {
	TaskID int64 `json:"taskId"`
}

type AssignBranchRequest struct {
	TaskID   int64  `json:"taskId"`
	BranchID string `json:"branchId"`
}

type RecordSaleRequest struct {
	Sale models.Sale `json:"sale"`
}

type RecordSaleResponse struct {
	Profit        float64 `json:"profit"`
	UpdatedTasks  []int64 `json:"updatedTasks"`
	Completed     []int64 `json:"completed"`
	Notifications int     `json:"notifications"`
}

type CreateStockRequestRequest struct {
	Request models.StockRequest `json:"request"`
}

type ApprovalActionRequest struct {
	MessageID string `json:"messageId"`
	Action    string `json:"action"`
	Reason    string `json:"reason,omitempty"`
}

type MessageResponse struct {
	Message *models.Message `json:"message"`
}

type ListMessagesRequest struct {
	UnreadOnly bool `json:"unreadOnly,omitempty"`
}

type ListMessagesResponse struct {
	Messages []*models.Message `json:"messages"`
}

type MarkReadRequest struct {
	MessageID string `json:"messageId"`
}

type LeaderboardRequest struct {
	TaskID int64 `json:"taskId"`
}

type LeaderboardResponse struct {
	Leaderboard *workflow.Leaderboard `json:"leaderboard"`
}
