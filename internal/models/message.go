package models

import "time"

// Message types
const (
	MessageTypeGeneral      = "general"
	MessageTypeTask         = "task"
	MessageTypeNotification = "notification"
	MessageTypeReport       = "report"
)

// Stock request categories
const (
	CategoryEmergency = "emergency"
	CategoryRoutine   = "routine"
)

// ApprovalStatus is the lifecycle state of a stock request.
type ApprovalStatus string

const (
	ApprovalPendingWorker     ApprovalStatus = "pending_worker_approval"
	ApprovalPendingManager    ApprovalStatus = "pending_manager_approval"
	ApprovalPendingAcceptance ApprovalStatus = "approved_pending_acceptance"
	ApprovalCompleted         ApprovalStatus = "completed"
	ApprovalDeclined          ApprovalStatus = "declined"
)

// Terminal reports whether no transition leaves the status.
func (s ApprovalStatus) Terminal() bool {
	return s == ApprovalCompleted || s == ApprovalDeclined
}

// ApprovalAction is the closed set of stock-request actions.
type ApprovalAction string

const (
	ActionSendStockRequest    ApprovalAction = "send-stock-request"
	ActionApproveStockRequest ApprovalAction = "approve-stock-request"
	ActionAcceptStock         ApprovalAction = "accept-stock"
	ActionDeclineRequest      ApprovalAction = "decline-request"
)

// HistoryEntry is one audit record of an approval transition.
type HistoryEntry struct {
	Actor     string         `json:"actor" bson:"actor"`
	Action    ApprovalAction `json:"action" bson:"action"`
	Timestamp time.Time      `json:"timestamp" bson:"timestamp"`
	Reason    string         `json:"reason,omitempty" bson:"reason,omitempty"`
}

// TaskDetails is the stock payload handed to inventory on completion.
type TaskDetails struct {
	ProductID      string `json:"productId" bson:"productId"`
	RequestedStock int    `json:"requestedStock" bson:"requestedStock"`
}

// Message is an entry of the shared message store. Stock requests are
// messages of type task carrying approval state.
type Message struct {
	ID          string         `json:"id" bson:"id"`
	From        string         `json:"from" bson:"from"`
	To          string         `json:"to" bson:"to"`
	Subject     string         `json:"subject" bson:"subject"`
	Content     string         `json:"content" bson:"content"`
	Timestamp   time.Time      `json:"timestamp" bson:"timestamp"`
	Read        bool           `json:"read" bson:"read"`
	Type        string         `json:"type" bson:"type"`
	TaskID      *int64         `json:"taskId,omitempty" bson:"taskId,omitempty"`
	Category    string         `json:"category,omitempty" bson:"category,omitempty"`
	RequesterID string         `json:"requesterId,omitempty" bson:"requesterId,omitempty"`
	WorkerID    string         `json:"workerId,omitempty" bson:"workerId,omitempty"`
	ManagerID   string         `json:"managerId,omitempty" bson:"managerId,omitempty"`
	Status      ApprovalStatus `json:"status,omitempty" bson:"status,omitempty"`
	History     []HistoryEntry `json:"history,omitempty" bson:"history,omitempty"`
	TaskDetails *TaskDetails   `json:"taskDetails,omitempty" bson:"taskDetails,omitempty"`
}

// IsStockRequest reports whether the message carries approval state.
func (m *Message) IsStockRequest() bool {
	return m.Type == MessageTypeTask && m.Status != ""
}

// Clone returns a deep copy of the message.
func (m *Message) Clone() *Message {
	c := *m
	if m.TaskID != nil {
		id := *m.TaskID
		c.TaskID = &id
	}
	if m.TaskDetails != nil {
		d := *m.TaskDetails
		c.TaskDetails = &d
	}
	c.History = append([]HistoryEntry(nil), m.History...)
	return &c
}

// StockRequest is the input for opening a stock-request workflow.
type StockRequest struct {
	RequesterID    string `json:"requesterId"`
	WorkerID       string `json:"workerId"`
	ManagerID      string `json:"managerId,omitempty"`
	ProductID      string `json:"productId"`
	RequestedStock int    `json:"requestedStock"`
	Category       string `json:"category,omitempty"`
	Subject        string `json:"subject,omitempty"`
	Content        string `json:"content,omitempty"`
}
