package models

import "time"

// Goal types
const (
	GoalTypeSales  = "sales"
	GoalTypeProfit = "profit"
	GoalTypeCount  = "count"
)

// Task status constants
const (
	TaskStatusActive    = "active"
	TaskStatusCompleted = "completed"
)

// AccuraBot report frequencies
const (
	ReportFrequencyDaily   = "daily"
	ReportFrequencyWeekly  = "weekly"
	ReportFrequencyMonthly = "monthly"
)

// Progress watermarks, in percent.
var Watermarks = []int{25, 50, 75, 100}

// Task is either a shared main goal or a personal sub-goal derived from one.
type Task struct {
	ID                       int64      `json:"id" bson:"id"`
	ParentTaskID             *int64     `json:"parentTaskId,omitempty" bson:"parentTaskId,omitempty"`
	IsSubTask                bool       `json:"isSubTask" bson:"isSubTask"`
	Title                    string     `json:"title" bson:"title"`
	Description              string     `json:"description" bson:"description"`
	DueDate                  *time.Time `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	CreatedBy                string     `json:"createdBy" bson:"createdBy"`
	CreatedAt                time.Time  `json:"createdAt" bson:"createdAt"`
	GoalType                 string     `json:"goalType" bson:"goalType"`
	GoalTarget               float64    `json:"goalTarget" bson:"goalTarget"`
	ParticipantLimit         int        `json:"participantLimit" bson:"participantLimit"`
	Participants             []string   `json:"participants" bson:"participants"`
	Progress                 float64    `json:"progress" bson:"progress"`
	Status                   string     `json:"status" bson:"status"`
	LastNotifiedProgress     int        `json:"lastNotifiedProgress" bson:"lastNotifiedProgress"`
	BranchID                 string     `json:"branchId,omitempty" bson:"branchId,omitempty"`
	AccuraBotEnabled         bool       `json:"accuraBotEnabled" bson:"accuraBotEnabled"`
	AccuraBotReportFrequency string     `json:"accuraBotReportFrequency,omitempty" bson:"accuraBotReportFrequency,omitempty"`
}

// Percent returns progress as a percentage of the target, capped at 100.
func (t *Task) Percent() float64 {
	if t.GoalTarget <= 0 {
		return 0
	}
	pct := t.Progress / t.GoalTarget * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// HasParticipant reports whether userID has joined the task.
func (t *Task) HasParticipant(userID string) bool {
	for _, p := range t.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// Owner returns the single participant of a sub-task.
func (t *Task) Owner() string {
	if len(t.Participants) == 0 {
		return ""
	}
	return t.Participants[0]
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	if t.ParentTaskID != nil {
		id := *t.ParentTaskID
		c.ParentTaskID = &id
	}
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	c.Participants = append([]string(nil), t.Participants...)
	return &c
}

// TaskSpec carries the replaceable fields of a task for create and edit.
type TaskSpec struct {
	Title                    string     `json:"title"`
	Description              string     `json:"description"`
	DueDate                  *time.Time `json:"dueDate,omitempty"`
	GoalType                 string     `json:"goalType"`
	GoalTarget               float64    `json:"goalTarget"`
	ParticipantLimit         int        `json:"participantLimit"`
	AccuraBotEnabled         bool       `json:"accuraBotEnabled"`
	AccuraBotReportFrequency string     `json:"accuraBotReportFrequency,omitempty"`
}

// TaskFilter narrows task listings.
type TaskFilter struct {
	UserID   string
	Status   string
	MainOnly bool
	BranchID string
}
