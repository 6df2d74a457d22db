// pkg/notify/service.go
package notify

import (
	"context"
	"time"
)

// Event types
const (
	EventTaskProgress      = "task_progress"
	EventTaskCompleted     = "task_completed"
	EventTaskReport        = "task_report"
	EventStockRequest      = "stock_request"
	EventStockRequestFinal = "stock_request_closed"
)

// Publisher fans notifications out to external consumers. Publishing is
// fire-and-forget: implementations log failures and never block the caller
// on delivery.
type Publisher interface {
	Publish(ctx context.Context, event *Event)
}

// Event is the JSON document published for every fabricated notification.
type Event struct {
	EventType    string                 `json:"event_type"`
	ActorID      string                 `json:"actor_id,omitempty"`
	Recipients   []string               `json:"recipients"`
	ResourceType string                 `json:"resource_type,omitempty"`
	ResourceID   string                 `json:"resource_id,omitempty"`
	Severity     string                 `json:"severity,omitempty"`
	Payload      map[string]interface{} `json:"payload,omitempty"`
	OccurredAt   time.Time              `json:"occurred_at"`
}

// Config holds publisher configuration
type Config struct {
	URL           string
	SubjectPrefix string
	ClientName    string
}
