// pkg/notify/log.go
package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogPublisher writes events to the log when no broker is configured.
type LogPublisher struct {
	log zerolog.Logger
}

// NewLogPublisher creates a publisher that only logs
func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log.With().Str("component", "notify").Logger()}
}

// Publish implements Publisher
func (p *LogPublisher) Publish(_ context.Context, event *Event) {
	if event == nil {
		return
	}
	p.log.Debug().
		Str("event_type", event.EventType).
		Str("resource_id", event.ResourceID).
		Strs("recipients", event.Recipients).
		Msg("notification")
}
