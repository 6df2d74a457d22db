package workflow

import (
	"context"
	"strconv"

	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/pkg/notify"
)

// EmitProgressReports sends a progress report for every active task whose
// AccuraBot runs at frequency. Reports never move the notification
// watermark. It returns the number of tasks reported on.
func (e *Engine) EmitProgressReports(ctx context.Context, frequency string) (int, error) {
	reported := 0
	err := e.mutate(ctx, "progress_reports", func(tx *txn) error {
		for _, t := range tx.state.Tasks {
			if !t.AccuraBotEnabled || t.AccuraBotReportFrequency != frequency || t.Status != models.TaskStatusActive {
				continue
			}
			taskID := t.ID
			recipients := notificationRecipients(t)
			for _, r := range recipients {
				tx.appendMessage(&models.Message{
					From:    BotSender,
					To:      r,
					Subject: "AccuraBot report: " + t.Title,
					Content: e.renderProgressReport(t, r, 0),
					Type:    models.MessageTypeReport,
					TaskID:  &taskID,
				})
			}
			tx.publish(&notify.Event{
				EventType:    notify.EventTaskReport,
				ActorID:      BotSender,
				Recipients:   recipients,
				ResourceType: "task",
				ResourceID:   strconv.FormatInt(t.ID, 10),
				Severity:     "info",
				Payload: map[string]interface{}{
					"frequency": frequency,
					"progress":  t.Progress,
				},
			})
			reported++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return reported, nil
}
