package workflow

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/pkg/notify"
)

// thresholdWatermarks are the watermarks below completion, highest first.
// 100 belongs to completion.
var thresholdWatermarks = belowCompletion(models.Watermarks)

func belowCompletion(watermarks []int) []int {
	var out []int
	for _, w := range watermarks {
		if w < 100 {
			out = append(out, w)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// checkThresholds fires at most one notification per watermark. Firing a
// watermark raises lastNotifiedProgress, which suppresses the lower ones.
func (tx *txn) checkThresholds(t *models.Task) {
	pct := t.Percent()
	for _, w := range thresholdWatermarks {
		if pct >= float64(w) && t.LastNotifiedProgress < w {
			tx.sendProgressNotification(t, w)
			t.LastNotifiedProgress = w
		}
	}
}

// sendProgressNotification appends one message per recipient and publishes
// a single event for the fan-out.
func (tx *txn) sendProgressNotification(t *models.Task, watermark int) {
	recipients := notificationRecipients(t)
	taskID := t.ID

	subject := fmt.Sprintf("%q reached %d%%", t.Title, watermark)
	eventType := notify.EventTaskProgress
	if watermark >= 100 {
		subject = fmt.Sprintf("%q is complete", t.Title)
		eventType = notify.EventTaskCompleted
	}

	for _, r := range recipients {
		tx.appendMessage(&models.Message{
			From:    BotSender,
			To:      r,
			Subject: subject,
			Content: tx.e.renderProgressReport(t, r, watermark),
			Type:    models.MessageTypeNotification,
			TaskID:  &taskID,
		})
	}

	tx.publish(&notify.Event{
		EventType:    eventType,
		ActorID:      BotSender,
		Recipients:   recipients,
		ResourceType: "task",
		ResourceID:   strconv.FormatInt(t.ID, 10),
		Severity:     "info",
		Payload: map[string]interface{}{
			"watermark":   watermark,
			"progress":    t.Progress,
			"goal_target": t.GoalTarget,
			"goal_type":   t.GoalType,
		},
	})
}

// notificationRecipients is the creator plus participants, deduplicated,
// creator first.
func notificationRecipients(t *models.Task) []string {
	seen := make(map[string]bool, len(t.Participants)+1)
	var out []string
	for _, id := range append([]string{t.CreatedBy}, t.Participants...) {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// renderProgressReport produces the plain-text body of progress messages.
// A watermark of 0 renders a periodic report without a milestone line.
func (e *Engine) renderProgressReport(t *models.Task, recipient string, watermark int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", e.displayName(recipient))
	switch {
	case watermark >= 100:
		fmt.Fprintf(&b, "The goal %q has been completed.\n", t.Title)
	case watermark > 0:
		fmt.Fprintf(&b, "The goal %q has passed %d%% of its %s target.\n", t.Title, watermark, t.GoalType)
	default:
		fmt.Fprintf(&b, "Here is the latest progress on %q.\n", t.Title)
	}
	fmt.Fprintf(&b, "Progress: %s / %s (%.1f%%)\n", formatAmount(t.GoalType, t.Progress), formatAmount(t.GoalType, t.GoalTarget), t.Percent())

	names := make([]string, 0, len(t.Participants))
	for _, p := range t.Participants {
		names = append(names, e.displayName(p))
	}
	if len(names) > 0 {
		fmt.Fprintf(&b, "Participants: %s\n", strings.Join(names, ", "))
	}
	if t.DueDate != nil {
		fmt.Fprintf(&b, "Due: %s\n", t.DueDate.Format("2006-01-02"))
	}
	return b.String()
}

func formatAmount(goalType string, v float64) string {
	if goalType == models.GoalTypeCount {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
