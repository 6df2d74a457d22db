// Package report renders leaderboards for download.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/workflow"
)

// WriteText renders lb as a plain-text table.
func WriteText(w io.Writer, lb *workflow.Leaderboard) error {
	if lb == nil {
		return fmt.Errorf("invalid leaderboard")
	}

	if _, err := fmt.Fprintf(w, "%s (task #%d)\n", lb.Title, lb.TaskID); err != nil {
		return err
	}
	fmt.Fprintf(w, "Goal: %s %s, progress %s (%s)\n",
		amount(lb.GoalType, lb.GoalTarget), lb.GoalType, amount(lb.GoalType, lb.Progress), lb.Status)
	fmt.Fprintf(w, "Window: %s\n", window(lb))
	fmt.Fprintf(w, "Generated: %s\n\n", lb.GeneratedAt.Format("2006-01-02 15:04 MST"))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Rank", "Participant", "Contribution", "Sales", "Share"})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})
	for _, e := range lb.Entries {
		table.Append([]string{
			strconv.Itoa(e.Rank),
			e.Name,
			amount(lb.GoalType, e.Contribution),
			strconv.Itoa(e.Sales),
			fmt.Sprintf("%.1f%%", e.SharePercent),
		})
	}
	table.Render()
	return nil
}

func amount(goalType string, v float64) string {
	if goalType == models.GoalTypeCount {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func window(lb *workflow.Leaderboard) string {
	start := lb.WindowStart.Format("2006-01-02")
	if lb.WindowEnd == nil {
		return start + " onwards"
	}
	return start + " to " + lb.WindowEnd.Format("2006-01-02")
}
