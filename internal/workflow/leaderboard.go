package workflow

import (
	"sort"
	"time"

	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
)

// LeaderboardEntry is one participant's contribution to a task.
type LeaderboardEntry struct {
	Rank         int     `json:"rank"`
	UserID       string  `json:"userId"`
	Name         string  `json:"name"`
	Contribution float64 `json:"contribution"`
	Sales        int     `json:"sales"`
	SharePercent float64 `json:"sharePercent"`
}

// Leaderboard ranks the participants of a task.
type Leaderboard struct {
	TaskID      int64              `json:"taskId"`
	Title       string             `json:"title"`
	GoalType    string             `json:"goalType"`
	GoalTarget  float64            `json:"goalTarget"`
	Progress    float64            `json:"progress"`
	Status      string             `json:"status"`
	WindowStart time.Time          `json:"windowStart"`
	WindowEnd   *time.Time         `json:"windowEnd,omitempty"`
	Entries     []LeaderboardEntry `json:"entries"`
	GeneratedAt time.Time          `json:"generatedAt"`
}

// Leaderboard computes participant contributions from sales dated between
// the task's creation and the end of its due date, ranked descending. Ties
// keep join order.
func (e *Engine) Leaderboard(taskID int64) (*Leaderboard, error) {
	var (
		lb  *Leaderboard
		err error
	)
	e.read(func(s *models.State) {
		var task *models.Task
		for _, t := range s.Tasks {
			if t.ID == taskID {
				task = t
				break
			}
		}
		if task == nil {
			err = ErrTaskNotFound
			return
		}
		lb = buildLeaderboard(task, s.Sales, e.displayName)
	})
	if err != nil {
		return nil, err
	}
	lb.GeneratedAt = e.clock()
	return lb, nil
}

func buildLeaderboard(task *models.Task, sales []models.SaleRecord, name func(string) string) *Leaderboard {
	lb := &Leaderboard{
		TaskID:      task.ID,
		Title:       task.Title,
		GoalType:    task.GoalType,
		GoalTarget:  task.GoalTarget,
		Progress:    task.Progress,
		Status:      task.Status,
		WindowStart: task.CreatedAt,
	}

	var end time.Time
	if task.DueDate != nil {
		d := *task.DueDate
		lb.WindowEnd = &d
		y, m, day := d.Date()
		end = time.Date(y, m, day, 0, 0, 0, 0, d.Location()).AddDate(0, 0, 1)
	}

	index := make(map[string]int, len(task.Participants))
	for i, p := range task.Participants {
		index[p] = i
		lb.Entries = append(lb.Entries, LeaderboardEntry{UserID: p, Name: name(p)})
	}

	for _, sale := range sales {
		i, ok := index[sale.SalesPersonID]
		if !ok || sale.Date.Before(task.CreatedAt) {
			continue
		}
		if !end.IsZero() && !sale.Date.Before(end) {
			continue
		}
		delta := progressDelta(task.GoalType, models.Sale{Total: sale.Total}, sale.Profit)
		lb.Entries[i].Contribution += delta
		lb.Entries[i].Sales++
	}

	sort.SliceStable(lb.Entries, func(a, b int) bool {
		return lb.Entries[a].Contribution > lb.Entries[b].Contribution
	})
	for i := range lb.Entries {
		lb.Entries[i].Rank = i + 1
		if task.GoalTarget > 0 {
			lb.Entries[i].SharePercent = lb.Entries[i].Contribution / task.GoalTarget * 100
		}
	}
	return lb
}
