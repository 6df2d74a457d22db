package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
)

// SaleOutcome reports what one sale event changed.
type SaleOutcome struct {
	Profit        float64
	UpdatedTasks  []int64
	Completed     []int64
	Notifications int
}

// Profit derives the margin of a sale from its subtotal and item costs.
// Items whose product is unknown contribute no cost.
func (e *Engine) Profit(sale models.Sale) float64 {
	cost := 0.0
	for _, item := range sale.Items {
		if p, ok := e.products.Product(item.ProductID); ok {
			cost += p.Cost * item.Quantity
		}
	}
	return sale.Subtotal - cost
}

// RecordSale derives the sale's profit and applies it to every goal the
// seller participates in.
func (e *Engine) RecordSale(ctx context.Context, sale models.Sale) (*SaleOutcome, error) {
	return e.OnSaleRecorded(ctx, sale, e.Profit(sale))
}

// OnSaleRecorded applies one sale to every active task the seller
// participates in. Each qualifying task is incremented exactly once, and
// sub-task increments are mirrored onto the parent. Calling it twice for the
// same sale counts the sale twice.
func (e *Engine) OnSaleRecorded(ctx context.Context, sale models.Sale, profit float64) (*SaleOutcome, error) {
	if strings.TrimSpace(sale.SalesPersonID) == "" {
		return nil, fmt.Errorf("%w: sales person is required", ErrInvalidSale)
	}
	if sale.Total < 0 {
		return nil, fmt.Errorf("%w: total must not be negative", ErrInvalidSale)
	}

	out := &SaleOutcome{Profit: profit}
	err := e.mutate(ctx, "record_sale", func(tx *txn) error {
		date := sale.Date
		if date.IsZero() {
			date = tx.now
		}
		tx.state.Sales = append(tx.state.Sales, models.SaleRecord{
			ID:            sale.ID,
			SalesPersonID: sale.SalesPersonID,
			Total:         sale.Total,
			Profit:        profit,
			Date:          date,
		})

		touched := tx.applySale(sale, profit)
		for _, t := range touched {
			out.UpdatedTasks = append(out.UpdatedTasks, t.ID)
		}

		before := len(tx.events)
		// Sub-tasks first so a cascade settles the parent before it is
		// evaluated on its own progress.
		for _, t := range touched {
			if t.IsSubTask {
				tx.evaluate(t)
			}
		}
		for _, t := range touched {
			if !t.IsSubTask {
				tx.evaluate(t)
			}
		}
		out.Notifications = len(tx.events) - before

		for _, id := range out.UpdatedTasks {
			if t, err := tx.task(id); err == nil && t.Status == models.TaskStatusCompleted {
				out.Completed = append(out.Completed, id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// applySale increments progress and returns the touched tasks in first-touch
// order. A main task is credited directly only for sellers without a
// personal sub-task under it; otherwise the credit arrives via the mirror.
func (tx *txn) applySale(sale models.Sale, profit float64) []*models.Task {
	var touched []*models.Task
	seen := make(map[int64]bool)
	touch := func(t *models.Task) {
		if !seen[t.ID] {
			seen[t.ID] = true
			touched = append(touched, t)
		}
	}

	selected := make([]*models.Task, 0)
	for _, t := range tx.state.Tasks {
		if t.Status != models.TaskStatusActive || !t.HasParticipant(sale.SalesPersonID) {
			continue
		}
		if !t.IsSubTask && tx.hasSubTaskFor(t.ID, sale.SalesPersonID) {
			continue
		}
		selected = append(selected, t)
	}

	for _, t := range selected {
		delta := progressDelta(t.GoalType, sale, profit)
		if delta <= 0 {
			continue
		}
		t.Progress += delta
		touch(t)

		if t.IsSubTask && t.ParentTaskID != nil {
			if parent, err := tx.task(*t.ParentTaskID); err == nil {
				parent.Progress += delta
				touch(parent)
			}
		}
	}
	return touched
}

func (tx *txn) hasSubTaskFor(parentID int64, userID string) bool {
	for _, t := range tx.state.Tasks {
		if t.IsSubTask && t.ParentTaskID != nil && *t.ParentTaskID == parentID && t.Owner() == userID {
			return true
		}
	}
	return false
}

func progressDelta(goalType string, sale models.Sale, profit float64) float64 {
	switch goalType {
	case models.GoalTypeSales:
		return sale.Total
	case models.GoalTypeProfit:
		if profit < 0 {
			return 0
		}
		return profit
	case models.GoalTypeCount:
		return 1
	default:
		return 0
	}
}
