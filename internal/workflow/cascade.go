package workflow

import "github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"

// evaluate runs the completion path or the threshold path for a task whose
// progress just changed. Completed tasks are left alone.
func (tx *txn) evaluate(t *models.Task) {
	if t.Status == models.TaskStatusCompleted {
		return
	}
	if t.Percent() >= 100 {
		tx.complete(t)
		if t.IsSubTask && t.ParentTaskID != nil {
			tx.checkMainTaskCompletion(*t.ParentTaskID)
		}
		return
	}
	tx.checkThresholds(t)
}

// complete marks a task completed and emits the 100% notification once.
func (tx *txn) complete(t *models.Task) {
	t.Status = models.TaskStatusCompleted
	if t.LastNotifiedProgress < 100 {
		tx.sendProgressNotification(t, 100)
		t.LastNotifiedProgress = 100
	}
}

// checkMainTaskCompletion completes the parent once every sub-task is done.
// The parent's own percentage is not consulted.
func (tx *txn) checkMainTaskCompletion(parentID int64) {
	parent, err := tx.task(parentID)
	if err != nil || parent.Status == models.TaskStatusCompleted {
		return
	}
	subs := tx.subTasks(parentID)
	if len(subs) == 0 {
		return
	}
	for _, s := range subs {
		if s.Status != models.TaskStatusCompleted {
			return
		}
	}
	tx.complete(parent)
}

func (tx *txn) subTasks(parentID int64) []*models.Task {
	var subs []*models.Task
	for _, t := range tx.state.Tasks {
		if t.IsSubTask && t.ParentTaskID != nil && *t.ParentTaskID == parentID {
			subs = append(subs, t)
		}
	}
	return subs
}
