package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
)

// ValidateSpec checks the goal parameters of a task spec.
func ValidateSpec(spec models.TaskSpec) error {
	if strings.TrimSpace(spec.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidTask)
	}
	switch spec.GoalType {
	case models.GoalTypeSales, models.GoalTypeProfit, models.GoalTypeCount:
	default:
		return fmt.Errorf("%w: unknown goal type %q", ErrInvalidTask, spec.GoalType)
	}
	if spec.GoalTarget <= 0 {
		return fmt.Errorf("%w: goal target must be positive", ErrInvalidTask)
	}
	if spec.ParticipantLimit < 1 {
		return fmt.Errorf("%w: participant limit must be at least 1", ErrInvalidTask)
	}
	switch spec.AccuraBotReportFrequency {
	case "", models.ReportFrequencyDaily, models.ReportFrequencyWeekly, models.ReportFrequencyMonthly:
	default:
		return fmt.Errorf("%w: unknown report frequency %q", ErrInvalidTask, spec.AccuraBotReportFrequency)
	}
	return nil
}

// CreateTask creates a main task owned by creatorID. The creator is its
// first participant and receives a personal sub-task like any joiner.
func (e *Engine) CreateTask(ctx context.Context, creatorID string, spec models.TaskSpec) (*models.Task, error) {
	if strings.TrimSpace(creatorID) == "" {
		return nil, fmt.Errorf("%w: creator is required", ErrInvalidTask)
	}
	if err := ValidateSpec(spec); err != nil {
		return nil, err
	}

	var created *models.Task
	err := e.mutate(ctx, "create_task", func(tx *txn) error {
		main := &models.Task{
			ID:        tx.nextTaskID(),
			CreatedBy: creatorID,
			CreatedAt: tx.now,
			Status:    models.TaskStatusActive,
		}
		applySpec(main, spec)
		tx.state.Tasks = append(tx.state.Tasks, main)

		if _, err := tx.allocate(main, creatorID); err != nil {
			return err
		}
		created = main.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// EditTask replaces the descriptive fields and goal parameters of a task.
// Ownership, participants, progress, status and watermark are preserved.
func (e *Engine) EditTask(ctx context.Context, id int64, spec models.TaskSpec) (*models.Task, error) {
	if err := ValidateSpec(spec); err != nil {
		return nil, err
	}

	var edited *models.Task
	err := e.mutate(ctx, "edit_task", func(tx *txn) error {
		t, err := tx.task(id)
		if err != nil {
			return err
		}
		applySpec(t, spec)
		if t.IsSubTask {
			t.ParticipantLimit = 1
		}
		edited = t.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return edited, nil
}

// DeleteTask removes a task. Deleting a sub-task frees its owner's slot on
// the parent and completes the parent when every remaining sub-task is
// done. Deleting a main task leaves its sub-tasks orphaned.
func (e *Engine) DeleteTask(ctx context.Context, id int64) error {
	return e.mutate(ctx, "delete_task", func(tx *txn) error {
		t, err := tx.task(id)
		if err != nil {
			return err
		}

		kept := tx.state.Tasks[:0]
		for _, other := range tx.state.Tasks {
			if other.ID != id {
				kept = append(kept, other)
			}
		}
		tx.state.Tasks = kept

		if t.IsSubTask && t.ParentTaskID != nil {
			if parent, err := tx.task(*t.ParentTaskID); err == nil {
				parent.Participants = without(parent.Participants, t.Owner())
				tx.checkMainTaskCompletion(parent.ID)
			}
			return nil
		}
		for _, other := range tx.state.Tasks {
			if other.ParentTaskID != nil && *other.ParentTaskID == id {
				other.ParentTaskID = nil
			}
		}
		return nil
	})
}

// AssignToBranch associates a task with a branch the acting user belongs to.
func (e *Engine) AssignToBranch(ctx context.Context, taskID int64, branchID, actorID string) (*models.Task, error) {
	branch, ok := e.branches.Branch(branchID)
	if !ok {
		return nil, ErrBranchNotFound
	}
	if !branch.HasMember(actorID) {
		return nil, ErrNotBranchMember
	}

	var assigned *models.Task
	err := e.mutate(ctx, "assign_branch", func(tx *txn) error {
		t, err := tx.task(taskID)
		if err != nil {
			return err
		}
		t.BranchID = branch.ID
		assigned = t.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assigned, nil
}

func applySpec(t *models.Task, spec models.TaskSpec) {
	t.Title = strings.TrimSpace(spec.Title)
	t.Description = spec.Description
	t.GoalType = spec.GoalType
	t.GoalTarget = spec.GoalTarget
	t.ParticipantLimit = spec.ParticipantLimit
	t.AccuraBotEnabled = spec.AccuraBotEnabled
	t.AccuraBotReportFrequency = spec.AccuraBotReportFrequency
	t.DueDate = nil
	if spec.DueDate != nil {
		d := *spec.DueDate
		t.DueDate = &d
	}
}

func without(list []string, v string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}
