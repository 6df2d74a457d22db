package workflow

import (
	"context"
	"fmt"

	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
)

// Join adds userID to a main task and creates their personal sub-task.
// The personal goal is the per-slot share goalTarget / participantLimit,
// independent of how many participants are present.
func (e *Engine) Join(ctx context.Context, taskID int64, userID string) (*models.Task, error) {
	var sub *models.Task
	err := e.mutate(ctx, "join_task", func(tx *txn) error {
		main, err := tx.task(taskID)
		if err != nil {
			return err
		}
		created, err := tx.allocate(main, userID)
		if err != nil {
			return err
		}
		sub = created.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (tx *txn) allocate(main *models.Task, userID string) (*models.Task, error) {
	if main.IsSubTask {
		return nil, ErrNotMainTask
	}
	if main.HasParticipant(userID) {
		return nil, ErrAlreadyJoined
	}
	if len(main.Participants) >= main.ParticipantLimit {
		return nil, ErrCapacityExceeded
	}

	parentID := main.ID
	sub := &models.Task{
		ID:               tx.nextTaskID(),
		ParentTaskID:     &parentID,
		IsSubTask:        true,
		Title:            fmt.Sprintf("%s: %s", main.Title, tx.e.displayName(userID)),
		Description:      main.Description,
		CreatedBy:        userID,
		CreatedAt:        tx.now,
		GoalType:         main.GoalType,
		GoalTarget:       main.GoalTarget / float64(main.ParticipantLimit),
		ParticipantLimit: 1,
		Participants:     []string{userID},
		Status:           models.TaskStatusActive,
		BranchID:         main.BranchID,
	}
	if main.DueDate != nil {
		d := *main.DueDate
		sub.DueDate = &d
	}

	tx.state.Tasks = append(tx.state.Tasks, sub)
	main.Participants = append(main.Participants, userID)
	return sub, nil
}
