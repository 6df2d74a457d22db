package workflow

import (
	"context"

	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
)

// Task returns a copy of the task with id.
func (e *Engine) Task(id int64) (*models.Task, error) {
	var (
		out *models.Task
		err = ErrTaskNotFound
	)
	e.read(func(s *models.State) {
		for _, t := range s.Tasks {
			if t.ID == id {
				out, err = t.Clone(), nil
				return
			}
		}
	})
	return out, err
}

// Tasks lists tasks in creation order.
func (e *Engine) Tasks(filter models.TaskFilter) []*models.Task {
	var out []*models.Task
	e.read(func(s *models.State) {
		for _, t := range s.Tasks {
			if filter.MainOnly && t.IsSubTask {
				continue
			}
			if filter.Status != "" && t.Status != filter.Status {
				continue
			}
			if filter.BranchID != "" && t.BranchID != filter.BranchID {
				continue
			}
			if filter.UserID != "" && t.CreatedBy != filter.UserID && !t.HasParticipant(filter.UserID) {
				continue
			}
			out = append(out, t.Clone())
		}
	})
	return out
}

// SubTasks lists the sub-tasks linked to parentID.
func (e *Engine) SubTasks(parentID int64) []*models.Task {
	var out []*models.Task
	e.read(func(s *models.State) {
		for _, t := range s.Tasks {
			if t.IsSubTask && t.ParentTaskID != nil && *t.ParentTaskID == parentID {
				out = append(out, t.Clone())
			}
		}
	})
	return out
}

// Message returns a copy of the message with id.
func (e *Engine) Message(id string) (*models.Message, error) {
	var (
		out *models.Message
		err = ErrMessageNotFound
	)
	e.read(func(s *models.State) {
		for _, m := range s.Messages {
			if m.ID == id {
				out, err = m.Clone(), nil
				return
			}
		}
	})
	return out, err
}

// Messages lists the messages addressed to userID, oldest first.
func (e *Engine) Messages(userID string, unreadOnly bool) []*models.Message {
	var out []*models.Message
	e.read(func(s *models.State) {
		for _, m := range s.Messages {
			if m.To != userID || (unreadOnly && m.Read) {
				continue
			}
			out = append(out, m.Clone())
		}
	})
	return out
}

// MarkRead flags a message as read by its recipient.
func (e *Engine) MarkRead(ctx context.Context, messageID, userID string) error {
	return e.mutate(ctx, "mark_read", func(tx *txn) error {
		m, err := tx.message(messageID)
		if err != nil {
			return err
		}
		if m.To != userID {
			return ErrNotRecipient
		}
		m.Read = true
		return nil
	})
}
