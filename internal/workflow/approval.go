package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/pkg/notify"
)

// transition is one row of the stock-request table.
type transition struct {
	to             models.ApprovalStatus
	requiresReason bool
	// next returns who the message is addressed to afterwards.
	next func(m *models.Message) string
}

func toManager(m *models.Message) string   { return m.ManagerID }
func toWorker(m *models.Message) string    { return m.WorkerID }
func toRequester(m *models.Message) string { return m.RequesterID }

// approvalTransitions is the complete stock-request state machine. Any pair
// missing from the table is an invalid transition.
var approvalTransitions = map[models.ApprovalStatus]map[models.ApprovalAction]transition{
	models.ApprovalPendingWorker: {
		models.ActionSendStockRequest: {to: models.ApprovalPendingManager, next: toManager},
		models.ActionDeclineRequest:   {to: models.ApprovalDeclined, requiresReason: true, next: toRequester},
	},
	models.ApprovalPendingManager: {
		models.ActionApproveStockRequest: {to: models.ApprovalPendingAcceptance, next: toWorker},
		models.ActionDeclineRequest:      {to: models.ApprovalDeclined, requiresReason: true, next: toRequester},
	},
	models.ApprovalPendingAcceptance: {
		models.ActionAcceptStock: {to: models.ApprovalCompleted, next: toRequester},
	},
}

// ParseApprovalAction maps a wire string onto the closed action set.
func ParseApprovalAction(s string) (models.ApprovalAction, error) {
	switch a := models.ApprovalAction(strings.TrimSpace(s)); a {
	case models.ActionSendStockRequest, models.ActionApproveStockRequest,
		models.ActionAcceptStock, models.ActionDeclineRequest:
		return a, nil
	default:
		return "", fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, s)
	}
}

// CreateStockRequest opens a stock-request workflow addressed to the worker.
func (e *Engine) CreateStockRequest(ctx context.Context, req models.StockRequest) (*models.Message, error) {
	if req.RequesterID == "" || req.WorkerID == "" {
		return nil, fmt.Errorf("%w: requester and worker are required", ErrInvalidRequest)
	}
	if req.ProductID == "" || req.RequestedStock <= 0 {
		return nil, fmt.Errorf("%w: product and a positive quantity are required", ErrInvalidRequest)
	}
	if req.ManagerID == "" {
		req.ManagerID = req.RequesterID
	}
	if req.Category == "" {
		req.Category = models.CategoryRoutine
	}
	if req.Subject == "" {
		req.Subject = fmt.Sprintf("Stock request: %d x %s", req.RequestedStock, e.productName(req.ProductID))
	}

	var created *models.Message
	err := e.mutate(ctx, "create_stock_request", func(tx *txn) error {
		m := &models.Message{
			From:        req.RequesterID,
			To:          req.WorkerID,
			Subject:     req.Subject,
			Content:     req.Content,
			Type:        models.MessageTypeTask,
			Category:    req.Category,
			RequesterID: req.RequesterID,
			WorkerID:    req.WorkerID,
			ManagerID:   req.ManagerID,
			Status:      models.ApprovalPendingWorker,
			TaskDetails: &models.TaskDetails{
				ProductID:      req.ProductID,
				RequestedStock: req.RequestedStock,
			},
		}
		tx.appendMessage(m)
		tx.publishStockEvent(m, req.RequesterID, "")
		created = m.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// HandleApprovalAction applies action to a stock request on behalf of
// actorID. Only the current recipient may act; actions outside the table
// fail with ErrInvalidTransition and leave the message untouched.
func (e *Engine) HandleApprovalAction(ctx context.Context, messageID, actorID string, action models.ApprovalAction, reason string) (*models.Message, error) {
	var updated *models.Message
	err := e.mutate(ctx, "approval_action", func(tx *txn) error {
		m, err := tx.message(messageID)
		if err != nil {
			return err
		}
		if !m.IsStockRequest() {
			return fmt.Errorf("%w: message is not a stock request", ErrInvalidTransition)
		}
		if m.To != actorID {
			return ErrNotRecipient
		}
		t, ok := approvalTransitions[m.Status][action]
		if !ok {
			return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, m.Status)
		}
		reason = strings.TrimSpace(reason)
		if t.requiresReason && reason == "" {
			return ErrMissingReason
		}

		if t.to == models.ApprovalCompleted && m.TaskDetails != nil {
			if e.inventory == nil {
				return fmt.Errorf("%w: no inventory configured", ErrInventoryFailure)
			}
			if err := e.inventory.AdjustStock(m.TaskDetails.ProductID, m.TaskDetails.RequestedStock); err != nil {
				return fmt.Errorf("%w: %v", ErrInventoryFailure, err)
			}
		}

		m.History = append(m.History, models.HistoryEntry{
			Actor:     actorID,
			Action:    action,
			Timestamp: tx.now,
			Reason:    reason,
		})
		m.Status = t.to
		m.From = actorID
		m.To = t.next(m)
		m.Read = false

		tx.publishStockEvent(m, actorID, reason)
		updated = m.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (tx *txn) publishStockEvent(m *models.Message, actorID, reason string) {
	eventType := notify.EventStockRequest
	if m.Status.Terminal() {
		eventType = notify.EventStockRequestFinal
	}
	payload := map[string]interface{}{
		"status":   string(m.Status),
		"category": m.Category,
	}
	if m.TaskDetails != nil {
		payload["product_id"] = m.TaskDetails.ProductID
		payload["requested_stock"] = m.TaskDetails.RequestedStock
	}
	if reason != "" {
		payload["reason"] = reason
	}
	severity := "info"
	if m.Category == models.CategoryEmergency {
		severity = "high"
	}
	tx.publish(&notify.Event{
		EventType:    eventType,
		ActorID:      actorID,
		Recipients:   []string{m.To},
		ResourceType: "stock_request",
		ResourceID:   m.ID,
		Severity:     severity,
		Payload:      payload,
	})
}

func (e *Engine) productName(id string) string {
	if p, ok := e.products.Product(id); ok && p.Name != "" {
		return p.Name
	}
	return id
}
