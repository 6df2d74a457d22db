package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/report"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/workflow"
)

// TaskSource is the read side of the engine the HTTP surface needs.
type TaskSource interface {
	Tasks(filter models.TaskFilter) []*models.Task
	Leaderboard(taskID int64) (*workflow.Leaderboard, error)
}

// ReportHandler serves task listings and leaderboard exports
type ReportHandler struct {
	tasks TaskSource
	log   zerolog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(tasks TaskSource, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{tasks: tasks, log: log}
}

// ListTasks returns main tasks, optionally narrowed by status and branch
// GET /api/v1/tasks?status=active&branch=north
func (h *ReportHandler) ListTasks(c *gin.Context) {
	status := c.Query("status")
	if status != "" && status != models.TaskStatusActive && status != models.TaskStatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid status %q", status)})
		return
	}

	tasks := h.tasks.Tasks(models.TaskFilter{
		Status:   status,
		BranchID: c.Query("branch"),
		MainOnly: true,
	})
	if tasks == nil {
		tasks = []*models.Task{}
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// Leaderboard renders a task leaderboard as JSON, plain text or PDF
// GET /api/v1/tasks/:id/leaderboard?format=json|txt|pdf
func (h *ReportHandler) Leaderboard(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	lb, err := h.tasks.Leaderboard(id)
	if errors.Is(err, workflow.ErrTaskNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Int64("task_id", id).Msg("Failed to build leaderboard")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build leaderboard"})
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "json":
		c.JSON(http.StatusOK, lb)
	case "txt":
		var buf bytes.Buffer
		if err := report.WriteText(&buf, lb); err != nil {
			h.log.Error().Err(err).Int64("task_id", id).Msg("Failed to render text leaderboard")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render leaderboard"})
			return
		}
		c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
	case "pdf":
		data, err := report.PDF(lb)
		if err != nil {
			h.log.Error().Err(err).Int64("task_id", id).Msg("Failed to render PDF leaderboard")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render leaderboard"})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="leaderboard-%d.pdf"`, id))
		c.Data(http.StatusOK, "application/pdf", data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be json, txt or pdf"})
	}
}
