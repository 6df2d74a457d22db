package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/workflow"
)

type fakeTasks struct {
	filter models.TaskFilter
	tasks  []*models.Task
	boards map[int64]*workflow.Leaderboard
}

func (f *fakeTasks) Tasks(filter models.TaskFilter) []*models.Task {
	f.filter = filter
	return f.tasks
}

func (f *fakeTasks) Leaderboard(taskID int64) (*workflow.Leaderboard, error) {
	lb, ok := f.boards[taskID]
	if !ok {
		return nil, workflow.ErrTaskNotFound
	}
	return lb, nil
}

func setupRouter(t *testing.T) (*gin.Engine, *fakeTasks) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	src := &fakeTasks{
		tasks: []*models.Task{{ID: 1, Title: "Q4 push", Status: models.TaskStatusActive}},
		boards: map[int64]*workflow.Leaderboard{
			1: {
				TaskID:      1,
				Title:       "Q4 push",
				GoalType:    models.GoalTypeSales,
				GoalTarget:  100,
				Progress:    40,
				Status:      models.TaskStatusActive,
				WindowStart: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
				GeneratedAt: time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC),
				Entries: []workflow.LeaderboardEntry{
					{Rank: 1, UserID: "u1", Name: "Uma", Contribution: 40, Sales: 1, SharePercent: 40},
				},
			},
		},
	}
	return SetupRouter(NewReportHandler(src, zerolog.Nop()), zerolog.Nop()), src
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _ := setupRouter(t)
	w := get(r, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestListTasks(t *testing.T) {
	r, src := setupRouter(t)

	w := get(r, "/api/v1/tasks?status=active&branch=north")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Tasks []models.Task `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Tasks, 1)
	assert.Equal(t, "Q4 push", body.Tasks[0].Title)
	assert.Equal(t, models.TaskFilter{Status: models.TaskStatusActive, BranchID: "north", MainOnly: true}, src.filter)

	w = get(r, "/api/v1/tasks?status=done")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLeaderboard(t *testing.T) {
	r, _ := setupRouter(t)

	tests := []struct {
		name        string
		path        string
		wantStatus  int
		contentType string
		check       func(t *testing.T, body []byte)
	}{
		{
			name:        "json by default",
			path:        "/api/v1/tasks/1/leaderboard",
			wantStatus:  http.StatusOK,
			contentType: "application/json",
			check: func(t *testing.T, body []byte) {
				var lb workflow.Leaderboard
				require.NoError(t, json.Unmarshal(body, &lb))
				require.Len(t, lb.Entries, 1)
				assert.Equal(t, "u1", lb.Entries[0].UserID)
			},
		},
		{
			name:        "plain text",
			path:        "/api/v1/tasks/1/leaderboard?format=txt",
			wantStatus:  http.StatusOK,
			contentType: "text/plain",
			check: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), "Uma")
			},
		},
		{
			name:        "pdf",
			path:        "/api/v1/tasks/1/leaderboard?format=pdf",
			wantStatus:  http.StatusOK,
			contentType: "application/pdf",
			check: func(t *testing.T, body []byte) {
				assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
			},
		},
		{name: "unknown format", path: "/api/v1/tasks/1/leaderboard?format=xml", wantStatus: http.StatusBadRequest},
		{name: "bad id", path: "/api/v1/tasks/abc/leaderboard", wantStatus: http.StatusBadRequest},
		{name: "missing task", path: "/api/v1/tasks/9/leaderboard", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, tt.path)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.contentType != "" {
				assert.Contains(t, w.Header().Get("Content-Type"), tt.contentType)
			}
			if tt.check != nil {
				tt.check(t, w.Body.Bytes())
			}
		})
	}
}
