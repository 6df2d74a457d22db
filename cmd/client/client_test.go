package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
)

func TestParseItem(t *testing.T) {
	tests := []struct {
		raw     string
		want    models.SaleItem
		wantErr bool
	}{
		{raw: "p1:2", want: models.SaleItem{ProductID: "p1", Quantity: 2}},
		{raw: "p1:1.5:9.99", want: models.SaleItem{ProductID: "p1", Quantity: 1.5, UnitPrice: 9.99}},
		{raw: "p1", wantErr: true},
		{raw: ":2", wantErr: true},
		{raw: "p1:0", wantErr: true},
		{raw: "p1:x", wantErr: true},
		{raw: "p1:1:y", wantErr: true},
		{raw: "p1:1:2:3", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseItem(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpecFlags(t *testing.T) {
	f := &specFlags{title: "Q4", goalType: models.GoalTypeProfit, target: 500, limit: 4, due: "2026-12-31"}
	spec, err := f.spec()
	require.NoError(t, err)
	assert.Equal(t, "Q4", spec.Title)
	assert.Equal(t, 4, spec.ParticipantLimit)
	require.NotNil(t, spec.DueDate)
	assert.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), *spec.DueDate)

	f.due = "31/12/2026"
	_, err = f.spec()
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"0", "-1", "abc"} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestWriteTaskTable(t *testing.T) {
	parent := int64(1)
	var buf bytes.Buffer
	writeTaskTable(&buf, []*models.Task{
		{ID: 1, Title: "Q4 push", GoalType: models.GoalTypeSales, GoalTarget: 100, Progress: 50, ParticipantLimit: 2, Participants: []string{"a"}, Status: models.TaskStatusActive},
		{ID: 2, ParentTaskID: &parent, Title: "Q4 push", GoalType: models.GoalTypeSales, GoalTarget: 50, Progress: 50, ParticipantLimit: 1, Participants: []string{"a"}, Status: models.TaskStatusCompleted},
	})
	out := buf.String()
	assert.Contains(t, out, "50.00 (50%)")
	assert.Contains(t, out, "50.00 (100%)")
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "PARTICIPANTS")
}

func TestCommandTree(t *testing.T) {
	root := newRootCmd()

	paths := [][]string{
		{"task", "create"}, {"task", "edit"}, {"task", "get"}, {"task", "list"},
		{"task", "delete"}, {"task", "join"}, {"task", "assign"}, {"task", "leaderboard"},
		{"sale"},
		{"stock", "request"}, {"stock", "send"}, {"stock", "approve"}, {"stock", "accept"}, {"stock", "decline"},
		{"inbox", "list"}, {"inbox", "read"},
	}
	for _, p := range paths {
		cmd, rest, err := root.Find(p)
		require.NoError(t, err, p)
		assert.Empty(t, rest, p)
		assert.Equal(t, p[len(p)-1], cmd.Name())
	}
}

func TestDeclineRequiresReason(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"stock", "decline", "m1"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reason")
}
