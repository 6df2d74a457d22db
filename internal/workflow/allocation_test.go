package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Join(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	main, err := env.engine.CreateTask(ctx, "owner", salesSpec(1000, 2))
	require.NoError(t, err)

	sub, err := env.engine.Join(ctx, main.ID, "u1")
	require.NoError(t, err)

	assert.True(t, sub.IsSubTask)
	require.NotNil(t, sub.ParentTaskID)
	assert.Equal(t, main.ID, *sub.ParentTaskID)
	assert.Equal(t, []string{"u1"}, sub.Participants)
	assert.Equal(t, "u1", sub.CreatedBy)
	assert.Equal(t, 1, sub.ParticipantLimit)
	assert.Equal(t, 500.0, sub.GoalTarget)
	assert.Equal(t, 0.0, sub.Progress)
	assert.Equal(t, "Q4 push: Uma", sub.Title)

	updated := mustTask(t, env.engine, main.ID)
	assert.Equal(t, []string{"owner", "u1"}, updated.Participants)
}

func TestEngine_Join_Errors(t *testing.T) {
	tests := []struct {
		name    string
		taskID  int64
		userID  string
		wantErr error
	}{
		{name: "already joined", taskID: 1, userID: "owner", wantErr: ErrAlreadyJoined},
		{name: "capacity exceeded", taskID: 1, userID: "u2", wantErr: ErrCapacityExceeded},
		{name: "sub-task target", taskID: 2, userID: "u2", wantErr: ErrNotMainTask},
		{name: "unknown task", taskID: 404, userID: "u2", wantErr: ErrTaskNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			ctx := context.Background()

			_, err := env.engine.CreateTask(ctx, "owner", salesSpec(1000, 2))
			require.NoError(t, err)
			_, err = env.engine.Join(ctx, 1, "u1")
			require.NoError(t, err)

			before := env.engine.Snapshot()
			_, err = env.engine.Join(ctx, tt.taskID, tt.userID)
			assert.ErrorIs(t, err, tt.wantErr)

			// A rejected join leaves no trace.
			assert.Equal(t, before, env.engine.Snapshot())
		})
	}
}

func TestEngine_Join_ProRataShareIgnoresHeadcount(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	main, err := env.engine.CreateTask(ctx, "owner", salesSpec(900, 3))
	require.NoError(t, err)

	for _, sub := range env.engine.SubTasks(main.ID) {
		assert.Equal(t, 300.0, sub.GoalTarget)
	}

	sub, err := env.engine.Join(ctx, main.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, 300.0, sub.GoalTarget)

	subs := env.engine.SubTasks(main.ID)
	assert.Len(t, subs, 2)
	assert.Len(t, mustTask(t, env.engine, main.ID).Participants, 2)
}

func TestEngine_Join_PartitionsParticipants(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	main, err := env.engine.CreateTask(ctx, "owner", salesSpec(1000, 4))
	require.NoError(t, err)
	for _, u := range []string{"u1", "u2", "worker"} {
		_, err := env.engine.Join(ctx, main.ID, u)
		require.NoError(t, err)
	}

	parent := mustTask(t, env.engine, main.ID)
	owners := make(map[string]int)
	for _, sub := range env.engine.SubTasks(main.ID) {
		require.Len(t, sub.Participants, 1)
		owners[sub.Owner()]++
	}
	assert.Len(t, owners, len(parent.Participants))
	for _, p := range parent.Participants {
		assert.Equal(t, 1, owners[p], p)
	}
}

func TestEngine_Join_CompletedTask(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	main, err := env.engine.CreateTask(ctx, "owner", salesSpec(100, 2))
	require.NoError(t, err)
	_, err = env.engine.RecordSale(ctx, sale("owner", 100))
	require.NoError(t, err)

	// Completion does not close enrollment; the new share starts fresh.
	sub, err := env.engine.Join(ctx, main.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, 50.0, sub.GoalTarget)
	assert.Equal(t, "active", sub.Status)
}
