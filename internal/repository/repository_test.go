package repository

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/database"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
)

func sampleState() *models.State {
	parent := int64(1)
	due := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	return &models.State{
		NextTaskID: 3,
		Tasks: []*models.Task{
			{
				ID: 1, Title: "Q4 push", CreatedBy: "owner", CreatedAt: created, DueDate: &due,
				GoalType: models.GoalTypeSales, GoalTarget: 1000, ParticipantLimit: 1,
				Participants: []string{"owner"}, Progress: 250, Status: models.TaskStatusActive,
				LastNotifiedProgress: 25,
			},
			{
				ID: 2, ParentTaskID: &parent, IsSubTask: true, Title: "Q4 push: Olivia", CreatedBy: "owner",
				CreatedAt: created, GoalType: models.GoalTypeSales, GoalTarget: 1000, ParticipantLimit: 1,
				Participants: []string{"owner"}, Progress: 250, Status: models.TaskStatusActive,
				LastNotifiedProgress: 25,
			},
		},
		Messages: []*models.Message{
			{
				ID: "m1", From: "owner", To: "worker", Subject: "Stock request", Timestamp: created,
				Type: models.MessageTypeTask, Category: models.CategoryRoutine, RequesterID: "owner",
				WorkerID: "worker", ManagerID: "owner", Status: models.ApprovalPendingWorker,
				TaskDetails: &models.TaskDetails{ProductID: "p1", RequestedStock: 2},
			},
		},
		Sales: []models.SaleRecord{
			{ID: "s1", SalesPersonID: "owner", Total: 250, Profit: 90, Date: created},
		},
		Session: &models.SessionState{Loading: true},
	}
}

func assertRoundTrip(t *testing.T, repo SnapshotRepository) {
	t.Helper()
	ctx := context.Background()
	key := "test-" + time.Now().Format("150405.000000000")

	_, err := repo.Load(ctx, key)
	require.ErrorIs(t, err, ErrSnapshotNotFound)

	want := sampleState()
	require.NoError(t, repo.Save(ctx, key, want))

	got, err := repo.Load(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got.Session)
	assert.Equal(t, want.NextTaskID, got.NextTaskID)
	require.Len(t, got.Tasks, 2)
	require.NotNil(t, got.Tasks[1].ParentTaskID)
	assert.Equal(t, int64(1), *got.Tasks[1].ParentTaskID)
	assert.True(t, want.Tasks[0].DueDate.Equal(*got.Tasks[0].DueDate))
	assert.Equal(t, want.Tasks[0].Participants, got.Tasks[0].Participants)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, models.ApprovalPendingWorker, got.Messages[0].Status)
	assert.Equal(t, 2, got.Messages[0].TaskDetails.RequestedStock)
	require.Len(t, got.Sales, 1)
	assert.Equal(t, 90.0, got.Sales[0].Profit)

	// Saving again replaces the snapshot.
	want.NextTaskID = 10
	want.Tasks = want.Tasks[:1]
	require.NoError(t, repo.Save(ctx, key, want))
	got, err = repo.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.NextTaskID)
	assert.Len(t, got.Tasks, 1)
}

func TestMemorySnapshotRepository(t *testing.T) {
	assertRoundTrip(t, NewMemorySnapshotRepository())
}

func TestMemorySnapshotRepository_Isolation(t *testing.T) {
	repo := NewMemorySnapshotRepository()
	ctx := context.Background()

	state := sampleState()
	require.NoError(t, repo.Save(ctx, "k", state))
	state.Tasks[0].Title = "mutated"

	got, err := repo.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "Q4 push", got.Tasks[0].Title)
}

func TestPostgresSnapshotRepository(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := database.Open(dsn)
	require.NoError(t, err)

	repo := NewPostgresSnapshotRepository(db)
	t.Cleanup(func() { repo.Close(context.Background()) })
	require.NoError(t, repo.Migrate(context.Background()))

	assertRoundTrip(t, repo)
}

func TestMongoSnapshotRepository(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	repo, err := NewMongoSnapshotRepository(context.Background(), MongoConfig{
		URI:        uri,
		Database:   "workflow_test",
		Collection: "snapshots",
	})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close(context.Background()) })

	assertRoundTrip(t, repo)
}

func TestCreateTableStatement(t *testing.T) {
	assert.True(t, strings.HasPrefix(createTableStatement, "CREATE TABLE IF NOT EXISTS app_snapshots ("))
	assert.Contains(t, createTableStatement, "key        text PRIMARY KEY")
	assert.Contains(t, createTableStatement, "state      jsonb NOT NULL")
	assert.Contains(t, createTableStatement, "updated_at timestamptz NOT NULL")
}

// blockingRepository holds every Save until released.
type blockingRepository struct {
	*MemorySnapshotRepository
	release chan struct{}
	fail    bool

	mu    sync.Mutex
	saved []int64
}

func (r *blockingRepository) Save(ctx context.Context, key string, state *models.State) error {
	<-r.release
	r.mu.Lock()
	fail := r.fail
	r.fail = false
	r.mu.Unlock()
	if fail {
		return errors.New("disk full")
	}
	r.mu.Lock()
	r.saved = append(r.saved, state.NextTaskID)
	r.mu.Unlock()
	return r.MemorySnapshotRepository.Save(ctx, key, state)
}

func TestSnapshotter_SavesLatest(t *testing.T) {
	repo := NewMemorySnapshotRepository()
	s := NewSnapshotter(repo, "main", zerolog.Nop())

	for i := int64(1); i <= 5; i++ {
		st := models.NewState()
		st.NextTaskID = i
		s.Submit(st)
	}
	require.NoError(t, s.Close(context.Background()))

	got, err := repo.Load(context.Background(), "main")
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.NextTaskID)
	assert.LessOrEqual(t, repo.Saves(), 5)
}

func TestSnapshotter_CoalescesWhileSaving(t *testing.T) {
	repo := &blockingRepository{MemorySnapshotRepository: NewMemorySnapshotRepository(), release: make(chan struct{})}
	s := NewSnapshotter(repo, "main", zerolog.Nop())

	first := models.NewState()
	first.NextTaskID = 1
	s.Submit(first)

	// Let the writer pick up the first snapshot before queueing more.
	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.pending == nil
	}, time.Second, time.Millisecond)

	for i := int64(2); i <= 4; i++ {
		st := models.NewState()
		st.NextTaskID = i
		s.Submit(st)
	}
	close(repo.release)
	require.NoError(t, s.Close(context.Background()))

	assert.Equal(t, []int64{1, 4}, repo.saved)
}

func TestSnapshotter_RetriesAfterFailure(t *testing.T) {
	repo := &blockingRepository{MemorySnapshotRepository: NewMemorySnapshotRepository(), release: make(chan struct{}), fail: true}
	close(repo.release)
	s := NewSnapshotter(repo, "main", zerolog.Nop())

	st := models.NewState()
	st.NextTaskID = 7
	s.Submit(st)
	require.NoError(t, s.Close(context.Background()))

	got, err := repo.Load(context.Background(), "main")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.NextTaskID)
}

func TestSnapshotter_SubmitAfterClose(t *testing.T) {
	repo := NewMemorySnapshotRepository()
	s := NewSnapshotter(repo, "main", zerolog.Nop())
	require.NoError(t, s.Close(context.Background()))
	require.NoError(t, s.Close(context.Background()))

	s.Submit(models.NewState())
	assert.Equal(t, 0, repo.Saves())
}
