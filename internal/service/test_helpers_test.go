package service

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"

	workflowv1 "github.com/ledgerly111/ledgerly111.github.io-sub000/api/workflow/v1"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/directory"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/middleware"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/workflow"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/pkg/notify"
)

// TestHelpers runs the workflow service behind the production interceptor
// chain on an in-memory listener.
type TestHelpers struct {
	t         *testing.T
	engine    *workflow.Engine
	directory *directory.Directory
	publisher *notify.MockPublisher
	client    workflowv1.WorkflowServiceClient
}

// NewTestHelpers starts a server and connects a client to it
func NewTestHelpers(t *testing.T) *TestHelpers {
	t.Helper()

	dir := directory.New(directory.File{
		Users: []models.User{
			{ID: "owner", Name: "Olivia", Role: models.RoleManager},
			{ID: "u1", Name: "Uma", Role: models.RoleWorker},
			{ID: "u2", Name: "Umar", Role: models.RoleWorker},
			{ID: "worker", Name: "Will", Role: models.RoleWorker},
		},
		Branches: []models.Branch{
			{ID: "north", Name: "North", Members: []string{"owner", "u1"}},
		},
		Products: []models.Product{
			{ID: "p1", Name: "Widget", Cost: 4, Price: 10, Stock: 5},
		},
	})
	publisher := notify.NewMockPublisher()
	log := zerolog.Nop()

	engine := workflow.New(nil, workflow.Dependencies{
		Users:     dir,
		Branches:  dir,
		Products:  dir,
		Inventory: dir,
		Publisher: publisher,
		Clock:     func() time.Time { return time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC) },
		Logger:    log,
	})

	server := grpc.NewServer(grpc.ChainUnaryInterceptor(
		middleware.NewMetadataExtractorInterceptor().Unary(),
		middleware.NewIdentityInterceptor(dir).Unary(),
		middleware.NewLoggingInterceptor(log).Unary(),
		middleware.NewValidationInterceptor(nil).Unary(),
	))
	workflowv1.RegisterWorkflowServiceServer(server, NewWorkflowService(engine, log))

	lis := bufconn.Listen(1024 * 1024)
	go func() { _ = server.Serve(lis) }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &TestHelpers{
		t:         t,
		engine:    engine,
		directory: dir,
		publisher: publisher,
		client:    workflowv1.NewWorkflowServiceClient(conn),
	}
}

// As returns a context that identifies the caller as userID
func (h *TestHelpers) As(userID string) context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), middleware.UserIDHeader, userID)
}

// CreateTestTask creates a sales task owned by creator
func (h *TestHelpers) CreateTestTask(creator string, target float64, limit int) *models.Task {
	h.t.Helper()
	resp, err := h.client.CreateTask(h.As(creator), &workflowv1.CreateTaskRequest{Spec: models.TaskSpec{
		Title:            "Q4 push",
		GoalType:         models.GoalTypeSales,
		GoalTarget:       target,
		ParticipantLimit: limit,
	}})
	require.NoError(h.t, err)
	return resp.Task
}
