// Package workflow implements the collaborative goal engine and the
// stock-request approval workflow on top of a process-local state.
package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/pkg/notify"
)

// BotSender is the author of system generated messages.
const BotSender = "accurabot"

// UserDirectory resolves user identities.
type UserDirectory interface {
	User(id string) (models.User, bool)
}

// BranchDirectory resolves branches.
type BranchDirectory interface {
	Branch(id string) (models.Branch, bool)
}

// ProductCatalog resolves product costs for profit derivation.
type ProductCatalog interface {
	Product(id string) (models.Product, bool)
}

// Inventory applies stock changes when a stock request completes.
type Inventory interface {
	AdjustStock(productID string, delta int) error
}

// SnapshotSink receives a persistable copy of the state after every commit.
type SnapshotSink interface {
	Submit(state *models.State)
}

// Dependencies groups the external collaborators of the engine. Nil
// collaborators fall back to empty implementations.
type Dependencies struct {
	Users     UserDirectory
	Branches  BranchDirectory
	Products  ProductCatalog
	Inventory Inventory
	Snapshots SnapshotSink
	Publisher notify.Publisher
	Clock     func() time.Time
	Logger    zerolog.Logger
}

// Engine owns the task and message collections. Every operation runs under
// one lock against a private copy of the state and is committed only when it
// succeeds, so one external event applies fully or not at all.
type Engine struct {
	mu    sync.Mutex
	state *models.State

	users     UserDirectory
	branches  BranchDirectory
	products  ProductCatalog
	inventory Inventory
	snapshots SnapshotSink
	publisher notify.Publisher
	clock     func() time.Time
	log       zerolog.Logger
}

// New creates an engine over state. A nil state starts empty.
func New(state *models.State, deps Dependencies) *Engine {
	if state == nil {
		state = models.NewState()
	}
	e := &Engine{
		state:     state.Clone(),
		users:     deps.Users,
		branches:  deps.Branches,
		products:  deps.Products,
		inventory: deps.Inventory,
		snapshots: deps.Snapshots,
		publisher: deps.Publisher,
		clock:     deps.Clock,
		log:       deps.Logger.With().Str("component", "workflow").Logger(),
	}
	if e.users == nil {
		e.users = emptyDirectory{}
	}
	if e.branches == nil {
		e.branches = emptyDirectory{}
	}
	if e.products == nil {
		e.products = emptyDirectory{}
	}
	if e.publisher == nil {
		e.publisher = notify.NewMockPublisher()
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	if e.state.NextTaskID < 1 {
		e.state.NextTaskID = 1
	}
	return e
}

// Restore replaces the whole state, typically with a loaded snapshot.
func (e *Engine) Restore(state *models.State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if state == nil {
		state = models.NewState()
	}
	e.state = state.Clone()
	if e.state.NextTaskID < 1 {
		e.state.NextTaskID = 1
	}
}

// Snapshot returns a persistable copy of the current state.
func (e *Engine) Snapshot() *models.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Persistable()
}

// txn is one in-flight operation against a copy of the state.
type txn struct {
	e      *Engine
	state  *models.State
	now    time.Time
	events []*notify.Event
}

func (e *Engine) mutate(ctx context.Context, op string, fn func(tx *txn) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx := &txn{e: e, state: e.state.Clone(), now: e.clock()}
	if err := fn(tx); err != nil {
		e.log.Info().Err(err).Str("op", op).Msg("operation rejected")
		return err
	}
	e.state = tx.state

	if e.snapshots != nil {
		e.snapshots.Submit(e.state.Persistable())
	}
	for _, ev := range tx.events {
		e.publisher.Publish(ctx, ev)
	}
	e.log.Debug().Str("op", op).Int("events", len(tx.events)).Msg("operation committed")
	return nil
}

func (e *Engine) read(fn func(s *models.State)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.state)
}

func (tx *txn) nextTaskID() int64 {
	id := tx.state.NextTaskID
	tx.state.NextTaskID++
	return id
}

func (tx *txn) task(id int64) (*models.Task, error) {
	for _, t := range tx.state.Tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, ErrTaskNotFound
}

func (tx *txn) message(id string) (*models.Message, error) {
	for _, m := range tx.state.Messages {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, ErrMessageNotFound
}

func (tx *txn) appendMessage(m *models.Message) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = tx.now
	}
	tx.state.Messages = append(tx.state.Messages, m)
}

func (tx *txn) publish(ev *notify.Event) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = tx.now
	}
	tx.events = append(tx.events, ev)
}

func (e *Engine) displayName(userID string) string {
	if u, ok := e.users.User(userID); ok && u.Name != "" {
		return u.Name
	}
	return userID
}

type emptyDirectory struct{}

func (emptyDirectory) User(string) (models.User, bool)       { return models.User{}, false }
func (emptyDirectory) Branch(string) (models.Branch, bool)   { return models.Branch{}, false }
func (emptyDirectory) Product(string) (models.Product, bool) { return models.Product{}, false }
