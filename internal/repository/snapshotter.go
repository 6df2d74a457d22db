package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
)

// Snapshotter writes engine snapshots in the background. Submissions that
// arrive while a save is running coalesce: only the latest pending snapshot
// is written next. Save failures are logged and the snapshot is retried on
// the next submission.
type Snapshotter struct {
	repo    SnapshotRepository
	key     string
	log     zerolog.Logger
	timeout time.Duration

	mu      sync.Mutex
	pending *models.State
	closed  bool

	wake chan struct{}
	done chan struct{}
}

// NewSnapshotter starts the background writer for key.
func NewSnapshotter(repo SnapshotRepository, key string, log zerolog.Logger) *Snapshotter {
	s := &Snapshotter{
		repo:    repo,
		key:     key,
		log:     log.With().Str("component", "snapshotter").Str("key", key).Logger(),
		timeout: 10 * time.Second,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go s.run()
	return s
}

// Submit queues state for saving without blocking the caller.
func (s *Snapshotter) Submit(state *models.State) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.log.Warn().Msg("snapshot submitted after close, dropped")
		return
	}
	s.pending = state
	select {
	case s.wake <- struct{}{}:
	default:
	}
	s.mu.Unlock()
}

// Close flushes the last pending snapshot and stops the writer.
func (s *Snapshotter) Close(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.wake)
	}
	s.mu.Unlock()

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Snapshotter) run() {
	defer close(s.done)
	for range s.wake {
		s.flush()
	}
	s.flush()
}

func (s *Snapshotter) flush() {
	s.mu.Lock()
	state := s.pending
	s.pending = nil
	s.mu.Unlock()
	if state == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.repo.Save(ctx, s.key, state); err != nil {
		s.log.Warn().Err(err).Msg("failed to save snapshot")
		s.mu.Lock()
		if s.pending == nil {
			s.pending = state
		}
		s.mu.Unlock()
		return
	}
	s.log.Debug().Int("tasks", len(state.Tasks)).Int("messages", len(state.Messages)).Msg("snapshot saved")
}
