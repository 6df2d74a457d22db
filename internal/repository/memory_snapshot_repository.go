package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
)

// MemorySnapshotRepository keeps serialized snapshots in process memory.
// Round-tripping through JSON keeps stored snapshots isolated from callers.
type MemorySnapshotRepository struct {
	mu    sync.RWMutex
	data  map[string][]byte
	saves int
}

func NewMemorySnapshotRepository() *MemorySnapshotRepository {
	return &MemorySnapshotRepository{data: make(map[string][]byte)}
}

func (r *MemorySnapshotRepository) Load(_ context.Context, key string) (*models.State, error) {
	r.mu.RLock()
	raw, ok := r.data[key]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	state := models.NewState()
	if err := json.Unmarshal(raw, state); err != nil {
		return nil, fmt.Errorf("decode snapshot %q: %w", key, err)
	}
	return state, nil
}

func (r *MemorySnapshotRepository) Save(_ context.Context, key string, state *models.State) error {
	raw, err := json.Marshal(state.Persistable())
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = raw
	r.saves++
	return nil
}

// Saves reports how many snapshots have been written.
func (r *MemorySnapshotRepository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}

func (r *MemorySnapshotRepository) Close(context.Context) error {
	return nil
}
