// Package repository persists whole-state snapshots of the workflow engine.
package repository

import (
	"context"
	"errors"

	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
)

// ErrSnapshotNotFound is returned by Load when no snapshot exists for a key.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository stores one state snapshot per key. Save replaces the
// previous snapshot as a whole.
type SnapshotRepository interface {
	Load(ctx context.Context, key string) (*models.State, error)
	Save(ctx context.Context, key string, state *models.State) error
	Close(ctx context.Context) error
}
