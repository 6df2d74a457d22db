package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"

	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
)

// SnapshotTable is the PostgreSQL table holding serialized snapshots.
const SnapshotTable = "app_snapshots"

type snapshotRow struct {
	Key       string    `db:"key"`
	State     []byte    `db:"state"`
	UpdatedAt time.Time `db:"updated_at"`
}

type PostgresSnapshotRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewPostgresSnapshotRepository(db *sqlx.DB) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{
		db:  db,
		now: time.Now,
	}
}

// createTableStatement is the DDL for the snapshot table. The ent builder
// only covers DML, so the table is created with plain SQL.
const createTableStatement = `CREATE TABLE IF NOT EXISTS ` + SnapshotTable + ` (
	key        text PRIMARY KEY,
	state      jsonb NOT NULL,
	updated_at timestamptz NOT NULL
)`

// Migrate creates the snapshot table if it does not exist.
func (r *PostgresSnapshotRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTableStatement); err != nil {
		return fmt.Errorf("create %s: %w", SnapshotTable, err)
	}
	return nil
}

func (r *PostgresSnapshotRepository) Load(ctx context.Context, key string) (*models.State, error) {
	query, args := entsql.Dialect(dialect.Postgres).
		Select("key", "state", "updated_at").
		From(entsql.Table(SnapshotTable)).
		Where(entsql.EQ("key", key)).
		Query()

	var row snapshotRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("load snapshot %q: %w", key, err)
	}

	state := models.NewState()
	if err := json.Unmarshal(row.State, state); err != nil {
		return nil, fmt.Errorf("decode snapshot %q: %w", key, err)
	}
	return state, nil
}

func (r *PostgresSnapshotRepository) Save(ctx context.Context, key string, state *models.State) error {
	data, err := json.Marshal(state.Persistable())
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	query, args := entsql.Dialect(dialect.Postgres).
		Insert(SnapshotTable).
		Columns("key", "state", "updated_at").
		Values(key, string(data), r.now().UTC()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save snapshot %q: %w", key, err)
	}
	return nil
}

func (r *PostgresSnapshotRepository) Close(context.Context) error {
	return r.db.Close()
}
