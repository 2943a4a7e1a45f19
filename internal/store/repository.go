// Package store persists snapshots to Postgres, Redis and JSON listings.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/perfhelf/FXview/internal/contracts"
	"github.com/perfhelf/FXview/internal/snapshot"
)

// DBPool is the subset of pgxpool.Pool used by the repository
type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS godview_snapshot (
		symbol     TEXT PRIMARY KEY,
		data       JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

const upsertSQL = `
	INSERT INTO godview_snapshot (symbol, data, updated_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (symbol) DO UPDATE SET
		data = EXCLUDED.data,
		updated_at = EXCLUDED.updated_at
`

// SnapshotRepository implements contracts.SnapshotSink and contracts.SnapshotReader
// ⭐ SSOT: godview_snapshot 테이블 접근은 여기서만
type SnapshotRepository struct {
	db    DBPool
	clock func() time.Time
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db DBPool) *SnapshotRepository {
	return &SnapshotRepository{db: db, clock: time.Now}
}

// EnsureSchema creates the snapshot table when absent
func (r *SnapshotRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create godview_snapshot: %w", err)
	}
	return nil
}

// Save upserts every snapshot in one transaction
func (r *SnapshotRepository) Save(ctx context.Context, snapshots []*contracts.SymbolSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	updatedAt := r.clock().UTC()
	for _, s := range snapshots {
		data, err := json.Marshal(snapshot.Sanitize(s))
		if err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("failed to marshal snapshot %s: %w", s.Symbol, err)
		}
		if _, err := tx.Exec(ctx, upsertSQL, s.Symbol, data, updatedAt); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("failed to upsert snapshot %s: %w", s.Symbol, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit snapshots: %w", err)
	}
	return nil
}

// Get returns the stored snapshot for symbol
func (r *SnapshotRepository) Get(ctx context.Context, symbol string) (*contracts.SymbolSnapshot, error) {
	query := `SELECT data FROM godview_snapshot WHERE symbol = $1`

	var data []byte
	err := r.db.QueryRow(ctx, query, symbol).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, contracts.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot %s: %w", symbol, err)
	}
	return decode(data)
}

// List returns every stored snapshot ordered by symbol
func (r *SnapshotRepository) List(ctx context.Context) ([]*contracts.SymbolSnapshot, error) {
	query := `SELECT data FROM godview_snapshot ORDER BY symbol`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var out []*contracts.SymbolSnapshot
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		s, err := decode(data)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func decode(data []byte) (*contracts.SymbolSnapshot, error) {
	var s contracts.SymbolSnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &s, nil
}
