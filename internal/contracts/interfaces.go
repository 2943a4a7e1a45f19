package contracts

import (
	"context"
	"errors"
)

// ErrSnapshotNotFound is returned when no snapshot is stored for a symbol
var ErrSnapshotNotFound = errors.New("snapshot not found")

// MarketDataSource fetches daily history for provider tickers
// ⭐ SSOT: 시세 수집 인터페이스
type MarketDataSource interface {
	FetchAll(ctx context.Context, tickers []string) (RawTable, map[string]error)
}

// SnapshotSink persists a batch of snapshots. Later writes overwrite earlier ones per symbol.
// ⭐ SSOT: 스냅샷 저장 인터페이스
type SnapshotSink interface {
	Save(ctx context.Context, snapshots []*SymbolSnapshot) error
}

// SnapshotReader reads persisted snapshots
type SnapshotReader interface {
	Get(ctx context.Context, symbol string) (*SymbolSnapshot, error)
	List(ctx context.Context) ([]*SymbolSnapshot, error)
}
