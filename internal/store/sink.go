package store

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"

	"github.com/perfhelf/FXview/internal/contracts"
	"github.com/perfhelf/FXview/internal/snapshot"
)

// ListingSink writes the flat {symbol: payload} listing to an io.Writer
type ListingSink struct {
	w io.Writer
}

// NewListingSink creates a listing sink
func NewListingSink(w io.Writer) *ListingSink {
	return &ListingSink{w: w}
}

// Save writes one listing per call
func (s *ListingSink) Save(_ context.Context, snapshots []*contracts.SymbolSnapshot) error {
	return snapshot.WriteListing(s.w, snapshots)
}

// MultiSink fans a batch out to every sink in order, stopping at the first error
type MultiSink []contracts.SnapshotSink

// Save implements contracts.SnapshotSink
func (m MultiSink) Save(ctx context.Context, snapshots []*contracts.SymbolSnapshot) error {
	for _, sink := range m {
		if err := sink.Save(ctx, snapshots); err != nil {
			return err
		}
	}
	return nil
}

// MemoryStore is an in-process sink and reader, used when no database is configured
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*contracts.SymbolSnapshot
}

// NewMemoryStore creates an empty memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]*contracts.SymbolSnapshot)}
}

// Save replaces stored snapshots per symbol
func (m *MemoryStore) Save(_ context.Context, snapshots []*contracts.SymbolSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range snapshots {
		if s == nil {
			return errors.New("nil snapshot")
		}
		m.items[s.Symbol] = snapshot.Sanitize(s)
	}
	return nil
}

// Get returns the stored snapshot for symbol
func (m *MemoryStore) Get(_ context.Context, symbol string) (*contracts.SymbolSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.items[symbol]
	if !ok {
		return nil, contracts.ErrSnapshotNotFound
	}
	return s, nil
}

// List returns every stored snapshot ordered by symbol
func (m *MemoryStore) List(_ context.Context) ([]*contracts.SymbolSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*contracts.SymbolSnapshot, 0, len(m.items))
	for _, s := range m.items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out, nil
}
