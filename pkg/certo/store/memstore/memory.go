package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/certolabs/certo/pkg/certo/kb"
	"github.com/certolabs/certo/pkg/certo/store"
)

// Store is an in-memory implementation of store.Store for tests and
// ephemeral use.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]store.Snapshot
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{snapshots: make(map[string]store.Snapshot)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveSnapshot inserts or replaces a snapshot, keyed by ID.
func (s *Store) SaveSnapshot(ctx context.Context, snap store.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snap.ID] = copySnapshot(snap)
	return nil
}

// GetSnapshot returns a snapshot by ID.
func (s *Store) GetSnapshot(ctx context.Context, id string) (store.Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if snap, ok := s.snapshots[id]; ok {
		return copySnapshot(snap), true, nil
	}
	return store.Snapshot{}, false, nil
}

// ListSnapshots returns all snapshots ordered by creation time, newest
// first, with ID as tiebreaker.
func (s *Store) ListSnapshots(ctx context.Context) ([]store.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Snapshot, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		out = append(out, copySnapshot(snap))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// DeleteSnapshot removes a snapshot by ID.
func (s *Store) DeleteSnapshot(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, id)
	return nil
}

// copySnapshot deep-copies so callers can't mutate stored state.
func copySnapshot(in store.Snapshot) store.Snapshot {
	out := in

	out.KB.Rules = make([]kb.Rule, len(in.KB.Rules))
	for i, r := range in.KB.Rules {
		conds := make([]kb.Fact, len(r.Antecedent.Conditions))
		copy(conds, r.Antecedent.Conditions)
		r.Antecedent.Conditions = conds
		out.KB.Rules[i] = r
	}

	out.FB.Initial = make([]kb.Fact, len(in.FB.Initial))
	copy(out.FB.Initial, in.FB.Initial)
	out.FB.Memory = make(map[string]float64, len(in.FB.Memory))
	for name, cf := range in.FB.Memory {
		out.FB.Memory[name] = cf
	}

	return out
}
