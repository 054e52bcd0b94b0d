package store

import (
	"context"
	"time"

	"github.com/certolabs/certo/pkg/certo/kb"
)

// Store persists loaded knowledge/fact base snapshots so tools can
// inspect or reload them without re-parsing the source files.
type Store interface {
	Close() error

	SaveSnapshot(ctx context.Context, s Snapshot) error
	GetSnapshot(ctx context.Context, id string) (Snapshot, bool, error)
	ListSnapshots(ctx context.Context) ([]Snapshot, error)
	DeleteSnapshot(ctx context.Context, id string) error
}

// Snapshot is one fully loaded pair of bases, frozen at load time.
type Snapshot struct {
	ID        string
	Label     string
	CreatedAt time.Time
	KB        kb.KnowledgeBase
	FB        kb.FactBase
}
