package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/certolabs/certo/pkg/certo/kb"
	"github.com/certolabs/certo/pkg/certo/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and the snapshot
// schema in place.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS snapshots (
	id TEXT PRIMARY KEY,
	label TEXT,
	created_at TEXT NOT NULL,
	goal TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_rules (
	snapshot_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	rule_id TEXT NOT NULL,
	operator TEXT NOT NULL,
	conditions TEXT NOT NULL,
	consequent TEXT NOT NULL,
	cf REAL NOT NULL,
	PRIMARY KEY(snapshot_id, seq),
	FOREIGN KEY(snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS snapshot_facts (
	snapshot_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	name TEXT NOT NULL,
	cf REAL NOT NULL,
	PRIMARY KEY(snapshot_id, seq),
	FOREIGN KEY(snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveSnapshot stores a snapshot transactionally, replacing any previous
// snapshot with the same ID.
func (s *sqliteStore) SaveSnapshot(ctx context.Context, snap store.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM snapshots WHERE id = ?", snap.ID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO snapshots (id, label, created_at, goal) VALUES (?, ?, ?, ?)",
		snap.ID, snap.Label, snap.CreatedAt.UTC().Format(time.RFC3339Nano), snap.FB.Goal.Name)
	if err != nil {
		return err
	}

	for seq, r := range snap.KB.Rules {
		names := make([]string, len(r.Antecedent.Conditions))
		for i, c := range r.Antecedent.Conditions {
			names[i] = c.Name
		}
		condJSON, err := json.Marshal(names)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO snapshot_rules (snapshot_id, seq, rule_id, operator, conditions, consequent, cf)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			snap.ID, seq, r.ID, r.Antecedent.Operator.String(), string(condJSON), r.Consequent.Name, r.CF)
		if err != nil {
			return err
		}
	}

	for seq, f := range snap.FB.Initial {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO snapshot_facts (snapshot_id, seq, name, cf) VALUES (?, ?, ?, ?)",
			snap.ID, seq, f.Name, f.CF)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetSnapshot returns a snapshot by ID, fully rebuilt: rules and facts in
// their original order, working memory reseeded from the facts.
func (s *sqliteStore) GetSnapshot(ctx context.Context, id string) (store.Snapshot, bool, error) {
	var snap store.Snapshot
	var createdAt, goal string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, label, created_at, goal FROM snapshots WHERE id = ?", id).
		Scan(&snap.ID, &snap.Label, &createdAt, &goal)
	if err == sql.ErrNoRows {
		return store.Snapshot{}, false, nil
	}
	if err != nil {
		return store.Snapshot{}, false, err
	}

	snap.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return store.Snapshot{}, false, fmt.Errorf("corrupt created_at %q: %w", createdAt, err)
	}

	if err := s.loadRules(ctx, &snap); err != nil {
		return store.Snapshot{}, false, err
	}
	if err := s.loadFacts(ctx, &snap); err != nil {
		return store.Snapshot{}, false, err
	}
	snap.FB.Goal = kb.Fact{Name: goal}
	return snap, true, nil
}

func (s *sqliteStore) loadRules(ctx context.Context, snap *store.Snapshot) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rule_id, operator, conditions, consequent, cf
		 FROM snapshot_rules WHERE snapshot_id = ? ORDER BY seq`, snap.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var r kb.Rule
		var op, condJSON string
		if err := rows.Scan(&r.ID, &op, &condJSON, &r.Consequent.Name, &r.CF); err != nil {
			return err
		}
		r.Antecedent.Operator, err = operatorFrom(op)
		if err != nil {
			return err
		}
		var names []string
		if err := json.Unmarshal([]byte(condJSON), &names); err != nil {
			return fmt.Errorf("corrupt conditions for rule %s: %w", r.ID, err)
		}
		r.Antecedent.Conditions = make([]kb.Fact, len(names))
		for i, name := range names {
			r.Antecedent.Conditions[i] = kb.Fact{Name: name}
		}
		snap.KB.Add(r)
	}
	return rows.Err()
}

func (s *sqliteStore) loadFacts(ctx context.Context, snap *store.Snapshot) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, cf FROM snapshot_facts WHERE snapshot_id = ? ORDER BY seq", snap.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	snap.FB.Memory = make(map[string]float64)
	for rows.Next() {
		var f kb.Fact
		if err := rows.Scan(&f.Name, &f.CF); err != nil {
			return err
		}
		snap.FB.Assert(f)
	}
	return rows.Err()
}

// ListSnapshots returns all snapshots, newest first.
func (s *sqliteStore) ListSnapshots(ctx context.Context) ([]store.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM snapshots ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]store.Snapshot, 0, len(ids))
	for _, id := range ids {
		snap, found, err := s.GetSnapshot(ctx, id)
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, snap)
		}
	}
	return out, nil
}

// DeleteSnapshot removes a snapshot; rules and facts cascade.
func (s *sqliteStore) DeleteSnapshot(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE id = ?", id)
	return err
}

func operatorFrom(s string) (kb.Operator, error) {
	switch s {
	case "none":
		return kb.OpNone, nil
	case "and":
		return kb.OpAnd, nil
	case "or":
		return kb.OpOr, nil
	default:
		return kb.OpNone, fmt.Errorf("unknown operator %q", s)
	}
}
