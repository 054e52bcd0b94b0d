package certo

import (
	"context"
	"crypto/rand"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/certolabs/certo/pkg/certo/inference"
	"github.com/certolabs/certo/pkg/certo/kb"
	"github.com/certolabs/certo/pkg/certo/load"
	"github.com/certolabs/certo/pkg/certo/parse"
	"github.com/certolabs/certo/pkg/certo/store"
)

// Certo is the loader facade: it ties a keyword dialect, an optional
// snapshot store, and an optional inference engine together.
type Certo struct {
	store   store.Store
	dialect parse.Dialect
	engine  inference.Engine
	entropy *ulid.MonotonicEntropy
}

// Options configures a Certo instance.
type Options struct {
	Store   store.Store      // optional; Save requires it
	Dialect parse.Dialect    // zero value selects the Spanish dialect
	Engine  inference.Engine // optional; Infer requires it
}

// New creates a Certo instance with the given dependencies.
func New(opts Options) *Certo {
	d := opts.Dialect
	if d == (parse.Dialect{}) {
		d = parse.Spanish()
	}
	return &Certo{
		store:   opts.Store,
		dialect: d,
		engine:  opts.Engine,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Close releases the snapshot store, if any.
func (c *Certo) Close() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}

// Dialect returns the keyword dialect in use.
func (c *Certo) Dialect() parse.Dialect { return c.dialect }

// LoadResult is one successfully loaded pair of bases.
type LoadResult struct {
	KB       *kb.KnowledgeBase
	FB       *kb.FactBase
	Warnings []load.Warning
}

// LoadFiles loads a rule file and a fact file. Either both bases come
// back fully built or an error does; there is no partial result.
func (c *Certo) LoadFiles(rulesPath, factsPath string) (LoadResult, error) {
	kbase, warns, err := load.RulesFile(rulesPath, c.dialect)
	if err != nil {
		return LoadResult{}, err
	}
	res := LoadResult{KB: kbase, Warnings: warns}

	fbase, warns, err := load.FactsFile(factsPath, c.dialect)
	if err != nil {
		return LoadResult{}, err
	}
	res.FB = fbase
	res.Warnings = append(res.Warnings, warns...)
	return res, nil
}

// Save persists a load result as a snapshot and returns its ID.
func (c *Certo) Save(ctx context.Context, label string, res LoadResult) (string, error) {
	if c.store == nil {
		return "", errors.New("certo: no snapshot store configured")
	}
	snap := store.Snapshot{
		ID:        ulid.MustNew(ulid.Now(), c.entropy).String(),
		Label:     label,
		CreatedAt: time.Now().UTC(),
		KB:        *res.KB,
		FB:        *res.FB,
	}
	if err := c.store.SaveSnapshot(ctx, snap); err != nil {
		return "", err
	}
	return snap.ID, nil
}

// Infer runs the configured engine over a load result.
func (c *Certo) Infer(ctx context.Context, res LoadResult) (inference.Result, error) {
	if c.engine == nil {
		return inference.Result{}, errors.New("certo: no inference engine configured")
	}
	return c.engine.Run(ctx, res.KB, res.FB)
}
