package config

import (
	"fmt"

	"github.com/certolabs/certo/pkg/certo/kb"
	"github.com/certolabs/certo/pkg/certo/load"
	"github.com/certolabs/certo/pkg/certo/parse"
)

// Loader bundles the file paths of one knowledge-base deployment and
// loads them into ready-to-use components.
type Loader struct {
	RulesPath   string
	FactsPath   string
	DialectPath string // optional YAML dialect override
}

// Components holds everything a caller needs after a successful load.
type Components struct {
	Dialect  parse.Dialect
	KB       *kb.KnowledgeBase
	FB       *kb.FactBase
	Warnings []load.Warning
}

// Load reads the dialect (if configured), then the rule and fact files.
// Any parse failure aborts the whole load.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{Dialect: parse.Spanish()}

	if l.DialectPath != "" {
		d, err := LoadDialect(l.DialectPath)
		if err != nil {
			return nil, fmt.Errorf("load dialect: %w", err)
		}
		comp.Dialect = d
	}

	kbase, warns, err := load.RulesFile(l.RulesPath, comp.Dialect)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	comp.KB = kbase
	comp.Warnings = append(comp.Warnings, warns...)

	fbase, warns, err := load.FactsFile(l.FactsPath, comp.Dialect)
	if err != nil {
		return nil, fmt.Errorf("load facts: %w", err)
	}
	comp.FB = fbase
	comp.Warnings = append(comp.Warnings, warns...)

	return comp, nil
}
