// Package report renders loaded bases in a human-readable form for
// inspection and debugging.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/certolabs/certo/pkg/certo/kb"
	"github.com/certolabs/certo/pkg/certo/parse"
)

// KnowledgeBase writes every rule in canonical text form.
func KnowledgeBase(w io.Writer, b *kb.KnowledgeBase, d parse.Dialect) error {
	if _, err := fmt.Fprintf(w, "--- Knowledge base (%d rules) ---\n", len(b.Rules)); err != nil {
		return err
	}
	for _, r := range b.Rules {
		if _, err := fmt.Fprintln(w, parse.FormatRule(r, d)); err != nil {
			return err
		}
	}
	return nil
}

// FactBase writes the initial facts in file order, the goal, and the
// working memory sorted by name so output is deterministic.
func FactBase(w io.Writer, b *kb.FactBase, d parse.Dialect) error {
	if _, err := fmt.Fprintf(w, "--- Fact base (%d initial facts) ---\n", len(b.Initial)); err != nil {
		return err
	}
	for _, f := range b.Initial {
		if _, err := fmt.Fprintln(w, parse.FormatFact(f, d)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%s: %s\n", d.Goal, b.Goal.Name); err != nil {
		return err
	}

	names := make([]string, 0, len(b.Memory))
	for name := range b.Memory {
		names = append(names, name)
	}
	sort.Strings(names)

	if _, err := fmt.Fprintln(w, "--- Working memory ---"); err != nil {
		return err
	}
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%s: %s\n", name, parse.FormatCF(b.Memory[name])); err != nil {
			return err
		}
	}
	return nil
}
