// Package load reads rule and fact files into in-memory bases. Loads are
// fail-fast: any malformed line aborts the whole load and no partial base
// is returned. Count mismatches between the declared header and the
// records actually loaded are reported as warnings, not failures.
package load

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/certolabs/certo/pkg/certo/kb"
	"github.com/certolabs/certo/pkg/certo/parse"
	"github.com/certolabs/certo/pkg/certo/textutil"
)

// Warning reports a non-fatal declared/loaded count mismatch.
type Warning struct {
	Section  string // "rules" or "facts"
	Declared int
	Loaded   int
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: declared %d, loaded %d", w.Section, w.Declared, w.Loaded)
}

// Rules reads a rule file: an integer count header followed by that many
// rule lines. Blank lines between records are skipped. The returned base
// holds rules in file order.
func Rules(r io.Reader, d parse.Dialect) (*kb.KnowledgeBase, []Warning, error) {
	sc := newLineScanner(r)
	declared, err := readCount(sc, "rule")
	if err != nil {
		return nil, nil, err
	}

	base := &kb.KnowledgeBase{}
	for i := 0; i < declared; i++ {
		line, n, ok := sc.next()
		if !ok {
			if err := sc.err(); err != nil {
				return nil, nil, readErr(err)
			}
			return nil, nil, &parse.Error{
				Kind:   parse.KindTruncatedInput,
				Line:   n,
				Reason: fmt.Sprintf("expected %d rules, got %d", declared, i),
			}
		}
		rule, err := parse.ParseRule(line, d)
		if err != nil {
			return nil, nil, parse.WithLine(err, n)
		}
		base.Add(rule)
	}

	var warns []Warning
	if len(base.Rules) != declared {
		warns = append(warns, Warning{Section: "rules", Declared: declared, Loaded: len(base.Rules)})
	}
	return base, warns, nil
}

// RulesFile opens path and loads it via Rules. The file is closed on
// every return path.
func RulesFile(path string, d parse.Dialect) (*kb.KnowledgeBase, []Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &parse.Error{Kind: parse.KindIOUnavailable, Input: path, Reason: "cannot open rule file", Err: err}
	}
	defer f.Close()
	return Rules(f, d)
}

// Facts reads a fact file: an integer count header, that many fact lines,
// then the goal section — the goal keyword on its own line followed by
// the goal name. Trailing content after the goal line is ignored.
// Duplicate fact names keep every Initial entry but only the last
// certainty in working memory.
func Facts(r io.Reader, d parse.Dialect) (*kb.FactBase, []Warning, error) {
	sc := newLineScanner(r)
	declared, err := readCount(sc, "fact")
	if err != nil {
		return nil, nil, err
	}

	fb := kb.NewFactBase()
	for i := 0; i < declared; i++ {
		line, n, ok := sc.next()
		if !ok {
			if err := sc.err(); err != nil {
				return nil, nil, readErr(err)
			}
			return nil, nil, &parse.Error{
				Kind:   parse.KindTruncatedInput,
				Line:   n,
				Reason: fmt.Sprintf("expected %d facts, got %d", declared, i),
			}
		}
		fact, err := parse.ParseFact(line, d)
		if err != nil {
			return nil, nil, parse.WithLine(err, n)
		}
		fb.Assert(fact)
	}

	var warns []Warning
	if len(fb.Initial) != declared {
		warns = append(warns, Warning{Section: "facts", Declared: declared, Loaded: len(fb.Initial)})
	}

	kw, n, ok := sc.next()
	if !ok {
		if err := sc.err(); err != nil {
			return nil, nil, readErr(err)
		}
		return nil, nil, &parse.Error{
			Kind:   parse.KindMissingGoalKeyword,
			Line:   n,
			Reason: fmt.Sprintf("source ended without the %q section", d.Goal),
		}
	}
	if textutil.Fold(kw) != d.GoalKeyword() {
		return nil, nil, &parse.Error{
			Kind:   parse.KindMissingGoalKeyword,
			Line:   n,
			Input:  kw,
			Reason: fmt.Sprintf("expected the %q keyword", d.Goal),
		}
	}

	goal, n, ok := sc.next()
	if !ok {
		if err := sc.err(); err != nil {
			return nil, nil, readErr(err)
		}
		return nil, nil, &parse.Error{
			Kind:   parse.KindEmptyGoal,
			Line:   n,
			Reason: fmt.Sprintf("no goal name after the %q keyword", d.Goal),
		}
	}
	// Goal certainty stays unset: the goal is a query target.
	fb.Goal = kb.Fact{Name: goal}
	return fb, warns, nil
}

// FactsFile opens path and loads it via Facts. The file is closed on
// every return path.
func FactsFile(path string, d parse.Dialect) (*kb.FactBase, []Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &parse.Error{Kind: parse.KindIOUnavailable, Input: path, Reason: "cannot open fact file", Err: err}
	}
	defer f.Close()
	return Facts(f, d)
}

// readCount reads the header line as the declared record count. The
// header is the first physical line; it is not allowed to be blank.
func readCount(sc *lineScanner, what string) (int, error) {
	line, n, ok := sc.nextRaw()
	if !ok {
		if err := sc.err(); err != nil {
			return 0, readErr(err)
		}
		return 0, &parse.Error{
			Kind:   parse.KindMalformedCount,
			Line:   1,
			Reason: fmt.Sprintf("empty source, expected a %s count header", what),
		}
	}
	count, err := strconv.Atoi(line)
	if err != nil {
		return 0, &parse.Error{
			Kind:   parse.KindMalformedCount,
			Line:   n,
			Input:  line,
			Reason: fmt.Sprintf("%s count header is not an integer", what),
		}
	}
	return count, nil
}

func readErr(err error) error {
	return &parse.Error{Kind: parse.KindIOUnavailable, Reason: "read failed", Err: err}
}
