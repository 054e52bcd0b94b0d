package load

import (
	"errors"
	"strings"
	"testing"

	"github.com/certolabs/certo/pkg/certo/kb"
	"github.com/certolabs/certo/pkg/certo/parse"
)

const sampleRules = `4
R1: Si h2 o h3 Entonces h1, FC = 0.5
R2: Si h4 Entonces h1, FC = 1
R3: Si h5 y h6 Entonces h3, FC = 0.7
R4: Si h7 Entonces h3, FC = -0.5
`

const sampleFacts = `5
h2, FC = 0.3
h4, FC = 0.6
h5, FC = 0.6
h6, FC = 0.9
h7, FC = 0.5
Objetivo
h1
`

func mustKind(t *testing.T, err error, want parse.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected a %v error, got nil", want)
	}
	kind, ok := parse.KindOf(err)
	if !ok {
		t.Fatalf("foreign error: %v", err)
	}
	if kind != want {
		t.Fatalf("kind = %v (%v), want %v", kind, err, want)
	}
}

func TestRules(t *testing.T) {
	base, warns, err := Rules(strings.NewReader(sampleRules), parse.Spanish())
	if err != nil {
		t.Fatalf("Rules: %v", err)
	}
	if len(warns) != 0 {
		t.Errorf("unexpected warnings: %v", warns)
	}
	if len(base.Rules) != 4 {
		t.Fatalf("got %d rules, want 4", len(base.Rules))
	}
	for i, want := range []string{"R1", "R2", "R3", "R4"} {
		if base.Rules[i].ID != want {
			t.Errorf("rule %d = %s, want %s (file order must hold)", i, base.Rules[i].ID, want)
		}
	}
	r3 := base.Rules[2]
	if r3.Antecedent.Operator != kb.OpAnd || len(r3.Antecedent.Conditions) != 2 {
		t.Errorf("R3 antecedent = %+v", r3.Antecedent)
	}
}

func TestRulesBlankLinesSkipped(t *testing.T) {
	in := "2\n\nR1: Si a Entonces b, FC=0.1\n\n\nR2: Si c Entonces d, FC=0.2\n\n"
	base, warns, err := Rules(strings.NewReader(in), parse.Spanish())
	if err != nil {
		t.Fatalf("Rules: %v", err)
	}
	if len(base.Rules) != 2 || len(warns) != 0 {
		t.Errorf("got %d rules, warnings %v", len(base.Rules), warns)
	}
}

func TestRulesZeroDeclared(t *testing.T) {
	base, warns, err := Rules(strings.NewReader("0\n"), parse.Spanish())
	if err != nil {
		t.Fatalf("a zero-rule file is a valid empty base: %v", err)
	}
	if len(base.Rules) != 0 || len(warns) != 0 {
		t.Errorf("got %d rules, warnings %v", len(base.Rules), warns)
	}
}

func TestRulesNegativeDeclaredWarns(t *testing.T) {
	// A negative header is not promoted to an error: the loop runs zero
	// times and the declared/loaded mismatch surfaces as a warning.
	base, warns, err := Rules(strings.NewReader("-2\n"), parse.Spanish())
	if err != nil {
		t.Fatalf("Rules: %v", err)
	}
	if len(base.Rules) != 0 {
		t.Errorf("got %d rules, want 0", len(base.Rules))
	}
	if len(warns) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warns))
	}
	if warns[0].Section != "rules" || warns[0].Declared != -2 || warns[0].Loaded != 0 {
		t.Errorf("unexpected warning %+v", warns[0])
	}
	if warns[0].String() != "rules: declared -2, loaded 0" {
		t.Errorf("warning text = %q", warns[0].String())
	}
}

func TestRulesHeaderErrors(t *testing.T) {
	_, _, err := Rules(strings.NewReader(""), parse.Spanish())
	mustKind(t, err, parse.KindMalformedCount)

	_, _, err = Rules(strings.NewReader("four\nR1: Si a Entonces b, FC=1\n"), parse.Spanish())
	mustKind(t, err, parse.KindMalformedCount)
}

func TestRulesTruncated(t *testing.T) {
	in := "3\nR1: Si a Entonces b, FC=0.1\n"
	_, _, err := Rules(strings.NewReader(in), parse.Spanish())
	mustKind(t, err, parse.KindTruncatedInput)
}

func TestRulesMalformedLineReportsLineNumber(t *testing.T) {
	in := "2\nR1: Si a Entonces b, FC=0.1\nR2 broken line\n"
	_, _, err := Rules(strings.NewReader(in), parse.Spanish())
	mustKind(t, err, parse.KindMalformedRule)
	var pe *parse.Error
	if !errors.As(err, &pe) || pe.Line != 3 {
		t.Errorf("error should carry line 3, got %v", err)
	}
}

func TestRulesFailFast(t *testing.T) {
	// Nothing usable comes back once a line is malformed.
	in := "2\nR1 broken\nR2: Si a Entonces b, FC=0.1\n"
	base, _, err := Rules(strings.NewReader(in), parse.Spanish())
	if err == nil {
		t.Fatal("expected failure")
	}
	if base != nil {
		t.Error("no partial base may escape a failed load")
	}
}

func TestFacts(t *testing.T) {
	fb, warns, err := Facts(strings.NewReader(sampleFacts), parse.Spanish())
	if err != nil {
		t.Fatalf("Facts: %v", err)
	}
	if len(warns) != 0 {
		t.Errorf("unexpected warnings: %v", warns)
	}
	if len(fb.Initial) != 5 {
		t.Errorf("got %d initial facts, want 5", len(fb.Initial))
	}
	if cf, ok := fb.Lookup("h6"); !ok || cf != 0.9 {
		t.Errorf("memory[h6] = %v/%v, want 0.9", cf, ok)
	}
	if fb.Goal.Name != "h1" {
		t.Errorf("goal = %q, want h1", fb.Goal.Name)
	}
	if fb.Goal.CF != 0 {
		t.Errorf("goal certainty must stay unset, got %v", fb.Goal.CF)
	}
	if _, ok := fb.Lookup("h1"); ok {
		t.Error("the goal must not be seeded into working memory")
	}
}

func TestFactsDuplicateNameLastWins(t *testing.T) {
	in := "3\nh2, FC=0.3\nh4, FC=0.6\nh2, FC=0.8\nObjetivo\nh1\n"
	fb, _, err := Facts(strings.NewReader(in), parse.Spanish())
	if err != nil {
		t.Fatalf("Facts: %v", err)
	}
	if len(fb.Initial) != 3 {
		t.Errorf("Initial keeps duplicates in file order, got %d entries", len(fb.Initial))
	}
	if cf, _ := fb.Lookup("h2"); cf != 0.8 {
		t.Errorf("memory[h2] = %v, want the last value 0.8", cf)
	}
}

func TestFactsTruncated(t *testing.T) {
	in := "5\nh2, FC=0.3\nh4, FC=0.6\nh5, FC=0.6\nh6, FC=0.9\n"
	_, _, err := Facts(strings.NewReader(in), parse.Spanish())
	mustKind(t, err, parse.KindTruncatedInput)
}

func TestFactsGoalSection(t *testing.T) {
	// Keyword is matched folded; surrounding blank lines are fine,
	// trailing content is ignored.
	in := "1\nh2, FC=0.3\n\nOBJETIVO\n\nh9\nleftover noise\n"
	fb, _, err := Facts(strings.NewReader(in), parse.Spanish())
	if err != nil {
		t.Fatalf("Facts: %v", err)
	}
	if fb.Goal.Name != "h9" {
		t.Errorf("goal = %q, want h9", fb.Goal.Name)
	}
}

func TestFactsMissingGoalKeyword(t *testing.T) {
	_, _, err := Facts(strings.NewReader("1\nh2, FC=0.3\nh1\n"), parse.Spanish())
	mustKind(t, err, parse.KindMissingGoalKeyword)

	_, _, err = Facts(strings.NewReader("1\nh2, FC=0.3\n"), parse.Spanish())
	mustKind(t, err, parse.KindMissingGoalKeyword)
}

func TestFactsMissingGoalName(t *testing.T) {
	_, _, err := Facts(strings.NewReader("1\nh2, FC=0.3\nObjetivo\n\n"), parse.Spanish())
	mustKind(t, err, parse.KindEmptyGoal)
}

func TestFilesClosedAndMissingPath(t *testing.T) {
	_, _, err := RulesFile("/nonexistent/rules.txt", parse.Spanish())
	mustKind(t, err, parse.KindIOUnavailable)

	_, _, err = FactsFile("/nonexistent/facts.txt", parse.Spanish())
	mustKind(t, err, parse.KindIOUnavailable)
}
