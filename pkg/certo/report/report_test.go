package report

import (
	"strings"
	"testing"

	"github.com/certolabs/certo/pkg/certo/kb"
	"github.com/certolabs/certo/pkg/certo/load"
	"github.com/certolabs/certo/pkg/certo/parse"
)

func TestKnowledgeBase(t *testing.T) {
	b := &kb.KnowledgeBase{Rules: []kb.Rule{
		{
			ID: "R1",
			Antecedent: kb.Antecedent{
				Conditions: []kb.Fact{{Name: "h2"}, {Name: "h3"}},
				Operator:   kb.OpOr,
			},
			Consequent: kb.Fact{Name: "h1"},
			CF:         0.5,
		},
	}}

	var out strings.Builder
	if err := KnowledgeBase(&out, b, parse.Spanish()); err != nil {
		t.Fatalf("KnowledgeBase: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "1 rules") {
		t.Errorf("missing rule count header:\n%s", got)
	}
	if !strings.Contains(got, "R1: Si h2 o h3 Entonces h1, FC=0.5") {
		t.Errorf("missing canonical rule line:\n%s", got)
	}
}

func TestFactBaseDeterministicMemory(t *testing.T) {
	in := "3\nh7, FC=0.5\nh2, FC=0.3\nh4, FC=0.6\nObjetivo\nh1\n"
	fb, _, err := load.Facts(strings.NewReader(in), parse.Spanish())
	if err != nil {
		t.Fatalf("load.Facts: %v", err)
	}

	var out strings.Builder
	if err := FactBase(&out, fb, parse.Spanish()); err != nil {
		t.Fatalf("FactBase: %v", err)
	}
	got := out.String()

	if !strings.Contains(got, "Objetivo: h1") {
		t.Errorf("missing goal line:\n%s", got)
	}
	// Initial facts keep file order, memory is sorted by name.
	if strings.Index(got, "h7, FC=0.5") > strings.Index(got, "h2, FC=0.3") {
		t.Errorf("initial facts should keep file order:\n%s", got)
	}
	mem := got[strings.Index(got, "Working memory"):]
	if !(strings.Index(mem, "h2:") < strings.Index(mem, "h4:") &&
		strings.Index(mem, "h4:") < strings.Index(mem, "h7:")) {
		t.Errorf("working memory should be sorted by name:\n%s", mem)
	}
}
