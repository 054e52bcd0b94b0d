package parse

import (
	"fmt"

	"github.com/certolabs/certo/pkg/certo/textutil"
)

// Dialect is the keyword set of the rule-file format. Fields hold the
// display form; all matching folds both sides, so case in the input never
// matters. The zero Dialect is invalid — use Spanish, English, or a
// config-loaded dialect.
type Dialect struct {
	If       string // leading keyword of a rule clause, e.g. "Si"
	Then     string // consequent separator, e.g. "Entonces"
	And      string // conjunction token, operator only when space-padded
	Or       string // disjunction token, operator only when space-padded
	CFMarker string // certainty-factor marker, e.g. "FC="
	Goal     string // goal-section keyword, e.g. "Objetivo"
}

// Spanish returns the dialect of the original file format.
func Spanish() Dialect {
	return Dialect{
		If:       "Si",
		Then:     "Entonces",
		And:      "y",
		Or:       "o",
		CFMarker: "FC=",
		Goal:     "Objetivo",
	}
}

// English returns an equivalent English-keyword dialect.
func English() Dialect {
	return Dialect{
		If:       "If",
		Then:     "Then",
		And:      "and",
		Or:       "or",
		CFMarker: "CF=",
		Goal:     "Goal",
	}
}

// Validate reports whether every keyword is present.
func (d Dialect) Validate() error {
	for _, kw := range []struct{ name, val string }{
		{"if", d.If}, {"then", d.Then}, {"and", d.And},
		{"or", d.Or}, {"cf-marker", d.CFMarker}, {"goal", d.Goal},
	} {
		if textutil.Trim(kw.val) == "" {
			return fmt.Errorf("dialect: empty %s keyword", kw.name)
		}
	}
	return nil
}

// Folded marker forms. The if-marker is anchored at the start of a clause
// and so only needs a trailing space; the then/and/or tokens must be
// surrounded by single spaces to count as keywords.

func (d Dialect) ifMarker() string   { return textutil.Fold(d.If) + " " }
func (d Dialect) thenMarker() string { return " " + textutil.Fold(d.Then) + " " }
func (d Dialect) andToken() string   { return " " + textutil.Fold(d.And) + " " }
func (d Dialect) orToken() string    { return " " + textutil.Fold(d.Or) + " " }
func (d Dialect) cfMarker() string   { return textutil.Fold(d.CFMarker) }

// GoalKeyword is the folded goal-section keyword; the fact-file loader
// compares whole lines against it.
func (d Dialect) GoalKeyword() string { return textutil.Fold(d.Goal) }
