package parse

import (
	"strings"

	"github.com/certolabs/certo/pkg/certo/kb"
	"github.com/certolabs/certo/pkg/certo/textutil"
)

// ParseAntecedent splits a free-text condition string into literal facts
// and a logical operator. Whichever operator token appears first in the
// folded text wins and the whole string is split on that token alone: an
// input mixing both, like "a y b o c", splits on the and-token and the
// or-keyword is swallowed into the second literal's name. That is a known
// limitation of the format, kept for compatibility with existing files.
//
// Keyword detection runs on a folded copy while slicing happens on the
// original string, so literal names keep their original capitalization.
func ParseAntecedent(text string, d Dialect) (kb.Antecedent, error) {
	folded := textutil.Fold(text)
	posAnd := strings.Index(folded, d.andToken())
	posOr := strings.Index(folded, d.orToken())

	var ant kb.Antecedent
	var literals []string
	switch {
	case posAnd >= 0 && (posOr < 0 || posAnd < posOr):
		ant.Operator = kb.OpAnd
		literals = splitOnToken(text, folded, d.andToken(), posAnd)
	case posOr >= 0:
		ant.Operator = kb.OpOr
		literals = splitOnToken(text, folded, d.orToken(), posOr)
	default:
		ant.Operator = kb.OpNone
		literals = []string{text}
	}

	for _, lit := range literals {
		lit = textutil.Trim(lit)
		if lit == "" {
			if ant.Operator == kb.OpNone {
				return kb.Antecedent{}, errf(KindMalformedAntecedent, text, "empty antecedent")
			}
			return kb.Antecedent{}, errf(KindMalformedAntecedent, text,
				"empty literal after splitting on %q", textutil.Trim(tokenFor(ant.Operator, d)))
		}
		ant.Conditions = append(ant.Conditions, kb.Fact{Name: lit})
	}
	if len(ant.Conditions) == 0 {
		// Unreachable with the splitting above; kept as a guard.
		return kb.Antecedent{}, errf(KindMalformedAntecedent, text, "no conditions")
	}
	return ant, nil
}

// splitOnToken slices orig at every occurrence of token in folded.
// first is the index of the first occurrence, already located by the
// caller. orig and folded have identical byte offsets.
func splitOnToken(orig, folded, token string, first int) []string {
	var parts []string
	start, pos := 0, first
	for pos >= 0 {
		parts = append(parts, orig[start:pos])
		start = pos + len(token)
		next := strings.Index(folded[start:], token)
		if next < 0 {
			pos = -1
		} else {
			pos = start + next
		}
	}
	return append(parts, orig[start:])
}

func tokenFor(op kb.Operator, d Dialect) string {
	if op == kb.OpOr {
		return d.orToken()
	}
	return d.andToken()
}
