package parse

import (
	"strconv"
	"strings"

	"github.com/certolabs/certo/pkg/certo/kb"
	"github.com/certolabs/certo/pkg/certo/textutil"
)

// ParseRule parses one trimmed, non-empty rule line of the form
//
//	<id>: Si <antecedent> Entonces <consequent>, FC=<number>
//
// with keywords matched case-insensitively per the dialect. The CF marker
// is searched from the end of the body: it must be the certainty suffix,
// not an accidental substring inside a fact name. The comma separating the
// clause from the certainty is the nearest one before that marker.
func ParseRule(line string, d Dialect) (kb.Rule, error) {
	colon := strings.Index(line, ":")
	if colon < 0 {
		return kb.Rule{}, errf(KindMalformedRule, line, "missing ':' after rule id")
	}
	id := textutil.Trim(line[:colon])
	body := textutil.Trim(line[colon+1:])

	folded := textutil.Fold(body)
	posCF, endCF := lastMarker(folded, d)
	if posCF < 0 {
		return kb.Rule{}, errf(KindMalformedRule, body, "missing %q marker", d.CFMarker)
	}
	comma := strings.LastIndex(body[:posCF], ",")
	if comma < 0 {
		return kb.Rule{}, errf(KindMalformedRule, body, "missing ',' before %q", d.CFMarker)
	}

	cfText := textutil.Trim(body[endCF:])
	cf, err := strconv.ParseFloat(cfText, 64)
	if err != nil {
		return kb.Rule{}, errf(KindMalformedRule, cfText, "invalid certainty factor")
	}

	clause := textutil.Trim(body[:comma])
	clauseFolded := textutil.Fold(clause)
	ifM := d.ifMarker()
	if !strings.HasPrefix(clauseFolded, ifM) {
		return kb.Rule{}, errf(KindMalformedRule, clause, "%q must lead the clause", d.If)
	}
	thenM := d.thenMarker()
	posThen := strings.Index(clauseFolded[len(ifM):], thenM)
	if posThen < 0 {
		return kb.Rule{}, errf(KindMalformedRule, clause, "missing %q keyword", d.Then)
	}
	posThen += len(ifM)

	antText := textutil.Trim(clause[len(ifM):posThen])
	consText := textutil.Trim(clause[posThen+len(thenM):])
	if antText == "" {
		return kb.Rule{}, errf(KindMalformedRule, clause, "empty antecedent")
	}
	if consText == "" {
		return kb.Rule{}, errf(KindMalformedRule, clause, "empty consequent")
	}

	ant, err := ParseAntecedent(antText, d)
	if err != nil {
		return kb.Rule{}, err
	}

	return kb.Rule{
		ID:         id,
		Antecedent: ant,
		Consequent: kb.Fact{Name: consText},
		CF:         cf,
	}, nil
}
