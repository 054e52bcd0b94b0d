package parse

import (
	"strconv"
	"strings"

	"github.com/certolabs/certo/pkg/certo/kb"
)

// FormatRule renders a rule in the canonical text form of the dialect.
// Re-parsing the result yields an equal rule.
func FormatRule(r kb.Rule, d Dialect) string {
	var b strings.Builder
	b.WriteString(r.ID)
	b.WriteString(": ")
	b.WriteString(d.If)
	b.WriteByte(' ')

	sep := " " + d.And + " "
	if r.Antecedent.Operator == kb.OpOr {
		sep = " " + d.Or + " "
	}
	for i, cond := range r.Antecedent.Conditions {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(cond.Name)
	}

	b.WriteByte(' ')
	b.WriteString(d.Then)
	b.WriteByte(' ')
	b.WriteString(r.Consequent.Name)
	b.WriteString(", ")
	b.WriteString(d.CFMarker)
	b.WriteString(FormatCF(r.CF))
	return b.String()
}

// FormatFact renders a fact in the canonical "<name>, FC=<number>" form.
func FormatFact(f kb.Fact, d Dialect) string {
	return f.Name + ", " + d.CFMarker + FormatCF(f.CF)
}

// FormatCF renders a certainty factor with the fewest digits that still
// round-trip through ParseFloat.
func FormatCF(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
