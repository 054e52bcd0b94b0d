package parse

import (
	"strconv"
	"strings"

	"github.com/certolabs/certo/pkg/certo/kb"
	"github.com/certolabs/certo/pkg/certo/textutil"
)

// ParseFact parses one trimmed, non-empty fact line of the form
//
//	<name>, FC=<number>
//
// The rightmost comma separates name from certainty, so a name containing
// commas still parses as long as its tail is a valid certainty clause.
func ParseFact(line string, d Dialect) (kb.Fact, error) {
	comma := strings.LastIndex(line, ",")
	if comma < 0 {
		return kb.Fact{}, errf(KindMalformedFact, line, "missing ','")
	}
	name := textutil.Trim(line[:comma])
	rest := textutil.Trim(line[comma+1:])

	end := markerAt(textutil.Fold(rest), d)
	if end < 0 {
		return kb.Fact{}, errf(KindMalformedFact, line, "certainty clause must start with %q", d.CFMarker)
	}
	cfText := textutil.Trim(rest[end:])
	cf, err := strconv.ParseFloat(cfText, 64)
	if err != nil {
		return kb.Fact{}, errf(KindMalformedFact, cfText, "invalid certainty factor")
	}

	return kb.Fact{Name: name, CF: cf}, nil
}
