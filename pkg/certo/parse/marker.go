package parse

import "strings"

// The certainty marker is written both as "FC=0.5" and "FC = 0.5" in the
// wild, so matching tolerates whitespace between the marker name and its
// trailing '='. All matching runs on folded text.

// lastMarker finds the last occurrence of the CF marker in folded,
// searching from the end: the marker must be the certainty suffix, not an
// accidental substring earlier in the text. Returns the marker's start
// and the index just past its '=', or (-1, -1).
func lastMarker(folded string, d Dialect) (start, end int) {
	name, eq := markerParts(d)
	for from := len(folded); from > 0; {
		idx := strings.LastIndex(folded[:from], name)
		if idx < 0 {
			return -1, -1
		}
		if end := markerEnd(folded, idx+len(name), eq); end >= 0 {
			return idx, end
		}
		from = idx
	}
	return -1, -1
}

// markerAt matches the CF marker at the start of folded, returning the
// index just past it, or -1.
func markerAt(folded string, d Dialect) (end int) {
	name, eq := markerParts(d)
	if !strings.HasPrefix(folded, name) {
		return -1
	}
	return markerEnd(folded, len(name), eq)
}

func markerParts(d Dialect) (name string, eq bool) {
	m := d.cfMarker()
	if strings.HasSuffix(m, "=") {
		return m[:len(m)-1], true
	}
	return m, false
}

func markerEnd(folded string, pos int, eq bool) int {
	if !eq {
		return pos
	}
	for pos < len(folded) && (folded[pos] == ' ' || folded[pos] == '\t') {
		pos++
	}
	if pos < len(folded) && folded[pos] == '=' {
		return pos + 1
	}
	return -1
}
