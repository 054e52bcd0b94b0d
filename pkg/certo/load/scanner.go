package load

import (
	"bufio"
	"io"

	"github.com/certolabs/certo/pkg/certo/textutil"
)

// lineScanner walks a source line by line, keeping the physical line
// number explicit so diagnostics can point at the offending line.
type lineScanner struct {
	sc   *bufio.Scanner
	line int
}

func newLineScanner(r io.Reader) *lineScanner {
	return &lineScanner{sc: bufio.NewScanner(r)}
}

// nextRaw returns the next physical line, trimmed, with its 1-based
// number. ok is false at end of input or on a read error.
func (s *lineScanner) nextRaw() (text string, line int, ok bool) {
	if !s.sc.Scan() {
		return "", s.line, false
	}
	s.line++
	return textutil.Trim(s.sc.Text()), s.line, true
}

// next returns the next non-blank trimmed line. Blank lines are skipped
// and never count against declared record totals.
func (s *lineScanner) next() (text string, line int, ok bool) {
	for {
		text, line, ok = s.nextRaw()
		if !ok || text != "" {
			return text, line, ok
		}
	}
}

func (s *lineScanner) err() error { return s.sc.Err() }
