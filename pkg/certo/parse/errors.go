package parse

import (
	"errors"
	"fmt"
)

// Kind classifies a load or parse failure so callers can branch on it
// without matching message text.
type Kind int

const (
	// KindIOUnavailable: the source could not be opened or read.
	KindIOUnavailable Kind = iota
	// KindMalformedCount: the header line is not an integer.
	KindMalformedCount
	// KindTruncatedInput: the source ended before the declared count.
	KindTruncatedInput
	// KindMalformedRule: a rule line is structurally broken (missing ':',
	// missing CF marker, missing comma, non-numeric certainty, missing or
	// misplaced keywords, empty antecedent or consequent text).
	KindMalformedRule
	// KindMalformedAntecedent: splitting produced an empty literal, e.g. a
	// doubled operator keyword or a dangling separator.
	KindMalformedAntecedent
	// KindMalformedFact: a fact line is structurally broken.
	KindMalformedFact
	// KindMissingGoalKeyword: the goal section never announced itself.
	KindMissingGoalKeyword
	// KindEmptyGoal: the goal section is present but no goal name follows.
	KindEmptyGoal
)

func (k Kind) String() string {
	switch k {
	case KindIOUnavailable:
		return "io unavailable"
	case KindMalformedCount:
		return "malformed count"
	case KindTruncatedInput:
		return "truncated input"
	case KindMalformedRule:
		return "malformed rule"
	case KindMalformedAntecedent:
		return "malformed antecedent"
	case KindMalformedFact:
		return "malformed fact"
	case KindMissingGoalKeyword:
		return "missing goal keyword"
	case KindEmptyGoal:
		return "empty goal"
	default:
		return "unknown"
	}
}

// Error is a parse or load failure with enough context to diagnose the
// offending input. Line is the 1-based physical line in the source, 0 when
// the failure is not tied to a line (or not yet attributed by a loader).
type Error struct {
	Kind   Kind
	Line   int
	Input  string // offending raw text, possibly a fragment
	Reason string
	Err    error // underlying cause, if any
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Input != "" {
		msg = fmt.Sprintf("%s (input: %q)", msg, e.Input)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func errf(kind Kind, input, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Input: input, Reason: fmt.Sprintf(format, args...)}
}

// WithLine attributes err to a physical line number if it is a *Error that
// has not been attributed yet. Other errors pass through unchanged.
func WithLine(err error, line int) error {
	var pe *Error
	if errors.As(err, &pe) && pe.Line == 0 {
		pe.Line = line
	}
	return err
}

// KindOf extracts the failure kind, with ok=false for foreign errors.
func KindOf(err error) (Kind, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}
