// Package match implements the fifth and final pipeline stage (spec
// section 4.5): scanning a target string through a compiled matcher graph
// to find the leftmost match under first-match, not longest-match,
// semantics.
package match

import (
	"github.com/jackr276/regex-libc/internal/graph"
)

// Status is the match outcome discriminant (spec section 6).
type Status uint8

const (
	StatusInvalidInput Status = iota
	StatusNotFound
	StatusFound
)

func (s Status) String() string {
	switch s {
	case StatusInvalidInput:
		return "invalid-input"
	case StatusNotFound:
		return "not-found"
	case StatusFound:
		return "found"
	default:
		return "unknown"
	}
}

// Result is the outcome of one Run call: a status plus, when found, the
// half-open [Start, End) byte offsets bracketing the match.
type Result struct {
	Status Status
	Start  int
	End    int
}

// Run scans text starting at offset start against g, implementing spec
// section 4.5's simulator loop verbatim:
//
//  1. If the current composite has a transition on the byte, advance and
//     extend the tentative end by one.
//  2. Otherwise, reset to the graph start, move the tentative start to just
//     past the current byte, and set the tentative end equal to the new
//     start.
//  3. After each step, if the current composite's closure contains the
//     accepting state, report found and stop.
//
// Exhausting the input without ever reaching an accepting composite reports
// not-found with zeroed offsets. A null or empty text, or a start offset
// outside [0, len(text)], reports invalid-input — spec section 7's
// match-invalid-input tag covers both "null or empty target" and "matcher
// in error state"; the latter is the caller's responsibility to check
// before calling Run (an error-state matcher has no graph to run against).
func Run(g *graph.Graph, text []byte, start int) Result {
	if len(text) == 0 || start < 0 || start > len(text) {
		return Result{Status: StatusInvalidInput}
	}

	current := g.Start()
	tentativeStart := start
	tentativeEnd := start

	if composite := g.Composite(current); composite.Flags().ContainsAccepting {
		return Result{Status: StatusFound, Start: tentativeStart, End: tentativeEnd}
	}

	for i := start; i < len(text); i++ {
		b := text[i]
		composite := g.Composite(current)
		if next, ok := composite.Next(b); ok {
			current = next
			tentativeEnd = i + 1
		} else {
			current = g.Start()
			tentativeStart = i + 1
			tentativeEnd = tentativeStart
		}

		if g.Composite(current).Flags().ContainsAccepting {
			return Result{Status: StatusFound, Start: tentativeStart, End: tentativeEnd}
		}
	}

	return Result{Status: StatusNotFound}
}
