// Package prefilter implements a pure optimization stage (spec section 9
// explicitly scopes acceleration as never changing match semantics): when a
// pattern's postfix form is a bare concatenation of literal bytes with no
// operators at all, scanning can skip the matcher graph entirely and hand
// the whole literal straight to an Aho-Corasick automaton.
//
// This stays deliberately conservative. Extracting required literal
// sub-runs out of patterns that also use alternation, repetition, or
// classes (the teacher's literal-run extraction in meta/compile.go) needs
// the matcher graph's structure to know which runs are mandatory; a
// pattern that is ENTIRELY literal needs none of that analysis, so it's
// the only case handled here.
package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/jackr276/regex-libc/internal/token"
)

// Filter wraps a single-pattern Aho-Corasick automaton used to
// short-circuit the match simulator for pure-literal patterns.
type Filter struct {
	automaton *ahocorasick.Automaton
}

// Build returns a Filter for literal, or (nil, false) if construction
// fails — callers fall back to the matcher-graph simulator unconditionally
// in that case, since this stage is pure optimization.
func Build(literal []byte) (*Filter, bool) {
	if len(literal) == 0 {
		return nil, false
	}
	builder := ahocorasick.NewBuilder()
	builder.AddPattern(literal)
	automaton, err := builder.Build()
	if err != nil {
		return nil, false
	}
	return &Filter{automaton: automaton}, true
}

// Find locates the literal in haystack starting at or after at, returning
// the half-open [start, end) match span, or ok=false if absent.
func (f *Filter) Find(haystack []byte, at int) (start, end int, ok bool) {
	m := f.automaton.Find(haystack, at)
	if m == nil {
		return 0, 0, false
	}
	return m.Start, m.End, true
}

// PureLiteral reports whether postfix encodes nothing but literal bytes
// joined by concatenation — no alternation, repetition, optionality, class,
// or wildcard — and if so returns the literal byte string those tokens
// spell out. This mirrors spec section 4.1's token alphabet: a pattern that
// never leaves token.Literal/token.Concat behind is, byte for byte, a plain
// substring search.
func PureLiteral(postfix []token.Token) ([]byte, bool) {
	var out []byte
	for _, tok := range postfix {
		switch tok.Kind {
		case token.Literal:
			out = append(out, tok.Byte)
		case token.Concat:
			// no-op: concatenation of two already-collected literal runs
		default:
			return nil, false
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}
