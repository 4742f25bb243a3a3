// Package diag implements the verbose diagnostic mode spec section 6
// describes: human-readable traces of the rewritten pattern, postfix form,
// NFA structure, and per-byte matcher transitions, with silent mode
// emitting nothing. Sink is kept as a small interface rather than a direct
// dependency on the standard library log package so tests and the CLI
// harness can substitute their own collector.
package diag

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jackr276/regex-libc/internal/nfa"
	"github.com/jackr276/regex-libc/internal/token"
)

// Sink receives diagnostic trace lines during compilation and matching.
type Sink interface {
	Tracef(format string, args ...any)
}

// Silent discards every trace. It is the zero-cost default for non-verbose
// compilation.
type Silent struct{}

func (Silent) Tracef(string, ...any) {}

// LogSink writes trace lines through the standard library logger, the way
// this codebase's nearest point of comparison reaches for "log" rather than
// a structured logging dependency for one-off diagnostic output.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink builds a LogSink writing to w, prefixed for easy grepping.
// A nil w defaults to os.Stderr.
func NewLogSink(w io.Writer) *LogSink {
	if w == nil {
		w = os.Stderr
	}
	return &LogSink{logger: log.New(w, "regex: ", 0)}
}

func (s *LogSink) Tracef(format string, args ...any) {
	s.logger.Printf(format, args...)
}

// Rewrite traces the lexical rewriter's output.
func Rewrite(sink Sink, pattern string, toks []token.Token) {
	sink.Tracef("rewrite %q -> %s", pattern, formatTokens(toks))
}

// Postfix traces the shunting-yard output.
func Postfix(sink Sink, toks []token.Token) {
	sink.Tracef("postfix %s", formatTokens(toks))
}

// NFAStructure traces every allocated NFA state in creation order.
func NFAStructure(sink Sink, n *nfa.NFA) {
	sink.Tracef("nfa: %d states, start=%d", n.Len(), n.Start())
	n.Walk(func(s *nfa.State) {
		sink.Tracef("  %s", s.String())
	})
}

// Transition traces one byte-step of the match simulator.
func Transition(sink Sink, pos int, b byte, from, to uint32, accepted bool) {
	if accepted {
		sink.Tracef("match: byte %d (%q) %d -> %d [accepting]", pos, b, from, to)
		return
	}
	sink.Tracef("match: byte %d (%q) %d -> %d", pos, b, from, to)
}

func formatTokens(toks []token.Token) string {
	out := ""
	for i, t := range toks {
		if i > 0 {
			out += " "
		}
		switch t.Kind {
		case token.Literal:
			out += fmt.Sprintf("lit(%q)", t.Byte)
		case token.Class:
			out += fmt.Sprintf("class(%s)", t.Class)
		default:
			out += t.Kind.String()
		}
	}
	return out
}
