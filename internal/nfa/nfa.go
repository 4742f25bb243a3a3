// Package nfa implements the third pipeline stage (spec section 4.3):
// Thompson construction of an NFA from the shunting-yard's postfix token
// stream.
//
// States are held in an arena-backed slice rather than as individually
// heap-allocated pointer nodes — StateID is an index into Builder.states,
// mirroring the teacher's nfa.Builder (github.com/coregx/coregex/nfa). The
// slice's append order IS the creation chain spec section 3 calls for:
// states are allocated in creation order and nothing is ever removed from
// the middle, so walking the slice once visits every allocated state
// exactly once regardless of how many cycles '*' and '+' introduce among
// them.
package nfa

import "fmt"

// StateID indexes into a Builder's state arena.
type StateID uint32

// InvalidState marks an unbound transition slot (a fringe edge not yet
// patched, or a split's conceptually absent half before binding).
const InvalidState StateID = 1<<32 - 1

// Kind discriminates the closed set of NFA state shapes from spec section 3.
type Kind uint8

const (
	KindLiteral Kind = iota
	KindClass
	KindWildcard
	KindAccept
	KindSplitAlternate
	KindSplitZeroOrOne
	KindSplitKleene
	KindSplitPositiveClosure
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindClass:
		return "class"
	case KindWildcard:
		return "wildcard"
	case KindAccept:
		return "accept"
	case KindSplitAlternate:
		return "split-alternate"
	case KindSplitZeroOrOne:
		return "split-zero-or-one"
	case KindSplitKleene:
		return "split-kleene"
	case KindSplitPositiveClosure:
		return "split-positive-closure"
	default:
		return "unknown"
	}
}

// IsSplit reports whether a kind has both primary and secondary transitions
// populated (as opposed to only primary, for non-split kinds, or neither,
// for accept).
func (k Kind) IsSplit() bool {
	switch k {
	case KindSplitAlternate, KindSplitZeroOrOne, KindSplitKleene, KindSplitPositiveClosure:
		return true
	default:
		return false
	}
}

// ClassKind mirrors token.ClassKind without importing the token package,
// keeping nfa free of a dependency that only the builder's caller needs.
type ClassKind uint8

const (
	ClassDigit ClassKind = iota
	ClassLower
	ClassUpper
	ClassLetter
)

// State is one node of the NFA, tagged-variant style: a Kind discriminant
// plus the two transition slots. Non-split kinds only ever populate
// Primary; the accept state populates neither.
type State struct {
	id    StateID
	kind  Kind
	byte_ byte      // literal byte, valid for KindLiteral
	class ClassKind // character class, valid for KindClass

	primary   StateID // ε/byte transition; the fringe slot during assembly
	secondary StateID // second ε transition, split kinds only

	// visited is the data model's transient build marker. Nothing reads or
	// writes it: the matcher-graph builder guards its ε-closure walk with
	// its own per-call visited set, and matching never touches NFA states.
	visited uint32
}

func (s *State) ID() StateID    { return s.id }
func (s *State) Kind() Kind     { return s.kind }
func (s *State) Byte() byte     { return s.byte_ }
func (s *State) Class() ClassKind { return s.class }
func (s *State) Primary() StateID   { return s.primary }
func (s *State) Secondary() StateID { return s.secondary }

func (s State) String() string {
	switch {
	case s.kind == KindLiteral:
		return fmt.Sprintf("#%d literal(%q) -> %d", s.id, s.byte_, s.primary)
	case s.kind == KindClass:
		return fmt.Sprintf("#%d class(%d) -> %d", s.id, s.class, s.primary)
	case s.kind.IsSplit():
		return fmt.Sprintf("#%d %s -> (%d, %d)", s.id, s.kind, s.primary, s.secondary)
	default:
		return fmt.Sprintf("#%d %s -> %d", s.id, s.kind, s.primary)
	}
}

// NFA is the immutable result of Thompson construction: a start state plus
// the arena that owns every reachable state.
type NFA struct {
	states []State
	start  StateID
}

// Start returns the NFA's single start state.
func (n *NFA) Start() StateID { return n.start }

// State returns the state identified by id. Panics on an out-of-range id,
// which would indicate a builder bug rather than bad user input (every ID
// handed to a caller is one this NFA allocated).
func (n *NFA) State(id StateID) *State { return &n.states[id] }

// Len returns the number of allocated states — the creation chain's length.
func (n *NFA) Len() int { return len(n.states) }

// Walk calls f once for every state in creation order. This is the
// teardown/traversal idiom spec section 9 calls for: "teardown walks the
// chain, not the edges." In Go the garbage collector reclaims the backing
// array once the NFA is unreferenced, so Walk exists for diagnostics and
// tests, not for manual freeing.
func (n *NFA) Walk(f func(*State)) {
	for i := range n.states {
		f(&n.states[i])
	}
}
