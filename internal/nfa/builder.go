package nfa

import (
	"github.com/jackr276/regex-libc/internal/rerr"
	"github.com/jackr276/regex-libc/internal/token"
)

// Builder accumulates states for one NFA under construction. It is the
// arena described in spec section 3: states are only ever appended, never
// moved or freed individually.
type Builder struct {
	states []State
}

// NewBuilder creates an empty arena with a small initial capacity, mirroring
// the teacher's NewBuilderWithCapacity default.
func NewBuilder() *Builder {
	return &Builder{states: make([]State, 0, 16)}
}

func (b *Builder) alloc(kind Kind) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: kind, primary: InvalidState, secondary: InvalidState})
	return id
}

// AddLiteral allocates a literal-byte state with an unbound (fringe) primary.
func (b *Builder) AddLiteral(c byte) StateID {
	id := b.alloc(KindLiteral)
	b.states[id].byte_ = c
	return id
}

// AddClass allocates a character-class state with an unbound primary.
func (b *Builder) AddClass(c ClassKind) StateID {
	id := b.alloc(KindClass)
	b.states[id].class = c
	return id
}

// AddWildcard allocates a wildcard-any-printable state with an unbound primary.
func (b *Builder) AddWildcard() StateID {
	return b.alloc(KindWildcard)
}

// AddAccept allocates the (unique, per NFA) accepting state. It has no
// outgoing transitions by definition.
func (b *Builder) AddAccept() StateID {
	return b.alloc(KindAccept)
}

// AddSplit allocates a split state of the given kind with secondary already
// bound and primary left as the fringe slot, matching spec section 4.3's
// construction table for each operator.
func (b *Builder) AddSplit(kind Kind, secondary StateID) StateID {
	id := b.alloc(kind)
	b.states[id].secondary = secondary
	return id
}

// Patch binds a fringe state's primary transition to target. This is the
// single patching primitive every construction rule in spec section 4.3
// reduces to, because for every state kind the unbound forward edge is
// always named primary (split kinds pre-bind secondary at creation time).
func (b *Builder) Patch(id, target StateID) {
	b.states[id].primary = target
}

// PatchAll patches every state in a fringe to the same target.
func (b *Builder) PatchAll(fringe []StateID, target StateID) {
	for _, id := range fringe {
		b.Patch(id, target)
	}
}

// State returns a pointer to the identified state for read/write access
// during construction.
func (b *Builder) State(id StateID) *State { return &b.states[id] }

// cloneFragment deep-copies every state reachable from start via primary
// (when bound) and secondary (split kinds only), returning the clone's
// start and the mapped fringe. This is the duplication spec section 4.3
// requires for '+': "a one-or-more expression must be distinguishable... by
// duplicating the inner fragment." The visited-map memoization below
// doubles as cycle protection, since a fragment built from a nested '*' or
// '+' can already contain a loop before it is ever concatenated further.
func (b *Builder) cloneFragment(start StateID, fringe []StateID) (StateID, []StateID) {
	mapping := make(map[StateID]StateID, 8)
	var walk func(StateID) StateID
	walk = func(old StateID) StateID {
		if old == InvalidState {
			return InvalidState
		}
		if nid, ok := mapping[old]; ok {
			return nid
		}
		orig := b.states[old]
		nid := b.alloc(orig.kind)
		mapping[old] = nid

		var primary, secondary StateID
		if orig.kind.IsSplit() {
			primary = walk(orig.primary)
			secondary = walk(orig.secondary)
		} else if orig.kind != KindAccept {
			primary = walk(orig.primary)
		}

		s := &b.states[nid]
		s.byte_ = orig.byte_
		s.class = orig.class
		s.primary = primary
		s.secondary = secondary
		return nid
	}

	newStart := walk(start)
	newFringe := make([]StateID, len(fringe))
	for i, f := range fringe {
		newFringe[i] = mapping[f]
	}
	return newStart, newFringe
}

// fragment is a partially assembled sub-NFA: a start state and the fringe
// of states whose primary transition is not yet bound (spec section 3).
type fragment struct {
	start  StateID
	fringe []StateID
}

// Compile runs Thompson construction over a postfix token stream (spec
// section 4.3), returning the finished NFA or a compilation error if the
// stream is malformed.
func Compile(postfix []token.Token) (*NFA, error) {
	b := NewBuilder()
	var stack []fragment

	push := func(f fragment) { stack = append(stack, f) }
	pop := func() (fragment, bool) {
		if len(stack) == 0 {
			return fragment{}, false
		}
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return f, true
	}

	for _, tok := range postfix {
		switch tok.Kind {
		case token.Literal:
			id := b.AddLiteral(tok.Byte)
			push(fragment{start: id, fringe: []StateID{id}})

		case token.Class:
			id := b.AddClass(classKindFromToken(tok.Class))
			push(fragment{start: id, fringe: []StateID{id}})

		case token.Wildcard:
			id := b.AddWildcard()
			push(fragment{start: id, fringe: []StateID{id}})

		case token.Concat:
			f2, ok2 := pop()
			f1, ok1 := pop()
			if !ok1 || !ok2 {
				return nil, rerr.ErrPatternTrailingOperator
			}
			b.PatchAll(f1.fringe, f2.start)
			push(fragment{start: f1.start, fringe: f2.fringe})

		case token.Alt:
			f2, ok2 := pop()
			f1, ok1 := pop()
			if !ok1 || !ok2 {
				return nil, rerr.ErrPatternTrailingOperator
			}
			s := b.alloc(KindSplitAlternate)
			b.states[s].primary = f1.start
			b.states[s].secondary = f2.start
			fringe := append(append([]StateID{}, f1.fringe...), f2.fringe...)
			push(fragment{start: s, fringe: fringe})

		case token.Question:
			f1, ok1 := pop()
			if !ok1 {
				return nil, rerr.ErrPatternTrailingOperator
			}
			s := b.AddSplit(KindSplitZeroOrOne, f1.start)
			fringe := append([]StateID{s}, f1.fringe...)
			push(fragment{start: s, fringe: fringe})

		case token.Star:
			f1, ok1 := pop()
			if !ok1 {
				return nil, rerr.ErrPatternTrailingOperator
			}
			s := b.AddSplit(KindSplitKleene, f1.start)
			b.PatchAll(f1.fringe, s)
			push(fragment{start: s, fringe: []StateID{s}})

		case token.Plus:
			f1, ok1 := pop()
			if !ok1 {
				return nil, rerr.ErrPatternTrailingOperator
			}
			copyStart, copyFringe := b.cloneFragment(f1.start, f1.fringe)
			s := b.AddSplit(KindSplitPositiveClosure, copyStart)
			b.PatchAll(f1.fringe, s)
			b.PatchAll(copyFringe, s)
			push(fragment{start: f1.start, fringe: []StateID{s}})
		}
	}

	final, ok := pop()
	if !ok || len(stack) != 0 {
		return nil, rerr.ErrPatternTrailingOperator
	}

	accept := b.AddAccept()
	b.PatchAll(final.fringe, accept)

	return &NFA{states: b.states, start: final.start}, nil
}

func classKindFromToken(c token.ClassKind) ClassKind {
	switch c {
	case token.Digit:
		return ClassDigit
	case token.Lower:
		return ClassLower
	case token.Upper:
		return ClassUpper
	default:
		return ClassLetter
	}
}
