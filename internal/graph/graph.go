// Package graph implements the fourth pipeline stage (spec section 4.4):
// translating an NFA into a "matcher graph" of composite states, each one
// indexed by input byte, that the match simulator can walk without ever
// touching an ε-transition again.
//
// Composite states are arena-backed exactly like nfa.State: a CompositeID
// indexes into Graph.states, and append order is the creation chain. Each
// composite is the ε-closure of a SET of NFA states (classic subset
// construction), not just one — two different alternation branches can
// both be active after consuming the same byte, and a naive
// one-state-per-composite scheme would silently drop one of them.
package graph

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jackr276/regex-libc/internal/nfa"
)

// visitedSet is a sparse set of NFA state IDs, sized to the NFA's arena and
// reset for each closure computation. O(1) insert/membership, no per-build
// allocation beyond the initial two slices, adapted from the teacher's
// general-purpose internal/sparse.SparseSet down to the one operation pair
// this package's closure walk actually needs.
type visitedSet struct {
	sparse []uint32
	dense  []uint32
	size   uint32
}

func newVisitedSet(capacity uint32) *visitedSet {
	return &visitedSet{sparse: make([]uint32, capacity), dense: make([]uint32, 0, capacity)}
}

func (v *visitedSet) contains(value uint32) bool {
	if value >= uint32(len(v.sparse)) {
		return false
	}
	idx := v.sparse[value]
	return idx < v.size && v.dense[idx] == value
}

func (v *visitedSet) insert(value uint32) {
	if v.contains(value) {
		return
	}
	v.dense = append(v.dense, value)
	v.sparse[value] = v.size
	v.size++
}

// CompositeID indexes into a Graph's composite-state arena.
type CompositeID uint32

// InvalidComposite marks an absent transition-table entry.
const InvalidComposite CompositeID = 1<<32 - 1

// Flags records what a composite state's ε-closure contains — exactly the
// booleans spec section 4.4 says drive transition-table population and the
// match loop's accept check.
type Flags struct {
	ContainsAccepting bool
	ContainsWildcard  bool
	ContainsDigits    bool
	ContainsLowercase bool
	ContainsUppercase bool
	ContainsLetters   bool
}

// Composite is one matcher-graph node: the flags describing its ε-closure
// plus a byte-indexed transition table. The table covers the full byte
// range (0-255) per spec section 6's "reimplementation should pick 128 or
// 256 deliberately" — this one picks 256, since the only cost is a fixed
// 256-entry array and the benefit is not silently excluding high bytes.
type Composite struct {
	id          CompositeID
	flags       Flags
	transitions [256]CompositeID
}

func (c *Composite) ID() CompositeID { return c.id }
func (c *Composite) Flags() Flags    { return c.flags }

// Next returns the successor composite for byte b, or (InvalidComposite, false)
// if the transition table has no entry.
func (c *Composite) Next(b byte) (CompositeID, bool) {
	target := c.transitions[b]
	return target, target != InvalidComposite
}

// Graph is the finished matcher graph: a start composite plus the arena of
// every composite reachable from it.
type Graph struct {
	states []Composite
	start  CompositeID
}

func (g *Graph) Start() CompositeID                  { return g.start }
func (g *Graph) Composite(id CompositeID) *Composite { return &g.states[id] }
func (g *Graph) Len() int                            { return len(g.states) }

// builder holds the working state for one Build call. Composites are
// memoized by their canonicalized set of real (non-split) NFA state IDs,
// so two different paths through the NFA that land on the same active set
// collapse onto the same composite instead of duplicating it.
type builder struct {
	n      *nfa.NFA
	states []Composite
	byKey  map[string]CompositeID
}

// Build walks n and produces its matcher graph (spec section 4.4) via
// subset construction over ε-closures.
func Build(n *nfa.NFA) *Graph {
	b := &builder{
		n:     n,
		byKey: make(map[string]CompositeID),
	}
	start := b.compositeForSet([]nfa.StateID{n.Start()})
	return &Graph{states: b.states, start: start}
}

// closure computes the ε-closure of a set of NFA states. Every split kind
// is a bare ε-transition fork, so standard ε-closure follows both of its
// edges unconditionally — for split-kleene and split-positive-closure,
// secondary is the loop body itself (not a copy of it), and skipping it
// here would mean the body never joins the closure and the loop never
// forms. Any other kind is a real (non-split) member of the closure.
//
// A single visitedSet guards the whole set's traversal, realizing spec
// section 3's "visited marker ... reset between builds" scoped to one
// closure computation rather than to a single state's lifetime.
func (b *builder) closure(seeds []nfa.StateID) []nfa.StateID {
	visited := newVisitedSet(uint32(b.n.Len()))
	var out []nfa.StateID
	var walk func(id nfa.StateID)
	walk = func(id nfa.StateID) {
		if visited.contains(uint32(id)) {
			return
		}
		visited.insert(uint32(id))
		s := b.n.State(id)
		switch s.Kind() {
		case nfa.KindSplitKleene, nfa.KindSplitPositiveClosure, nfa.KindSplitAlternate, nfa.KindSplitZeroOrOne:
			walk(s.Primary())
			walk(s.Secondary())
		default:
			out = append(out, id)
		}
	}
	for _, seed := range seeds {
		walk(seed)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// canonicalKey turns a sorted, deduplicated set of real state IDs into a
// stable map key.
func canonicalKey(sorted []nfa.StateID) string {
	var sb strings.Builder
	for i, id := range sorted {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return sb.String()
}

// compositeForSet returns the (possibly newly built) composite representing
// the ε-closure of seeds, memoized by the closure's canonical member set so
// equivalent subset-construction states collapse onto one composite.
func (b *builder) compositeForSet(seeds []nfa.StateID) CompositeID {
	closed := b.closure(seeds)
	key := canonicalKey(closed)
	if id, ok := b.byKey[key]; ok {
		return id
	}

	id := CompositeID(len(b.states))
	b.states = append(b.states, Composite{id: id})
	b.byKey[key] = id
	table := &b.states[id].transitions
	for i := range table {
		table[i] = InvalidComposite
	}

	flags := Flags{}
	successors := make(map[byte][]nfa.StateID, len(closed))
	addSuccessor := func(bt byte, target nfa.StateID) {
		successors[bt] = append(successors[bt], target)
	}

	for _, sid := range closed {
		s := b.n.State(sid)
		switch s.Kind() {
		case nfa.KindAccept:
			flags.ContainsAccepting = true
		case nfa.KindWildcard:
			flags.ContainsWildcard = true
			for bb := 0; bb <= 126; bb++ {
				addSuccessor(byte(bb), s.Primary())
			}
		case nfa.KindClass:
			switch s.Class() {
			case nfa.ClassDigit:
				flags.ContainsDigits = true
				addRange(addSuccessor, '0', '9', s.Primary())
			case nfa.ClassLower:
				flags.ContainsLowercase = true
				addRange(addSuccessor, 'a', 'z', s.Primary())
			case nfa.ClassUpper:
				flags.ContainsUppercase = true
				addRange(addSuccessor, 'A', 'Z', s.Primary())
			case nfa.ClassLetter:
				flags.ContainsLetters = true
				addRange(addSuccessor, 'a', 'z', s.Primary())
				addRange(addSuccessor, 'A', 'Z', s.Primary())
			}
		case nfa.KindLiteral:
			addSuccessor(s.Byte(), s.Primary())
		}
	}

	b.states[id].flags = flags

	for bt, targets := range successors {
		next := b.compositeForSet(targets)
		b.states[id].transitions[bt] = next
	}

	return id
}

func addRange(add func(byte, nfa.StateID), lo, hi byte, target nfa.StateID) {
	for c := lo; c <= hi; c++ {
		add(c, target)
	}
}
