package graph

import (
	"testing"

	"github.com/jackr276/regex-libc/internal/lexer"
	"github.com/jackr276/regex-libc/internal/nfa"
	"github.com/jackr276/regex-libc/internal/shunt"
)

func mustBuild(t *testing.T, pattern string) *Graph {
	t.Helper()
	infix, err := lexer.Rewrite([]byte(pattern))
	if err != nil {
		t.Fatalf("Rewrite(%q) error = %v", pattern, err)
	}
	post, err := shunt.ToPostfix(infix)
	if err != nil {
		t.Fatalf("ToPostfix(%q) error = %v", pattern, err)
	}
	n, err := nfa.Compile(post)
	if err != nil {
		t.Fatalf("nfa.Compile(%q) error = %v", pattern, err)
	}
	return Build(n)
}

func walkBytes(t *testing.T, g *Graph, start CompositeID, s string) (CompositeID, bool) {
	t.Helper()
	cur := start
	for i := 0; i < len(s); i++ {
		next, ok := g.Composite(cur).Next(s[i])
		if !ok {
			return InvalidComposite, false
		}
		cur = next
	}
	return cur, true
}

func TestBuildLiteralConcatenationAccepts(t *testing.T) {
	g := mustBuild(t, "abc")
	end, ok := walkBytes(t, g, g.Start(), "abc")
	if !ok {
		t.Fatalf("walk(%q) failed to find a transition path", "abc")
	}
	if !g.Composite(end).Flags().ContainsAccepting {
		t.Errorf("walk(%q) landed on non-accepting composite", "abc")
	}
}

func TestBuildAlternationBothBranchesAccept(t *testing.T) {
	g := mustBuild(t, "ab|cd")
	for _, s := range []string{"ab", "cd"} {
		end, ok := walkBytes(t, g, g.Start(), s)
		if !ok {
			t.Fatalf("walk(%q) failed to find a transition path", s)
		}
		if !g.Composite(end).Flags().ContainsAccepting {
			t.Errorf("walk(%q) landed on non-accepting composite", s)
		}
	}
}

func TestBuildKleeneAllowsZeroOrManyRepeats(t *testing.T) {
	g := mustBuild(t, "ab*c")
	for _, s := range []string{"ac", "abc", "abbbbc"} {
		end, ok := walkBytes(t, g, g.Start(), s)
		if !ok {
			t.Fatalf("walk(%q) failed to find a transition path", s)
		}
		if !g.Composite(end).Flags().ContainsAccepting {
			t.Errorf("walk(%q) landed on non-accepting composite", s)
		}
	}
	// Zero repeats of 'b' plus a wrong tail must NOT accept.
	end, ok := walkBytes(t, g, g.Start(), "ad")
	if ok && g.Composite(end).Flags().ContainsAccepting {
		t.Errorf("walk(%q) unexpectedly accepted", "ad")
	}
}

func TestBuildPositiveClosureRequiresAtLeastOne(t *testing.T) {
	g := mustBuild(t, "ab+c")
	end, ok := walkBytes(t, g, g.Start(), "ac")
	if ok && g.Composite(end).Flags().ContainsAccepting {
		t.Errorf("walk(%q) accepted, want reject (b+ requires at least one b)", "ac")
	}
	end, ok = walkBytes(t, g, g.Start(), "abbc")
	if !ok || !g.Composite(end).Flags().ContainsAccepting {
		t.Errorf("walk(%q) did not accept", "abbc")
	}
}

func TestBuildDigitClassTransitionsOnlyDigits(t *testing.T) {
	g := mustBuild(t, "[0-9]")
	start := g.Composite(g.Start())
	if !start.Flags().ContainsDigits {
		t.Fatalf("start composite missing ContainsDigits flag")
	}
	for b := 0; b < 256; b++ {
		_, ok := start.Next(byte(b))
		want := b >= '0' && b <= '9'
		if ok != want {
			t.Errorf("Next(%q) ok = %v, want %v", byte(b), ok, want)
		}
	}
}

func TestBuildWildcardTransitionsAnyPrintableByte(t *testing.T) {
	g := mustBuild(t, "$")
	start := g.Composite(g.Start())
	if !start.Flags().ContainsWildcard {
		t.Fatalf("start composite missing ContainsWildcard flag")
	}
	for b := 0; b <= 126; b++ {
		if _, ok := start.Next(byte(b)); !ok {
			t.Errorf("Next(%d) ok = false, want true (wildcard covers 0-126)", b)
		}
	}
}

func TestVisitedSetTracksMembership(t *testing.T) {
	v := newVisitedSet(8)
	if v.contains(3) {
		t.Fatalf("fresh set contains 3")
	}
	v.insert(3)
	if !v.contains(3) {
		t.Errorf("set does not contain 3 after insert")
	}
	if v.contains(4) {
		t.Errorf("set contains 4, never inserted")
	}
	v.insert(3)
	if v.size != 1 {
		t.Errorf("duplicate insert grew size to %d, want 1", v.size)
	}
}

func TestBuildGraphIsFiniteUnderCycles(t *testing.T) {
	// (a*)+ nests a kleene inside a positive closure: the builder's
	// memoization must terminate despite the pre-existing inner cycle.
	g := mustBuild(t, "(a*)+b")
	if g.Len() == 0 {
		t.Fatalf("Build produced an empty graph")
	}
	end, ok := walkBytes(t, g, g.Start(), "aaab")
	if !ok || !g.Composite(end).Flags().ContainsAccepting {
		t.Errorf("walk(%q) did not accept", "aaab")
	}
}
