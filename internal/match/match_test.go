package match

import (
	"testing"

	"github.com/jackr276/regex-libc/internal/graph"
	"github.com/jackr276/regex-libc/internal/lexer"
	"github.com/jackr276/regex-libc/internal/nfa"
	"github.com/jackr276/regex-libc/internal/shunt"
)

func mustBuild(t *testing.T, pattern string) *graph.Graph {
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
	return graph.Build(n)
}

// TestRunConcreteScenarios exercises the eight pattern/text/expected cases
// set out in the spec's testable-properties section, minus scenario 8
// (a compile-time failure, which belongs to the lexer/shunt packages).
func TestRunConcreteScenarios(t *testing.T) {
	cases := []struct {
		name    string
		pattern string
		text    string
		want    Status
		check   func(t *testing.T, r Result)
	}{
		{
			name:    "plain literal concatenation",
			pattern: "abcd",
			text:    "aaa  b-b#bbbbabcdlmnop",
			want:    StatusFound,
			check: func(t *testing.T, r Result) {
				if r.End-r.Start != 4 {
					t.Errorf("match span = %d, want 4", r.End-r.Start)
				}
				if r.Start < 12 || r.Start > 13 {
					t.Errorf("match start = %d, want within [12,13]", r.Start)
				}
			},
		},
		{
			name:    "optional absent",
			pattern: "abc?d",
			text:    "aaabbbbbbabdlmnop",
			want:    StatusFound,
			check: func(t *testing.T, r Result) {
				if r.End-r.Start != 3 {
					t.Errorf("match span = %d, want 3 (optional c absent)", r.End-r.Start)
				}
			},
		},
		{
			name:    "kleene body",
			pattern: "ab*c",
			text:    "aaabbbbbbc a.kas",
			want:    StatusFound,
			check: func(t *testing.T, r Result) {
				got := "aaabbbbbbc a.kas"[r.Start:r.End]
				if got != "abbbbbbc" {
					t.Errorf("match = %q, want %q", got, "abbbbbbc")
				}
			},
		},
		{
			name:    "positive closure not found",
			pattern: "ab+c",
			text:    "aaacd",
			want:    StatusNotFound,
		},
		{
			name:    "alternation",
			pattern: "(ab|da)bc",
			text:    "aaaaaadabcd",
			want:    StatusFound,
			check: func(t *testing.T, r Result) {
				got := "aaaaaadabcd"[r.Start:r.End]
				if got != "dabc" {
					t.Errorf("match = %q, want %q", got, "dabc")
				}
			},
		},
		{
			name:    "digit run",
			pattern: "[0-9]+",
			text:    "abc123xyz",
			want:    StatusFound,
		},
		{
			name:    "escaped parens as literals",
			pattern: `a\(cd\)a`,
			text:    "zza(cd)a...",
			want:    StatusFound,
			check: func(t *testing.T, r Result) {
				got := "zza(cd)a..."[r.Start:r.End]
				if got != "a(cd)a" {
					t.Errorf("match = %q, want %q", got, "a(cd)a")
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := mustBuild(t, tc.pattern)
			r := Run(g, []byte(tc.text), 0)
			if r.Status != tc.want {
				t.Fatalf("Run(%q, %q) status = %v, want %v", tc.pattern, tc.text, r.Status, tc.want)
			}
			if tc.check != nil {
				tc.check(t, r)
			}
		})
	}
}

func TestRunInvalidInput(t *testing.T) {
	g := mustBuild(t, "abc")

	r := Run(g, []byte(""), 0)
	if r.Status != StatusInvalidInput {
		t.Errorf("Run on empty text status = %v, want invalid-input", r.Status)
	}

	r = Run(g, []byte("abc"), 10)
	if r.Status != StatusInvalidInput {
		t.Errorf("Run with out-of-range start status = %v, want invalid-input", r.Status)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	g := mustBuild(t, "ab*c")
	text := []byte("xxabbbcxx")
	r1 := Run(g, text, 0)
	r2 := Run(g, text, 0)
	if r1 != r2 {
		t.Errorf("Run is not idempotent: %+v != %+v", r1, r2)
	}
}

func TestRunOffsetsWithinBounds(t *testing.T) {
	g := mustBuild(t, "[a-z]+")
	text := []byte("123 hello 456")
	r := Run(g, text, 0)
	if r.Status != StatusFound {
		t.Fatalf("Run status = %v, want found", r.Status)
	}
	if r.Start < 0 || r.Start > r.End || r.End > len(text) {
		t.Errorf("offsets out of bounds: start=%d end=%d len=%d", r.Start, r.End, len(text))
	}
}
