// Package coregex compiles and matches the small regex dialect described
// in the package documentation: printable-ASCII literals, the four
// bracket-class shorthands, '|' '*' '+' '?' '(' ')', backslash escapes, and
// '$' as a wildcard-any-printable-byte operator (not an end-of-string
// anchor — this departs from POSIX/PCRE and is documented here rather than
// silently assumed).
//
// Compilation runs a five-stage pipeline — lexical rewrite, shunting-yard
// to postfix, Thompson construction of an NFA, ε-closure collapse into a
// byte-indexed matcher graph, and (when the pattern is a bare literal run)
// an Aho-Corasick prefilter — and produces an immutable, concurrency-safe
// Regex. Matching walks the matcher graph byte by byte and reports the
// first match found, not the longest.
package coregex

import (
	"github.com/jackr276/regex-libc/internal/diag"
	"github.com/jackr276/regex-libc/internal/graph"
	"github.com/jackr276/regex-libc/internal/lexer"
	"github.com/jackr276/regex-libc/internal/match"
	"github.com/jackr276/regex-libc/internal/nfa"
	"github.com/jackr276/regex-libc/internal/prefilter"
	"github.com/jackr276/regex-libc/internal/rerr"
	"github.com/jackr276/regex-libc/internal/shunt"
)

// Config controls compilation behavior. The zero value is not meant to be
// used directly; call DefaultConfig and override individual fields.
type Config struct {
	// Verbose routes compile-time trace events (rewritten pattern, postfix
	// form, NFA structure) to a diag.Sink writing to os.Stderr. Matching
	// emits no trace events. Default: false.
	Verbose bool

	// EnablePrefilter lets compilation build an Aho-Corasick prefilter for
	// patterns that reduce to a bare literal run, short-circuiting the
	// matcher graph for that common case. Default: true.
	EnablePrefilter bool

	// MaxPatternLength caps accepted pattern length in bytes. The
	// reference implementation fixes this at 150; this is exposed so
	// callers can tighten (never loosen past what the lexer itself
	// enforces) it for their own budget.
	MaxPatternLength int
}

// DefaultConfig returns the configuration CompileWithConfig uses when
// callers go through Compile/MustCompile.
func DefaultConfig() Config {
	return Config{
		Verbose:          false,
		EnablePrefilter:  true,
		MaxPatternLength: lexer.MaxPatternLength,
	}
}

// Validate reports whether c's fields are within acceptable ranges.
func (c Config) Validate() error {
	if c.MaxPatternLength < 1 || c.MaxPatternLength > lexer.MaxPatternLength {
		return &ConfigError{Field: "MaxPatternLength", Message: "must be between 1 and the compiled-in limit"}
	}
	return nil
}

// ConfigError reports an invalid Config field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "regex: invalid config: " + e.Field + ": " + e.Message
}

// CompileError wraps a pattern compilation failure, identifying which of
// the flat error tags in the rerr package applies via errors.Is/errors.As.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return "regex: compile " + quote(e.Pattern) + ": " + e.Err.Error()
}

func (e *CompileError) Unwrap() error { return e.Err }

func quote(s string) string {
	b := make([]byte, 0, len(s)+2)
	b = append(b, '"')
	b = append(b, s...)
	b = append(b, '"')
	return string(b)
}

// Result mirrors match.Result at the public surface: a found/not-found
// distinction plus the half-open [Start, End) byte span when found.
type Result struct {
	Found bool
	Start int
	End   int
}

// Regex is a compiled pattern. It is immutable after Compile returns and
// safe to use concurrently from multiple goroutines, per spec section 5 —
// nothing past compile time ever writes to the NFA or matcher-graph arenas.
type Regex struct {
	source  string
	graph   *graph.Graph
	prefilt *prefilter.Filter
	hasPref bool
	cfg     Config
	sink    diag.Sink
}

// Compile compiles pattern with the default configuration.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile is like Compile but panics on error, for package-level
// pattern variables initialized at startup.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// CompileWithConfig compiles pattern under an explicit Config.
func CompileWithConfig(pattern string, cfg Config) (*Regex, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(pattern) > cfg.MaxPatternLength {
		return nil, &CompileError{Pattern: pattern, Err: &rerr.PatternError{Pattern: pattern, Offset: -1, Err: rerr.ErrPatternTooLong}}
	}

	var sink diag.Sink = diag.Silent{}
	if cfg.Verbose {
		sink = diag.NewLogSink(nil)
	}

	infix, err := lexer.Rewrite([]byte(pattern))
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	diag.Rewrite(sink, pattern, infix)

	postfix, err := shunt.ToPostfix(infix)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	diag.Postfix(sink, postfix)

	n, err := nfa.Compile(postfix)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	diag.NFAStructure(sink, n)

	g := graph.Build(n)

	re := &Regex{
		source: pattern,
		graph:  g,
		cfg:    cfg,
		sink:   sink,
	}

	if cfg.EnablePrefilter {
		if literal, ok := prefilter.PureLiteral(postfix); ok {
			if f, ok := prefilter.Build(literal); ok {
				re.prefilt = f
				re.hasPref = true
			}
		}
	}

	return re, nil
}

// String returns the original, uncompiled pattern text.
func (re *Regex) String() string { return re.source }

// Test scans text starting at byte offset start for the leftmost match,
// implementing the match operation from spec section 6. A nil/empty text
// or an out-of-range start reports Result{} (Found false) and a
// rerr.ErrMatchInvalidInput error, mirroring the match-invalid-input status
// tag.
func (re *Regex) Test(text string, start int) (Result, error) {
	if len(text) == 0 || start < 0 || start > len(text) {
		return Result{}, rerr.ErrMatchInvalidInput
	}

	if re.hasPref {
		if s, e, ok := re.prefilt.Find([]byte(text), start); ok {
			return Result{Found: true, Start: s, End: e}, nil
		}
		return Result{}, nil
	}

	r := match.Run(re.graph, []byte(text), start)
	switch r.Status {
	case match.StatusInvalidInput:
		return Result{}, rerr.ErrMatchInvalidInput
	case match.StatusFound:
		return Result{Found: true, Start: r.Start, End: r.End}, nil
	default:
		return Result{}, nil
	}
}

// Close releases resources associated with re. The NFA and matcher-graph
// arenas are plain Go slices collected by the garbage collector once
// unreferenced, so Close's only real job today is to make re unusable
// (catching use-after-close bugs) and to give this type the
// compile/destroy-paired shape spec section 6 and section 5 describe —
// every resource the reference implementation frees by hand here the
// Go runtime already reclaims.
func (re *Regex) Close() {
	re.graph = nil
	re.prefilt = nil
	re.hasPref = false
}
