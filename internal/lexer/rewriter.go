// Package lexer implements the first pipeline stage (spec section 4.1):
// it validates the raw pattern, expands the four recognized character-class
// shorthands, and inserts explicit concatenation markers so the
// shunting-yard converter never has to guess where one operand ends and
// the next begins.
//
// Where the reference implementation rewrites a byte string in place
// (injecting a backtick byte for concatenation), this package produces a
// []token.Token stream directly: a Concat token carries the same
// information as a smuggled backtick byte without risking collision with a
// literal backtick in the pattern.
package lexer

import (
	"github.com/jackr276/regex-libc/internal/rerr"
	"github.com/jackr276/regex-libc/internal/token"
)

// MaxPatternLength is the hard cap on pattern length (spec section 4.1:
// "hard limit ≈150 bytes... a configuration choice, not a correctness
// requirement").
const MaxPatternLength = 150

// Rewrite validates pattern and produces the rewritten token stream:
// concatenation markers inserted, character-class shorthands collapsed to
// single Class tokens, backslash escapes collapsed to single Literal
// tokens. This matches spec section 3's token alphabet, which already
// describes an escaped byte as indistinguishable from any other literal.
func Rewrite(pattern []byte) ([]token.Token, error) {
	if len(pattern) == 0 {
		return nil, &rerr.PatternError{Pattern: string(pattern), Offset: -1, Err: rerr.ErrPatternEmpty}
	}
	if len(pattern) > MaxPatternLength {
		return nil, &rerr.PatternError{Pattern: string(pattern), Offset: -1, Err: rerr.ErrPatternTooLong}
	}

	out := make([]token.Token, 0, len(pattern))
	havePrev := false
	var prev token.Token

	i := 0
	for i < len(pattern) {
		b := pattern[i]
		if !printable(b) {
			return nil, patErr(pattern, i, rerr.ErrPatternNonPrintableByte)
		}

		var tok token.Token
		switch b {
		case '\\':
			i++
			if i >= len(pattern) {
				return nil, patErr(pattern, i-1, rerr.ErrPatternEscapeAtEnd)
			}
			esc := pattern[i]
			if !printable(esc) {
				return nil, patErr(pattern, i, rerr.ErrPatternNonPrintableByte)
			}
			tok = token.Token{Kind: token.Literal, Byte: esc}

		case '[':
			end := i + 1
			for end < len(pattern) && pattern[end] != ']' {
				end++
			}
			if end >= len(pattern) {
				return nil, patErr(pattern, i, rerr.ErrPatternBadClassRange)
			}
			ck, ok := classFor(pattern[i+1 : end])
			if !ok {
				return nil, patErr(pattern, i, rerr.ErrPatternBadClassRange)
			}
			tok = token.Token{Kind: token.Class, Class: ck}
			i = end

		case '|':
			tok = token.Token{Kind: token.Alt}
		case '*':
			tok = token.Token{Kind: token.Star}
		case '+':
			tok = token.Token{Kind: token.Plus}
		case '?':
			tok = token.Token{Kind: token.Question}
		case '(':
			tok = token.Token{Kind: token.LParen}
		case ')':
			tok = token.Token{Kind: token.RParen}
		case '$':
			tok = token.Token{Kind: token.Wildcard}
		default:
			tok = token.Token{Kind: token.Literal, Byte: b}
		}

		if havePrev && needsConcat(prev, tok) {
			out = append(out, token.Token{Kind: token.Concat})
		}
		out = append(out, tok)
		prev, havePrev = tok, true
		i++
	}

	return out, nil
}

func patErr(pattern []byte, offset int, err error) error {
	return &rerr.PatternError{Pattern: string(pattern), Offset: offset, Err: err}
}

func printable(b byte) bool {
	return b >= 32 && b <= 126
}

// classFor maps recognized bracket contents to a ClassKind. Any other
// bracket body is a compilation error (spec section 4.1).
func classFor(body []byte) (token.ClassKind, bool) {
	switch string(body) {
	case "0-9":
		return token.Digit, true
	case "a-z":
		return token.Lower, true
	case "A-Z":
		return token.Upper, true
	case "a-zA-Z":
		return token.Letter, true
	default:
		return 0, false
	}
}

// needsConcat implements spec section 4.1's adjacency rule: a marker goes
// between two tokens whenever the preceding token is one of
// {literal, closing-paren, *, +, ?, close-class} and the current one is one
// of {literal, opening-paren, \, opening-class}. Because escapes and
// classes are already collapsed to Literal/Class tokens by the time this
// runs, the rule reduces to the two predicates below.
func needsConcat(prev, cur token.Token) bool {
	precedes := prev.IsOperand() || prev.Kind == token.RParen || prev.IsUnaryPostfix()
	follows := cur.IsOperand() || cur.Kind == token.LParen
	return precedes && follows
}
