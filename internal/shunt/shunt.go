// Package shunt implements the second pipeline stage (spec section 4.2):
// a standard shunting-yard conversion from the rewriter's infix token
// stream (with explicit concatenation already marked) to postfix.
package shunt

import (
	"github.com/jackr276/regex-libc/internal/rerr"
	"github.com/jackr276/regex-libc/internal/token"
)

// precedence tiers, highest first. Unary postfix operators (*, + , ?) share
// a tier above concatenation, which sits above alternation.
func precedence(k token.Kind) int {
	switch k {
	case token.Star, token.Plus, token.Question:
		return 3
	case token.Concat:
		return 2
	case token.Alt:
		return 1
	default:
		return 0
	}
}

// rightAssoc reports whether an operator is right-associative. The unary
// postfix operators are right-associative at their tier per spec section
// 4.2 ("a newly seen unary never displaces another"); concatenation and
// alternation are left-associative.
func rightAssoc(k token.Kind) bool {
	return k == token.Star || k == token.Plus || k == token.Question
}

// ToPostfix runs shunting-yard over the rewriter's output, honoring operator
// precedence and parentheses. Operands (Literal, Class, Wildcard) pass
// straight to the output queue.
func ToPostfix(infix []token.Token) ([]token.Token, error) {
	out := make([]token.Token, 0, len(infix))
	var ops []token.Token

	popUntilAndDiscard := func() bool {
		for len(ops) > 0 {
			top := ops[len(ops)-1]
			ops = ops[:len(ops)-1]
			if top.Kind == token.LParen {
				return true
			}
			out = append(out, top)
		}
		return false
	}

	for _, tok := range infix {
		switch tok.Kind {
		case token.Literal, token.Class, token.Wildcard:
			out = append(out, tok)

		case token.LParen:
			ops = append(ops, tok)

		case token.RParen:
			if !popUntilAndDiscard() {
				return nil, rerr.ErrPatternUnmatchedParen
			}

		case token.Star, token.Plus, token.Question, token.Concat, token.Alt:
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.Kind == token.LParen {
					break
				}
				higher := precedence(top.Kind) > precedence(tok.Kind)
				equalLeftAssoc := precedence(top.Kind) == precedence(tok.Kind) && !rightAssoc(tok.Kind)
				if !(higher || equalLeftAssoc) {
					break
				}
				ops = ops[:len(ops)-1]
				out = append(out, top)
			}
			ops = append(ops, tok)
		}
	}

	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top.Kind == token.LParen {
			return nil, rerr.ErrPatternUnmatchedParen
		}
		out = append(out, top)
	}

	return out, nil
}
