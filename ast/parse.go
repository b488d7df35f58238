package ast

import "github.com/jar-of-salt/saltgrep/token"

// precedence returns the original (non-negated) shunting-yard precedence
// for the binary operators Cons and Alternation, plus the barrier value
// for OpenGroup. Smaller values bind tighter: Cons(6) binds tighter than
// Alternation(8); OpenGroup(10) is never itself reduced by the generic
// binary-operator loop, acting as a barrier.
func precedence(k token.Kind) int {
	switch k {
	case token.KindCons:
		return 6
	case token.KindAlternation:
		return 8
	case token.KindOpenGroup:
		return 10
	default:
		return 0
	}
}

// Parse runs the shunting-yard ("railroad") algorithm over toks, producing
// a post-order-linearized Ast.
//
// Two stacks drive the algorithm: out holds Ast node references (operands),
// ops holds not-yet-reduced operator tokens (only OpenGroup, Cons and
// Alternation are ever pushed there — Quantifier and CloseGroup bind or
// reduce immediately and never sit on ops).
func Parse(toks token.Tokens) (*Ast, error) {
	a := &Ast{}
	var out []Ref
	var ops []token.Token

	for i := 0; i < len(toks); i++ {
		tok := toks[i]

		switch tok.Kind {
		case token.KindLiteral:
			out = append(out, a.add(Node{Kind: NodeLiteral, Token: tok}))

		case token.KindOpenGroup:
			ops = append(ops, tok)
			if i+1 < len(toks) && toks[i+1].Kind == token.KindCloseGroup {
				empty := token.Token{Kind: token.KindLiteral, Literal: token.LiteralEmptyString, ByteStart: tok.ByteEnd, ByteEnd: tok.ByteEnd}
				out = append(out, a.add(Node{Kind: NodeLiteral, Token: empty}))
			}

		case token.KindCloseGroup:
			var err error
			out, ops, err = closeGroup(a, tok, out, ops)
			if err != nil {
				return nil, err
			}

		case token.KindQuantifier:
			if len(out) == 0 {
				return nil, &SyntaxError{Kind: MissingOperand, Pos: tok.ByteStart, Info: "quantifier has no operand"}
			}
			child := out[len(out)-1]
			out = out[:len(out)-1]
			out = append(out, a.add(Node{Kind: NodeQuantifier, Token: tok, Child: child}))

		default: // Cons, Alternation
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if precedence(tok.Kind) < precedence(top.Kind) {
					break
				}
				ops = ops[:len(ops)-1]
				var ref Ref
				var err error
				ref, out, err = reduceBinary(a, top, out)
				if err != nil {
					return nil, err
				}
				out = append(out, ref)
			}
			ops = append(ops, tok)
		}
	}

	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top.Kind == token.KindOpenGroup {
			return nil, &SyntaxError{Kind: UnclosedGroup, Pos: top.ByteStart}
		}
		ref, rest, err := reduceBinary(a, top, out)
		if err != nil {
			return nil, err
		}
		out = append(rest, ref)
	}

	return a, nil
}

// closeGroup pops ops into AST nodes until the matching OpenGroup, then
// wraps the remaining top of out in a Group node.
func closeGroup(a *Ast, tok token.Token, out []Ref, ops []token.Token) ([]Ref, []token.Token, error) {
	for {
		if len(ops) == 0 {
			return nil, nil, &SyntaxError{Kind: UnmatchedCloseGroup, Pos: tok.ByteStart}
		}
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top.Kind == token.KindOpenGroup {
			break
		}
		ref, rest, err := reduceBinary(a, top, out)
		if err != nil {
			return nil, nil, err
		}
		out = append(rest, ref)
	}

	if len(out) == 0 {
		return nil, nil, &SyntaxError{Kind: MissingOperand, Pos: tok.ByteStart, Info: "nothing to group"}
	}
	child := out[len(out)-1]
	out = out[:len(out)-1]
	out = append(out, a.add(Node{Kind: NodeGroup, Child: child}))
	return out, ops, nil
}

// reduceBinary pops the top two operands of out and appends a Cons or
// Alternation node combining them, returning the remaining out stack.
func reduceBinary(a *Ast, op token.Token, out []Ref) (Ref, []Ref, error) {
	if len(out) < 2 {
		side := "operand"
		if len(out) == 0 {
			side = "left and right operands"
		}
		return 0, out, &SyntaxError{Kind: MissingOperand, Pos: op.ByteStart, Info: "binary operator missing " + side}
	}
	right := out[len(out)-1]
	left := out[len(out)-2]
	out = out[:len(out)-2]

	kind := NodeCons
	if op.Kind == token.KindAlternation {
		kind = NodeAlternation
	}
	return a.add(Node{Kind: kind, Token: op, Left: left, Right: right}), out, nil
}
