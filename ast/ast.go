// Package ast parses a token sequence into a linearized abstract syntax
// tree using a shunting-yard ("railroad") algorithm.
//
// The tree is stored as a flat, append-only sequence of Node values in
// post-order (evaluation order): every operator node references operand
// indices that were appended earlier in the same sequence, so walking the
// sequence front-to-back evaluates each operator strictly after its
// operands. This mirrors the NFA package's own flat, index-addressed
// state arena rather than a pointer-linked tree.
package ast

import "github.com/jar-of-salt/saltgrep/token"

// Ref is an index into an Ast's node sequence.
type Ref int

// NodeKind identifies the shape of a Node.
type NodeKind uint8

const (
	NodeLiteral NodeKind = iota
	NodeQuantifier
	NodeCons
	NodeAlternation
	NodeGroup
)

// Node is one entry in the linearized AST.
//
// Only the fields relevant to Kind are meaningful: Token for NodeLiteral
// and NodeQuantifier (it carries the quantifier kind and byte span for
// error reporting), Left/Right for binary nodes, Child for unary ones.
type Node struct {
	Kind  NodeKind
	Token token.Token
	Left  Ref
	Right Ref
	Child Ref
}

// Ast is the post-order node sequence produced by Parse.
type Ast struct {
	Nodes []Node
}

// add appends a node and returns its Ref.
func (a *Ast) add(n Node) Ref {
	a.Nodes = append(a.Nodes, n)
	return Ref(len(a.Nodes) - 1)
}

// Get returns the node at ref.
func (a *Ast) Get(ref Ref) Node {
	return a.Nodes[ref]
}

// Root returns the final node of a non-empty Ast: the AST root.
func (a *Ast) Root() Ref {
	return Ref(len(a.Nodes) - 1)
}

// Len returns the number of nodes in the sequence.
func (a *Ast) Len() int {
	return len(a.Nodes)
}
