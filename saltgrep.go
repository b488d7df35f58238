// Package saltgrep compiles a small regular-expression dialect into an NFA
// and matches it against text.
//
// The supported syntax is concatenation, `|` alternation, `*`/`+`/`?`
// quantifiers, `.` (any scalar, including newline), `\w \W \d \D \s \S`
// classes, manual `[...]`/`[^...]` character classes, and `(...)` capturing
// groups. Anchors, backreferences, lookaround, bounded repetition and
// non-greedy quantifiers are not part of the dialect.
//
// Compile runs the pattern through four stages — token.Tokenize, ast.Parse,
// a lowering walk that builds an nfa.Machine bottom-up from the AST, and
// the nfa package's own ε-closure simulator for matching:
//
//	re, err := saltgrep.Compile(`(foo|bar)+baz`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	match, ok := re.Find("xfoobarbazy")
package saltgrep

import (
	"unicode/utf8"

	"github.com/jar-of-salt/saltgrep/ast"
	"github.com/jar-of-salt/saltgrep/nfa"
	"github.com/jar-of-salt/saltgrep/prefilter"
	"github.com/jar-of-salt/saltgrep/token"
)

// Regexp is a compiled pattern, safe for concurrent use by multiple
// goroutines (Compile never mutates the Machine it builds).
type Regexp struct {
	pattern  string
	machine  *nfa.Machine
	prefix   prefilter.Prefilter
	complete bool
}

// Compile compiles pattern into a Regexp, or returns a *CompileError
// describing the first lexical, syntactic, or structural problem found.
//
// Example:
//
//	re, err := saltgrep.Compile(`\d+(-\d+)?`)
func Compile(pattern string) (*Regexp, error) {
	toks, err := token.Tokenize(pattern)
	if err != nil {
		return nil, &CompileError{Kind: LexicalError, Err: err}
	}

	tree, err := ast.Parse(toks)
	if err != nil {
		return nil, &CompileError{Kind: SyntaxErrorKind, Err: err}
	}

	machine, err := lower(tree, pattern)
	if err != nil {
		return nil, err
	}

	prefix, complete := nfa.LiteralPrefix(machine)
	var pf prefilter.Prefilter
	switch {
	case len(prefix) > 0:
		pf = prefilter.NewBuilder(prefix, complete).Build()
	case nfa.StartsWithDigitClass(machine):
		pf = prefilter.NewDigitPrefilter()
	}

	return &Regexp{pattern: pattern, machine: machine, prefix: pf, complete: complete}, nil
}

// MustCompile is Compile but panics on error, for patterns known valid at
// init time.
func MustCompile(pattern string) *Regexp {
	re, err := Compile(pattern)
	if err != nil {
		panic("saltgrep: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// String returns the pattern the Regexp was compiled from.
func (re *Regexp) String() string {
	return re.pattern
}

// Find reports the leftmost match in s, if any, extended as far as the
// automaton can sustain it.
func (re *Regexp) Find(s string) (nfa.Match, bool) {
	return re.FindAt(s, 0)
}

// FindAt is Find restricted to matches starting no earlier than byte
// offset at. When the compiled pattern begins with a literal prefix, the
// search skips ahead to candidate start positions using the prefilter
// rather than invoking the simulator at every offset.
func (re *Regexp) FindAt(s string, at int) (nfa.Match, bool) {
	if re.prefix == nil {
		return re.machine.FindAt(s, at)
	}
	haystack := []byte(s)
	pos := at
	for pos < len(s) {
		start := re.prefix.Find(haystack, pos)
		if start == -1 {
			return nfa.Match{}, false
		}
		if match, ok := re.machine.FindAt(s, start); ok {
			return match, true
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		if size == 0 {
			size = 1
		}
		pos = start + size
	}
	return nfa.Match{}, false
}

// Captures is Find with capturing-group spans, keyed by group number
// (group 0 is the whole match).
func (re *Regexp) Captures(s string) (nfa.Captures, bool) {
	return re.machine.Captures(s)
}

// CapturesAt is FindAt with capturing-group spans.
func (re *Regexp) CapturesAt(s string, at int) (nfa.Captures, bool) {
	return re.machine.CapturesAt(s, at)
}

// MatchString reports whether s contains any match of the pattern.
func (re *Regexp) MatchString(s string) bool {
	_, ok := re.Find(s)
	return ok
}

// TryFindIterAt calls cb with every successive non-overlapping match found
// in s from offset at onward, stopping early if cb returns false or an
// error.
func (re *Regexp) TryFindIterAt(s string, at int, cb func(nfa.Match) (bool, error)) error {
	return re.machine.TryFindIterAt(s, at, cb)
}

// lower walks tree bottom-up (the tree is already in post-order), building
// an nfa.Machine by pushing leaf machines and reducing them with the
// combinator matching each internal node's operator.
func lower(tree *ast.Ast, pattern string) (*nfa.Machine, error) {
	if tree.Len() == 0 {
		// The empty pattern matches the empty string at every position.
		return nfa.EmptyStringMachine(), nil
	}

	var stack []*nfa.Machine

	pop := func(info string) (*nfa.Machine, error) {
		if len(stack) == 0 {
			return nil, &CompileError{Kind: MissingOperand, Message: info}
		}
		m := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return m, nil
	}

	for i := 0; i < tree.Len(); i++ {
		node := tree.Get(ast.Ref(i))

		switch node.Kind {
		case ast.NodeLiteral:
			m, err := lowerLiteral(node.Token, pattern)
			if err != nil {
				return nil, err
			}
			stack = append(stack, m)

		case ast.NodeQuantifier:
			operand, err := pop("quantifier operand")
			if err != nil {
				return nil, err
			}
			switch node.Token.Quant {
			case token.QuantifierZeroOrMore:
				stack = append(stack, operand.ZeroOrMore())
			case token.QuantifierOneOrMore:
				stack = append(stack, operand.OneOrMore())
			case token.QuantifierZeroOrOne:
				stack = append(stack, operand.ZeroOrOne())
			}

		case ast.NodeCons:
			right, err := pop("cons right-hand side")
			if err != nil {
				return nil, err
			}
			left, err := pop("cons left-hand side")
			if err != nil {
				return nil, err
			}
			stack = append(stack, left.Cons(right))

		case ast.NodeAlternation:
			right, err := pop("alternation right-hand side")
			if err != nil {
				return nil, err
			}
			left, err := pop("alternation left-hand side")
			if err != nil {
				return nil, err
			}
			stack = append(stack, left.Or(right))

		case ast.NodeGroup:
			operand, err := pop("group body")
			if err != nil {
				return nil, err
			}
			stack = append(stack, operand.Group())
		}
	}

	if len(stack) == 0 {
		return nil, &CompileError{Kind: Catastrophic, Message: "no machine produced"}
	}
	return stack[len(stack)-1], nil
}

// lowerLiteral builds the leaf machine for a single Literal AST node.
func lowerLiteral(tok token.Token, pattern string) (*nfa.Machine, error) {
	switch tok.Literal {
	case token.LiteralWildcard:
		return nfa.WildcardMachine(), nil

	case token.LiteralCharacter:
		c, _ := utf8.DecodeRuneInString(pattern[tok.ByteStart:tok.ByteEnd])
		return nfa.CharMachine(c), nil

	case token.LiteralEscapedCharacter:
		c, _ := utf8.DecodeRuneInString(pattern[tok.ByteStart+1 : tok.ByteEnd])
		return nfa.CharMachine(c), nil

	case token.LiteralCharacterClass:
		switch tok.Class {
		case token.ClassWord:
			return nfa.WordMachine(tok.ClassPos), nil
		case token.ClassDigit:
			return nfa.DigitMachine(tok.ClassPos), nil
		case token.ClassWhitespace:
			return nfa.WhitespaceMachine(tok.ClassPos), nil
		default: // ClassManual
			m, err := nfa.ManualClassMachine(tok.ClassPos, manualClassContent(pattern, tok))
			if err != nil {
				return nil, &CompileError{Kind: InvalidRange, Err: err}
			}
			return m, nil
		}

	default: // LiteralEmptyString
		return nfa.EmptyStringMachine(), nil
	}
}

// manualClassContent extracts the text between the brackets of a manual
// character class token, past the leading '^' when the class is negated.
func manualClassContent(pattern string, tok token.Token) string {
	start := tok.ByteStart + 1
	if !tok.ClassPos {
		start++
	}
	return pattern[start : tok.ByteEnd-1]
}
