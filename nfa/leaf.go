package nfa

import (
	"unicode"
)

// CharMachine builds a three-state machine matching exactly the scalar c.
func CharMachine(c rune) *Machine {
	states := []State{
		nullJumpState(1),
		{Transitions: []Transition{{Rule: Rule{Kind: RuleRange, Lo: c, Hi: c, Positive: true}, Next: Next{Target: 2}}}},
		acceptState(),
	}
	return newMachine(states)
}

// WildcardMachine builds a machine matching any single scalar, including
// newline.
func WildcardMachine() *Machine {
	states := []State{
		nullJumpState(1),
		{Transitions: []Transition{{Rule: Rule{Kind: RuleRange, Lo: 0, Hi: unicode.MaxRune, Positive: true}, Next: Next{Target: 2}}}},
		acceptState(),
	}
	return newMachine(states)
}

// classMachine builds the common shape shared by \w, \d and \s: a middle
// state with one class-predicate transition, plus a short-circuit flag
// when the class is negated so a single failing rule invalidates the
// whole state for that scalar rather than falling through.
func classMachine(transitions []Transition, positive bool) *Machine {
	mid := State{Transitions: transitions}
	if !positive {
		mid.Flags |= flagShortCircuit
	}
	states := []State{nullJumpState(1), mid, acceptState()}
	return newMachine(states)
}

// WordMachine builds \w (positive) or \W (negative). Word scalars are
// alphanumeric or underscore; underscore is expressed as its own rule
// since RuleIsWord alone only covers the alphanumeric half.
func WordMachine(positive bool) *Machine {
	transitions := []Transition{
		{Rule: Rule{Kind: RuleIsWord, Positive: positive}, Next: Next{Target: 2}},
	}
	if positive {
		transitions = append(transitions, Transition{Rule: Rule{Kind: RuleRange, Lo: '_', Hi: '_', Positive: true}, Next: Next{Target: 2}})
	} else {
		transitions = append(transitions, Transition{Rule: Rule{Kind: RuleNot, Lo: '_'}, Next: Next{Target: 2}})
	}
	return classMachine(transitions, positive)
}

// DigitMachine builds \d (positive) or \D (negative).
func DigitMachine(positive bool) *Machine {
	transitions := []Transition{
		{Rule: Rule{Kind: RuleIsDigit, Positive: positive}, Next: Next{Target: 2}},
	}
	return classMachine(transitions, positive)
}

// WhitespaceMachine builds \s (positive) or \S (negative).
func WhitespaceMachine(positive bool) *Machine {
	transitions := []Transition{
		{Rule: Rule{Kind: RuleIsWhitespace, Positive: positive}, Next: Next{Target: 2}},
	}
	return classMachine(transitions, positive)
}

// ManualClassMachine builds a machine for a `[...]` character class. content
// is the text between the brackets (and past a leading `^`, if any);
// positive is false when the class was negated with `^`.
//
// Ranges are parsed by scanning content left to right: a bare scalar is
// pushed onto a pending list; a `-` pops the most recently pushed pending
// scalar as the range's low endpoint and consumes the following scalar as
// its high endpoint, emitting one Range rule for the pair. A `-` with
// nothing pending, or trailing at the end of content, is treated as a
// literal hyphen.
func ManualClassMachine(positive bool, content string) (*Machine, error) {
	runes := []rune(content)
	var pending []rune
	var rules []Rule

	i := 0
	for i < len(runes) {
		switch runes[i] {
		case '\\':
			if i+1 >= len(runes) {
				pending = append(pending, '\\')
				i++
				continue
			}
			pending = append(pending, runes[i+1])
			i += 2

		case '-':
			if i+1 >= len(runes) || len(pending) == 0 {
				pending = append(pending, '-')
				i++
				continue
			}
			lo := pending[len(pending)-1]
			pending = pending[:len(pending)-1]
			hi := runes[i+1]
			if hi < lo {
				return nil, &InvalidRangeError{Lo: lo, Hi: hi}
			}
			rules = append(rules, Rule{Kind: RuleRange, Lo: lo, Hi: hi, Positive: positive})
			i += 2

		default:
			pending = append(pending, runes[i])
			i++
		}
	}

	for _, c := range pending {
		rules = append(rules, Rule{Kind: RuleRange, Lo: c, Hi: c, Positive: positive})
	}

	transitions := make([]Transition, len(rules))
	for idx, r := range rules {
		transitions[idx] = Transition{Rule: r, Next: Next{Target: 2}}
	}
	return classMachine(transitions, positive), nil
}

// EmptyStringMachine builds a machine that matches the empty string at
// every position: a single null-closure path straight to accept.
func EmptyStringMachine() *Machine {
	states := []State{
		{Transitions: []Transition{{Rule: Rule{Kind: RuleNull}, Next: Next{IsAccept: true}}}},
	}
	return newMachine(states)
}
