package nfa

// LiteralPrefix walks m from its start state following the single
// unbranched chain of exact-character transitions as far as it goes,
// returning the literal byte sequence collected and whether that
// sequence is the machine's entire match (no transitions remain after
// it, i.e. the pattern is a pure literal with no trailing alternation or
// quantifier).
//
// The walk stops the moment a state offers more than one transition
// (alternation, or a quantifier's zero-width escape edge) or a
// transition that isn't an exact single-character Range, since neither
// case yields a prefix every accepting path is guaranteed to share. This
// is deliberately conservative: a missed prefix only costs a faster
// reject path, never correctness.
func LiteralPrefix(m *Machine) (prefix []byte, complete bool) {
	var runes []rune
	sid := StateID(0)

	for {
		st := m.States[sid]
		if len(st.Transitions) != 1 {
			break
		}
		tr := st.Transitions[0]

		if tr.Rule.Kind == RuleNull {
			if tr.Next.IsAccept {
				complete = true
				break
			}
			sid = tr.Next.Target
			continue
		}

		if tr.Rule.Kind != RuleRange || tr.Rule.Lo != tr.Rule.Hi || !tr.Rule.Positive {
			break
		}
		runes = append(runes, tr.Rule.Lo)
		if tr.Next.IsAccept {
			complete = true
			break
		}
		sid = tr.Next.Target
	}

	if len(runes) == 0 {
		return nil, false
	}
	return []byte(string(runes)), complete
}

// startState follows the leading chain of unconditional null jumps from
// state 0 to the first state with a consuming (non-null) transition, the
// same traversal LiteralPrefix does before it starts collecting bytes.
func (m *Machine) startState() (StateID, bool) {
	sid := StateID(0)
	for {
		st := m.States[sid]
		if len(st.Transitions) != 1 {
			return sid, true
		}
		tr := st.Transitions[0]
		if tr.Rule.Kind != RuleNull {
			return sid, true
		}
		if tr.Next.IsAccept {
			return sid, false
		}
		sid = tr.Next.Target
	}
}

// StartsWithDigitClass reports whether every transition out of the
// machine's first consuming state matches an ASCII digit, positively —
// the shape `\d` and all-digit manual classes (`[0-9]`, `[0-5]`, ...)
// compile to. A leading alternation (even of single digits, `1|2`) does
// not qualify: its start state holds only null transitions, which fail
// the digit check.
func StartsWithDigitClass(m *Machine) bool {
	sid, ok := m.startState()
	if !ok {
		return false
	}
	st := m.States[sid]
	if len(st.Transitions) == 0 {
		return false
	}
	for _, tr := range st.Transitions {
		if !ruleIsDigitPositive(tr.Rule) {
			return false
		}
	}
	return true
}

func ruleIsDigitPositive(r Rule) bool {
	switch r.Kind {
	case RuleIsDigit:
		return r.Positive
	case RuleRange:
		return r.Positive && r.Lo >= '0' && r.Hi <= '9'
	default:
		return false
	}
}
