package nfa

import "github.com/jar-of-salt/saltgrep/internal/conv"

// shiftStates adds shift to every non-accept transition target in states,
// leaving Accept-tagged transitions untouched — they are retargeted
// explicitly by whichever combinator introduces a new accept state.
func shiftStates(states []State, shift StateID) {
	for i := range states {
		for j := range states[i].Transitions {
			if !states[i].Transitions[j].Next.IsAccept {
				states[i].Transitions[j].Next.Target += shift
			}
		}
	}
}

// lastTransition returns a pointer to the final transition of states[idx],
// the conventional slot holding a machine's accept (or, pre-merge,
// soon-to-be-retargeted) edge.
func lastTransition(states []State, idx int) *Transition {
	ts := states[idx].Transitions
	return &ts[len(ts)-1]
}

// mergeFeatures copies other's capturing-group flags into m, shifting
// state indices by shift and group numbers by m's current MaxGroupIndex.
// Flags with group number 0 (none assigned) are dropped, mirroring the
// source machine's own filter.
func (m *Machine) mergeFeatures(other map[StateID][]uint64, shift StateID) {
	groupShift := m.MaxGroupIndex
	for stateIdx, flagsVec := range other {
		newIdx := stateIdx + shift
		for _, f := range flagsVec {
			if flagGroupNumber(f) == 0 {
				continue
			}
			m.Features[newIdx] = append(m.Features[newIdx], incrementGroupNumber(f, groupShift))
		}
	}
}

// Cons concatenates m followed by other: m's accept state is dropped and
// other's states are appended in its place, shifted so their indices
// follow on immediately. The combined machine keeps m's start state.
func (m *Machine) Cons(other *Machine) *Machine {
	oldAcceptIdx := StateID(len(m.States) - 1)
	m.States = m.States[:len(m.States)-1]

	shifted := make([]State, len(other.States))
	copy(shifted, other.States)
	shiftStates(shifted, oldAcceptIdx)

	m.mergeFeatures(other.Features, oldAcceptIdx)
	m.MaxGroupIndex += other.MaxGroupIndex
	m.States = append(m.States, shifted...)
	return m
}

// Or alternates m and other: a new null edge from state 0 reaches other's
// (shifted) start, both machines' old accept edges are retargeted to a
// freshly appended shared accept state.
func (m *Machine) Or(other *Machine) *Machine {
	otherStart := StateID(len(m.States))
	newAcceptIdx := StateID(len(m.States) + len(other.States))

	m.States[0].Transitions = append(m.States[0].Transitions,
		Transition{Rule: Rule{Kind: RuleNull}, Next: Next{Target: otherStart}})
	lastTransition(m.States, len(m.States)-1).Next = Next{Target: newAcceptIdx}

	shifted := make([]State, len(other.States))
	copy(shifted, other.States)
	shiftStates(shifted, otherStart)

	m.mergeFeatures(other.Features, otherStart)
	m.MaxGroupIndex += other.MaxGroupIndex
	m.States = append(m.States, shifted...)

	lastTransition(m.States, len(m.States)-1).Next = Next{Target: newAcceptIdx}
	m.States = append(m.States, acceptState())
	return m
}

// Group wraps m in a new capturing group: every existing group number is
// bumped up by one, and the new group is assigned number 1 — so after any
// chain of nested Group calls, the outermost group always ends up with
// the lowest number, innermost with the highest, matching the order a
// reader would number them left to right by opening paren.
func (m *Machine) Group() *Machine {
	m.MaxGroupIndex = conv.IntToUint16(int(m.MaxGroupIndex) + 1)
	lastIdx := StateID(len(m.States) - 1)

	for stateIdx, flagsVec := range m.Features {
		for i, f := range flagsVec {
			flagsVec[i] = incrementGroupNumber(f, 1)
		}
		m.Features[stateIdx] = flagsVec
	}

	m.Features[0] = append(m.Features[0], groupOpenFlag(1))
	m.Features[lastIdx] = append(m.Features[lastIdx], groupCloseFlag(1))
	return m
}

// acceptZero adds a null edge from state 0 straight to the current accept
// state, allowing the machine to match zero repetitions.
func (m *Machine) acceptZero() *Machine {
	newAcceptIdx := StateID(len(m.States))
	m.States[0].Transitions = append(m.States[0].Transitions,
		Transition{Rule: Rule{Kind: RuleNull}, Next: Next{Target: newAcceptIdx}})
	return m
}

// acceptRepeats adds a null back-edge from the last state to state 0,
// allowing the machine to match additional repetitions.
func (m *Machine) acceptRepeats() *Machine {
	lastIdx := len(m.States) - 1
	m.States[lastIdx].Transitions = append(m.States[lastIdx].Transitions,
		Transition{Rule: Rule{Kind: RuleNull}, Next: Next{Target: 0}})
	return m
}

// finalizeQuantifier retargets the current accept edge(s) to a freshly
// appended accept state, the common tail shared by every quantifier.
func (m *Machine) finalizeQuantifier() *Machine {
	newAcceptIdx := StateID(len(m.States))
	last := &m.States[len(m.States)-1]
	for i := range last.Transitions {
		if last.Transitions[i].Next.IsAccept {
			last.Transitions[i].Next = Next{Target: newAcceptIdx}
		}
	}
	m.States = append(m.States, acceptState())
	return m
}

// ZeroOrMore implements `*`.
func (m *Machine) ZeroOrMore() *Machine {
	return m.acceptZero().acceptRepeats().finalizeQuantifier()
}

// OneOrMore implements `+`.
func (m *Machine) OneOrMore() *Machine {
	return m.acceptRepeats().finalizeQuantifier()
}

// ZeroOrOne implements `?`.
func (m *Machine) ZeroOrOne() *Machine {
	return m.acceptZero().finalizeQuantifier()
}
