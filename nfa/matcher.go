package nfa

import (
	"unicode"
	"unicode/utf8"

	"github.com/jar-of-salt/saltgrep/internal/conv"
	"github.com/jar-of-salt/saltgrep/internal/sparse"
)

// Match is a byte-offset span into the input a machine matched.
type Match struct {
	Start int
	End   int
}

// Captures maps capturing-group number (1-based; group 0 is the whole
// match) to the span it captured. A group whose span was never closed
// during the run is absent from the map; a group that was opened and
// closed on a path that later died (such as the losing branch of an
// alternation) is still reported.
type Captures map[uint16]Match

// span tracks a capturing group's start position while its end is still
// open, across the simulation loop.
type span struct {
	start  int
	end    int
	hasEnd bool
}

// Find reports the leftmost match in input, if any, extended as far as the
// automaton can sustain it.
func (m *Machine) Find(input string) (Match, bool) {
	return m.FindAt(input, 0)
}

// FindAt reports the leftmost match in input starting the search no
// earlier than byte offset at, extended as far as the automaton can
// sustain it (every quantifier is greedy). The search tries successive
// start positions, advancing one Unicode scalar at a time, until a match
// is produced or the input is exhausted (including the empty suffix at
// len(input), so zero-width patterns can match at the very end).
func (m *Machine) FindAt(input string, at int) (Match, bool) {
	match, _, ok := m.search(input, at, false)
	return match, ok
}

// Captures runs Find and additionally reports the capturing-group spans
// of the winning match, keyed by group number, with group 0 holding the
// whole match.
func (m *Machine) Captures(input string) (Captures, bool) {
	return m.CapturesAt(input, 0)
}

// CapturesAt is FindAt with capturing-group spans reported alongside the
// overall match.
func (m *Machine) CapturesAt(input string, at int) (Captures, bool) {
	match, caps, ok := m.search(input, at, true)
	if !ok {
		return nil, false
	}
	if caps == nil {
		caps = Captures{}
	}
	caps[0] = match
	return caps, true
}

// TryFindIterAt repeatedly calls FindAt, invoking cb with each match found
// at or after offset at, advancing past the match (or one scalar forward,
// for a zero-width match) before searching again. Iteration stops when cb
// returns false, when no further match is found, or when cb returns an
// error.
func (m *Machine) TryFindIterAt(input string, at int, cb func(Match) (bool, error)) error {
	pos := at
	for pos <= len(input) {
		match, ok := m.FindAt(input, pos)
		if !ok {
			return nil
		}
		cont, err := cb(match)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
		if match.End > pos {
			pos = match.End
		} else if pos < len(input) {
			_, size := utf8.DecodeRuneInString(input[pos:])
			pos += size
		} else {
			break
		}
	}
	return nil
}

// search tries successively later start positions of input, from at
// onward, running the machine fresh from each one, until a candidate
// match is produced.
func (m *Machine) search(input string, at int, wantCaptures bool) (Match, Captures, bool) {
	pos := at
	for {
		if match, caps, ok := m.runAt(input, pos, wantCaptures); ok {
			return match, caps, true
		}
		if pos >= len(input) {
			return Match{}, nil, false
		}
		_, size := utf8.DecodeRuneInString(input[pos:])
		pos += size
	}
}

// runAt attempts a single match starting exactly at byte offset start,
// shifting the result back into input's coordinate space.
func (m *Machine) runAt(input string, start int, wantCaptures bool) (Match, Captures, bool) {
	sub := input[start:]
	match, caps, ok := m.runMachine(sub, wantCaptures)
	if !ok {
		return Match{}, nil, false
	}
	match.Start += start
	match.End += start
	if caps != nil {
		shifted := make(Captures, len(caps))
		for g, s := range caps {
			shifted[g] = Match{Start: s.Start + start, End: s.End + start}
		}
		caps = shifted
	}
	return match, caps, true
}

// runMachine simulates m over input starting at position 0, running the
// automaton forward as long as any state stays active and recording the
// last position at which an accepting state was reached, so the reported
// span is as long as the automaton can sustain rather than the first
// accept it passes through.
func (m *Machine) runMachine(input string, wantCaptures bool) (Match, Captures, bool) {
	var tracked map[uint16]*span
	if wantCaptures {
		tracked = map[uint16]*span{}
	}

	active := sparse.NewStateSet(conv.IntToUint32(len(m.States)))
	active.Insert(0)
	active, acceptedHere := m.epsilonClosure(active, 0, tracked)

	hasCandidate := false
	candidateEnd := 0
	if acceptedHere {
		hasCandidate = true
		candidateEnd = 0
	}

	pos := 0
	for pos < len(input) && !active.IsEmpty() {
		r, size := utf8.DecodeRuneInString(input[pos:])
		nextActive := sparse.NewStateSet(conv.IntToUint32(len(m.States)))
		consumedAny := false

		for _, sid := range active.Values() {
			st := m.States[sid]
			shortCircuit := false
			var toAdd []uint32
			stateConsumed := false

			for _, tr := range st.Transitions {
				if evaluateRule(tr.Rule, r) {
					stateConsumed = true
					if !tr.Next.IsAccept {
						toAdd = append(toAdd, uint32(tr.Next.Target))
					}
				} else if st.ShortCircuit() {
					shortCircuit = true
					break
				}
			}
			if shortCircuit {
				// The whole state contributes nothing for this scalar;
				// move on to the next active state rather than aborting
				// the step entirely.
				continue
			}
			if stateConsumed {
				consumedAny = true
			}
			for _, t := range toAdd {
				nextActive.Insert(t)
			}
		}

		if !consumedAny {
			break
		}
		newPos := pos + size

		closed, acceptedNow := m.epsilonClosure(nextActive, newPos, tracked)
		pos = newPos
		if acceptedNow {
			hasCandidate = true
			candidateEnd = pos
		}
		if closed.IsEmpty() {
			break
		}
		active = closed
	}

	if !hasCandidate {
		return Match{}, nil, false
	}

	var caps Captures
	if wantCaptures {
		caps = Captures{}
		for g, s := range tracked {
			if s.hasEnd {
				caps[g] = Match{Start: s.start, End: s.end}
			}
		}
	}
	return Match{Start: 0, End: candidateEnd}, caps, true
}

// epsilonClosure expands start by following every Null transition
// reachable from it, collecting capturing-group flags at each visited
// state along the way (when tracked is non-nil), and removing any state
// whose only meaningful role here was an epsilon hop — a state is kept in
// the result only if it also has at least one consuming transition.
func (m *Machine) epsilonClosure(start *sparse.StateSet, position int, tracked map[uint16]*span) (*sparse.StateSet, bool) {
	visited := sparse.NewStateSet(conv.IntToUint32(len(m.States)))
	result := sparse.NewStateSet(conv.IntToUint32(len(m.States)))
	stack := append([]uint32(nil), start.Values()...)
	accepted := false

	for len(stack) > 0 {
		sid := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited.Contains(sid) {
			continue
		}
		visited.Insert(sid)
		result.Insert(sid)

		if tracked != nil {
			m.evaluateStateFlags(tracked, StateID(sid), position)
		}

		st := m.States[sid]
		for _, tr := range st.Transitions {
			if tr.Rule.Kind != RuleNull {
				continue
			}
			if tr.Next.IsAccept {
				accepted = true
			} else {
				stack = append(stack, uint32(tr.Next.Target))
			}
			result.Remove(sid)
		}
	}

	return result, accepted
}

// evaluateStateFlags opens or closes capturing-group spans recorded
// against state sid at the given input position.
func (m *Machine) evaluateStateFlags(tracked map[uint16]*span, sid StateID, position int) {
	flags, ok := m.Features[sid]
	if !ok {
		return
	}
	for _, f := range flags {
		group := flagGroupNumber(f)
		if flagIsClose(f) {
			if s, ok := tracked[group]; ok {
				s.end = position
				s.hasEnd = true
			}
			continue
		}
		tracked[group] = &span{start: position}
	}
}

// evaluateRule reports whether c satisfies rule.
func evaluateRule(rule Rule, c rune) bool {
	switch rule.Kind {
	case RuleRange:
		inRange := rule.Lo <= c && c <= rule.Hi
		return inRange != !rule.Positive
	case RuleNot:
		return c != rule.Lo
	case RuleIsWord:
		isWord := unicode.IsLetter(c) || unicode.IsDigit(c)
		return isWord != !rule.Positive
	case RuleIsDigit:
		return unicode.IsDigit(c) != !rule.Positive
	case RuleIsWhitespace:
		return unicode.IsSpace(c) != !rule.Positive
	case RuleNull:
		return false
	default:
		return false
	}
}
