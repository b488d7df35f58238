package nfa

import "testing"

func TestFindAtOffset(t *testing.T) {
	m := CharMachine('a').OneOrMore()
	if _, ok := m.FindAt("aaa", 3); ok {
		t.Fatalf("FindAt at end of input: expected no match")
	}
	got, ok := m.FindAt("baaab", 1)
	if !ok {
		t.Fatalf("FindAt(1): expected a match")
	}
	if got.Start != 1 || got.End != 4 {
		t.Fatalf("FindAt(1): got %+v, want {1 4}", got)
	}
	// Starting after the run begins still finds the shorter remaining run.
	got, ok = m.FindAt("baaab", 2)
	if !ok || got.Start != 2 || got.End != 4 {
		t.Fatalf("FindAt(2): got %+v, ok=%v, want {2 4}", got, ok)
	}
}

func TestTryFindIterAtCollectsNonOverlapping(t *testing.T) {
	m := CharMachine('a').OneOrMore()
	var spans []Match
	err := m.TryFindIterAt("aa-a-aaa", 0, func(match Match) (bool, error) {
		spans = append(spans, match)
		return true, nil
	})
	if err != nil {
		t.Fatalf("TryFindIterAt: unexpected error %v", err)
	}
	want := []Match{{Start: 0, End: 2}, {Start: 3, End: 4}, {Start: 5, End: 8}}
	if len(spans) != len(want) {
		t.Fatalf("TryFindIterAt: got %d spans %+v, want %d %+v", len(spans), spans, len(want), want)
	}
	for i, s := range spans {
		if s != want[i] {
			t.Fatalf("TryFindIterAt span %d: got %+v, want %+v", i, s, want[i])
		}
	}
}

func TestTryFindIterAtStopsEarly(t *testing.T) {
	m := CharMachine('a')
	count := 0
	err := m.TryFindIterAt("aaaa", 0, func(Match) (bool, error) {
		count++
		return count < 2, nil
	})
	if err != nil {
		t.Fatalf("TryFindIterAt: unexpected error %v", err)
	}
	if count != 2 {
		t.Fatalf("TryFindIterAt: callback ran %d times, want 2", count)
	}
}

func TestTryFindIterAtZeroWidthProgress(t *testing.T) {
	m := EmptyStringMachine()
	count := 0
	err := m.TryFindIterAt("ab", 0, func(match Match) (bool, error) {
		count++
		if match.Start != match.End {
			t.Fatalf("expected zero-width match, got %+v", match)
		}
		return count < 10, nil
	})
	if err != nil {
		t.Fatalf("TryFindIterAt: unexpected error %v", err)
	}
	// One zero-width match per position including past the end: 0,1,2.
	if count != 3 {
		t.Fatalf("TryFindIterAt zero-width: got %d matches, want 3", count)
	}
}

func TestCapturesAtOffset(t *testing.T) {
	m := CharMachine('a').Group().Cons(CharMachine('b'))
	caps, ok := m.CapturesAt("xabxab", 3)
	if !ok {
		t.Fatalf("CapturesAt(3): expected a match")
	}
	if caps[0] != (Match{Start: 4, End: 6}) {
		t.Fatalf("CapturesAt(3): group 0 got %+v, want {4 6}", caps[0])
	}
	if caps[1] != (Match{Start: 4, End: 5}) {
		t.Fatalf("CapturesAt(3): group 1 got %+v, want {4 5}", caps[1])
	}
}
