package sparse

import "testing"

func TestStateSetInsertAndContains(t *testing.T) {
	s := NewStateSet(8)
	if !s.IsEmpty() {
		t.Fatalf("new set should be empty")
	}
	s.Insert(3)
	s.Insert(5)
	if s.IsEmpty() {
		t.Fatalf("set with elements should not be empty")
	}
	if !s.Contains(3) || !s.Contains(5) {
		t.Fatalf("expected 3 and 5 to be present")
	}
	if s.Contains(4) {
		t.Fatalf("4 was never inserted")
	}
}

func TestStateSetInsertIsIdempotent(t *testing.T) {
	s := NewStateSet(8)
	s.Insert(2)
	s.Insert(2)
	s.Insert(2)
	if got := len(s.Values()); got != 1 {
		t.Fatalf("repeated insert: got %d values, want 1", got)
	}
}

func TestStateSetRemove(t *testing.T) {
	s := NewStateSet(8)
	s.Insert(1)
	s.Insert(2)
	s.Insert(3)
	s.Remove(2)
	if s.Contains(2) {
		t.Fatalf("2 should have been removed")
	}
	if !s.Contains(1) || !s.Contains(3) {
		t.Fatalf("removing 2 should not disturb 1 or 3")
	}
	if got := len(s.Values()); got != 2 {
		t.Fatalf("got %d values after remove, want 2", got)
	}
}

func TestStateSetRemoveLastElement(t *testing.T) {
	s := NewStateSet(4)
	s.Insert(0)
	s.Remove(0)
	if !s.IsEmpty() {
		t.Fatalf("removing the only element should empty the set")
	}
}

func TestStateSetRemoveAbsentIsNoop(t *testing.T) {
	s := NewStateSet(4)
	s.Insert(1)
	s.Remove(2)
	if !s.Contains(1) {
		t.Fatalf("removing an absent id should not disturb the set")
	}
}

func TestStateSetContainsOutOfBounds(t *testing.T) {
	s := NewStateSet(4)
	if s.Contains(100) {
		t.Fatalf("out-of-range id must report absent, not panic")
	}
}

func TestStateSetValuesAfterSwapRemove(t *testing.T) {
	// Exercise the swap-with-last path in Remove: removing a non-last
	// element must still leave every other inserted id reachable.
	s := NewStateSet(8)
	for _, id := range []uint32{0, 1, 2, 3, 4} {
		s.Insert(id)
	}
	s.Remove(1)
	want := map[uint32]bool{0: true, 2: true, 3: true, 4: true}
	if len(s.Values()) != len(want) {
		t.Fatalf("got %d values, want %d", len(s.Values()), len(want))
	}
	for _, v := range s.Values() {
		if !want[v] {
			t.Fatalf("unexpected value %d in set after swap-remove", v)
		}
	}
}
