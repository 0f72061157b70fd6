package category

import "testing"

func TestSetHas(t *testing.T) {
	s := NewSet(Arithmetic, Branch, Arithmetic)
	if len(s) != 2 {
		t.Errorf("duplicates did not collapse: len = %d", len(s))
	}
	if !s.Has(Arithmetic) || !s.Has(Branch) {
		t.Error("missing expected members")
	}
	if s.Has(Load) {
		t.Error("Has(Load) = true, want false")
	}
}

func TestSetUnion(t *testing.T) {
	u := NewSet(Load).Union(NewSet(Store, Load))
	if len(u) != 2 || !u.Has(Load) || !u.Has(Store) {
		t.Errorf("union wrong: %v", u.Sorted())
	}
}

func TestSetIntersects(t *testing.T) {
	if !NewSet(Branch, Label).Intersects(NewSet(Label)) {
		t.Error("expected intersection")
	}
	if NewSet(Branch).Intersects(NewSet(Nop)) {
		t.Error("unexpected intersection")
	}
}

func TestSortedIsStable(t *testing.T) {
	s := NewSet(Store, Arithmetic, Nop, Branch)
	first := s.Sorted()
	for i := 0; i < 10; i++ {
		again := s.Sorted()
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("iteration %d: order changed at %d: %s vs %s", i, j, first[j], again[j])
			}
		}
	}
}
