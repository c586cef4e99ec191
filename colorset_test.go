package sans

import "testing"

func TestColorSet64Basics(t *testing.T) {
	cs, err := NewColorSet(8)
	if err != nil {
		t.Fatal(err)
	}
	cs.Set(1)
	cs.Set(3)
	if cs.PopCount() != 2 {
		t.Errorf("PopCount() = %d, want 2", cs.PopCount())
	}
	if !cs.Test(1) || !cs.Test(3) || cs.Test(0) {
		t.Errorf("Test() mismatch: %s", cs)
	}
	if cs.IsEmpty() || cs.IsFull() {
		t.Errorf("IsEmpty/IsFull wrong for partial set")
	}
	if cs.TrailingZeros() != 1 {
		t.Errorf("TrailingZeros() = %d, want 1", cs.TrailingZeros())
	}

	comp := cs.Complement()
	if comp.PopCount() != 6 {
		t.Errorf("Complement PopCount() = %d, want 6", comp.PopCount())
	}
	if !comp.Disjoint(cs) {
		t.Error("set and complement should be disjoint")
	}

	clone := cs.Clone()
	clone.Set(0)
	if cs.Test(0) {
		t.Error("Clone should not alias the original")
	}
	if !cs.Equal(cs.Clone()) {
		t.Error("Equal() should hold for a fresh clone")
	}
}

func TestColorSetWordsBasics(t *testing.T) {
	cs, err := NewColorSet(100)
	if err != nil {
		t.Fatal(err)
	}
	cs.Set(0)
	cs.Set(99)
	cs.Set(64)
	if cs.PopCount() != 3 {
		t.Errorf("PopCount() = %d, want 3", cs.PopCount())
	}
	if cs.TrailingZeros() != 0 {
		t.Errorf("TrailingZeros() = %d, want 0", cs.TrailingZeros())
	}
	full, err := FullColorSet(100)
	if err != nil {
		t.Fatal(err)
	}
	if !full.IsFull() {
		t.Error("FullColorSet should report IsFull")
	}
	if full.PopCount() != 100 {
		t.Errorf("full.PopCount() = %d, want 100", full.PopCount())
	}

	cs.Clear(0)
	if cs.Test(0) {
		t.Error("Clear(0) did not clear bit 0")
	}
}

func TestCanonicalize(t *testing.T) {
	cs, _ := NewColorSet(6)
	cs.Set(0)
	cs.Set(1)
	cs.Set(2)
	cs.Set(3)
	canon, flipped := Canonicalize(cs)
	if !flipped {
		t.Error("4-of-6 set should be complemented to reach the 2-bit side")
	}
	if canon.PopCount() != 2 {
		t.Errorf("canonical PopCount() = %d, want 2", canon.PopCount())
	}

	// exact tie: keep the side with bit 0 clear.
	tie, _ := NewColorSet(4)
	tie.Set(0)
	tie.Set(1)
	canonTie, _ := Canonicalize(tie)
	if canonTie.Test(0) {
		t.Error("tied canonical form should have bit 0 clear")
	}
}

func TestIsCompatible(t *testing.T) {
	n := 6
	a, _ := NewColorSet(n)
	a.Set(0)
	a.Set(1)
	b, _ := NewColorSet(n)
	b.Set(2)
	b.Set(3)
	if !IsCompatible(a, b) {
		t.Error("disjoint splits should be compatible")
	}

	c, _ := NewColorSet(n)
	c.Set(0)
	c.Set(2)
	if IsCompatible(a, c) {
		t.Error("overlapping, non-nested splits should be incompatible")
	}
}

func TestIsSubset(t *testing.T) {
	n := 5
	a, _ := NewColorSet(n)
	a.Set(0)
	b, _ := NewColorSet(n)
	b.Set(0)
	b.Set(1)
	if !IsSubset(a, b) {
		t.Error("{0} should be a subset of {0,1}")
	}
	if IsSubset(b, a) {
		t.Error("{0,1} should not be a subset of {0}")
	}
}

func TestUnionAndKey(t *testing.T) {
	n := 5
	a, _ := NewColorSet(n)
	a.Set(0)
	b, _ := NewColorSet(n)
	b.Set(1)
	u := Union(a, b)
	if u.PopCount() != 2 {
		t.Errorf("Union PopCount() = %d, want 2", u.PopCount())
	}

	k1 := a.Key()
	k2 := a.Clone().Key()
	if k1 != k2 {
		t.Error("Key() should be stable across equal sets")
	}
}
