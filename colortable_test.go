package sans

import (
	"math"
	"testing"
)

func TestColorTableAddCanonicalizesAndAccumulates(t *testing.T) {
	n := 4
	tbl := NewColorTable(n)

	// {0,1} and its complement {2,3} canonicalize to the same split
	// (tie, bit 0 clear wins), so both contribute to the same entry,
	// one on each side.
	tbl.Add(mustColorSet(t, n, 0, 1), 2)
	tbl.Add(mustColorSet(t, n, 2, 3), 3)

	if tbl.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tbl.Len())
	}

	var w0, w1 float64
	tbl.Entries(func(colors ColorSet, weight0, weight1 float64) {
		w0, w1 = weight0, weight1
	})
	// {2,3} is already canonical (bit 0 clear) so its weight lands on
	// side 0; {0,1} had to be complemented to reach it, landing on side 1.
	if w0 != 3 || w1 != 2 {
		t.Errorf("weights = (%v, %v), want (3, 2)", w0, w1)
	}
}

func TestColorTableBuildFromIndex(t *testing.T) {
	n := 4
	ix := NewIndex(n)
	key1 := wordKey{1, 0, 0, 0}
	key2 := wordKey{2, 0, 0, 0}

	ix.Submit(key1, 0)
	ix.Submit(key1, 1) // promotes to live {0,1}
	ix.Submit(key2, 2) // stays a singleton {2}

	tbl := NewColorTable(n)
	tbl.BuildFromIndex(ix, true)
	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (one live split, one singleton)", tbl.Len())
	}

	tbl2 := NewColorTable(n)
	tbl2.BuildFromIndex(ix, false)
	if tbl2.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 when singletons are excluded", tbl2.Len())
	}
}

func TestScoreMeans(t *testing.T) {
	if got := Score(4, 9, MeanArith); got != 6.5 {
		t.Errorf("arith Score(4,9) = %v, want 6.5", got)
	}
	if got := Score(4, 9, MeanGeom); got != 6 {
		t.Errorf("geom Score(4,9) = %v, want 6", got)
	}
	if got := Score(0, 9, MeanGeom); got != 0 {
		t.Errorf("geom Score(0,9) = %v, want 0", got)
	}
	if got := Score(0, 9, MeanGeom2); math.Abs(got-math.Sqrt(10)) > 1e-9 {
		t.Errorf("geom2 Score(0,9) = %v, want sqrt(10)", got)
	}
}
