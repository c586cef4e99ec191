package sans

import "testing"

func splitOf(t *testing.T, n int, score float64, bits ...int) *Split {
	return &Split{Colors: mustColorSet(t, n, bits...), Score: score}
}

func TestFilterStrict(t *testing.T) {
	n := 5
	compatible := splitOf(t, n, 10, 0, 1)
	alsoCompatible := splitOf(t, n, 9, 2, 3)
	incompatible := splitOf(t, n, 8, 0, 2) // overlaps with the first without nesting

	kept := FilterStrict([]*Split{compatible, alsoCompatible, incompatible})
	if len(kept) != 2 {
		t.Fatalf("FilterStrict kept %d splits, want 2", len(kept))
	}
	if kept[0] != compatible || kept[1] != alsoCompatible {
		t.Errorf("FilterStrict should keep splits in input order, skipping incompatible ones")
	}
}

func TestFilterNTree(t *testing.T) {
	n := 5
	a := splitOf(t, n, 10, 0, 1)
	b := splitOf(t, n, 9, 0, 2) // incompatible with a, starts a second tree
	c := splitOf(t, n, 8, 3, 4) // compatible with both

	trees := FilterNTree([]*Split{a, b, c}, 2)
	if len(trees) != 2 {
		t.Fatalf("FilterNTree returned %d trees, want 2", len(trees))
	}
	total := len(trees[0]) + len(trees[1])
	if total != 3 {
		t.Errorf("FilterNTree placed %d splits total, want 3", total)
	}
}

func TestFilterWeakly(t *testing.T) {
	n := 5
	a := splitOf(t, n, 10, 0, 1)
	b := splitOf(t, n, 9, 2, 3)
	kept := FilterWeakly([]*Split{a, b})
	if len(kept) != 2 {
		t.Fatalf("FilterWeakly kept %d of 2 pairwise-disjoint splits, want 2", len(kept))
	}
}
