package sans

import "testing"

func TestQualityFilterPassThrough(t *testing.T) {
	f := NewQualityFilter(1)
	key := wordKey{1, 0, 0, 0}
	for i := 0; i < 3; i++ {
		if !f.Admit(key) {
			t.Fatalf("pass-through filter should admit every occurrence, failed on call %d", i)
		}
	}
}

func TestQualityFilterSeenOnce(t *testing.T) {
	f := NewQualityFilter(2)
	key := wordKey{1, 0, 0, 0}
	if !f.Admit(key) {
		t.Fatal("first occurrence should be admitted")
	}
	for i := 0; i < 3; i++ {
		if f.Admit(key) {
			t.Fatalf("repeat occurrence %d should be rejected by seen-once filter", i)
		}
	}
	other := wordKey{2, 0, 0, 0}
	if !f.Admit(other) {
		t.Error("a distinct k-mer should be admitted independently")
	}
}

func TestQualityFilterThreshold(t *testing.T) {
	f := NewQualityFilter(3)
	key := wordKey{1, 0, 0, 0}
	if f.Admit(key) {
		t.Fatal("1st occurrence should not reach a threshold of 3")
	}
	if f.Admit(key) {
		t.Fatal("2nd occurrence should not reach a threshold of 3")
	}
	if !f.Admit(key) {
		t.Fatal("3rd occurrence should cross the threshold and be admitted")
	}
	if f.Admit(key) {
		t.Fatal("occurrences past the threshold should not be re-admitted")
	}
}
