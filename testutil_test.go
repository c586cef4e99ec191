package sans

import "testing"

func mustColorSet(t *testing.T, n int, bits ...int) ColorSet {
	t.Helper()
	cs, err := NewColorSet(n)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range bits {
		cs.Set(b)
	}
	return cs
}
