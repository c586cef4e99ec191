package sans

import "testing"

func collectEmits(k int, allowIUPAC bool, noRevComp bool, seq string) ([]wordKey, []string) {
	var keys []wordKey
	var seqs []string
	e, err := NewDNAExtractor(ExtractorConfig{K: k, AllowIUPAC: allowIUPAC, NoRevComp: noRevComp}, func(key wordKey, s string) {
		keys = append(keys, key)
		seqs = append(seqs, s)
	})
	if err != nil {
		panic(err)
	}
	e.Feed([]byte(seq))
	return keys, seqs
}

func TestDNAExtractorBasicEmission(t *testing.T) {
	// a 6-base sequence with k=3 yields 4 overlapping k-mers.
	keys, _ := collectEmits(3, false, true, "ACGTAC")
	if len(keys) != 4 {
		t.Fatalf("emitted %d k-mers, want 4", len(keys))
	}
}

func TestDNAExtractorCanonicalizesByDefault(t *testing.T) {
	_, seqs := collectEmits(4, false, false, "AAAC")
	if len(seqs) != 1 {
		t.Fatalf("emitted %d k-mers, want 1", len(seqs))
	}
	// AAAC vs its revcomp GTTT: AAAC sorts first lexically among 2-bit
	// codes (A=0), so it is its own canonical form.
	if seqs[0] != "AAAC" {
		t.Errorf("canonical form = %q, want AAAC", seqs[0])
	}
}

func TestDNAExtractorNoRevCompEmitsAsObserved(t *testing.T) {
	_, seqs := collectEmits(4, false, true, "GTTT")
	if len(seqs) != 1 || seqs[0] != "GTTT" {
		t.Errorf("with NoRevComp, expected GTTT emitted as-is, got %v", seqs)
	}
}

func TestDNAExtractorIllegalBaseResetsWindow(t *testing.T) {
	// the stray 'X' severs the stream: no 3-mer spans it, and only
	// "ACG" before it and "TAC" after reach full length (k=3).
	keys, _ := collectEmits(3, false, true, "ACGXTAC")
	if len(keys) != 2 {
		t.Fatalf("emitted %d k-mers, want 2 (one before, one after the break)", len(keys))
	}
}

func TestDNAExtractorIUPACExpansionDisallowedResetsWindow(t *testing.T) {
	keys, _ := collectEmits(3, false, true, "ACNGTA")
	if len(keys) != 1 {
		t.Fatalf("emitted %d k-mers with AllowIUPAC=false, want 1 (only GTA survives)", len(keys))
	}
}

func TestDNAExtractorIUPACExpansionAllowed(t *testing.T) {
	// "ACN" with k=3, N expands to 4 candidates, all emitted in this window.
	keys, _ := collectEmits(3, true, true, "ACN")
	if len(keys) != 4 {
		t.Fatalf("emitted %d k-mers with AllowIUPAC=true, want 4 (one per N resolution)", len(keys))
	}
}

func TestDNAExtractorIUPACBudgetOverflowResetsWindow(t *testing.T) {
	e, err := NewDNAExtractor(ExtractorConfig{K: 3, AllowIUPAC: true, IUPACBudget: 2}, func(wordKey, string) {})
	if err != nil {
		t.Fatal(err)
	}
	e.Feed([]byte("N"))
	if e.cands != nil {
		t.Errorf("a single N with budget=2 should expand to 4 > budget candidates and hard reset")
	}
}

func TestDNAExtractorIUPACBudgetWindowsOverLastK(t *testing.T) {
	// two N's more than k positions apart must not combine into one
	// inflated multiplicity: by the time the second N arrives, the
	// first N's factor has aged out of the k=3 window.
	var keys []wordKey
	e, err := NewDNAExtractor(ExtractorConfig{K: 3, AllowIUPAC: true, IUPACBudget: 5}, func(key wordKey, _ string) {
		keys = append(keys, key)
	})
	if err != nil {
		t.Fatal(err)
	}
	e.Feed([]byte("NACGTN"))
	if e.cands == nil {
		t.Fatal("window should not have hard reset: each N's multiplicity of 4 fits within budget 5 once the other has aged out")
	}
	if len(e.cands) != 4 {
		t.Errorf("cands = %d, want 4 (one per resolution of the trailing N)", len(e.cands))
	}
	if len(keys) == 0 {
		t.Error("expected at least one emission before the trailing N's window completed")
	}
}

func TestDNAExtractorResetClearsState(t *testing.T) {
	keys, _ := collectEmits(3, false, true, "ACGT")
	if len(keys) != 2 {
		t.Fatalf("sanity check failed: got %d keys, want 2", len(keys))
	}
	e, err := NewDNAExtractor(ExtractorConfig{K: 3}, func(wordKey, string) {})
	if err != nil {
		t.Fatal(err)
	}
	e.Feed([]byte("ACG"))
	e.Reset()
	if e.cands != nil || e.filled != 0 || e.position != 0 {
		t.Error("Reset should clear candidate, filled, and position state")
	}
}

func TestDNAExtractorMinimizerWindowBoundsEmissions(t *testing.T) {
	// with a minimizer window, one minimizer is emitted per position
	// once the window is full, so emissions never exceed the raw k-mer
	// count.
	var count int
	e, err := NewDNAExtractor(ExtractorConfig{K: 3, WindowSize: 3}, func(wordKey, string) { count++ })
	if err != nil {
		t.Fatal(err)
	}
	e.Feed([]byte("ACGTACGTACGT"))
	if count == 0 {
		t.Fatal("expected at least one minimizer emission")
	}
	rawKeys, _ := collectEmits(3, false, false, "ACGTACGTACGT")
	if count > len(rawKeys) {
		t.Errorf("minimizer emissions (%d) should not exceed raw k-mer count (%d)", count, len(rawKeys))
	}
}

func TestAminoExtractorBasicEmission(t *testing.T) {
	var count int
	e, err := NewAminoExtractor(ExtractorConfig{K: 3}, func(wordKey, string) { count++ })
	if err != nil {
		t.Fatal(err)
	}
	e.Feed([]byte("MKVLAA"))
	if count != 4 {
		t.Fatalf("emitted %d amino k-mers, want 4", count)
	}
}

func TestAminoExtractorIllegalResidueResetsWindow(t *testing.T) {
	var seqs []string
	e, err := NewAminoExtractor(ExtractorConfig{K: 3}, func(_ wordKey, s string) { seqs = append(seqs, s) })
	if err != nil {
		t.Fatal(err)
	}
	e.Feed([]byte("MK1VLA"))
	if len(seqs) != 1 {
		t.Fatalf("emitted %d amino k-mers, want 1 (only VLA survives the break)", len(seqs))
	}
	if seqs[0] != "VLA" {
		t.Errorf("surviving k-mer = %q, want VLA", seqs[0])
	}
}

func TestAminoExtractorIUPACExpansionDisallowedResetsWindow(t *testing.T) {
	var count int
	e, err := NewAminoExtractor(ExtractorConfig{K: 1}, func(wordKey, string) { count++ })
	if err != nil {
		t.Fatal(err)
	}
	e.Feed([]byte("B"))
	if e.cands != nil {
		t.Error("an ambiguous residue with AllowIUPAC=false should hard reset, not resolve to an ordinary residue")
	}
	if count != 0 {
		t.Errorf("emitted %d k-mers, want 0", count)
	}
}

func TestAminoExtractorIUPACExpansionAllowed(t *testing.T) {
	var keys []wordKey
	e, err := NewAminoExtractor(ExtractorConfig{K: 1, AllowIUPAC: true}, func(key wordKey, _ string) {
		keys = append(keys, key)
	})
	if err != nil {
		t.Fatal(err)
	}
	e.Feed([]byte("B"))
	if len(keys) != 2 {
		t.Fatalf("emitted %d k-mers for ambiguous B, want 2 (D and N)", len(keys))
	}
	d, _ := EncodeAminoResidue('D')
	n, _ := EncodeAminoResidue('N')
	dKmer, _ := NewAminoKmer(1)
	dKmer.ShiftLeft(d)
	nKmer, _ := NewAminoKmer(1)
	nKmer.ShiftLeft(n)
	if (keys[0] != dKmer.Key() || keys[1] != nKmer.Key()) && (keys[0] != nKmer.Key() || keys[1] != dKmer.Key()) {
		t.Errorf("emitted keys %v, want one each for D and N", keys)
	}
}

func TestAminoExtractorIUPACXExpandsToTwentyTwo(t *testing.T) {
	var count int
	e, err := NewAminoExtractor(ExtractorConfig{K: 1, AllowIUPAC: true, IUPACBudget: 30}, func(wordKey, string) { count++ })
	if err != nil {
		t.Fatal(err)
	}
	e.Feed([]byte("X"))
	if count != 22 {
		t.Fatalf("emitted %d k-mers for ambiguous X, want 22", count)
	}
}
