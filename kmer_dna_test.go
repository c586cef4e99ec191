package sans

import "testing"

func TestEncodeDNABase(t *testing.T) {
	cases := map[byte]int8{'A': 0, 'c': 1, 'G': 2, 't': 3, 'U': 3}
	for b, want := range cases {
		got, err := EncodeDNABase(b)
		if err != nil {
			t.Fatalf("EncodeDNABase(%q): %v", b, err)
		}
		if got != want {
			t.Errorf("EncodeDNABase(%q) = %d, want %d", b, got, want)
		}
	}
	if _, err := EncodeDNABase('N'); err != ErrIllegalBase {
		t.Errorf("EncodeDNABase('N') error = %v, want ErrIllegalBase", err)
	}
}

func feedDNA(t *testing.T, k int, seq string) DNAKmer {
	t.Helper()
	kmer, err := NewDNAKmer(k)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(seq); i++ {
		code, err := EncodeDNABase(seq[i])
		if err != nil {
			t.Fatal(err)
		}
		kmer.ShiftLeft(code)
	}
	return kmer
}

func TestDNAKmer64RoundTrip(t *testing.T) {
	kmer := feedDNA(t, 8, "ACGTACGT")
	if kmer.String() != "ACGTACGT" {
		t.Errorf("String() = %q, want ACGTACGT", kmer.String())
	}

	rc := kmer.ReverseComplement()
	if rc.String() != "ACGTACGT" {
		t.Errorf("ReverseComplement of a palindrome should be itself, got %q", rc.String())
	}

	kmer2 := feedDNA(t, 4, "AAAC")
	rc2 := kmer2.ReverseComplement()
	if rc2.String() != "GTTT" {
		t.Errorf("ReverseComplement(AAAC) = %q, want GTTT", rc2.String())
	}
}

func TestDNAKmer64Canonical(t *testing.T) {
	fwd := feedDNA(t, 4, "AAAC")
	canon := fwd.Canonical()
	rev := feedDNA(t, 4, "GTTT")
	canonRev := rev.Canonical()
	if canon.String() != canonRev.String() {
		t.Errorf("Canonical forms should agree: %q vs %q", canon.String(), canonRev.String())
	}
}

func TestDNAKmerWordsBeyond32(t *testing.T) {
	seq := ""
	for i := 0; i < 40; i++ {
		seq += "ACGT"[i%4 : i%4+1]
	}
	kmer := feedDNA(t, len(seq), seq)
	if kmer.String() != seq {
		t.Errorf("String() = %q, want %q", kmer.String(), seq)
	}

	rc := kmer.ReverseComplement()
	rcrc := rc.ReverseComplement()
	if rcrc.String() != kmer.String() {
		t.Errorf("double reverse-complement should be identity: got %q, want %q", rcrc.String(), kmer.String())
	}

	canon := kmer.Canonical()
	canonRc := rc.Canonical()
	if canon.String() != canonRc.String() {
		t.Errorf("Canonical should agree between a k-mer and its rev-comp: %q vs %q", canon.String(), canonRc.String())
	}
}

func TestDNAKmerKeyDistinguishesWordOrder(t *testing.T) {
	a := feedDNA(t, 40, "ACGTACGTACGTACGTACGTACGTACGTACGTACGTACGT")
	b := feedDNA(t, 40, "ACGTACGTACGTACGTACGTACGTACGTACGTACGTACGA")
	if a.Key() == b.Key() {
		t.Error("distinct k-mers should have distinct Key() values")
	}
}

func TestNewDNAKmerRejectsBadLength(t *testing.T) {
	if _, err := NewDNAKmer(0); err == nil {
		t.Error("expected error for K=0")
	}
	if _, err := NewDNAKmer(MaxDNAKWords + 1); err == nil {
		t.Error("expected error for K beyond MaxDNAKWords")
	}
}
