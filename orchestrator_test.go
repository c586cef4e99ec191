package sans

import (
	"strings"
	"testing"
)

func canonicalKeyOf(t *testing.T, seq string) wordKey {
	t.Helper()
	k, err := NewDNAKmer(len(seq))
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range []byte(seq) {
		code, err := EncodeDNABase(b)
		if err != nil {
			t.Fatal(err)
		}
		k.ShiftLeft(code)
	}
	return k.Canonical().Key()
}

func TestOrchestratorEndToEnd(t *testing.T) {
	names := []string{"g0", "g1", "g2", "g3", "g4"}
	cfg := Config{K: 4, N: 5, Mean: MeanGeom2, KeepSequences: true}
	orc, err := NewOrchestrator(cfg, names)
	if err != nil {
		t.Fatal(err)
	}

	// genomes 0 and 1 share one k-mer, genomes 2 and 3 share a different
	// one, genome 4 contributes nothing — two disjoint, strictly
	// compatible splits should fall out the other end.
	genomeKmers := map[int][]string{
		0: {"AAAA"},
		1: {"AAAA"},
		2: {"CCCC"},
		3: {"CCCC"},
		4: nil,
	}
	for color, kmers := range genomeKmers {
		ext, err := orc.NewDNAExtractorFor(color)
		if err != nil {
			t.Fatal(err)
		}
		for _, km := range kmers {
			ext.Feed([]byte(km))
			ext.Reset()
		}
	}

	orc.Aggregate()
	splits := orc.RankSplits()
	if len(splits) != 2 {
		t.Fatalf("RankSplits returned %d splits, want 2", len(splits))
	}

	var sawAB, sawCD bool
	ab := mustColorSet(t, 5, 0, 1)
	cd := mustColorSet(t, 5, 2, 3)
	for _, s := range splits {
		if s.Colors.Equal(ab) {
			sawAB = true
		}
		if s.Colors.Equal(cd) {
			sawCD = true
		}
	}
	if !sawAB || !sawCD {
		t.Fatalf("expected splits {0,1} and {2,3}, got %v", splits)
	}

	if seq, ok := orc.RepresentativeSequence(canonicalKeyOf(t, "AAAA")); !ok || seq != "AAAA" {
		t.Errorf("RepresentativeSequence(AAAA) = %q, %v", seq, ok)
	}

	strict := orc.FilterStrict()
	if len(strict) != 2 {
		t.Fatalf("FilterStrict kept %d of 2 disjoint splits, want 2", len(strict))
	}

	root, err := orc.BuildTree(strict)
	if err != nil {
		t.Fatal(err)
	}
	nw := root.Newick(false)
	for _, name := range names {
		if !strings.Contains(nw, name) {
			t.Errorf("Newick output missing %q: %s", name, nw)
		}
	}
}

func TestOrchestratorRejectsBadConfig(t *testing.T) {
	if _, err := NewOrchestrator(Config{K: 0, N: 3}, []string{"a", "b", "c"}); err == nil {
		t.Error("expected an error for K<=0")
	}
	if _, err := NewOrchestrator(Config{K: 4, N: 3}, []string{"a", "b"}); err == nil {
		t.Error("expected an error for mismatched names length")
	}
}

func TestOrchestratorLoadSplitsBypassesAggregation(t *testing.T) {
	names := []string{"a", "b", "c"}
	orc, err := NewOrchestrator(Config{K: 4, N: 3}, names)
	if err != nil {
		t.Fatal(err)
	}
	pre := []*Split{splitOf(t, 3, 1, 0)}
	orc.LoadSplits(pre)
	if len(orc.Splits()) != 1 {
		t.Fatalf("Splits() = %d entries, want 1 after LoadSplits", len(orc.Splits()))
	}
}
