package sans

import (
	"strings"
	"testing"
)

func TestBuildTreeSimpleQuartet(t *testing.T) {
	n := 4
	names := []string{"a", "b", "c", "d"}
	// one internal split separating {a,b} from {c,d}; trivial splits
	// carry the leaf branch lengths.
	splits := []*Split{
		splitOf(t, n, 1.0, 0),
		splitOf(t, n, 1.0, 1),
		splitOf(t, n, 1.0, 2),
		splitOf(t, n, 1.0, 3),
		splitOf(t, n, 5.0, 0, 1),
	}

	root, err := BuildTree(n, names, splits)
	if err != nil {
		t.Fatal(err)
	}
	// one split group {a,b} plus the two untouched leaves c, d: an
	// unrooted trifurcation at the root, not a clean bipartition.
	if len(root.Children) != 3 {
		t.Fatalf("root has %d children, want 3 ({a,b} group plus leaves c, d)", len(root.Children))
	}

	nw := root.Newick(false)
	for _, name := range names {
		if !strings.Contains(nw, name) {
			t.Errorf("Newick output missing leaf %q: %s", name, nw)
		}
	}
	if !strings.HasSuffix(nw, ";") {
		t.Errorf("Newick output should end with ';': %s", nw)
	}
}

func TestBuildTreeRejectsNameLengthMismatch(t *testing.T) {
	_, err := BuildTree(3, []string{"a", "b"}, nil)
	if err == nil {
		t.Fatal("expected error for mismatched names length")
	}
}

func TestBuildTreeRejectsIncompatibleSplits(t *testing.T) {
	n := 6
	names := []string{"a", "b", "c", "d", "e", "f"}
	// three disjoint pair-groups refine cleanly, but a split drawing one
	// member from each group straddles all three at once.
	splits := []*Split{
		splitOf(t, n, 10, 0, 1),
		splitOf(t, n, 9, 2, 3),
		splitOf(t, n, 8, 4, 5),
		splitOf(t, n, 7, 0, 2, 4),
	}
	if _, err := BuildTree(n, names, splits); err == nil {
		t.Fatal("expected an InvariantError for a split straddling three sibling groups")
	}
}

func TestRefineTreeRecursesWithComplementOnPartialOverlap(t *testing.T) {
	n := 7
	leaf4 := &Node{Name: "e", Colors: mustColorSet(t, n, 4)}
	leaf5 := &Node{Name: "f", Colors: mustColorSet(t, n, 5)}
	leaf6 := &Node{Name: "g", Colors: mustColorSet(t, n, 6)}
	sub456 := &Node{Colors: mustColorSet(t, n, 4, 5, 6), Children: []*Node{leaf4, leaf5, leaf6}}
	c01 := &Node{Colors: mustColorSet(t, n, 0, 1)}
	c23 := &Node{Colors: mustColorSet(t, n, 2, 3)}
	root := &Node{Colors: mustColorSet(t, n, 0, 1, 2, 3, 4, 5, 6), Children: []*Node{c01, c23, sub456}}

	// straddles sub456 (only the '4' bit), fully covers c01 and c23: per
	// graph.cpp this recurses into sub456 with the split's complement
	// {5,6}, not with {0,1,2,3,4} itself.
	s := &Split{Colors: mustColorSet(t, n, 0, 1, 2, 3, 4), Score: 9}
	if err := refineTree(root, s); err != nil {
		t.Fatalf("refineTree returned an error for a compatible split: %v", err)
	}

	if len(root.Children) != 3 {
		t.Fatalf("root.Children changed at the top level: got %d, want 3", len(root.Children))
	}
	if len(sub456.Children) != 2 {
		t.Fatalf("sub456.Children = %d, want 2 (leaf e, plus a new {f,g} group)", len(sub456.Children))
	}
	var newGroup *Node
	for _, c := range sub456.Children {
		if c != leaf4 {
			newGroup = c
		}
	}
	if newGroup == nil || !newGroup.Colors.Equal(mustColorSet(t, n, 5, 6)) {
		t.Fatalf("expected a new {f,g} group under sub456, got %+v", sub456.Children)
	}
	if newGroup.Weight != 9 {
		t.Errorf("new group weight = %v, want 9", newGroup.Weight)
	}
}

func TestNewickWithSupport(t *testing.T) {
	leaf := &Node{Name: "x", Weight: 1.5}
	root := &Node{Children: []*Node{leaf}, Support: 0.9, Weight: 0}
	nw := root.Newick(true)
	if !strings.Contains(nw, "0.9") {
		t.Errorf("Newick with support should include the support value: %s", nw)
	}
}
