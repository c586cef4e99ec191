// Copyright © 2018 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package sans

import (
	"strconv"
	"strings"
)

// Node is one vertex of the tree built from a strictly compatible
// split set: a leaf names one genome, an interior node groups the
// subtrees a split separated from the rest.
type Node struct {
	Name     string
	Colors   ColorSet
	Weight   float64
	Support  float64
	Children []*Node
}

func (n *Node) isLeaf() bool { return len(n.Children) == 0 }

// BuildTree grows a tree from n genomes named by names (len(names)==n)
// and a strictly compatible split list (e.g. the output of
// FilterStrict), per spec.md §4.9, grounded on
// original_source/src/graph.cpp's build_tree/refine_tree. Splits whose
// canonical side is a singleton or co-singleton set leaf branch
// lengths directly; every other split refines the topology. Splits
// that do not refine cleanly (not actually pairwise compatible with
// what came before) produce an InvariantError rather than a silent
// wrong tree.
func BuildTree(n int, names []string, splits []*Split) (*Node, error) {
	if len(names) != n {
		return nil, NewConfigError("BuildTree: len(names) != n", nil)
	}

	leaves := make([]*Node, n)
	for i := 0; i < n; i++ {
		cs, err := NewColorSet(n)
		if err != nil {
			return nil, err
		}
		cs.Set(i)
		leaves[i] = &Node{Name: names[i], Colors: cs}
	}

	for _, s := range splits {
		pc := s.Colors.PopCount()
		if pc == 1 {
			leaves[s.Colors.TrailingZeros()].Weight = s.Score
		}
	}

	full, err := FullColorSet(n)
	if err != nil {
		return nil, err
	}
	root := &Node{Colors: full, Children: leaves}

	for _, s := range splits {
		pc := s.Colors.PopCount()
		if pc <= 1 || pc >= n-1 {
			continue
		}
		if err := refineTree(root, s); err != nil {
			return nil, err
		}
	}

	return root, nil
}

// refineTree applies one split to the subtree rooted at node, per
// graph.cpp's refine_tree.
func refineTree(node *Node, s *Split) error {
	return refineTreeColors(node, s.Colors, s.Score)
}

// refineTreeColors does the actual work, taking the split colors
// directly so the "straddles one child" case (below) can recurse with
// the split's complement instead of the split itself.
//
// graph.cpp classifies each child against the split into four cases:
// equal (the split is already represented — done), the split is fully
// contained in one child (recurse into it unchanged), the child is
// fully contained in the split (collect it to be merged under a new
// node), or the two merely intersect ("partially covered" — at most
// one child may do this, and only when every other child is fully
// covered; the split then belongs deeper inside that one child, but
// expressed as this node's complement of the split, since that is the
// part of the split actually living inside it).
func refineTreeColors(node *Node, colors ColorSet, score float64) error {
	var fullyCovered []*Node
	var partial *Node
	for _, c := range node.Children {
		switch {
		case c.Colors.Equal(colors):
			return nil
		case IsSubset(colors, c.Colors):
			return refineTreeColors(c, colors, score)
		case IsSubset(c.Colors, colors):
			fullyCovered = append(fullyCovered, c)
		case !c.Colors.Disjoint(colors):
			if partial != nil {
				return NewInvariantError("refineTree", "split is not compatible with the current tree refinement")
			}
			partial = c
		}
	}

	if partial != nil {
		if len(fullyCovered) != len(node.Children)-1 {
			return NewInvariantError("refineTree", "split is not compatible with the current tree refinement")
		}
		inverse := colors.Complement()
		if !IsSubset(inverse, partial.Colors) {
			return NewInvariantError("refineTree", "split is not compatible with the current tree refinement")
		}
		return refineTreeColors(partial, inverse, score)
	}

	if len(fullyCovered) <= 1 {
		if len(fullyCovered) == 1 {
			return NewInvariantError("refineTree", "split exactly matches a single child but eluded the equality check")
		}
		// the split doesn't touch this node at all; it belongs at an
		// ancestor or has already been applied.
		return nil
	}

	grouped := fullyCovered[0].Colors
	for _, c := range fullyCovered[1:] {
		grouped = Union(grouped, c.Colors)
	}
	covered := make(map[*Node]bool, len(fullyCovered))
	for _, c := range fullyCovered {
		covered[c] = true
	}
	remaining := make([]*Node, 0, len(node.Children)-len(fullyCovered)+1)
	for _, c := range node.Children {
		if !covered[c] {
			remaining = append(remaining, c)
		}
	}
	newChild := &Node{Colors: grouped, Weight: score, Children: fullyCovered}
	node.Children = append(remaining, newChild)
	return nil
}

// Newick renders the tree in Newick format. When withSupport is true,
// interior node support values (set by ApplyBootstrapSupport) are
// printed between the closing parenthesis and the branch length, the
// way original_source/src/graph.cpp's print_tree does.
func (n *Node) Newick(withSupport bool) string {
	var sb strings.Builder
	n.writeNewick(&sb, withSupport)
	sb.WriteByte(';')
	return sb.String()
}

func (n *Node) writeNewick(sb *strings.Builder, withSupport bool) {
	if n.isLeaf() {
		sb.WriteString(n.Name)
		sb.WriteByte(':')
		sb.WriteString(formatBranchLength(n.Weight))
		return
	}
	sb.WriteByte('(')
	for i, c := range n.Children {
		if i > 0 {
			sb.WriteByte(',')
		}
		c.writeNewick(sb, withSupport)
	}
	sb.WriteByte(')')
	if withSupport && n.Support > 0 {
		sb.WriteString(formatBranchLength(n.Support))
	}
	sb.WriteByte(':')
	sb.WriteString(formatBranchLength(n.Weight))
}

func formatBranchLength(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
