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

// FilterStrict greedily walks splits in the order given (callers pass
// the descending-score order from SplitList.Sorted) and keeps a split
// only if it is pairwise compatible with every split already kept.
// The kept set is, by construction, strictly compatible and therefore
// admits an unrooted tree — spec.md §4.6, grounded on
// original_source/src/graph.cpp's filter_strict/test_strict.
func FilterStrict(splits []*Split) []*Split {
	kept := make([]*Split, 0, len(splits))
	for _, s := range splits {
		if compatibleWithAll(s, kept) {
			kept = append(kept, s)
		}
	}
	return kept
}

func compatibleWithAll(s *Split, kept []*Split) bool {
	for _, k := range kept {
		if !IsCompatible(s.Colors, k.Colors) {
			return false
		}
	}
	return true
}

// FilterNTree greedily first-fits each split, in the order given, into
// one of n independent strict-compatible sets, skipping a split that
// fits none. Grounded on graph.cpp's filter_n_tree: this produces n
// candidate trees sharing the same universe of genomes rather than one
// merged tree, useful when the true history doesn't fit a single
// bifurcating tree.
func FilterNTree(splits []*Split, n int) [][]*Split {
	trees := make([][]*Split, n)
	for _, s := range splits {
		for i := 0; i < n; i++ {
			if compatibleWithAll(s, trees[i]) {
				trees[i] = append(trees[i], s)
				break
			}
		}
	}
	return trees
}

// FilterWeakly greedily walks splits in score order and keeps a split
// only if every pair of already-kept splits remains weakly compatible
// with it — spec.md §4.7, grounded on graph.cpp's
// filter_weakly/test_weakly. Weak compatibility is a three-way
// relation, so the check only engages once at least two splits have
// already been kept.
func FilterWeakly(splits []*Split) []*Split {
	kept := make([]*Split, 0, len(splits))
	for _, s := range splits {
		ok := true
		for i := 0; i < len(kept) && ok; i++ {
			for j := i + 1; j < len(kept); j++ {
				if !IsWeaklyCompatible(s.Colors, kept[i].Colors, kept[j].Colors) {
					ok = false
					break
				}
			}
		}
		if ok {
			kept = append(kept, s)
		}
	}
	return kept
}
