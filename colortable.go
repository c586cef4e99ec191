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

import "math"

// Mean selects how a split's two-sided weight is folded into one
// ranking score.
type Mean string

const (
	MeanArith Mean = "arith"
	MeanGeom  Mean = "geom"
	MeanGeom2 Mean = "geom2"
)

// colorTableEntry accumulates, per canonical bipartition, how much
// k-mer weight supported it in its stored (direct) orientation versus
// how much supported the complementary orientation before
// canonicalization flipped it — the (weight, inverse weight) pair from
// spec.md §4.4, grounded on original_source/src/graph.cpp's
// add_weights, which increments color_table[color][pos] where pos
// records whether color::represent() had to invert the input.
type colorTableEntry struct {
	colors ColorSet
	weight [2]float64
}

// ColorTable aggregates per-k-mer color observations into per-split
// weight totals.
type ColorTable struct {
	n       int
	entries map[wordKey]*colorTableEntry
}

// NewColorTable allocates an empty table over n colors.
func NewColorTable(n int) *ColorTable {
	return &ColorTable{n: n, entries: make(map[wordKey]*colorTableEntry)}
}

// Add folds one k-mer's color observation, worth w (normally 1, or a
// quality-derived weight), into its canonical bipartition.
func (t *ColorTable) Add(colors ColorSet, w float64) {
	canon, inverted := Canonicalize(colors)
	key := canon.Key()
	e, ok := t.entries[key]
	if !ok {
		e = &colorTableEntry{colors: canon.Clone()}
		t.entries[key] = e
	}
	if inverted {
		e.weight[1] += w
	} else {
		e.weight[0] += w
	}
}

// BuildFromIndex folds every live-table colorset into the table, and
// optionally every singleton into its trivial one-color colorset, per
// spec.md §4.4's "add singleton contributions" step.
func (t *ColorTable) BuildFromIndex(ix *Index, includeSingletons bool) {
	ix.ForEachLive(func(_ wordKey, colors ColorSet) {
		t.Add(colors, 1)
	})
	if !includeSingletons {
		return
	}
	ix.ForEachSingleton(func(_ wordKey, color int) {
		cs, err := NewColorSet(t.n)
		if err != nil {
			panic(err)
		}
		cs.Set(color)
		t.Add(cs, 1)
	})
}

// Score folds an entry's (weight, inverse weight) pair into a single
// ranking value per the selected mean.
//
//   - arith: simple average, symmetric, sensitive to one-sided noise.
//   - geom: geometric mean; zero whenever either side is unsupported,
//     so a split only scores well when both complementary k-mer sets
//     were actually observed.
//   - geom2: geometric mean with a +1 pseudo-count on each side, the
//     default — tolerant of real but highly asymmetric splits (e.g. an
//     outgroup of one genome against many) that geom would zero out.
func Score(weight0, weight1 float64, mean Mean) float64 {
	switch mean {
	case MeanArith:
		return (weight0 + weight1) / 2
	case MeanGeom:
		return math.Sqrt(weight0 * weight1)
	default:
		return math.Sqrt((weight0 + 1) * (weight1 + 1))
	}
}

// Entries calls fn once per aggregated split with its two-sided
// weights, in map iteration order (callers that need a deterministic
// order should route through SplitList instead).
func (t *ColorTable) Entries(fn func(colors ColorSet, weight0, weight1 float64)) {
	for _, e := range t.entries {
		fn(e.colors, e.weight[0], e.weight[1])
	}
}

// Len reports the number of distinct splits currently aggregated.
func (t *ColorTable) Len() int { return len(t.entries) }
