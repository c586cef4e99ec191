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

import "container/heap"

// Split is one ranked bipartition: a canonical ColorSet with the
// (weight0, weight1) pair it was folded from and the score used to
// rank it.
type Split struct {
	Colors  ColorSet
	Weight0 float64
	Weight1 float64
	Score   float64
}

// SplitList keeps the T highest-scoring splits seen via Add, without
// ever materializing the full set — spec.md §4.5's bounded top list.
// Internally it is a min-heap on Score so eviction of the current
// worst entry is O(log T).
type SplitList struct {
	capacity int
	ordinal  int64
	heap     splitHeap
}

// NewSplitList builds a list that retains at most capacity splits. A
// non-positive capacity means unbounded.
func NewSplitList(capacity int) *SplitList {
	return &SplitList{capacity: capacity}
}

// Add offers a split for inclusion. Ties are broken deterministically:
// each call perturbs the score by a strictly decreasing epsilon keyed
// on insertion order, so two splits can only compare equal if they are
// bit-identical ColorSets — which would mean they are the same split.
// This resolves spec.md §4.5's open question about tie-break behavior
// without ever changing which splits are kept once more than an
// epsilon apart in true score.
func (l *SplitList) Add(colors ColorSet, weight0, weight1, score float64) {
	l.ordinal++
	perturbed := score - float64(l.ordinal)*1e-9

	s := &Split{Colors: colors, Weight0: weight0, Weight1: weight1, Score: score}
	entry := heapEntry{split: s, rank: perturbed}

	if l.capacity <= 0 || l.heap.Len() < l.capacity {
		heap.Push(&l.heap, entry)
		return
	}
	if l.heap.Len() > 0 && perturbed > l.heap[0].rank {
		heap.Pop(&l.heap)
		heap.Push(&l.heap, entry)
	}
}

// Len reports how many splits are currently retained.
func (l *SplitList) Len() int { return l.heap.Len() }

// Sorted drains the list into a slice ordered by descending score
// (highest-ranked split first).
func (l *SplitList) Sorted() []*Split {
	tmp := make(splitHeap, len(l.heap))
	copy(tmp, l.heap)
	out := make([]*Split, len(tmp))
	for i := len(tmp) - 1; i >= 0; i-- {
		e := heap.Pop(&tmp).(heapEntry)
		out[i] = e.split
	}
	return out
}

type heapEntry struct {
	split *Split
	rank  float64
}

type splitHeap []heapEntry

func (h splitHeap) Len() int            { return len(h) }
func (h splitHeap) Less(i, j int) bool  { return h[i].rank < h[j].rank }
func (h splitHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *splitHeap) Push(x interface{}) { *h = append(*h, x.(heapEntry)) }
func (h *splitHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
