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

// QualityFilter decides, per genome, whether a newly-extracted k-mer
// should be submitted to the index yet. One filter is created per
// genome-processing goroutine and is never shared, so it needs no
// locking of its own.
type QualityFilter interface {
	// Admit is called once per occurrence of a k-mer within a genome's
	// read set. It returns true the moment the k-mer should be (or
	// continue to be) submitted to the Index.
	Admit(key wordKey) bool
}

// NewQualityFilter builds the filter implied by the -q/--quality flag:
//
//	q <= 1: every occurrence is submitted (no coverage requirement).
//	q == 2: a k-mer is submitted the first time it is seen in this
//	        genome and ignored on repeats (dedups read-depth noise
//	        without requiring a minimum depth).
//	q >= 3: a k-mer must be seen at least q times in this genome before
//	        it is submitted at all, guarding against low-coverage
//	        sequencing errors; once the threshold is crossed it is
//	        submitted exactly once.
func NewQualityFilter(q int) QualityFilter {
	switch {
	case q <= 1:
		return passThroughFilter{}
	case q == 2:
		return &seenOnceFilter{seen: make(map[wordKey]struct{})}
	default:
		return &thresholdFilter{threshold: int64(q), counts: make(map[wordKey]int64)}
	}
}

type passThroughFilter struct{}

func (passThroughFilter) Admit(wordKey) bool { return true }

type seenOnceFilter struct {
	seen map[wordKey]struct{}
}

func (f *seenOnceFilter) Admit(key wordKey) bool {
	if _, ok := f.seen[key]; ok {
		return false
	}
	f.seen[key] = struct{}{}
	return true
}

type thresholdFilter struct {
	threshold int64
	counts    map[wordKey]int64
}

func (f *thresholdFilter) Admit(key wordKey) bool {
	c := f.counts[key] + 1
	f.counts[key] = c
	return c == f.threshold
}
