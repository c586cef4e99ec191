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
	"math/rand"
	"sort"
	"sync"
)

// BootstrapResult pairs a split with the fraction of resampling
// replicates in which it remained supported.
type BootstrapResult struct {
	Split   *Split
	Support float64
}

// binomial draws a Binomial(round(n), p) sample by simulating
// round(n) independent Bernoulli(p) trials. n is a float because
// weights may themselves be fractional (quality-weighted k-mer
// counts); it is rounded once up front.
func binomial(rng *rand.Rand, n float64, p float64) float64 {
	trials := int(n + 0.5)
	successes := 0
	for i := 0; i < trials; i++ {
		if rng.Float64() < p {
			successes++
		}
	}
	return float64(successes)
}

// resampleSplit draws one bootstrap replicate of a split's score.
// Each side's supporting weight is resampled independently via its
// own Binomial(weight, 0.5) draw rather than a single joint draw over
// the total — spec.md flags this independence assumption explicitly;
// it is implemented as specified rather than "corrected", since no
// alternative procedure is given and it only affects the variance, not
// the sign, of the resulting support estimate.
func resampleSplit(rng *rand.Rand, s *Split, mean Mean) float64 {
	w0 := binomial(rng, s.Weight0, 0.5)
	w1 := binomial(rng, s.Weight1, 0.5)
	return Score(w0, w1, mean)
}

// RunBootstrap computes, for each split, the fraction of `replicates`
// resamplings in which the split's resampled score stayed positive
// (i.e. both sides kept at least some support), single-threaded.
func RunBootstrap(rng *rand.Rand, splits []*Split, replicates int, mean Mean) []BootstrapResult {
	out := make([]BootstrapResult, len(splits))
	for i, s := range splits {
		hits := 0
		for r := 0; r < replicates; r++ {
			if resampleSplit(rng, s, mean) > 0 {
				hits++
			}
		}
		out[i] = BootstrapResult{Split: s, Support: float64(hits) / float64(replicates)}
	}
	return out
}

// RunBootstrapParallel is the concurrent form of RunBootstrap: one
// worker goroutine per `workers`, each owning its own rand.Rand seeded
// independently (so replicate draws never contend on a shared source),
// with results drained back into input order via an id-keyed reorder
// buffer — the same pattern the teacher uses in
// unikmer/cmd/info.go for ordered concurrent file processing.
func RunBootstrapParallel(splits []*Split, replicates int, mean Mean, workers int, seed int64) []BootstrapResult {
	if workers <= 1 || len(splits) < workers {
		return RunBootstrap(rand.New(rand.NewSource(seed)), splits, replicates, mean)
	}

	type job struct {
		id    int
		split *Split
	}
	type result struct {
		id  int
		res BootstrapResult
	}

	jobs := make(chan job, len(splits))
	results := make(chan result, len(splits))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerSeed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(workerSeed))
			for j := range jobs {
				hits := 0
				for r := 0; r < replicates; r++ {
					if resampleSplit(rng, j.split, mean) > 0 {
						hits++
					}
				}
				results <- result{id: j.id, res: BootstrapResult{Split: j.split, Support: float64(hits) / float64(replicates)}}
			}
		}(seed + int64(w)*2654435761)
	}

	for i, s := range splits {
		jobs <- job{id: i, split: s}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	buf := make(map[int]BootstrapResult, len(splits))
	for r := range results {
		buf[r.id] = r.res
	}

	out := make([]BootstrapResult, len(splits))
	ids := make([]int, 0, len(buf))
	for id := range buf {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		out[id] = buf[id]
	}
	return out
}

// ApplyBootstrapSupport copies each result's support value onto the
// matching interior node of tree (matched by ColorSet key), so Newick
// output can print it as the clade support value.
func ApplyBootstrapSupport(root *Node, results []BootstrapResult) {
	byKey := make(map[wordKey]float64, len(results))
	for _, r := range results {
		byKey[r.Split.Colors.Key()] = r.Support
	}
	var walk func(n *Node)
	walk = func(n *Node) {
		if !n.isLeaf() {
			if sup, ok := byKey[n.Colors.Key()]; ok {
				n.Support = sup
			}
			for _, c := range n.Children {
				walk(c)
			}
		}
	}
	walk(root)
}
