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

// Index is the sharded k-mer → color-set table. One Index is built per
// run, sized for a fixed color count n, and is safe for concurrent
// Submit calls from many extractor goroutines.
type Index struct {
	n         int
	shards    [ShardCount]*IndexShard
	base      uint64
	blacklist map[wordKey]struct{}

	singletonLocks  [256]spinlock
	singletonCounts []int64
}

// NewIndex builds an empty Index over n colors.
func NewIndex(n int) *Index {
	ix := &Index{
		n:               n,
		base:            pow64ModM(ShardCount),
		singletonCounts: make([]int64, n),
	}
	for i := range ix.shards {
		ix.shards[i] = newIndexShard()
	}
	return ix
}

// SetBlacklist installs a read-only set of k-mer keys to ignore. It
// must be called before any Submit, and never mutated afterward — the
// blacklist is shared without locking once set, per spec.md §4.2.
func (ix *Index) SetBlacklist(keys map[wordKey]struct{}) {
	ix.blacklist = keys
}

func (ix *Index) shardFor(key wordKey) *IndexShard {
	return ix.shards[shardIndex(key, ShardCount, ix.base)]
}

func (ix *Index) lockForColor(color int) *spinlock {
	return &ix.singletonLocks[color%len(ix.singletonLocks)]
}

// Submit records that color `color` was observed for the k-mer with
// the given key. A k-mer first seen stays a "singleton" entry
// (kmer → single color) until a second, different color arrives, at
// which point it is promoted to a full ColorSet in the live table and
// removed from the singleton table. This matches the size-saving
// scheme described in spec.md §4.2: most k-mers in a large, low-overlap
// genome set are only ever seen in one genome and never need a full
// N-bit allocation.
func (ix *Index) Submit(key wordKey, color int) {
	if ix.blacklist != nil {
		if _, blocked := ix.blacklist[key]; blocked {
			return
		}
	}

	sh := ix.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if cs, ok := sh.live[key]; ok {
		cs.Set(color)
		return
	}

	if firstColor, ok := sh.singleton[key]; ok {
		if firstColor == color {
			return
		}
		cs, err := NewColorSet(ix.n)
		if err != nil {
			panic(err) // n is fixed and validated at Index construction
		}
		cs.Set(firstColor)
		cs.Set(color)
		sh.live[key] = cs
		delete(sh.singleton, key)
		ix.addSingletonCount(firstColor, -1)
		return
	}

	sh.singleton[key] = color
	ix.addSingletonCount(color, 1)
}

func (ix *Index) addSingletonCount(color int, delta int64) {
	lk := ix.lockForColor(color)
	lk.Lock()
	ix.singletonCounts[color] += delta
	lk.Unlock()
}

// SingletonCount returns the number of k-mers currently seen in
// exactly this one color and no other.
func (ix *Index) SingletonCount(color int) int64 {
	lk := ix.lockForColor(color)
	lk.Lock()
	defer lk.Unlock()
	return ix.singletonCounts[color]
}

// ForEachLive calls fn once per entry remaining in the live table
// across all shards, in shard order. fn must not call Submit.
func (ix *Index) ForEachLive(fn func(key wordKey, colors ColorSet)) {
	for _, sh := range ix.shards {
		sh.mu.Lock()
		for k, cs := range sh.live {
			fn(k, cs)
		}
		sh.mu.Unlock()
	}
}

// ForEachSingleton calls fn once per entry remaining in the singleton
// table across all shards, in shard order.
func (ix *Index) ForEachSingleton(fn func(key wordKey, color int)) {
	for _, sh := range ix.shards {
		sh.mu.Lock()
		for k, c := range sh.singleton {
			fn(k, c)
		}
		sh.mu.Unlock()
	}
}

// LiveCount and SingletonTotal report table sizes, used for verbose
// progress logging by cmd/sans.
func (ix *Index) LiveCount() int {
	n := 0
	for _, sh := range ix.shards {
		sh.mu.Lock()
		n += len(sh.live)
		sh.mu.Unlock()
	}
	return n
}

func (ix *Index) SingletonTotal() int {
	n := 0
	for _, sh := range ix.shards {
		sh.mu.Lock()
		n += len(sh.singleton)
		sh.mu.Unlock()
	}
	return n
}
