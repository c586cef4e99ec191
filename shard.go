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

// ShardCount is the number of independently-locked buckets the k-mer
// table is split into. 2^14+1 is chosen, as in the original, because it
// is odd and therefore coprime with the power-of-two strides produced
// by the rolling hash of a 2-bit-per-base k-mer, spreading load evenly
// across shards even for highly repetitive input.
const ShardCount = 1<<14 + 1

// IndexShard holds the live and singleton tables for one bucket of the
// k-mer space, each guarded by its own spinlock so unrelated k-mers
// never contend.
type IndexShard struct {
	mu        spinlock
	live      map[wordKey]ColorSet
	singleton map[wordKey]int
}

func newIndexShard() *IndexShard {
	return &IndexShard{
		live:      make(map[wordKey]ColorSet),
		singleton: make(map[wordKey]int),
	}
}

// pow64ModM returns 2^64 mod m, used as the Horner-method base for
// folding a multi-word k-mer value into a shard index without
// materializing a big.Int.
func pow64ModM(m uint64) uint64 {
	// 2^64 mod m == ((2^32 mod m) * (2^32 mod m)) mod m
	var base uint64 = 1
	for i := 0; i < 64; i++ {
		base = (base * 2) % m
	}
	return base
}

// shardIndex folds a wordKey (word 0 least significant, as produced by
// ColorSet.Key()/DNAKmer.Key()) into a shard bucket via Horner's method
// base 2^64, equivalent to (value mod ShardCount) without needing
// arbitrary-precision arithmetic. Words are folded most-significant
// first.
func shardIndex(key wordKey, shardCount uint64, base uint64) uint64 {
	var rem uint64
	for i := maxWords - 1; i >= 0; i-- {
		rem = (rem*base + key[i]%shardCount) % shardCount
	}
	return rem
}
