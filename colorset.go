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
	"fmt"
	"math/bits"
	"strings"
)

// maxWords bounds the word-array backing store used once a bit width
// exceeds a single uint64. Four words cover up to 256 colors, 128 DNA
// bases or 51 amino acids, well past anything a shard table built from
// a few thousand genomes needs.
const maxWords = 4

// MaxColors is the largest color count a ColorSet can represent.
const MaxColors = maxWords * 64

// wordKey is the fixed-width, comparable representation every ColorSet
// and Kmer implementation converts to when it needs to be a map key
// (shard lookup, live/singleton tables, blacklist membership). Using a
// plain array rather than a slice keeps these types usable directly as
// Go map keys without a byte-string conversion on every lookup.
// Word 0 is least significant, word maxWords-1 most significant.
type wordKey [maxWords]uint64

// ColorSet is a fixed-width bitset over the color domain {0, …, N-1},
// one bit per genome. Two implementations exist — a single word for
// N≤64 and a word array otherwise — selected once at construction and
// fixed for the set's lifetime. Both present the same operations so
// calling code never branches on which one it holds.
type ColorSet interface {
	N() int
	Set(i int)
	Clear(i int)
	Test(i int) bool
	PopCount() int
	// TrailingZeros returns the index of the lowest set bit, or N() if
	// the set is empty.
	TrailingZeros() int
	IsEmpty() bool
	IsFull() bool
	Complement() ColorSet
	Clone() ColorSet
	Equal(other ColorSet) bool
	// Less gives ColorSet a total order so split lists and compatibility
	// scans have a deterministic iteration order independent of map
	// hashing.
	Less(other ColorSet) bool
	Disjoint(other ColorSet) bool
	Key() wordKey
	String() string
}

// NewColorSet allocates an empty ColorSet over n colors.
func NewColorSet(n int) (ColorSet, error) {
	if n <= 0 || n > MaxColors {
		return nil, ErrNOverflow
	}
	if n <= 64 {
		return &colorSet64{n: n}, nil
	}
	return &colorSetWords{n: n, words: wordsNeeded(n)}, nil
}

func wordsNeeded(bits int) int {
	return (bits + 63) / 64
}

// colorSet64 is the N≤64 representation: a single machine word.
type colorSet64 struct {
	bits uint64
	n    int
}

func (c *colorSet64) N() int { return c.n }

func (c *colorSet64) mask() uint64 {
	if c.n == 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(c.n)) - 1
}

func (c *colorSet64) Set(i int)   { c.bits |= uint64(1) << uint(i) }
func (c *colorSet64) Clear(i int) { c.bits &^= uint64(1) << uint(i) }
func (c *colorSet64) Test(i int) bool {
	return c.bits&(uint64(1)<<uint(i)) != 0
}
func (c *colorSet64) PopCount() int { return bits.OnesCount64(c.bits) }
func (c *colorSet64) TrailingZeros() int {
	if c.bits == 0 {
		return c.n
	}
	return bits.TrailingZeros64(c.bits)
}
func (c *colorSet64) IsEmpty() bool { return c.bits == 0 }
func (c *colorSet64) IsFull() bool  { return c.bits == c.mask() }

func (c *colorSet64) Complement() ColorSet {
	return &colorSet64{bits: ^c.bits & c.mask(), n: c.n}
}

func (c *colorSet64) Clone() ColorSet {
	return &colorSet64{bits: c.bits, n: c.n}
}

func (c *colorSet64) Equal(other ColorSet) bool {
	o, ok := other.(*colorSet64)
	return ok && o.n == c.n && o.bits == c.bits
}

func (c *colorSet64) Less(other ColorSet) bool {
	o, ok := other.(*colorSet64)
	if !ok {
		return false
	}
	return c.bits < o.bits
}

func (c *colorSet64) Disjoint(other ColorSet) bool {
	o, ok := other.(*colorSet64)
	return ok && c.bits&o.bits == 0
}

func (c *colorSet64) Key() wordKey {
	var k wordKey
	k[0] = c.bits
	return k
}

func (c *colorSet64) String() string {
	return formatBits(c)
}

// colorSetWords is the N>64 representation: a fixed word array, word 0
// holding colors 0-63, unused high bits above n always zero.
type colorSetWords struct {
	w     [maxWords]uint64
	n     int
	words int
}

func (c *colorSetWords) N() int { return c.n }

func (c *colorSetWords) topMask() uint64 {
	rem := c.n % 64
	if rem == 0 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(rem)) - 1
}

func (c *colorSetWords) wordIndexAndBit(i int) (int, uint64) {
	return i / 64, uint64(1) << uint(i%64)
}

func (c *colorSetWords) Set(i int) {
	wi, b := c.wordIndexAndBit(i)
	c.w[wi] |= b
}

func (c *colorSetWords) Clear(i int) {
	wi, b := c.wordIndexAndBit(i)
	c.w[wi] &^= b
}

func (c *colorSetWords) Test(i int) bool {
	wi, b := c.wordIndexAndBit(i)
	return c.w[wi]&b != 0
}

func (c *colorSetWords) PopCount() int {
	n := 0
	for i := 0; i < c.words; i++ {
		n += bits.OnesCount64(c.w[i])
	}
	return n
}

func (c *colorSetWords) TrailingZeros() int {
	for i := 0; i < c.words; i++ {
		if c.w[i] != 0 {
			return i*64 + bits.TrailingZeros64(c.w[i])
		}
	}
	return c.n
}

func (c *colorSetWords) IsEmpty() bool {
	for i := 0; i < c.words; i++ {
		if c.w[i] != 0 {
			return false
		}
	}
	return true
}

func (c *colorSetWords) IsFull() bool {
	last := c.words - 1
	for i := 0; i < last; i++ {
		if c.w[i] != ^uint64(0) {
			return false
		}
	}
	return c.w[last] == c.topMask()
}

func (c *colorSetWords) Complement() ColorSet {
	out := &colorSetWords{n: c.n, words: c.words}
	for i := 0; i < c.words; i++ {
		out.w[i] = ^c.w[i]
	}
	out.w[c.words-1] &= c.topMask()
	return out
}

func (c *colorSetWords) Clone() ColorSet {
	out := &colorSetWords{n: c.n, words: c.words}
	out.w = c.w
	return out
}

func (c *colorSetWords) Equal(other ColorSet) bool {
	o, ok := other.(*colorSetWords)
	if !ok || o.n != c.n {
		return false
	}
	return c.w == o.w
}

func (c *colorSetWords) Less(other ColorSet) bool {
	o, ok := other.(*colorSetWords)
	if !ok {
		return false
	}
	for i := 0; i < c.words; i++ {
		if c.w[i] != o.w[i] {
			return c.w[i] < o.w[i]
		}
	}
	return false
}

func (c *colorSetWords) Disjoint(other ColorSet) bool {
	o, ok := other.(*colorSetWords)
	if !ok {
		return false
	}
	for i := 0; i < c.words; i++ {
		if c.w[i]&o.w[i] != 0 {
			return false
		}
	}
	return true
}

func (c *colorSetWords) Key() wordKey {
	var k wordKey
	copy(k[:], c.w[:])
	return k
}

func (c *colorSetWords) String() string {
	return formatBits(c)
}

func formatBits(c ColorSet) string {
	var sb strings.Builder
	for i := c.N() - 1; i >= 0; i-- {
		if c.Test(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Canonicalize implements the spec's bipartition-representative rule:
// of a colorset and its complement, keep whichever has fewer bits set;
// on a tie (n even, popcount == n/2) keep the side with bit 0 clear.
// Returns the canonical set and whether the input was complemented to
// reach it.
func Canonicalize(c ColorSet) (ColorSet, bool) {
	n := c.N()
	count := c.PopCount()
	if 2*count < n || (2*count == n && !c.Test(0)) {
		return c, false
	}
	return c.Complement(), true
}

// IsCompatible implements the four-way disjointness test for strict
// split compatibility: two splits A|A' and B|B' are compatible iff one
// of the four pairings (A,B), (A,B'), (A',B), (A',B') is empty.
func IsCompatible(a, b ColorSet) bool {
	aComp := a.Complement()
	bComp := b.Complement()
	return a.Disjoint(b) || a.Disjoint(bComp) || aComp.Disjoint(b) || aComp.Disjoint(bComp)
}

// IsWeaklyCompatible implements the three-way weak compatibility test.
// The eight three-way intersections formed by one side of each split
// fall into two groups of four: (A,B,C), (A,B',C'), (A',B,C'),
// (A',B',C) and (A,B,C'), (A,B',C), (A',B,C), (A',B',C'). The three
// splits are weakly compatible iff neither group has all four
// intersections non-empty. Per spec.md §4.7/original
// color.cpp::is_weakly_compatible, weak compatibility is evaluated over
// three splits at once.
func IsWeaklyCompatible(a, b, c ColorSet) bool {
	aComp := a.Complement()
	bComp := b.Complement()
	cComp := c.Complement()

	quad := func(x, y, z ColorSet) bool {
		return !x.Disjoint(intersect(y, z))
	}

	// cond1 and cond2 are the two groups of four three-way
	// intersections; either group being fully non-empty rules out weak
	// compatibility.
	cond1 := quad(a, b, c) && quad(a, bComp, cComp) && quad(aComp, b, cComp) && quad(aComp, bComp, c)
	cond2 := quad(a, b, cComp) && quad(a, bComp, c) && quad(aComp, b, c) && quad(aComp, bComp, cComp)
	return !(cond1 || cond2)
}

// IsSubset reports whether every color in a is also in b.
func IsSubset(a, b ColorSet) bool {
	return a.Disjoint(b.Complement())
}

// Union returns the bitwise OR of a and b.
func Union(a, b ColorSet) ColorSet {
	switch x := a.(type) {
	case *colorSet64:
		y := b.(*colorSet64)
		return &colorSet64{bits: x.bits | y.bits, n: x.n}
	case *colorSetWords:
		y := b.(*colorSetWords)
		out := &colorSetWords{n: x.n, words: x.words}
		for i := 0; i < x.words; i++ {
			out.w[i] = x.w[i] | y.w[i]
		}
		return out
	default:
		panic(fmt.Sprintf("sans: unknown ColorSet implementation %T", a))
	}
}

// FullColorSet returns a ColorSet over n colors with every bit set.
func FullColorSet(n int) (ColorSet, error) {
	cs, err := NewColorSet(n)
	if err != nil {
		return nil, err
	}
	return cs.Complement(), nil
}

func intersect(a, b ColorSet) ColorSet {
	switch x := a.(type) {
	case *colorSet64:
		y := b.(*colorSet64)
		return &colorSet64{bits: x.bits & y.bits, n: x.n}
	case *colorSetWords:
		y := b.(*colorSetWords)
		out := &colorSetWords{n: x.n, words: x.words}
		for i := 0; i < x.words; i++ {
			out.w[i] = x.w[i] & y.w[i]
		}
		return out
	default:
		panic(fmt.Sprintf("sans: unknown ColorSet implementation %T", a))
	}
}
