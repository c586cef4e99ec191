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

import "strings"

// MaxDNAK64 is the largest K the single-word DNA representation holds
// (32 bases at 2 bits each). MaxDNAKWords is the word-array ceiling.
const (
	MaxDNAK64    = 32
	MaxDNAKWords = maxWords * 32
)

// base2bit maps A/C/G/T (upper or lower case) to their 2-bit code.
// The mapping is chosen so complement is XOR 0b11: A(00)<->T(11),
// C(01)<->G(10).
var base2bit = [256]int8{}

var bit2base = [4]byte{'A', 'C', 'G', 'T'}

func init() {
	for i := range base2bit {
		base2bit[i] = -1
	}
	base2bit['A'], base2bit['a'] = 0, 0
	base2bit['C'], base2bit['c'] = 1, 1
	base2bit['G'], base2bit['g'] = 2, 2
	base2bit['T'], base2bit['t'] = 3, 3
	base2bit['U'], base2bit['u'] = 3, 3
}

// EncodeDNABase returns the 2-bit code for a base, or an error for
// anything outside {A,C,G,T,U}. IUPAC ambiguity expansion happens
// upstream in the extractor, not here.
func EncodeDNABase(b byte) (int8, error) {
	c := base2bit[b]
	if c < 0 {
		return 0, ErrIllegalBase
	}
	return c, nil
}

// DNAKmer is a fixed-length, 2-bit-per-base nucleotide k-mer with
// reverse-complement and canonicalization support. Two implementations
// back this interface: dnaKmer64 for K≤32 and dnaKmerWords beyond that,
// chosen once when the extractor is configured.
type DNAKmer interface {
	K() int
	// ShiftLeft appends one base code (0..3) at the low end, dropping
	// the highest base. This is the rolling-window update.
	ShiftLeft(code int8)
	ReverseComplement() DNAKmer
	Canonical() DNAKmer
	Clone() DNAKmer
	Key() wordKey
	String() string
}

// NewDNAKmer allocates a zeroed DNA k-mer of length k.
func NewDNAKmer(k int) (DNAKmer, error) {
	if k <= 0 || k > MaxDNAKWords {
		return nil, ErrKOverflow
	}
	if k <= MaxDNAK64 {
		return &dnaKmer64{k: k}, nil
	}
	return &dnaKmerWords{k: k, words: wordsNeeded(2 * k)}, nil
}

// dnaKmer64 packs up to 32 bases into a single uint64, most recent
// base in the lowest two bits (matches the teacher's KmerCode layout
// in kmer.go).
type dnaKmer64 struct {
	code uint64
	k    int
}

func (d *dnaKmer64) K() int { return d.k }

func (d *dnaKmer64) mask() uint64 {
	if d.k == 32 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(2*d.k)) - 1
}

func (d *dnaKmer64) ShiftLeft(code int8) {
	d.code = ((d.code << 2) | uint64(code)) & d.mask()
}

func (d *dnaKmer64) ReverseComplement() DNAKmer {
	// complement every base (XOR 0b11 pairwise), then reverse base
	// order, following the teacher's Reverse/Complement/RevComp trio.
	comp := d.code ^ d.mask()
	var rev uint64
	c := comp
	for i := 0; i < d.k; i++ {
		rev = (rev << 2) | (c & 0b11)
		c >>= 2
	}
	return &dnaKmer64{code: rev, k: d.k}
}

func (d *dnaKmer64) Canonical() DNAKmer {
	rc := d.ReverseComplement().(*dnaKmer64)
	if rc.code < d.code {
		return rc
	}
	return &dnaKmer64{code: d.code, k: d.k}
}

func (d *dnaKmer64) Clone() DNAKmer {
	return &dnaKmer64{code: d.code, k: d.k}
}

func (d *dnaKmer64) Key() wordKey {
	var k wordKey
	k[0] = d.code
	return k
}

func (d *dnaKmer64) String() string {
	buf := make([]byte, d.k)
	c := d.code
	for i := d.k - 1; i >= 0; i-- {
		buf[i] = bit2base[c&0b11]
		c >>= 2
	}
	return string(buf)
}

// dnaKmerWords packs bases two bits at a time across a fixed word
// array, most significant word holding the oldest bases, mirroring
// the single-word layout at word-array scale.
type dnaKmerWords struct {
	w     [maxWords]uint64
	k     int
	words int
}

func (d *dnaKmerWords) K() int { return d.k }

func (d *dnaKmerWords) ShiftLeft(code int8) {
	carry := uint64(code)
	for i := d.words - 1; i >= 0; i-- {
		newCarry := d.w[i] >> 62
		d.w[i] = (d.w[i] << 2) | carry
		carry = newCarry
	}
	totalBits := 2 * d.k
	topBits := totalBits - 64*(d.words-1)
	if topBits < 64 {
		d.w[0] &= (uint64(1) << uint(topBits)) - 1
	}
}

func (d *dnaKmerWords) baseAt(i int) int8 {
	// base index 0 is the most significant (oldest) base.
	bitOff := 2 * (d.k - 1 - i)
	word := d.words - 1 - bitOff/64
	shift := uint(bitOff % 64)
	return int8((d.w[word] >> shift) & 0b11)
}

func (d *dnaKmerWords) setBaseAt(i int, code int8) {
	bitOff := 2 * (d.k - 1 - i)
	word := d.words - 1 - bitOff/64
	shift := uint(bitOff % 64)
	d.w[word] &^= 0b11 << shift
	d.w[word] |= uint64(code) << shift
}

func (d *dnaKmerWords) ReverseComplement() DNAKmer {
	out := &dnaKmerWords{k: d.k, words: d.words}
	for i := 0; i < d.k; i++ {
		comp := d.baseAt(i) ^ 0b11
		out.setBaseAt(d.k-1-i, comp)
	}
	return out
}

func (d *dnaKmerWords) Canonical() DNAKmer {
	rc := d.ReverseComplement().(*dnaKmerWords)
	if wordsLess(rc.w, d.w, d.words) {
		return rc
	}
	return d.Clone()
}

func wordsLess(a, b [maxWords]uint64, words int) bool {
	for i := 0; i < words; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func (d *dnaKmerWords) Clone() DNAKmer {
	out := &dnaKmerWords{k: d.k, words: d.words}
	out.w = d.w
	return out
}

func (d *dnaKmerWords) Key() wordKey {
	// d.w[0] is most significant; wordKey wants word 0 least
	// significant, so the mapping reverses across the used words.
	var k wordKey
	for i := 0; i < d.words; i++ {
		k[i] = d.w[d.words-1-i]
	}
	return k
}

func (d *dnaKmerWords) String() string {
	var sb strings.Builder
	sb.Grow(d.k)
	for i := 0; i < d.k; i++ {
		sb.WriteByte(bit2base[d.baseAt(i)])
	}
	return sb.String()
}
