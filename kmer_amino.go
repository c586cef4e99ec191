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

// MaxAminoK64 is the largest K the single-word amino representation
// holds (12 residues at 5 bits each). MaxAminoKWords is the word-array
// ceiling.
const (
	MaxAminoK64    = 12
	MaxAminoKWords = (maxWords * 64) / 5
)

// amino2code maps the 20 standard residues plus the ambiguity/stop
// letters B, Z, X, J, U, O and '*' to a 5-bit code, alphabet order
// (A=0 .. Z=25, '*'=26), matching original_source's translator.h table.
var amino2code = [256]int8{}

var code2amino [32]byte

func init() {
	for i := range amino2code {
		amino2code[i] = -1
	}
	for c := byte('A'); c <= 'Z'; c++ {
		amino2code[c] = int8(c - 'A')
		amino2code[c+('a'-'A')] = int8(c - 'A')
		code2amino[c-'A'] = c
	}
	amino2code['*'] = 26
	code2amino[26] = '*'
}

// EncodeAminoResidue returns the 5-bit code for an amino acid letter
// or stop codon marker.
func EncodeAminoResidue(b byte) (int8, error) {
	c := amino2code[b]
	if c < 0 {
		return 0, ErrIllegalBase
	}
	return c, nil
}

// iupacAmino maps an ambiguous amino acid letter to the residues it
// may resolve to, matching original_source's iupac_shift_amino:
// B -> {D,N}, Z -> {E,Q}, J -> {L,I}, X -> all 22 residues (the 20
// standard ones plus O and U; the stop marker '*' is not included).
// Unambiguous letters are absent; callers fall back to
// EncodeAminoResidue for those.
var iupacAmino = map[byte][]byte{
	'B': {'D', 'N'},
	'Z': {'E', 'Q'},
	'J': {'L', 'I'},
	'X': {'A', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'Y'},
}

// ResolveAminoResidue returns the 5-bit codes a (possibly ambiguous)
// amino acid letter may resolve to, or ok=false if the byte is not a
// recognized residue or ambiguity code at all. Unambiguous residues
// always resolve to exactly one code, matching EncodeAminoResidue.
func ResolveAminoResidue(b byte) (codes []int8, ok bool) {
	if b >= 'a' && b <= 'z' {
		b -= 'a' - 'A'
	}
	if residues, found := iupacAmino[b]; found {
		codes = make([]int8, len(residues))
		for i, r := range residues {
			codes[i] = amino2code[r]
		}
		return codes, true
	}
	c := amino2code[b]
	if c < 0 {
		return nil, false
	}
	return []int8{c}, true
}

// AminoKmer is a fixed-length, 5-bit-per-residue protein k-mer. Amino
// k-mers have no meaningful reverse complement, so they are never
// canonicalized — the spec treats protein splits as directional.
type AminoKmer interface {
	K() int
	ShiftLeft(code int8)
	Clone() AminoKmer
	Key() wordKey
	String() string
}

// NewAminoKmer allocates a zeroed amino k-mer of length k.
func NewAminoKmer(k int) (AminoKmer, error) {
	if k <= 0 || k > MaxAminoKWords {
		return nil, ErrKOverflow
	}
	if k <= MaxAminoK64 {
		return &aminoKmer64{k: k}, nil
	}
	return &aminoKmerWords{k: k, words: wordsNeeded(5 * k)}, nil
}

type aminoKmer64 struct {
	code uint64
	k    int
}

func (a *aminoKmer64) K() int { return a.k }

func (a *aminoKmer64) mask() uint64 {
	bitsUsed := uint(5 * a.k)
	if bitsUsed >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << bitsUsed) - 1
}

func (a *aminoKmer64) ShiftLeft(code int8) {
	a.code = ((a.code << 5) | uint64(code)) & a.mask()
}

func (a *aminoKmer64) Clone() AminoKmer { return &aminoKmer64{code: a.code, k: a.k} }

func (a *aminoKmer64) Key() wordKey {
	var k wordKey
	k[0] = a.code
	return k
}

func (a *aminoKmer64) String() string {
	buf := make([]byte, a.k)
	c := a.code
	for i := a.k - 1; i >= 0; i-- {
		buf[i] = code2amino[c&0b11111]
		c >>= 5
	}
	return string(buf)
}

type aminoKmerWords struct {
	w     [maxWords]uint64
	k     int
	words int
}

func (a *aminoKmerWords) K() int { return a.k }

func (a *aminoKmerWords) ShiftLeft(code int8) {
	carry := uint64(code)
	for i := a.words - 1; i >= 0; i-- {
		newCarry := a.w[i] >> 59
		a.w[i] = (a.w[i] << 5) | carry
		carry = newCarry & 0b11111
	}
	totalBits := 5 * a.k
	topBits := totalBits - 64*(a.words-1)
	if topBits < 64 {
		a.w[0] &= (uint64(1) << uint(topBits)) - 1
	}
}

func (a *aminoKmerWords) baseAt(i int) int8 {
	bitOff := 5 * (a.k - 1 - i)
	word := a.words - 1 - bitOff/64
	shift := uint(bitOff % 64)
	if shift > 59 {
		// residue straddles a word boundary; reassemble from both words.
		lowBits := 64 - shift
		low := a.w[word] >> shift
		high := a.w[word-1] & ((uint64(1) << (5 - lowBits)) - 1)
		return int8(low | (high << lowBits))
	}
	return int8((a.w[word] >> shift) & 0b11111)
}

func (a *aminoKmerWords) Clone() AminoKmer {
	out := &aminoKmerWords{k: a.k, words: a.words}
	out.w = a.w
	return out
}

func (a *aminoKmerWords) Key() wordKey {
	// a.w[0] is most significant; wordKey wants word 0 least
	// significant, so the mapping reverses across the used words.
	var k wordKey
	for i := 0; i < a.words; i++ {
		k[i] = a.w[a.words-1-i]
	}
	return k
}

func (a *aminoKmerWords) String() string {
	var sb strings.Builder
	sb.Grow(a.k)
	for i := 0; i < a.k; i++ {
		sb.WriteByte(code2amino[a.baseAt(i)&0b11111])
	}
	return sb.String()
}
