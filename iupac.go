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

// iupacNucl maps an IUPAC nucleotide ambiguity code (upper case) to
// the set of concrete bases it may resolve to. Unambiguous bases map
// to themselves. Gap/unknown characters ('-', '.') are deliberately
// absent: they are handled as a hard reset by the extractor, not an
// expansion.
var iupacNucl = map[byte][]byte{
	'A': {'A'},
	'C': {'C'},
	'G': {'G'},
	'T': {'T'},
	'U': {'T'},
	'R': {'A', 'G'},
	'Y': {'C', 'T'},
	'S': {'G', 'C'},
	'W': {'A', 'T'},
	'K': {'G', 'T'},
	'M': {'A', 'C'},
	'B': {'C', 'G', 'T'},
	'D': {'A', 'G', 'T'},
	'H': {'A', 'C', 'T'},
	'V': {'A', 'C', 'G'},
	'N': {'A', 'C', 'G', 'T'},
}

// resolveNucl returns the 2-bit codes a (possibly ambiguous) input
// byte may resolve to, or ok=false if the byte is not a recognized
// IUPAC nucleotide code at all.
func resolveNucl(b byte) (codes []int8, ok bool) {
	if b >= 'a' && b <= 'z' {
		b -= 'a' - 'A'
	}
	bases, found := iupacNucl[b]
	if !found {
		return nil, false
	}
	codes = make([]int8, len(bases))
	for i, base := range bases {
		c, _ := EncodeDNABase(base)
		codes[i] = c
	}
	return codes, true
}
