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

package cdbg

// This file holds the minimal-width integer framing bifrostLike's
// reader/writer build their records from: a trimmed big-endian form for
// a record's color-word count, and a paired two-integer form for the
// color words themselves. The bit-twiddling is the teacher's own
// compact integer codec (unikmer's uvarint.go/varint-GB.go), repointed
// here at exactly two record fields instead of a general k-mer/count
// stream.

// encodeWordCount writes x into buf using only as many leading bytes
// as it needs (1-8), returning the count. It backs the record's
// color-word-count field, which bifrostLike's own 1-byte length prefix
// already bounds to at most 8.
func encodeWordCount(buf []byte, x uint64) int {
	i := 0
	var t, j uint64

	for j = 1; j <= 7; j++ {
		t = 8 * (8 - j)
		if x > 1<<(t)-1 {
			buf[i] = byte((x & (0xff << t)) >> t)
			x = x & (1<<(8*(9-j)) - 1)
			i++
		}
	}
	buf[i] = byte(x)
	return i + 1
}

// decodeWordCount is encodeWordCount's inverse: n is the exact byte
// count a prior encodeWordCount call reported (bifrostLike always
// passes the length it read off the wire, never the "infer from
// len(buf)" shorthand the teacher's original allowed).
func decodeWordCount(buf []byte, n int) uint64 {
	var x uint64
	for i := n - 1; i >= 0; i-- {
		x |= uint64(buf[i]) << uint((n-1-i)*8)
	}
	return x
}

var byteOffsets = []uint8{56, 48, 40, 32, 24, 16, 8, 0}

// byteLength reports how many bytes n needs in a trimmed big-endian
// encoding (1 for n<256, up to 8 for the full 64-bit range).
func byteLength(n uint64) uint8 {
	for shift := uint(8); shift < 64; shift += 8 {
		if n < uint64(1)<<shift {
			return uint8(shift / 8)
		}
	}
	return 8
}

// ctrlByteLengths decomposes a PutUint64s control byte back into the
// two encoded lengths it packed, computed rather than carried as a
// literal lookup table: bits 3-5 hold (len(v1)-1), bits 0-2 hold
// (len(v2)-1).
func ctrlByteLengths(ctrl byte) (l1, l2 uint8) {
	return uint8(ctrl>>3)&0b111 + 1, uint8(ctrl)&0b111 + 1
}

// PutUint64s encodes two uint64s into 2-16 bytes, returning the
// control byte and the number of bytes written. Used to pack the
// pairs of 64-bit color words a bifrostLike record's colorset is split
// into.
func PutUint64s(buf []byte, v1, v2 uint64) (ctrl byte, n int) {
	blen := byteLength(v1)
	ctrl |= byte(blen - 1)
	for _, offset := range byteOffsets[8-blen:] {
		buf[n] = byte((v1 >> offset) & 0xff)
		n++
	}

	ctrl <<= 3
	blen = byteLength(v2)
	ctrl |= byte(blen - 1)
	for _, offset := range byteOffsets[8-blen:] {
		buf[n] = byte((v2 >> offset) & 0xff)
		n++
	}
	return
}

// Uint64s decodes two uint64s previously packed by PutUint64s.
func Uint64s(ctrl byte, buf []byte) (values [2]uint64, n int) {
	l1, l2 := ctrlByteLengths(ctrl)
	if len(buf) < int(l1+l2) {
		return values, 0
	}
	for i, blen := range [2]uint8{l1, l2} {
		for j := uint8(0); j < blen; j++ {
			values[i] <<= 8
			values[i] |= uint64(buf[n])
			n++
		}
	}
	return
}
