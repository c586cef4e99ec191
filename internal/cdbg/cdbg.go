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

import (
	"bufio"
	"errors"
	"io"

	sans "github.com/kcri-tz/sans-go"
)

// Annotation is one record of a pre-built colored de Bruijn graph: a
// k-mer and the set of genomes it was already observed in.
type Annotation struct {
	Kmer   []byte
	Colors sans.ColorSet
}

// Source yields Annotations until exhausted, returning io.EOF.
type Source interface {
	Next() (Annotation, error)
}

// ErrTruncated means a record's length prefix promised more bytes than
// the stream delivered.
var ErrTruncated = errors.New("cdbg: truncated record")

// bifrostLikeMagic identifies the simple length-prefixed binary form
// this package reads: a loader for one plausible colored de Bruijn
// graph encoding, not a generic Bifrost/ggcat/Cuttlefish container
// format parser.
var bifrostLikeMagic = [4]byte{'c', 'd', 'b', 'g'}

// bifrostLike reads records of: 1-byte k-mer length, k-mer bytes, a
// color-word count (one length byte, then that many big-endian bytes,
// see encodeWordCount/decodeWordCount), then that many color words packed
// two at a time via PutUint64s/Uint64s (one control byte plus 2-16
// payload bytes per pair, odd counts zero-padded). The framing reuses
// the teacher's own compact integer codec (wordcodec.go) for exactly the
// kind of record it was written for, repointed at colored de Bruijn
// graph records instead of k-mer/count pairs.
type bifrostLike struct {
	r *bufio.Reader
	n int // genome count, needed to size each ColorSet
}

// NewBifrostLikeSource opens r, validates its magic header, and
// returns a Source that decodes records against an n-genome ColorSet.
func NewBifrostLikeSource(r io.Reader, n int) (Source, error) {
	br := bufio.NewReader(r)
	var magic [4]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, err
	}
	if magic != bifrostLikeMagic {
		return nil, errors.New("cdbg: bad magic")
	}
	return &bifrostLike{r: br, n: n}, nil
}

func (s *bifrostLike) Next() (Annotation, error) {
	klen, err := s.r.ReadByte()
	if err != nil {
		return Annotation{}, err
	}
	kmer := make([]byte, klen)
	if _, err := io.ReadFull(s.r, kmer); err != nil {
		return Annotation{}, ErrTruncated
	}

	vlenByte, err := s.r.ReadByte()
	if err != nil {
		return Annotation{}, ErrTruncated
	}
	vlen := int(vlenByte)
	payload := make([]byte, vlen)
	if _, err := io.ReadFull(s.r, payload); err != nil {
		return Annotation{}, ErrTruncated
	}
	nwords := decodeWordCount(payload, vlen)

	colors, err := sans.NewColorSet(s.n)
	if err != nil {
		return Annotation{}, err
	}
	var bit int
	words := make([]uint64, 0, nwords)
	for uint64(len(words)) < nwords {
		ctrl, err := s.r.ReadByte()
		if err != nil {
			return Annotation{}, ErrTruncated
		}
		l1, l2 := ctrlByteLengths(ctrl)
		pairBuf := make([]byte, int(l1+l2))
		if _, err := io.ReadFull(s.r, pairBuf); err != nil {
			return Annotation{}, ErrTruncated
		}
		pair, _ := Uint64s(ctrl, pairBuf)
		words = append(words, pair[0], pair[1])
	}
	for _, word := range words[:nwords] {
		for i := 0; i < 64 && bit < s.n; i++ {
			if word&(1<<uint(i)) != 0 {
				colors.Set(bit)
			}
			bit++
		}
	}

	return Annotation{Kmer: kmer, Colors: colors}, nil
}

// WriteBifrostLikeRecord appends one Annotation to w in the format
// NewBifrostLikeSource reads, without the leading file magic (callers
// write that once via WriteBifrostLikeHeader).
func WriteBifrostLikeRecord(w io.Writer, kmer []byte, colors sans.ColorSet) error {
	if len(kmer) > 255 {
		return errors.New("cdbg: k-mer too long")
	}
	if _, err := w.Write([]byte{byte(len(kmer))}); err != nil {
		return err
	}
	if _, err := w.Write(kmer); err != nil {
		return err
	}

	n := colors.N()
	nwords := uint64((n + 63) / 64)
	vbuf := make([]byte, 8)
	vlen := encodeWordCount(vbuf, nwords)
	if _, err := w.Write([]byte{byte(vlen)}); err != nil {
		return err
	}
	if _, err := w.Write(vbuf[:vlen]); err != nil {
		return err
	}

	words := make([]uint64, nwords)
	for i := 0; i < n; i++ {
		if colors.Test(i) {
			words[i/64] |= 1 << uint(i%64)
		}
	}
	if nwords%2 == 1 {
		words = append(words, 0)
	}
	pbuf := make([]byte, 16)
	for i := 0; i < len(words); i += 2 {
		ctrl, plen := PutUint64s(pbuf, words[i], words[i+1])
		if _, err := w.Write([]byte{ctrl}); err != nil {
			return err
		}
		if _, err := w.Write(pbuf[:plen]); err != nil {
			return err
		}
	}
	return nil
}

// WriteBifrostLikeHeader writes the magic bytes NewBifrostLikeSource
// expects at the start of a stream.
func WriteBifrostLikeHeader(w io.Writer) error {
	_, err := w.Write(bifrostLikeMagic[:])
	return err
}

// Load drains src into orc, one SubmitGraphRecord call per Annotation.
func Load(orc *sans.Orchestrator, src Source) error {
	for {
		ann, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := orc.SubmitGraphRecord(ann.Kmer, ann.Colors); err != nil {
			return err
		}
	}
}
