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
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"
)

// BlacklistMainVersion is the binary format's main version.
const BlacklistMainVersion uint8 = 1

// BlacklistMinorVersion is the binary format's minor version.
const BlacklistMinorVersion uint8 = 0

// blacklistMagic identifies a k-mer blacklist snapshot, written by
// "sans blacklist build" and consumed by Index.SetBlacklist, restoring
// the teacher's .unik header layout (file.go/serialization.go) to a
// new record: a flat stream of wordKeys instead of KmerCodes.
var blacklistMagic = [8]byte{'.', 's', 'a', 'n', 's', 'b', 'l', '.'}

// ErrInvalidBlacklistFormat means the magic number or version field
// didn't match.
var ErrInvalidBlacklistFormat = errors.New("sans: invalid blacklist file format")

var blacklistByteOrder = binary.BigEndian

// BlacklistHeader carries the k-mer size and word count the blacklist
// was built with, so a reader can reject a mismatched run before
// wasting time loading it.
type BlacklistHeader struct {
	MainVersion  uint8
	MinorVersion uint8
	K            uint8
	Words        uint8
}

func (h BlacklistHeader) String() string {
	return fmt.Sprintf("sans blacklist v%d.%d, K=%d, words=%d", h.MainVersion, h.MinorVersion, h.K, h.Words)
}

// BlacklistWriter streams wordKeys to an on-disk snapshot.
type BlacklistWriter struct {
	BlacklistHeader
	w           *bufio.Writer
	wroteHeader bool
	buf         [8]byte
}

// NewBlacklistWriter creates a BlacklistWriter. k and words are
// recorded in the header for later validation; words is the number of
// leading wordKey slots that are meaningful (1 for K<=32 DNA k-mers,
// up to maxWords otherwise).
func NewBlacklistWriter(w io.Writer, k int, words int) (*BlacklistWriter, error) {
	if words < 1 || words > maxWords {
		return nil, NewConfigError("words out of range", nil)
	}
	return &BlacklistWriter{
		BlacklistHeader: BlacklistHeader{
			MainVersion:  BlacklistMainVersion,
			MinorVersion: BlacklistMinorVersion,
			K:            uint8(k),
			Words:        uint8(words),
		},
		w: bufio.NewWriter(w),
	}, nil
}

func (bw *BlacklistWriter) writeHeader() error {
	if _, err := bw.w.Write(blacklistMagic[:]); err != nil {
		return err
	}
	meta := [4]uint8{bw.MainVersion, bw.MinorVersion, bw.K, bw.Words}
	_, err := bw.w.Write(meta[:])
	return err
}

// Write appends one wordKey to the stream, writing the header first if
// this is the first call.
func (bw *BlacklistWriter) Write(key wordKey) error {
	if !bw.wroteHeader {
		if err := bw.writeHeader(); err != nil {
			return err
		}
		bw.wroteHeader = true
	}
	for i := 0; i < int(bw.Words); i++ {
		blacklistByteOrder.PutUint64(bw.buf[:], key[i])
		if _, err := bw.w.Write(bw.buf[:]); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes buffered output, writing an empty header if no keys
// were ever written.
func (bw *BlacklistWriter) Flush() error {
	if !bw.wroteHeader {
		if err := bw.writeHeader(); err != nil {
			return err
		}
		bw.wroteHeader = true
	}
	return bw.w.Flush()
}

// BlacklistReader reads a snapshot written by BlacklistWriter.
type BlacklistReader struct {
	BlacklistHeader
	r   *bufio.Reader
	buf [8]byte
}

// NewBlacklistReader opens r and validates its header.
func NewBlacklistReader(r io.Reader) (*BlacklistReader, error) {
	br := &BlacklistReader{r: bufio.NewReader(r)}
	var m [8]byte
	if _, err := io.ReadFull(br.r, m[:]); err != nil {
		return nil, err
	}
	if m != blacklistMagic {
		return nil, ErrInvalidBlacklistFormat
	}
	var meta [4]uint8
	if _, err := io.ReadFull(br.r, meta[:]); err != nil {
		return nil, err
	}
	if meta[0] != BlacklistMainVersion {
		return nil, ErrInvalidBlacklistFormat
	}
	br.MainVersion, br.MinorVersion, br.K, br.Words = meta[0], meta[1], meta[2], meta[3]
	if br.Words < 1 || int(br.Words) > maxWords {
		return nil, ErrInvalidBlacklistFormat
	}
	return br, nil
}

// Read returns the next wordKey, or io.EOF when the stream is
// exhausted.
func (br *BlacklistReader) Read() (wordKey, error) {
	var key wordKey
	for i := 0; i < int(br.Words); i++ {
		if _, err := io.ReadFull(br.r, br.buf[:]); err != nil {
			if err == io.ErrUnexpectedEOF {
				return key, io.ErrUnexpectedEOF
			}
			return key, err
		}
		key[i] = blacklistByteOrder.Uint64(br.buf[:])
	}
	return key, nil
}

// ReadAll drains a BlacklistReader into a set suitable for
// Index.SetBlacklist/Orchestrator.SetBlacklist.
func ReadAll(br *BlacklistReader) (map[wordKey]struct{}, error) {
	set := make(map[wordKey]struct{})
	for {
		key, err := br.Read()
		if err == io.EOF {
			return set, nil
		}
		if err != nil {
			return nil, err
		}
		set[key] = struct{}{}
	}
}

// WriteBlacklist writes every key in keys to w as a new blacklist
// snapshot.
func WriteBlacklist(w io.Writer, k, words int, keys map[wordKey]struct{}) error {
	bw, err := NewBlacklistWriter(w, k, words)
	if err != nil {
		return err
	}
	for key := range keys {
		if err := bw.Write(key); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// wordsForKmerLen returns how many leading wordKey slots a K-length DNA
// k-mer needs (2 bits/base), capped at maxWords.
func wordsForKmerLen(k int) int {
	words := (k*2 + 63) / 64
	if words < 1 {
		words = 1
	}
	if words > maxWords {
		words = maxWords
	}
	return words
}

// BlacklistBuilder drives one or more DNAExtractors into a shared
// k-mer set for "sans blacklist build" — the CLI only ever sees a
// *DNAExtractor and a Write call, never the underlying wordKey type.
type BlacklistBuilder struct {
	k     int
	words int
	mu    sync.Mutex
	keys  map[wordKey]struct{}
}

// NewBlacklistBuilder allocates a builder for K-length DNA k-mers.
func NewBlacklistBuilder(k int) *BlacklistBuilder {
	return &BlacklistBuilder{k: k, words: wordsForKmerLen(k), keys: make(map[wordKey]struct{})}
}

// NewExtractor returns a DNAExtractor whose output feeds this
// builder's set. Safe to call once per input genome and run
// concurrently across the returned extractors.
func (b *BlacklistBuilder) NewExtractor() (*DNAExtractor, error) {
	return NewDNAExtractor(ExtractorConfig{
		K:           b.k,
		WindowSize:  1,
		IUPACBudget: DefaultIUPACBudget,
	}, func(key wordKey, _ string) {
		b.mu.Lock()
		b.keys[key] = struct{}{}
		b.mu.Unlock()
	})
}

// Len returns the number of distinct k-mers accumulated so far.
func (b *BlacklistBuilder) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.keys)
}

// Write flushes the accumulated set to w as a blacklist snapshot.
func (b *BlacklistBuilder) Write(w io.Writer) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return WriteBlacklist(w, b.k, b.words, b.keys)
}
