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

// DefaultIUPACBudget bounds the combinatorial blowup of ambiguous-base
// expansion: once the number of live candidate k-mers for a window
// would exceed this, the window resets exactly as if an illegal
// character had been seen, rather than emitting a flood of low-quality
// k-mers from a single run of Ns.
const DefaultIUPACBudget = 8

// ExtractorConfig controls how DNAExtractor turns a raw sequence into
// submitted k-mer keys.
type ExtractorConfig struct {
	K int
	// WindowSize is the minimizer window length in k-mers. 0 or 1
	// disables minimizer selection: every k-mer is emitted.
	WindowSize int
	// AllowIUPAC enables ambiguous-base expansion. When false, any
	// non-ACGT(U) character is treated as illegal and resets the
	// window, matching the stricter original behavior.
	AllowIUPAC bool
	// IUPACBudget caps combinatorial expansion; 0 selects
	// DefaultIUPACBudget.
	IUPACBudget int
	// NoRevComp disables reverse-complement canonicalization
	// (-n/--norev): each DNA k-mer is submitted as observed instead of
	// as min(self, revcomp). Has no effect on AminoExtractor, which
	// never canonicalizes.
	NoRevComp bool
}

// EmitFunc receives each selected canonical k-mer key as the extractor
// scans a sequence, along with its string form — kept available here,
// before the caller reduces it to a bare wordKey, for the -S/--sequences
// representative-sequence output (spec.md §4.17).
type EmitFunc func(key wordKey, seq string)

// DNAExtractor turns one genome's sequence(s) into a stream of
// canonical k-mer keys, applying minimizer windowing and IUPAC
// ambiguity expansion. It is not safe for concurrent use — one
// extractor per goroutine, matching the per-genome worker layout in
// spec.md §5, the same granularity the teacher uses for one goroutine
// per input file in unikmer/cmd/count.go.
type DNAExtractor struct {
	cfg ExtractorConfig

	cands    []DNAKmer // live ambiguous-expansion candidates
	filled   int       // bases loaded into the (first) candidate so far
	position int       // 0-based position of the next incoming base

	// factors and product track the combined ambiguity multiplicity of
	// exactly the last K bases fed in, mirroring original_source's
	// iupac_calc: each base's multiplicity is pushed and multiplied in,
	// and once the queue holds more than K entries the oldest is popped
	// and divided back out, so a run of ambiguous bases outside the
	// current k-mer's window can never inflate the budget check.
	factors []int
	product float64

	minWin []minimizerEntry
	emit   EmitFunc
}

type minimizerEntry struct {
	pos int
	key wordKey
	seq string
}

// NewDNAExtractor builds an extractor for k-mers of length k, calling
// emit for each selected canonical key.
func NewDNAExtractor(cfg ExtractorConfig, emit EmitFunc) (*DNAExtractor, error) {
	if cfg.IUPACBudget <= 0 {
		cfg.IUPACBudget = DefaultIUPACBudget
	}
	if _, err := NewDNAKmer(cfg.K); err != nil {
		return nil, err
	}
	return &DNAExtractor{cfg: cfg, emit: emit, product: 1}, nil
}

// Reset clears rolling state between sequences (records) within a
// genome: k-mers never span a record boundary.
func (e *DNAExtractor) Reset() {
	e.cands = nil
	e.filled = 0
	e.position = 0
	e.factors = e.factors[:0]
	e.product = 1
	e.minWin = e.minWin[:0]
}

// Feed processes one sequence (already upper/lower-case IUPAC letters,
// as produced by FASTA/FASTQ parsing) base by base.
func (e *DNAExtractor) Feed(seq []byte) {
	for _, b := range seq {
		e.feedBase(b)
	}
}

func (e *DNAExtractor) feedBase(b byte) {
	codes, ok := resolveNucl(b)
	if !ok {
		e.hardReset()
		return
	}
	if len(codes) > 1 && !e.cfg.AllowIUPAC {
		e.hardReset()
		return
	}

	e.pushFactor(len(codes))
	if e.product > float64(e.cfg.IUPACBudget) {
		e.hardReset()
		return
	}

	if e.cands == nil {
		k, _ := NewDNAKmer(e.cfg.K)
		e.cands = []DNAKmer{k}
		e.filled = 0
	}

	next := make([]DNAKmer, 0, len(e.cands)*len(codes))
	for _, c := range e.cands {
		for _, code := range codes {
			nc := c.Clone()
			nc.ShiftLeft(code)
			next = append(next, nc)
		}
	}
	e.cands = dedupDNAKmers(next)
	if e.filled < e.cfg.K {
		e.filled++
	}
	e.position++

	if e.filled < e.cfg.K {
		return
	}

	for _, c := range e.cands {
		canon := c
		if !e.cfg.NoRevComp {
			canon = c.Canonical()
		}
		e.pushMinimizer(canon.Key(), canon.String())
	}
}

// pushFactor folds one more base's ambiguity multiplicity into the
// running product, aging out the oldest factor once more than K bases
// have been seen, per original_source's iupac_calc.
func (e *DNAExtractor) pushFactor(mult int) {
	e.factors = append(e.factors, mult)
	e.product *= float64(mult)
	if len(e.factors) > e.cfg.K {
		e.product /= float64(e.factors[0])
		e.factors = e.factors[1:]
	}
}

// dedupDNAKmers collapses candidates that have become bit-identical now
// that an ambiguous base outside the current k-mer window has rolled
// off, the way original_source's hash_set<kmer_t> does via emplace.
func dedupDNAKmers(cands []DNAKmer) []DNAKmer {
	if len(cands) < 2 {
		return cands
	}
	seen := make(map[wordKey]bool, len(cands))
	out := cands[:0]
	for _, c := range cands {
		key := c.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

func (e *DNAExtractor) hardReset() {
	e.cands = nil
	e.filled = 0
	e.factors = e.factors[:0]
	e.product = 1
	e.minWin = e.minWin[:0]
	// position keeps advancing; it only tracks stream offset for the
	// minimizer window, which is itself discarded on reset.
}

// pushMinimizer implements the sliding-window minimum over raw k-mer
// values the way the teacher's sketch.go NewMinimizerSketch does: a
// monotone deque keyed by value with oldest-position eviction. Once the
// window is full, the current minimum is emitted at every position, so
// a k-mer that stays the minimum is emitted once per position; repeats
// are not suppressed. With WindowSize<=1 every k-mer is simply emitted.
func (e *DNAExtractor) pushMinimizer(key wordKey, seq string) {
	if e.cfg.WindowSize <= 1 {
		e.emit(key, seq)
		return
	}

	entry := minimizerEntry{pos: e.position, key: key, seq: seq}

	// evict entries that fell out of the window and anything at the
	// back of the deque no smaller than the incoming value (they can
	// never again be the minimum while entry is in the window).
	cutoff := e.position - e.cfg.WindowSize
	lo := 0
	for lo < len(e.minWin) && e.minWin[lo].pos <= cutoff {
		lo++
	}
	e.minWin = e.minWin[lo:]

	hi := len(e.minWin)
	for hi > 0 && !wordKeyLess(e.minWin[hi-1].key, entry.key) {
		hi--
	}
	e.minWin = append(e.minWin[:hi], entry)

	if e.position < e.cfg.WindowSize {
		return
	}
	e.emit(e.minWin[0].key, e.minWin[0].seq)
}

func wordKeyLess(a, b wordKey) bool {
	for i := maxWords - 1; i >= 0; i-- {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// AminoExtractor is the protein analogue of DNAExtractor: no
// canonicalization (protein splits are directional) and no reverse
// complement, otherwise the same windowing/IUPAC-budget shape.
type AminoExtractor struct {
	cfg ExtractorConfig

	cands    []AminoKmer
	filled   int
	position int

	factors []int
	product float64

	minWin []minimizerEntry
	emit   EmitFunc
}

// NewAminoExtractor builds an amino-acid extractor for k-mers of
// length k.
func NewAminoExtractor(cfg ExtractorConfig, emit EmitFunc) (*AminoExtractor, error) {
	if cfg.IUPACBudget <= 0 {
		cfg.IUPACBudget = DefaultIUPACBudget
	}
	if _, err := NewAminoKmer(cfg.K); err != nil {
		return nil, err
	}
	return &AminoExtractor{cfg: cfg, emit: emit, product: 1}, nil
}

func (e *AminoExtractor) Reset() {
	e.cands = nil
	e.filled = 0
	e.position = 0
	e.factors = e.factors[:0]
	e.product = 1
	e.minWin = e.minWin[:0]
}

func (e *AminoExtractor) Feed(seq []byte) {
	for _, b := range seq {
		e.feedResidue(b)
	}
}

func (e *AminoExtractor) feedResidue(b byte) {
	codes, ok := ResolveAminoResidue(b)
	if !ok {
		e.hardReset()
		return
	}
	if len(codes) > 1 && !e.cfg.AllowIUPAC {
		e.hardReset()
		return
	}

	e.pushFactor(len(codes))
	if e.product > float64(e.cfg.IUPACBudget) {
		e.hardReset()
		return
	}

	if e.cands == nil {
		k, _ := NewAminoKmer(e.cfg.K)
		e.cands = []AminoKmer{k}
		e.filled = 0
	}

	next := make([]AminoKmer, 0, len(e.cands)*len(codes))
	for _, c := range e.cands {
		for _, code := range codes {
			nc := c.Clone()
			nc.ShiftLeft(code)
			next = append(next, nc)
		}
	}
	e.cands = dedupAminoKmers(next)
	if e.filled < e.cfg.K {
		e.filled++
	}
	e.position++
	if e.filled < e.cfg.K {
		return
	}
	for _, c := range e.cands {
		e.pushMinimizer(c.Key(), c.String())
	}
}

func (e *AminoExtractor) pushFactor(mult int) {
	e.factors = append(e.factors, mult)
	e.product *= float64(mult)
	if len(e.factors) > e.cfg.K {
		e.product /= float64(e.factors[0])
		e.factors = e.factors[1:]
	}
}

func dedupAminoKmers(cands []AminoKmer) []AminoKmer {
	if len(cands) < 2 {
		return cands
	}
	seen := make(map[wordKey]bool, len(cands))
	out := cands[:0]
	for _, c := range cands {
		key := c.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

func (e *AminoExtractor) hardReset() {
	e.cands = nil
	e.filled = 0
	e.factors = e.factors[:0]
	e.product = 1
	e.minWin = e.minWin[:0]
}

func (e *AminoExtractor) pushMinimizer(key wordKey, seq string) {
	if e.cfg.WindowSize <= 1 {
		e.emit(key, seq)
		return
	}
	entry := minimizerEntry{pos: e.position, key: key, seq: seq}
	cutoff := e.position - e.cfg.WindowSize
	lo := 0
	for lo < len(e.minWin) && e.minWin[lo].pos <= cutoff {
		lo++
	}
	e.minWin = e.minWin[lo:]
	hi := len(e.minWin)
	for hi > 0 && !wordKeyLess(e.minWin[hi-1].key, entry.key) {
		hi--
	}
	e.minWin = append(e.minWin[:hi], entry)
	if e.position < e.cfg.WindowSize {
		return
	}
	e.emit(e.minWin[0].key, e.minWin[0].seq)
}
