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
	"sync"
)

// Config bundles every knob of a single run. It replaces the global
// mutable state the original program keeps in file-scope statics
// (color_t::n, the shard vector, the split multimap) with one value an
// Orchestrator owns outright — spec.md §9's REDESIGN FLAG — the same
// shape as the teacher's Options struct (unikmer/cmd/util.go) but
// generalized from "bag of CLI flags" to "owner of the run's mutable
// state".
type Config struct {
	K                 int
	Amino             bool
	N                 int
	WindowSize        int
	AllowIUPAC        bool
	NoRevComp         bool
	Quality           int
	Mean              Mean
	Top               int
	IncludeSingletons bool
	Threads           int
	// KeepSequences enables -S/--sequences representative-sequence
	// tracking (spec.md §4.17): one example k-mer string is retained
	// per canonical k-mer key (the first one submitted) for FASTA-mode
	// split output.
	KeepSequences bool

	// Progress, if non-nil, receives human-readable progress messages.
	// cmd/sans wires this to its go-logging logger; the library itself
	// never imports a logging package, matching spec.md's requirement
	// that the core stays independent of its CLI shell.
	Progress func(format string, args ...interface{})
}

func (c Config) validate() error {
	if c.N <= 0 || c.N > MaxColors {
		return NewConfigError("N out of range", ErrNOverflow)
	}
	if c.K <= 0 {
		return NewConfigError("K must be positive", nil)
	}
	switch c.Mean {
	case MeanArith, MeanGeom, MeanGeom2, "":
	default:
		return NewConfigError(fmt.Sprintf("unknown mean %q", c.Mean), nil)
	}
	return nil
}

func (c Config) log(format string, args ...interface{}) {
	if c.Progress != nil {
		c.Progress(format, args...)
	}
}

// Orchestrator drives one run end to end: k-mer extraction and
// submission, color-table aggregation, split ranking, compatibility
// filtering and tree construction.
type Orchestrator struct {
	cfg    Config
	names  []string
	index  *Index
	table  *ColorTable
	splits []*Split

	reprMu sync.Mutex
	repr   map[wordKey]string
}

// NewOrchestrator validates cfg and allocates the shard table. names
// must have length cfg.N; names[i] is genome i's display name.
func NewOrchestrator(cfg Config, names []string) (*Orchestrator, error) {
	if cfg.Mean == "" {
		cfg.Mean = MeanGeom2
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(names) != cfg.N {
		return nil, NewConfigError("len(names) != N", nil)
	}
	o := &Orchestrator{
		cfg:   cfg,
		names: names,
		index: NewIndex(cfg.N),
	}
	if cfg.KeepSequences {
		o.repr = make(map[wordKey]string)
	}
	return o, nil
}

// SetBlacklist installs a k-mer blacklist before any genome is
// processed (see Index.SetBlacklist).
func (o *Orchestrator) SetBlacklist(keys map[wordKey]struct{}) {
	o.index.SetBlacklist(keys)
}

// NewExtractorEmit builds the EmitFunc a DNAExtractor/AminoExtractor
// for genome `color` should use: it runs the configured quality
// filter and then submits surviving k-mers to the shard table.
func (o *Orchestrator) NewExtractorEmit(color int) EmitFunc {
	filter := NewQualityFilter(o.cfg.Quality)
	return func(key wordKey, seq string) {
		if !filter.Admit(key) {
			return
		}
		o.index.Submit(key, color)
		if o.repr != nil {
			o.reprMu.Lock()
			if _, ok := o.repr[key]; !ok {
				o.repr[key] = seq
			}
			o.reprMu.Unlock()
		}
	}
}

// RepresentativeSequence returns the k-mer string first observed for
// the given canonical k-mer key, if KeepSequences was enabled. The map
// is keyed by k-mer, not by colorset.
func (o *Orchestrator) RepresentativeSequence(key wordKey) (string, bool) {
	if o.repr == nil {
		return "", false
	}
	o.reprMu.Lock()
	defer o.reprMu.Unlock()
	s, ok := o.repr[key]
	return s, ok
}

// SubmitGraphRecord ingests one pre-built colored de Bruijn graph
// record (spec.md §4.14): kmer is the raw nucleotide k-mer as read
// from the graph, colors is the set of genomes it was already observed
// in. The k-mer is canonicalized exactly as the extractor would and
// submitted once per set bit in colors, bypassing sequence extraction
// entirely.
func (o *Orchestrator) SubmitGraphRecord(kmer []byte, colors ColorSet) error {
	k, err := NewDNAKmer(len(kmer))
	if err != nil {
		return err
	}
	for _, b := range kmer {
		code, err := EncodeDNABase(b)
		if err != nil {
			return err
		}
		k.ShiftLeft(code)
	}
	canon := k
	if !o.cfg.NoRevComp {
		canon = k.Canonical()
	}
	key := canon.Key()
	for i := 0; i < colors.N(); i++ {
		if colors.Test(i) {
			o.index.Submit(key, i)
		}
	}
	if o.repr != nil {
		o.reprMu.Lock()
		if _, ok := o.repr[key]; !ok {
			o.repr[key] = canon.String()
		}
		o.reprMu.Unlock()
	}
	return nil
}

// NewDNAExtractorFor builds a DNAExtractor wired to submit into this
// orchestrator's index under the given genome color.
func (o *Orchestrator) NewDNAExtractorFor(color int) (*DNAExtractor, error) {
	return NewDNAExtractor(ExtractorConfig{
		K:           o.cfg.K,
		WindowSize:  o.cfg.WindowSize,
		AllowIUPAC:  o.cfg.AllowIUPAC,
		IUPACBudget: DefaultIUPACBudget,
		NoRevComp:   o.cfg.NoRevComp,
	}, o.NewExtractorEmit(color))
}

// NewAminoExtractorFor builds an AminoExtractor wired the same way.
func (o *Orchestrator) NewAminoExtractorFor(color int) (*AminoExtractor, error) {
	return NewAminoExtractor(ExtractorConfig{
		K:           o.cfg.K,
		WindowSize:  o.cfg.WindowSize,
		AllowIUPAC:  o.cfg.AllowIUPAC,
		IUPACBudget: DefaultIUPACBudget,
	}, o.NewExtractorEmit(color))
}

// Aggregate folds the shard table into a ColorTable. Call once after
// every genome has been fed to its extractor.
func (o *Orchestrator) Aggregate() {
	o.cfg.log("aggregating %d live k-mers, %d singletons", o.index.LiveCount(), o.index.SingletonTotal())
	o.table = NewColorTable(o.cfg.N)
	o.table.BuildFromIndex(o.index, o.cfg.IncludeSingletons)
}

// RankSplits scores every aggregated split and keeps the top cfg.Top,
// returning them sorted by descending score.
func (o *Orchestrator) RankSplits() []*Split {
	list := NewSplitList(o.cfg.Top)
	o.table.Entries(func(colors ColorSet, w0, w1 float64) {
		score := Score(w0, w1, o.cfg.Mean)
		list.Add(colors, w0, w1, score)
	})
	o.splits = list.Sorted()
	o.cfg.log("ranked %d splits", len(o.splits))
	return o.splits
}

// Splits returns the most recent result of RankSplits.
func (o *Orchestrator) Splits() []*Split { return o.splits }

// LoadSplits installs a split list read directly from a splits file,
// bypassing index/aggregation entirely (spec.md §6, "Splits file
// input"). Filters and tree construction apply to it unchanged.
func (o *Orchestrator) LoadSplits(splits []*Split) { o.splits = splits }

// Names returns the configured genome display names, indexed by
// color.
func (o *Orchestrator) Names() []string { return o.names }

// FilterStrict returns the strictly compatible subset of o.Splits().
func (o *Orchestrator) FilterStrict() []*Split { return FilterStrict(o.splits) }

// FilterWeakly returns the weakly compatible subset of o.Splits().
func (o *Orchestrator) FilterWeakly() []*Split { return FilterWeakly(o.splits) }

// FilterNTree partitions o.Splits() into n strictly compatible trees.
func (o *Orchestrator) FilterNTree(n int) [][]*Split { return FilterNTree(o.splits, n) }

// BuildTree builds a Newick tree from a strictly compatible split set
// (typically the result of FilterStrict).
func (o *Orchestrator) BuildTree(splits []*Split) (*Node, error) {
	return BuildTree(o.cfg.N, o.names, splits)
}
