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
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// WriteSplitsTSV writes splits, one per line, as
// "score\tweight0\tweight1\tname1,name2,...". The name list is the
// canonical (smaller, or bit-0-clear on ties) side of the
// bipartition, per spec.md §6.
func WriteSplitsTSV(w io.Writer, splits []*Split, names []string) error {
	bw := bufio.NewWriter(w)
	for _, s := range splits {
		side := sideNames(s.Colors, names)
		_, err := fmt.Fprintf(bw, "%s\t%s\t%s\t%s\n",
			formatBranchLength(s.Score), formatBranchLength(s.Weight0), formatBranchLength(s.Weight1),
			strings.Join(side, ","))
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteSplitsFASTA writes splits as FASTA records instead of TSV,
// restoring original_source/src/TopSplits.cpp's
// `--output-sequences`/`printSplits` behavior (spec.md §4.17): each
// record's header carries the score and side, and the body is the
// representative k-mer sequence recorded by the orchestrator, when
// one was kept.
func WriteSplitsFASTA(w io.Writer, splits []*Split, names []string, repr func(ColorSet) (string, bool)) error {
	bw := bufio.NewWriter(w)
	for i, s := range splits {
		side := sideNames(s.Colors, names)
		seq, ok := repr(s.Colors)
		if !ok {
			seq = ""
		}
		if _, err := fmt.Fprintf(bw, ">split_%d score=%s colors=%s\n%s\n",
			i, formatBranchLength(s.Score), strings.Join(side, ","), seq); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteCoreKmersFASTA writes one FASTA record per entry, used to dump
// the representative sequences of the full-coverage ("core genome")
// colorset.
func WriteCoreKmersFASTA(w io.Writer, records map[string]string) error {
	bw := bufio.NewWriter(w)
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(bw, ">%s\n%s\n", k, records[k]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteNewick writes a single Newick tree, terminated by a trailing
// newline.
func WriteNewick(w io.Writer, root *Node, withSupport bool) error {
	_, err := fmt.Fprintln(w, root.Newick(withSupport))
	return err
}

func sideNames(colors ColorSet, names []string) []string {
	out := make([]string, 0, colors.PopCount())
	for i := 0; i < colors.N(); i++ {
		if colors.Test(i) {
			out = append(out, names[i])
		}
	}
	return out
}

// ReadSplitsTSV parses the format WriteSplitsTSV produces, resolving
// side names back to colorset bits against the given name list — used
// by `sans splits info` and `sans bootstrap` to reload a previous
// run's splits file (spec.md §6, "Splits file input").
func ReadSplitsTSV(r io.Reader, names []string) ([]*Split, error) {
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}

	var splits []*Split
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 4 {
			return nil, NewInputError("splits", fmt.Errorf("line %d: expected 4 tab-separated fields, got %d", lineNo, len(fields)))
		}
		score, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, NewInputError("splits", fmt.Errorf("line %d: bad score: %w", lineNo, err))
		}
		w0, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, NewInputError("splits", fmt.Errorf("line %d: bad weight0: %w", lineNo, err))
		}
		w1, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, NewInputError("splits", fmt.Errorf("line %d: bad weight1: %w", lineNo, err))
		}
		cs, err := NewColorSet(len(names))
		if err != nil {
			return nil, err
		}
		for _, name := range strings.Split(fields[3], ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			idx, ok := index[name]
			if !ok {
				return nil, NewInputError("splits", fmt.Errorf("line %d: unknown genome name %q", lineNo, name))
			}
			cs.Set(idx)
		}
		splits = append(splits, &Split{Colors: cs, Weight0: w0, Weight1: w1, Score: score})
	}
	if err := sc.Err(); err != nil {
		return nil, NewInputError("splits", err)
	}
	return splits, nil
}
