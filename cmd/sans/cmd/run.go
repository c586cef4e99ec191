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

package cmd

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	logging "github.com/shenwei356/go-logging"
	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"

	sans "github.com/kcri-tz/sans-go"
	"github.com/kcri-tz/sans-go/internal/cdbg"
	"github.com/kcri-tz/sans-go/internal/genome"
	"github.com/kcri-tz/sans-go/internal/translate"
)

var log = logging.MustGetLogger("sans")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "infer phylogenomic splits from a set of genomes",
	Long: `run infers a weighted set of phylogenomic splits directly from raw
genomes: k-mers are extracted from every input, aggregated across
genomes into bipartitions, scored, optionally filtered for tree
compatibility, and written out as a TSV splits file and/or a Newick
tree.`,
	Run: func(cmd *cobra.Command, args []string) {
		runSANS(cmd, args)
	},
}

func init() {
	RootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("infile-list", "i", "", "file of input genome files, one per line")
	runCmd.Flags().StringP("splits", "s", "", "load a previously written TSV splits file instead of extracting k-mers")
	runCmd.Flags().StringP("output", "o", "", "TSV splits output file (default stdout)")
	runCmd.Flags().StringP("newick", "N", "", "Newick tree output file, requires a compatibility filter")
	runCmd.Flags().IntP("kmer", "k", 0, "k-mer length (default 31 nucleotide, 10 amino)")
	runCmd.Flags().IntP("window", "w", 1, "minimizer window size, in k-mers")
	runCmd.Flags().StringP("top", "t", "1000", "top list size; a trailing 'n' multiplies by genome count (e.g. 10n)")
	runCmd.Flags().StringP("mean", "m", "geom2", "scoring mean: arith, geom or geom2")
	runCmd.Flags().StringP("filter", "f", "", "compatibility filter: strict, weakly, or N-tree (e.g. 2tree)")
	runCmd.Flags().IntP("iupac", "x", sans.DefaultIUPACBudget, "IUPAC ambiguity expansion: any value > 0 enables it, 0 disables it; the budget is always sans.DefaultIUPACBudget, whatever the value")
	runCmd.Flags().IntP("qualify", "q", 1, "coverage quality threshold")
	runCmd.Flags().BoolP("norev", "n", false, "disable reverse-complement canonicalization")
	runCmd.Flags().BoolP("amino", "a", false, "treat input as amino-acid sequence (implies --norev)")
	runCmd.Flags().StringP("code", "c", "", "translate DNA via NCBI genetic code table ID before k-merizing (an ID is required: 1 selects the standard table, any other ID table 11; no translation when not given)")
	runCmd.Flags().BoolP("sequences", "S", false, "keep a representative sequence per split and write FASTA instead of TSV")
	runCmd.Flags().BoolP("singletons", "", false, "include singleton (trivial) splits in the ranked output")
	runCmd.Flags().StringP("blacklist", "B", "", "exclude k-mers listed in a blacklist snapshot (see 'sans blacklist build')")
	runCmd.Flags().StringP("graph", "g", "", "load a pre-built colored de Bruijn graph instead of extracting k-mers from genomes")
	runCmd.Flags().StringSlice("graph-names", nil, "genome names in color order, comma separated (required with -g/--graph)")
}

func runSANS(cmd *cobra.Command, args []string) {
	verbose := getFlagBool(cmd, "verbose")
	threads := getFlagPositiveInt(cmd, "threads")
	runtime.GOMAXPROCS(threads)

	graphPath := getFlagString(cmd, "graph")

	var files []string
	var genomes genome.Set
	var names []string
	if graphPath != "" {
		names = getFlagStringSlice(cmd, "graph-names")
		if len(names) == 0 {
			checkError(fmt.Errorf("-g/--graph requires --graph-names"))
		}
	} else {
		infileList := getFlagString(cmd, "infile-list")
		var err error
		files, err = genome.ResolveInputs(args, infileList)
		checkError(err)

		genomes, err = genome.NewSet(files, nil)
		checkError(err)
		names = genomes.Names()
	}

	amino := getFlagBool(cmd, "amino")
	k := getFlagInt(cmd, "kmer")
	if k == 0 {
		if amino {
			k = 10
		} else {
			k = 31
		}
	}

	var codeTable *translate.Table
	if code := getFlagString(cmd, "code"); code != "" {
		id, err := strconv.Atoi(code)
		checkError(errors.Wrap(err, "parsing --code"))
		codeTable = translate.ByID(id)
	}

	top, err := parseTop(getFlagString(cmd, "top"), len(names))
	checkError(err)

	mean := sans.Mean(getFlagString(cmd, "mean"))

	cfg := sans.Config{
		K:                 k,
		Amino:             amino,
		N:                 len(names),
		WindowSize:        getFlagPositiveInt(cmd, "window"),
		AllowIUPAC:        getFlagInt(cmd, "iupac") > 0,
		NoRevComp:         getFlagBool(cmd, "norev") || amino,
		Quality:           getFlagPositiveInt(cmd, "qualify"),
		Mean:              mean,
		Top:               top,
		IncludeSingletons: getFlagBool(cmd, "singletons"),
		Threads:           threads,
		KeepSequences:     getFlagBool(cmd, "sequences"),
	}
	if verbose {
		cfg.Progress = func(format string, args ...interface{}) { log.Infof(format, args...) }
	}

	orc, err := sans.NewOrchestrator(cfg, names)
	checkError(err)

	if blPath := getFlagString(cmd, "blacklist"); blPath != "" {
		loadBlacklist(orc, blPath)
	}

	var splits []*sans.Split
	switch {
	case graphPath != "":
		loadGraph(orc, graphPath, len(names))
		orc.Aggregate()
		splits = orc.RankSplits()
	case getFlagString(cmd, "splits") != "":
		splits = loadSplitsFile(orc, getFlagString(cmd, "splits"))
		orc.LoadSplits(splits)
	default:
		extractGenomes(orc, genomes, amino, codeTable)
		orc.Aggregate()
		splits = orc.RankSplits()
	}

	var tree *sans.Node
	filterName := getFlagString(cmd, "filter")
	if filterName != "" {
		filtered := applyFilter(orc, filterName)
		if newickPath := getFlagString(cmd, "newick"); newickPath != "" {
			tree, err = orc.BuildTree(filtered)
			checkError(err)
		}
		splits = filtered
	}

	writeOutputs(cmd, orc, splits, tree)
}

func parseTop(spec string, n int) (int, error) {
	spec = strings.TrimSpace(spec)
	if strings.HasSuffix(spec, "n") || strings.HasSuffix(spec, "N") {
		base, err := strconv.Atoi(spec[:len(spec)-1])
		if err != nil {
			return 0, fmt.Errorf("invalid --top value %q: %w", spec, err)
		}
		return base * n, nil
	}
	v, err := strconv.Atoi(spec)
	if err != nil {
		return 0, fmt.Errorf("invalid --top value %q: %w", spec, err)
	}
	return v, nil
}

func extractGenomes(orc *sans.Orchestrator, genomes genome.Set, amino bool, codeTable *translate.Table) {
	for _, g := range genomes.Genomes {
		extractOneGenome(orc, g, amino, codeTable)
	}
}

// extractOneGenome feeds one genome's records through the right
// extractor: translated-then-amino when --code is set without --amino,
// amino directly when --amino is set, otherwise plain DNA. Each
// FASTA/FASTQ record resets the rolling window, matching the original's
// per-sequence break in k-mer continuity.
func extractOneGenome(orc *sans.Orchestrator, g genome.Genome, amino bool, codeTable *translate.Table) {
	if codeTable != nil && !amino {
		ext, err := orc.NewAminoExtractorFor(g.Color)
		checkError(err)
		err = genome.EachRecord(g.Path, func(seq []byte) error {
			for _, frame := range codeTable.AllFrames(seq) {
				if len(frame) == 0 {
					continue
				}
				ext.Feed(frame)
				ext.Reset()
			}
			return nil
		})
		checkError(errors.Wrapf(err, "reading %s", g.Path))
		return
	}

	if amino {
		ext, err := orc.NewAminoExtractorFor(g.Color)
		checkError(err)
		err = genome.EachRecord(g.Path, func(seq []byte) error {
			ext.Feed(seq)
			ext.Reset()
			return nil
		})
		checkError(errors.Wrapf(err, "reading %s", g.Path))
		return
	}

	ext, err := orc.NewDNAExtractorFor(g.Color)
	checkError(err)
	err = genome.EachRecord(g.Path, func(seq []byte) error {
		ext.Feed(seq)
		ext.Reset()
		return nil
	})
	checkError(errors.Wrapf(err, "reading %s", g.Path))
}

func loadBlacklist(orc *sans.Orchestrator, path string) {
	fh, err := xopen.Ropen(path)
	checkError(errors.Wrapf(err, "opening blacklist %s", path))
	defer fh.Close()

	br, err := sans.NewBlacklistReader(fh)
	checkError(errors.Wrapf(err, "reading blacklist %s", path))

	keys, err := sans.ReadAll(br)
	checkError(err)
	orc.SetBlacklist(keys)
}

func loadGraph(orc *sans.Orchestrator, path string, n int) {
	fh, err := xopen.Ropen(path)
	checkError(errors.Wrapf(err, "opening graph %s", path))
	defer fh.Close()

	src, err := cdbg.NewBifrostLikeSource(fh, n)
	checkError(errors.Wrapf(err, "reading graph %s", path))

	checkError(cdbg.Load(orc, src))
}

func loadSplitsFile(orc *sans.Orchestrator, path string) []*sans.Split {
	fh, err := xopen.Ropen(path)
	checkError(errors.Wrapf(err, "opening splits file %s", path))
	defer fh.Close()

	splits, err := sans.ReadSplitsTSV(fh, orc.Names())
	checkError(err)
	return splits
}

func applyFilter(orc *sans.Orchestrator, name string) []*sans.Split {
	name = strings.ToLower(strings.TrimSpace(name))
	switch {
	case name == "strict":
		return orc.FilterStrict()
	case name == "weakly":
		return orc.FilterWeakly()
	case strings.HasSuffix(name, "tree"):
		nStr := strings.TrimSuffix(name, "tree")
		n, err := strconv.Atoi(nStr)
		checkError(errors.Wrapf(err, "invalid --filter value %q", name))
		trees := orc.FilterNTree(n)
		var out []*sans.Split
		for _, t := range trees {
			out = append(out, t...)
		}
		return out
	default:
		checkError(fmt.Errorf("unknown --filter value %q", name))
		return nil
	}
}

func writeOutputs(cmd *cobra.Command, orc *sans.Orchestrator, splits []*sans.Split, tree *sans.Node) {
	outPath := getFlagString(cmd, "output")
	var out *xopen.Writer
	var err error
	if outPath == "" {
		out, err = xopen.Wopen("-")
	} else {
		out, err = xopen.Wopen(outPath)
	}
	checkError(errors.Wrap(err, "opening splits output"))
	defer out.Close()

	if getFlagBool(cmd, "sequences") {
		err = sans.WriteSplitsFASTA(out, splits, orc.Names(), func(c sans.ColorSet) (string, bool) {
			return orc.RepresentativeSequence(c.Key())
		})
	} else {
		err = sans.WriteSplitsTSV(out, splits, orc.Names())
	}
	checkError(err)

	if newickPath := getFlagString(cmd, "newick"); newickPath != "" {
		if tree == nil {
			checkError(fmt.Errorf("--newick requires --filter strict/weakly/N-tree"))
		}
		nw, err := xopen.Wopen(newickPath)
		checkError(errors.Wrap(err, "opening newick output"))
		defer nw.Close()
		checkError(sans.WriteNewick(nw, tree, false))
	}
}
