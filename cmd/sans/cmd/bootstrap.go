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

	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"

	sans "github.com/kcri-tz/sans-go"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "compute branch support for a strict-filtered splits file",
	Long: `bootstrap reads a TSV splits file, keeps its strictly compatible
subset, builds the tree from it once, and resamples each kept split's
weights via binomial draws on its direct/inverted counts. Each interior
branch is labelled with the fraction of replicates in which its split's
resampled score stayed above zero. The tree and the top list are not
rebuilt per replicate.`,
	Run: func(cmd *cobra.Command, args []string) {
		splitsPath := getFlagString(cmd, "splits")
		if splitsPath == "" {
			checkError(fmt.Errorf("bootstrap requires -s/--splits FILE"))
		}
		names := getFlagStringSlice(cmd, "names")
		if len(names) == 0 {
			checkError(fmt.Errorf("bootstrap requires -N/--names to resolve split membership"))
		}
		replicates := getFlagPositiveInt(cmd, "replicates")
		mean := sans.Mean(getFlagString(cmd, "mean"))
		threads := getFlagPositiveInt(cmd, "threads")
		seed := int64(getFlagPositiveInt(cmd, "seed"))

		fh, err := xopen.Ropen(splitsPath)
		checkError(errors.Wrapf(err, "opening %s", splitsPath))
		splits, err := sans.ReadSplitsTSV(fh, names)
		fh.Close()
		checkError(err)

		strict := sans.FilterStrict(splits)
		tree, err := sans.BuildTree(len(names), names, strict)
		checkError(err)

		results := sans.RunBootstrapParallel(strict, replicates, mean, threads, seed)
		sans.ApplyBootstrapSupport(tree, results)

		out, err := xopen.Wopen(getFlagString(cmd, "output"))
		checkError(errors.Wrap(err, "opening bootstrap output"))
		defer out.Close()
		checkError(sans.WriteNewick(out, tree, true))
	},
}

func init() {
	RootCmd.AddCommand(bootstrapCmd)

	bootstrapCmd.Flags().StringP("splits", "s", "", "TSV splits file (must be strictly compatible)")
	bootstrapCmd.Flags().StringSliceP("names", "N", nil, "genome names in color order, comma separated")
	bootstrapCmd.Flags().StringP("output", "o", "-", "Newick output file with support values")
	bootstrapCmd.Flags().IntP("replicates", "r", 100, "number of bootstrap replicates")
	bootstrapCmd.Flags().StringP("mean", "m", "geom2", "scoring mean: arith, geom or geom2")
	bootstrapCmd.Flags().IntP("seed", "", 1, "PRNG seed")
}
