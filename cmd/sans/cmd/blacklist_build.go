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
	"github.com/kcri-tz/sans-go/internal/genome"
)

var blacklistCmd = &cobra.Command{
	Use:   "blacklist",
	Short: "build and inspect k-mer blacklists",
}

var blacklistBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "extract k-mers from mask genomes into a blacklist snapshot",
	Long: `build runs the same k-mer extractor "sans run" uses over a set of
"mask" genomes (e.g. known contaminants, low-complexity regions) and
writes every distinct canonical k-mer seen to a binary snapshot. Pass
the resulting file to "sans run"'s -B/--blacklist flag to exclude those
k-mers from index submission.`,
	Run: func(cmd *cobra.Command, args []string) {
		infileList := getFlagString(cmd, "infile-list")
		files, err := genome.ResolveInputs(args, infileList)
		checkError(err)

		k := getFlagPositiveInt(cmd, "kmer")
		outPath := getFlagString(cmd, "output")
		if outPath == "" {
			checkError(fmt.Errorf("blacklist build requires -o/--output FILE"))
		}

		builder := sans.NewBlacklistBuilder(k)
		for _, f := range files {
			ext, err := builder.NewExtractor()
			checkError(err)
			err = genome.EachRecord(f, func(seq []byte) error {
				ext.Feed(seq)
				ext.Reset()
				return nil
			})
			checkError(errors.Wrapf(err, "reading %s", f))
		}

		out, err := xopen.Wopen(outPath)
		checkError(errors.Wrap(err, "opening blacklist output"))
		defer out.Close()

		checkError(builder.Write(out))
		log.Infof("wrote %d blacklisted k-mers to %s", builder.Len(), outPath)
	},
}

func init() {
	RootCmd.AddCommand(blacklistCmd)
	blacklistCmd.AddCommand(blacklistBuildCmd)

	blacklistBuildCmd.Flags().StringP("infile-list", "i", "", "file of mask genome files, one per line")
	blacklistBuildCmd.Flags().IntP("kmer", "k", 31, "k-mer length")
	blacklistBuildCmd.Flags().StringP("output", "o", "", "blacklist snapshot output file")
}
