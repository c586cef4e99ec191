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

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/shenwei356/stable"
	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"

	sans "github.com/kcri-tz/sans-go"
)

var splitsCmd = &cobra.Command{
	Use:   "splits",
	Short: "inspect a previously written splits file",
}

var splitsInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "print summary statistics for a TSV splits file",
	Long: `info reads a TSV splits file together with the genome name list it was
produced from, and prints a one-row summary table: split count, score
range, and mean split size (number of genomes on the smaller side).`,
	Run: func(cmd *cobra.Command, args []string) {
		splitsPath := getFlagString(cmd, "splits")
		if splitsPath == "" && len(args) > 0 {
			splitsPath = args[0]
		}
		if splitsPath == "" {
			checkError(fmt.Errorf("splits info requires -s/--splits FILE or a positional argument"))
		}
		names := getFlagStringSlice(cmd, "names")
		if len(names) == 0 {
			checkError(fmt.Errorf("splits info requires -N/--names to resolve split membership"))
		}

		fh, err := xopen.Ropen(splitsPath)
		checkError(errors.Wrapf(err, "opening %s", splitsPath))
		defer fh.Close()

		splits, err := sans.ReadSplitsTSV(fh, names)
		checkError(err)

		printSplitsSummary(splitsPath, names, splits)
	},
}

func init() {
	RootCmd.AddCommand(splitsCmd)
	splitsCmd.AddCommand(splitsInfoCmd)

	splitsInfoCmd.Flags().StringP("splits", "s", "", "TSV splits file")
	splitsInfoCmd.Flags().StringSliceP("names", "N", nil, "genome names in color order, comma separated")
}

func printSplitsSummary(path string, names []string, splits []*sans.Split) {
	style := &stable.TableStyle{
		Name:      "plain",
		HeaderRow: stable.RowStyle{Begin: "", Sep: "  ", End: ""},
		DataRow:   stable.RowStyle{Begin: "", Sep: "  ", End: ""},
		Padding:   "",
	}
	columns := []stable.Column{
		{Header: "file"},
		{Header: "genomes", Align: stable.AlignRight},
		{Header: "splits", Align: stable.AlignRight},
		{Header: "min-score", Align: stable.AlignRight},
		{Header: "max-score", Align: stable.AlignRight},
		{Header: "mean-split-size", Align: stable.AlignRight},
	}
	tbl := stable.New()
	tbl.HeaderWithFormat(columns)

	if len(splits) == 0 {
		tbl.AddRow([]interface{}{path, len(names), 0, "-", "-", "-"})
		fmt.Print(string(tbl.Render(style)))
		return
	}

	minScore, maxScore := splits[0].Score, splits[0].Score
	var sizeSum int
	for _, s := range splits {
		if s.Score < minScore {
			minScore = s.Score
		}
		if s.Score > maxScore {
			maxScore = s.Score
		}
		sizeSum += s.Colors.PopCount()
	}
	meanSize := float64(sizeSum) / float64(len(splits))

	tbl.AddRow([]interface{}{
		path,
		len(names),
		humanize.Comma(int64(len(splits))),
		fmt.Sprintf("%.6g", minScore),
		fmt.Sprintf("%.6g", maxScore),
		fmt.Sprintf("%.3g", meanSize),
	})
	fmt.Print(string(tbl.Render(style)))
}
