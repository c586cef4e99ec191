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

package genome

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/shenwei356/util/pathutil"
)

// ReadFileList reads one path per line from path (blank lines and
// "#"-prefixed lines skipped), the same "-i/--infile-list" convention
// unikmer/cmd's subcommands use for large input sets that don't fit on
// a command line.
func ReadFileList(path string) ([]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("genome: reading file list: %w", err)
	}
	defer fh.Close()

	var files []string
	sc := bufio.NewScanner(fh)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		files = append(files, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("genome: reading file list: %w", err)
	}
	return files, nil
}

// ResolveInputs builds the final ordered path list from positional args
// or an optional file-list flag, verifying every path exists. When a
// file list is given, its paths replace the positional args (they are
// not merged). infileList == "" means no -i/--infile-list flag was given.
func ResolveInputs(args []string, infileList string) ([]string, error) {
	files := args
	if infileList != "" {
		listed, err := ReadFileList(infileList)
		if err != nil {
			return nil, err
		}
		files = listed
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("genome: no input files given")
	}
	for _, f := range files {
		if f == "-" {
			continue
		}
		ok, err := pathutil.Exists(f)
		if err != nil {
			return nil, fmt.Errorf("genome: checking %s: %w", f, err)
		}
		if !ok {
			return nil, fmt.Errorf("genome: input file not found: %s", f)
		}
	}
	return files, nil
}
