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
	"fmt"
	"io"

	"github.com/shenwei356/bio/seqio/fastx"
)

// EachRecord calls fn with the raw sequence bytes of every FASTA/FASTQ
// record in path, gzip/bzip2/xz transparently handled by fastx.Reader
// the same way every unikmer/cmd subcommand reads its inputs.
func EachRecord(path string, fn func(seq []byte) error) error {
	r, err := fastx.NewDefaultReader(path)
	if err != nil {
		return fmt.Errorf("genome: opening %s: %w", path, err)
	}
	for {
		record, err := r.Read()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("genome: reading %s: %w", path, err)
		}
		if err := fn(record.Seq.Seq); err != nil {
			return err
		}
	}
}
