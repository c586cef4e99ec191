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

// Package genome resolves a run's input list into an ordered set of
// genomes, each assigned the color index an Orchestrator expects.
package genome

import "fmt"

// Genome names one input assigned a fixed color in the run.
type Genome struct {
	Color int
	Name  string
	Path  string
}

// Set is an ordered, immutable list of genomes. Color i is always
// Genomes[i].Color == i; the type exists so callers can't accidentally
// reorder the slice without also relabeling colors.
type Set struct {
	Genomes []Genome
}

// Names returns the display names in color order, the shape
// sans.NewOrchestrator wants.
func (s Set) Names() []string {
	names := make([]string, len(s.Genomes))
	for i, g := range s.Genomes {
		names[i] = g.Name
	}
	return names
}

// NewSet assigns colors 0..len(paths)-1 in order. names, if non-nil,
// must have the same length and overrides the display name derived
// from each path; otherwise the path itself is used.
func NewSet(paths []string, names []string) (Set, error) {
	if names != nil && len(names) != len(paths) {
		return Set{}, fmt.Errorf("genome: %d names given for %d paths", len(names), len(paths))
	}
	if len(paths) == 0 {
		return Set{}, fmt.Errorf("genome: no input genomes given")
	}
	genomes := make([]Genome, len(paths))
	for i, p := range paths {
		name := p
		if names != nil {
			name = names[i]
		}
		genomes[i] = Genome{Color: i, Name: name, Path: p}
	}
	return Set{Genomes: genomes}, nil
}
