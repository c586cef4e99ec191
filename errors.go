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

import "errors"

// ErrIllegalBase means a character outside the allowed alphabet was seen.
// It never escapes the extractor: it only resets the current window.
var ErrIllegalBase = errors.New("sans: illegal base or residue")

// ErrKOverflow means K is outside the compiled-in bounds for the
// selected kmer representation.
var ErrKOverflow = errors.New("sans: k-mer length out of range")

// ErrNOverflow means the color count exceeds the maximum supported by
// the compiled-in ColorSet representation.
var ErrNOverflow = errors.New("sans: color count out of range")

// ErrNotImplemented is returned by interface stubs for components the
// specification declares out of core scope (e.g. Newick rendering).
var ErrNotImplemented = errors.New("sans: not implemented")

// ConfigError wraps a configuration-time failure (flag validation,
// incompatible option combinations, too many genomes). Callers should
// exit with status 1.
type ConfigError struct {
	Msg string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return "sans: configuration error: " + e.Msg + ": " + e.Err.Error()
	}
	return "sans: configuration error: " + e.Msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError builds a ConfigError.
func NewConfigError(msg string, err error) *ConfigError {
	return &ConfigError{Msg: msg, Err: err}
}

// InputError wraps an unreadable or malformed input failure. Callers
// should exit with status 1.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return "sans: input error (" + e.Path + "): " + e.Err.Error()
}

func (e *InputError) Unwrap() error { return e.Err }

// NewInputError builds an InputError.
func NewInputError(path string, err error) *InputError {
	return &InputError{Path: path, Err: err}
}

// InvariantError marks a violation of a program invariant (e.g. tree
// refinement failing on a split set that was supposed to be strict
// compatible). It is a distinct type from configuration/input failures
// so callers can tell a real bug from bad input (e.g. via errors.As);
// cmd/sans exits with status 1 for it, as for every other error.
type InvariantError struct {
	Where string
	Msg   string
}

func (e *InvariantError) Error() string {
	return "sans: invariant violation in " + e.Where + ": " + e.Msg
}

// NewInvariantError builds an InvariantError.
func NewInvariantError(where, msg string) *InvariantError {
	return &InvariantError{Where: where, Msg: msg}
}
