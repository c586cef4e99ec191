package translate

import "fmt"

// ErrInvalidCodon means a 3-base window contained a non-ACGT base (no
// ambiguity expansion is attempted — translation only runs over
// already-clean nucleotide windows).
type ErrInvalidCodon struct{ Codon string }

func (e ErrInvalidCodon) Error() string {
	return fmt.Sprintf("translate: invalid codon %q", e.Codon)
}

// Frame translates seq in one reading frame (0, 1 or 2), stopping
// before any trailing partial codon. It does not stop at a stop codon;
// callers that want ORF-bounded translation should split on '*'
// themselves.
func (t *Table) Frame(seq []byte, frame int) ([]byte, error) {
	if frame < 0 || frame > 2 {
		return nil, fmt.Errorf("translate: frame must be 0, 1 or 2, got %d", frame)
	}
	seq = seq[frame:]
	n := len(seq) / 3
	out := make([]byte, 0, n)
	buf := make([]byte, 3)
	for i := 0; i < n; i++ {
		copy(buf, seq[i*3:i*3+3])
		upper(buf)
		aa, ok := t.Codons[string(buf)]
		if !ok {
			return nil, ErrInvalidCodon{Codon: string(buf)}
		}
		out = append(out, aa)
	}
	return out, nil
}

// AllFrames translates all six reading frames (3 forward + 3 on the
// reverse complement), the exhaustive mode "sans run -c/--code" uses
// when the input is raw nucleotide rather than pre-translated protein.
func (t *Table) AllFrames(seq []byte) [6][]byte {
	var out [6][]byte
	for f := 0; f < 3; f++ {
		aa, err := t.Frame(seq, f)
		if err == nil {
			out[f] = aa
		}
	}
	rc := reverseComplement(seq)
	for f := 0; f < 3; f++ {
		aa, err := t.Frame(rc, f)
		if err == nil {
			out[3+f] = aa
		}
	}
	return out
}

func upper(b []byte) {
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
}

var complement = map[byte]byte{
	'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A',
	'a': 't', 'c': 'g', 'g': 'c', 't': 'a',
	'N': 'N', 'n': 'n',
}

func reverseComplement(seq []byte) []byte {
	out := make([]byte, len(seq))
	n := len(seq)
	for i, b := range seq {
		c, ok := complement[b]
		if !ok {
			c = 'N'
		}
		out[n-1-i] = c
	}
	return out
}
