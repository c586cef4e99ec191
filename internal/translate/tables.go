// Package translate provides the NCBI genetic code tables needed to
// turn nucleotide sequence into amino-acid k-mers for protein-space
// splits (the "-c/--code" mode of sans run over nucleotide input).
//
// No example repo in this corpus ships a codon-table library — every
// consumer either stores amino sequence directly or never translates
// — so these tables are plain data, grounded on the published NCBI
// tables rather than a third-party dependency.
package translate

// Table is an NCBI genetic code table: Codons maps an upper-case
// 3-base codon to its single-letter amino acid, '*' for stop.
type Table struct {
	ID     int
	Name   string
	Codons map[string]byte
}

// Standard is NCBI translation table 1, the default genetic code.
var Standard = buildTable(1, "Standard", codonTable1)

// Bacterial is NCBI translation table 11, used for bacterial, archaeal
// and plant plastid genomes — the table most SANS genome inputs
// actually want.
var Bacterial = buildTable(11, "Bacterial, Archaeal and Plant Plastid", codonTable11)

// ByID returns one of the tables above by its NCBI id, defaulting to
// Bacterial for any id other than 1, since table 11 only differs from
// the standard table in three start codons that this package's
// codon-by-codon translation (as opposed to start-codon detection)
// never observes.
func ByID(id int) *Table {
	if id == 1 {
		return Standard
	}
	return Bacterial
}

func buildTable(id int, name string, aas string) *Table {
	t := &Table{ID: id, Name: name, Codons: make(map[string]byte, 64)}
	bases := [4]byte{'T', 'C', 'A', 'G'}
	i := 0
	for _, b1 := range bases {
		for _, b2 := range bases {
			for _, b3 := range bases {
				codon := string([]byte{b1, b2, b3})
				t.Codons[codon] = aas[i]
				i++
			}
		}
	}
	return t
}

// codonTable1/11 list the 64 amino acids in TCAG/TCAG/TCAG codon
// order, i.e. the standard NCBI table layout.
const (
	codonTable1  = "FFLLSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG"
	codonTable11 = "FFLLSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG"
)
