package alignment

import (
	"fmt"
	"strings"
)

// Operation returns the CIGAR operation of position k: 'I' for a gap in
// first, 'D' for a gap in second, 'M' for identical elements and 'X'
// otherwise.
func (aln *Alignment[E, S]) Operation(k int) byte {
	a, b := aln.At(k)
	switch {
	case a == aln.Gap:
		return 'I'
	case b == aln.Gap:
		return 'D'
	case a == b:
		return 'M'
	default:
		return 'X'
	}
}

// ToCIGAR generates a CIGAR string of runs of M, X, I and D.
func (aln *Alignment[E, S]) ToCIGAR() string {
	if aln.Len() == 0 {
		return ""
	}

	var cigar strings.Builder
	currentOp := byte(0)
	count := 0

	for k := 0; k < aln.Len(); k++ {
		op := aln.Operation(k)
		if op == currentOp {
			count++
			continue
		}
		if count > 0 {
			fmt.Fprintf(&cigar, "%d%c", count, currentOp)
		}
		currentOp = op
		count = 1
	}
	fmt.Fprintf(&cigar, "%d%c", count, currentOp)

	return cigar.String()
}

// GapOpenings counts runs of consecutive gaps on either side.
func (aln *Alignment[E, S]) GapOpenings() int {
	openings := 0
	inGap1, inGap2 := false, false

	for k := 0; k < aln.Len(); k++ {
		a, b := aln.At(k)
		if a == aln.Gap {
			if !inGap1 {
				openings++
			}
			inGap1 = true
		} else {
			inGap1 = false
		}

		if b == aln.Gap {
			if !inGap2 {
				openings++
			}
			inGap2 = true
		} else {
			inGap2 = false
		}
	}

	return openings
}

// Format renders both sides on two lines, one column per position, each
// column padded to its wider element.
func (aln *Alignment[E, S]) Format(render func(E) string) string {
	first := make([]string, aln.Len())
	second := make([]string, aln.Len())
	for k := range first {
		a, b := aln.At(k)
		first[k], second[k] = render(a), render(b)
		n := max(len(first[k]), len(second[k]))
		first[k] = fmt.Sprintf("%-*s", n, first[k])
		second[k] = fmt.Sprintf("%-*s", n, second[k])
	}
	return strings.Join(first, " ") + "\n" + strings.Join(second, " ")
}

// FormatReport renders the alignment with a match line and its metrics.
func (aln *Alignment[E, S]) FormatReport(render func(E) string) string {
	var top, mid, bottom strings.Builder
	for k := 0; k < aln.Len(); k++ {
		a, b := aln.At(k)
		ra, rb := render(a), render(b)
		n := max(len(ra), len(rb))
		fmt.Fprintf(&top, "%-*s", n, ra)
		fmt.Fprintf(&bottom, "%-*s", n, rb)
		var mark string
		switch aln.Operation(k) {
		case 'M':
			mark = "|"
		case 'X':
			mark = "."
		default:
			mark = " "
		}
		fmt.Fprintf(&mid, "%-*s", n, mark)
	}

	l1, l2 := label(aln.First.ID, "Seq1"), label(aln.Second.ID, "Seq2")
	w := max(len(l1), len(l2))
	return fmt.Sprintf("%-*s: %s\n%*s  %s\n%-*s: %s\nScore: %v\nIdentity: %.1f%%\nCIGAR: %s",
		w, l1, top.String(),
		w, "", mid.String(),
		w, l2, bottom.String(),
		aln.Score, aln.PercentIdentity(), aln.ToCIGAR())
}

func label(id, fallback string) string {
	if id == "" {
		return fallback
	}
	return id
}
