package alignment

import "github.com/aria-lang/seqalign-go/internal/sequence"

// fillStrictGlobal fills the Needleman-Wunsch matrix: every gap, leading ones
// included, costs GapScore.
func (a *Aligner[E, S]) fillStrictGlobal(first, second *sequence.Sequence[E], f *Matrix[S]) {
	m, n := f.Rows()-1, f.Cols()-1
	gap := a.GapScore

	// first row and column initialized with gap penalties
	for i := 1; i <= m; i++ {
		f.set(i, 0, f.At(i-1, 0)+gap)
	}
	for j := 1; j <= n; j++ {
		f.set(0, j, f.At(0, j-1)+gap)
	}

	var ab, ga, gb S
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			ab = f.At(i-1, j-1) + a.Scoring.Score(first.At(i-1), second.At(j-1))
			ga = f.At(i, j-1) + gap
			gb = f.At(i-1, j) + gap
			f.set(i, j, max(ab, ga, gb))
		}
	}
}

// strictGlobal enumerates every optimal path from (i, j) back to (0, 0),
// trying a gap in second first, then a gap in first, then the diagonal.
func (b *backtracer[E, S]) strictGlobal(aln *Alignment[E, S], i, j int) error {
	if b.full() {
		return nil
	}
	if i == 0 && j == 0 {
		b.leaf(aln, i, j)
		return nil
	}

	f, gap := b.f, b.a.GapScore
	c := f.At(i, j)
	moved := false

	if i != 0 {
		x := f.At(i-1, j)
		if c == x+gap {
			moved = true
			if err := b.step(aln, b.first.At(i-1), b.a.Gap, c-x, i-1, j, b.strictGlobal); err != nil {
				return err
			}
		}
	}

	if j != 0 {
		y := f.At(i, j-1)
		if c == y+gap {
			moved = true
			if err := b.step(aln, b.a.Gap, b.second.At(j-1), c-y, i, j-1, b.strictGlobal); err != nil {
				return err
			}
		}
	}

	if i != 0 && j != 0 {
		p := f.At(i-1, j-1)
		ea, eb := b.first.At(i-1), b.second.At(j-1)
		if c == p+b.a.Scoring.Score(ea, eb) {
			moved = true
			if err := b.step(aln, ea, eb, c-p, i-1, j-1, b.strictGlobal); err != nil {
				return err
			}
		}
	}

	if !moved {
		return inconsistent(i, j)
	}
	return nil
}
