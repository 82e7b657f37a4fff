package alignment

import "github.com/aria-lang/seqalign-go/internal/sequence"

// fillGlobal fills the end-gap-free global matrix. The boundary row and
// column stay zero, so leading gaps are free; gaps along the last row or the
// last column are free as well, so trailing gaps cost nothing either.
func (a *Aligner[E, S]) fillGlobal(first, second *sequence.Sequence[E], f *Matrix[S]) {
	m, n := f.Rows()-1, f.Cols()-1
	gap := a.GapScore
	var ab, ga, gb S
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			// match elements
			ab = f.At(i-1, j-1) + a.Scoring.Score(first.At(i-1), second.At(j-1))

			// gap on first sequence
			if i == m {
				ga = f.At(i, j-1)
			} else {
				ga = f.At(i, j-1) + gap
			}

			// gap on second sequence
			if j == n {
				gb = f.At(i-1, j)
			} else {
				gb = f.At(i-1, j) + gap
			}

			f.set(i, j, max(ab, ga, gb))
		}
	}
}

// global enumerates every optimal path from (i, j) until either prefix is
// exhausted. On the last row and column the gap move is free and adds no
// aligned position.
func (b *backtracer[E, S]) global(aln *Alignment[E, S], i, j int) error {
	if b.full() {
		return nil
	}
	if i == 0 || j == 0 {
		b.leaf(aln, i, j)
		return nil
	}

	f, gap := b.f, b.a.GapScore
	m, n := f.Rows()-1, f.Cols()-1
	c := f.At(i, j)
	p, x, y := f.At(i-1, j-1), f.At(i-1, j), f.At(i, j-1)
	ea, eb := b.first.At(i-1), b.second.At(j-1)
	moved := false

	if c == p+b.a.Scoring.Score(ea, eb) {
		moved = true
		if err := b.step(aln, ea, eb, c-p, i-1, j-1, b.global); err != nil {
			return err
		}
	}

	if i == m {
		if c == y {
			moved = true
			if err := b.global(aln, i, j-1); err != nil {
				return err
			}
		}
	} else if c == y+gap {
		moved = true
		if err := b.step(aln, b.a.Gap, eb, c-y, i, j-1, b.global); err != nil {
			return err
		}
	}

	if j == n {
		if c == x {
			moved = true
			if err := b.global(aln, i-1, j); err != nil {
				return err
			}
		}
	} else if c == x+gap {
		moved = true
		if err := b.step(aln, ea, b.a.Gap, c-x, i-1, j, b.global); err != nil {
			return err
		}
	}

	if !moved {
		return inconsistent(i, j)
	}
	return nil
}

// firstGlobal follows a single optimal path, taking the first matching move
// in the order diagonal, gap on first, gap on second.
func (a *Aligner[E, S]) firstGlobal(first, second *sequence.Sequence[E], f *Matrix[S]) (*Alignment[E, S], error) {
	aln := emptyAlignment[E, S](first, second, a.Gap)
	gap := a.GapScore
	m, n := f.Rows()-1, f.Cols()-1
	i, j := m, n

	for i != 0 && j != 0 {
		c := f.At(i, j)
		p, x, y := f.At(i-1, j-1), f.At(i-1, j), f.At(i, j-1)
		ea, eb := first.At(i-1), second.At(j-1)

		if c == p+a.Scoring.Score(ea, eb) {
			aln.Push(ea, eb, c-p)
			i--
			j--
			continue
		}

		if i == m {
			if c == y {
				j--
				continue
			}
		} else if c == y+gap {
			aln.Push(a.Gap, eb, c-y)
			j--
			continue
		}

		if j == n {
			if c == x {
				i--
				continue
			}
		} else if c == x+gap {
			aln.Push(ea, a.Gap, c-x)
			i--
			continue
		}

		return nil, inconsistent(i, j)
	}

	r := aln.Reversed()
	r.FirstOffset, r.SecondOffset = i, j
	return r, nil
}
