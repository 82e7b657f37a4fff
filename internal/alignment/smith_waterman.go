package alignment

import (
	"sync"
	"sync/atomic"

	"github.com/aria-lang/seqalign-go/internal/sequence"
)

// fillLocal fills the Smith-Waterman matrix: the strict recurrence floored at
// zero, with an all-zero boundary.
func (a *Aligner[E, S]) fillLocal(first, second *sequence.Sequence[E], f *Matrix[S]) {
	m, n := f.Rows()-1, f.Cols()-1
	gap := a.GapScore
	var zero, ab, ga, gb S
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			ab = f.At(i-1, j-1) + a.Scoring.Score(first.At(i-1), second.At(j-1))
			ga = f.At(i, j-1) + gap
			gb = f.At(i-1, j) + gap
			f.set(i, j, max(zero, ab, ga, gb))
		}
	}
}

// localStarts returns, in row-major order, the positive cells scoring at
// least MinScore, or at least the best score when MinScore is nil.
func (a *Aligner[E, S]) localStarts(f *Matrix[S]) [][2]int {
	threshold := a.BestScore(f)
	if a.MinScore != nil {
		threshold = *a.MinScore
	}
	var zero S
	starts := make([][2]int, 0, 8)
	for i := 0; i < f.Rows(); i++ {
		for j := 0; j < f.Cols(); j++ {
			if v := f.At(i, j); v > zero && v >= threshold {
				starts = append(starts, [2]int{i, j})
			}
		}
	}
	return starts
}

func (a *Aligner[E, S]) backtraceLocal(first, second *sequence.Sequence[E], f *Matrix[S]) ([]*Alignment[E, S], error) {
	starts := a.localStarts(f)

	if a.Workers < 2 || len(starts) < 2 {
		b := a.newBacktracer(first, second, f)
		aln := emptyAlignment[E, S](first, second, a.Gap)
		for _, s := range starts {
			if b.full() {
				break
			}
			if err := b.local(aln, s[0], s[1]); err != nil {
				return nil, err
			}
		}
		return b.out, nil
	}

	// each start cell gets its own backtracer and accumulator; the matrix and
	// the sequences are only read. Starts are dispatched in order, so once the
	// finished ones hold MaxAlignments results no later start can contribute.
	results := make([][]*Alignment[E, S], len(starts))
	errs := make([]error, len(starts))
	var traced, failed atomic.Int64
	var wg sync.WaitGroup
	tokens := make(chan int, a.Workers)
	for k, s := range starts {
		tokens <- 1
		if failed.Load() > 0 ||
			(a.MaxAlignments > 0 && traced.Load() >= int64(a.MaxAlignments)) {
			<-tokens
			break
		}
		wg.Add(1)
		go func(k, i, j int) {
			defer func() {
				<-tokens
				wg.Done()
			}()
			b := a.newBacktracer(first, second, f)
			errs[k] = b.local(emptyAlignment[E, S](first, second, a.Gap), i, j)
			results[k] = b.out
			if errs[k] != nil {
				failed.Add(1)
			}
			traced.Add(int64(len(b.out)))
		}(k, s[0], s[1])
	}
	wg.Wait()

	var out []*Alignment[E, S]
	for k := range starts {
		if errs[k] != nil {
			return nil, errs[k]
		}
		out = append(out, results[k]...)
		if a.MaxAlignments > 0 && len(out) >= a.MaxAlignments {
			out = out[:a.MaxAlignments]
			break
		}
	}
	return out, nil
}

// local enumerates every path from (i, j) back to the first zero cell.
func (b *backtracer[E, S]) local(aln *Alignment[E, S], i, j int) error {
	if b.full() {
		return nil
	}

	f, gap := b.f, b.a.GapScore
	c := f.At(i, j)
	var zero S
	if c == zero {
		b.leaf(aln, i, j)
		return nil
	}
	if i == 0 || j == 0 {
		return inconsistent(i, j)
	}

	p, x, y := f.At(i-1, j-1), f.At(i-1, j), f.At(i, j-1)
	ea, eb := b.first.At(i-1), b.second.At(j-1)
	moved := false

	if c == p+b.a.Scoring.Score(ea, eb) {
		moved = true
		if err := b.step(aln, ea, eb, c-p, i-1, j-1, b.local); err != nil {
			return err
		}
	}
	if c == y+gap {
		moved = true
		if err := b.step(aln, b.a.Gap, eb, c-y, i, j-1, b.local); err != nil {
			return err
		}
	}
	if c == x+gap {
		moved = true
		if err := b.step(aln, ea, b.a.Gap, c-x, i-1, j, b.local); err != nil {
			return err
		}
	}

	if !moved {
		return inconsistent(i, j)
	}
	return nil
}
