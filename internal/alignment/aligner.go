package alignment

import (
	"fmt"
	"strings"

	"github.com/aria-lang/seqalign-go/internal/sequence"
	"github.com/pkg/errors"
)

// Mode selects the alignment policy.
type Mode int

const (
	// Global aligns whole sequences; leading and trailing gaps are free.
	Global Mode = iota
	// StrictGlobal aligns whole sequences penalizing every gap (Needleman-Wunsch).
	StrictGlobal
	// Local finds the best-scoring pair of subsequences (Smith-Waterman).
	Local
)

func (m Mode) String() string {
	switch m {
	case Global:
		return "global"
	case StrictGlobal:
		return "strict-global"
	case Local:
		return "local"
	default:
		return "unknown"
	}
}

// ParseMode parses the name of a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "global", "semi-global":
		return Global, nil
	case "strict-global", "strict", "nw", "needleman-wunsch":
		return StrictGlobal, nil
	case "local", "sw", "smith-waterman":
		return Local, nil
	}
	return 0, errors.Wrap(ErrUnknownMode, s)
}

var (
	// ErrUnknownMode is returned for a Mode outside Global, StrictGlobal and Local.
	ErrUnknownMode = errors.New("alignment: unknown mode")

	// ErrInconsistentMatrix means no recurrence term reproduces a matrix cell
	// during backtrace. It only happens when scoring changed between filling
	// and backtracing.
	ErrInconsistentMatrix = errors.New("alignment: no predecessor reproduces matrix cell")

	// ErrSinglePathUnsupported is returned by FirstAlignment for modes other
	// than Global.
	ErrSinglePathUnsupported = errors.New("alignment: single-path backtrace is only defined for global alignment")
)

func inconsistent(i, j int) error {
	return errors.Wrapf(ErrInconsistentMatrix, "cell (%d, %d)", i, j)
}

// Aligner aligns pairs of sequences under one policy, scorer and gap cost.
//
// An Aligner holds no state between calls; the matrix and the alignments of
// a call belong to that call only.
type Aligner[E comparable, S Number] struct {
	Mode     Mode
	Scoring  Scorer[E, S]
	GapScore S // cost of one gap position, usually negative
	Gap      E // gap marker placed opposite an unpaired element

	// MinScore, for local alignment, makes the backtrace start from every
	// cell scoring at least MinScore instead of only the best ones.
	MinScore *S

	// MaxAlignments bounds the number of alignments returned by Align.
	// Zero means no bound. Tie enumeration can be combinatorially large.
	MaxAlignments int

	// Workers is the number of goroutines tracing local alignments from
	// different start cells. Values below 2 trace sequentially. No new start
	// is traced once MaxAlignments alignments have been collected.
	Workers int
}

// New creates an aligner.
func New[E comparable, S Number](mode Mode, scoring Scorer[E, S], gapScore S, gap E) *Aligner[E, S] {
	return &Aligner[E, S]{Mode: mode, Scoring: scoring, GapScore: gapScore, Gap: gap}
}

// NewGlobal creates an end-gap-free global aligner.
func NewGlobal[E comparable, S Number](scoring Scorer[E, S], gapScore S, gap E) *Aligner[E, S] {
	return New(Global, scoring, gapScore, gap)
}

// NewStrictGlobal creates a Needleman-Wunsch aligner.
func NewStrictGlobal[E comparable, S Number](scoring Scorer[E, S], gapScore S, gap E) *Aligner[E, S] {
	return New(StrictGlobal, scoring, gapScore, gap)
}

// NewLocal creates a Smith-Waterman aligner.
func NewLocal[E comparable, S Number](scoring Scorer[E, S], gapScore S, gap E) *Aligner[E, S] {
	return New(Local, scoring, gapScore, gap)
}

// WithMinScore sets MinScore and returns the aligner.
func (a *Aligner[E, S]) WithMinScore(score S) *Aligner[E, S] {
	a.MinScore = &score
	return a
}

func (a *Aligner[E, S]) check() error {
	switch a.Mode {
	case Global, StrictGlobal, Local:
		return nil
	}
	return errors.Wrap(ErrUnknownMode, fmt.Sprint(int(a.Mode)))
}

// Matrix fills the score matrix of first against second. The scorer is
// called exactly len(first)*len(second) times.
func (a *Aligner[E, S]) Matrix(first, second *sequence.Sequence[E]) (*Matrix[S], error) {
	if err := a.check(); err != nil {
		return nil, err
	}
	f := newMatrix[S](first.Len()+1, second.Len()+1)
	switch a.Mode {
	case Global:
		a.fillGlobal(first, second, f)
	case StrictGlobal:
		a.fillStrictGlobal(first, second, f)
	case Local:
		a.fillLocal(first, second, f)
	}
	return f, nil
}

// BestScore extracts the optimal score from a filled matrix: the bottom-right
// cell for global modes, the maximum cell for local alignment.
func (a *Aligner[E, S]) BestScore(f *Matrix[S]) S {
	if a.Mode == Local {
		best, _, _ := f.Max()
		return best
	}
	return f.At(f.Rows()-1, f.Cols()-1)
}

// Score returns the optimal alignment score without backtracing.
func (a *Aligner[E, S]) Score(first, second *sequence.Sequence[E]) (S, error) {
	f, err := a.Matrix(first, second)
	if err != nil {
		var zero S
		return zero, err
	}
	return a.BestScore(f), nil
}

// Align returns the optimal score and every optimal alignment (for local
// alignment, every alignment starting from a cell reaching MinScore), up to
// MaxAlignments.
func (a *Aligner[E, S]) Align(first, second *sequence.Sequence[E]) (S, []*Alignment[E, S], error) {
	var zero S
	f, err := a.Matrix(first, second)
	if err != nil {
		return zero, nil, err
	}
	alns, err := a.backtrace(first, second, f)
	if err != nil {
		return zero, nil, err
	}
	return a.BestScore(f), alns, nil
}

// FirstAlignment returns the optimal global score and a single alignment,
// chosen greedily by fixed move precedence: diagonal, then gap in first, then
// gap in second. It does not enumerate ties, so the alignment returned
// depends on that precedence. Only Global mode is supported.
func (a *Aligner[E, S]) FirstAlignment(first, second *sequence.Sequence[E]) (S, *Alignment[E, S], error) {
	var zero S
	if a.Mode != Global {
		return zero, nil, errors.Wrap(ErrSinglePathUnsupported, a.Mode.String())
	}
	f, err := a.Matrix(first, second)
	if err != nil {
		return zero, nil, err
	}
	aln, err := a.firstGlobal(first, second, f)
	if err != nil {
		return zero, nil, err
	}
	return a.BestScore(f), aln, nil
}

func (a *Aligner[E, S]) backtrace(first, second *sequence.Sequence[E], f *Matrix[S]) ([]*Alignment[E, S], error) {
	switch a.Mode {
	case Global:
		b := a.newBacktracer(first, second, f)
		err := b.global(emptyAlignment[E, S](first, second, a.Gap), f.Rows()-1, f.Cols()-1)
		return b.out, err
	case StrictGlobal:
		b := a.newBacktracer(first, second, f)
		err := b.strictGlobal(emptyAlignment[E, S](first, second, a.Gap), f.Rows()-1, f.Cols()-1)
		return b.out, err
	case Local:
		return a.backtraceLocal(first, second, f)
	}
	return nil, a.check()
}

// backtracer walks a filled matrix backwards, sharing one mutable alignment
// along the current path. Every Push is undone by a drop before returning.
type backtracer[E comparable, S Number] struct {
	a      *Aligner[E, S]
	first  *sequence.Sequence[E]
	second *sequence.Sequence[E]
	f      *Matrix[S]
	out    []*Alignment[E, S]
}

func (a *Aligner[E, S]) newBacktracer(first, second *sequence.Sequence[E], f *Matrix[S]) *backtracer[E, S] {
	return &backtracer[E, S]{a: a, first: first, second: second, f: f}
}

func (b *backtracer[E, S]) full() bool {
	return b.a.MaxAlignments > 0 && len(b.out) >= b.a.MaxAlignments
}

// leaf records a completed path that stopped at cell (i, j).
func (b *backtracer[E, S]) leaf(aln *Alignment[E, S], i, j int) {
	r := aln.Reversed()
	r.FirstOffset, r.SecondOffset = i, j
	b.out = append(b.out, r)
}

// step pushes a pair, continues from (i, j) and undoes the push.
func (b *backtracer[E, S]) step(aln *Alignment[E, S], x, y E, score S, i, j int,
	next func(*Alignment[E, S], int, int) error) error {
	aln.Push(x, y, score)
	err := next(aln, i, j)
	aln.drop()
	return err
}
