package alignment

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/aria-lang/seqalign-go/internal/sequence"
	"github.com/pkg/errors"
)

// ErrAggregateMismatch is returned by Recount when the running totals of an
// alignment disagree with a recount from scratch.
var ErrAggregateMismatch = errors.New("alignment: running totals do not match recount")

// Alignment is a pair of equal-length aligned sequences with per-position
// score contributions and running totals.
//
// Position k pairs First.At(k) with Second.At(k); either may be the Gap
// marker. The totals are kept up to date by Push and Pop in constant time.
//
// FirstOffset and SecondOffset are the matrix row and column where the
// backtrace stopped, i.e. the number of leading elements of each input that
// are not part of the alignment.
type Alignment[E comparable, S Number] struct {
	First  *sequence.Sequence[E]
	Second *sequence.Sequence[E]
	Gap    E

	Scores []S
	Score  S

	IdenticalCount int
	SimilarCount   int
	GapCount       int

	FirstOffset  int
	SecondOffset int
}

// NewAlignment wraps two already aligned sequences. Position scores start at
// zero; identity and gap totals are counted from the elements.
func NewAlignment[E comparable, S Number](first, second *sequence.Sequence[E], gap E) (*Alignment[E, S], error) {
	if first.Len() != second.Len() {
		return nil, errors.Errorf("aligned sequences must have equal length: %d != %d", first.Len(), second.Len())
	}
	aln := &Alignment[E, S]{
		First:  first,
		Second: second,
		Gap:    gap,
		Scores: make([]S, first.Len()),
	}
	for k := 0; k < first.Len(); k++ {
		a, b := first.At(k), second.At(k)
		if a == b {
			aln.IdenticalCount++
		}
		if a == gap || b == gap {
			aln.GapCount++
		}
	}
	return aln, nil
}

func emptyAlignment[E comparable, S Number](first, second *sequence.Sequence[E], gap E) *Alignment[E, S] {
	n := first.Len() + second.Len()
	return &Alignment[E, S]{
		First:  sequence.WithCapacity[E](first.ID, n),
		Second: sequence.WithCapacity[E](second.ID, n),
		Gap:    gap,
		Scores: make([]S, 0, n),
	}
}

// Push appends an aligned pair and its score contribution.
func (aln *Alignment[E, S]) Push(a, b E, score S) {
	aln.First.Push(a)
	aln.Second.Push(b)
	aln.Scores = append(aln.Scores, score)
	aln.Score += score
	if a == b {
		aln.IdenticalCount++
	}
	if score > 0 {
		aln.SimilarCount++
	}
	if a == aln.Gap || b == aln.Gap {
		aln.GapCount++
	}
}

// Pop removes and returns the last aligned pair.
func (aln *Alignment[E, S]) Pop() (E, E, error) {
	var zero E
	n := len(aln.Scores)
	if n == 0 {
		return zero, zero, errors.Wrap(sequence.ErrEmptySequence, "alignment")
	}
	a, err := aln.First.Pop()
	if err != nil {
		return zero, zero, err
	}
	b, err := aln.Second.Pop()
	if err != nil {
		return zero, zero, err
	}
	score := aln.Scores[n-1]
	aln.Scores = aln.Scores[:n-1]

	aln.Score -= score
	if a == b {
		aln.IdenticalCount--
	}
	if score > 0 {
		aln.SimilarCount--
	}
	if a == aln.Gap || b == aln.Gap {
		aln.GapCount--
	}
	return a, b, nil
}

// drop pops a pair pushed by the backtracker itself.
func (aln *Alignment[E, S]) drop() {
	if _, _, err := aln.Pop(); err != nil {
		panic(err)
	}
}

// Reversed returns a copy with positions in reverse order. Totals and
// offsets are copied unchanged.
func (aln *Alignment[E, S]) Reversed() *Alignment[E, S] {
	n := len(aln.Scores)
	scores := make([]S, n)
	for k, s := range aln.Scores {
		scores[n-1-k] = s
	}
	return &Alignment[E, S]{
		First:          aln.First.Reversed(),
		Second:         aln.Second.Reversed(),
		Gap:            aln.Gap,
		Scores:         scores,
		Score:          aln.Score,
		IdenticalCount: aln.IdenticalCount,
		SimilarCount:   aln.SimilarCount,
		GapCount:       aln.GapCount,
		FirstOffset:    aln.FirstOffset,
		SecondOffset:   aln.SecondOffset,
	}
}

// Len returns the number of aligned positions.
func (aln *Alignment[E, S]) Len() int {
	return len(aln.Scores)
}

// At returns the aligned pair at position k.
func (aln *Alignment[E, S]) At(k int) (E, E) {
	return aln.First.At(k), aln.Second.At(k)
}

// Key returns the identity keys of both sides.
func (aln *Alignment[E, S]) Key() (string, string) {
	return aln.First.Key(), aln.Second.Key()
}

func percent(count, n int) float64 {
	if n == 0 {
		return 0.0
	}
	return float64(count) / float64(n) * 100.0
}

// PercentIdentity returns the share of identical positions, or 0 for an
// empty alignment.
func (aln *Alignment[E, S]) PercentIdentity() float64 {
	return percent(aln.IdenticalCount, aln.Len())
}

// PercentSimilarity returns the share of positions with a positive score.
func (aln *Alignment[E, S]) PercentSimilarity() float64 {
	return percent(aln.SimilarCount, aln.Len())
}

// PercentGap returns the share of positions with a gap on either side.
func (aln *Alignment[E, S]) PercentGap() float64 {
	return percent(aln.GapCount, aln.Len())
}

// Quality is a lexicographic ranking key; higher is better on every field.
type Quality[S Number] struct {
	Score      S
	Identity   float64
	Similarity float64
	NegGap     float64
}

// Compare returns -1, 0 or +1 comparing q with o field by field.
func (q Quality[S]) Compare(o Quality[S]) int {
	if c := cmp.Compare(q.Score, o.Score); c != 0 {
		return c
	}
	if c := cmp.Compare(q.Identity, o.Identity); c != 0 {
		return c
	}
	if c := cmp.Compare(q.Similarity, o.Similarity); c != 0 {
		return c
	}
	return cmp.Compare(q.NegGap, o.NegGap)
}

// Quality returns (score, identity%, similarity%, -gap%).
func (aln *Alignment[E, S]) Quality() Quality[S] {
	return Quality[S]{
		Score:      aln.Score,
		Identity:   aln.PercentIdentity(),
		Similarity: aln.PercentSimilarity(),
		NegGap:     -aln.PercentGap(),
	}
}

// SortByQuality sorts alignments best first. Equal alignments keep their
// order.
func SortByQuality[E comparable, S Number](alns []*Alignment[E, S]) {
	slices.SortStableFunc(alns, func(a, b *Alignment[E, S]) int {
		return b.Quality().Compare(a.Quality())
	})
}

// Recount recomputes all totals from the positions and reports any
// difference from the running values.
func (aln *Alignment[E, S]) Recount() error {
	if aln.First.Len() != aln.Second.Len() || aln.First.Len() != len(aln.Scores) {
		return errors.Wrapf(ErrAggregateMismatch, "lengths %d/%d/%d",
			aln.First.Len(), aln.Second.Len(), len(aln.Scores))
	}
	var score S
	var identical, similar, gaps int
	for k, s := range aln.Scores {
		a, b := aln.At(k)
		score += s
		if a == b {
			identical++
		}
		if s > 0 {
			similar++
		}
		if a == aln.Gap || b == aln.Gap {
			gaps++
		}
	}
	if !closeEnough(score, aln.Score) || identical != aln.IdenticalCount ||
		similar != aln.SimilarCount || gaps != aln.GapCount {
		return errors.Wrapf(ErrAggregateMismatch,
			"score %v/%v, identical %d/%d, similar %d/%d, gaps %d/%d",
			aln.Score, score, aln.IdenticalCount, identical,
			aln.SimilarCount, similar, aln.GapCount, gaps)
	}
	return nil
}

// closeEnough is exact for integer scores and allows rounding noise from
// push/pop sequences for floating-point scores.
func closeEnough[S Number](a, b S) bool {
	d := math.Abs(float64(a) - float64(b))
	return d <= 1e-9*math.Max(1, math.Abs(float64(a)))
}

func (aln *Alignment[E, S]) String() string {
	return fmt.Sprintf("Alignment { score: %v, identity: %.1f%%, length: %d }",
		aln.Score, aln.PercentIdentity(), aln.Len())
}
