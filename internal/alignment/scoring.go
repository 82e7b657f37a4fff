// Package alignment provides pairwise sequence alignment.
//
// Three dynamic-programming policies are supported: global alignment with
// free end gaps, strict global alignment (Needleman-Wunsch) and local
// alignment (Smith-Waterman). The gap cost is a constant per gap position.
// The same aligners work on hard elements (integer codes) and on profiles of
// soft elements through SoftScoring.
package alignment

import (
	"fmt"

	"github.com/pkg/errors"
)

// Number is the set of numeric types usable as alignment scores.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Scorer scores a pair of aligned elements. Implementations must be pure.
// The gap marker is never passed to a Scorer.
type Scorer[E comparable, S Number] interface {
	Score(a, b E) S
}

// SimpleScoring returns Match for equal elements and Mismatch otherwise.
type SimpleScoring[E comparable, S Number] struct {
	Match    S
	Mismatch S
}

// NewSimpleScoring creates an exact-match scorer.
func NewSimpleScoring[E comparable, S Number](match, mismatch S) SimpleScoring[E, S] {
	return SimpleScoring[E, S]{Match: match, Mismatch: mismatch}
}

// Score returns the match or mismatch constant.
func (s SimpleScoring[E, S]) Score(a, b E) S {
	if a == b {
		return s.Match
	}
	return s.Mismatch
}

// Params holds integer scoring parameters for coded sequences.
type Params struct {
	Match    int
	Mismatch int
	Gap      int
}

// NewParams creates scoring parameters with validation.
func NewParams(match, mismatch, gap int) (*Params, error) {
	if match <= mismatch {
		return nil, errors.Errorf("match score (%d) must be greater than mismatch score (%d)", match, mismatch)
	}
	if gap > 0 {
		return nil, errors.Errorf("gap score should be <= 0, got %d", gap)
	}
	return &Params{Match: match, Mismatch: mismatch, Gap: gap}, nil
}

// DefaultDNA returns the default DNA parameters.
func DefaultDNA() *Params {
	return &Params{Match: 2, Mismatch: -1, Gap: -2}
}

// Unit returns +1/-1/-1 parameters.
func Unit() *Params {
	return &Params{Match: 1, Mismatch: -1, Gap: -1}
}

// BLASTLike returns BLASTN-like parameters with a linear gap.
func BLASTLike() *Params {
	return &Params{Match: 1, Mismatch: -3, Gap: -5}
}

// Scoring returns the exact-match scorer for coded sequences.
func (p *Params) Scoring() SimpleScoring[int, int] {
	return NewSimpleScoring[int](p.Match, p.Mismatch)
}

func (p *Params) String() string {
	return fmt.Sprintf("Params { match: %d, mismatch: %d, gap: %d }", p.Match, p.Mismatch, p.Gap)
}
