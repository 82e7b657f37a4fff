package alignment

import "github.com/aria-lang/seqalign-go/internal/sequence"

// SoftScoring scores two soft elements as the expected inner score over both
// distributions: the sum of P(a)·Q(b)·Inner(a, b) over every pair of symbols.
//
// Each call costs O(|a|·|b|) in the number of non-zero weights, so a profile
// alignment costs that factor on top of the m·n matrix fill.
type SoftScoring[S Number] struct {
	Inner Scorer[int, S]
}

// NewSoftScoring wraps a symbol scorer.
func NewSoftScoring[S Number](inner Scorer[int, S]) SoftScoring[S] {
	return SoftScoring[S]{Inner: inner}
}

// Score returns the expected score of a against b.
func (s SoftScoring[S]) Score(a, b *sequence.SoftElement) float64 {
	var score float64
	for _, wa := range a.Probabilities() {
		for _, wb := range b.Probabilities() {
			score += wa.P * wb.P * float64(s.Inner.Score(wa.Symbol, wb.Symbol))
		}
	}
	return score
}

// NewProfileAligner creates an aligner over profiles. Scores are float64;
// the gap marker is the soft element concentrated on gapCode.
func NewProfileAligner[S Number](mode Mode, inner Scorer[int, S], gapScore float64, gapCode int) *Aligner[*sequence.SoftElement, float64] {
	return New[*sequence.SoftElement, float64](mode, NewSoftScoring(inner), gapScore, sequence.SoftGap(gapCode))
}
