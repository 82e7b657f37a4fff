package alignment

import (
	"testing"

	"github.com/aria-lang/seqalign-go/internal/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoftScoring(t *testing.T) {
	s := NewSoftScoring[int](NewSimpleScoring[int](1, 0))

	tests := []struct {
		name string
		a, b *sequence.SoftElement
		want float64
	}{
		{"hard match", sequence.Hard(1), sequence.Hard(1), 1},
		{"hard mismatch", sequence.Hard(1), sequence.Hard(2), 0},
		{"half", sequence.NewSoftElement(map[int]float64{1: 0.5, 2: 0.5}), sequence.Hard(1), 0.5},
		{"both soft", sequence.NewSoftElement(map[int]float64{1: 0.5, 2: 0.5}),
			sequence.NewSoftElement(map[int]float64{1: 0.5, 2: 0.5}), 0.5},
		{"empty", sequence.NewSoftElement(nil), sequence.Hard(1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, s.Score(tt.a, tt.b), 1e-12)
			assert.InDelta(t, tt.want, s.Score(tt.b, tt.a), 1e-12)
		})
	}
}

func TestProfileAlignerHard(t *testing.T) {
	p := sequence.ProfileFromSequence(seq("a", 1, 2, 3))
	q := sequence.ProfileFromSequence(seq("b", 1, 2, 3))

	for _, mode := range []Mode{Global, StrictGlobal, Local} {
		a := NewProfileAligner[int](mode, NewSimpleScoring[int](1, -1), -1, sequence.GapCode)
		score, alns, err := a.Align(p, q)
		require.NoError(t, err)
		assert.InDelta(t, 3.0, score, 1e-12, mode.String())
		require.Len(t, alns, 1)
		assert.InDelta(t, 100.0, alns[0].PercentIdentity(), 1e-9)
		assert.Same(t, sequence.SoftGap(sequence.GapCode), alns[0].Gap)
		require.NoError(t, alns[0].Recount())
	}
}

func TestProfileAlignerSoft(t *testing.T) {
	p := sequence.NewProfile("p",
		sequence.Hard(1),
		sequence.NewSoftElement(map[int]float64{2: 0.5, 3: 0.5}),
		sequence.Hard(3),
	)
	q := sequence.ProfileFromSequence(seq("q", 1, 2, 3))

	a := NewProfileAligner[int](StrictGlobal, NewSimpleScoring[int](1, 0), -1, sequence.GapCode)
	score, alns, err := a.Align(p, q)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, score, 1e-12)
	require.Len(t, alns, 1)

	aln := alns[0]
	assert.Equal(t, []float64{1, 0.5, 1}, aln.Scores)
	assert.Equal(t, 2, aln.IdenticalCount)
	assert.Equal(t, 3, aln.SimilarCount)
	assert.Equal(t, 0, aln.GapCount)
	assert.InDelta(t, 200.0/3.0, aln.PercentIdentity(), 1e-9)

	vocab := sequence.DNA()
	render := func(e *sequence.SoftElement) string { return string(vocab.Symbol(e.Dominant())) }
	assert.Equal(t, "A C G\nA C G", aln.Format(render))
}

func TestProfileAlignerGap(t *testing.T) {
	p := sequence.ProfileFromSequence(seq("a", 1, 2, 3))
	q := sequence.ProfileFromSequence(seq("b", 1, 3))

	a := NewProfileAligner[int](StrictGlobal, NewSimpleScoring[int](2, -1), -2, sequence.GapCode)
	score, alns, err := a.Align(p, q)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, score, 1e-12)
	require.Len(t, alns, 1)
	assert.Equal(t, 1, alns[0].GapCount)
	assert.Equal(t, "1M1D1M", alns[0].ToCIGAR())
}
