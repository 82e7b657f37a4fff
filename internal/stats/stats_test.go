package stats

import (
	"testing"

	"github.com/aria-lang/seqalign-go/internal/alignment"
	"github.com/aria-lang/seqalign-go/internal/quality"
	"github.com/aria-lang/seqalign-go/internal/sequence"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, text string) *sequence.Sequence[int] {
	t.Helper()
	s, err := sequence.DNA().Encode("s", text)
	require.NoError(t, err)
	return s
}

func alignments(t *testing.T) []*alignment.Alignment[int, int] {
	t.Helper()
	a := alignment.NewStrictGlobal[int, int](alignment.Unit().Scoring(), -1, sequence.GapCode)

	var alns []*alignment.Alignment[int, int]
	for _, p := range [][2]string{
		{"ACGT", "ACGT"}, // 4 matches, score 4, identity 100
		{"ACGT", "ACGA"}, // 3 matches and a mismatch, score 2, identity 75
		{"AC", "TT"},     // 2 mismatches, score -2, identity 0
	} {
		_, found, err := a.Align(encode(t, p[0]), encode(t, p[1]))
		require.NoError(t, err)
		require.Len(t, found, 1)
		alns = append(alns, found[0])
	}
	return alns
}

func TestSummarize(t *testing.T) {
	s, err := Summarize(alignments(t))
	require.NoError(t, err)

	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 4.0, s.BestScore, 1e-9)
	assert.InDelta(t, 4.0/3.0, s.MeanScore, 1e-9)
	assert.InDelta(t, 175.0/3.0, s.MeanIdentity, 1e-9)
	assert.InDelta(t, 75.0, s.MedianIdentity, 1e-9)
	assert.Greater(t, s.StdDevIdentity, 0.0)
	assert.Equal(t, 2, s.MinLength)
	assert.Equal(t, 4, s.MaxLength)
	assert.InDelta(t, 10.0/3.0, s.MeanLength, 1e-9)
	assert.InDelta(t, 0.0, s.MeanGap, 1e-9)
	assert.Contains(t, s.String(), "count: 3")
}

func TestSummarizeSingle(t *testing.T) {
	s, err := Summarize(alignments(t)[:1])
	require.NoError(t, err)
	assert.InDelta(t, 100.0, s.MeanIdentity, 1e-9)
	assert.Equal(t, 0.0, s.StdDevIdentity)
	assert.InDelta(t, 100.0, s.MedianIdentity, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	_, err := Summarize([]*alignment.Alignment[int, int]{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmpty))
}

func TestIdentityHistogram(t *testing.T) {
	hist, err := NewIdentityHistogram(alignments(t), 4)
	require.NoError(t, err)

	assert.Equal(t, 4, hist.NumBins)
	assert.InDelta(t, 25.0, hist.BinSize, 1e-9)
	// 0 -> first bin, 75 -> last bin, 100 -> last bin
	assert.Equal(t, []float64{1, 0, 0, 2}, hist.Bins)

	lo, hi := hist.ModeBin()
	assert.InDelta(t, 75.0, lo, 1e-9)
	assert.InDelta(t, 100.0, hi, 1e-9)
	assert.Contains(t, hist.String(), "Identity Histogram")

	_, err = NewIdentityHistogram([]*alignment.Alignment[int, int]{}, 4)
	require.Error(t, err)
	_, err = NewIdentityHistogram(alignments(t), 0)
	require.Error(t, err)
}

func TestFromCategories(t *testing.T) {
	categories := []quality.Category{
		quality.Poor,
		quality.Low,
		quality.Low,
		quality.Medium,
		quality.Medium,
		quality.Medium,
		quality.High,
		quality.High,
		quality.Excellent,
	}

	dist := FromCategories(categories)

	assert.Equal(t, 1, dist.Count(quality.Poor))
	assert.Equal(t, 2, dist.Count(quality.Low))
	assert.Equal(t, 3, dist.Count(quality.Medium))
	assert.Equal(t, 2, dist.Count(quality.High))
	assert.Equal(t, 1, dist.Count(quality.Excellent))
	assert.Equal(t, "{Poor: 1, Low: 2, Medium: 3, High: 2, Excellent: 1}", dist.String())
	assert.Equal(t, 9, dist.Total)

	// Acceptable = Medium + High + Excellent = 6/9
	assert.InDelta(t, 6.0/9.0, dist.AcceptableRatio(), 0.0001)
	assert.Equal(t, 0.0, FromCategories(nil).AcceptableRatio())
}

func TestFromReads(t *testing.T) {
	reads := []*sequence.Sequence[int]{encode(t, "ATGC"), encode(t, "ATGCATGC"), encode(t, "ATG")}

	q1, _ := quality.New([]int{30, 30, 30, 30})
	q2, _ := quality.New([]int{35, 35, 35, 35, 35, 35, 35, 35})
	q3, _ := quality.New([]int{10, 10, 10})

	stats, err := FromReads(reads, []*quality.Scores{q1, q2, q3})
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 15, stats.TotalBases)
	assert.Equal(t, 3, stats.MinLength)
	assert.Equal(t, 8, stats.MaxLength)
	assert.InDelta(t, 25.0, stats.MeanQuality, 0.0001)
	assert.InDelta(t, 30.0, stats.MedianQuality, 0.0001)
	assert.Equal(t, 2, stats.HighQualityCount)
	assert.InDelta(t, 2.0/3.0, stats.HighQualityRatio(), 0.0001)
	assert.Equal(t, 1, stats.QualityDistribution.Count(quality.Low))
}

func TestFromReadsMismatchedLength(t *testing.T) {
	q1, _ := quality.New([]int{30, 30, 30, 30})
	q2, _ := quality.New([]int{35, 35, 35, 35})

	_, err := FromReads([]*sequence.Sequence[int]{encode(t, "ATGC")}, []*quality.Scores{q1, q2})
	require.Error(t, err)

	_, err = FromReads(nil, nil)
	assert.True(t, errors.Is(err, ErrEmpty))
}

func BenchmarkSummarize(b *testing.B) {
	a := alignment.NewLocal[int, int](alignment.DefaultDNA().Scoring(), -2, sequence.GapCode)
	a.WithMinScore(2)
	first := sequence.New("a", 1, 2, 3, 4, 1, 2, 3, 4, 4, 3, 2, 1)
	second := sequence.New("b", 2, 3, 4, 1, 1, 2, 4, 3)
	_, alns, err := a.Align(first, second)
	if err != nil || len(alns) == 0 {
		b.Fatal("no alignments")
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Summarize(alns)
	}
}
