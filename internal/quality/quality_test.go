package quality

import (
	"testing"

	"github.com/aria-lang/seqalign-go/internal/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s, err := New([]int{10, 20, 30})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	assert.InDelta(t, 20.0, s.Average(), 1e-9)
	assert.Equal(t, 20, s.Median())

	_, err = New(nil)
	assert.IsType(t, &EmptyScoresError{}, err)

	_, err = New([]int{10, 99})
	var rangeErr *ScoreOutOfRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, 1, rangeErr.Position)
}

func TestPhredDecoding(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		phred64 bool
		want    []int
		wantErr bool
	}{
		{"phred33", "!+5?I", false, []int{0, 10, 20, 30, 40}, false},
		{"phred33 Q41", "J", false, []int{41}, false},
		{"phred64", "@JT^h", true, []int{0, 10, 20, 30, 40}, false},
		{"below offset", " ", false, nil, true},
		{"above max", "~", false, nil, true},
		{"empty", "", false, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s *Scores
			var err error
			if tt.phred64 {
				s, err = FromPhred64([]byte(tt.encoded))
			} else {
				s, err = FromPhred33([]byte(tt.encoded))
			}
			if tt.wantErr {
				require.Error(t, err)
				assert.Implements(t, (*QualityError)(nil), err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Values)
		})
	}

	s, err := FromPhred33([]byte("!+5?I"))
	require.NoError(t, err)
	assert.Equal(t, "!+5?I", s.ToPhred33())
}

func TestProbability(t *testing.T) {
	p, err := ScoreToProbability(20)
	require.NoError(t, err)
	assert.InDelta(t, 0.01, p, 1e-12)

	p, err = ScoreToProbability(0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, p, 1e-12)

	_, err = ScoreToProbability(-1)
	require.Error(t, err)

	q, err := ProbabilityToScore(0.001)
	require.NoError(t, err)
	assert.Equal(t, 30, q)

	q, err = ProbabilityToScore(1e-9)
	require.NoError(t, err)
	assert.Equal(t, PhredMax, q)

	_, err = ProbabilityToScore(0)
	require.Error(t, err)
}

func TestErrorRate(t *testing.T) {
	s, err := New([]int{20, 30, 40, 40})
	require.NoError(t, err)
	rate, q, err := s.ErrorRate()
	require.NoError(t, err)
	assert.InDelta(t, 0.0028, rate, 1e-12)
	assert.Equal(t, 26, q)

	s, err = New([]int{30, 30})
	require.NoError(t, err)
	_, q, err = s.ErrorRate()
	require.NoError(t, err)
	assert.Equal(t, 30, q)

	_, _, err = (&Scores{}).ErrorRate()
	assert.Error(t, err)
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		scores []int
		want   Category
	}{
		{[]int{5, 5}, Poor},
		{[]int{10, 15}, Low},
		{[]int{20, 25}, Medium},
		{[]int{30, 35}, High},
		{[]int{40, 41}, Excellent},
	}
	for _, tt := range tests {
		s, err := New(tt.scores)
		require.NoError(t, err)
		assert.Equal(t, tt.want, s.Categorize(), tt.want.String())
	}
}

func TestSlice(t *testing.T) {
	s, _ := New([]int{1, 2, 3, 4})
	sub, err := s.Slice(1, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, sub.Values)

	sub.Values[0] = 40
	assert.Equal(t, 2, s.Values[1])

	_, err = s.Slice(2, 2)
	require.Error(t, err)
	_, err = s.Slice(0, 5)
	require.Error(t, err)
}

func TestToProfile(t *testing.T) {
	vocab := sequence.DNA()
	read, err := vocab.Encode("r1", "ACA")
	require.NoError(t, err)
	scores, _ := New([]int{20, 10, 20})

	profile, err := ToProfile(read, scores, vocab)
	require.NoError(t, err)
	require.Equal(t, 3, profile.Len())
	assert.Equal(t, "r1", profile.ID)

	a, _ := vocab.Code('A')
	c, _ := vocab.Code('C')
	g, _ := vocab.Code('G')

	first := profile.At(0)
	assert.InDelta(t, 0.99, first.P(a), 1e-12)
	assert.InDelta(t, 0.01/4, first.P(g), 1e-12)
	assert.Len(t, first.Probabilities(), 5)
	assert.Equal(t, a, first.Dominant())

	assert.InDelta(t, 0.9, profile.At(1).P(c), 1e-12)
	assert.Equal(t, c, profile.At(1).Dominant())

	// same base and score share one element
	assert.Same(t, profile.At(0), profile.At(2))

	short, _ := New([]int{20})
	_, err = ToProfile(read, short, vocab)
	require.Error(t, err)
}

func TestProfilerHardAbove(t *testing.T) {
	vocab := sequence.DNA()
	read, _ := vocab.Encode("r", "AC")
	scores, _ := New([]int{35, 12})

	profile, err := NewProfiler(vocab, 30).Profile(read, scores)
	require.NoError(t, err)

	a, _ := vocab.Code('A')
	assert.Same(t, sequence.Hard(a), profile.At(0))
	assert.NotSame(t, sequence.Hard(profile.At(1).Dominant()), profile.At(1))
}

func TestFilter(t *testing.T) {
	vocab := sequence.DNA()
	f := &Filter{MinQuality: 20, MinLength: 3, QualityThreshold: 20}

	t.Run("TrimByQuality", func(t *testing.T) {
		s, _ := New([]int{5, 25, 30, 30, 10, 2})
		start, end := f.TrimByQuality(s)
		assert.Equal(t, 1, start)
		assert.Equal(t, 4, end)

		low, _ := New([]int{5, 5})
		start, end = f.TrimByQuality(low)
		assert.Equal(t, start, end)
	})

	t.Run("SlidingWindowTrim", func(t *testing.T) {
		w := &Filter{WindowSize: 2, MinWindowQuality: 20}
		s, _ := New([]int{2, 10, 30, 30, 30, 10, 2})
		start, end := w.SlidingWindowTrim(s)
		assert.Equal(t, 1, start)
		assert.Equal(t, 6, end)
	})

	t.Run("Apply pass", func(t *testing.T) {
		read, _ := vocab.Encode("r", "GACGTT")
		s, _ := New([]int{5, 25, 30, 30, 25, 2})
		res, err := f.Apply(read, s)
		require.NoError(t, err)
		require.True(t, res.Passed, res.Reason)
		assert.Equal(t, "ACGT", vocab.Decode(res.Read))
		assert.Equal(t, []int{25, 30, 30, 25}, res.Scores.Values)
		assert.InDelta(t, 27.5, res.MeanQuality, 1e-9)
	})

	t.Run("Apply too short", func(t *testing.T) {
		read, _ := vocab.Encode("r", "GACG")
		s, _ := New([]int{5, 25, 30, 2})
		res, err := f.Apply(read, s)
		require.NoError(t, err)
		assert.False(t, res.Passed)
		assert.Nil(t, res.Read)
		assert.Contains(t, res.Reason, "too short")
	})

	t.Run("Apply low mean", func(t *testing.T) {
		strict := &Filter{MinQuality: 35, MinLength: 1, QualityThreshold: 20}
		read, _ := vocab.Encode("r", "ACG")
		s, _ := New([]int{25, 30, 25})
		res, err := strict.Apply(read, s)
		require.NoError(t, err)
		assert.False(t, res.Passed)
		assert.Contains(t, res.Reason, "average quality")
	})

	t.Run("Apply length mismatch", func(t *testing.T) {
		read, _ := vocab.Encode("r", "ACG")
		s, _ := New([]int{25})
		_, err := f.Apply(read, s)
		require.Error(t, err)
	})
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, Poor, CategoryOf(9.99))
	assert.Equal(t, Low, CategoryOf(10))
	assert.Equal(t, High, CategoryOf(39.5))
	assert.Equal(t, Excellent, CategoryOf(41))
	assert.Equal(t, "Unknown", Category(9).String())
}

func TestEncodeRoundTrip(t *testing.T) {
	s, err := Decode([]byte("@JT^h"), Phred64)
	require.NoError(t, err)
	assert.Equal(t, "!+5?I", s.Encode(Phred33))
	assert.Equal(t, "@JT^h", s.Encode(Phred64))
}
