package seqalign

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, modify func(*Config)) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	if modify != nil {
		modify(cfg)
	}
	e, err := NewEngine(cfg)
	require.NoError(t, err)
	return e
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}

func TestNewEngineInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = "semi"
	_, err := NewEngine(cfg)
	require.Error(t, err)

	cfg = DefaultConfig()
	cfg.Alphabet = "rna"
	_, err = NewEngine(cfg)
	require.Error(t, err)
}

func TestAlignText(t *testing.T) {
	e := newEngine(t, nil)

	res, err := e.AlignText("a", "GATTACA", "b", "GATTACA")
	require.NoError(t, err)
	assert.Equal(t, 14, res.Score)
	require.Len(t, res.Alignments, 1)
	assert.Equal(t, "7M", res.Alignments[0].ToCIGAR())

	report := e.Report(res.Alignments[0])
	assert.Contains(t, report, "a: GATTACA")
	assert.Contains(t, report, "b: GATTACA")
	assert.Contains(t, report, "CIGAR: 7M")
}

func TestAlignTextModes(t *testing.T) {
	tests := []struct {
		mode  Mode
		score int
	}{
		{Global, 4},
		{StrictGlobal, 0},
		{Local, 4},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			e := newEngine(t, func(c *Config) { c.Mode = tt.mode.String() })
			res, err := e.AlignText("a", "TTAC", "b", "AC")
			require.NoError(t, err)
			assert.Equal(t, tt.score, res.Score)
			require.NotEmpty(t, res.Alignments)
			for _, aln := range res.Alignments {
				assert.Equal(t, res.Score, aln.Score)
			}
		})
	}
}

func TestAlignTextInvalidSymbol(t *testing.T) {
	e := newEngine(t, nil)

	_, err := e.AlignText("a", "ACGT", "b", "AC-T")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sequence b")

	_, err = e.AlignText("a", "ACXT", "b", "ACGT")
	require.Error(t, err)
}

func TestScore(t *testing.T) {
	e := newEngine(t, func(c *Config) { c.Mode = "strict-global" })
	a, err := e.Encode("a", "ACGT")
	require.NoError(t, err)
	b, err := e.Encode("b", "ACG")
	require.NoError(t, err)

	score, err := e.Score(a, b)
	require.NoError(t, err)
	assert.Equal(t, 4, score)
}

func TestReadFASTA(t *testing.T) {
	file := writeFile(t, "seqs.fa", ">s1 first\nACGT\nAC\n>s2\nGGTA\n")

	records, err := ReadFASTA(file)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "s1", records[0].ID)
	assert.Equal(t, "ACGTAC", string(records[0].Seq))
	assert.Equal(t, "s2", records[1].ID)
	assert.Equal(t, "GGTA", string(records[1].Seq))
	assert.Empty(t, records[0].Qual)

	_, err = ReadFASTQ(file)
	require.Error(t, err)

	_, err = ReadFASTA(filepath.Join(t.TempDir(), "missing.fa"))
	require.Error(t, err)
}

func TestReadFASTQ(t *testing.T) {
	file := writeFile(t, "reads.fq", "@r1\nACGT\n+\nIIII\n@r2\nAC\n+\n#5\n")

	records, err := ReadFASTQ(file)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "r1", records[0].ID)
	assert.Equal(t, "IIII", string(records[0].Qual))
	assert.Equal(t, "#5", string(records[1].Qual))
}

func TestAlignRecords(t *testing.T) {
	e := newEngine(t, nil)
	res, err := e.AlignRecords(
		&Record{ID: "x", Seq: []byte("acgt")},
		&Record{ID: "y", Seq: []byte("ACGT")},
	)
	require.NoError(t, err)
	assert.Equal(t, 8, res.Score)
}

func TestAlignPairs(t *testing.T) {
	e := newEngine(t, nil)

	n := 20
	first := make([]*Record, n)
	second := make([]*Record, n+3)
	for i := range second {
		second[i] = &Record{ID: fmt.Sprintf("b%d", i), Seq: []byte(strings.Repeat("A", i+1))}
	}
	for i := range first {
		first[i] = &Record{ID: fmt.Sprintf("a%d", i), Seq: []byte(strings.Repeat("A", i+1))}
	}
	first[5].Seq = []byte("AXA")

	pairs := PairRecords(first, second)
	require.Len(t, pairs, n)

	var done int32
	results := e.AlignPairs(pairs, 4, func() { atomic.AddInt32(&done, 1) })
	require.Len(t, results, n)
	assert.Equal(t, int32(n), done)

	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, fmt.Sprintf("a%d", i), r.Pair.First.ID)
		if i == 5 {
			assert.Error(t, r.Err)
			assert.Nil(t, r.Result)
			continue
		}
		require.NoError(t, r.Err)
		assert.Equal(t, 2*(i+1), r.Result.Score)
	}
}

func TestAlignProfile(t *testing.T) {
	e := newEngine(t, nil)
	ref := &Record{ID: "ref", Seq: []byte("ACGT")}

	res, err := e.AlignProfile(&Record{ID: "r", Seq: []byte("ACGT"), Qual: []byte("IIII")}, ref)
	require.NoError(t, err)
	assert.Nil(t, res.Filtered)
	assert.InDelta(t, 8.0, res.Score, 0.01)
	assert.Less(t, res.Score, 8.0)
	require.NotEmpty(t, res.Alignments)
	assert.Contains(t, e.ProfileReport(res.Alignments[0]), "r  : ACGT")

	_, err = e.AlignProfile(&Record{ID: "r", Seq: []byte("ACGT")}, ref)
	require.Error(t, err)
}

func TestAlignProfileHardAbove(t *testing.T) {
	e := newEngine(t, func(c *Config) { c.HardAbove = 30 })
	ref := &Record{ID: "ref", Seq: []byte("ACGT")}

	res, err := e.AlignProfile(&Record{ID: "r", Seq: []byte("ACGT"), Qual: []byte("IIII")}, ref)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, res.Score, 1e-9)
	assert.InDelta(t, 100.0, res.Alignments[0].PercentIdentity(), 1e-9)
}

func TestAlignProfileFiltered(t *testing.T) {
	e := newEngine(t, nil)
	e.Filter = &Filter{MinQuality: 20, MinLength: 3, QualityThreshold: 20}
	ref := &Record{ID: "ref", Seq: []byte("ACGTACGT")}

	res, err := e.AlignProfile(&Record{ID: "short", Seq: []byte("ACGT"), Qual: []byte("##I#")}, ref)
	require.NoError(t, err)
	require.NotNil(t, res.Filtered)
	assert.False(t, res.Filtered.Passed)
	assert.Empty(t, res.Alignments)

	res, err = e.AlignProfile(&Record{ID: "ok", Seq: []byte("TACGTA"), Qual: []byte("#IIII#")}, ref)
	require.NoError(t, err)
	require.True(t, res.Filtered.Passed)
	assert.Equal(t, 1, res.Filtered.TrimStart)
	assert.Equal(t, 4, res.Alignments[0].First.Len()-countGaps(res.Alignments[0]))
}

func countGaps(aln *ProfileAlignment) int {
	n := 0
	for k := 0; k < aln.Len(); k++ {
		if a, _ := aln.At(k); a == aln.Gap {
			n++
		}
	}
	return n
}

func TestInfo(t *testing.T) {
	assert.Contains(t, Info(), Version())
}

func TestAlignProfiles(t *testing.T) {
	e := newEngine(t, func(c *Config) { c.HardAbove = 30 })
	ref := &Record{ID: "ref", Seq: []byte("ACGTACGT")}
	reads := []*Record{
		{ID: "r0", Seq: []byte("ACGT"), Qual: []byte("IIII")},
		{ID: "r1", Seq: []byte("ACGT")},
		{ID: "r2", Seq: []byte("GTAC"), Qual: []byte("IIII")},
	}

	results := e.AlignProfiles(reads, ref, 2, nil)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Same(t, reads[i], r.Read)
	}
	require.NoError(t, results[0].Err)
	assert.InDelta(t, 8.0, results[0].Result.Score, 1e-9)
	assert.Error(t, results[1].Err)
	require.NoError(t, results[2].Err)
	assert.InDelta(t, 8.0, results[2].Result.Score, 1e-9)
}
