// Package stats provides statistical summaries for alignment results and the
// reads fed into profile alignment.
package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aria-lang/seqalign-go/internal/alignment"
	"github.com/aria-lang/seqalign-go/internal/quality"
	"github.com/aria-lang/seqalign-go/internal/sequence"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrEmpty is returned when a summary is requested over nothing.
var ErrEmpty = errors.New("stats: empty input")

// Summary aggregates a set of alignments. Percentages are in [0, 100].
type Summary struct {
	Count int

	BestScore float64
	MeanScore float64

	MeanIdentity   float64
	StdDevIdentity float64
	MedianIdentity float64

	MeanSimilarity float64
	MeanGap        float64

	MinLength  int
	MaxLength  int
	MeanLength float64
}

// Summarize computes a Summary over alignments.
func Summarize[E comparable, S alignment.Number](alns []*alignment.Alignment[E, S]) (*Summary, error) {
	if len(alns) == 0 {
		return nil, errors.Wrap(ErrEmpty, "alignment list")
	}

	n := len(alns)
	scores := make([]float64, n)
	identity := make([]float64, n)
	similarity := make([]float64, n)
	gaps := make([]float64, n)
	lengths := make([]float64, n)
	for i, aln := range alns {
		scores[i] = float64(aln.Score)
		identity[i] = aln.PercentIdentity()
		similarity[i] = aln.PercentSimilarity()
		gaps[i] = aln.PercentGap()
		lengths[i] = float64(aln.Len())
	}

	s := &Summary{
		Count:          n,
		BestScore:      floats.Max(scores),
		MeanScore:      stat.Mean(scores, nil),
		MeanSimilarity: stat.Mean(similarity, nil),
		MeanGap:        stat.Mean(gaps, nil),
		MinLength:      int(floats.Min(lengths)),
		MaxLength:      int(floats.Max(lengths)),
		MeanLength:     stat.Mean(lengths, nil),
	}
	if n > 1 {
		s.MeanIdentity, s.StdDevIdentity = stat.MeanStdDev(identity, nil)
	} else {
		s.MeanIdentity = identity[0]
	}

	sort.Float64s(identity)
	s.MedianIdentity = stat.Quantile(0.5, stat.Empirical, identity, nil)

	return s, nil
}

func (s *Summary) String() string {
	return fmt.Sprintf(`AlignmentSummary {
  count: %d
  best score: %g
  mean score: %.2f
  identity: %.1f%% (sd %.1f, median %.1f)
  similarity: %.1f%%
  gaps: %.1f%%
  length range: %d - %d (mean %.1f)
}`, s.Count, s.BestScore, s.MeanScore,
		s.MeanIdentity, s.StdDevIdentity, s.MedianIdentity,
		s.MeanSimilarity, s.MeanGap,
		s.MinLength, s.MaxLength, s.MeanLength)
}

// IdentityHistogram bins alignments by percent identity.
type IdentityHistogram struct {
	Bins    []float64
	BinSize float64
	NumBins int
}

// NewIdentityHistogram creates an identity histogram with numBins equal bins
// over [0, 100].
func NewIdentityHistogram[E comparable, S alignment.Number](alns []*alignment.Alignment[E, S], numBins int) (*IdentityHistogram, error) {
	if len(alns) == 0 {
		return nil, errors.Wrap(ErrEmpty, "alignment list")
	}
	if numBins <= 0 {
		return nil, errors.Errorf("numBins must be positive, got %d", numBins)
	}

	identity := make([]float64, len(alns))
	for i, aln := range alns {
		identity[i] = aln.PercentIdentity()
	}
	sort.Float64s(identity)

	binSize := 100.0 / float64(numBins)
	dividers := make([]float64, numBins+1)
	floats.Span(dividers, 0, 100)
	// the last divider is exclusive; keep 100% in the last bin
	dividers[numBins] = 100 + 1e-9

	bins := stat.Histogram(nil, dividers, identity, nil)

	return &IdentityHistogram{
		Bins:    bins,
		BinSize: binSize,
		NumBins: numBins,
	}, nil
}

// ModeBin returns the most common identity range.
func (h *IdentityHistogram) ModeBin() (float64, float64) {
	maxBin := floats.MaxIdx(h.Bins)
	start := float64(maxBin) * h.BinSize
	return start, start + h.BinSize
}

func (h *IdentityHistogram) String() string {
	var b strings.Builder
	b.WriteString("Identity Histogram:\n")
	for i := 0; i < h.NumBins; i++ {
		start := float64(i) * h.BinSize
		count := int(h.Bins[i])
		fmt.Fprintf(&b, "%5.1f-%5.1f%%: %s (%d)\n", start, start+h.BinSize, strings.Repeat("#", count), count)
	}
	return b.String()
}

// QualityDistribution counts reads per quality category.
type QualityDistribution struct {
	Counts [quality.Excellent + 1]int
	Total  int
}

// FromCategories counts categories. Unknown categories only add to Total.
func FromCategories(categories []quality.Category) *QualityDistribution {
	dist := &QualityDistribution{Total: len(categories)}
	for _, c := range categories {
		if c >= quality.Poor && c <= quality.Excellent {
			dist.Counts[c]++
		}
	}
	return dist
}

// Count returns the number of reads in a category.
func (d *QualityDistribution) Count(c quality.Category) int {
	if c < quality.Poor || c > quality.Excellent {
		return 0
	}
	return d.Counts[c]
}

// AcceptableRatio returns the fraction of reads of Medium quality or better.
func (d *QualityDistribution) AcceptableRatio() float64 {
	if d.Total == 0 {
		return 0
	}
	n := 0
	for c := quality.Medium; c <= quality.Excellent; c++ {
		n += d.Counts[c]
	}
	return float64(n) / float64(d.Total)
}

func (d *QualityDistribution) String() string {
	parts := make([]string, 0, len(d.Counts))
	for c, n := range d.Counts {
		parts = append(parts, fmt.Sprintf("%s: %d", quality.Category(c), n))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ReadSetStats summarizes the reads of a profile alignment run.
type ReadSetStats struct {
	Count               int
	TotalBases          int
	MinLength           int
	MaxLength           int
	MeanLength          float64
	MeanQuality         float64
	MedianQuality       float64
	HighQualityCount    int
	QualityDistribution *QualityDistribution
}

// FromReads calculates statistics for reads and their quality scores.
func FromReads(reads []*sequence.Sequence[int], qualities []*quality.Scores) (*ReadSetStats, error) {
	if len(reads) != len(qualities) {
		return nil, errors.Errorf("%d reads but %d quality records", len(reads), len(qualities))
	}
	if len(reads) == 0 {
		return nil, errors.Wrap(ErrEmpty, "read list")
	}

	count := len(reads)
	lengths := make([]float64, count)
	avgQualities := make([]float64, count)
	categories := make([]quality.Category, count)
	totalBases := 0
	highQualityCount := 0

	for i, read := range reads {
		lengths[i] = float64(read.Len())
		totalBases += read.Len()
		avgQualities[i] = qualities[i].Average()
		categories[i] = qualities[i].Categorize()
		if avgQualities[i] >= float64(quality.QHigh) {
			highQualityCount++
		}
	}

	sorted := make([]float64, count)
	copy(sorted, avgQualities)
	sort.Float64s(sorted)

	return &ReadSetStats{
		Count:               count,
		TotalBases:          totalBases,
		MinLength:           int(floats.Min(lengths)),
		MaxLength:           int(floats.Max(lengths)),
		MeanLength:          stat.Mean(lengths, nil),
		MeanQuality:         stat.Mean(avgQualities, nil),
		MedianQuality:       stat.Quantile(0.5, stat.Empirical, sorted, nil),
		HighQualityCount:    highQualityCount,
		QualityDistribution: FromCategories(categories),
	}, nil
}

// HighQualityRatio returns proportion of high-quality reads.
func (s *ReadSetStats) HighQualityRatio() float64 {
	if s.Count == 0 {
		return 0.0
	}
	return float64(s.HighQualityCount) / float64(s.Count)
}

func (s *ReadSetStats) String() string {
	return fmt.Sprintf(`ReadSetStats {
  count: %d
  total_bases: %d
  length range: %d - %d
  mean length: %.1f
  mean quality: %.1f
  median quality: %.1f
  high quality reads: %d (%.1f%%)
}`, s.Count, s.TotalBases, s.MinLength, s.MaxLength,
		s.MeanLength, s.MeanQuality, s.MedianQuality,
		s.HighQualityCount, s.HighQualityRatio()*100)
}
