package quality

import (
	"fmt"

	"github.com/aria-lang/seqalign-go/internal/sequence"
	"github.com/pkg/errors"
)

// FilterResult represents the result of quality filtering.
type FilterResult struct {
	Passed      bool
	Reason      string
	TrimStart   int
	TrimEnd     int
	MeanQuality float64

	Read   *sequence.Sequence[int] // trimmed read, nil if it failed
	Scores *Scores                 // trimmed scores, nil if it failed
}

// Filter gates reads before profile alignment.
type Filter struct {
	MinQuality       int     // Minimum average quality after trimming
	MinLength        int     // Minimum read length after trimming
	QualityThreshold int     // Threshold for end trimming
	WindowSize       int     // Window size for sliding window trimming, 0 trims by threshold only
	MinWindowQuality float64 // Minimum average quality in window
}

// DefaultFilter creates a filter with default settings.
func DefaultFilter() *Filter {
	return &Filter{
		MinQuality:       20,
		MinLength:        20,
		QualityThreshold: 20,
		WindowSize:       4,
		MinWindowQuality: 20.0,
	}
}

// TrimByQuality returns the bounds [start, end) left after removing bases
// below QualityThreshold from both ends. start == end if no base passes.
func (f *Filter) TrimByQuality(scores *Scores) (int, int) {
	n := scores.Len()

	start := 0
	for start < n && scores.Values[start] < f.QualityThreshold {
		start++
	}

	end := n
	for end > start && scores.Values[end-1] < f.QualityThreshold {
		end--
	}

	return start, end
}

// SlidingWindowTrim trims both ends until a window of WindowSize bases
// averages at least MinWindowQuality.
func (f *Filter) SlidingWindowTrim(scores *Scores) (int, int) {
	n := scores.Len()
	if f.WindowSize <= 0 || n < f.WindowSize {
		return f.TrimByQuality(scores)
	}

	window := func(i int) float64 {
		sum := 0
		for j := 0; j < f.WindowSize; j++ {
			sum += scores.Values[i+j]
		}
		return float64(sum) / float64(f.WindowSize)
	}

	start := -1
	for i := 0; i <= n-f.WindowSize; i++ {
		if window(i) >= f.MinWindowQuality {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, 0
	}

	end := start + f.WindowSize
	for i := n - f.WindowSize; i >= start; i-- {
		if window(i) >= f.MinWindowQuality {
			end = i + f.WindowSize
			break
		}
	}

	return start, end
}

// Apply trims a read and checks what remains.
func (f *Filter) Apply(read *sequence.Sequence[int], scores *Scores) (*FilterResult, error) {
	if read.Len() != scores.Len() {
		return nil, errors.Errorf("read %s has %d bases but %d quality scores", read.ID, read.Len(), scores.Len())
	}

	start, end := f.SlidingWindowTrim(scores)
	result := &FilterResult{TrimStart: start, TrimEnd: end}

	if end-start < f.MinLength || end == start {
		result.Reason = fmt.Sprintf("read too short after trimming: %d (min: %d)", end-start, f.MinLength)
		return result, nil
	}

	trimmed, err := scores.Slice(start, end)
	if err != nil {
		return nil, err
	}
	result.MeanQuality = trimmed.Average()
	if result.MeanQuality < float64(f.MinQuality) {
		result.Reason = fmt.Sprintf("average quality %.2f below minimum %d", result.MeanQuality, f.MinQuality)
		return result, nil
	}

	elems := read.Elements()[start:end]
	result.Passed = true
	result.Read = sequence.New(read.ID, elems...)
	result.Scores = trimmed
	return result, nil
}
