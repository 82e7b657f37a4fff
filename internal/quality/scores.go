// Package quality handles Phred quality scores of sequencing reads and turns
// scored reads into profiles for soft alignment.
//
// A Phred score Q relates to the probability of a wrong base call as
// Q = -10 * log10(P_error), so Q20 means 1% and Q30 0.1% errors.
package quality

import (
	"fmt"
	"math"
	"slices"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// Valid score range. Scores above 41 are not produced by current
// instruments.
const (
	PhredMin = 0
	PhredMax = 41
)

// Lower bounds of the quality categories.
const (
	QLow       = 10
	QMedium    = 20
	QHigh      = 30
	QExcellent = 40
)

// Category buckets a mean quality: Poor below QLow, then Low, Medium, High
// and Excellent from QExcellent on.
type Category int

const (
	Poor Category = iota
	Low
	Medium
	High
	Excellent
)

var categoryNames = [...]string{"Poor", "Low", "Medium", "High", "Excellent"}

// lower bound of each category, indexed by Category
var categoryBounds = [...]float64{0, QLow, QMedium, QHigh, QExcellent}

func (c Category) String() string {
	if c < Poor || c > Excellent {
		return "Unknown"
	}
	return categoryNames[c]
}

// CategoryOf returns the category of a mean quality.
func CategoryOf(mean float64) Category {
	for c := Excellent; c > Poor; c-- {
		if mean >= categoryBounds[c] {
			return c
		}
	}
	return Poor
}

// Encoding is the ASCII offset of a quality string.
type Encoding int

const (
	// Phred33 is used by Sanger and Illumina 1.8+.
	Phred33 Encoding = 33
	// Phred64 is used by Illumina 1.3 to 1.7.
	Phred64 Encoding = 64
)

// QualityError is implemented by all errors of this package.
type QualityError interface {
	error
	IsQualityError()
}

// EmptyScoresError means a read has no quality scores.
type EmptyScoresError struct{}

func (e *EmptyScoresError) Error() string   { return "no quality scores" }
func (e *EmptyScoresError) IsQualityError() {}

// ScoreOutOfRangeError reports a score outside [PhredMin, PhredMax].
type ScoreOutOfRangeError struct {
	Position int
	Score    int
}

func (e *ScoreOutOfRangeError) Error() string {
	return fmt.Sprintf("quality %d at position %d not in [%d, %d]", e.Score, e.Position, PhredMin, PhredMax)
}
func (e *ScoreOutOfRangeError) IsQualityError() {}

// InvalidEncodingError reports a character below the encoding offset.
type InvalidEncodingError struct {
	Position int
	Char     rune
}

func (e *InvalidEncodingError) Error() string {
	return fmt.Sprintf("quality character %q at position %d is below the encoding offset", e.Char, e.Position)
}
func (e *InvalidEncodingError) IsQualityError() {}

// Scores holds one Phred score per base of a read.
type Scores struct {
	Values []int
}

// New checks and copies integer scores.
func New(values []int) (*Scores, error) {
	if len(values) == 0 {
		return nil, &EmptyScoresError{}
	}
	for i, q := range values {
		if q < PhredMin || q > PhredMax {
			return nil, &ScoreOutOfRangeError{Position: i, Score: q}
		}
	}
	return &Scores{Values: slices.Clone(values)}, nil
}

// Decode parses a quality string with the given encoding.
func Decode(encoded []byte, enc Encoding) (*Scores, error) {
	if len(encoded) == 0 {
		return nil, &EmptyScoresError{}
	}

	values := make([]int, len(encoded))
	for i, c := range encoded {
		q := int(c) - int(enc)
		switch {
		case q < PhredMin:
			return nil, &InvalidEncodingError{Position: i, Char: rune(c)}
		case q > PhredMax:
			return nil, &ScoreOutOfRangeError{Position: i, Score: q}
		}
		values[i] = q
	}
	return &Scores{Values: values}, nil
}

// FromPhred33 decodes a Phred+33 quality string.
func FromPhred33(encoded []byte) (*Scores, error) {
	return Decode(encoded, Phred33)
}

// FromPhred64 decodes a Phred+64 quality string.
func FromPhred64(encoded []byte) (*Scores, error) {
	return Decode(encoded, Phred64)
}

// Len returns the number of scores.
func (s *Scores) Len() int {
	return len(s.Values)
}

func (s *Scores) floats() []float64 {
	x := make([]float64, len(s.Values))
	for i, q := range s.Values {
		x[i] = float64(q)
	}
	return x
}

// Average returns the mean score, 0 for no scores.
func (s *Scores) Average() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return stat.Mean(s.floats(), nil)
}

// Median returns the median score. For an even count it is the truncated
// mean of the two middle scores.
func (s *Scores) Median() int {
	n := len(s.Values)
	if n == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Categorize returns the category of the mean score.
func (s *Scores) Categorize() Category {
	return CategoryOf(s.Average())
}

// error probabilities of all valid scores
var errorProbs = func() (p [PhredMax + 1]float64) {
	for q := range p {
		p[q] = math.Pow(10, -float64(q)/10)
	}
	return
}()

// ScoreToProbability returns the error probability of a score.
func ScoreToProbability(score int) (float64, error) {
	if score < PhredMin || score > PhredMax {
		return 0, errors.Errorf("quality %d not in [%d, %d]", score, PhredMin, PhredMax)
	}
	return errorProbs[score], nil
}

// ProbabilityToScore returns the nearest score of an error probability,
// capped at PhredMax.
func ProbabilityToScore(prob float64) (int, error) {
	if !(prob > 0 && prob <= 1) {
		return 0, errors.Errorf("error probability %g not in (0, 1]", prob)
	}
	q := int(math.Round(-10 * math.Log10(prob)))
	return min(q, PhredMax), nil
}

// ErrorRate returns the mean error probability of the scores and the Phred
// score equivalent to it.
func (s *Scores) ErrorRate() (float64, int, error) {
	if len(s.Values) == 0 {
		return 0, 0, errors.New("no quality scores")
	}
	probs := make([]float64, len(s.Values))
	for i, q := range s.Values {
		probs[i] = errorProbs[q]
	}
	rate := stat.Mean(probs, nil)
	q, err := ProbabilityToScore(rate)
	if err != nil {
		return 0, 0, err
	}
	return rate, q, nil
}

// Slice returns a copy of the scores in [start, end).
func (s *Scores) Slice(start, end int) (*Scores, error) {
	if start < 0 || end <= start || end > len(s.Values) {
		return nil, errors.Errorf("invalid range [%d, %d) for %d scores", start, end, len(s.Values))
	}
	return &Scores{Values: slices.Clone(s.Values[start:end])}, nil
}

// Encode renders the scores with an encoding.
func (s *Scores) Encode(enc Encoding) string {
	b := make([]byte, len(s.Values))
	for i, q := range s.Values {
		b[i] = byte(q + int(enc))
	}
	return string(b)
}

// ToPhred33 renders the scores as a Phred+33 string.
func (s *Scores) ToPhred33() string {
	return s.Encode(Phred33)
}

func (s *Scores) String() string {
	return fmt.Sprintf("Scores{len: %d, mean: %.1f}", len(s.Values), s.Average())
}
