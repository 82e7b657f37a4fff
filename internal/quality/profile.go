package quality

import (
	"github.com/aria-lang/seqalign-go/internal/sequence"
	"github.com/pkg/errors"
)

// Profiler turns a scored read into a profile of soft elements.
//
// Each position keeps probability 1-e on the called base, where e is the
// Phred error probability; e is spread evenly over the other symbols of the
// vocabulary. Positions scoring at least HardAbove become the shared hard
// element of the base instead, so they count as identical to a plain
// reference base. A zero HardAbove keeps every position soft.
type Profiler struct {
	Vocab     *sequence.Vocabulary
	HardAbove int
}

// NewProfiler creates a profiler over a vocabulary.
func NewProfiler(vocab *sequence.Vocabulary, hardAbove int) *Profiler {
	return &Profiler{Vocab: vocab, HardAbove: hardAbove}
}

// ToProfile converts a read with all positions soft.
func ToProfile(read *sequence.Sequence[int], scores *Scores, vocab *sequence.Vocabulary) (*sequence.Profile, error) {
	return NewProfiler(vocab, 0).Profile(read, scores)
}

type elementKey struct {
	base, score int
}

// Profile converts a read. Positions sharing base and score share one soft
// element.
func (p *Profiler) Profile(read *sequence.Sequence[int], scores *Scores) (*sequence.Profile, error) {
	if read.Len() != scores.Len() {
		return nil, errors.Errorf("read %s has %d bases but %d quality scores", read.ID, read.Len(), scores.Len())
	}

	codes := p.Vocab.Codes()
	cache := make(map[elementKey]*sequence.SoftElement, 8)
	profile := sequence.WithCapacity[*sequence.SoftElement](read.ID, read.Len())

	for i := 0; i < read.Len(); i++ {
		base, q := read.At(i), scores.Values[i]
		if p.HardAbove > 0 && q >= p.HardAbove {
			profile.Push(sequence.Hard(base))
			continue
		}

		key := elementKey{base, q}
		if e, ok := cache[key]; ok {
			profile.Push(e)
			continue
		}

		e, err := ScoreToProbability(q)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s position %d", read.ID, i)
		}
		probs := make(map[int]float64, len(codes))
		probs[base] = 1 - e
		if others := len(codes) - 1; others > 0 {
			for _, code := range codes {
				if code != base {
					probs[code] = e / float64(others)
				}
			}
		}
		element := sequence.NewSoftElement(probs)
		cache[key] = element
		profile.Push(element)
	}
	return profile, nil
}
