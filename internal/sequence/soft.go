package sequence

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Weight is the probability of one symbol in a soft element.
type Weight struct {
	Symbol int
	P      float64
}

// SoftElement is a probability distribution over symbol codes. Weights need
// not sum to 1.
//
// Soft elements are compared by identity (pointer), never by content. Hard
// returns one shared element per code, so profiles derived from plain
// sequences still report identical positions.
type SoftElement struct {
	weights []Weight
}

// Profile is a sequence of soft elements.
type Profile = Sequence[*SoftElement]

// NewSoftElement creates a soft element from a symbol→probability map.
// Zero weights are dropped; weights are kept sorted by symbol.
func NewSoftElement(probs map[int]float64) *SoftElement {
	weights := make([]Weight, 0, len(probs))
	for symbol, p := range probs {
		if p == 0 {
			continue
		}
		weights = append(weights, Weight{Symbol: symbol, P: p})
	}
	sort.Slice(weights, func(i, j int) bool { return weights[i].Symbol < weights[j].Symbol })
	return &SoftElement{weights: weights}
}

var hardElements sync.Map // int -> *SoftElement

// Hard returns the shared soft element concentrated entirely on symbol.
func Hard(symbol int) *SoftElement {
	if e, ok := hardElements.Load(symbol); ok {
		return e.(*SoftElement)
	}
	e, _ := hardElements.LoadOrStore(symbol, &SoftElement{weights: []Weight{{Symbol: symbol, P: 1}}})
	return e.(*SoftElement)
}

// SoftGap returns the soft gap marker for a gap code.
func SoftGap(code int) *SoftElement {
	return Hard(code)
}

// Probabilities returns the weights sorted by symbol. The returned slice is
// shared and must not be modified.
func (e *SoftElement) Probabilities() []Weight {
	return e.weights
}

// P returns the probability of a symbol.
func (e *SoftElement) P(symbol int) float64 {
	i := sort.Search(len(e.weights), func(i int) bool { return e.weights[i].Symbol >= symbol })
	if i < len(e.weights) && e.weights[i].Symbol == symbol {
		return e.weights[i].P
	}
	return 0
}

// Dominant returns the most probable symbol. Ties go to the smaller code.
// An element without weights returns GapCode.
func (e *SoftElement) Dominant() int {
	best := GapCode
	var bestP float64
	for i, w := range e.weights {
		if i == 0 || w.P > bestP {
			best, bestP = w.Symbol, w.P
		}
	}
	return best
}

func (e *SoftElement) String() string {
	parts := make([]string, len(e.weights))
	for i, w := range e.weights {
		parts[i] = fmt.Sprintf("%d:%.2f", w.Symbol, w.P)
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// NewProfile creates a profile from soft elements.
func NewProfile(id string, elements ...*SoftElement) *Profile {
	return New(id, elements...)
}

// ProfileFromSequence lifts a coded sequence into a profile of hard soft
// elements.
func ProfileFromSequence(seq *Sequence[int]) *Profile {
	p := WithCapacity[*SoftElement](seq.ID, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		p.Push(Hard(seq.At(i)))
	}
	return p
}
