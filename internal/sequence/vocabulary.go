package sequence

import (
	"strings"
	"sync"
	"unicode"

	"github.com/pkg/errors"
)

// GapSymbol is the printable gap marker and GapCode its integer code.
const (
	GapSymbol rune = '-'
	GapCode   int  = 0
)

const (
	dnaSymbols     = "ACGTN"
	proteinSymbols = "ACDEFGHIKLMNPQRSTVWYBZX*"
)

// Vocabulary encodes symbols into integer codes and back. Code 0 is always the
// gap symbol.
//
// An open vocabulary assigns a new code to every unseen symbol. A closed one
// rejects unknown symbols with an InvalidBaseError.
type Vocabulary struct {
	mu      sync.RWMutex
	codes   map[rune]int
	symbols []rune
	closed  bool
	fold    bool
}

// NewVocabulary returns an open vocabulary seeded with the given symbols.
func NewVocabulary(symbols string) *Vocabulary {
	v := &Vocabulary{
		codes:   map[rune]int{GapSymbol: GapCode},
		symbols: []rune{GapSymbol},
	}
	for _, r := range symbols {
		v.add(r)
	}
	return v
}

// ClosedVocabulary returns a case-insensitive vocabulary that only accepts
// the given symbols.
func ClosedVocabulary(symbols string) *Vocabulary {
	v := NewVocabulary(strings.ToUpper(symbols))
	v.closed = true
	v.fold = true
	return v
}

// DNA returns a closed vocabulary over A, C, G, T and N.
func DNA() *Vocabulary {
	return ClosedVocabulary(dnaSymbols)
}

// Protein returns a closed vocabulary over the amino acid letters.
func Protein() *Vocabulary {
	return ClosedVocabulary(proteinSymbols)
}

// ErrUnknownAlphabet is returned by ByName for unsupported alphabet names.
var ErrUnknownAlphabet = errors.New("unknown alphabet, should be dna, protein or text")

// ByName returns a vocabulary by alphabet name: "dna", "protein" or "text"
// (open).
func ByName(name string) (*Vocabulary, error) {
	switch strings.ToLower(name) {
	case "dna":
		return DNA(), nil
	case "protein":
		return Protein(), nil
	case "text":
		return NewVocabulary(""), nil
	default:
		return nil, errors.Wrapf(ErrUnknownAlphabet, "%q", name)
	}
}

func (v *Vocabulary) add(r rune) int {
	if code, ok := v.codes[r]; ok {
		return code
	}
	code := len(v.symbols)
	v.codes[r] = code
	v.symbols = append(v.symbols, r)
	return code
}

// Code returns the code of a symbol, adding it to an open vocabulary.
func (v *Vocabulary) Code(r rune) (int, bool) {
	if v.fold {
		r = unicode.ToUpper(r)
	}

	v.mu.RLock()
	code, ok := v.codes[r]
	v.mu.RUnlock()
	if ok || v.closed {
		return code, ok
	}

	v.mu.Lock()
	code = v.add(r)
	v.mu.Unlock()
	return code, true
}

// Symbol returns the symbol of a code, or '?' for an unknown code.
func (v *Vocabulary) Symbol(code int) rune {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if code < 0 || code >= len(v.symbols) {
		return '?'
	}
	return v.symbols[code]
}

// Codes returns the codes of all non-gap symbols.
func (v *Vocabulary) Codes() []int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	codes := make([]int, 0, len(v.symbols)-1)
	for code := 1; code < len(v.symbols); code++ {
		codes = append(codes, code)
	}
	return codes
}

// Size returns the number of symbols including the gap.
func (v *Vocabulary) Size() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.symbols)
}

// Encode converts text into a sequence of codes.
func (v *Vocabulary) Encode(id, text string) (*Sequence[int], error) {
	if len(text) == 0 {
		return nil, &EmptySequenceError{ID: id}
	}

	seq := WithCapacity[int](id, len(text))
	i := 0
	for _, r := range text {
		if r == GapSymbol {
			return nil, &ReservedSymbolError{Position: i}
		}
		code, ok := v.Code(r)
		if !ok {
			return nil, &InvalidBaseError{Position: i, Found: r}
		}
		seq.Push(code)
		i++
	}
	return seq, nil
}

// Decode converts a sequence of codes back into text.
func (v *Vocabulary) Decode(seq *Sequence[int]) string {
	var b strings.Builder
	b.Grow(seq.Len())
	for i := 0; i < seq.Len(); i++ {
		b.WriteRune(v.Symbol(seq.At(i)))
	}
	return b.String()
}
