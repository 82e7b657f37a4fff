// Package sequence provides the ordered element containers consumed by the
// alignment engine.
//
// A Sequence is a mutable, indexable collection of comparable elements with an
// identity key. Elements are usually integer codes produced by a Vocabulary,
// or soft elements (per-position symbol distributions) when aligning
// profiles.
package sequence

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrEmptySequence is returned when popping from an empty sequence.
var ErrEmptySequence = errors.New("sequence: pop from empty sequence")

// Sequence is an ordered collection of elements labelled by an ID.
//
// The ID is an opaque key; it is not affected by pushing, popping or
// reversing elements.
type Sequence[E comparable] struct {
	ID       string
	elements []E
}

// New creates a sequence holding a copy of the given elements.
func New[E comparable](id string, elements ...E) *Sequence[E] {
	elems := make([]E, len(elements))
	copy(elems, elements)
	return &Sequence[E]{ID: id, elements: elems}
}

// WithCapacity creates an empty sequence with room for n elements.
func WithCapacity[E comparable](id string, n int) *Sequence[E] {
	return &Sequence[E]{ID: id, elements: make([]E, 0, n)}
}

// Len returns the number of elements.
func (s *Sequence[E]) Len() int {
	return len(s.elements)
}

// At returns the element at index i (0-based). It panics if i is out of
// range, like indexing a slice.
func (s *Sequence[E]) At(i int) E {
	return s.elements[i]
}

// Push appends an element.
func (s *Sequence[E]) Push(e E) {
	s.elements = append(s.elements, e)
}

// Pop removes and returns the last element.
func (s *Sequence[E]) Pop() (E, error) {
	var zero E
	n := len(s.elements)
	if n == 0 {
		return zero, errors.Wrap(ErrEmptySequence, s.ID)
	}
	e := s.elements[n-1]
	s.elements[n-1] = zero
	s.elements = s.elements[:n-1]
	return e, nil
}

// Reversed returns a new sequence with the elements in reverse order and the
// same ID.
func (s *Sequence[E]) Reversed() *Sequence[E] {
	n := len(s.elements)
	elems := make([]E, n)
	for i, e := range s.elements {
		elems[n-1-i] = e
	}
	return &Sequence[E]{ID: s.ID, elements: elems}
}

// Elements returns a copy of the elements.
func (s *Sequence[E]) Elements() []E {
	elems := make([]E, len(s.elements))
	copy(elems, s.elements)
	return elems
}

// Key returns the identity key of the sequence.
func (s *Sequence[E]) Key() string {
	return s.ID
}

func (s *Sequence[E]) String() string {
	parts := make([]string, len(s.elements))
	for i, e := range s.elements {
		parts[i] = fmt.Sprint(e)
	}
	return s.ID + ": " + strings.Join(parts, " ")
}
