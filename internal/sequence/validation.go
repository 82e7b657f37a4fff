package sequence

import "fmt"

// SequenceError is the base error type for encoding and validation.
type SequenceError interface {
	error
	IsSequenceError()
}

// EmptySequenceError is returned when encoding an empty text.
type EmptySequenceError struct {
	ID string
}

func (e *EmptySequenceError) Error() string {
	if e.ID == "" {
		return "sequence must have at least one symbol"
	}
	return fmt.Sprintf("sequence %s must have at least one symbol", e.ID)
}

func (e *EmptySequenceError) IsSequenceError() {}

// InvalidBaseError is returned when a closed vocabulary meets an unknown
// symbol.
type InvalidBaseError struct {
	Position int
	Found    rune
}

func (e *InvalidBaseError) Error() string {
	return fmt.Sprintf("invalid symbol '%c' at position %d", e.Found, e.Position)
}

func (e *InvalidBaseError) IsSequenceError() {}

// ReservedSymbolError is returned when the gap symbol appears in input text.
type ReservedSymbolError struct {
	Position int
}

func (e *ReservedSymbolError) Error() string {
	return fmt.Sprintf("gap symbol '%c' at position %d is reserved", GapSymbol, e.Position)
}

func (e *ReservedSymbolError) IsSequenceError() {}
