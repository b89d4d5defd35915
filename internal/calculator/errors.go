package calculator

import "errors"

var (
	// ErrInvalidKind is returned when a kind lies outside Pebble..Octagon.
	ErrInvalidKind = errors.New("kind must be between 0 and 6")
	// ErrInvalidSize is returned when a size is smaller than 1.
	ErrInvalidSize = errors.New("size must be a positive integer")
	// ErrInvalidCount is returned when a sequence length is out of range.
	ErrInvalidCount = errors.New("count must be between 1 and 64")
)
