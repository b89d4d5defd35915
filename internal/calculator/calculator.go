package calculator

// MaxSequenceLength bounds Sequence so previews stay small.
const MaxSequenceLength = 64

type closedFormCalculator struct{}

// New creates a Calculator based on the closed-form polygonal number formula.
func New() Calculator {
	return closedFormCalculator{}
}

func (closedFormCalculator) Value(kind Kind, size int) int {
	return Value(kind, size)
}

// Value returns the size-th (kind+2)-gonal number, or 1 for Pebble.
// Callers must pass a valid kind and size >= 1; use Checked for untrusted input.
func Value(kind Kind, size int) int {
	if kind == Pebble {
		return 1
	}
	// (size-1)*size is always even, so the division is exact.
	return size + int(kind)*(size-1)*size/2
}

// Checked is Value with its preconditions enforced.
func Checked(kind Kind, size int) (int, error) {
	if !kind.Valid() {
		return 0, ErrInvalidKind
	}
	if size < 1 {
		return 0, ErrInvalidSize
	}
	return Value(kind, size), nil
}

// Sequence returns the first count values of the kind's sequence.
func Sequence(kind Kind, count int) ([]int, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	if count < 1 || count > MaxSequenceLength {
		return nil, ErrInvalidCount
	}

	out := make([]int, count)
	for i := range out {
		out[i] = Value(kind, i+1)
	}
	return out, nil
}
