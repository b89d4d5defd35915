package calculator

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies a figurate shape family. Kind n > 0 selects the
// (n+2)-gonal numbers; Pebble is the degenerate family whose value is always 1.
type Kind int

const (
	Pebble Kind = iota
	Triangle
	Square
	Pentagon
	Hexagon
	Heptagon
	Octagon
)

const (
	MinKind = Pebble
	MaxKind = Octagon
)

var kindLabels = [...]string{
	Pebble:   "Pebble",
	Triangle: "Triangle",
	Square:   "Square",
	Pentagon: "Pentagon",
	Hexagon:  "Hexagon",
	Heptagon: "Heptagon",
	Octagon:  "Octagon",
}

var kindOEIS = [...]string{
	Pebble:   "",
	Triangle: "A000217",
	Square:   "A000290",
	Pentagon: "A000326",
	Hexagon:  "A000384",
	Heptagon: "A000566",
	Octagon:  "A000567",
}

// Valid reports whether k names one of the supported shape families.
func (k Kind) Valid() bool {
	return k >= MinKind && k <= MaxKind
}

// Adjustable reports whether figures of this kind may change size.
func (k Kind) Adjustable() bool {
	return k.Valid() && k != Pebble
}

// Sides returns the number of polygon sides shown for the kind.
func (k Kind) Sides() int {
	if k == Pebble {
		return 1
	}
	return int(k) + 2
}

// OEIS returns the A-number of the kind's sequence, or "" for Pebble.
func (k Kind) OEIS() string {
	if !k.Valid() {
		return ""
	}
	return kindOEIS[k]
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindLabels[k]
}

// Kinds returns every kind in palette order.
func Kinds() []Kind {
	out := make([]Kind, 0, int(MaxKind)+1)
	for k := MinKind; k <= MaxKind; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind accepts either a shape label ("square", case-insensitive) or its
// decimal kind number ("2").
func ParseKind(raw string) (Kind, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		k := Kind(n)
		if !k.Valid() {
			return 0, fmt.Errorf("%w: %d", ErrInvalidKind, n)
		}
		return k, nil
	}
	for k, label := range kindLabels {
		if strings.EqualFold(label, raw) {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidKind, raw)
}

// Calculator describes the behaviour required from a figurate value source.
type Calculator interface {
	Value(kind Kind, size int) int
}
