package calculator

import (
	"errors"
	"fmt"
	"slices"
	"testing"
)

func TestValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		kind Kind
		want []int
	}{
		{name: "Pebble", kind: Pebble, want: []int{1, 1, 1, 1, 1, 1}},
		{name: "Triangle", kind: Triangle, want: []int{1, 3, 6, 10, 15, 21}},
		{name: "Square", kind: Square, want: []int{1, 4, 9, 16, 25, 36}},
		{name: "Pentagon", kind: Pentagon, want: []int{1, 5, 12, 22, 35, 51}},
		{name: "Hexagon", kind: Hexagon, want: []int{1, 6, 15, 28, 45, 66}},
		{name: "Heptagon", kind: Heptagon, want: []int{1, 7, 18, 34, 55, 81}},
		{name: "Octagon", kind: Octagon, want: []int{1, 8, 21, 40, 65, 96}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			for i, want := range tc.want {
				size := i + 1
				if got := Value(tc.kind, size); got != want {
					t.Fatalf("Value(%v, %d) = %d, want %d", tc.kind, size, got, want)
				}
			}
		})
	}
}

func TestValueClosedForms(t *testing.T) {
	t.Parallel()

	for size := 1; size <= 200; size++ {
		if got, want := Value(Triangle, size), size*(size+1)/2; got != want {
			t.Fatalf("triangular(%d) = %d, want %d", size, got, want)
		}
		if got, want := Value(Square, size), size*size; got != want {
			t.Fatalf("square(%d) = %d, want %d", size, got, want)
		}
		if got := Value(Pebble, size); got != 1 {
			t.Fatalf("pebble(%d) = %d, want 1", size, got)
		}
	}
}

func TestValueIsExactInteger(t *testing.T) {
	t.Parallel()

	// Compare against the doubled formula so a truncated half would show up.
	for _, kind := range Kinds()[1:] {
		for size := 1; size <= 500; size++ {
			doubled := 2*size + int(kind)*(size-1)*size
			if doubled%2 != 0 {
				t.Fatalf("odd doubled value for kind %v size %d", kind, size)
			}
			if got := Value(kind, size); got*2 != doubled {
				t.Fatalf("Value(%v, %d) = %d, want %d", kind, size, got, doubled/2)
			}
		}
	}
}

func TestValueFirstTermIsOne(t *testing.T) {
	t.Parallel()

	for _, kind := range Kinds() {
		if got := Value(kind, 1); got != 1 {
			t.Fatalf("Value(%v, 1) = %d, want 1", kind, got)
		}
	}
}

func TestValueStrictlyIncreasing(t *testing.T) {
	t.Parallel()

	for _, kind := range Kinds()[1:] {
		prev := Value(kind, 1)
		for size := 2; size <= 1000; size++ {
			cur := Value(kind, size)
			if cur <= prev {
				t.Fatalf("kind %v not increasing at size %d: %d <= %d", kind, size, cur, prev)
			}
			prev = cur
		}
	}
}

func TestNewDelegatesToValue(t *testing.T) {
	t.Parallel()

	calc := New()
	if got := calc.Value(Hexagon, 4); got != 28 {
		t.Fatalf("expected 28, got %d", got)
	}
}

func TestChecked(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind    Kind
		size    int
		want    int
		wantErr error
	}{
		{kind: Square, size: 3, want: 9},
		{kind: Pebble, size: 40, want: 1},
		{kind: Kind(-1), size: 1, wantErr: ErrInvalidKind},
		{kind: Kind(7), size: 1, wantErr: ErrInvalidKind},
		{kind: Triangle, size: 0, wantErr: ErrInvalidSize},
		{kind: Pebble, size: -3, wantErr: ErrInvalidSize},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(fmt.Sprintf("%d/%d", tc.kind, tc.size), func(t *testing.T) {
			got, err := Checked(tc.kind, tc.size)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
			if got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestSequence(t *testing.T) {
	t.Parallel()

	got, err := Sequence(Pentagon, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []int{1, 5, 12, 22, 35}; !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	for _, count := range []int{0, -1, MaxSequenceLength + 1} {
		if _, err := Sequence(Square, count); !errors.Is(err, ErrInvalidCount) {
			t.Fatalf("expected ErrInvalidCount for %d, got %v", count, err)
		}
	}
	if _, err := Sequence(Kind(9), 3); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestKindMetadata(t *testing.T) {
	t.Parallel()

	if got := len(Kinds()); got != 7 {
		t.Fatalf("expected 7 kinds, got %d", got)
	}
	if Pebble.Adjustable() || !Octagon.Adjustable() || Kind(12).Adjustable() {
		t.Fatalf("unexpected adjustability")
	}
	if Pebble.Sides() != 1 || Triangle.Sides() != 3 || Octagon.Sides() != 8 {
		t.Fatalf("unexpected side counts")
	}
	if Pebble.OEIS() != "" || Square.OEIS() != "A000290" {
		t.Fatalf("unexpected OEIS ids")
	}
	if Heptagon.String() != "Heptagon" || Kind(42).String() != "Kind(42)" {
		t.Fatalf("unexpected labels: %s %s", Heptagon, Kind(42))
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	valid := map[string]Kind{
		"0":        Pebble,
		"6":        Octagon,
		"square":   Square,
		" Hexagon": Hexagon,
		"PEBBLE":   Pebble,
	}
	for raw, want := range valid {
		got, err := ParseKind(raw)
		if err != nil {
			t.Fatalf("ParseKind(%q) returned error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseKind(%q) = %v, want %v", raw, got, want)
		}
	}

	for _, raw := range []string{"7", "-1", "circle", ""} {
		if _, err := ParseKind(raw); !errors.Is(err, ErrInvalidKind) {
			t.Fatalf("expected ErrInvalidKind for %q, got %v", raw, err)
		}
	}
}

func BenchmarkValue(b *testing.B) {
	calc := New()
	for i := 0; i < b.N; i++ {
		_ = calc.Value(Octagon, i%1000+1)
	}
}
