package puzzle

import (
	"slices"

	"github.com/PeterLuschny/FigurativePartitions/internal/calculator"
)

// DefaultTarget is the target a collection starts with when none is given.
const DefaultTarget = 27

// Collection is the mutable state of one puzzle.
type Collection struct {
	calc calculator.Calculator

	figures    []Figure
	nextID     int
	operations int
	target     int

	active    int
	hasActive bool
}

// Option configures Collection behaviour.
type Option func(*Collection)

// WithCalculator overrides the value source, primarily for tests.
func WithCalculator(calc calculator.Calculator) Option {
	return func(c *Collection) {
		c.calc = calc
	}
}

// New creates an empty collection. A non-positive target falls back to
// DefaultTarget.
func New(target int, opts ...Option) *Collection {
	if target <= 0 {
		target = DefaultTarget
	}
	c := &Collection{
		calc:   calculator.New(),
		nextID: 1,
		target: target,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reset empties the collection and starts a new round with newTarget. Ids and
// the operation counter start over. A non-positive target is ignored.
func (c *Collection) Reset(newTarget int) Outcome {
	if newTarget <= 0 {
		return InvalidTarget
	}
	c.figures = nil
	c.nextID = 1
	c.operations = 0
	c.target = newTarget
	c.ClearSelection()
	return Applied
}

// Add places a size-1 figure of the given kind and makes it active. At most
// one figure per kind is allowed.
func (c *Collection) Add(kind calculator.Kind) (Figure, Outcome) {
	if !kind.Valid() {
		return Figure{}, InvalidKind
	}
	if c.KindInUse(kind) {
		return Figure{}, KindInUse
	}

	fig := Figure{
		ID:    c.nextID,
		Kind:  kind,
		Size:  1,
		Value: c.calc.Value(kind, 1),
	}
	c.nextID++
	c.figures = append(c.figures, fig)
	c.operations++
	c.active, c.hasActive = fig.ID, true
	return fig, Applied
}

// Increment grows the figure with the given id by one.
func (c *Collection) Increment(id int) Outcome {
	idx := c.indexOf(id)
	if idx < 0 {
		return UnknownFigure
	}
	fig := &c.figures[idx]
	if !fig.Kind.Adjustable() {
		return NotAdjustable
	}
	c.resize(fig, fig.Size+1)
	return Applied
}

// Decrement shrinks the figure with the given id by one, never below size 1.
func (c *Collection) Decrement(id int) Outcome {
	idx := c.indexOf(id)
	if idx < 0 {
		return UnknownFigure
	}
	fig := &c.figures[idx]
	if !fig.Kind.Adjustable() {
		return NotAdjustable
	}
	if fig.Size <= 1 {
		return AtMinimum
	}
	c.resize(fig, fig.Size-1)
	return Applied
}

// Remove deletes the figure with the given id, keeping the order of the rest.
func (c *Collection) Remove(id int) Outcome {
	idx := c.indexOf(id)
	if idx < 0 {
		return UnknownFigure
	}
	c.figures = slices.Delete(c.figures, idx, idx+1)
	c.operations++
	if c.hasActive && c.active == id {
		c.ClearSelection()
	}
	return Applied
}

// Select makes the figure with the given id active. An unknown id clears the
// selection instead of leaving a dangling reference.
func (c *Collection) Select(id int) Outcome {
	if c.indexOf(id) < 0 {
		c.ClearSelection()
		return UnknownFigure
	}
	c.active, c.hasActive = id, true
	return Applied
}

// ClearSelection drops the active selection.
func (c *Collection) ClearSelection() {
	c.active, c.hasActive = 0, false
}

// Active returns the active figure. The stored id is checked against the
// current contents on every call.
func (c *Collection) Active() (Figure, bool) {
	if !c.hasActive {
		return Figure{}, false
	}
	return c.Figure(c.active)
}

// Controls reports which actions apply to the active figure.
func (c *Collection) Controls() Controls {
	fig, ok := c.Active()
	if !ok {
		return Controls{}
	}
	return Controls{
		Increment: fig.Kind.Adjustable(),
		Decrement: fig.Kind.Adjustable() && fig.Size > 1,
		Remove:    true,
	}
}

// Figure looks up a figure by id.
func (c *Collection) Figure(id int) (Figure, bool) {
	idx := c.indexOf(id)
	if idx < 0 {
		return Figure{}, false
	}
	return c.figures[idx], true
}

// Figures returns a copy of the figures in placement order.
func (c *Collection) Figures() []Figure {
	return slices.Clone(c.figures)
}

// Len returns the number of placed figures.
func (c *Collection) Len() int {
	return len(c.figures)
}

// Total returns the sum of all figure values.
func (c *Collection) Total() int {
	sum := 0
	for _, fig := range c.figures {
		sum += fig.Value
	}
	return sum
}

// Won reports whether the values sum exactly to the target.
func (c *Collection) Won() bool {
	return c.Total() == c.target
}

// Target returns the current target sum.
func (c *Collection) Target() int {
	return c.target
}

// Operations returns the number of applied user actions since the last reset.
func (c *Collection) Operations() int {
	return c.operations
}

// KindInUse reports whether a figure of the given kind is placed.
func (c *Collection) KindInUse(kind calculator.Kind) bool {
	return slices.ContainsFunc(c.figures, func(f Figure) bool {
		return f.Kind == kind
	})
}

// UsedKinds returns the set of kinds currently placed.
func (c *Collection) UsedKinds() map[calculator.Kind]struct{} {
	used := make(map[calculator.Kind]struct{}, len(c.figures))
	for _, fig := range c.figures {
		used[fig.Kind] = struct{}{}
	}
	return used
}

// Snapshot copies the renderable state.
func (c *Collection) Snapshot() Snapshot {
	used := make([]calculator.Kind, 0, len(c.figures))
	for kind := range c.UsedKinds() {
		used = append(used, kind)
	}
	slices.Sort(used)

	snap := Snapshot{
		Figures:    c.Figures(),
		Total:      c.Total(),
		Target:     c.target,
		Won:        c.Won(),
		Operations: c.operations,
		UsedKinds:  used,
		Controls:   c.Controls(),
	}
	if snap.Figures == nil {
		snap.Figures = []Figure{}
	}
	if fig, ok := c.Active(); ok {
		id := fig.ID
		snap.ActiveID = &id
	}
	return snap
}

func (c *Collection) resize(fig *Figure, size int) {
	fig.Size = size
	fig.Value = c.calc.Value(fig.Kind, size)
	c.operations++
}

func (c *Collection) indexOf(id int) int {
	return slices.IndexFunc(c.figures, func(f Figure) bool {
		return f.ID == id
	})
}
