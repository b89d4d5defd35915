package puzzle

// Outcome reports what a mutating operation did.
type Outcome int

const (
	// Applied means the collection changed.
	Applied Outcome = iota
	InvalidTarget
	InvalidKind
	KindInUse
	UnknownFigure
	NotAdjustable
	AtMinimum
)

var outcomeNames = [...]string{
	Applied:       "applied",
	InvalidTarget: "invalid_target",
	InvalidKind:   "invalid_kind",
	KindInUse:     "kind_in_use",
	UnknownFigure: "unknown_figure",
	NotAdjustable: "not_adjustable",
	AtMinimum:     "at_minimum",
}

// Applied reports whether the operation changed the collection.
func (o Outcome) Applied() bool {
	return o == Applied
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[o]
}
