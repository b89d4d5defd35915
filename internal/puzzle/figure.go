package puzzle

import "github.com/PeterLuschny/FigurativePartitions/internal/calculator"

// Figure is one placed shape. Value is a cache of calculator.Value(Kind, Size)
// and is refreshed on every size change.
type Figure struct {
	ID    int             `json:"id"`
	Kind  calculator.Kind `json:"kind"`
	Size  int             `json:"size"`
	Value int             `json:"value"`
}

// Controls lists the global actions available for the active figure.
type Controls struct {
	Increment bool `json:"increment"`
	Decrement bool `json:"decrement"`
	Remove    bool `json:"remove"`
}

// Snapshot is a read-only copy of everything a presentation layer renders.
type Snapshot struct {
	Figures    []Figure          `json:"figures"`
	Total      int               `json:"total"`
	Target     int               `json:"target"`
	Won        bool              `json:"won"`
	Operations int               `json:"operations"`
	UsedKinds  []calculator.Kind `json:"usedKinds"`
	ActiveID   *int              `json:"activeId"`
	Controls   Controls          `json:"controls"`
}
