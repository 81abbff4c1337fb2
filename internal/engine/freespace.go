package engine

import (
	"fmt"

	"github.com/piwi3910/rectpack/internal/geom"
	"github.com/piwi3910/rectpack/internal/model"
)

// Options control how a single item is placed.
type Options struct {
	Heuristic     model.Heuristic
	AllowRotation bool // Also try the item turned by 90 degrees
}

// OptionsFrom extracts the placement options from run settings.
func OptionsFrom(s model.Settings) Options {
	return Options{Heuristic: s.Heuristic, AllowRotation: s.AllowRotation}
}

// Validate reports whether the options name a known heuristic.
func (o Options) Validate() error {
	if _, ok := scorers[o.Heuristic]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownHeuristic, o.Heuristic)
	}
	return nil
}

// Placement is a resolved position and orientation for an item together with
// the heuristic cost of choosing it. Lower scores are better.
type Placement struct {
	Item    model.Item
	Rect    geom.Rect // Occupied region; its size is the item size after rotation
	Rotated bool
	Score   float64
}

// toModel converts the placement to its export form.
func (p Placement) toModel() model.Placement {
	return model.Placement{
		Item:    p.Item,
		X:       p.Rect.X,
		Y:       p.Rect.Y,
		Width:   p.Rect.Width,
		Height:  p.Rect.Height,
		Rotated: p.Rotated,
	}
}

// FreeSpace is a bin together with the bookkeeping that decides where new
// items can go. MaxSpaceBin is the maximal-rectangles implementation; shelf
// or skyline bins would be further implementations.
type FreeSpace interface {
	// Evaluate scores the best placement of item without changing the bin.
	Evaluate(item model.Item, opts Options) (Placement, bool)
	// Insert evaluates and commits the best placement, reporting success.
	Insert(item model.Item, opts Options) bool
	// Place commits p exactly as given.
	Place(p Placement)
	// IsFeasible verifies the bin's invariants.
	IsFeasible() bool

	Width() int
	Height() int
	Items() []Placement
	FreeRects() []geom.Rect
	OccupiedArea() int
	Clone() FreeSpace
}

// binMetrics is implemented by bins that report packing quality.
type binMetrics interface {
	Occupancy() float64
	TouchingPerimeterRatio() float64
}

// BinFactory opens an empty bin of the given size.
type BinFactory func(width, height int) FreeSpace

func newMaxSpaceFreeSpace(width, height int) FreeSpace {
	return NewMaxSpaceBin(width, height)
}
