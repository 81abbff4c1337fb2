package model

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/piwi3910/rectpack/internal/geom"
)

// Item represents a rectangle that has to be packed into a bin.
type Item struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Quantity int    `json:"quantity"`
}

func NewItem(label string, w, h, qty int) Item {
	return Item{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Width:    w,
		Height:   h,
		Quantity: qty,
	}
}

// Size returns the upright dimensions of the item.
func (it Item) Size() geom.Size {
	return geom.Size{Width: it.Width, Height: it.Height}
}

// Area returns the area of a single unit of the item.
func (it Item) Area() int {
	return it.Width * it.Height
}

// Expand turns item quantities into individual single-unit items, keeping
// the input order. Items with a quantity below one count as one.
func Expand(items []Item) []Item {
	var expanded []Item
	for _, it := range items {
		n := it.Quantity
		if n < 1 {
			n = 1
		}
		for i := 0; i < n; i++ {
			cp := it
			cp.Quantity = 1
			if n > 1 {
				cp.ID = fmt.Sprintf("%s-%d", it.ID, i+1)
			}
			expanded = append(expanded, cp)
		}
	}
	return expanded
}

// TotalArea returns the summed area of all items, honoring quantities.
func TotalArea(items []Item) int {
	total := 0
	for _, it := range items {
		n := it.Quantity
		if n < 1 {
			n = 1
		}
		total += it.Area() * n
	}
	return total
}

// Instance is a bin size and the ordered items to pack into bins of that size.
type Instance struct {
	Name      string `json:"name"`
	BinWidth  int    `json:"bin_width"`
	BinHeight int    `json:"bin_height"`
	Items     []Item `json:"items"`
}

// Heuristic selects how candidate positions inside a bin are scored.
type Heuristic string

const (
	HeuristicBestAreaFit       Heuristic = "best-area-fit"      // Least wasted area, then shortest leftover side
	HeuristicTouchingPerimeter Heuristic = "touching-perimeter" // Most boundary shared with the bin and placed items
	HeuristicTopRightDistance  Heuristic = "top-right-distance" // Farthest from the bin's top-right corner
)

// Heuristics lists every supported heuristic in a stable order.
var Heuristics = []Heuristic{
	HeuristicBestAreaFit,
	HeuristicTouchingPerimeter,
	HeuristicTopRightDistance,
}

// ParseHeuristic accepts the canonical names plus a few short aliases.
func ParseHeuristic(s string) (Heuristic, bool) {
	switch s {
	case "best-area-fit", "baf", "bestareafit":
		return HeuristicBestAreaFit, true
	case "touching-perimeter", "tp", "touchingperimeter":
		return HeuristicTouchingPerimeter, true
	case "top-right-distance", "top-right-corner-distance", "trcd", "toprightcornerdistance":
		return HeuristicTopRightDistance, true
	default:
		return "", false
	}
}

// Strategy selects how items are distributed across bins.
type Strategy string

const (
	StrategyBestFit  Strategy = "best-fit"  // Evaluate every open bin and take the best score
	StrategyFirstFit Strategy = "first-fit" // Take the first open bin that admits the item
)

// Strategies lists every supported strategy in a stable order.
var Strategies = []Strategy{StrategyBestFit, StrategyFirstFit}

func ParseStrategy(s string) (Strategy, bool) {
	switch s {
	case "best-fit", "bestfit", "best":
		return StrategyBestFit, true
	case "first-fit", "firstfit", "first":
		return StrategyFirstFit, true
	default:
		return "", false
	}
}

// Order selects the sequence in which items are presented to the engine.
type Order string

const (
	OrderInput    Order = "input"     // As loaded
	OrderAreaDesc Order = "area-desc" // Largest area first, stable
	OrderShuffle  Order = "shuffle"   // Seeded random permutation
)

func ParseOrder(s string) (Order, bool) {
	switch s {
	case "input", "none", "":
		return OrderInput, true
	case "area-desc", "area":
		return OrderAreaDesc, true
	case "shuffle", "random":
		return OrderShuffle, true
	default:
		return "", false
	}
}

// Settings holds the packing options of a single run.
type Settings struct {
	Heuristic     Heuristic `json:"heuristic" toml:"heuristic"`
	Strategy      Strategy  `json:"strategy" toml:"strategy"`
	AllowRotation bool      `json:"allow_rotation" toml:"allow_rotation"`
	Order         Order     `json:"order" toml:"order"`
	Seed          int64     `json:"seed" toml:"seed"` // Used when Order is OrderShuffle
}

func DefaultSettings() Settings {
	return Settings{
		Heuristic:     HeuristicBestAreaFit,
		Strategy:      StrategyBestFit,
		AllowRotation: false,
		Order:         OrderInput,
		Seed:          12345,
	}
}

// Placement represents a single item placed in a bin.
type Placement struct {
	Item    Item `json:"item"`
	X       int  `json:"x"`
	Y       int  `json:"y"`
	Width   int  `json:"width"`  // Placed width, after rotation
	Height  int  `json:"height"` // Placed height, after rotation
	Rotated bool `json:"rotated"`
}

// Rect returns the occupied region of the placement.
func (p Placement) Rect() geom.Rect {
	return geom.Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}

// BinResult represents one bin with its placed items.
type BinResult struct {
	Index      int         `json:"index"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Placements []Placement `json:"placements"`

	// Share of the placed items' perimeter touching a wall or another item, in [0, 1]
	TouchingRatio float64 `json:"touching_ratio"`
}

// UsedArea returns the total area covered by placed items.
func (br BinResult) UsedArea() int {
	total := 0
	for _, p := range br.Placements {
		total += p.Width * p.Height
	}
	return total
}

// TotalArea returns the bin area.
func (br BinResult) TotalArea() int {
	return br.Width * br.Height
}

// Efficiency returns the usage percentage.
func (br BinResult) Efficiency() float64 {
	ta := br.TotalArea()
	if ta == 0 {
		return 0
	}
	return float64(br.UsedArea()) / float64(ta) * 100.0
}

// PackResult holds a full packing.
type PackResult struct {
	BinWidth   int         `json:"bin_width"`
	BinHeight  int         `json:"bin_height"`
	Settings   Settings    `json:"settings"`
	LowerBound int         `json:"lower_bound"`
	Bins       []BinResult `json:"bins"`
}

// NumberOfBins returns the number of bins in the packing, including empty ones.
func (pr PackResult) NumberOfBins() int {
	return len(pr.Bins)
}

// ItemCount returns the number of placed items across all bins.
func (pr PackResult) ItemCount() int {
	total := 0
	for _, b := range pr.Bins {
		total += len(b.Placements)
	}
	return total
}

// TotalEfficiency returns overall bin usage percentage.
func (pr PackResult) TotalEfficiency() float64 {
	var used, total int
	for _, b := range pr.Bins {
		used += b.UsedArea()
		total += b.TotalArea()
	}
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100.0
}

// Run ties an instance, the settings used and the resulting packing together
// for save/load.
type Run struct {
	Name     string      `json:"name"`
	Instance Instance    `json:"instance"`
	Settings Settings    `json:"settings"`
	Result   *PackResult `json:"result,omitempty"`
}
