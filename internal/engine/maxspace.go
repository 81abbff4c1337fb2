package engine

import (
	"slices"

	"github.com/piwi3910/rectpack/internal/geom"
	"github.com/piwi3910/rectpack/internal/model"
)

// MaxSpaceBin tracks the free space of a bin as the set of maximal empty
// rectangles. Free rectangles may overlap each other but never an item, and
// none is contained in another.
type MaxSpaceBin struct {
	width    int
	height   int
	items    []Placement
	free     []geom.Rect
	occupied int
}

// NewMaxSpaceBin creates an empty bin whose only free rectangle is the bin.
func NewMaxSpaceBin(width, height int) *MaxSpaceBin {
	b := &MaxSpaceBin{width: width, height: height}
	b.Reset()
	return b
}

func (b *MaxSpaceBin) Width() int  { return b.width }
func (b *MaxSpaceBin) Height() int { return b.height }

// Len returns the number of placed items.
func (b *MaxSpaceBin) Len() int { return len(b.items) }

// IsEmpty reports whether nothing has been placed yet.
func (b *MaxSpaceBin) IsEmpty() bool { return len(b.items) == 0 }

// Items returns a copy of the placements in insertion order.
func (b *MaxSpaceBin) Items() []Placement { return slices.Clone(b.items) }

// FreeRects returns a copy of the current maximal free rectangles.
func (b *MaxSpaceBin) FreeRects() []geom.Rect { return slices.Clone(b.free) }

// OccupiedArea returns the summed area of all placed items.
func (b *MaxSpaceBin) OccupiedArea() int { return b.occupied }

// Occupancy returns the occupied fraction of the bin area in [0, 1].
func (b *MaxSpaceBin) Occupancy() float64 {
	total := b.width * b.height
	if total == 0 {
		return 0
	}
	return float64(b.occupied) / float64(total)
}

// TouchingPerimeterRatio returns how much of the placed items' perimeter is
// in contact with the bin walls or another item, as a fraction in [0, 1].
func (b *MaxSpaceBin) TouchingPerimeterRatio() float64 {
	touching, perimeter := 0, 0
	for i, p := range b.items {
		touching += b.touchingPerimeter(p.Rect, i)
		perimeter += p.Rect.Perimeter()
	}
	if perimeter == 0 {
		return 0
	}
	return float64(touching) / float64(perimeter)
}

// Reset empties the bin.
func (b *MaxSpaceBin) Reset() {
	b.items = nil
	b.free = []geom.Rect{{Width: b.width, Height: b.height}}
	b.occupied = 0
}

// Evaluate finds the best placement for item under the configured heuristic.
// For each free rectangle in order the upright orientation is scored first,
// then the rotated one when allowed; a candidate replaces the current best
// only with a strictly better score, so earlier candidates win ties.
func (b *MaxSpaceBin) Evaluate(item model.Item, opts Options) (Placement, bool) {
	score := scorerFor(opts.Heuristic)
	upright := item.Size()

	var (
		best         Placement
		bestTiebreak int
		found        bool
	)
	for _, free := range b.free {
		for _, rotated := range orientations(upright, opts.AllowRotation) {
			size := upright
			if rotated {
				size = upright.Rotated()
			}
			if !size.FitsIn(free.Size()) {
				continue
			}
			candidate := geom.NewRect(free.X, free.Y, size)
			s, tiebreak := score(b, candidate, free)
			if found && (s > best.Score || (s == best.Score && tiebreak >= bestTiebreak)) {
				continue
			}
			best = Placement{Item: item, Rect: candidate, Rotated: rotated, Score: s}
			bestTiebreak = tiebreak
			found = true
		}
	}
	return best, found
}

// orientations lists the rotation flags to try. Square items gain nothing
// from rotation.
func orientations(s geom.Size, allowRotation bool) []bool {
	if allowRotation && s.Width != s.Height {
		return []bool{false, true}
	}
	return []bool{false}
}

// Insert places item at its best position. It reports false and leaves the
// bin unchanged when the item fits nowhere.
func (b *MaxSpaceBin) Insert(item model.Item, opts Options) bool {
	p, ok := b.Evaluate(item, opts)
	if !ok {
		return false
	}
	b.Place(p)
	return true
}

// Place commits p without checking it. Callers replaying or constructing
// layouts are responsible for the result; IsFeasible detects bad ones.
func (b *MaxSpaceBin) Place(p Placement) {
	b.items = append(b.items, p)
	b.occupied += p.Rect.Area()
	b.free = pruneFreeSpaces(splitFreeSpaces(b.free, p.Rect))
}

// IsFeasible verifies that items lie inside the bin without overlapping and
// that the free set is maximal-rect shaped: every free rectangle lies inside
// the bin, avoids all items and is neither duplicated nor contained in another.
func (b *MaxSpaceBin) IsFeasible() bool {
	occupied := 0
	for i, p := range b.items {
		if !p.Rect.Size().Positive() || !p.Rect.Within(b.width, b.height) {
			return false
		}
		for _, q := range b.items[i+1:] {
			if p.Rect.Overlaps(q.Rect) {
				return false
			}
		}
		occupied += p.Rect.Area()
	}
	if occupied != b.occupied {
		return false
	}

	for i, f := range b.free {
		if !f.Size().Positive() || !f.Within(b.width, b.height) {
			return false
		}
		for _, p := range b.items {
			if f.Overlaps(p.Rect) {
				return false
			}
		}
		for _, g := range b.free[i+1:] {
			if f.ContainedIn(g) || g.ContainedIn(f) {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy of the bin.
func (b *MaxSpaceBin) Clone() FreeSpace {
	return &MaxSpaceBin{
		width:    b.width,
		height:   b.height,
		items:    slices.Clone(b.items),
		free:     slices.Clone(b.free),
		occupied: b.occupied,
	}
}

// touchingPerimeter sums the edge length r shares with the four bin walls and
// with every placed item except the one at index skip. Each wall counts on its
// own, so an item spanning the full bin width touches both side walls and
// adds its height twice.
func (b *MaxSpaceBin) touchingPerimeter(r geom.Rect, skip int) int {
	length := 0
	if r.X == 0 {
		length += r.Height
	}
	if r.Right() == b.width {
		length += r.Height
	}
	if r.Y == 0 {
		length += r.Width
	}
	if r.Top() == b.height {
		length += r.Width
	}
	for i, p := range b.items {
		if i != skip {
			length += r.TouchingLength(p.Rect)
		}
	}
	return length
}

// splitFreeSpaces replaces every free rectangle overlapping placed by the
// maximal strips of it that remain free. Untouched rectangles keep their
// order and the new fragments are appended after them.
func splitFreeSpaces(free []geom.Rect, placed geom.Rect) []geom.Rect {
	next := make([]geom.Rect, 0, len(free)+4)
	var fragments []geom.Rect
	for _, f := range free {
		if !f.Overlaps(placed) {
			next = append(next, f)
			continue
		}
		fragments = append(fragments, fragmentsAround(f, placed)...)
	}
	return append(next, fragments...)
}

// fragmentsAround returns the parts of f below, above, left of and right of
// placed, each spanning the full extent of f in the other direction. Only
// strips of positive area are returned.
func fragmentsAround(f, placed geom.Rect) []geom.Rect {
	out := make([]geom.Rect, 0, 4)
	if placed.Y > f.Y {
		out = append(out, geom.Rect{X: f.X, Y: f.Y, Width: f.Width, Height: placed.Y - f.Y})
	}
	if placed.Top() < f.Top() {
		out = append(out, geom.Rect{X: f.X, Y: placed.Top(), Width: f.Width, Height: f.Top() - placed.Top()})
	}
	if placed.X > f.X {
		out = append(out, geom.Rect{X: f.X, Y: f.Y, Width: placed.X - f.X, Height: f.Height})
	}
	if placed.Right() < f.Right() {
		out = append(out, geom.Rect{X: placed.Right(), Y: f.Y, Width: f.Right() - placed.Right(), Height: f.Height})
	}
	return out
}

// pruneFreeSpaces drops every rectangle contained in another one. Of a group
// of identical rectangles only the first is kept. Applying it twice gives the
// same result as applying it once.
func pruneFreeSpaces(free []geom.Rect) []geom.Rect {
	kept := make([]geom.Rect, 0, len(free))
	for i, a := range free {
		redundant := false
		for j, c := range free {
			if i == j || !a.ContainedIn(c) {
				continue
			}
			if a != c || j < i {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, a)
		}
	}
	return kept
}
