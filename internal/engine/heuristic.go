package engine

import (
	"math"

	"github.com/piwi3910/rectpack/internal/geom"
	"github.com/piwi3910/rectpack/internal/model"
)

// scoreFunc rates placing candidate inside free. It returns a primary score
// and an integer tiebreak, lower being better for both.
type scoreFunc func(b *MaxSpaceBin, candidate, free geom.Rect) (float64, int)

var scorers = map[model.Heuristic]scoreFunc{
	model.HeuristicBestAreaFit:       scoreBestAreaFit,
	model.HeuristicTouchingPerimeter: scoreTouchingPerimeter,
	model.HeuristicTopRightDistance:  scoreTopRightDistance,
}

// scorerFor returns the scoring function for h. Unknown names fall back to
// best-area-fit; Options.Validate is where they are rejected.
func scorerFor(h model.Heuristic) scoreFunc {
	if fn, ok := scorers[h]; ok {
		return fn
	}
	return scoreBestAreaFit
}

// scoreBestAreaFit prefers the free rectangle that leaves the least unused
// area, breaking ties on the shorter leftover side.
func scoreBestAreaFit(_ *MaxSpaceBin, candidate, free geom.Rect) (float64, int) {
	waste := free.Area() - candidate.Area()
	shortSide := min(free.Width-candidate.Width, free.Height-candidate.Height)
	return float64(waste), shortSide
}

// scoreTouchingPerimeter prefers positions that share the most edge length
// with the bin walls and with already placed items.
func scoreTouchingPerimeter(b *MaxSpaceBin, candidate, _ geom.Rect) (float64, int) {
	return -float64(b.touchingPerimeter(candidate, -1)), 0
}

// scoreTopRightDistance prefers positions whose top-right corner lies far from
// the bin's top-right corner, which keeps items packed toward the origin.
func scoreTopRightDistance(b *MaxSpaceBin, candidate, _ geom.Rect) (float64, int) {
	dx := float64(b.width - candidate.Right())
	dy := float64(b.height - candidate.Top())
	return -math.Hypot(dx, dy), 0
}
