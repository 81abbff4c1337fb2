package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/piwi3910/rectpack/internal/geom"
	"github.com/piwi3910/rectpack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id string, w, h int) model.Item {
	return model.Item{ID: id, Label: id, Width: w, Height: h, Quantity: 1}
}

func opts(h model.Heuristic) Options {
	return Options{Heuristic: h}
}

func at(it model.Item, x, y int) Placement {
	return Placement{Item: it, Rect: geom.NewRect(x, y, it.Size())}
}

func TestNewMaxSpaceBin_SingleFreeRect(t *testing.T) {
	b := NewMaxSpaceBin(10, 8)

	assert.True(t, b.IsEmpty())
	assert.Equal(t, []geom.Rect{{Width: 10, Height: 8}}, b.FreeRects())
	assert.Equal(t, 0, b.OccupiedArea())
	assert.True(t, b.IsFeasible())
}

func TestEvaluate_ScoresAfterFirstInsert(t *testing.T) {
	// 2x3 at the origin leaves free rects (0,3,10,7) and (2,0,8,10).
	newBin := func() *MaxSpaceBin {
		b := NewMaxSpaceBin(10, 10)
		require.True(t, b.Insert(item("a", 2, 3), opts(model.HeuristicBestAreaFit)))
		require.Equal(t, geom.Rect{X: 0, Y: 0, Width: 2, Height: 3}, b.Items()[0].Rect)
		return b
	}

	tests := []struct {
		heuristic model.Heuristic
		score     float64
		rect      geom.Rect
	}{
		{model.HeuristicBestAreaFit, 64, geom.Rect{X: 0, Y: 3, Width: 3, Height: 2}},
		{model.HeuristicTouchingPerimeter, -5, geom.Rect{X: 2, Y: 0, Width: 3, Height: 2}},
		{model.HeuristicTopRightDistance, -math.Sqrt(89), geom.Rect{X: 2, Y: 0, Width: 3, Height: 2}},
	}
	for _, tt := range tests {
		t.Run(string(tt.heuristic), func(t *testing.T) {
			b := newBin()
			p, ok := b.Evaluate(item("b", 3, 2), opts(tt.heuristic))
			require.True(t, ok)
			assert.InDelta(t, tt.score, p.Score, 0.01)
			assert.Equal(t, tt.rect, p.Rect)
			assert.False(t, p.Rotated)
			assert.Equal(t, 1, b.Len(), "evaluate must not mutate")

			rotating := Options{Heuristic: tt.heuristic, AllowRotation: true}
			p, ok = b.Evaluate(item("b", 3, 2), rotating)
			require.True(t, ok)
			assert.InDelta(t, tt.score, p.Score, 0.01, "rotation does not improve the best score")
		})
	}
}

func TestEvaluate_TopRightDistanceValue(t *testing.T) {
	b := NewMaxSpaceBin(10, 10)
	require.True(t, b.Insert(item("a", 2, 3), opts(model.HeuristicBestAreaFit)))

	p, ok := b.Evaluate(item("b", 3, 2), opts(model.HeuristicTopRightDistance))
	require.True(t, ok)
	assert.InDelta(t, -9.433, p.Score, 0.01)
}

func TestInsert_FailureLeavesBinUnchanged(t *testing.T) {
	b := NewMaxSpaceBin(10, 10)
	o := opts(model.HeuristicBestAreaFit)

	require.True(t, b.Insert(item("a", 5, 3), o))
	require.True(t, b.Insert(item("b", 3, 6), o))
	assert.Equal(t, 2, b.Len())

	free := b.FreeRects()
	assert.False(t, b.Insert(item("c", 8, 9), o))
	assert.False(t, b.Insert(item("c", 8, 9), Options{Heuristic: model.HeuristicBestAreaFit, AllowRotation: true}))
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, free, b.FreeRects())
	assert.Equal(t, 33, b.OccupiedArea())
	assert.True(t, b.IsFeasible())
}

func TestIsFeasible_OverlapAndAdjacency(t *testing.T) {
	small, large := item("s", 2, 2), item("l", 3, 3)

	stacked := NewMaxSpaceBin(10, 10)
	stacked.Place(at(small, 0, 0))
	stacked.Place(at(large, 0, 0))
	assert.False(t, stacked.IsFeasible(), "items at the same position overlap")

	adjacent := NewMaxSpaceBin(10, 10)
	adjacent.Place(at(small, 0, 0))
	adjacent.Place(at(large, 2, 0))
	assert.True(t, adjacent.IsFeasible(), "sharing an edge is not overlap")
}

func TestIsFeasible_OutOfBounds(t *testing.T) {
	wide := NewMaxSpaceBin(10, 10)
	wide.Place(at(item("w", 11, 1), 0, 0))
	assert.False(t, wide.IsFeasible())

	tall := NewMaxSpaceBin(10, 10)
	tall.Place(at(item("t", 2, 4), 3, 8))
	assert.False(t, tall.IsFeasible())
}

func TestIsFeasible_DetectsBadFreeSet(t *testing.T) {
	b := NewMaxSpaceBin(10, 10)
	b.free = append(b.free, geom.Rect{X: 1, Y: 1, Width: 2, Height: 2})
	assert.False(t, b.IsFeasible(), "contained free rect")

	b = NewMaxSpaceBin(10, 10)
	b.free = append(b.free, b.free[0])
	assert.False(t, b.IsFeasible(), "duplicate free rect")

	b = NewMaxSpaceBin(10, 10)
	b.occupied = 5
	assert.False(t, b.IsFeasible(), "stale occupied area")
}

func TestInsert_FeasibleAfterEveryInsert(t *testing.T) {
	for _, h := range model.Heuristics {
		for _, rotate := range []bool{false, true} {
			rng := rand.New(rand.NewSource(7))
			b := NewMaxSpaceBin(40, 30)
			o := Options{Heuristic: h, AllowRotation: rotate}
			for i := 0; i < 200; i++ {
				it := item("x", 1+rng.Intn(12), 1+rng.Intn(12))
				if !b.Insert(it, o) {
					continue
				}
				require.True(t, b.IsFeasible(), "heuristic %s rotate %v after insert %d", h, rotate, i)
			}
			assert.Greater(t, b.Len(), 0)
		}
	}
}

func TestInsert_FillingTheBinLeavesNoFreeSpace(t *testing.T) {
	b := NewMaxSpaceBin(4, 4)
	o := opts(model.HeuristicBestAreaFit)
	for i := 0; i < 4; i++ {
		require.True(t, b.Insert(item("q", 2, 2), o))
	}
	assert.Empty(t, b.FreeRects())
	assert.Equal(t, 1.0, b.Occupancy())
	assert.True(t, b.IsFeasible())
	assert.False(t, b.Insert(item("z", 1, 1), o))
}

func TestEvaluate_RotationFindsFit(t *testing.T) {
	b := NewMaxSpaceBin(10, 4)

	_, ok := b.Evaluate(item("r", 3, 8), opts(model.HeuristicBestAreaFit))
	assert.False(t, ok)

	p, ok := b.Evaluate(item("r", 3, 8), Options{Heuristic: model.HeuristicBestAreaFit, AllowRotation: true})
	require.True(t, ok)
	assert.True(t, p.Rotated)
	assert.Equal(t, geom.Rect{X: 0, Y: 0, Width: 8, Height: 3}, p.Rect)
}

func TestEvaluate_UprightWinsTies(t *testing.T) {
	// In an empty square bin both orientations score identically.
	b := NewMaxSpaceBin(10, 10)
	for _, h := range model.Heuristics {
		p, ok := b.Evaluate(item("t", 4, 6), Options{Heuristic: h, AllowRotation: true})
		require.True(t, ok)
		assert.False(t, p.Rotated, string(h))
	}
}

func TestEvaluate_RotationBeatsUprightFit(t *testing.T) {
	// A 15x10 item fits a 20x15 bin upright, but standing it on its short
	// side scores better under every heuristic.
	tests := []struct {
		heuristic model.Heuristic
		upright   float64
		score     float64
	}{
		{model.HeuristicBestAreaFit, 150, 150}, // same waste, leftover short side 0 instead of 5
		{model.HeuristicTouchingPerimeter, -25, -35},
		{model.HeuristicTopRightDistance, -math.Hypot(5, 5), -10},
	}
	for _, tt := range tests {
		t.Run(string(tt.heuristic), func(t *testing.T) {
			b := NewMaxSpaceBin(20, 15)

			upright, ok := b.Evaluate(item("r", 15, 10), opts(tt.heuristic))
			require.True(t, ok)
			assert.False(t, upright.Rotated)
			assert.InDelta(t, tt.upright, upright.Score, 1e-9)

			p, ok := b.Evaluate(item("r", 15, 10), Options{Heuristic: tt.heuristic, AllowRotation: true})
			require.True(t, ok)
			assert.True(t, p.Rotated)
			assert.Equal(t, geom.Rect{X: 0, Y: 0, Width: 10, Height: 15}, p.Rect)
			assert.InDelta(t, tt.score, p.Score, 1e-9)
		})
	}
}

func TestTouchingPerimeter_FullSpanCountsBothWalls(t *testing.T) {
	b := NewMaxSpaceBin(10, 4)

	p, ok := b.Evaluate(item("s", 10, 2), opts(model.HeuristicTouchingPerimeter))
	require.True(t, ok)
	// left 2 + right 2 + bottom 10
	assert.Equal(t, -14.0, p.Score)
	assert.Equal(t, 14, b.touchingPerimeter(geom.Rect{Width: 10, Height: 2}, -1))
}

func TestEvaluate_DoubleRotationKeepsScore(t *testing.T) {
	b := NewMaxSpaceBin(10, 10)
	require.True(t, b.Insert(item("a", 2, 3), opts(model.HeuristicBestAreaFit)))

	original := item("b", 3, 2)
	size := original.Size().Rotated().Rotated()
	twice := item("b", size.Width, size.Height)
	for _, h := range model.Heuristics {
		p1, ok1 := b.Evaluate(original, opts(h))
		p2, ok2 := b.Evaluate(twice, opts(h))
		require.True(t, ok1)
		require.True(t, ok2)
		assert.Equal(t, p1.Score, p2.Score, string(h))
		assert.Equal(t, p1.Rect, p2.Rect, string(h))
	}
}

func TestPruneFreeSpaces_Idempotent(t *testing.T) {
	rects := []geom.Rect{
		{X: 0, Y: 0, Width: 10, Height: 10},
		{X: 2, Y: 2, Width: 3, Height: 3},
		{X: 0, Y: 5, Width: 4, Height: 5},
		{X: 6, Y: 0, Width: 4, Height: 4},
		{X: 6, Y: 0, Width: 4, Height: 4},
		{X: 20, Y: 0, Width: 5, Height: 5},
		{X: 20, Y: 0, Width: 5, Height: 5},
		{X: 21, Y: 1, Width: 1, Height: 1},
	}

	once := pruneFreeSpaces(rects)
	twice := pruneFreeSpaces(once)

	assert.Equal(t, []geom.Rect{
		{X: 0, Y: 0, Width: 10, Height: 10},
		{X: 20, Y: 0, Width: 5, Height: 5},
	}, once)
	assert.Equal(t, once, twice)
}

func TestPruneFreeSpaces_KeepsFirstOfEqualRects(t *testing.T) {
	a := geom.Rect{X: 1, Y: 1, Width: 3, Height: 3}
	b := geom.Rect{X: 5, Y: 0, Width: 2, Height: 9}
	assert.Equal(t, []geom.Rect{a, b}, pruneFreeSpaces([]geom.Rect{a, b, a, b}))
}

func TestFragmentsAround(t *testing.T) {
	free := geom.Rect{X: 0, Y: 0, Width: 10, Height: 10}
	placed := geom.Rect{X: 3, Y: 4, Width: 2, Height: 2}

	got := fragmentsAround(free, placed)

	assert.Equal(t, []geom.Rect{
		{X: 0, Y: 0, Width: 10, Height: 4},
		{X: 0, Y: 6, Width: 10, Height: 4},
		{X: 0, Y: 0, Width: 3, Height: 10},
		{X: 5, Y: 0, Width: 5, Height: 10},
	}, got)
}

func TestSplitFreeSpaces_KeepsDisjointRects(t *testing.T) {
	free := []geom.Rect{
		{X: 0, Y: 0, Width: 4, Height: 4},
		{X: 6, Y: 6, Width: 4, Height: 4},
	}
	placed := geom.Rect{X: 0, Y: 0, Width: 4, Height: 2}

	got := splitFreeSpaces(free, placed)

	assert.Equal(t, []geom.Rect{
		{X: 6, Y: 6, Width: 4, Height: 4},
		{X: 0, Y: 2, Width: 4, Height: 2},
	}, got)
}

func TestTouchingPerimeterRatio(t *testing.T) {
	b := NewMaxSpaceBin(4, 2)
	b.Place(at(item("a", 2, 2), 0, 0))
	b.Place(at(item("b", 2, 2), 2, 0))

	// Each 2x2 touches three walls (6) and its neighbour (2) of its perimeter 8.
	assert.InDelta(t, 1.0, b.TouchingPerimeterRatio(), 1e-9)
	assert.Equal(t, 0.0, NewMaxSpaceBin(4, 4).TouchingPerimeterRatio())
}

func TestClone_IsIndependent(t *testing.T) {
	b := NewMaxSpaceBin(10, 10)
	require.True(t, b.Insert(item("a", 4, 4), opts(model.HeuristicBestAreaFit)))

	c := b.Clone()
	require.True(t, c.Insert(item("b", 4, 4), opts(model.HeuristicBestAreaFit)))

	assert.Equal(t, 1, b.Len())
	assert.Len(t, c.Items(), 2)
	assert.Equal(t, 16, b.OccupiedArea())
	assert.Equal(t, 32, c.OccupiedArea())
}

func TestReset(t *testing.T) {
	b := NewMaxSpaceBin(10, 10)
	require.True(t, b.Insert(item("a", 4, 4), opts(model.HeuristicBestAreaFit)))
	b.Reset()

	assert.True(t, b.IsEmpty())
	assert.Equal(t, []geom.Rect{{Width: 10, Height: 10}}, b.FreeRects())
}
