package engine

import (
	"fmt"

	"github.com/piwi3910/rectpack/internal/geom"
	"github.com/piwi3910/rectpack/internal/model"
)

// Rebuild replays a stored packing into a solution by committing every
// placement as recorded. It only rejects records that are malformed; whether
// the layout is valid is left to IsFeasible on the returned solution.
func Rebuild(res model.PackResult) (*Solution, error) {
	if res.BinWidth <= 0 || res.BinHeight <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidBin, res.BinWidth, res.BinHeight)
	}

	sol := NewSolution(res.BinWidth, res.BinHeight)
	sol.bins = make([]FreeSpace, 0, len(res.Bins))
	sol.opts = OptionsFrom(res.Settings)
	sol.strategy = res.Settings.Strategy
	sol.order, sol.seed = res.Settings.Order, res.Settings.Seed
	sol.lowerBound = res.LowerBound

	for bi, br := range res.Bins {
		if br.Width != res.BinWidth || br.Height != res.BinHeight {
			return nil, fmt.Errorf("%w: bin %d is %dx%d, expected %dx%d",
				ErrInvalidBin, bi, br.Width, br.Height, res.BinWidth, res.BinHeight)
		}
		bin := sol.newBin(res.BinWidth, res.BinHeight)
		for _, pl := range br.Placements {
			p, err := replayPlacement(pl)
			if err != nil {
				return nil, fmt.Errorf("bin %d: %w", bi, err)
			}
			bin.Place(p)
		}
		sol.bins = append(sol.bins, bin)
	}
	return sol, nil
}

// replayPlacement checks that the recorded rectangle is the item's size in
// the recorded orientation.
func replayPlacement(pl model.Placement) (Placement, error) {
	want := pl.Item.Size()
	if pl.Rotated {
		want = want.Rotated()
	}
	got := geom.Size{Width: pl.Width, Height: pl.Height}
	if !got.Positive() || got != want {
		return Placement{}, fmt.Errorf("%w: item %s placed as %s, expected %s",
			ErrInvalidItem, pl.Item.ID, got, want)
	}
	return Placement{Item: pl.Item, Rect: pl.Rect(), Rotated: pl.Rotated}, nil
}

// CheckCoverage reports an error wrapping ErrInfeasiblePacking unless res
// places every unit of the instance items exactly once. Units are matched by
// expanded item ID and upright size.
func CheckCoverage(items []model.Item, res model.PackResult) error {
	type unit struct {
		id   string
		size geom.Size
	}
	expanded := model.Expand(items)
	remaining := make(map[unit]int, len(expanded))
	for _, it := range expanded {
		remaining[unit{it.ID, it.Size()}]++
	}

	for _, bin := range res.Bins {
		for _, p := range bin.Placements {
			u := unit{p.Item.ID, p.Item.Size()}
			n, known := remaining[u]
			switch {
			case !known:
				return fmt.Errorf("%w: item %s (%s) in bin %d is not part of the instance",
					ErrInfeasiblePacking, p.Item.ID, u.size, bin.Index+1)
			case n == 0:
				return fmt.Errorf("%w: item %s (%s) placed more than once",
					ErrInfeasiblePacking, p.Item.ID, u.size)
			}
			remaining[u] = n - 1
		}
	}

	for _, it := range expanded {
		if remaining[unit{it.ID, it.Size()}] > 0 {
			return fmt.Errorf("%w: item %s (%s) was not placed", ErrInfeasiblePacking, it.ID, it.Size())
		}
	}
	return nil
}
