package engine

import (
	"fmt"
	"math/rand"
	"slices"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/rectpack/internal/model"
)

// OrderItems returns a reordered copy of items. Area ordering is stable so
// equal-area items keep their input order; shuffles are reproducible for a
// given seed.
func OrderItems(items []model.Item, order model.Order, seed int64) []model.Item {
	out := slices.Clone(items)
	switch order {
	case model.OrderAreaDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Area() > out[j].Area()
		})
	case model.OrderShuffle:
		rng := rand.New(rand.NewSource(seed))
		rng.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
	}
	return out
}

// Solve expands quantities, orders the items and packs them into a fresh
// solution according to settings. The returned solution has passed its
// feasibility check.
func Solve(inst model.Instance, settings model.Settings, logger *log.Logger) (*Solution, error) {
	items := OrderItems(model.Expand(inst.Items), settings.Order, settings.Seed)

	sol := NewSolution(inst.BinWidth, inst.BinHeight)
	sol.SetLogger(logger)
	if err := sol.Run(items, settings); err != nil {
		return nil, err
	}
	sol.order, sol.seed = settings.Order, settings.Seed
	if !sol.IsFeasible() {
		return nil, fmt.Errorf("%w: %s", ErrInfeasiblePacking, inst.Name)
	}
	return sol, nil
}
