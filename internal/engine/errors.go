package engine

import "errors"

var (
	// ErrInfeasibleInstance is returned when an item cannot fit an empty bin in
	// any allowed orientation. Opening more bins cannot help.
	ErrInfeasibleInstance = errors.New("item does not fit in an empty bin")

	// ErrInvalidItem is returned for items with non-positive dimensions.
	ErrInvalidItem = errors.New("invalid item")

	// ErrInvalidBin is returned for bins with non-positive dimensions.
	ErrInvalidBin = errors.New("invalid bin dimensions")

	// ErrUnknownHeuristic is returned when options name no known heuristic.
	ErrUnknownHeuristic = errors.New("unknown packing heuristic")

	// ErrUnknownStrategy is returned when settings name no known strategy.
	ErrUnknownStrategy = errors.New("unknown packing strategy")

	// ErrInfeasiblePacking signals that a produced or loaded packing failed the
	// feasibility check.
	ErrInfeasiblePacking = errors.New("packing is not feasible")
)
