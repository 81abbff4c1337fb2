package engine

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/rectpack/internal/geom"
	"github.com/piwi3910/rectpack/internal/model"
)

// Solution packs items into as few identical bins as possible. Each item of
// the input is treated as a single unit; use model.Expand for quantities.
type Solution struct {
	binWidth  int
	binHeight int
	newBin    BinFactory
	bins      []FreeSpace

	opts       Options
	strategy   model.Strategy
	lowerBound int
	order      model.Order
	seed       int64

	logger *log.Logger
}

// NewSolution creates an empty solution backed by maximal-rectangle bins.
func NewSolution(binWidth, binHeight int) *Solution {
	return NewSolutionWith(binWidth, binHeight, newMaxSpaceFreeSpace)
}

// NewSolutionWith creates an empty solution whose bins come from factory.
func NewSolutionWith(binWidth, binHeight int, factory BinFactory) *Solution {
	return &Solution{
		binWidth:  binWidth,
		binHeight: binHeight,
		newBin:    factory,
		logger:    log.New(io.Discard),
	}
}

// SetLogger routes packing diagnostics to logger. A nil logger disables them.
func (s *Solution) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s.logger = logger
}

func (s *Solution) BinWidth() int  { return s.binWidth }
func (s *Solution) BinHeight() int { return s.binHeight }

// LowerBound returns floor(total item area / bin area) + 1. It is a cheap
// bound, not a tight one, and is used to pre-open bins for best-fit.
func (s *Solution) LowerBound(items []model.Item) int {
	binArea := s.binWidth * s.binHeight
	if binArea <= 0 {
		return 0
	}
	total := 0
	for _, it := range items {
		total += it.Area()
	}
	return total/binArea + 1
}

// Pack places items in order using best-fit: every open bin is evaluated and
// the item goes to the strictly lowest score, the earliest bin winning ties.
// LowerBound bins are opened up front and may remain empty; a new bin is
// opened only when no open bin can take the item.
//
// The input is validated before anything is placed. On error the solution is
// left untouched.
func (s *Solution) Pack(items []model.Item, opts Options) error {
	if err := s.validate(items, opts); err != nil {
		return err
	}

	lb := s.LowerBound(items)
	bins := make([]FreeSpace, 0, lb)
	for range lb {
		bins = append(bins, s.newBin(s.binWidth, s.binHeight))
	}

	for _, it := range items {
		bestBin := -1
		var best Placement
		for i, bin := range bins {
			p, ok := bin.Evaluate(it, opts)
			if !ok {
				continue
			}
			if bestBin < 0 || p.Score < best.Score {
				bestBin, best = i, p
			}
		}
		if bestBin >= 0 {
			bins[bestBin].Place(best)
			continue
		}

		bin, err := s.openBinFor(it, opts)
		if err != nil {
			return err
		}
		bins = append(bins, bin)
		s.logger.Debug("opened bin", "bin", len(bins)-1, "item", it.ID)
	}

	s.commit(bins, opts, model.StrategyBestFit, lb)
	return nil
}

// PackFirst places items in order using first-fit: the item goes to the
// first open bin that accepts it. Exactly one bin is opened initially.
func (s *Solution) PackFirst(items []model.Item, opts Options) error {
	if err := s.validate(items, opts); err != nil {
		return err
	}

	bins := []FreeSpace{s.newBin(s.binWidth, s.binHeight)}
	for _, it := range items {
		placed := false
		for _, bin := range bins {
			if bin.Insert(it, opts) {
				placed = true
				break
			}
		}
		if placed {
			continue
		}

		bin, err := s.openBinFor(it, opts)
		if err != nil {
			return err
		}
		bins = append(bins, bin)
		s.logger.Debug("opened bin", "bin", len(bins)-1, "item", it.ID)
	}

	s.commit(bins, opts, model.StrategyFirstFit, s.LowerBound(items))
	return nil
}

// Run dispatches to Pack or PackFirst according to settings.Strategy.
func (s *Solution) Run(items []model.Item, settings model.Settings) error {
	opts := OptionsFrom(settings)
	switch settings.Strategy {
	case model.StrategyBestFit:
		return s.Pack(items, opts)
	case model.StrategyFirstFit:
		return s.PackFirst(items, opts)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, settings.Strategy)
	}
}

func (s *Solution) openBinFor(it model.Item, opts Options) (FreeSpace, error) {
	bin := s.newBin(s.binWidth, s.binHeight)
	if !bin.Insert(it, opts) {
		return nil, fmt.Errorf("%w: item %s (%s) in %dx%d bin",
			ErrInfeasibleInstance, it.ID, it.Size(), s.binWidth, s.binHeight)
	}
	return bin, nil
}

func (s *Solution) commit(bins []FreeSpace, opts Options, strategy model.Strategy, lowerBound int) {
	s.bins = bins
	s.opts = opts
	s.strategy = strategy
	s.lowerBound = lowerBound

	placed := 0
	for i, b := range bins {
		placed += len(b.Items())
		if m, ok := b.(binMetrics); ok {
			s.logger.Debug("bin packed", "bin", i, "occupancy", m.Occupancy(), "touching", m.TouchingPerimeterRatio())
		}
	}
	s.logger.Info("packing complete",
		"strategy", strategy,
		"heuristic", opts.Heuristic,
		"rotation", opts.AllowRotation,
		"items", placed,
		"bins", len(bins),
		"lower_bound", lowerBound)
}

// validate rejects inputs before any state changes.
func (s *Solution) validate(items []model.Item, opts Options) error {
	if s.binWidth <= 0 || s.binHeight <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidBin, s.binWidth, s.binHeight)
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	binSize := geom.Size{Width: s.binWidth, Height: s.binHeight}
	for _, it := range items {
		size := it.Size()
		if !size.Positive() {
			return fmt.Errorf("%w: item %s has size %s", ErrInvalidItem, it.ID, size)
		}
		if size.FitsIn(binSize) || (opts.AllowRotation && size.Rotated().FitsIn(binSize)) {
			continue
		}
		return fmt.Errorf("%w: item %s (%s) in %s bin", ErrInfeasibleInstance, it.ID, size, binSize)
	}
	return nil
}

// IsFeasible reports whether every bin passes its feasibility check.
func (s *Solution) IsFeasible() bool {
	for _, b := range s.bins {
		if !b.IsFeasible() {
			return false
		}
	}
	return true
}

// NumberOfBins returns the number of bins in use, including empty ones opened
// for the lower bound.
func (s *Solution) NumberOfBins() int { return len(s.bins) }

// Bins returns deep copies of the bins.
func (s *Solution) Bins() []FreeSpace {
	out := make([]FreeSpace, len(s.bins))
	for i, b := range s.bins {
		out[i] = b.Clone()
	}
	return out
}

// Clone returns a deep copy of the solution sharing its logger.
func (s *Solution) Clone() *Solution {
	c := *s
	c.bins = s.Bins()
	return &c
}

// Result converts the solution to its export form. Item order and seed are
// only recorded for solutions produced by Solve.
func (s *Solution) Result() model.PackResult {
	res := model.PackResult{
		BinWidth:  s.BinWidth(),
		BinHeight: s.BinHeight(),
		Settings: model.Settings{
			Heuristic:     s.opts.Heuristic,
			Strategy:      s.strategy,
			AllowRotation: s.opts.AllowRotation,
			Order:         s.order,
			Seed:          s.seed,
		},
		LowerBound: s.lowerBound,
		Bins:       make([]model.BinResult, 0, len(s.bins)),
	}
	for i, b := range s.bins {
		items := b.Items()
		br := model.BinResult{
			Index:      i,
			Width:      b.Width(),
			Height:     b.Height(),
			Placements: make([]model.Placement, 0, len(items)),
		}
		for _, p := range items {
			br.Placements = append(br.Placements, p.toModel())
		}
		if m, ok := b.(binMetrics); ok {
			br.TouchingRatio = m.TouchingPerimeterRatio()
		}
		res.Bins = append(res.Bins, br)
	}
	return res
}
