package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/rectpack/internal/engine"
	"github.com/piwi3910/rectpack/internal/importer"
	"github.com/piwi3910/rectpack/internal/model"
)

// Input formats accepted by --format.
const (
	formatAuto  = "auto"
	format2BP   = "2bp"
	formatCSV   = "csv"
	formatExcel = "xlsx"
	formatDXF   = "dxf"
)

// inputFlags are the flags shared by commands that load and pack an instance.
type inputFlags struct {
	format    string
	instance  int
	binWidth  int
	binHeight int

	heuristic string
	strategy  string
	order     string
	rotate    bool
	seed      int64
}

func (f *inputFlags) register(cmd *cobra.Command) {
	defaults := model.DefaultSettings()

	cmd.Flags().StringVarP(&f.format, "format", "f", formatAuto, "input format: auto, 2bp, csv, xlsx, dxf")
	cmd.Flags().IntVarP(&f.instance, "instance", "n", 0, "instance index within a 2BP file (0-based)")
	cmd.Flags().IntVar(&f.binWidth, "bin-width", 0, "bin width (required for item lists unless set in config)")
	cmd.Flags().IntVar(&f.binHeight, "bin-height", 0, "bin height (required for item lists unless set in config)")
	cmd.Flags().StringVar(&f.heuristic, "heuristic", string(defaults.Heuristic), "scoring heuristic: best-area-fit, touching-perimeter, top-right-distance")
	cmd.Flags().StringVar(&f.strategy, "strategy", string(defaults.Strategy), "bin selection: best-fit, first-fit")
	cmd.Flags().StringVar(&f.order, "order", string(defaults.Order), "item order: input, area-desc, shuffle")
	cmd.Flags().BoolVar(&f.rotate, "rotate", defaults.AllowRotation, "allow 90 degree rotation")
	cmd.Flags().Int64Var(&f.seed, "seed", defaults.Seed, "shuffle seed")
}

// settings starts from the config defaults and applies every flag the user
// set explicitly.
func (f *inputFlags) settings(cmd *cobra.Command, cfg model.AppConfig) (model.Settings, error) {
	s := model.DefaultSettings()
	cfg.ApplyToSettings(&s)

	flags := cmd.Flags()
	if flags.Changed("heuristic") {
		h, ok := model.ParseHeuristic(f.heuristic)
		if !ok {
			return s, fmt.Errorf("%w: %q", engine.ErrUnknownHeuristic, f.heuristic)
		}
		s.Heuristic = h
	}
	if flags.Changed("strategy") {
		st, ok := model.ParseStrategy(f.strategy)
		if !ok {
			return s, fmt.Errorf("%w: %q", engine.ErrUnknownStrategy, f.strategy)
		}
		s.Strategy = st
	}
	if flags.Changed("order") {
		o, ok := model.ParseOrder(f.order)
		if !ok {
			return s, fmt.Errorf("unknown order %q", f.order)
		}
		s.Order = o
	}
	if flags.Changed("rotate") {
		s.AllowRotation = f.rotate
	}
	if flags.Changed("seed") {
		s.Seed = f.seed
	}
	return s, nil
}

// detectFormat picks an input format from the file extension. Anything
// that is not a known item list is read as a 2BP instance file.
func detectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return formatCSV
	case ".xlsx", ".xlsm":
		return formatExcel
	case ".dxf":
		return formatDXF
	default:
		return format2BP
	}
}

// loadInstance reads the instance at path. 2BP files carry their own bin
// size, which explicit --bin-width/--bin-height flags override.
func (c *CLI) loadInstance(cmd *cobra.Command, path string, f *inputFlags, cfg model.AppConfig) (model.Instance, error) {
	format := strings.ToLower(f.format)
	if format == formatAuto {
		format = detectFormat(path)
	}

	var inst model.Instance
	switch format {
	case format2BP:
		var err error
		inst, err = importer.SelectInstance(path, f.instance)
		if err != nil {
			return model.Instance{}, fmt.Errorf("load instance %s: %w", path, err)
		}
	case formatCSV, formatExcel, formatDXF:
		var result importer.ImportResult
		switch format {
		case formatCSV:
			result = importer.ImportCSV(path)
		case formatExcel:
			result = importer.ImportExcel(path)
		default:
			result = importer.ImportDXF(path)
		}
		for _, w := range result.Warnings {
			c.Logger.Warn(w, "file", path)
		}
		if !result.OK() {
			for _, e := range result.Errors {
				c.Logger.Error(e, "file", path)
			}
			return model.Instance{}, fmt.Errorf("import %s: %d errors, %d items", path, len(result.Errors), len(result.Items))
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		inst = result.Instance(name, cfg.DefaultBinWidth, cfg.DefaultBinHeight)
	default:
		return model.Instance{}, fmt.Errorf("unknown input format %q", f.format)
	}

	if cmd.Flags().Changed("bin-width") {
		inst.BinWidth = f.binWidth
	}
	if cmd.Flags().Changed("bin-height") {
		inst.BinHeight = f.binHeight
	}
	if inst.BinWidth <= 0 || inst.BinHeight <= 0 {
		return model.Instance{}, fmt.Errorf("%w: %dx%d", engine.ErrInvalidBin, inst.BinWidth, inst.BinHeight)
	}

	c.Logger.Debug("loaded instance", "name", inst.Name, "format", format, "items", len(inst.Items),
		"bin_width", inst.BinWidth, "bin_height", inst.BinHeight)
	return inst, nil
}
