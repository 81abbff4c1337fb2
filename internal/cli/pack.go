package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/rectpack/internal/engine"
	"github.com/piwi3910/rectpack/internal/export"
	"github.com/piwi3910/rectpack/internal/model"
	"github.com/piwi3910/rectpack/internal/project"
)

type packOutputs struct {
	pdf    string
	labels string
	xlsx   string
	save   string
}

// packCommand creates the pack command that packs one instance.
func (c *CLI) packCommand() *cobra.Command {
	var (
		in  inputFlags
		out packOutputs
	)

	cmd := &cobra.Command{
		Use:   "pack [file]",
		Short: "Pack an instance and optionally export the layout",
		Long: `Pack the items of an instance into bins of the instance's size.

The input is a 2BP instance file (select a block with --instance), a CSV or
Excel item list, or a DXF drawing. Item lists carry no bin size, so it comes
from --bin-width/--bin-height or the config defaults.

The packing is checked for feasibility before anything is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPack(cmd.Context(), cmd, args[0], &in, out)
		},
	}

	in.register(cmd)
	cmd.Flags().StringVar(&out.pdf, "pdf", "", "write a PDF layout to this path")
	cmd.Flags().StringVar(&out.labels, "labels", "", "write QR-coded item labels to this path")
	cmd.Flags().StringVar(&out.xlsx, "xlsx", "", "write an Excel report to this path")
	cmd.Flags().StringVar(&out.save, "save", "", "save the run as JSON to this path")

	return cmd
}

func (c *CLI) runPack(ctx context.Context, cmd *cobra.Command, input string, in *inputFlags, out packOutputs) error {
	cfg := c.loadConfig()
	settings, err := in.settings(cmd, cfg)
	if err != nil {
		return err
	}
	inst, err := c.loadInstance(cmd, input, in, cfg)
	if err != nil {
		return err
	}

	p := newProgress(c.Logger)
	sol, err := engine.Solve(inst, settings, c.Logger)
	if err != nil {
		return fmt.Errorf("pack %s: %w", inst.Name, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	res := sol.Result()
	p.done("packed", "instance", inst.Name, "bins", res.NumberOfBins())

	printResult(cmd.OutOrStdout(), inst, res)

	exports := []struct {
		kind  string
		path  string
		write func(string, model.PackResult) error
	}{
		{"pdf", out.pdf, export.ExportPDF},
		{"labels", out.labels, export.ExportLabels},
		{"xlsx", out.xlsx, export.ExportExcel},
	}
	for _, e := range exports {
		if e.path == "" {
			continue
		}
		if err := e.write(e.path, res); err != nil {
			return fmt.Errorf("write %s %s: %w", e.kind, e.path, err)
		}
		c.Logger.Info("wrote "+e.kind, "path", e.path)
	}

	if out.save != "" {
		run := model.Run{Name: inst.Name, Instance: inst, Settings: settings, Result: &res}
		if err := project.SaveRun(out.save, run); err != nil {
			return fmt.Errorf("save run %s: %w", out.save, err)
		}
		c.Logger.Info("saved run", "path", out.save)
		c.rememberRun(cfg, out.save)
	}
	return nil
}

// rememberRun records path in the recent runs list of the config.
func (c *CLI) rememberRun(cfg model.AppConfig, path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	cfg.AddRecentRun(path)
	if err := project.SaveAppConfig(c.configPath, cfg); err != nil {
		c.Logger.Warn("could not update recent runs", "path", c.configPath, "err", err)
	}
}

func printResult(w io.Writer, inst model.Instance, res model.PackResult) {
	fmt.Fprintf(w, "Instance:    %s (%dx%d bins)\n", inst.Name, res.BinWidth, res.BinHeight)
	fmt.Fprintf(w, "Settings:    %s, %s, rotation %t, order %s\n",
		res.Settings.Heuristic, res.Settings.Strategy, res.Settings.AllowRotation, res.Settings.Order)
	fmt.Fprintf(w, "Items:       %d\n", res.ItemCount())
	fmt.Fprintf(w, "Bins:        %d (lower bound %d)\n", res.NumberOfBins(), res.LowerBound)
	fmt.Fprintf(w, "Efficiency:  %.1f%%\n", res.TotalEfficiency())
	for _, bin := range res.Bins {
		fmt.Fprintf(w, "  bin %d: %d items, %.1f%%, touching %.2f\n",
			bin.Index+1, len(bin.Placements), bin.Efficiency(), bin.TouchingRatio)
	}
}
