package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/rectpack/internal/engine"
)

// compareCommand creates the compare command that packs one instance under
// every strategy and heuristic combination.
func (c *CLI) compareCommand() *cobra.Command {
	var in inputFlags

	cmd := &cobra.Command{
		Use:   "compare [file]",
		Short: "Compare heuristics and strategies on one instance",
		Long: `Pack the instance once per strategy and heuristic pair, plus once with
rotation flipped, and print bins used, gap to the lower bound and efficiency.
The current settings come from the config and flags and are listed first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompare(cmd.Context(), cmd, args[0], &in)
		},
	}
	in.register(cmd)
	return cmd
}

func (c *CLI) runCompare(ctx context.Context, cmd *cobra.Command, input string, in *inputFlags) error {
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
	results := engine.CompareScenarios(inst, engine.BuildDefaultScenarios(settings), c.Logger)
	if err := ctx.Err(); err != nil {
		return err
	}
	p.done("compared", "instance", inst.Name, "scenarios", len(results))

	best, ok := engine.BestScenario(results)
	if !ok {
		return fmt.Errorf("compare %s: every scenario failed: %w", inst.Name, results[0].Err)
	}
	return printComparison(cmd.OutOrStdout(), results, best)
}

func printComparison(w io.Writer, results []engine.ComparisonResult, best engine.ComparisonResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tBINS\tLOWER BOUND\tGAP\tEFFICIENCY")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\t-\t-\t-\terror: %v\n", r.Scenario.Name, r.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.1f%%\n", r.Scenario.Name, r.BinsUsed, r.LowerBound, r.Gap(), r.Efficiency)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nBest: %s (%d bins)\n", best.Scenario.Name, best.BinsUsed)
	return err
}
