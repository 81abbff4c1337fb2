package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/rectpack/internal/engine"
	"github.com/piwi3910/rectpack/internal/project"
)

// verifyCommand creates the verify command that rechecks a saved run.
func (c *CLI) verifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [run.json]",
		Short: "Rebuild a saved run and check that the packing is feasible",
		Long: `Rebuild every bin of a run saved with 'pack --save' and check that no
items overlap, every item lies inside its bin, the bins match the instance's
bin size and every unit of every instance item was placed exactly once.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runVerify(cmd, args[0])
		},
	}
}

func (c *CLI) runVerify(cmd *cobra.Command, path string) error {
	snap, err := project.LoadRun(path)
	if err != nil {
		return err
	}
	res := *snap.Run.Result

	sol, err := engine.Rebuild(res)
	if err != nil {
		return fmt.Errorf("rebuild %s: %w", path, err)
	}
	if !sol.IsFeasible() {
		return fmt.Errorf("%s: %w", path, engine.ErrInfeasiblePacking)
	}

	inst := snap.Run.Instance
	if sol.BinWidth() != inst.BinWidth || sol.BinHeight() != inst.BinHeight {
		return fmt.Errorf("%s: %w: run bins are %dx%d, instance bins are %dx%d", path,
			engine.ErrInfeasiblePacking, sol.BinWidth(), sol.BinHeight(), inst.BinWidth, inst.BinHeight)
	}
	if err := engine.CheckCoverage(inst.Items, res); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	c.Logger.Debug("verified run", "path", path, "created_at", snap.CreatedAt, "version", snap.Version)
	fmt.Fprintf(cmd.OutOrStdout(), "%s: feasible, %d items in %d bins (lower bound %d)\n",
		path, res.ItemCount(), sol.NumberOfBins(), res.LowerBound)
	return nil
}
