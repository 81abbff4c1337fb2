// rectpack: two-dimensional bin packing from the command line
//
// Packs rectangular items into identical fixed-size bins with
// maximal-space heuristics and exports PDF layouts, labels and reports.
//
// Build:
//   go build -o rectpack ./cmd/rectpack
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o rectpack.exe ./cmd/rectpack
//   GOOS=darwin  GOARCH=arm64 go build -o rectpack-darwin ./cmd/rectpack

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/piwi3910/rectpack/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}
