// Package cli implements the rectpack command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/rectpack/internal/model"
	"github.com/piwi3910/rectpack/internal/project"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "rectpack",
		Short: "Pack rectangles into as few fixed-size bins as possible",
		Long: `rectpack solves two-dimensional bin packing instances with maximal-space
heuristics. Items are loaded from 2BP instance files, CSV or Excel item lists,
or DXF drawings, packed best-fit or first-fit, and exported as PDF layouts,
QR-coded labels or Excel reports.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", project.DefaultConfigPath(), "config file (.json or .toml)")

	root.AddCommand(c.packCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.configCommand())

	return root
}

// loadConfig reads the app config, falling back to defaults when the file is
// unreadable so a broken config never blocks a run.
func (c *CLI) loadConfig() model.AppConfig {
	cfg, err := project.LoadAppConfig(c.configPath)
	if err != nil {
		c.Logger.Warn("ignoring config", "path", c.configPath, "err", err)
		return model.DefaultAppConfig()
	}
	return cfg
}
