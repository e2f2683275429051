// Package cli implements the coursepage command-line interface.
//
// The commands work on the same snapshot and backups as the desktop editor:
//   - catalog: list the block kinds offered in the palette
//   - blocks: list the blocks of the stored layout
//   - export / import / reset: move whole documents in and out
//   - backup: list, create and restore snapshot backups
//   - mcp: serve the editor to an agent over stdio
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"coursepage/internal/app"
	"coursepage/internal/config"
	"coursepage/internal/logging"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Version is shown by --version. It is set at build time.
var Version = "dev"

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is the YAML file read before environment overrides.
	ConfigPath string
}

// New creates a new CLI instance with a logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:     logging.New(w, level),
		ConfigPath: config.DefaultPath(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "coursepage",
		Short:        "Coursepage edits course landing page layouts",
		Long:         `Coursepage manages the stored course landing page: the ordered blocks of its layout, exports, imports and backups.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(logging.WithLogger(cmd.Context(), c.Logger))
		},
	}

	root.PersistentFlags().StringVar(&c.ConfigPath, "config", c.ConfigPath, "config file")

	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.blocksCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.resetCommand())
	root.AddCommand(c.backupCommand())
	root.AddCommand(c.mcpCommand())

	return root
}

// =============================================================================
// Runtime
// =============================================================================

func (c *CLI) loadConfig() (*config.Config, error) {
	return config.Load(c.ConfigPath)
}

// withRuntime opens the stores, runs fn and closes them again, writing any
// edit fn made.
func (c *CLI) withRuntime(ctx context.Context, fn func(rt *app.Runtime) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	rt, err := app.Open(ctx, cfg, nil, c.Logger)
	if err != nil {
		return err
	}
	runErr := fn(rt)
	if err := rt.Close(ctx); err != nil && runErr == nil {
		return err
	}
	return runErr
}
