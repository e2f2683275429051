package cli

import (
	"github.com/spf13/cobra"

	"coursepage/internal/app"
)

// mcpCommand serves the editor over stdio. Logs go to stderr so they never
// mix with the protocol stream.
func (c *CLI) mcpCommand() *cobra.Command {
	var autoApprove bool

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the editor to an agent over MCP on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return app.ServeMCP(cmd.Context(), cfg, c.Logger, autoApprove)
		},
	}

	cmd.Flags().BoolVar(&autoApprove, "auto-approve", false, "run destructive tools without asking the desktop app")
	return cmd
}
