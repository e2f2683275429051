package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"coursepage/internal/app"
)

// backupCommand groups the backup subcommands.
func (c *CLI) backupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage snapshot backups",
	}

	cmd.AddCommand(c.backupListCommand())
	cmd.AddCommand(c.backupCreateCommand())
	cmd.AddCommand(c.backupRestoreCommand())

	return cmd
}

func (c *CLI) backupListCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List backups, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return c.withRuntime(cmd.Context(), func(rt *app.Runtime) error {
				backups, err := rt.Backups.List(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(out, backups)
				}
				if len(backups) == 0 {
					printInfo(out, "No backups")
					return nil
				}
				for _, b := range backups {
					printRow(out, b.Label, b.ID, fmt.Sprintf("%s, %s", humanize.Time(b.CreatedAt), humanize.Bytes(uint64(b.SizeBytes))))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (c *CLI) backupCreateCommand() *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Back up the stored document now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRuntime(cmd.Context(), func(rt *app.Runtime) error {
				b, err := rt.Backups.Create(cmd.Context(), label)
				if err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), "Created backup %s", b.ID)
				printDetail(cmd.OutOrStdout(), "%s", humanize.Bytes(uint64(b.SizeBytes)))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "manual", "backup label")
	return cmd
}

func (c *CLI) backupRestoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Replace the stored document with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRuntime(cmd.Context(), func(rt *app.Runtime) error {
				doc, err := rt.Backups.Restore(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if _, err := rt.Editor.LoadDocument(doc); err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), "Restored %q from %s", doc.Title, args[0])
				return nil
			})
		},
	}
}
