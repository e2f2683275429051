package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"coursepage/internal/app"
	"coursepage/internal/domain"
)

// exportCommand writes the stored document as pretty JSON.
func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the stored course document as JSON",
		Long:  `Export writes the stored course document to stdout, or to a file with -o. Use "-o ." to write <slug>.json in the current directory.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRuntime(cmd.Context(), func(rt *app.Runtime) error {
				res, err := rt.Editor.ExportDocument()
				if err != nil {
					return err
				}
				if output == "" {
					_, err := cmd.OutOrStdout().Write(append(res.Data, '\n'))
					return err
				}
				if output == "." {
					output = res.Filename
				}
				if err := os.WriteFile(output, res.Data, 0644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				printSuccess(cmd.OutOrStdout(), "Exported %d bytes", len(res.Data))
				printDetail(cmd.OutOrStdout(), "%s", output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	return cmd
}

// importCommand replaces the stored document with a JSON file.
func (c *CLI) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the stored course document with a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			doc, err := domain.ParseDocument(data)
			if err != nil {
				return err
			}
			return c.withRuntime(cmd.Context(), func(rt *app.Runtime) error {
				if _, err := rt.Editor.LoadDocument(doc); err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), "Imported %q", doc.Title)
				printDetail(cmd.OutOrStdout(), "%d blocks", len(doc.PageLayout))
				return nil
			})
		},
	}
}

// resetCommand replaces the stored document with the default course.
func (c *CLI) resetCommand() *cobra.Command {
	var backup bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the stored course document with the default course",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRuntime(cmd.Context(), func(rt *app.Runtime) error {
				if backup && rt.Restored {
					b, err := rt.Backups.Create(cmd.Context(), "before reset")
					if err != nil {
						return err
					}
					printInfo(cmd.OutOrStdout(), "Backed up as %s", b.ID)
				}
				st := rt.Editor.ResetDocument()
				printSuccess(cmd.OutOrStdout(), "Reset to %q", st.Document.Title)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&backup, "backup", true, "back up the current document first")
	return cmd
}
