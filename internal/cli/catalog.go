package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"coursepage/internal/app"
	"coursepage/internal/catalog"
	"coursepage/internal/domain"
)

// catalogCommand lists the palette.
func (c *CLI) catalogCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the block kinds that can be added to a page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			entries := catalog.Describe()
			if asJSON {
				return writeJSON(out, entries)
			}
			printTitle(out, "Palette")
			for _, e := range entries {
				printRow(out, string(e.Kind), e.Icon, fmt.Sprintf("%s: %s", e.Label, e.Description))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

// blocksCommand lists the stored layout.
func (c *CLI) blocksCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "List the blocks of the stored page layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return c.withRuntime(cmd.Context(), func(rt *app.Runtime) error {
				doc := rt.Editor.Document()
				summaries := make([]domain.BlockSummary, len(doc.PageLayout))
				for i, b := range doc.PageLayout {
					summaries[i] = domain.Summarize(b)
				}
				if asJSON {
					return writeJSON(out, summaries)
				}

				printTitle(out, doc.Title)
				if len(summaries) == 0 {
					printInfo(out, "Layout is empty")
					return nil
				}
				for _, s := range summaries {
					printRow(out, string(s.Kind), s.Key, fmt.Sprintf("%s (%d)", s.Title, s.Items))
				}
				printDetail(out, "%d blocks, instructor %s", len(summaries), doc.InstructorName())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
