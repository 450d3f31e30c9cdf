package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func (c *CLI) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write a JSON backup of the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := c.env(cmd)
			if err != nil {
				return err
			}
			n, err := a.Backup.ExportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			cmd.Printf("Exported %d screenshots to %s\n", n, args[0])
			return nil
		},
	}
}

func (c *CLI) newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Restore a JSON backup, skipping screenshots already in the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, p, err := c.env(cmd)
			if err != nil {
				return err
			}
			res, err := a.Backup.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return p.print(res, func(t table.Writer) {
				t.AppendHeader(table.Row{"Imported", "Skipped"})
				t.AppendRow(table.Row{res.Imported, res.Skipped})
			})
		},
	}
}
