// Package cli implements the screenshotctl command tree on top of the service layer.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Fauli/screenshot-organizer/internal/app"
)

// Opener builds the application the commands operate on.
type Opener func() (*app.App, error)

// CLI holds the state shared by all commands. The application is opened on
// first use so help and flag errors never touch the database.
type CLI struct {
	open    Opener
	format  string
	verbose bool
	app     *app.App
}

// New creates a CLI that opens its application with open.
func New(open Opener) *CLI {
	return &CLI{open: open, format: formatTable}
}

// Command returns the root command.
func (c *CLI) Command() *cobra.Command {
	root := &cobra.Command{
		Use:          "screenshotctl",
		Short:        "Organize and search a screenshot folder",
		Long:         "screenshotctl scans a screenshot folder, extracts text and summaries, and lets you browse, search and back up the result.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if c.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().StringVar(&c.format, "format", formatTable, "Output format: table, json or yaml")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(
		c.newScanCmd(),
		c.newProcessCmd(),
		c.newProgressCmd(),
		c.newListCmd(),
		c.newSearchCmd(),
		c.newShowCmd(),
		c.newSolveCmd(),
		c.newReprocessCmd(),
		c.newDeleteCmd(),
		c.newResetCmd(),
		c.newExportCmd(),
		c.newImportCmd(),
		c.newPrefsCmd(),
		c.newInsightsCmd(),
	)
	return root
}

// env returns the application and an output printer for cmd.
func (c *CLI) env(cmd *cobra.Command) (*app.App, *printer, error) {
	p, err := newPrinter(cmd.OutOrStdout(), c.format)
	if err != nil {
		return nil, nil, err
	}
	if c.app == nil {
		a, err := c.open()
		if err != nil {
			return nil, nil, err
		}
		c.app = a
	}
	return c.app, p, nil
}

// Close releases the application if a command opened it.
func (c *CLI) Close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}
