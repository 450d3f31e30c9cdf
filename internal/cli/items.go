package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Fauli/screenshot-organizer/internal/service"
)

// optionalBool returns &v when the flag was set on the command line, so an
// unset flag falls back to the stored preference.
func optionalBool(cmd *cobra.Command, name string, v bool) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func (c *CLI) newListCmd() *cobra.Command {
	var (
		params           service.ListParams
		includeSolved    bool
		includeNoContent bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List screenshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, p, err := c.env(cmd)
			if err != nil {
				return err
			}
			params.IncludeSolved = optionalBool(cmd, "include-solved", includeSolved)
			params.IncludeNoContent = optionalBool(cmd, "include-no-content", includeNoContent)

			items, err := a.ItemService.List(cmd.Context(), params)
			if err != nil {
				return err
			}
			views := newItemViews(items)
			return p.print(views, itemsTable(views))
		},
	}

	f := cmd.Flags()
	f.StringVar(&params.Filter, "filter", "ALL", "Status filter: ALL, PROCESSED or PENDING")
	f.BoolVar(&includeSolved, "include-solved", false, "Include solved screenshots (default from preferences)")
	f.BoolVar(&includeNoContent, "include-no-content", false, "Include screenshots without content (default from preferences)")
	f.StringVar(&params.Domain, "domain", "", "Only screenshots from this domain")
	f.StringVar(&params.Type, "type", "", "Only this content type")
	f.StringVar(&params.Action, "action", "", "Only this suggested action")
	f.StringVar(&params.Topic, "topic", "", "Only screenshots tagged with this topic")
	f.StringVar(&params.Period, "period", "", "Capture period: TODAY, THIS_WEEK, THIS_MONTH or OLDER")
	f.IntVarP(&params.Limit, "limit", "n", service.DefaultListLimit, "Maximum number of screenshots")
	f.IntVar(&params.Offset, "offset", 0, "Number of screenshots to skip")
	return cmd
}

func (c *CLI) newSearchCmd() *cobra.Command {
	var (
		includeSolved bool
		limit         int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search over processed screenshots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, p, err := c.env(cmd)
			if err != nil {
				return err
			}
			items, err := a.SearchService.Search(cmd.Context(), service.SearchParams{
				Query:         args[0],
				IncludeSolved: optionalBool(cmd, "include-solved", includeSolved),
				Limit:         limit,
			})
			if err != nil {
				return err
			}
			views := newItemViews(items)
			return p.print(views, itemsTable(views))
		},
	}

	cmd.Flags().BoolVar(&includeSolved, "include-solved", false, "Include solved screenshots (default from preferences)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum number of results")
	return cmd
}

func (c *CLI) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a screenshot with its extracted essence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, p, err := c.env(cmd)
			if err != nil {
				return err
			}
			detail, err := a.ItemService.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			view := newDetailView(detail)
			return p.print(view, view.fill)
		},
	}
}

func (c *CLI) newSolveCmd() *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "solve <id>",
		Short: "Mark a screenshot as solved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := c.env(cmd)
			if err != nil {
				return err
			}
			if err := a.ItemService.SetSolved(cmd.Context(), args[0], !undo); err != nil {
				return err
			}
			if undo {
				cmd.Printf("Marked %s unsolved\n", args[0])
			} else {
				cmd.Printf("Marked %s solved\n", args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the screenshot unsolved instead")
	return cmd
}

func (c *CLI) newReprocessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reprocess <id>",
		Short: "Drop a screenshot's essence and queue it for processing again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := c.env(cmd)
			if err != nil {
				return err
			}
			if err := a.ItemService.Reprocess(cmd.Context(), args[0]); err != nil {
				return err
			}
			cmd.Printf("Reset %s for reprocessing\n", args[0])
			return nil
		},
	}
}

func (c *CLI) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a screenshot from the catalog (the file is kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := c.env(cmd)
			if err != nil {
				return err
			}
			if err := a.ItemService.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			cmd.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}

func (c *CLI) newResetCmd() *cobra.Command {
	var stuck bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Return every screenshot to NEW for reprocessing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, err := c.env(cmd)
			if err != nil {
				return err
			}
			var n int
			if stuck {
				n, err = a.ItemService.ResetStuck(cmd.Context())
			} else {
				n, err = a.ItemService.ResetAll(cmd.Context())
			}
			if err != nil {
				return fmt.Errorf("reset failed: %w", err)
			}
			cmd.Printf("Reset %d screenshots\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&stuck, "stuck", false, "Only reset screenshots left in PROCESSING")
	return cmd
}
