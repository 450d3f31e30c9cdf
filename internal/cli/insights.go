package cli

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newInsightsCmd() *cobra.Command {
	var includeSolved bool

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Summarize the catalog by domain, type, action, period and topic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, p, err := c.env(cmd)
			if err != nil {
				return err
			}
			in, err := a.InsightsService.Get(cmd.Context(), optionalBool(cmd, "include-solved", includeSolved))
			if err != nil {
				return err
			}
			view := newInsightsView(in)
			return p.print(view, view.fill)
		},
	}

	cmd.Flags().BoolVar(&includeSolved, "include-solved", false, "Include solved screenshots (default from preferences)")
	return cmd
}
