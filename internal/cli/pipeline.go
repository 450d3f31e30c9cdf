package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Fauli/screenshot-organizer/internal/orchestrator"
	"github.com/Fauli/screenshot-organizer/internal/service"
)

// ErrNoFolder is returned by scan when neither a preference nor SCREENSHOT_DIR names a folder.
var ErrNoFolder = errors.New("no folder selected: run 'screenshotctl prefs set selected_folder <dir>' or set SCREENSHOT_DIR")

func (c *CLI) newScanCmd() *cobra.Command {
	var process bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Ingest new screenshots from the selected folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, p, err := c.env(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			pipeline := a.Pipeline(nil)

			out := pipeline.Scan(ctx)
			switch out.Status {
			case service.ScanNoFolderSelected:
				return ErrNoFolder
			case service.ScanPermissionLost:
				return fmt.Errorf("folder unavailable: %s", out.Message)
			case service.ScanError:
				return fmt.Errorf("scan failed: %s", out.Message)
			}

			view := scanView{Status: string(out.Status), Counts: out.Counts}
			if process {
				res, err := pipeline.ProcessAll(ctx, 0)
				if err != nil {
					return fmt.Errorf("processing failed: %w", err)
				}
				view.Processing = &res
			}
			return p.print(view, view.fill)
		},
	}

	cmd.Flags().BoolVar(&process, "process", false, "Process new screenshots after scanning")
	return cmd
}

func (c *CLI) newProcessCmd() *cobra.Command {
	var (
		batchSize int
		all       bool
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Run OCR and extraction over new screenshots",
		Long:  "process takes one batch of NEW screenshots, or keeps going until none remain with --all.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if batchSize < 0 {
				return fmt.Errorf("--batch-size cannot be negative")
			}
			a, p, err := c.env(cmd)
			if err != nil {
				return err
			}
			pipeline := a.Pipeline(nil)

			var res orchestrator.BatchResult
			if all {
				res, err = pipeline.ProcessAll(cmd.Context(), batchSize)
			} else {
				res, err = pipeline.ProcessBatch(cmd.Context(), batchSize)
			}
			if err != nil {
				return fmt.Errorf("processing failed: %w", err)
			}
			return p.print(res, batchTable(res))
		},
	}

	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Items per batch (0 picks a size for the AI mode)")
	cmd.Flags().BoolVar(&all, "all", false, "Process until no new screenshots remain")
	return cmd
}

func (c *CLI) newProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show processing counts per status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, p, err := c.env(cmd)
			if err != nil {
				return err
			}
			progress, err := a.Pipeline(nil).Progress(cmd.Context())
			if err != nil {
				return err
			}
			return p.print(progress, progressTable(progress))
		},
	}
}
