package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/dynlist/internal/config"
)

const (
	defaultRenderWidth  = 80
	defaultRenderHeight = 24
)

// NewRenderCmd creates the render command, which prints one frame.
func NewRenderCmd() *cobra.Command {
	var (
		width   int
		height  int
		scrollY float64
		items   int
		seed    uint64
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Print a single frame of the list",
		Example: `  # Frame of generated records scrolled to row 1000
  dynlist render --items 50000 --scroll-y 1000

  # 120x40 frame of a YAML record file
  dynlist render records.yaml --width 120 --height 40`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			if width <= 0 || height <= 1 {
				return fmt.Errorf("frame must be at least 1x2, got %dx%d", width, height)
			}

			ctx := cmd.Context()
			cfg := config.GetGlobalConfig()
			records, err := loadRecords(ctx, path, items, seed)
			if err != nil {
				return err
			}
			m, err := buildModel(ctx, records, listOptions(cfg, width, height), cfg.List.BatchSize, nil)
			if err != nil {
				return err
			}
			if scrollY > 0 {
				m.List().ScrollToYPosition(scrollY)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), m.Snapshot())
			return err
		},
	}

	cmd.Flags().IntVar(&width, "width", defaultRenderWidth, "frame width in columns")
	cmd.Flags().IntVar(&height, "height", defaultRenderHeight, "frame height in rows, including the status line")
	cmd.Flags().Float64Var(&scrollY, "scroll-y", 0, "scroll offset in rows")
	cmd.Flags().IntVar(&items, "items", defaultGenerated, "number of generated records when no file is given")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "seed for generated records")
	return cmd
}
