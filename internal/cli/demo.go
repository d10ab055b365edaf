package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/dynlist/internal/config"
)

// NewDemoCmd creates the interactive demo command.
func NewDemoCmd() *cobra.Command {
	var (
		items int
		seed  uint64
	)

	cmd := &cobra.Command{
		Use:   "demo [file]",
		Short: "Browse records interactively",
		Long: `Opens an interactive list over the records in file, or over generated records
when no file is given. Lines of plain text files become records; .yaml and .json
files hold a sequence of {id, text} objects.

When stdout is not a terminal a single frame is printed instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runDemo(cmd, path, items, seed)
		},
	}

	cmd.Flags().IntVar(&items, "items", defaultGenerated, "number of generated records when no file is given")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "seed for generated records")
	return cmd
}

func runDemo(cmd *cobra.Command, path string, items int, seed uint64) error {
	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()

	records, err := loadRecords(ctx, path, items, seed)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	interactive := writerIsTerminal(out)
	width, height := defaultRenderWidth, defaultRenderHeight
	if f, ok := out.(*os.File); ok {
		width, height = terminalSize(f, width, height)
	}
	opts := listOptions(cfg, width, height)
	opts.ShowHelp = interactive

	m, err := buildModel(ctx, records, opts, cfg.List.BatchSize, progressWriter(cmd))
	if err != nil {
		return err
	}
	if cfg.List.InitialScrollY > 0 {
		m.List().ScrollToYPosition(cfg.List.InitialScrollY)
	}

	if !interactive {
		logger.Debug().Ctx(ctx).Msg("stdout is not a terminal, printing a single frame")
		_, err = fmt.Fprintln(out, m.Snapshot())
		return err
	}

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
		tea.WithOutput(out),
		tea.WithInput(cmd.InOrStdin()),
	)
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}
