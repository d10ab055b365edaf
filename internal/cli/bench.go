package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/dynlist/internal/bench"
	"github.com/rshade/dynlist/internal/config"
)

// violationExitCode is returned when a bench run breaks a layout check.
const violationExitCode = 2

// NewBenchCmd creates the bench command.
func NewBenchCmd() *cobra.Command {
	var (
		items       int
		instances   int
		steps       int
		concurrency int
		output      string
		progress    bool
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run scripted scroll and mutation scenarios",
		Long: `Runs several independent lists concurrently. Each one scrolls from top to
bottom, applies inserts, removals and height changes along the way, and checks
after every step that the mounted rows match the layout. Any mismatch is a
violation and makes the command exit with code 2.`,
		Example: `  dynlist bench
  dynlist bench --items 100000 --instances 12 --steps 500 --output ndjson`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if !cmd.Flags().Changed("items") {
				items = cfg.Bench.Items
			}
			if !cmd.Flags().Changed("instances") {
				instances = cfg.Bench.Instances
			}
			if !cmd.Flags().Changed("steps") {
				steps = cfg.Bench.Steps
			}
			if items < 1 || instances < 1 || steps < 1 {
				return errors.New("items, instances and steps must be >= 1")
			}

			opts := []bench.Option{bench.WithLogger(logger)}
			if progress {
				opts = append(opts, bench.WithProgress(cmd.ErrOrStderr()))
			}
			results, err := bench.Run(cmd.Context(), bench.DefaultScenarios(items, instances, steps), concurrency, opts...)
			if err != nil {
				return err
			}
			if err = bench.WriteReport(cmd.OutOrStdout(), results, output); err != nil {
				return err
			}
			if n := bench.TotalViolations(results); n > 0 {
				return &ExitError{Code: violationExitCode, Reason: fmt.Sprintf("%d layout violations", n)}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&items, "items", config.DefaultBenchItems, "items per scenario")
	cmd.Flags().IntVar(&instances, "instances", config.DefaultBenchInstances, "number of scenarios")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultBenchSteps, "scroll steps per scenario")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "scenarios run at once (0 = number of CPUs)")
	cmd.Flags().StringVarP(&output, "output", "o", bench.FormatTable, "report format: table, json or ndjson")
	cmd.Flags().BoolVar(&progress, "progress", false, "draw a progress bar on stderr")
	return cmd
}
