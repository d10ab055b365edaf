package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/dynlist/internal/config"
	"github.com/rshade/dynlist/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// writerIsTerminal reports whether w is a terminal file.
func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

// terminalSize returns the size of f, or the fallbacks when f is not a terminal.
func terminalSize(f *os.File, fallbackW, fallbackH int) (int, int) {
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return fallbackW, fallbackH
	}
	return w, h
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the dynlist CLI.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "dynlist",
		Short:         "Virtualized list engine demo and benchmark tool",
		Long:          "dynlist: render large record sets through a windowed list that mounts only what is visible",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if logResult != nil {
				return logResult.Close()
			}
			return nil
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default $DYNLIST_HOME/config.yaml or ~/.dynlist/config.yaml)")
	cmd.AddCommand(NewDemoCmd(), NewRenderCmd(), NewBenchCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Browse a log file interactively
  dynlist demo /var/log/syslog

  # Browse 100,000 generated records
  dynlist demo --items 100000

  # Print one 80x24 frame scrolled to row 500
  dynlist render records.yaml --width 80 --height 24 --scroll-y 500

  # Run eight concurrent benchmark scenarios and emit JSON
  dynlist bench --items 50000 --instances 8 --output json

  # Write a default configuration file
  dynlist config init`

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigGetCmd(), NewConfigValidateCmd())
	return cmd
}

// configPath returns the --config flag value or the default global path.
func configPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	return config.Path()
}

// loadConfig loads the layered configuration into the global slot. Config
// subcommands tolerate a broken file so it can be inspected or replaced.
func loadConfig(cmd *cobra.Command) error {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	projectDir := config.ResolveProjectDir(cmd.Context(), "", cwd)
	cfg, err := config.LoadLayered(cmd.Context(), configPath(cmd), projectDir)
	if err != nil {
		if cmd.Parent() != nil && cmd.Parent().Name() == "config" {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
			config.SetGlobalConfig(config.New())
			return nil
		}
		return fmt.Errorf("loading configuration: %w", err)
	}
	config.SetGlobalConfig(cfg)
	return nil
}
