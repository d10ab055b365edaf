package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/dynlist/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
func NewConfigInitCmd() *cobra.Command {
	var (
		force   bool
		project bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

By default the global file at $DYNLIST_HOME/config.yaml (or ~/.dynlist/config.yaml)
is written. Use --project to write ./.dynlist/config.yaml instead; its top-level
sections replace the global ones when dynlist runs inside that directory.`,
		Example: `  # Create global configuration
  dynlist config init

  # Create a project overlay in the current directory
  dynlist config init --project

  # Overwrite an existing file
  dynlist config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := configPath(cmd)
			if project {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("resolving working directory: %w", err)
				}
				path = filepath.Join(cwd, ".dynlist", "config.yaml")
			}
			return initConfig(cmd, path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&project, "project", false, "write a project overlay in ./.dynlist/")

	return cmd
}

func initConfig(cmd *cobra.Command, path string, force bool) error {
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}
	if err := config.Init(path, true); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	cmd.Printf("Configuration initialized at %s\n", path)
	return nil
}
