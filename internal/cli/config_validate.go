package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/dynlist/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Loads the global configuration, the project overlay and DYNLIST_* environment
overrides, then checks the schema version and value ranges.`,
		Example: `  # Validate current configuration
  dynlist config validate

  # Validate and print the effective configuration
  dynlist config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the effective configuration")

	return cmd
}

func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cwd, _ := os.Getwd()
	projectDir := config.ResolveProjectDir(cmd.Context(), "", cwd)
	cfg, err := config.LoadLayered(cmd.Context(), configPath(cmd), projectDir)
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")
	if verbose {
		if projectDir != "" {
			cmd.Printf("Project overlay: %s\n", projectDir)
		}
		out, marshalErr := yaml.Marshal(cfg)
		if marshalErr != nil {
			return marshalErr
		}
		cmd.Print(string(out))
	}
	return nil
}

// NewConfigGetCmd creates the config get command.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <key>",
		Short:   "Print one configuration value",
		Example: "  dynlist config get list.scroll_throttle_ms",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			switch v.(type) {
			case map[string]any, []any:
				out, marshalErr := yaml.Marshal(v)
				if marshalErr != nil {
					return marshalErr
				}
				cmd.Print(string(out))
			default:
				cmd.Println(v)
			}
			return nil
		},
	}
}
