package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rshade/dynlist/internal/logging"
)

// EnvProjectDir overrides project directory discovery.
const EnvProjectDir = "DYNLIST_PROJECT_DIR"

// ResolveProjectDir determines the project-local .dynlist directory path.
// It checks (in order):
//  1. flagValue
//  2. DYNLIST_PROJECT_DIR
//  3. the nearest ancestor of startDir that contains a .dynlist directory
//
// Returns an empty string when nothing is found. The directory is never created.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}
	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}
	if startDir == "" {
		return ""
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, configDirName)
		info, statErr := os.Stat(candidate)
		if statErr == nil && info.IsDir() && candidate != Dir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// LoadLayered loads the global config file, shallow-merges the project
// overlay from projectDir when present, then applies environment overrides.
func LoadLayered(ctx context.Context, globalPath, projectDir string) (*Config, error) {
	cfg, err := Load(globalPath)
	if err != nil {
		return nil, err
	}

	if projectDir != "" {
		overlayPath := filepath.Join(projectDir, configFileName)
		if _, statErr := os.Stat(overlayPath); statErr == nil {
			if err = ShallowMergeYAML(cfg, overlayPath); err != nil {
				if errors.Is(err, ErrUnsupportedVersion) {
					return nil, err
				}
				logger := logging.FromContext(ctx)
				logger.Warn().
					Str("component", "config").
					Str("operation", "merge_project_config").
					Err(err).
					Str("overlay_path", overlayPath).
					Msg("failed to merge project config, using global settings")
				if cfg, err = Load(globalPath); err != nil {
					return nil, err
				}
			}
		}
	}

	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}
	if filepath.Base(abs) == configDirName {
		return abs
	}
	return filepath.Join(abs, configDirName)
}

// Init writes a default config file to path unless one exists and force is false.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s", path)
	}
	return New().Save(path)
}
