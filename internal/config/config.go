package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// Config file and environment names.
const (
	configDirName  = ".dynlist"
	configFileName = "config.yaml"

	EnvHome             = "DYNLIST_HOME"
	EnvLogLevel         = "DYNLIST_LOG_LEVEL"
	EnvLogFormat        = "DYNLIST_LOG_FORMAT"
	EnvViewportBuffer   = "DYNLIST_VIEWPORT_BUFFER"
	EnvScrollThrottleMS = "DYNLIST_SCROLL_THROTTLE_MS"
)

// CurrentVersion is the schema version written by Init.
const CurrentVersion = "1.0.0"

// supportedVersions is the semver constraint a config file must satisfy.
const supportedVersions = "^1"

// Defaults for the list section.
const (
	DefaultViewportBuffer   = 5
	DefaultScrollThrottleMS = 16
	maxScrollThrottleMS     = 1000
	DefaultBenchItems       = 10000
	DefaultBenchInstances   = 4
	DefaultBenchSteps       = 200
	DefaultBatchSize        = 500
)

var (
	// ErrUnsupportedVersion indicates the config schema version is not understood.
	ErrUnsupportedVersion = errors.New("unsupported config version")
	// ErrInvalidConfig indicates a value failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the root of the configuration file.
type Config struct {
	Version string        `yaml:"version"`
	List    ListConfig    `yaml:"list"`
	Logging LoggingConfig `yaml:"logging"`
	Bench   BenchConfig   `yaml:"bench"`
}

// ListConfig tunes the list engine and the terminal view.
type ListConfig struct {
	// ViewportBuffer is measured in rows for the terminal view.
	ViewportBuffer   float64        `yaml:"viewport_buffer"`
	ScrollThrottleMS int            `yaml:"scroll_throttle_ms"`
	InitialScrollY   float64        `yaml:"initial_scroll_y"`
	ContentClasses   []string       `yaml:"content_classes,omitempty"`
	Scrollbar        map[string]any `yaml:"scrollbar,omitempty"`
	BatchSize        int            `yaml:"batch_size"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// BenchConfig holds defaults for the bench command.
type BenchConfig struct {
	Items     int `yaml:"items"`
	Instances int `yaml:"instances"`
	Steps     int `yaml:"steps"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Version: CurrentVersion,
		List: ListConfig{
			ViewportBuffer:   DefaultViewportBuffer,
			ScrollThrottleMS: DefaultScrollThrottleMS,
			BatchSize:        DefaultBatchSize,
			Scrollbar:        map[string]any{"min_thumb": 1},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Bench: BenchConfig{
			Items:     DefaultBenchItems,
			Instances: DefaultBenchInstances,
			Steps:     DefaultBenchSteps,
		},
	}
}

// Dir returns the global configuration directory.
func Dir() string {
	if home := os.Getenv(EnvHome); home != "" {
		return home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return configDirName
	}
	return filepath.Join(home, configDirName)
}

// Path returns the global configuration file path.
func Path() string {
	return filepath.Join(Dir(), configFileName)
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := New()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err = cfg.checkVersion(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// ApplyEnv overrides values from DYNLIST_* environment variables. Values
// that do not parse are ignored.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) {
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
	if v, ok := lookupEnv(EnvViewportBuffer); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.List.ViewportBuffer = f
		}
	}
	if v, ok := lookupEnv(EnvScrollThrottleMS); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.List.ScrollThrottleMS = n
		}
	}
}

func (c *Config) checkVersion() error {
	if c.Version == "" {
		c.Version = CurrentVersion
		return nil
	}
	v, err := semver.NewVersion(c.Version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedVersion, c.Version, err)
	}
	constraint, err := semver.NewConstraint(supportedVersions)
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedVersion, v, supportedVersions)
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if err := c.checkVersion(); err != nil {
		return err
	}
	var errs []error
	if c.List.ViewportBuffer < 0 {
		errs = append(errs, fmt.Errorf("list.viewport_buffer must be >= 0, got %v", c.List.ViewportBuffer))
	}
	if c.List.ScrollThrottleMS < 0 || c.List.ScrollThrottleMS > maxScrollThrottleMS {
		errs = append(errs, fmt.Errorf("list.scroll_throttle_ms must be in [0, %d], got %d",
			maxScrollThrottleMS, c.List.ScrollThrottleMS))
	}
	if c.List.BatchSize < 0 {
		errs = append(errs, fmt.Errorf("list.batch_size must be >= 0, got %d", c.List.BatchSize))
	}
	if c.Bench.Items < 1 {
		errs = append(errs, fmt.Errorf("bench.items must be >= 1, got %d", c.Bench.Items))
	}
	if c.Bench.Instances < 1 {
		errs = append(errs, fmt.Errorf("bench.instances must be >= 1, got %d", c.Bench.Instances))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Get returns the value at a dotted key such as "list.viewport_buffer".
func (c *Config) Get(key string) (any, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, err
	}
	var tree map[string]any
	if err = yaml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	var cur any = tree
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unknown config key: %s", key)
		}
		if cur, ok = m[part]; !ok {
			return nil, fmt.Errorf("unknown config key: %s", key)
		}
	}
	return cur, nil
}

//nolint:gochecknoglobals // Set once at startup, read by commands.
var (
	globalConfig   *Config
	globalConfigMu sync.RWMutex
)

// SetGlobalConfig installs cfg as the process-wide configuration.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// GetGlobalConfig returns the process-wide configuration, loading defaults
// on first use.
func GetGlobalConfig() *Config {
	globalConfigMu.RLock()
	cfg := globalConfig
	globalConfigMu.RUnlock()
	if cfg != nil {
		return cfg
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	if globalConfig == nil {
		globalConfig = New()
	}
	return globalConfig
}
