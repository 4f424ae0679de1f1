// Package config loads the anchorctl configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/benedict2310/anchorctl/pkg/anchor"
)

const (
	EnvConfigPath     = "ANCHORCTL_CONFIG"
	DefaultAPIVersion = "anchorctl.dev/v1"

	defaultConfigFile = "anchorctl.yaml"
)

// Config is the anchorctl configuration file structure. Every field is
// optional; the zero Config runs the tool on built-in defaults.
type Config struct {
	APIVersion string   `yaml:"apiVersion,omitempty"`
	Selector   string   `yaml:"selector,omitempty"`
	Defaults   Defaults `yaml:"defaults,omitempty"`
	Journal    string   `yaml:"journal,omitempty"`
}

// Defaults mirrors the anchor options applied to every file.
type Defaults struct {
	Icon       string `yaml:"icon,omitempty"`
	Visibility string `yaml:"visibility,omitempty"`
	Placement  string `yaml:"placement,omitempty"`
	AriaLabel  string `yaml:"ariaLabel,omitempty"`
	Class      string `yaml:"class,omitempty"`
	BaseHref   string `yaml:"baseHref,omitempty"`
	Truncate   int    `yaml:"truncate,omitempty"`
	Title      string `yaml:"title,omitempty"`
}

// ResolvePath resolves the config path from explicit input, env var, or the
// working-directory default.
func ResolvePath(explicit string) string {
	if path := strings.TrimSpace(explicit); path != "" {
		return path
	}
	if path := strings.TrimSpace(os.Getenv(EnvConfigPath)); path != "" {
		return path
	}
	return defaultConfigFile
}

// Load loads config from the resolved path. A missing file is only an error
// when the caller named it explicitly; the implicit default config is
// optional and its absence yields the zero Config.
func Load(explicitPath string) (Config, string, error) {
	path := ResolvePath(explicitPath)
	explicit := strings.TrimSpace(explicitPath) != "" || strings.TrimSpace(os.Getenv(EnvConfigPath)) != ""

	cfg, err := LoadFromPath(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Config{APIVersion: DefaultAPIVersion}, path, nil
		}
		return Config{}, path, err
	}
	return cfg, path, nil
}

// LoadFromPath loads and validates config from the provided path.
func LoadFromPath(path string) (Config, error) {
	cfg := Config{}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("config file not found at %s: %w", path, os.ErrNotExist)
		}
		return cfg, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validate config file %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) normalize() {
	if strings.TrimSpace(c.APIVersion) == "" {
		c.APIVersion = DefaultAPIVersion
	}
}

// Validate checks config invariants that must hold for the file to be usable.
func (c Config) Validate() error {
	if c.APIVersion != DefaultAPIVersion {
		return fmt.Errorf("unsupported apiVersion %q (expected %q)", c.APIVersion, DefaultAPIVersion)
	}
	if _, err := anchor.ParseVisibility(c.Defaults.Visibility); err != nil {
		return err
	}
	if _, err := anchor.ParsePlacement(c.Defaults.Placement); err != nil {
		return err
	}
	if c.Defaults.Truncate < 0 {
		return fmt.Errorf("defaults.truncate must not be negative, got %d", c.Defaults.Truncate)
	}
	return nil
}

// Options converts the configured defaults into anchor options. Unset fields
// stay zero so the anchor package fills its own defaults.
func (c Config) Options() (anchor.Options, error) {
	visibility, err := anchor.ParseVisibility(c.Defaults.Visibility)
	if err != nil {
		return anchor.Options{}, err
	}
	placement, err := anchor.ParsePlacement(c.Defaults.Placement)
	if err != nil {
		return anchor.Options{}, err
	}
	return anchor.Options{
		Icon:           c.Defaults.Icon,
		Visibility:     visibility,
		Placement:      placement,
		AriaLabel:      c.Defaults.AriaLabel,
		Class:          c.Defaults.Class,
		BaseHref:       c.Defaults.BaseHref,
		TruncateLength: c.Defaults.Truncate,
		Title:          c.Defaults.Title,
	}, nil
}
