// Package config loads the powerline section of the host settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/young1lin/powerline-footer/internal/statusline/preset"
	"github.com/young1lin/powerline-footer/internal/statusline/theme"
)

// ErrUnknownPreset is reported for a preset name that does not exist.
var ErrUnknownPreset = errors.New("unknown preset")

// PresetEnv overrides the configured preset.
const PresetEnv = "STATUSLINE_PRESET"

// Settings is the host settings document. Only the powerline key is read.
type Settings struct {
	Powerline *Config `yaml:"powerline"`
}

// Config is the powerline section.
type Config struct {
	Preset string            `yaml:"preset"`
	Colors map[string]string `yaml:"colors"`
	Show   []string          `yaml:"show"`
	Hide   []string          `yaml:"hide"`

	// Quota enables the usage API; nil means on.
	Quota *bool `yaml:"quota"`
	// UpdateCheck enables the release check; nil means on.
	UpdateCheck *bool `yaml:"updateCheck"`

	Log LogConfig `yaml:"log"`

	// Source is the file the config came from, "" for defaults.
	Source string `yaml:"-"`
}

// LogConfig controls the debug log file.
type LogConfig struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Load reads configuration with priority:
// 1. Project-level: <projectDir>/.pi/settings.json
// 2. Global: ~/.pi/agent/settings.json
// 3. Default: built-in defaults
//
// A settings file without a powerline key falls through to the next level.
func Load(projectDir string) (*Config, error) {
	var candidates []string
	if projectDir != "" {
		candidates = append(candidates, filepath.Join(projectDir, ".pi", "settings.json"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".pi", "agent", "settings.json"))
	}

	for _, path := range candidates {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		cfg, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if cfg != nil {
			return applyEnv(cfg), nil
		}
	}
	return applyEnv(DefaultConfig()), nil
}

// LoadFile reads one settings file. It returns nil, nil when the file has no
// powerline key.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes a settings document. JSON is valid YAML flow syntax, so both
// settings.json and hand-written YAML are accepted.
func Parse(data []byte, source string) (*Config, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", source, err)
	}
	if s.Powerline == nil {
		return nil, nil
	}
	cfg := s.Powerline
	if cfg.Preset == "" {
		cfg.Preset = preset.DefaultName
	}
	cfg.Source = source
	return cfg, nil
}

func applyEnv(cfg *Config) *Config {
	if v := os.Getenv(PresetEnv); v != "" {
		cfg.Preset = v
	}
	return cfg
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{Preset: preset.DefaultName}
}

// QuotaEnabled reports whether the usage API may be called.
func (c *Config) QuotaEnabled() bool {
	return c.Quota == nil || *c.Quota
}

// UpdateCheckEnabled reports whether the release check may run.
func (c *Config) UpdateCheckEnabled() bool {
	return c.UpdateCheck == nil || *c.UpdateCheck
}

// Validate returns one error per problem: an unknown preset name and every
// invalid colour override. The config stays usable; callers report the
// problems and fall back.
func (c *Config) Validate() []error {
	var errs []error
	if _, ok := preset.Lookup(c.Preset); !ok {
		errs = append(errs, fmt.Errorf("%q: %w", c.Preset, ErrUnknownPreset))
	}
	_, colorErrs := theme.ParseOverrides(c.Colors)
	return append(errs, colorErrs...)
}

// Overrides returns the valid colour overrides.
func (c *Config) Overrides() theme.Scheme {
	scheme, _ := theme.ParseOverrides(c.Colors)
	return scheme
}

// Definition returns the preset for name with show/hide applied. Unknown
// names resolve to the default preset.
func (c *Config) Definition(name string) preset.Definition {
	return preset.Customize(preset.Resolve(name), c.Show, c.Hide)
}

// Theme resolves the theme for d with the user's overrides on top.
func (c *Config) Theme(d preset.Definition) *theme.Theme {
	return theme.Resolve(c.Overrides(), d.Colors).WithIcons(d.Icons)
}
