// Package config provides reading and writing of outl configuration.
// Supports both global (~/.outl/config.yaml) and local (.outl/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.outl/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is repository-specific config in .outl/config.yaml
	ScopeLocal
)

// Author represents the author metadata recorded with exports.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Export holds export-related configuration options.
type Export struct {
	// Directory is where versioned export folders are created. Empty
	// means ./exports relative to the repository.
	Directory string `yaml:"directory,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxName    *int `yaml:"max_name,omitempty"`
	MaxContent *int `yaml:"max_content,omitempty"`
}

// Default limits applied when not configured.
const (
	DefaultMaxName    = 256
	DefaultMaxContent = 64 * 1024 // plenty for a sentence
)

// Validation bounds for configuration values.
const (
	MinMaxName    = 1
	MaxMaxName    = 4096
	MinMaxContent = 1
	MaxMaxContent = 16 * 1024 * 1024
)

// Config contains configuration for outl.
type Config struct {
	Author Author `yaml:"author,omitempty"`
	Export Export `yaml:"export,omitempty"`
	Limits Limits `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Limits.MaxName != nil {
		v := *c.Limits.MaxName
		if v < MinMaxName || v > MaxMaxName {
			return fmt.Errorf("%w: max_name must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxName, MaxMaxName, v)
		}
	}
	if c.Limits.MaxContent != nil {
		v := *c.Limits.MaxContent
		if v < MinMaxContent || v > MaxMaxContent {
			return fmt.Errorf("%w: max_content must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxContent, MaxMaxContent, v)
		}
	}
	return nil
}

// MaxName returns the maximum heading/subheading/project name length in
// bytes (defaults to 256).
func (c *Config) MaxName() int {
	if c.Limits.MaxName == nil {
		return DefaultMaxName
	}
	return *c.Limits.MaxName
}

// MaxContent returns the maximum sentence length in bytes (defaults to 64 KB).
func (c *Config) MaxContent() int {
	if c.Limits.MaxContent == nil {
		return DefaultMaxContent
	}
	return *c.Limits.MaxContent
}

// ExportDir returns the configured export directory, or "exports" when
// unset.
func (c *Config) ExportDir() string {
	if c.Export.Directory == "" {
		return "exports"
	}
	return c.Export.Directory
}

// LocalPath returns the path to the local (repository) config file.
func LocalPath() string {
	return filepath.Join(".outl", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.outl/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".outl", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}

// Get returns the value for a dotted config key, e.g. "author.name".
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "author.email":
		return c.Author.Email, nil
	case "export.directory":
		return c.Export.Directory, nil
	case "limits.max_name":
		return fmt.Sprintf("%d", c.MaxName()), nil
	case "limits.max_content":
		return fmt.Sprintf("%d", c.MaxContent()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set assigns a dotted config key and validates the result.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "author.email":
		c.Author.Email = value
	case "export.directory":
		c.Export.Directory = value
	case "limits.max_name":
		n, err := parsePositive(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
		}
		c.Limits.MaxName = &n
	case "limits.max_content":
		n, err := parsePositive(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
		}
		c.Limits.MaxContent = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return c.Validate()
}

func parsePositive(value string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
		return 0, fmt.Errorf("not a number: %q", value)
	}
	if n < 1 {
		return 0, fmt.Errorf("must be positive: %d", n)
	}
	return n, nil
}
