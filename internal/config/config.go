// Package config loads the sitecake YAML configuration.
package config

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitecake/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecake/internal/logfields"
)

// DefaultPath is the configuration file the CLI looks for when none is given.
const DefaultPath = "sitecake.yaml"

// Config is the complete sitecake configuration.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Resources ResourcesConfig `yaml:"resources"`
	IDs       IDsConfig       `yaml:"ids"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SiteConfig locates the site and the editor entry point.
type SiteConfig struct {
	Root       string `yaml:"root"`               // Directory holding the site's pages
	EntryPoint string `yaml:"entry_point"`        // Script internal links are routed through when rendering
	BaseURL    string `yaml:"base_url,omitempty"` // Public URL; its host counts as internal
}

// ResourcesConfig configures resource URL rewriting.
type ResourcesConfig struct {
	Prefix string `yaml:"prefix"` // Prefix applied while a page is open for editing
}

// IDsConfig selects the identifier generators.
type IDsConfig struct {
	Temporary IDKind `yaml:"temporary"` // Generator for temporary container names
}

// LoggingConfig configures the CLI logger.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads, expands, normalizes and validates the configuration at path.
// Environment files next to the working directory are loaded first so that
// ${VAR} references can be satisfied from them.
func Load(path string) (*Config, error) {
	loaded, err := loadEnvFiles(".")
	if err != nil {
		return nil, err
	}
	for _, f := range loaded {
		slog.Debug("Loaded environment file", logfields.Path(f))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("configuration file not found").
				WithContext("path", path).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext("path", path).
			Build()
	}

	return Parse(data)
}

// Parse decodes configuration bytes after ${VAR} expansion.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").Build()
	}

	if err := normalize(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Init writes an example configuration file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.NewError(errors.CategoryAlreadyExists, "configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}

	example := Config{
		Site: SiteConfig{
			Root:       "${SITECAKE_SITE_ROOT}",
			EntryPoint: DefaultEntryPoint,
			BaseURL:    "https://www.example.com",
		},
		Resources: ResourcesConfig{Prefix: "../"},
		IDs:       IDsConfig{Temporary: IDKindTime},
		Logging:   LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", path).
			Build()
	}
	return nil
}
