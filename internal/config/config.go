// Package config exposes the strongly typed global configuration loaded from YAML:
// the named signer accounts, the derivation path and process-wide settings.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/iboss-ptk/protostar-sdk/internal/signer"
)

// Defaults applied by Load to empty fields.
const (
	DefaultAppName       = "protostar"
	DefaultLogLevel      = "info"
	DefaultAccountPrefix = "osmo"
)

// App captures process-wide runtime settings such as name, logging level and metrics export.
type App struct {
	Name     string `yaml:"name"`
	LogLevel string `yaml:"log_level"`
	// MetricsTextfile is where counters are written for a node-exporter textfile collector. Empty disables export.
	MetricsTextfile string `yaml:"metrics_textfile,omitempty"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App            App             `yaml:"app"`
	AccountPrefix  string          `yaml:"account_prefix"`
	DerivationPath string          `yaml:"derivation_path"`
	Accounts       signer.Accounts `yaml:"accounts"`
}

// Default returns a configuration with every default filled in and no accounts.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML file from disk, fills defaults and validates the result.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var config Config
	// An empty file is an empty document: defaults only.
	if err := yaml.NewDecoder(file).Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Save persists a Config struct to disk as YAML. Accounts hold secrets, so the file is owner-only.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks the derivation path and that every account names exactly one credential source.
func (c *Config) Validate() error {
	if _, err := signer.ParsePath(c.DerivationPath); err != nil {
		return fmt.Errorf("derivation_path: %w", err)
	}
	var errs []error
	for _, name := range c.AccountNames() {
		if err := c.Accounts[name].Validate(); err != nil {
			errs = append(errs, fmt.Errorf("account `%s`: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// AccountNames lists configured accounts in sorted order.
func (c *Config) AccountNames() []string {
	names := make([]string, 0, len(c.Accounts))
	for name := range c.Accounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = DefaultAppName
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = DefaultLogLevel
	}
	if c.AccountPrefix == "" {
		c.AccountPrefix = DefaultAccountPrefix
	}
	if c.DerivationPath == "" {
		c.DerivationPath = signer.DefaultDerivationPath
	}
	if c.Accounts == nil {
		c.Accounts = signer.Accounts{}
	}
}
