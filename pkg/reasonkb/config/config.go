package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/reasonkb/pkg/reasonkb/inference"
	"github.com/cognicore/reasonkb/pkg/reasonkb/internalerr"
	"github.com/cognicore/reasonkb/pkg/reasonkb/kb"
)

// Config represents the knowledge base configuration file
type Config struct {
	Retraction     string   `yaml:"retraction"`      // cascade | supported
	RuleRetraction string   `yaml:"rule_retraction"` // reject | cascade
	LogLevel       string   `yaml:"log_level"`       // debug | info | warn | error
	Programs       []string `yaml:"programs"`        // program files, loaded in order
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Retraction:     string(kb.RetractCascade),
		RuleRetraction: string(kb.RuleRetractionReject),
		LogLevel:       "info",
	}
}

// Load loads configuration from a YAML file. Missing keys keep their
// defaults and relative program paths are resolved against the file's
// directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w: %v", path, internalerr.ErrInvalidConfig, err)
	}

	dir := filepath.Dir(path)
	for i, p := range cfg.Programs {
		if !filepath.IsAbs(p) {
			cfg.Programs[i] = filepath.Join(dir, p)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch kb.RetractionPolicy(c.Retraction) {
	case kb.RetractCascade, kb.RetractSupported:
	default:
		return fmt.Errorf("retraction %q: %w", c.Retraction, internalerr.ErrInvalidConfig)
	}
	switch kb.RuleRetraction(c.RuleRetraction) {
	case kb.RuleRetractionReject, kb.RuleRetractionCascade:
	default:
		return fmt.Errorf("rule_retraction %q: %w", c.RuleRetraction, internalerr.ErrInvalidConfig)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, internalerr.ErrInvalidConfig)
	}
	return lvl, nil
}

// KBOptions maps the configuration onto knowledge base options.
func (c *Config) KBOptions(logger *slog.Logger) kb.Options {
	return kb.Options{
		Logger:         logger,
		Retraction:     kb.RetractionPolicy(c.Retraction),
		RuleRetraction: kb.RuleRetraction(c.RuleRetraction),
	}
}

// Program is a parsed program file.
type Program struct {
	Path     string
	Entities []inference.Entity
}

// LoadProgram reads facts and rules from a program file.
// Format:
//
//	on(block1, table).
//	covered(?y) :- on(?x, ?y).
//	# comments
func LoadProgram(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	entities, err := inference.ParseProgram(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Program{Path: path, Entities: entities}, nil
}
