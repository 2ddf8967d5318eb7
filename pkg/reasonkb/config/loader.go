package config

import (
	"fmt"
)

// Loader loads the configuration file and every program it names
type Loader struct {
	ConfigPath   string
	Config       *Config  // used instead of ConfigPath when set
	ProgramPaths []string // loaded after the programs listed in the config
}

// Components holds all loaded configuration components
type Components struct {
	Config   *Config
	Programs []*Program
}

// Load reads all configuration files and returns initialized components
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	switch {
	case l.Config != nil:
		if err := l.Config.Validate(); err != nil {
			return nil, fmt.Errorf("validate config: %w", err)
		}
		comp.Config = l.Config
	case l.ConfigPath != "":
		cfg, err := Load(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		comp.Config = cfg
	default:
		comp.Config = Default()
	}

	paths := append(append([]string{}, comp.Config.Programs...), l.ProgramPaths...)
	for _, path := range paths {
		prog, err := LoadProgram(path)
		if err != nil {
			return nil, fmt.Errorf("load program: %w", err)
		}
		comp.Programs = append(comp.Programs, prog)
	}

	return comp, nil
}
