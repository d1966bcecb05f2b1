// Package config loads the optional configuration file. Everything has a
// built-in default; the file only overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/example/hid-bpf-loader/internal/logging"
)

// DefaultPath is where the configuration file is looked up when no
// --config flag is given.
const DefaultPath = "/etc/hid-bpf-loader/config.yaml"

// Directory locations candidate programs are loaded from. The development
// tree location takes precedence when it exists, so a local build can be
// tested without installing.
const (
	devProgramDir     = "target/bpf"
	defaultProgramDir = "/usr/local/lib/firmware/hid/bpf"
)

// Config is the file's root structure.
type Config struct {
	// BPFDir overrides the built-in program directory lookup.
	BPFDir string `yaml:"bpf_dir,omitempty"`

	// Logging configures level and destination.
	Logging logging.Config `yaml:"logging,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{}
}

// Load reads the file at path. A missing file is only an error when the
// caller explicitly asked for that path; with required=false the defaults
// are returned instead.
func Load(path string, required bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// ProgramDir resolves the directory to search for candidate programs:
// the configured directory if set, else the development tree, else the
// installed location.
func (c *Config) ProgramDir() string {
	if c.BPFDir != "" {
		return c.BPFDir
	}
	if info, err := os.Stat(devProgramDir); err == nil && info.IsDir() {
		return devProgramDir
	}
	return defaultProgramDir
}
