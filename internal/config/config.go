// Package config loads the optional TOML configuration file that may
// pre-supply defaults for the fuzzer's CLI flags, following the same
// load/precedence shape the teacher uses for its own config.toml.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// File mirrors the subset of CLI flags that make sense to pre-configure.
// Explicit flags on the command line always override these.
type File struct {
	NumThreads int    `toml:"num_threads,omitempty"`
	Ports      string `toml:"ports,omitempty"`
	Output     string `toml:"output,omitempty"`
	State      string `toml:"state,omitempty"`
	Quiet      bool   `toml:"quiet,omitempty"`
	StackSize  uint64 `toml:"stack_size,omitempty"`
}

// Load reads and parses a TOML config file at path. A missing file is not
// an error — it returns a zero-value File so callers fall back to flag
// defaults.
func Load(path string) (*File, error) {
	cfg := &File{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
