/*
Package config loads the optional YAML configuration file.

Every key is optional and command line flags take precedence over the file:

	capacity: exact     # literal (default) or exact
	strict: true        # fail if the trailing padding is missing
	assume_yes: false   # answer yes to the header mismatch prompt
	journal: ~/.stegimg.db
*/
package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/stegimg/lsb"
	"gopkg.in/yaml.v2"
)

// Filename is the default configuration filename looked for in the user's
// configuration directory
const Filename = "stegimg.yml"

// Config holds the settings read from the file
type Config struct {
	Capacity  string `yaml:"capacity"`
	Strict    bool   `yaml:"strict"`
	AssumeYes bool   `yaml:"assume_yes"`
	Journal   string `yaml:"journal"`
}

// Default returns the path of the default configuration file, or an empty
// string if there is no user configuration directory
func Default() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "stegimg", Filename)
}

// Load reads the configuration file at path. A missing file is not an error
// and results in the default configuration.
func Load(path string) (*Config, error) {
	c := new(Config)
	if path == "" {
		return c, nil
	}

	b, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("failed to read configuration file '%s': %w", path, err)
	}

	if err := yaml.UnmarshalStrict(b, c); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file '%s': %w", path, err)
	}

	if _, err := c.CapacityMode(); err != nil {
		return nil, fmt.Errorf("invalid configuration file '%s': %w", path, err)
	}

	c.Journal = expandHome(c.Journal)

	return c, nil
}

// CapacityMode returns the configured capacity mode, defaulting to
// lsb.CapacityLiteral
func (c *Config) CapacityMode() (lsb.CapacityMode, error) {
	if c.Capacity == "" {
		return lsb.CapacityLiteral, nil
	}
	return lsb.ParseCapacityMode(c.Capacity)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
