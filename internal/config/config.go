// Package config loads .datascout.yml configuration files holding
// per-workspace analysis settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileNames lists the recognized config file names in lookup order.
var FileNames = []string{".datascout.yml", ".datascout.yaml"}

const maxSize = 1 << 20

// Config represents the .datascout.yml configuration file.
type Config struct {
	Ignore      []string `yaml:"ignore,omitempty"`
	OutputDir   string   `yaml:"output_dir,omitempty"`
	LargeFileMB float64  `yaml:"large_file_mb,omitempty"`
	HTML        bool     `yaml:"html,omitempty"`
	NoColor     bool     `yaml:"no_color,omitempty"`
}

// Settings are the effective options of one analyze run.
type Settings struct {
	OutputDir   string
	HTML        bool
	NoColor     bool
	LargeFileMB float64
	Ignore      []string
}

// Load reads the config file for a workspace. A file target uses its parent
// directory. No config file yields a zero Config and no error.
func Load(target string) (Config, error) {
	path, err := Find(target)
	if err != nil || path == "" {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}
	cfg, err := parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Find returns the first config file present for target, or "" when there
// is none.
func Find(target string) (string, error) {
	dir := target
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		dir = filepath.Dir(target)
	}
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			continue
		case err != nil:
			return "", fmt.Errorf("reading %s: %w", path, err)
		case info.Size() > maxSize:
			return "", fmt.Errorf("config file too large: %s (%d bytes, max 1 MB)", path, info.Size())
		}
		return path, nil
	}
	return "", nil
}

func parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.LargeFileMB < 0 {
		return Config{}, errors.New("large_file_mb must not be negative")
	}
	return cfg, nil
}

// ApplyTo copies config values into s for every option the user did not set
// on the command line. changed reports whether a flag was set explicitly;
// nil means none were. Unset config values leave s alone.
func (c Config) ApplyTo(s *Settings, changed func(flag string) bool) {
	if changed == nil {
		changed = func(string) bool { return false }
	}
	if !changed("output-dir") && c.OutputDir != "" {
		s.OutputDir = c.OutputDir
	}
	if !changed("html") && c.HTML {
		s.HTML = true
	}
	if !changed("no-color") && c.NoColor {
		s.NoColor = true
	}
	if !changed("large-mb") && c.LargeFileMB > 0 {
		s.LargeFileMB = c.LargeFileMB
	}
	s.Ignore = append(s.Ignore, c.Ignore...)
}
