package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// FileName is the config file rvgtool looks for.
const FileName = "rvgtool.yaml"

// Load builds the effective configuration: Default, then the config file,
// then any flags set on fs. fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := Default()

	if path := locate(fs); path != "" {
		if err := readFile(cfg, path); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	if err := applyFlags(cfg, fs); err != nil {
		return nil, err
	}
	return cfg, nil
}

// locate returns --config when given, otherwise the first existing entry
// of searchPaths, or "" when there is no config file.
func locate(fs *pflag.FlagSet) string {
	if path := ConfigPath(fs); path != "" {
		return path
	}
	for _, path := range searchPaths() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// searchPaths lists the implicit config locations, working directory first.
func searchPaths() []string {
	return []string{FileName, filepath.Join(ConfigDir(), FileName)}
}

// ConfigDir is the per-user rvg directory under os.UserConfigDir. When the
// platform has none it falls back to ~/.config/rvg.
func ConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "rvg")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".config", "rvg")
}

// readFile overlays the YAML at path onto cfg. Keys missing from the file
// keep their current values; unknown keys are rejected.
func readFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
