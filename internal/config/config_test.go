package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	BindRenderFlags(fs)
	BindBitmapFlags(fs)
	return fs
}

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test render defaults
	if cfg.Render.Scale != 1 {
		t.Errorf("expected scale 1, got %f", cfg.Render.Scale)
	}
	if cfg.Render.Frame != 0 {
		t.Errorf("expected frame 0, got %d", cfg.Render.Frame)
	}
	if cfg.Render.Format != "png" {
		t.Errorf("expected format 'png', got %s", cfg.Render.Format)
	}
	if cfg.Render.Background != [4]uint8{} {
		t.Errorf("expected transparent background, got %v", cfg.Render.Background)
	}

	// Test bitmap defaults
	if cfg.Bitmaps.Width != 0 {
		t.Errorf("expected width 0, got %d", cfg.Bitmaps.Width)
	}
	if cfg.Bitmaps.Filter != "lanczos" {
		t.Errorf("expected filter 'lanczos', got %s", cfg.Bitmaps.Filter)
	}
	if cfg.Bitmaps.Format != "png" {
		t.Errorf("expected bitmap format 'png', got %s", cfg.Bitmaps.Format)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
render:
  scale: 2.5
  background: [255, 255, 255, 255]
  frame: 3
  format: bmp

bitmaps:
  width: 64
  filter: nearest

logging:
  level: "debug"
  log_file: "rvgtool.log"
  max_backups: 5
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := readFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Render.Scale != 2.5 {
		t.Errorf("expected scale 2.5, got %f", cfg.Render.Scale)
	}
	if cfg.Render.Background != [4]uint8{255, 255, 255, 255} {
		t.Errorf("expected white background, got %v", cfg.Render.Background)
	}
	if cfg.Render.Frame != 3 {
		t.Errorf("expected frame 3, got %d", cfg.Render.Frame)
	}
	if cfg.Render.Format != "bmp" {
		t.Errorf("expected format 'bmp', got %s", cfg.Render.Format)
	}
	if cfg.Bitmaps.Width != 64 {
		t.Errorf("expected width 64, got %d", cfg.Bitmaps.Width)
	}
	if cfg.Bitmaps.Filter != "nearest" {
		t.Errorf("expected filter 'nearest', got %s", cfg.Bitmaps.Filter)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "rvgtool.log" {
		t.Errorf("expected log file 'rvgtool.log', got %s", cfg.Logging.LogFile)
	}
	if cfg.Logging.MaxBackups != 5 {
		t.Errorf("expected max backups 5, got %d", cfg.Logging.MaxBackups)
	}
	// Untouched keys keep their defaults
	if cfg.Logging.MaxSizeMB != 10 {
		t.Errorf("expected max size 10 from defaults, got %d", cfg.Logging.MaxSizeMB)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
render:
  scale: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := readFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := readFile(cfg, "/nonexistent/path/rvgtool.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestLocate(t *testing.T) {
	tmpDir := t.TempDir()
	chdir(t, tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := locate(nil); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	userPath := filepath.Join(tmpDir, "xdg", "rvg", FileName)
	if err := os.MkdirAll(filepath.Dir(userPath), 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(userPath, []byte("render:\n  scale: 2\n"), 0644); err != nil {
		t.Fatalf("failed to create user config: %v", err)
	}
	if path := locate(nil); path != userPath {
		t.Errorf("expected user config %s, got %s", userPath, path)
	}

	if err := os.WriteFile(FileName, []byte("render:\n  scale: 4\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := locate(nil); path != FileName {
		t.Errorf("expected working directory config to win, got %s", path)
	}

	fs := newFlagSet()
	if err := fs.Parse([]string{"--config", "other.yaml"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if path := locate(fs); path != "other.yaml" {
		t.Errorf("expected --config path, got %s", path)
	}
}

func TestReadFile_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("render:\n  zoom: 2\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := readFile(Default(), path); err == nil {
		t.Error("expected error for unknown key, got nil")
	}
}

func TestReadFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := readFile(cfg, path); err != nil {
		t.Fatalf("expected empty file to be accepted, got %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestFormatSet(t *testing.T) {
	if FormatSet(nil) {
		t.Error("expected false for nil flag set")
	}

	fs := newFlagSet()
	if err := fs.Parse([]string{"--scale", "2"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if FormatSet(fs) {
		t.Error("expected false when --format is not given")
	}

	fs = newFlagSet()
	if err := fs.Parse([]string{"--format", "bmp"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if !FormatSet(fs) {
		t.Error("expected true when --format is given")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(*testing.T, *Config)
	}{
		{
			name: "debug flag",
			args: []string{"--debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "log file flag",
			args: []string{"--log-file", "out.log"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.LogFile != "out.log" {
					t.Errorf("expected log file out.log, got %s", cfg.Logging.LogFile)
				}
			},
		},
		{
			name: "render flags",
			args: []string{"--scale", "3", "--frame", "2", "--format", "jpg"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Render.Scale != 3 {
					t.Errorf("expected scale 3, got %f", cfg.Render.Scale)
				}
				if cfg.Render.Frame != 2 {
					t.Errorf("expected frame 2, got %d", cfg.Render.Frame)
				}
				if cfg.Render.Format != "jpg" {
					t.Errorf("expected format jpg, got %s", cfg.Render.Format)
				}
				if cfg.Bitmaps.Format != "jpg" {
					t.Errorf("expected bitmap format jpg, got %s", cfg.Bitmaps.Format)
				}
			},
		},
		{
			name: "width flag",
			args: []string{"--width", "128"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Bitmaps.Width != 128 {
					t.Errorf("expected width 128, got %d", cfg.Bitmaps.Width)
				}
			},
		},
		{
			name: "non-positive values ignored",
			args: []string{"--scale", "0", "--frame", "-1", "--width", "-4"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Render.Scale != 1 {
					t.Errorf("expected default scale 1, got %f", cfg.Render.Scale)
				}
				if cfg.Render.Frame != 0 {
					t.Errorf("expected default frame 0, got %d", cfg.Render.Frame)
				}
				if cfg.Bitmaps.Width != 0 {
					t.Errorf("expected default width 0, got %d", cfg.Bitmaps.Width)
				}
			},
		},
		{
			name: "unset flags change nothing",
			args: nil,
			verify: func(t *testing.T, cfg *Config) {
				if *cfg != *Default() {
					t.Errorf("expected defaults, got %+v", cfg)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFlagSet()
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("parse flags: %v", err)
			}

			cfg := Default()
			if err := applyFlags(cfg, fs); err != nil {
				t.Fatalf("applyFlags: %v", err)
			}
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "custom.yaml")

	yamlContent := `
render:
  scale: 2
  format: bmp
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	fs := newFlagSet()
	if err := fs.Parse([]string{"--config", configPath, "--scale", "4"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Scale should be from flag (4), not file (2)
	if cfg.Render.Scale != 4 {
		t.Errorf("expected scale 4 from flag, got %f", cfg.Render.Scale)
	}

	// Format should be from file since no flag override
	if cfg.Render.Format != "bmp" {
		t.Errorf("expected format bmp from file, got %s", cfg.Render.Format)
	}

	// Frame should be the default
	if cfg.Render.Frame != 0 {
		t.Errorf("expected default frame 0, got %d", cfg.Render.Frame)
	}
}

func TestLoadNilFlagSet(t *testing.T) {
	tmpDir := t.TempDir()
	chdir(t, tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load(nil): %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Render.Format = "jpg"
	cfg.Render.Background = [4]uint8{1, 2, 3, 4}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got := Default()
	if err := readFile(got, path); err != nil {
		t.Fatalf("readFile: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only %s in config dir, got %d entries", FileName, len(entries))
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
