// Package config handles rvgtool configuration loading and management.
package config

// Config holds all rvgtool settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Bitmaps BitmapsConfig `yaml:"bitmaps"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig holds rasterization settings.
type RenderConfig struct {
	Scale      float32  `yaml:"scale"`      // Output pixels per model unit
	Background [4]uint8 `yaml:"background"` // RGBA, transparent by default
	Frame      int      `yaml:"frame"`      // Keyframe index to place geometry with
	Format     string   `yaml:"format"`     // png, bmp or jpg
}

// BitmapsConfig holds raster fallback export settings.
type BitmapsConfig struct {
	Width  int    `yaml:"width"`  // Resize target width, 0 keeps the original
	Filter string `yaml:"filter"` // lanczos, linear or nearest
	Format string `yaml:"format"` // png, bmp or jpg
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Scale:  1,
			Frame:  0,
			Format: "png",
		},
		Bitmaps: BitmapsConfig{
			Width:  0,
			Filter: "lanczos",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}
