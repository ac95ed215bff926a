package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Flag names shared by BindFlags and applyFlags.
const (
	FlagConfig  = "config"
	FlagDebug   = "debug"
	FlagLogFile = "log-file"
	FlagScale   = "scale"
	FlagFrame   = "frame"
	FlagFormat  = "format"
	FlagWidth   = "width"
)

// BindFlags registers the global flags on fs. Commands add the render and
// bitmap flags they need with BindRenderFlags and BindBitmapFlags.
func BindFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "Path to config file")
	fs.Bool(FlagDebug, false, "Enable debug logging")
	fs.String(FlagLogFile, "", "Write logs to this file as well")
}

// BindRenderFlags registers rasterization overrides on fs.
func BindRenderFlags(fs *pflag.FlagSet) {
	fs.Float32(FlagScale, 0, "Output pixels per model unit")
	fs.Int(FlagFrame, -1, "Keyframe index to render")
	fs.String(FlagFormat, "", "Output format: png, bmp or jpg")
}

// BindBitmapFlags registers bitmap export overrides on fs.
func BindBitmapFlags(fs *pflag.FlagSet) {
	fs.Int(FlagWidth, 0, "Resize exported bitmaps to this width")
	if fs.Lookup(FlagFormat) == nil {
		fs.String(FlagFormat, "", "Output format: png, bmp or jpg")
	}
}

// FormatSet reports whether --format was given on the command line.
func FormatSet(fs *pflag.FlagSet) bool {
	return fs != nil && fs.Changed(FlagFormat)
}

// ConfigPath returns the explicit config path if provided via --config.
func ConfigPath(fs *pflag.FlagSet) string {
	if fs == nil || fs.Lookup(FlagConfig) == nil {
		return ""
	}
	path, _ := fs.GetString(FlagConfig)
	return path
}

// applyFlags applies flags the user actually set. Flags left at their
// defaults never override the file.
func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}

	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case FlagDebug:
			var debug bool
			if debug, err = fs.GetBool(FlagDebug); debug {
				cfg.Logging.Level = "debug"
			}
		case FlagLogFile:
			cfg.Logging.LogFile = f.Value.String()
		case FlagScale:
			var scale float32
			if scale, err = fs.GetFloat32(FlagScale); err == nil && scale > 0 {
				cfg.Render.Scale = scale
			}
		case FlagFrame:
			var frame int
			if frame, err = fs.GetInt(FlagFrame); err == nil && frame >= 0 {
				cfg.Render.Frame = frame
			}
		case FlagFormat:
			cfg.Render.Format = f.Value.String()
			cfg.Bitmaps.Format = f.Value.String()
		case FlagWidth:
			var width int
			if width, err = fs.GetInt(FlagWidth); err == nil && width > 0 {
				cfg.Bitmaps.Width = width
			}
		}
	})
	if err != nil {
		return fmt.Errorf("applying flags: %w", err)
	}
	return nil
}
