package raster

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/Faultbox/rvg/internal/logger"
	"github.com/Faultbox/rvg/pkg/rvg"
)

// ErrUnknownFilter is returned by FilterByName for unrecognised names.
var ErrUnknownFilter = errors.New("raster: unknown resample filter")

// BitmapImage copies a raster fallback into an image. Pixels are
// straight (non-premultiplied) RGBA.
func BitmapImage(b rvg.Bitmap) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, int(b.Width), int(b.Height)))
	copy(img.Pix, b.Pixels)
	return img
}

// FilterByName maps a config filter name to an imaging resample filter.
func FilterByName(name string) (imaging.ResampleFilter, error) {
	switch strings.ToLower(name) {
	case "", "lanczos":
		return imaging.Lanczos, nil
	case "catmullrom":
		return imaging.CatmullRom, nil
	case "linear":
		return imaging.Linear, nil
	case "box":
		return imaging.Box, nil
	case "nearest":
		return imaging.NearestNeighbor, nil
	default:
		return imaging.ResampleFilter{}, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}
}

// ExportOptions controls ExportBitmaps.
type ExportOptions struct {
	Width  int    // resize to this width keeping aspect, 0 keeps the original
	Filter string // see FilterByName
	Format string // png when empty
}

// ExportBitmaps writes every non-empty bitmap of g into dir as
// bitmap_NNN.<format> and returns the written paths.
func ExportBitmaps(g *rvg.Graphic, dir string, opts ExportOptions) ([]string, error) {
	format := opts.Format
	if format == "" {
		format = "png"
	}
	filter, err := FilterByName(opts.Filter)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	log := logger.Named("raster")
	var paths []string
	for i := range g.Bitmaps {
		b := g.Bitmaps[i]
		if b.Width == 0 || b.Height == 0 {
			log.Debug("skipping empty bitmap", zap.Int("index", i))
			continue
		}

		var img image.Image = BitmapImage(b)
		if opts.Width > 0 && opts.Width != int(b.Width) {
			img = imaging.Resize(img, opts.Width, 0, filter)
		}

		path := filepath.Join(dir, fmt.Sprintf("bitmap_%03d.%s", i, format))
		if err := writeImage(path, img, format); err != nil {
			return paths, fmt.Errorf("bitmap %d: %w", i, err)
		}
		log.Debug("exported bitmap",
			zap.Int("index", i),
			zap.String("path", path),
			zap.Int("width", img.Bounds().Dx()),
			zap.Int("height", img.Bounds().Dy()))
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteImage encodes img to path in the format implied by its extension.
func WriteImage(path string, img image.Image) error {
	return writeImage(path, img, FormatFromPath(path, "png"))
}

func writeImage(path string, img image.Image, format string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating image file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return Encode(f, img, format)
}
