package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/rvg/internal/config"
	"github.com/Faultbox/rvg/internal/logger"
	"github.com/Faultbox/rvg/pkg/raster"
	"github.com/Faultbox/rvg/pkg/rvg"
)

func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.rvg>",
		Short: "Show section counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraphic(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ops := 0
			for _, p := range g.Paths {
				ops += len(p)
			}

			fmt.Fprintf(out, "File:       %s\n", args[0])
			fmt.Fprintf(out, "Attributes: %d\n", len(g.Attributes))
			fmt.Fprintf(out, "Vertices:   %d\n", g.VertexCount())
			fmt.Fprintf(out, "Paths:      %d (%d ops)\n", len(g.Paths), ops)
			fmt.Fprintf(out, "Models:     %d\n", len(g.Models))
			for i := range g.Models {
				m := &g.Models[i]
				fmt.Fprintf(out, "  [%d] %gx%g, %d bindings, %d frames, %d ms\n",
					i, m.Width, m.Height, len(m.Bindings), len(m.Frames), m.Duration())
			}
			fmt.Fprintf(out, "Bitmaps:    %d\n", len(g.Bitmaps))
			for i := range g.Bitmaps {
				b := &g.Bitmaps[i]
				fmt.Fprintf(out, "  [%d] %dx%d\n", i, b.Width, b.Height)
			}
			return nil
		},
	}
}

func (a *app) dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file.rvg>",
		Short: "Print the decoded scene as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraphic(args[0])
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(newDump(g)); err != nil {
				return fmt.Errorf("encoding YAML: %w", err)
			}
			return enc.Close()
		},
	}
}

func (a *app) renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <file.rvg> [output]",
		Short: "Rasterize the graphic to PNG, BMP or JPG",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraphic(args[0])
			if err != nil {
				return err
			}

			rc := a.cfg.Render
			output := strings.TrimSuffix(args[0], filepath.Ext(args[0])) + "." + rc.Format
			if len(args) > 1 {
				output = args[1]
			}
			// An explicit --format beats the output extension.
			format := raster.FormatFromPath(output, rc.Format)
			if config.FormatSet(cmd.Flags()) {
				format = rc.Format
			}

			start := time.Now()
			img, err := raster.RenderImage(g, raster.Options{
				Scale: rc.Scale,
				Frame: rc.Frame,
				Background: color.NRGBA{
					R: rc.Background[0],
					G: rc.Background[1],
					B: rc.Background[2],
					A: rc.Background[3],
				},
			})
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating output: %w", err)
			}
			if err := raster.Encode(f, img, format); err != nil {
				f.Close()
				return fmt.Errorf("encoding %s: %w", format, err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			logger.Info("rendered",
				zap.String("output", output),
				zap.Int("width", img.Bounds().Dx()),
				zap.Int("height", img.Bounds().Dy()),
				zap.Duration("took", time.Since(start)))
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}
	config.BindRenderFlags(cmd.Flags())
	return cmd
}

func (a *app) bitmapsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bitmaps <file.rvg> [dir]",
		Short: "Export raster fallbacks as images",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraphic(args[0])
			if err != nil {
				return err
			}

			dir := strings.TrimSuffix(args[0], filepath.Ext(args[0])) + "_bitmaps"
			if len(args) > 1 {
				dir = args[1]
			}

			paths, err := raster.ExportBitmaps(g, dir, raster.ExportOptions{
				Width:  a.cfg.Bitmaps.Width,
				Filter: a.cfg.Bitmaps.Filter,
				Format: a.cfg.Bitmaps.Format,
			})
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			if err != nil {
				return err
			}

			logger.Info("exported bitmaps", zap.Int("count", len(paths)), zap.String("dir", dir))
			return nil
		},
	}
	config.BindBitmapFlags(cmd.Flags())
	return cmd
}

func (a *app) sampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample <out.rvg>",
		Short: "Write a minimal example graphic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := sampleGraphic()
			if err != nil {
				return err
			}
			if err := rvg.SaveFile(args[0], g); err != nil {
				return err
			}
			logger.Debug("wrote sample", zap.String("path", args[0]))
			fmt.Fprintln(cmd.OutOrStdout(), args[0])
			return nil
		},
	}
}

// sampleGraphic is one red path from (0,0) to (10,10) in a 100x100 model.
func sampleGraphic() (*rvg.Graphic, error) {
	b := rvg.NewBuilder()
	id := b.AddPath(
		rvg.Move(b.AddVertex(0, 0)),
		rvg.Line(b.AddVertex(10, 10)),
		rvg.Close(),
	)
	b.AddModel(100, 100).Bind(id, rvg.FillColor{255, 0, 0, 255})
	return b.Build()
}

func loadGraphic(path string) (*rvg.Graphic, error) {
	start := time.Now()
	g, err := rvg.LoadFile(path)
	if err != nil {
		logger.Error("load failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	logger.Debug("loaded graphic",
		zap.String("path", path),
		zap.Int("attributes", len(g.Attributes)),
		zap.Int("vertices", g.VertexCount()),
		zap.Int("paths", len(g.Paths)),
		zap.Int("models", len(g.Models)),
		zap.Int("bitmaps", len(g.Bitmaps)),
		zap.Duration("took", time.Since(start)))
	return g, nil
}
