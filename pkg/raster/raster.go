// Package raster draws RVG graphics into Go images.
//
// The renderer covers the subset of the format that has an unambiguous
// 2D meaning: a single model without per-vertex attributes or raster
// fallbacks. Fill and stroke colours and stroke width are honoured.
// Join styles, glyphs and patterns are skipped and logged at debug level.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"go.uber.org/zap"
	"golang.org/x/image/vector"

	"github.com/Faultbox/rvg/internal/logger"
	rmath "github.com/Faultbox/rvg/pkg/math"
	"github.com/Faultbox/rvg/pkg/rvg"
)

var (
	ErrUnsupported = errors.New("raster: unsupported graphic")
	ErrFrameRange  = errors.New("raster: frame out of range")
)

// curveSteps is the number of line segments a curve is flattened into.
const curveSteps = 16

// Options controls rendering.
type Options struct {
	// Scale is output pixels per model unit. RenderImage uses it to size
	// the target; Render fits the model to dst instead. Zero means 1.
	Scale float32
	// Frame selects the keyframe whose transforms place the geometry.
	Frame int
	// Background fills dst before drawing when its alpha is non-zero.
	Background color.NRGBA
}

// RenderImage allocates a target sized to the model and renders into it.
func RenderImage(g *rvg.Graphic, opts Options) (*image.RGBA, error) {
	if err := Supported(g); err != nil {
		return nil, err
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	m := &g.Models[0]
	w := int(math.Ceil(float64(m.Width * scale)))
	h := int(math.Ceil(float64(m.Height * scale)))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: model is %gx%g", ErrUnsupported, m.Width, m.Height)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if err := Render(dst, g, opts); err != nil {
		return nil, err
	}
	return dst, nil
}

// Supported reports whether Render can draw g.
func Supported(g *rvg.Graphic) error {
	switch {
	case len(g.Attributes) != 0:
		return fmt.Errorf("%w: %d vertex attributes", ErrUnsupported, len(g.Attributes))
	case len(g.Bitmaps) != 0:
		return fmt.Errorf("%w: %d bitmaps", ErrUnsupported, len(g.Bitmaps))
	case len(g.Models) != 1:
		return fmt.Errorf("%w: %d models, need exactly 1", ErrUnsupported, len(g.Models))
	}
	return nil
}

// Render draws the single model of g scaled to fill dst's bounds.
// Bindings are drawn in order, each filled and then stroked.
func Render(dst *image.RGBA, g *rvg.Graphic, opts Options) error {
	if err := Supported(g); err != nil {
		return err
	}
	m := &g.Models[0]
	if opts.Frame < 0 || opts.Frame >= len(m.Frames) {
		return fmt.Errorf("%w: frame %d of %d", ErrFrameRange, opts.Frame, len(m.Frames))
	}
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("%w: model is %gx%g", ErrUnsupported, m.Width, m.Height)
	}

	b := dst.Bounds()
	if opts.Background.A != 0 {
		draw.Draw(dst, b, image.NewUniform(opts.Background), image.Point{}, draw.Src)
	}
	if b.Empty() {
		return nil
	}

	r := &renderer{
		g:     g,
		dst:   dst,
		place: m.Frames[opts.Frame].Matrix(),
		xs:    float32(b.Dx()) / m.Width,
		ys:    float32(b.Dy()) / m.Height,
		z:     vector.NewRasterizer(b.Dx(), b.Dy()),
		log:   logger.Named("raster"),
	}
	for i, bind := range m.Bindings {
		r.drawBinding(i, bind)
	}

	r.log.Debug("rendered model",
		zap.Int("bindings", len(m.Bindings)),
		zap.Int("frame", opts.Frame),
		zap.Int("width", b.Dx()),
		zap.Int("height", b.Dy()))
	return nil
}

type renderer struct {
	g      *rvg.Graphic
	dst    *image.RGBA
	place  rmath.Mat4
	xs, ys float32
	log    *zap.Logger

	// z's origin maps to dst.Bounds().Min.
	z *vector.Rasterizer
}

// style is the resolved property list of one binding.
type style struct {
	fill   color.NRGBA
	stroke color.NRGBA
	width  float32
}

func (r *renderer) resolve(props []rvg.Property) style {
	s := style{width: 1}
	for _, p := range props {
		switch v := p.(type) {
		case rvg.FillColor:
			s.fill = color.NRGBA{v[0], v[1], v[2], v[3]}
		case rvg.StrokeColor:
			s.stroke = color.NRGBA{v[0], v[1], v[2], v[3]}
		case rvg.StrokeWidth:
			s.width = float32(v)
		case rvg.FillRule:
			if v != 0 {
				r.log.Debug("only non-zero fill is supported", zap.Uint8("rule", uint8(v)))
			}
		default:
			r.log.Debug("ignoring property", zap.String("property", fmt.Sprintf("%T", p)))
		}
	}
	return s
}

func (r *renderer) drawBinding(i int, bind rvg.Binding) {
	s := r.resolve(bind.Properties)
	subpaths := r.flatten(r.g.Paths[bind.ID])

	if s.fill.A != 0 {
		r.fill(subpaths, s.fill)
	}
	if s.stroke.A != 0 && s.width > 0 {
		// Widths are in model units; non-uniform scaling uses the mean.
		r.stroke(subpaths, s.width*(r.xs+r.ys)/2, s.stroke)
	}

	r.log.Debug("drew binding",
		zap.Int("binding", i),
		zap.Uint32("path", bind.ID),
		zap.Int("subpaths", len(subpaths)))
}

// subpath is a flattened run of points in destination pixels.
type subpath struct {
	pts    []rmath.Vec2
	closed bool
}

// point maps vertex i through the frame matrix into pixels relative to
// the destination origin.
func (r *renderer) point(i uint32) rmath.Vec2 {
	x, y := r.g.Vertex(i)
	p := r.place.Apply2(rmath.Vec2{X: x, Y: y})
	return rmath.Vec2{X: p.X * r.xs, Y: p.Y * r.ys}
}

func (r *renderer) flatten(path rvg.Path) []subpath {
	var out []subpath
	var cur subpath
	var pen rmath.Vec2

	flush := func() {
		if len(cur.pts) > 1 {
			out = append(out, cur)
		}
		cur = subpath{}
	}
	lineTo := func(p rmath.Vec2) {
		if len(cur.pts) == 0 {
			cur.pts = append(cur.pts, pen)
		}
		cur.pts = append(cur.pts, p)
		pen = p
	}

	for _, op := range path {
		switch op.Op {
		case rvg.OpMove:
			flush()
			pen = r.point(op.Points[0])
			cur.pts = append(cur.pts, pen)
		case rvg.OpLine:
			lineTo(r.point(op.Points[0]))
		case rvg.OpQuad:
			p0, p1, p2 := pen, r.point(op.Points[0]), r.point(op.Points[1])
			for s := 1; s <= curveSteps; s++ {
				t := float32(s) / curveSteps
				lineTo(p0.Lerp(p1, t).Lerp(p1.Lerp(p2, t), t))
			}
		case rvg.OpCubic:
			p0, p1, p2, p3 := pen, r.point(op.Points[0]), r.point(op.Points[1]), r.point(op.Points[2])
			for s := 1; s <= curveSteps; s++ {
				t := float32(s) / curveSteps
				a, b, c := p0.Lerp(p1, t), p1.Lerp(p2, t), p2.Lerp(p3, t)
				lineTo(a.Lerp(b, t).Lerp(b.Lerp(c, t), t))
			}
		case rvg.OpClose:
			if len(cur.pts) > 0 {
				start := cur.pts[0]
				cur.closed = true
				flush()
				pen = start
			}
		}
	}
	flush()
	return out
}

func (r *renderer) fill(subpaths []subpath, c color.NRGBA) {
	b := r.dst.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
	for _, sp := range subpaths {
		r.z.MoveTo(sp.pts[0].X, sp.pts[0].Y)
		for _, p := range sp.pts[1:] {
			r.z.LineTo(p.X, p.Y)
		}
		r.z.ClosePath()
	}
	r.z.Draw(r.dst, b, image.NewUniform(c), image.Point{})
}

// stroke covers every segment with a quad of the given width. Segments
// meet without joins.
func (r *renderer) stroke(subpaths []subpath, width float32, c color.NRGBA) {
	b := r.dst.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
	half := width / 2
	for _, sp := range subpaths {
		pts := sp.pts
		if sp.closed {
			pts = append(pts[:len(pts):len(pts)], pts[0])
		}
		for i := 1; i < len(pts); i++ {
			a, e := pts[i-1], pts[i]
			d := e.Sub(a)
			if d.Length() == 0 {
				continue
			}
			n := d.Normalize().Perp().Scale(half)
			r.z.MoveTo(a.X+n.X, a.Y+n.Y)
			r.z.LineTo(e.X+n.X, e.Y+n.Y)
			r.z.LineTo(e.X-n.X, e.Y-n.Y)
			r.z.LineTo(a.X-n.X, a.Y-n.Y)
			r.z.ClosePath()
		}
	}
	r.z.Draw(r.dst, b, image.NewUniform(c), image.Point{})
}
