package rvg

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"go.uber.org/multierr"
)

var nan32 = float32(math.NaN())

// Save validates g and writes it to w as a compressed RVG stream. The
// compressor trailer is flushed even when a section write fails.
func Save(w io.Writer, g *Graphic) (err error) {
	if err := g.Validate(); err != nil {
		return err
	}

	zw, err := newCompressor(w)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := zw.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("%w: closing stream: %v", ErrCompression, cerr))
		}
	}()

	return encode(zw, g)
}

// Marshal validates g and returns its uncompressed payload.
func Marshal(g *Graphic) ([]byte, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := encode(&buf, g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encode(w io.Writer, g *Graphic) error {
	e := &encoder{w: w}

	steps := []struct {
		section Section
		write   func()
	}{
		{SectionHeader, func() { e.raw(Magic[:]) }},
		{SectionAttributes, func() { e.writeAttributes(g.Attributes) }},
		{SectionVertices, func() { e.writeVertices(g.Vertices) }},
		{SectionPaths, func() { e.writePaths(g.Paths) }},
		{SectionModels, func() { e.writeModels(g.Models) }},
		{SectionBitmaps, func() { e.writeBitmaps(g.Bitmaps) }},
	}
	for _, step := range steps {
		step.write()
		if e.err != nil {
			return fmt.Errorf("writing %s: %w", step.section, e.err)
		}
	}
	return nil
}

// encoder writes little-endian values and keeps the first write error.
type encoder struct {
	w   io.Writer
	err error
}

func (e *encoder) put(v any) {
	if e.err != nil {
		return
	}
	e.err = binary.Write(e.w, binary.LittleEndian, v)
}

func (e *encoder) raw(p []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(p)
}

func (e *encoder) writeAttributes(attrs []Attribute) {
	for _, a := range attrs {
		e.put(uint8(a.Kind))
		if a.Kind == AttrUser {
			e.put(a.User)
		}
	}
	e.put(uint8(0))
}

func (e *encoder) writeVertices(coords []float32) {
	for _, c := range coords {
		e.put(c)
	}
	e.put(nan32)
}

// writePaths ends every path with 0 and the section with one more 0, which
// reads back as an empty path.
func (e *encoder) writePaths(paths []Path) {
	for _, path := range paths {
		for _, op := range path {
			e.put(uint8(op.Op))
			for _, idx := range op.Indices() {
				e.put(idx)
			}
		}
		e.put(uint8(0))
	}
	e.put(uint8(0))
}

func (e *encoder) writeModels(models []Model) {
	for i := range models {
		m := &models[i]
		e.put(m.Width)
		e.put(m.Height)

		for _, b := range m.Bindings {
			e.put(b.ID)
			for _, p := range b.Properties {
				e.writeProperty(p)
			}
			e.put(uint8(0))
		}
		e.put(uint32(NoGroup))

		for _, f := range m.Frames {
			e.writeFrame(f)
			if f.Animation.IsDone() {
				break
			}
		}
	}
	e.put(nan32)
}

func (e *encoder) writeProperty(p Property) {
	e.put(p.propertyTag())
	switch v := p.(type) {
	case FillColor:
		e.raw(v[:])
	case StrokeColor:
		e.raw(v[:])
	case StrokeWidth:
		e.put(float32(v))
	case JoinStyle:
		e.put(uint8(v))
	case FillRule:
		e.put(uint8(v))
	case GlyphID:
		e.put(uint32(v))
	case BitmapPattern:
		e.put(uint32(v))
	case GroupPattern:
		e.put(uint32(v))
	}
}

func (e *encoder) writeFrame(f Frame) {
	for _, t := range f.Transforms {
		e.put(t.transformTag())
		switch v := t.(type) {
		case Translate:
			e.put([3]float32{v.X, v.Y, v.Z})
		case Scale:
			e.put([3]float32{v.X, v.Y, v.Z})
		case Rotate:
			e.put([4]float32{v.X, v.Y, v.Z, v.W})
		}
	}
	e.put(uint8(0))
	e.put(f.Delay)
	e.put(uint8(f.Animation.Kind))
	if f.Animation.Kind.HasRate() {
		e.put(f.Animation.Rate)
	}
}

// writeBitmaps has no terminator; the section runs to end of stream.
func (e *encoder) writeBitmaps(bitmaps []Bitmap) {
	for _, b := range bitmaps {
		e.put(b.Width)
		e.put(b.Height)
		e.raw(b.Pixels)
	}
}
