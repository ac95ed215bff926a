package rvg

import (
	"fmt"
	"math"
)

// Validate checks that g can be encoded and that every index reference
// resolves. Save and Marshal call it before writing; Unmarshal calls it
// before returning.
//
// Geometric sanity (self-intersections, colour ranges) is not checked.
func (g *Graphic) Validate() error {
	if len(g.Vertices)%2 != 0 {
		return fmt.Errorf("%w: %d coordinates", ErrOddVertexList, len(g.Vertices))
	}
	for i, c := range g.Vertices {
		if math.IsNaN(float64(c)) {
			return fmt.Errorf("%w: NaN coordinate at %d", ErrReservedValue, i)
		}
	}

	for i, a := range g.Attributes {
		if a.Kind < AttrDepth || a.Kind > AttrUser {
			return fmt.Errorf("%w: attribute %d kind %s", ErrUnknownVariant, i, a.Kind)
		}
	}

	for i, path := range g.Paths {
		if err := g.validatePath(path); err != nil {
			return fmt.Errorf("path %d: %w", i, err)
		}
	}

	for i := range g.Models {
		if err := g.validateModel(&g.Models[i]); err != nil {
			return fmt.Errorf("model %d: %w", i, err)
		}
	}

	for i := range g.Bitmaps {
		b := &g.Bitmaps[i]
		if len(b.Pixels) != b.Size() {
			return fmt.Errorf("%w: bitmap %d is %dx%d but has %d bytes",
				ErrBitmapSize, i, b.Width, b.Height, len(b.Pixels))
		}
	}
	return nil
}

func (g *Graphic) validatePath(path Path) error {
	// An empty path would encode as the section terminator.
	if len(path) == 0 {
		return ErrEmptyPath
	}
	n := uint32(g.VertexCount())
	for j, op := range path {
		if op.Op < OpClose || op.Op > OpCubic {
			return fmt.Errorf("%w: op %d is %s", ErrUnknownVariant, j, op.Op)
		}
		for _, idx := range op.Indices() {
			if idx >= n {
				return fmt.Errorf("%w: op %d vertex %d of %d", ErrIndexOutOfRange, j, idx, n)
			}
		}
	}
	return nil
}

func (g *Graphic) validateModel(m *Model) error {
	if math.IsNaN(float64(m.Width)) {
		return fmt.Errorf("%w: NaN width", ErrReservedValue)
	}

	for j, b := range m.Bindings {
		if b.ID == NoGroup {
			return fmt.Errorf("%w: binding %d id 0x%X", ErrReservedValue, j, b.ID)
		}
		if uint64(b.ID) >= uint64(len(g.Paths)) {
			return fmt.Errorf("%w: binding %d path %d of %d", ErrIndexOutOfRange, j, b.ID, len(g.Paths))
		}
		for k, p := range b.Properties {
			if err := g.validateProperty(p); err != nil {
				return fmt.Errorf("binding %d property %d: %w", j, k, err)
			}
		}
	}

	if len(m.Frames) == 0 {
		return fmt.Errorf("%w: no frames", ErrBadFrames)
	}
	last := len(m.Frames) - 1
	for j, f := range m.Frames {
		if f.Animation.Kind < AnimDone || f.Animation.Kind > AnimLayer {
			return fmt.Errorf("%w: frame %d animation %s", ErrUnknownVariant, j, f.Animation.Kind)
		}
		if f.Animation.IsDone() != (j == last) {
			return fmt.Errorf("%w: frame %d of %d is %s", ErrBadFrames, j, len(m.Frames), f.Animation.Kind)
		}
		for k, t := range f.Transforms {
			if t == nil {
				return fmt.Errorf("%w: frame %d transform %d is nil", ErrUnknownVariant, j, k)
			}
		}
	}
	return nil
}

func (g *Graphic) validateProperty(p Property) error {
	switch v := p.(type) {
	case nil:
		return fmt.Errorf("%w: nil property", ErrUnknownVariant)
	case BitmapPattern:
		if uint64(v) >= uint64(len(g.Bitmaps)) {
			return fmt.Errorf("%w: bitmap %d of %d", ErrIndexOutOfRange, v, len(g.Bitmaps))
		}
	case GroupPattern:
		if uint64(v) >= uint64(len(g.Paths)) {
			return fmt.Errorf("%w: path %d of %d", ErrIndexOutOfRange, v, len(g.Paths))
		}
	}
	return nil
}
