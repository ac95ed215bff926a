package main

import (
	"fmt"
	"strings"

	"github.com/Faultbox/rvg/pkg/rvg"
)

// dumpGraphic is the YAML view printed by `rvgtool dump`. Sum types are
// flattened to short strings so the output stays readable.
type dumpGraphic struct {
	Attributes []string     `yaml:"attributes,omitempty"`
	Vertices   [][2]float32 `yaml:"vertices,omitempty,flow"`
	Paths      [][]string   `yaml:"paths,omitempty,flow"`
	Models     []dumpModel  `yaml:"models,omitempty"`
	Bitmaps    []dumpBitmap `yaml:"bitmaps,omitempty"`
}

type dumpModel struct {
	Width    float32       `yaml:"width"`
	Height   float32       `yaml:"height"`
	Bindings []dumpBinding `yaml:"bindings,omitempty"`
	Frames   []dumpFrame   `yaml:"frames"`
}

type dumpBinding struct {
	Path       uint32   `yaml:"path"`
	Properties []string `yaml:"properties,omitempty,flow"`
}

type dumpFrame struct {
	Transforms []string `yaml:"transforms,omitempty,flow"`
	Delay      uint16   `yaml:"delay"`
	Animation  string   `yaml:"animation"`
}

type dumpBitmap struct {
	Width  uint16 `yaml:"width"`
	Height uint16 `yaml:"height"`
	Bytes  int    `yaml:"bytes"`
}

func newDump(g *rvg.Graphic) dumpGraphic {
	var d dumpGraphic

	for _, a := range g.Attributes {
		if a.Kind == rvg.AttrUser {
			d.Attributes = append(d.Attributes, fmt.Sprintf("%s(%d)", a.Kind, a.User))
		} else {
			d.Attributes = append(d.Attributes, a.Kind.String())
		}
	}

	for i := 0; i < g.VertexCount(); i++ {
		x, y := g.Vertex(uint32(i))
		d.Vertices = append(d.Vertices, [2]float32{x, y})
	}

	for _, p := range g.Paths {
		ops := make([]string, 0, len(p))
		for _, op := range p {
			ops = append(ops, describeOp(op))
		}
		d.Paths = append(d.Paths, ops)
	}

	for i := range g.Models {
		m := &g.Models[i]
		dm := dumpModel{Width: m.Width, Height: m.Height}
		for _, b := range m.Bindings {
			db := dumpBinding{Path: b.ID}
			for _, p := range b.Properties {
				db.Properties = append(db.Properties, describeProperty(p))
			}
			dm.Bindings = append(dm.Bindings, db)
		}
		for _, f := range m.Frames {
			df := dumpFrame{Delay: f.Delay, Animation: f.Animation.Kind.String()}
			if f.Animation.Kind.HasRate() {
				df.Animation = fmt.Sprintf("%s(%g)", f.Animation.Kind, f.Animation.Rate)
			}
			for _, t := range f.Transforms {
				df.Transforms = append(df.Transforms, describeTransform(t))
			}
			dm.Frames = append(dm.Frames, df)
		}
		d.Models = append(d.Models, dm)
	}

	for _, b := range g.Bitmaps {
		d.Bitmaps = append(d.Bitmaps, dumpBitmap{Width: b.Width, Height: b.Height, Bytes: len(b.Pixels)})
	}
	return d
}

func describeOp(op rvg.PathOp) string {
	idx := op.Indices()
	if len(idx) == 0 {
		return op.Op.String()
	}
	parts := make([]string, len(idx))
	for i, v := range idx {
		parts[i] = fmt.Sprint(v)
	}
	return op.Op.String() + " " + strings.Join(parts, " ")
}

func describeProperty(p rvg.Property) string {
	switch v := p.(type) {
	case rvg.FillColor:
		return fmt.Sprintf("FillColor #%02x%02x%02x%02x", v[0], v[1], v[2], v[3])
	case rvg.StrokeColor:
		return fmt.Sprintf("StrokeColor #%02x%02x%02x%02x", v[0], v[1], v[2], v[3])
	case rvg.StrokeWidth:
		return fmt.Sprintf("StrokeWidth %g", float32(v))
	case rvg.JoinStyle:
		return fmt.Sprintf("JoinStyle %d", uint8(v))
	case rvg.FillRule:
		return fmt.Sprintf("FillRule %d", uint8(v))
	case rvg.GlyphID:
		return fmt.Sprintf("GlyphID %d", uint32(v))
	case rvg.BitmapPattern:
		return fmt.Sprintf("BitmapPattern %d", uint32(v))
	case rvg.GroupPattern:
		return fmt.Sprintf("GroupPattern %d", uint32(v))
	default:
		return fmt.Sprintf("%T", p)
	}
}

func describeTransform(t rvg.Transform) string {
	switch v := t.(type) {
	case rvg.Translate:
		return fmt.Sprintf("Translate %g %g %g", v.X, v.Y, v.Z)
	case rvg.Scale:
		return fmt.Sprintf("Scale %g %g %g", v.X, v.Y, v.Z)
	case rvg.Rotate:
		return fmt.Sprintf("Rotate %g %g %g %g", v.X, v.Y, v.Z, v.W)
	default:
		return fmt.Sprintf("%T", t)
	}
}
