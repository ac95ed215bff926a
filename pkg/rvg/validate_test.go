package rvg

import (
	"errors"
	"math"
	"testing"
)

func TestValidate(t *testing.T) {
	nan := float32(math.NaN())

	tests := []struct {
		name   string
		mutate func(g *Graphic)
		want   error
	}{
		{"valid", func(g *Graphic) {}, nil},
		{"odd vertex list", func(g *Graphic) { g.Vertices = append(g.Vertices, 1) }, ErrOddVertexList},
		{"NaN coordinate", func(g *Graphic) { g.Vertices[3] = nan }, ErrReservedValue},
		{"NaN model width", func(g *Graphic) { g.Models[0].Width = nan }, ErrReservedValue},
		{"reserved binding id", func(g *Graphic) { g.Models[0].Bindings[0].ID = NoGroup }, ErrReservedValue},
		{"binding past paths", func(g *Graphic) { g.Models[0].Bindings[0].ID = 1 }, ErrIndexOutOfRange},
		{"vertex past list", func(g *Graphic) { g.Paths[0][1] = Line(2) }, ErrIndexOutOfRange},
		{"cubic control past list", func(g *Graphic) { g.Paths[0][1] = Cubic(0, 1, 9) }, ErrIndexOutOfRange},
		{"bitmap pattern past list", func(g *Graphic) {
			g.Models[0].Bindings[0].Properties = append(g.Models[0].Bindings[0].Properties, BitmapPattern(0))
		}, ErrIndexOutOfRange},
		{"group pattern past list", func(g *Graphic) {
			g.Models[0].Bindings[0].Properties = append(g.Models[0].Bindings[0].Properties, GroupPattern(1))
		}, ErrIndexOutOfRange},
		{"nil property", func(g *Graphic) {
			g.Models[0].Bindings[0].Properties = append(g.Models[0].Bindings[0].Properties, nil)
		}, ErrUnknownVariant},
		{"nil transform", func(g *Graphic) { g.Models[0].Frames[0].Transforms = []Transform{nil} }, ErrUnknownVariant},
		{"empty path", func(g *Graphic) { g.Paths = append(g.Paths, Path{}) }, ErrEmptyPath},
		{"unknown op", func(g *Graphic) { g.Paths[0][2] = PathOp{Op: 9} }, ErrUnknownVariant},
		{"unknown attribute", func(g *Graphic) { g.Attributes = []Attribute{{Kind: 0}} }, ErrUnknownVariant},
		{"unknown animation", func(g *Graphic) { g.Models[0].Frames[0].Animation = Animation{Kind: 42} }, ErrUnknownVariant},
		{"no frames", func(g *Graphic) { g.Models[0].Frames = nil }, ErrBadFrames},
		{"missing Done", func(g *Graphic) {
			g.Models[0].Frames[0].Animation = Animation{Kind: AnimFade}
		}, ErrBadFrames},
		{"Done before last", func(g *Graphic) {
			g.Models[0].Frames = append(g.Models[0].Frames, Frame{Animation: Done})
		}, ErrBadFrames},
		{"bitmap size", func(g *Graphic) {
			g.Bitmaps = []Bitmap{{Width: 2, Height: 2, Pixels: make([]byte, 15)}}
		}, ErrBitmapSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := exampleGraphic()
			tt.mutate(g)

			err := g.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("expected valid graphic, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if !errors.Is(err, ErrInvalidGraphic) {
				t.Errorf("expected error to wrap ErrInvalidGraphic, got %v", err)
			}
		})
	}
}

func TestValidate_AllowsDuplicateVertices(t *testing.T) {
	g := exampleGraphic()
	g.Vertices = []float32{1, 1, 1, 1}

	if err := g.Validate(); err != nil {
		t.Errorf("duplicate vertex pairs should be accepted, got %v", err)
	}
}
