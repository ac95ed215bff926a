package rvg

import (
	"errors"
	"reflect"
	"testing"
)

func TestBuilder_Example(t *testing.T) {
	b := NewBuilder()
	a := b.AddVertex(0, 0)
	c := b.AddVertex(10, 10)
	id := b.AddPath(Move(a), Line(c), Close())
	b.AddModel(100, 100).Bind(id, FillColor{255, 0, 0, 255})

	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !reflect.DeepEqual(g, exampleGraphic()) {
		t.Errorf("built graphic mismatch:\n got  %+v\n want %+v", g, exampleGraphic())
	}
}

func TestBuilder_DedupVertices(t *testing.T) {
	b := NewBuilder()

	first := b.AddVertex(1.5, 2.5)
	second := b.AddVertex(3, 4)
	again := b.AddVertex(1.5, 2.5)

	if first != 0 || second != 1 {
		t.Errorf("expected indices 0 and 1, got %d and %d", first, second)
	}
	if again != first {
		t.Errorf("expected duplicate pair to reuse index %d, got %d", first, again)
	}
	if b.g.VertexCount() != 2 {
		t.Errorf("expected 2 stored vertices, got %d", b.g.VertexCount())
	}
}

func TestBuilder_Frames(t *testing.T) {
	b := NewBuilder()
	v := b.AddVertex(0, 0)
	id := b.AddPath(Move(v), Close())

	b.AddModel(10, 10).
		Bind(id).
		Frame(100, Animation{Kind: AnimJump}, Translate{X: 5})
	b.AddModel(20, 20).Frame(50, Done)

	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	frames := g.Models[0].Frames
	if len(frames) != 2 {
		t.Fatalf("expected a Done frame to be appended, got %d frames", len(frames))
	}
	if !frames[1].Animation.IsDone() {
		t.Errorf("expected last frame Done, got %s", frames[1].Animation.Kind)
	}
	if len(g.Models[1].Frames) != 1 || g.Models[1].Frames[0].Delay != 50 {
		t.Errorf("explicit Done frame should be kept as-is, got %+v", g.Models[1].Frames)
	}

	// Building twice must not grow the frame list.
	g2, err := b.Build()
	if err != nil {
		t.Fatalf("second Build failed: %v", err)
	}
	if len(g2.Models[0].Frames) != 2 {
		t.Errorf("expected 2 frames on rebuild, got %d", len(g2.Models[0].Frames))
	}
}

func TestBuilder_Invalid(t *testing.T) {
	b := NewBuilder()
	b.AddPath(Move(3))

	if _, err := b.Build(); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestBuilder_AttributesAndBitmaps(t *testing.T) {
	b := NewBuilder()
	b.AddAttribute(Attribute{Kind: AttrDepth}).AddAttribute(UserAttribute(7))
	idx := b.AddBitmap(Bitmap{Width: 1, Height: 1, Pixels: []byte{1, 2, 3, 4}})

	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if idx != 0 || len(g.Bitmaps) != 1 {
		t.Errorf("expected one bitmap at index 0, got %d bitmaps (index %d)", len(g.Bitmaps), idx)
	}
	if len(g.Attributes) != 2 || g.Attributes[1].User != 7 {
		t.Errorf("unexpected attributes: %+v", g.Attributes)
	}
	if g.Models != nil {
		t.Errorf("expected nil models, got %+v", g.Models)
	}
}
