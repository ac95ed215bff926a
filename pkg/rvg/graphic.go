// Package rvg implements the RVG container format: a zlib-compressed,
// sectioned byte stream holding a shared vertex list, path groups,
// animated models and raster fallback images.
//
// Layout of the decompressed payload:
//
//	magic "rVgA"
//	attributes   tag bytes, 0-terminated
//	vertex list  float32 pairs, NaN-terminated
//	path groups  op lists, 0 after each path, one extra 0 ends the section
//	models       width/height, bindings, frames; NaN width ends the section
//	bitmaps      width/height/RGBA8 records until end of input
//
// All multi-byte values are little-endian.
package rvg

import (
	"fmt"
	"math"
)

// Magic is the 4-byte header at the start of every decompressed payload.
var Magic = [4]byte{'r', 'V', 'g', 'A'}

// NoGroup is the reserved binding id that terminates a model's bindings.
const NoGroup = math.MaxUint32

// Graphic is one decoded or encodable RVG file.
type Graphic struct {
	Attributes []Attribute
	Vertices   []float32 // x0, y0, x1, y1, ...
	Paths      []Path
	Models     []Model
	Bitmaps    []Bitmap
}

// VertexCount returns the number of (x, y) pairs in the vertex list.
func (g *Graphic) VertexCount() int {
	return len(g.Vertices) / 2
}

// Vertex returns the coordinates of vertex i.
func (g *Graphic) Vertex(i uint32) (x, y float32) {
	return g.Vertices[i*2], g.Vertices[i*2+1]
}

// AttributeKind identifies a declared per-vertex attribute.
type AttributeKind uint8

const (
	AttrDepth       AttributeKind = 1 // z coordinate
	AttrRed         AttributeKind = 2
	AttrGreen       AttributeKind = 3
	AttrBlue        AttributeKind = 4
	AttrAlpha       AttributeKind = 5
	AttrTexU        AttributeKind = 6
	AttrTexV        AttributeKind = 7
	AttrBoneWeight  AttributeKind = 8
	AttrStrokeWidth AttributeKind = 9
	AttrUser        AttributeKind = 10 // followed by one payload byte
)

var attributeNames = map[AttributeKind]string{
	AttrDepth:       "Depth",
	AttrRed:         "Red",
	AttrGreen:       "Green",
	AttrBlue:        "Blue",
	AttrAlpha:       "Alpha",
	AttrTexU:        "TexU",
	AttrTexV:        "TexV",
	AttrBoneWeight:  "BoneWeight",
	AttrStrokeWidth: "StrokeWidth",
	AttrUser:        "User",
}

// String returns a human-readable attribute kind name.
func (k AttributeKind) String() string {
	if name, ok := attributeNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", uint8(k))
}

// Attribute is one declared per-vertex attribute.
type Attribute struct {
	Kind AttributeKind
	User uint8 // only meaningful for AttrUser
}

// UserAttribute returns a user-defined attribute carrying id.
func UserAttribute(id uint8) Attribute {
	return Attribute{Kind: AttrUser, User: id}
}

// Op is a path operation tag.
type Op uint8

const (
	OpClose Op = 1
	OpMove  Op = 2
	OpLine  Op = 3
	OpQuad  Op = 4
	OpCubic Op = 5
)

// String returns the operation name.
func (o Op) String() string {
	switch o {
	case OpClose:
		return "Close"
	case OpMove:
		return "Move"
	case OpLine:
		return "Line"
	case OpQuad:
		return "Quad"
	case OpCubic:
		return "Cubic"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(o))
	}
}

// Arity returns how many vertex indices follow the tag.
func (o Op) Arity() int {
	switch o {
	case OpMove, OpLine:
		return 1
	case OpQuad:
		return 2
	case OpCubic:
		return 3
	default:
		return 0
	}
}

// PathOp is one drawing instruction. Only the first Op.Arity() entries of
// Points are used; the rest stay zero.
type PathOp struct {
	Op     Op
	Points [3]uint32 // vertex indices
}

// Close returns a close-path operation.
func Close() PathOp { return PathOp{Op: OpClose} }

// Move returns a move-to operation.
func Move(a uint32) PathOp { return PathOp{Op: OpMove, Points: [3]uint32{a}} }

// Line returns a line-to operation.
func Line(a uint32) PathOp { return PathOp{Op: OpLine, Points: [3]uint32{a}} }

// Quad returns a quadratic curve through control a to b.
func Quad(a, b uint32) PathOp { return PathOp{Op: OpQuad, Points: [3]uint32{a, b}} }

// Cubic returns a cubic curve through controls a, b to c.
func Cubic(a, b, c uint32) PathOp { return PathOp{Op: OpCubic, Points: [3]uint32{a, b, c}} }

// Indices returns the vertex indices the operation references.
func (p PathOp) Indices() []uint32 {
	return p.Points[:p.Op.Arity()]
}

// Path is the ordered operation list of one path group.
type Path []PathOp

// Model is one renderable scene or page.
type Model struct {
	Width    float32
	Height   float32
	Bindings []Binding
	Frames   []Frame
}

// Duration returns the summed frame delays in milliseconds.
func (m *Model) Duration() int {
	total := 0
	for _, f := range m.Frames {
		total += int(f.Delay)
	}
	return total
}

// Binding applies a style property list to the path group Graphic.Paths[ID].
type Binding struct {
	ID         uint32
	Properties []Property
}

// Property is one style attribute of a binding. The concrete types are
// FillColor, StrokeColor, StrokeWidth, JoinStyle, FillRule, GlyphID,
// BitmapPattern and GroupPattern.
type Property interface {
	propertyTag() uint8
}

// Property tags.
const (
	tagFillColor     uint8 = 1
	tagStrokeColor   uint8 = 2
	tagStrokeWidth   uint8 = 3
	tagJoinStyle     uint8 = 4
	tagFillRule      uint8 = 5
	tagGlyphID       uint8 = 6
	tagBitmapPattern uint8 = 7
	tagGroupPattern  uint8 = 8
)

// FillColor is the RGBA8 fill colour.
type FillColor [4]uint8

// StrokeColor is the RGBA8 stroke colour.
type StrokeColor [4]uint8

// StrokeWidth is the pen width in model units.
type StrokeWidth float32

// JoinStyle selects the stroke join.
type JoinStyle uint8

// FillRule selects the fill winding rule.
type FillRule uint8

// GlyphID references an external glyph.
type GlyphID uint32

// BitmapPattern fills with Graphic.Bitmaps[n].
type BitmapPattern uint32

// GroupPattern fills with the path group Graphic.Paths[n].
type GroupPattern uint32

func (FillColor) propertyTag() uint8     { return tagFillColor }
func (StrokeColor) propertyTag() uint8   { return tagStrokeColor }
func (StrokeWidth) propertyTag() uint8   { return tagStrokeWidth }
func (JoinStyle) propertyTag() uint8     { return tagJoinStyle }
func (FillRule) propertyTag() uint8      { return tagFillRule }
func (GlyphID) propertyTag() uint8       { return tagGlyphID }
func (BitmapPattern) propertyTag() uint8 { return tagBitmapPattern }
func (GroupPattern) propertyTag() uint8  { return tagGroupPattern }

// Frame is one animation keyframe.
type Frame struct {
	Transforms []Transform
	Delay      uint16 // ms
	Animation  Animation
}

// Transform is one spatial operation: Translate, Scale or Rotate.
type Transform interface {
	transformTag() uint8
}

const (
	tagTranslate uint8 = 1
	tagScale     uint8 = 2
	tagRotate    uint8 = 3
)

// Translate moves by (X, Y, Z).
type Translate struct{ X, Y, Z float32 }

// Scale scales by (X, Y, Z).
type Scale struct{ X, Y, Z float32 }

// Rotate rotates by the quaternion (X, Y, Z, W).
type Rotate struct{ X, Y, Z, W float32 }

func (Translate) transformTag() uint8 { return tagTranslate }
func (Scale) transformTag() uint8     { return tagScale }
func (Rotate) transformTag() uint8    { return tagRotate }

// AnimationKind is the transition from a frame to the next one.
type AnimationKind uint8

const (
	AnimDone   AnimationKind = 1 // terminal frame of a model
	AnimJump   AnimationKind = 2
	AnimLinear AnimationKind = 3
	AnimExpA   AnimationKind = 4 // carries Rate
	AnimExpB   AnimationKind = 5 // carries Rate
	AnimFade   AnimationKind = 6
	AnimLayer  AnimationKind = 7
)

// String returns the animation kind name.
func (k AnimationKind) String() string {
	switch k {
	case AnimDone:
		return "Done"
	case AnimJump:
		return "Jump"
	case AnimLinear:
		return "Linear"
	case AnimExpA:
		return "ExpA"
	case AnimExpB:
		return "ExpB"
	case AnimFade:
		return "Fade"
	case AnimLayer:
		return "Layer"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(k))
	}
}

// HasRate returns true if the kind carries a float32 payload.
func (k AnimationKind) HasRate() bool {
	return k == AnimExpA || k == AnimExpB
}

// Animation is a keyframe transition.
type Animation struct {
	Kind AnimationKind
	Rate float32 // ExpA/ExpB only
}

// Done is the terminal animation.
var Done = Animation{Kind: AnimDone}

// IsDone returns true for the terminal animation.
func (a Animation) IsDone() bool {
	return a.Kind == AnimDone
}

// Bitmap is a raster fallback image.
type Bitmap struct {
	Width  uint16
	Height uint16
	Pixels []byte // RGBA8, Width*Height*4 bytes
}

// Size returns the byte length Pixels must have.
func (b *Bitmap) Size() int {
	return int(b.Width) * int(b.Height) * 4
}
