package rvg

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// Load inflates a compressed RVG stream from r and decodes it. The whole
// payload is read into memory before any section is parsed.
func Load(r io.Reader) (*Graphic, error) {
	data, err := decompressAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

// LoadFile loads an RVG file from disk.
func LoadFile(path string) (*Graphic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening RVG file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// SaveFile writes g to path, replacing any existing file.
func SaveFile(path string, g *Graphic) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating RVG file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return Save(f, g)
}

// Unmarshal decodes an uncompressed RVG payload and validates every
// index reference in the result.
func Unmarshal(data []byte) (*Graphic, error) {
	if len(data) < len(Magic) {
		if bytes.HasPrefix(Magic[:], data) {
			return nil, fmt.Errorf("%w: reading magic", ErrUnexpectedEOF)
		}
		return nil, ErrHeaderMismatch
	}
	if !bytes.Equal(data[:len(Magic)], Magic[:]) {
		return nil, ErrHeaderMismatch
	}

	d := &decoder{r: bytes.NewReader(data[len(Magic):]), base: int64(len(Magic))}
	g := &Graphic{}

	var err error
	if g.Attributes, err = d.readAttributes(); err != nil {
		return nil, fmt.Errorf("parsing attributes: %w", err)
	}
	if g.Vertices, err = d.readVertices(); err != nil {
		return nil, fmt.Errorf("parsing vertices: %w", err)
	}
	if g.Paths, err = d.readPaths(); err != nil {
		return nil, fmt.Errorf("parsing paths: %w", err)
	}
	if g.Models, err = d.readModels(); err != nil {
		return nil, fmt.Errorf("parsing models: %w", err)
	}
	if g.Bitmaps, err = d.readBitmaps(); err != nil {
		return nil, fmt.Errorf("parsing bitmaps: %w", err)
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// decoder is a forward-only cursor over the payload after the magic.
type decoder struct {
	r    *bytes.Reader
	base int64
}

func (d *decoder) offset() int64 {
	return d.base + d.r.Size() - int64(d.r.Len())
}

func (d *decoder) read(what string, v any) error {
	if err := binary.Read(d.r, binary.LittleEndian, v); err != nil {
		return fmt.Errorf("%w: reading %s", ErrUnexpectedEOF, what)
	}
	return nil
}

func (d *decoder) u8(what string) (uint8, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("%w: reading %s", ErrUnexpectedEOF, what)
	}
	return b, nil
}

func (d *decoder) u16(what string) (v uint16, err error) {
	err = d.read(what, &v)
	return v, err
}

func (d *decoder) u32(what string) (v uint32, err error) {
	err = d.read(what, &v)
	return v, err
}

func (d *decoder) f32(what string) (v float32, err error) {
	err = d.read(what, &v)
	return v, err
}

// tag reads one tag byte and remembers where it was for TagError.
func (d *decoder) tag(section Section) (uint8, int64, error) {
	at := d.offset()
	t, err := d.u8(section.String() + " tag")
	return t, at, err
}

func (d *decoder) readAttributes() ([]Attribute, error) {
	var attrs []Attribute
	for {
		t, at, err := d.tag(SectionAttributes)
		if err != nil {
			return nil, err
		}
		switch kind := AttributeKind(t); {
		case t == 0:
			return attrs, nil
		case kind >= AttrDepth && kind <= AttrStrokeWidth:
			attrs = append(attrs, Attribute{Kind: kind})
		case kind == AttrUser:
			user, err := d.u8("user attribute")
			if err != nil {
				return nil, err
			}
			attrs = append(attrs, UserAttribute(user))
		default:
			return nil, &TagError{Section: SectionAttributes, Tag: t, Offset: at}
		}
	}
}

func (d *decoder) readVertices() ([]float32, error) {
	var coords []float32
	for {
		c, err := d.f32("coordinate")
		if err != nil {
			return nil, err
		}
		if math.IsNaN(float64(c)) {
			return coords, nil
		}
		coords = append(coords, c)
	}
}

// readPaths reads paths until one comes back empty: the 0 that would end
// an empty path is the section terminator.
func (d *decoder) readPaths() ([]Path, error) {
	var paths []Path
	for {
		path, err := d.readPath()
		if err != nil {
			return nil, fmt.Errorf("path %d: %w", len(paths), err)
		}
		if len(path) == 0 {
			return paths, nil
		}
		paths = append(paths, path)
	}
}

func (d *decoder) readPath() (Path, error) {
	var path Path
	for {
		t, at, err := d.tag(SectionPaths)
		if err != nil {
			return nil, err
		}
		op := Op(t)
		if t == 0 {
			return path, nil
		}
		if op < OpClose || op > OpCubic {
			return nil, &TagError{Section: SectionPaths, Tag: t, Offset: at}
		}

		p := PathOp{Op: op}
		for i := 0; i < op.Arity(); i++ {
			if p.Points[i], err = d.u32("vertex index"); err != nil {
				return nil, err
			}
		}
		path = append(path, p)
	}
}

func (d *decoder) readModels() ([]Model, error) {
	var models []Model
	for {
		width, err := d.f32("model width")
		if err != nil {
			return nil, err
		}
		if math.IsNaN(float64(width)) {
			return models, nil
		}

		m, err := d.readModel(width)
		if err != nil {
			return nil, fmt.Errorf("model %d: %w", len(models), err)
		}
		models = append(models, m)
	}
}

func (d *decoder) readModel(width float32) (Model, error) {
	m := Model{Width: width}

	var err error
	if m.Height, err = d.f32("model height"); err != nil {
		return Model{}, err
	}

	for {
		id, err := d.u32("binding id")
		if err != nil {
			return Model{}, err
		}
		if id == NoGroup {
			break
		}
		props, err := d.readProperties()
		if err != nil {
			return Model{}, fmt.Errorf("binding %d: %w", len(m.Bindings), err)
		}
		m.Bindings = append(m.Bindings, Binding{ID: id, Properties: props})
	}

	// Done is data: the frame carrying it is kept, then the list ends.
	for {
		f, err := d.readFrame()
		if err != nil {
			return Model{}, fmt.Errorf("frame %d: %w", len(m.Frames), err)
		}
		m.Frames = append(m.Frames, f)
		if f.Animation.IsDone() {
			return m, nil
		}
	}
}

func (d *decoder) readProperties() ([]Property, error) {
	var props []Property
	for {
		t, at, err := d.tag(SectionProperties)
		if err != nil {
			return nil, err
		}
		if t == 0 {
			return props, nil
		}

		var p Property
		switch t {
		case tagFillColor, tagStrokeColor:
			var c [4]uint8
			if err := d.read("colour", &c); err != nil {
				return nil, err
			}
			if t == tagFillColor {
				p = FillColor(c)
			} else {
				p = StrokeColor(c)
			}
		case tagStrokeWidth:
			w, err := d.f32("stroke width")
			if err != nil {
				return nil, err
			}
			p = StrokeWidth(w)
		case tagJoinStyle, tagFillRule:
			v, err := d.u8("style byte")
			if err != nil {
				return nil, err
			}
			if t == tagJoinStyle {
				p = JoinStyle(v)
			} else {
				p = FillRule(v)
			}
		case tagGlyphID, tagBitmapPattern, tagGroupPattern:
			v, err := d.u32("reference")
			if err != nil {
				return nil, err
			}
			switch t {
			case tagGlyphID:
				p = GlyphID(v)
			case tagBitmapPattern:
				p = BitmapPattern(v)
			default:
				p = GroupPattern(v)
			}
		default:
			return nil, &TagError{Section: SectionProperties, Tag: t, Offset: at}
		}
		props = append(props, p)
	}
}

func (d *decoder) readFrame() (Frame, error) {
	var f Frame
	for {
		t, at, err := d.tag(SectionTransforms)
		if err != nil {
			return Frame{}, err
		}
		if t == 0 {
			break
		}

		switch t {
		case tagTranslate, tagScale:
			var v [3]float32
			if err := d.read("transform", &v); err != nil {
				return Frame{}, err
			}
			if t == tagTranslate {
				f.Transforms = append(f.Transforms, Translate{X: v[0], Y: v[1], Z: v[2]})
			} else {
				f.Transforms = append(f.Transforms, Scale{X: v[0], Y: v[1], Z: v[2]})
			}
		case tagRotate:
			var v [4]float32
			if err := d.read("rotation", &v); err != nil {
				return Frame{}, err
			}
			f.Transforms = append(f.Transforms, Rotate{X: v[0], Y: v[1], Z: v[2], W: v[3]})
		default:
			return Frame{}, &TagError{Section: SectionTransforms, Tag: t, Offset: at}
		}
	}

	var err error
	if f.Delay, err = d.u16("frame delay"); err != nil {
		return Frame{}, err
	}

	t, at, err := d.tag(SectionAnimation)
	if err != nil {
		return Frame{}, err
	}
	kind := AnimationKind(t)
	if kind < AnimDone || kind > AnimLayer {
		return Frame{}, &TagError{Section: SectionAnimation, Tag: t, Offset: at}
	}
	f.Animation.Kind = kind
	if kind.HasRate() {
		if f.Animation.Rate, err = d.f32("animation rate"); err != nil {
			return Frame{}, err
		}
	}
	return f, nil
}

// readBitmaps consumes records until the payload is exhausted. A record cut
// short is corruption, not the end of the list.
func (d *decoder) readBitmaps() ([]Bitmap, error) {
	var bitmaps []Bitmap
	for d.r.Len() > 0 {
		var b Bitmap
		var err error
		if b.Width, err = d.u16("bitmap width"); err != nil {
			return nil, err
		}
		if b.Height, err = d.u16("bitmap height"); err != nil {
			return nil, err
		}

		size := b.Size()
		if size > d.r.Len() {
			return nil, fmt.Errorf("%w: bitmap %d needs %d bytes, %d left",
				ErrUnexpectedEOF, len(bitmaps), size, d.r.Len())
		}
		if size > 0 {
			b.Pixels = make([]byte, size)
			if _, err := io.ReadFull(d.r, b.Pixels); err != nil {
				return nil, fmt.Errorf("%w: reading bitmap pixels", ErrUnexpectedEOF)
			}
		}
		bitmaps = append(bitmaps, b)
	}
	return bitmaps, nil
}
