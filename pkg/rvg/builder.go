package rvg

// Builder assembles a Graphic for producers such as format converters.
// Vertices are deduplicated: adding an (x, y) pair that already exists
// returns the existing index. Dedup is a producer convenience; the codec
// itself accepts duplicate pairs unchanged.
type Builder struct {
	g      Graphic
	index  map[[2]float32]uint32
	models []*ModelBuilder
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{index: make(map[[2]float32]uint32)}
}

// AddAttribute declares a per-vertex attribute.
func (b *Builder) AddAttribute(a Attribute) *Builder {
	b.g.Attributes = append(b.g.Attributes, a)
	return b
}

// AddVertex returns the index of (x, y), appending it if it is new.
func (b *Builder) AddVertex(x, y float32) uint32 {
	key := [2]float32{x, y}
	if i, ok := b.index[key]; ok {
		return i
	}
	i := uint32(b.g.VertexCount())
	b.g.Vertices = append(b.g.Vertices, x, y)
	b.index[key] = i
	return i
}

// AddPath appends a path group and returns its id.
func (b *Builder) AddPath(ops ...PathOp) uint32 {
	b.g.Paths = append(b.g.Paths, Path(ops))
	return uint32(len(b.g.Paths) - 1)
}

// AddBitmap appends a raster fallback and returns its index.
func (b *Builder) AddBitmap(bm Bitmap) uint32 {
	b.g.Bitmaps = append(b.g.Bitmaps, bm)
	return uint32(len(b.g.Bitmaps) - 1)
}

// AddModel starts a new model.
func (b *Builder) AddModel(width, height float32) *ModelBuilder {
	mb := &ModelBuilder{m: Model{Width: width, Height: height}}
	b.models = append(b.models, mb)
	return mb
}

// Build returns the assembled graphic. Models whose frame list does not
// end in Done get a terminal Done frame. The result is validated.
func (b *Builder) Build() (*Graphic, error) {
	g := b.g
	g.Models = make([]Model, 0, len(b.models))
	for _, mb := range b.models {
		m := mb.m
		if n := len(m.Frames); n == 0 || !m.Frames[n-1].Animation.IsDone() {
			m.Frames = append(m.Frames[:n:n], Frame{Animation: Done})
		}
		g.Models = append(g.Models, m)
	}
	if len(g.Models) == 0 {
		g.Models = nil
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// ModelBuilder adds bindings and frames to one model.
type ModelBuilder struct {
	m Model
}

// Bind styles path group id with props.
func (mb *ModelBuilder) Bind(id uint32, props ...Property) *ModelBuilder {
	mb.m.Bindings = append(mb.m.Bindings, Binding{ID: id, Properties: props})
	return mb
}

// Frame appends a keyframe.
func (mb *ModelBuilder) Frame(delay uint16, anim Animation, transforms ...Transform) *ModelBuilder {
	mb.m.Frames = append(mb.m.Frames, Frame{Transforms: transforms, Delay: delay, Animation: anim})
	return mb
}
