package geometry

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
	Color    mgl32.Vec4
}

func round(v float32, precision int) float64 {
	p := math.Pow(10, float64(precision))
	return math.Round(float64(v)*p) / p
}

func (v Vertex) key(precision int) string {
	return fmt.Sprintf("%v_%v_%v_%v_%v_%v_%v_%v_%v_%v_%v_%v",
		round(v.Position[0], precision),
		round(v.Position[1], precision),
		round(v.Position[2], precision),

		round(v.Normal[0], precision),
		round(v.Normal[1], precision),
		round(v.Normal[2], precision),

		round(v.UV[0], precision),
		round(v.UV[1], precision),

		round(v.Color[0], precision),
		round(v.Color[1], precision),
		round(v.Color[2], precision),
		round(v.Color[3], precision),
	)
}

type Face struct {
	A, B, C uint32
}

// Mesh is an indexed triangle list with a single material.
type Mesh struct {
	Vertices []Vertex
	Faces    []Face
	Material *Material

	bounding Boundary
}

func NewMesh(mat *Material) *Mesh {
	if mat == nil {
		mat = NewMaterial()
	}
	return &Mesh{
		Material: mat,
		bounding: NewBoundary(),
	}
}

func (m *Mesh) AddFace(a, b, c Vertex) {
	offset := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, a, b, c)
	m.Faces = append(m.Faces, Face{offset, offset + 1, offset + 2})
}

// MergeVertices removes duplicate vertices and degenerated faces.
func (m *Mesh) MergeVertices() {
	lookup := map[string]uint32{}
	unique := []Vertex{}
	changed := make([]uint32, len(m.Vertices))

	for i, v := range m.Vertices {
		key := v.key(4)

		if j, found := lookup[key]; !found {
			lookup[key] = uint32(i)
			unique = append(unique, v)
			changed[i] = uint32(len(unique) - 1)
		} else {
			changed[i] = changed[j]
		}
	}

	cleaned := []Face{}
	for _, f := range m.Faces {
		a, b, c := changed[f.A], changed[f.B], changed[f.C]
		if a == b || b == c || c == a {
			continue
		}
		cleaned = append(cleaned, Face{a, b, c})
	}

	m.Vertices = unique
	m.Faces = cleaned
}

func (m *Mesh) ComputeBoundary() {
	m.bounding = NewBoundary()
	for _, v := range m.Vertices {
		m.bounding.AddPoint(v.Position)
	}
}

func (m *Mesh) Boundary() Boundary {
	return m.bounding
}

// Boundary is an axis aligned bounding box.
type Boundary struct {
	Min, Max mgl32.Vec3
}

func NewBoundary() Boundary {
	inf := float32(math.Inf(1))
	return Boundary{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

func (b Boundary) Empty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

func (b *Boundary) AddPoint(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

func (b *Boundary) AddBoundary(a Boundary) {
	if a.Empty() {
		return
	}
	b.AddPoint(a.Min)
	b.AddPoint(a.Max)
}

func (b Boundary) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b Boundary) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

func (b Boundary) Sphere() (center mgl32.Vec3, radius float32) {
	if b.Empty() {
		return mgl32.Vec3{}, 0
	}
	return b.Center(), b.Size().Len() * 0.5
}

// NewCube returns a cube centered at the origin with per face normals and
// texture coordinates.
func NewCube(size float32, mat *Material) *Mesh {
	m := NewMesh(mat)
	h := size / 2

	/*
		    vertices			uvs

		  h +------+ e
			|\     |\
			| \    | \
			|b +------+ a   tl +------+ tr
		  g +--|---+ f|        |      |
			 \ |    \ |        |      |
			  \|     \|        |      |
			 c +------+ d   bl +------+ br
	*/

	a := mgl32.Vec3{h, h, h}
	b := mgl32.Vec3{-h, h, h}
	c := mgl32.Vec3{-h, -h, h}
	d := mgl32.Vec3{h, -h, h}
	e := mgl32.Vec3{h, h, -h}
	f := mgl32.Vec3{h, -h, -h}
	g := mgl32.Vec3{-h, -h, -h}
	hh := mgl32.Vec3{-h, h, -h}

	white := mgl32.Vec4{1, 1, 1, 1}
	tl, tr := mgl32.Vec2{0, 1}, mgl32.Vec2{1, 1}
	bl, br := mgl32.Vec2{0, 0}, mgl32.Vec2{1, 0}

	quad := func(n mgl32.Vec3, p0, p1, p2, p3 mgl32.Vec3) {
		m.AddFace(
			Vertex{p0, n, tr, white},
			Vertex{p1, n, tl, white},
			Vertex{p2, n, bl, white})
		m.AddFace(
			Vertex{p2, n, bl, white},
			Vertex{p3, n, br, white},
			Vertex{p0, n, tr, white})
	}

	quad(mgl32.Vec3{0, 0, 1}, a, b, c, d)   // front
	quad(mgl32.Vec3{0, 0, -1}, hh, e, f, g) // back
	quad(mgl32.Vec3{1, 0, 0}, e, a, d, f)   // right
	quad(mgl32.Vec3{-1, 0, 0}, b, hh, g, c) // left
	quad(mgl32.Vec3{0, 1, 0}, e, hh, b, a)  // top
	quad(mgl32.Vec3{0, -1, 0}, d, c, g, f)  // bottom

	m.MergeVertices()
	m.ComputeBoundary()
	return m
}
