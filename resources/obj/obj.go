// Package obj loads Wavefront OBJ models and their MTL material libraries
// into scene graph subtrees.
package obj

import (
	"bufio"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/der-antikeks/simplesetup/geometry"
	"github.com/der-antikeks/simplesetup/logging"
	"github.com/der-antikeks/simplesetup/resources"
	"github.com/der-antikeks/simplesetup/scene"
)

// Plugin creates models from .obj files. Diffuse maps of the materials are
// created through the texture manager, if one is given.
type Plugin struct {
	textures *resources.Manager[resources.Texture]
}

func NewPlugin(textures *resources.Manager[resources.Texture]) *Plugin {
	return &Plugin{textures: textures}
}

func (p *Plugin) Accepts(ext string) bool {
	return ext == ".obj"
}

func (p *Plugin) Create(fs afero.Fs, file string) (scene.Model, error) {
	return &Model{
		fs:       fs,
		file:     file,
		textures: p.textures,
	}, nil
}

// Model is an OBJ file resource. The scene subtree is built by Load.
type Model struct {
	mu       sync.Mutex
	fs       afero.Fs
	file     string
	textures *resources.Manager[resources.Texture]
	root     *scene.SceneNode
}

func (m *Model) File() string { return m.file }

func (m *Model) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.root != nil {
		return nil
	}

	f, err := m.fs.Open(m.file)
	if err != nil {
		return err
	}
	defer f.Close()

	d := newDecoder(m.fs, filepath.Dir(m.file), m.textures)
	root, err := d.decode(f)
	if err != nil {
		return errors.Wrapf(err, "obj %q", m.file)
	}
	root.SetName(filepath.Base(m.file))

	m.root = root
	return nil
}

func (m *Model) Unload() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.root = nil
}

// SceneNode returns the root of the model, nil if it is not loaded.
func (m *Model) SceneNode() scene.Node {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.root == nil {
		return nil
	}
	return m.root
}

var white = mgl32.Vec4{1, 1, 1, 1}

type decoder struct {
	fs       afero.Fs
	dir      string
	textures *resources.Manager[resources.Texture]

	materials map[string]*geometry.Material

	positions []mgl32.Vec3
	normals   []mgl32.Vec3
	uvs       []mgl32.Vec2

	root   *scene.SceneNode
	object scene.Node
	mesh   *geometry.Mesh
	mat    *geometry.Material
}

func newDecoder(fs afero.Fs, dir string, textures *resources.Manager[resources.Texture]) *decoder {
	root := scene.NewSceneNode()
	mat := geometry.NewMaterial()

	return &decoder{
		fs:        fs,
		dir:       dir,
		textures:  textures,
		materials: map[string]*geometry.Material{},

		root:   root,
		object: root,
		mesh:   geometry.NewMesh(mat),
		mat:    mat,
	}
}

// flush adds the current mesh to the current object and starts a new one.
func (d *decoder) flush(name string) error {
	if len(d.mesh.Faces) > 0 {
		d.mesh.MergeVertices()
		d.mesh.ComputeBoundary()

		n := scene.NewMeshNode(d.mesh)
		n.SetName(name)
		if err := d.object.AddNode(n); err != nil {
			return err
		}
	}

	d.mesh = geometry.NewMesh(d.mat)
	return nil
}

func (d *decoder) decode(r io.Reader) (*scene.SceneNode, error) {
	var group string

	s := bufio.NewScanner(r)
	for ln := 1; s.Scan(); ln++ {
		fields := strings.Fields(s.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		value := strings.Join(fields[1:], " ")

		var err error
		switch strings.ToLower(fields[0]) {
		case "v": // vertex: x, y, z
			var v []float32
			if v, err = parseFloats(fields[1:], 3); err == nil {
				d.positions = append(d.positions, mgl32.Vec3{v[0], v[1], v[2]})
			}

		case "vt": // texture: u, v
			var v []float32
			if v, err = parseFloats(fields[1:], 2); err == nil {
				d.uvs = append(d.uvs, mgl32.Vec2{v[0], 1 - v[1]})
			}

		case "vn": // normal: x, y, z
			var v []float32
			if v, err = parseFloats(fields[1:], 3); err == nil {
				d.normals = append(d.normals, mgl32.Vec3{v[0], v[1], v[2]}.Normalize())
			}

		case "f": // face
			err = d.face(fields[1:])

		case "o": // new object
			if err = d.flush(group); err == nil {
				o := scene.NewSceneNode()
				o.SetName(value)
				err = d.root.AddNode(o)
				d.object = o
			}
			group = ""

		case "g": // mesh within object
			err = d.flush(group)
			group = value

		case "usemtl": // material for the following faces
			m, ok := d.materials[value]
			if !ok {
				logging.Warnf("obj: unknown material %q", value)
				m = geometry.NewMaterial()
			}
			if err = d.flush(group); err == nil {
				d.mat = m
				d.mesh.Material = m
			}

		case "mtllib": // material library
			for _, lib := range fields[1:] {
				if err := d.loadMaterials(filepath.Join(d.dir, lib)); err != nil {
					logging.Warnf("obj: could not load mtl file: %v", err)
				}
			}

		case "s", "l", "p", "vp": // smoothing groups, lines, points, parameter space
		default:
			logging.Debugf("obj: unknown line type %q", fields[0])
		}

		if err != nil {
			return nil, errors.Wrapf(err, "line %d", ln)
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	if err := d.flush(group); err != nil {
		return nil, err
	}
	return d.root, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, errors.Errorf("expected %d values, got %d", n, len(fields))
	}

	vs := make([]float32, n)
	for i := range vs {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		vs[i] = float32(v)
	}
	return vs, nil
}

// index resolves a one based, possibly negative, OBJ index.
func index(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		i = count + i
	} else {
		i--
	}
	if i < 0 || i >= count {
		return 0, errors.Errorf("index %s out of range", s)
	}
	return i, nil
}

// face adds a polygon as a triangle fan.
//
//	f 3 8 4 - vertex
//	f 1/4 2/5 3/6 - vertex/uv
//	f 24//24 25//24 13//24 - vertex//normal
//	f 5/1/1 1/2/1 4/3/1 - vertex/uv/normal
func (d *decoder) face(fields []string) error {
	if len(fields) < 3 {
		return errors.Errorf("face with %d vertices", len(fields))
	}

	vs := make([]geometry.Vertex, len(fields))
	for i, f := range fields {
		a := strings.Split(f, "/")
		v := &vs[i]
		v.Color = white

		p, err := index(a[0], len(d.positions))
		if err != nil {
			return err
		}
		v.Position = d.positions[p]

		if len(a) > 1 && a[1] != "" {
			t, err := index(a[1], len(d.uvs))
			if err != nil {
				return err
			}
			v.UV = d.uvs[t]
		}

		if len(a) > 2 && a[2] != "" {
			n, err := index(a[2], len(d.normals))
			if err != nil {
				return err
			}
			v.Normal = d.normals[n]
		}
	}

	for i := 1; i+1 < len(vs); i++ {
		a, b, c := vs[0], vs[i], vs[i+1]
		if a.Normal.Len() == 0 {
			// flat normal from the winding order
			n := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position))
			if n.Len() > 0 {
				n = n.Normalize()
			}
			a.Normal, b.Normal, c.Normal = n, n, n
		}
		d.mesh.AddFace(a, b, c)
	}
	return nil
}
