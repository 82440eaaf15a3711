package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/der-antikeks/simplesetup/geometry"
)

// TransformationNode applies its transformation to all descendants.
type TransformationNode struct {
	SceneNode

	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3

	matrix            mgl32.Mat4
	matrixNeedsUpdate bool
}

func NewTransformationNode() *TransformationNode {
	n := &TransformationNode{
		rotation: mgl32.QuatIdent(),
		scale:    mgl32.Vec3{1, 1, 1},

		matrixNeedsUpdate: true,
	}
	n.init(n, "TransformationNode")
	return n
}

func (n *TransformationNode) SetPosition(p mgl32.Vec3) {
	n.position = p
	n.matrixNeedsUpdate = true
}

func (n *TransformationNode) Position() mgl32.Vec3 { return n.position }

func (n *TransformationNode) SetRotation(r mgl32.Quat) {
	n.rotation = r.Normalize()
	n.matrixNeedsUpdate = true
}

func (n *TransformationNode) Rotation() mgl32.Quat { return n.rotation }

func (n *TransformationNode) SetScale(s mgl32.Vec3) {
	n.scale = s
	n.matrixNeedsUpdate = true
}

func (n *TransformationNode) Scale() mgl32.Vec3 { return n.scale }

// Move translates the node along its own axes.
func (n *TransformationNode) Move(d mgl32.Vec3) {
	n.SetPosition(n.position.Add(n.rotation.Rotate(d)))
}

// Rotate turns the node by angle radians around its local axis.
func (n *TransformationNode) Rotate(angle float32, axis mgl32.Vec3) {
	n.SetRotation(n.rotation.Mul(mgl32.QuatRotate(angle, axis.Normalize())))
}

// Matrix returns translation * rotation * scale.
func (n *TransformationNode) Matrix() mgl32.Mat4 {
	if n.matrixNeedsUpdate {
		n.matrix = mgl32.Translate3D(n.position[0], n.position[1], n.position[2]).
			Mul4(n.rotation.Mat4()).
			Mul4(mgl32.Scale3D(n.scale[0], n.scale[1], n.scale[2]))
		n.matrixNeedsUpdate = false
	}
	return n.matrix
}

// MaxScaleOnAxis is used to grow bounding spheres of transformed meshes.
func (n *TransformationNode) MaxScaleOnAxis() float32 {
	s := n.scale
	m := abs(s[0])
	if v := abs(s[1]); v > m {
		m = v
	}
	if v := abs(s[2]); v > m {
		m = v
	}
	return m
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// WorldMatrix multiplies the transformations of all ancestors of n and n
// itself.
func WorldMatrix(n Node) mgl32.Mat4 {
	m := mgl32.Ident4()
	for ; n != nil; n = n.Parent() {
		if t, ok := n.(*TransformationNode); ok {
			m = t.Matrix().Mul4(m)
		}
	}
	return m
}

// WorldScale is the product of the largest scale factors of all ancestors.
func WorldScale(n Node) float32 {
	s := float32(1)
	for ; n != nil; n = n.Parent() {
		if t, ok := n.(*TransformationNode); ok {
			s *= t.MaxScaleOnAxis()
		}
	}
	return s
}

type Light struct {
	Ambient  mgl32.Vec4
	Diffuse  mgl32.Vec4
	Specular mgl32.Vec4
}

func defaultLight() Light {
	return Light{
		Ambient:  mgl32.Vec4{0.2, 0.2, 0.2, 1},
		Diffuse:  mgl32.Vec4{0.8, 0.8, 0.8, 1},
		Specular: mgl32.Vec4{1, 1, 1, 1},
	}
}

// DirectionalLightNode is a light infinitely far away, shining along
// Direction.
type DirectionalLightNode struct {
	SceneNode
	Light

	Direction mgl32.Vec3
}

func NewDirectionalLightNode() *DirectionalLightNode {
	n := &DirectionalLightNode{
		Light:     defaultLight(),
		Direction: mgl32.Vec3{0, 0, -1},
	}
	n.init(n, "DirectionalLightNode")
	return n
}

// PointLightNode is a positioned light with distance attenuation.
type PointLightNode struct {
	SceneNode
	Light

	Position mgl32.Vec3

	ConstantAttenuation  float32
	LinearAttenuation    float32
	QuadraticAttenuation float32
}

func NewPointLightNode(position mgl32.Vec3) *PointLightNode {
	n := &PointLightNode{
		Light:    defaultLight(),
		Position: position,

		ConstantAttenuation: 1,
	}
	n.init(n, "PointLightNode")
	return n
}

// MeshNode draws a mesh with the transformation of its ancestors.
type MeshNode struct {
	SceneNode

	Mesh *geometry.Mesh
}

func NewMeshNode(m *geometry.Mesh) *MeshNode {
	n := &MeshNode{Mesh: m}
	n.init(n, "MeshNode")
	return n
}

// BoundingSphere returns the world space bounding sphere of the mesh.
func (n *MeshNode) BoundingSphere() (center mgl32.Vec3, radius float32) {
	if n.Mesh == nil {
		return mgl32.Vec3{}, 0
	}
	c, r := n.Mesh.Boundary().Sphere()
	center = mgl32.TransformCoordinate(c, WorldMatrix(n))
	return center, r * WorldScale(n)
}

type Line struct {
	From, To mgl32.Vec3
}

// LineNode draws unlit line segments.
type LineNode struct {
	SceneNode

	Lines []Line
	Color mgl32.Vec4
	Width float32
}

func NewLineNode(lines []Line, color mgl32.Vec4) *LineNode {
	n := &LineNode{
		Lines: lines,
		Color: color,
		Width: 1,
	}
	n.init(n, "LineNode")
	return n
}
