package scene

import (
	"github.com/der-antikeks/simplesetup/resources"
)

// A Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children
// of node with the visitor w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(n Node) (w Visitor)
}

// Walk traverses the graph in depth-first order.
func Walk(v Visitor, n Node) {
	if v = v.Visit(n); v == nil {
		return
	}

	for _, c := range n.Children() {
		Walk(v, c)
	}

	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(n Node) Visitor {
	if f(n) {
		return f
	}
	return nil
}

// Inspect calls f for n and, as long as f returns true, for each descendant.
// After the children of a node were visited, f is called with nil.
func Inspect(n Node, f func(Node) bool) {
	Walk(inspector(f), n)
}

// Textures returns every distinct texture referenced by the mesh materials
// below root.
func Textures(root Node) []resources.Texture {
	if root == nil {
		return nil
	}

	seen := map[resources.Texture]bool{}
	var ts []resources.Texture

	Inspect(root, func(n Node) bool {
		if m, ok := n.(*MeshNode); ok && m.Mesh != nil && m.Mesh.Material != nil {
			for _, t := range m.Mesh.Material.Textures() {
				if !seen[t] {
					seen[t] = true
					ts = append(ts, t)
				}
			}
		}
		return true
	})

	return ts
}

// Shaders returns every distinct shader referenced below root.
func Shaders(root Node) []resources.Shader {
	if root == nil {
		return nil
	}

	seen := map[resources.Shader]bool{}
	var ss []resources.Shader

	Inspect(root, func(n Node) bool {
		if m, ok := n.(*MeshNode); ok && m.Mesh != nil && m.Mesh.Material != nil {
			if s := m.Mesh.Material.Shader; s != nil && !seen[s] {
				seen[s] = true
				ss = append(ss, s)
			}
		}
		return true
	})

	return ss
}
