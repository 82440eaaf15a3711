package scene

import (
	"github.com/pkg/errors"
)

// Copy duplicates the subtree below n. The copy has no parent; meshes and
// their materials are shared with the original.
func Copy(n Node) (Node, error) {
	var c Node

	switch t := n.(type) {
	case nil:
		return nil, ErrNilNode
	case *SceneNode:
		d := *t
		d.reset(&d)
		c = &d
	case *TransformationNode:
		d := *t
		d.reset(&d)
		c = &d
	case *DirectionalLightNode:
		d := *t
		d.reset(&d)
		c = &d
	case *PointLightNode:
		d := *t
		d.reset(&d)
		c = &d
	case *MeshNode:
		d := *t
		d.reset(&d)
		c = &d
	case *LineNode:
		d := *t
		d.reset(&d)
		d.Lines = append([]Line(nil), t.Lines...)
		c = &d
	default:
		return nil, errors.Errorf("can not copy %s", n)
	}

	for _, child := range n.Children() {
		cc, err := Copy(child)
		if err != nil {
			return nil, err
		}
		if err := c.AddNode(cc); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// reset detaches a struct copy of a node from the graph of the original.
func (n *SceneNode) reset(self Node) {
	if n.kind == "" {
		n.kind = "SceneNode"
	}
	n.self = self
	n.parent = nil
	n.children = nil
}
