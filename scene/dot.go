package scene

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
)

type dotNode struct {
	id   int64
	node Node
}

func (n dotNode) ID() int64     { return n.id }
func (n dotNode) DOTID() string { return fmt.Sprintf("node%d", n.id) }
func (n dotNode) Attributes() []encoding.Attribute {
	attrs := []encoding.Attribute{{Key: "label", Value: n.node.String()}}
	switch n.node.(type) {
	case *DirectionalLightNode, *PointLightNode:
		attrs = append(attrs, encoding.Attribute{Key: "shape", Value: "diamond"})
	case *MeshNode, *LineNode:
		attrs = append(attrs, encoding.Attribute{Key: "shape", Value: "box"})
	case *TransformationNode:
		attrs = append(attrs, encoding.Attribute{Key: "shape", Value: "ellipse"})
	}
	return attrs
}

// Graph converts the tree below root into a directed graph with one edge
// from every parent to each of its children.
func Graph(root Node) *simple.DirectedGraph {
	g := simple.NewDirectedGraph()
	if root == nil {
		return g
	}

	var (
		next  int64
		stack []dotNode
	)

	Inspect(root, func(n Node) bool {
		if n == nil {
			stack = stack[:len(stack)-1]
			return false
		}

		dn := dotNode{id: next, node: n}
		next++
		g.AddNode(dn)

		if len(stack) > 0 {
			g.SetEdge(g.NewEdge(stack[len(stack)-1], dn))
		}
		stack = append(stack, dn)
		return true
	})

	return g
}

// WriteDot writes the graph below root in the graphviz dot format.
func WriteDot(w io.Writer, root Node) error {
	b, err := dot.Marshal(Graph(root), "scene", "", "\t")
	if err != nil {
		return fmt.Errorf("marshal scene graph: %w", err)
	}

	if _, err := w.Write(b); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}
