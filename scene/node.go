package scene

import (
	"github.com/pkg/errors"
)

var (
	ErrNilNode = errors.New("nil node")
	ErrCycle   = errors.New("node can not be added to itself or one of its descendants")
)

// Node is an element of the scene graph. A node has at most one parent.
type Node interface {
	// AddNode appends c to the children, detaching it from a previous parent.
	AddNode(c Node) error
	RemoveNode(c Node)
	Children() []Node
	Parent() Node

	Name() string
	SetName(string)
	String() string

	setParent(Node)
}

// SceneNode is a plain group node and the base of all other node types.
type SceneNode struct {
	self     Node
	kind     string
	name     string
	parent   Node
	children []Node
}

func NewSceneNode() *SceneNode {
	n := &SceneNode{}
	n.init(n, "SceneNode")
	return n
}

func (n *SceneNode) init(self Node, kind string) {
	n.self = self
	n.kind = kind
}

func (n *SceneNode) node() Node {
	if n.self == nil {
		n.init(n, "SceneNode")
	}
	return n.self
}

func (n *SceneNode) AddNode(c Node) error {
	if c == nil {
		return ErrNilNode
	}

	self := n.node()
	for a := self; a != nil; a = a.Parent() {
		if a == c {
			return ErrCycle
		}
	}

	if p := c.Parent(); p != nil {
		p.RemoveNode(c)
	}
	c.setParent(self)
	n.children = append(n.children, c)
	return nil
}

func (n *SceneNode) RemoveNode(r Node) {
	position := -1
	for i, c := range n.children {
		if r == c {
			position = i
			break
		}
	}
	if position == -1 {
		return
	}

	copy(n.children[position:], n.children[position+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]

	r.setParent(nil)
}

// Children returns a copy of the child list, so the graph may be modified
// while iterating.
func (n *SceneNode) Children() []Node {
	cs := make([]Node, len(n.children))
	copy(cs, n.children)
	return cs
}

func (n *SceneNode) Parent() Node        { return n.parent }
func (n *SceneNode) setParent(p Node)    { n.parent = p }
func (n *SceneNode) Name() string        { return n.name }
func (n *SceneNode) SetName(name string) { n.name = name }

func (n *SceneNode) String() string {
	n.node()
	if n.name == "" {
		return n.kind
	}
	return n.kind + " " + n.name
}

// Root returns the topmost ancestor of n.
func Root(n Node) Node {
	for n != nil && n.Parent() != nil {
		n = n.Parent()
	}
	return n
}
