package scene

import (
	"github.com/der-antikeks/simplesetup/resources"
)

// Model is a resource that provides a subtree ready to be added to a scene.
type Model interface {
	resources.Resource

	SceneNode() Node
}
