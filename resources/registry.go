package resources

import (
	"github.com/spf13/afero"
)

// Registry bundles the texture and shader managers of an engine instance
// with their shared data directories. Model managers are typed by the
// scene package and created on top of Directories.
type Registry struct {
	Directories *DirectoryManager

	Textures *Manager[Texture]
	Shaders  *Manager[Shader]
}

func NewRegistry(fs afero.Fs) *Registry {
	dirs := NewDirectoryManager(fs)

	return &Registry{
		Directories: dirs,

		Textures: NewManager[Texture](dirs, 0),
		Shaders:  NewManager[Shader](dirs, 0),
	}
}
