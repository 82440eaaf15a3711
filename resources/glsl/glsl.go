// Package glsl loads shader descriptor files.
//
// A descriptor names the shader sources and the textures bound to the
// sampler uniforms of the program, relative to the descriptor:
//
//	# phong with a normal map
//	vertex: phong.vert
//	fragment: phong.frag
//	texture2D: normalMap bricks_normal.tga
package glsl

import (
	"bufio"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/der-antikeks/simplesetup/resources"
)

type Plugin struct {
	textures *resources.Manager[resources.Texture]
}

func NewPlugin(textures *resources.Manager[resources.Texture]) *Plugin {
	return &Plugin{textures: textures}
}

func (p *Plugin) Accepts(ext string) bool {
	return ext == ".glsl"
}

func (p *Plugin) Create(fs afero.Fs, file string) (resources.Shader, error) {
	return &Shader{
		fs:       fs,
		file:     file,
		textures: p.textures,
	}, nil
}

type Shader struct {
	mu       sync.RWMutex
	fs       afero.Fs
	file     string
	textures *resources.Manager[resources.Texture]

	loaded   bool
	vertex   string
	fragment string
	samplers map[string]resources.Texture
	id       uint32
}

func (s *Shader) File() string { return s.file }

func (s *Shader) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return nil
	}

	f, err := s.fs.Open(s.file)
	if err != nil {
		return err
	}
	defer f.Close()

	dir := filepath.Dir(s.file)
	samplers := map[string]resources.Texture{}
	var vertex, fragment string

	sc := bufio.NewScanner(f)
	for ln := 1; sc.Scan(); ln++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return errors.Errorf("%s line %d: missing ':'", s.file, ln)
		}
		value = strings.TrimSpace(value)

		switch strings.ToLower(strings.TrimSpace(key)) {
		case "vertex":
			if vertex, err = s.readSource(dir, value); err != nil {
				return errors.Wrapf(err, "%s line %d", s.file, ln)
			}

		case "fragment":
			if fragment, err = s.readSource(dir, value); err != nil {
				return errors.Wrapf(err, "%s line %d", s.file, ln)
			}

		case "texture2d":
			fields := strings.Fields(value)
			if len(fields) != 2 {
				return errors.Errorf("%s line %d: expected sampler name and file", s.file, ln)
			}
			if s.textures == nil {
				return errors.Errorf("%s line %d: no texture manager", s.file, ln)
			}

			tex, err := s.textures.Create(filepath.Join(dir, fields[1]))
			if err != nil {
				return errors.Wrapf(err, "%s line %d", s.file, ln)
			}
			samplers[fields[0]] = tex

		default:
			return errors.Errorf("%s line %d: unknown key %q", s.file, ln, key)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}

	if vertex == "" && fragment == "" {
		return errors.Errorf("%s: neither vertex nor fragment shader", s.file)
	}

	s.vertex, s.fragment, s.samplers = vertex, fragment, samplers
	s.loaded = true
	return nil
}

func (s *Shader) readSource(dir, file string) (string, error) {
	b, err := afero.ReadFile(s.fs, filepath.Join(dir, file))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Unload drops the sources. The program id is kept until the renderer
// releases it.
func (s *Shader) Unload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = false
	s.vertex, s.fragment, s.samplers = "", "", nil
}

func (s *Shader) VertexSource() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vertex
}

func (s *Shader) FragmentSource() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fragment
}

func (s *Shader) Textures() map[string]resources.Texture {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ts := make(map[string]resources.Texture, len(s.samplers))
	for k, v := range s.samplers {
		ts[k] = v
	}
	return ts
}

func (s *Shader) ID() uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

func (s *Shader) SetID(id uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = id
}
