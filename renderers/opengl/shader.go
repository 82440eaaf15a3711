package opengl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-gl/gl/v2.1/gl"

	"github.com/der-antikeks/simplesetup/resources"
)

const (
	vertexStub   = "void main() { gl_Position = ftransform(); gl_TexCoord[0] = gl_MultiTexCoord0; gl_FrontColor = gl_Color; }"
	fragmentStub = "void main() { gl_FragColor = gl_Color; }"
)

// LoadShader compiles and links the sources of s. A missing stage is
// replaced by a fixed function equivalent.
func (r *Renderer) LoadShader(s resources.Shader) error {
	vertex, fragment := s.VertexSource(), s.FragmentSource()
	if vertex == "" {
		vertex = vertexStub
	}
	if fragment == "" {
		fragment = fragmentStub
	}

	id, err := newProgram(vertex, fragment)
	if err != nil {
		return err
	}

	if old := s.ID(); old != 0 && r.programs[old] {
		gl.DeleteProgram(old)
		delete(r.programs, old)
	}
	s.SetID(id)
	r.programs[id] = true

	return nil
}

func newProgram(vertex, fragment string) (uint32, error) {
	vshader, err := compile(vertex, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader error: %v", err)
	}
	defer gl.DeleteShader(vshader)

	fshader, err := compile(fragment, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader error: %v", err)
	}
	defer gl.DeleteShader(fshader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vshader)
	gl.AttachShader(program, fshader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var length int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &length)

		info := strings.Repeat("\x00", int(length+1))
		gl.GetProgramInfoLog(program, length, nil, gl.Str(info))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("linker error: %v", strings.TrimRight(info, "\x00"))
	}

	return program, nil
}

func compile(source string, kind uint32) (uint32, error) {
	shader := gl.CreateShader(kind)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var length int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &length)

		info := strings.Repeat("\x00", int(length+1))
		gl.GetShaderInfoLog(shader, length, nil, gl.Str(info))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("%v", strings.TrimRight(info, "\x00"))
	}

	return shader, nil
}

// samplerUnits assigns texture units to sampler names in lexical order,
// starting after the unit of the material texture.
func samplerUnits(textures map[string]resources.Texture) []string {
	names := make([]string, 0, len(textures))
	for name, tex := range textures {
		if tex != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
