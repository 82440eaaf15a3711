package obj

import (
	"bufio"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/der-antikeks/simplesetup/geometry"
	"github.com/der-antikeks/simplesetup/logging"
)

func color(fields []string) (mgl32.Vec4, error) {
	v, err := parseFloats(fields, 3)
	if err != nil {
		return mgl32.Vec4{}, err
	}
	return mgl32.Vec4{v[0], v[1], v[2], 1}, nil
}

func (d *decoder) loadMaterials(path string) error {
	f, err := d.fs.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dir := filepath.Dir(path)

	var (
		cur        *geometry.Material
		created    []*geometry.Material
		hasAmbient = map[*geometry.Material]bool{}
	)

	s := bufio.NewScanner(f)
	for ln := 1; s.Scan(); ln++ {
		fields := strings.Fields(s.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		key := strings.ToLower(fields[0])
		value := strings.Join(fields[1:], " ")

		if key == "newmtl" {
			cur = geometry.NewMaterial()
			cur.Name = value
			d.materials[value] = cur
			created = append(created, cur)
			continue
		}
		if cur == nil {
			return errors.Errorf("%s line %d: %s before newmtl", path, ln, fields[0])
		}

		switch key {
		case "ka": // ambient color
			cur.Ambient, err = color(fields[1:])
			hasAmbient[cur] = true

		case "kd": // diffuse color
			cur.Diffuse, err = color(fields[1:])

		case "ks": // specular color
			cur.Specular, err = color(fields[1:])

		case "ns": // specular exponent
			var v []float32
			if v, err = parseFloats(fields[1:], 1); err == nil {
				cur.Shininess = v[0]
			}

		case "d": // dissolve
			var v []float32
			if v, err = parseFloats(fields[1:], 1); err == nil {
				cur.Opacity = v[0]
			}

		case "tr": // transparency
			var v []float32
			if v, err = parseFloats(fields[1:], 1); err == nil {
				cur.Opacity = 1 - v[0]
			}

		case "map_kd": // diffuse texture map
			if d.textures == nil {
				break
			}
			tex, terr := d.textures.Create(filepath.Join(dir, value))
			if terr != nil {
				logging.Warnf("obj: could not load texture of material %q: %v", cur.Name, terr)
				break
			}
			cur.Texture = tex

		case "ni", "illum", "ke", "tf":
		default:
			logging.Debugf("obj: unknown material line type %q", fields[0])
		}

		if err != nil {
			return errors.Wrapf(err, "%s line %d", path, ln)
		}
	}
	if err := s.Err(); err != nil {
		return err
	}

	for _, m := range created {
		if !hasAmbient[m] {
			m.Ambient = m.Diffuse
		}
		m.Diffuse[3] = m.Opacity
	}
	return nil
}
