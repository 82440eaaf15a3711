package resources

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTexture struct {
	*ImageTexture
	file     string
	unloaded bool
}

func (t *fakeTexture) Unload() { t.unloaded = true }

type fakePlugin struct {
	ext     string
	created int
}

func (p *fakePlugin) Accepts(ext string) bool { return ext == p.ext }

func (p *fakePlugin) Create(fs afero.Fs, file string) (Texture, error) {
	if _, err := fs.Stat(file); err != nil {
		return nil, err
	}
	p.created++
	return &fakeTexture{
		ImageTexture: NewImageTexture(image.NewRGBA(image.Rect(0, 0, 2, 2))),
		file:         file,
	}, nil
}

func TestDirectoryManager(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/a/box.tga", []byte("a"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/data/b/box.tga", []byte("b"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/data/b/only.tga", []byte("b"), 0644))
	require.NoError(t, fs.MkdirAll("/data/a/dir.tga", 0755))

	d := NewDirectoryManager(fs)
	d.AppendPath("/data/b")
	d.PrependPath("/data/a/")
	d.AppendPath("/data/b/../b")

	assert.Equal(t, []string{
		filepath.Clean("/data/a") + string(filepath.Separator),
		filepath.Clean("/data/b") + string(filepath.Separator),
	}, d.Paths())
	assert.True(t, d.IsInPath("/data/a"))
	assert.False(t, d.IsInPath("/data"))

	tests := []struct {
		file     string
		expected string
		found    bool
	}{
		{"box.tga", "/data/a/box.tga", true},
		{"only.tga", "/data/b/only.tga", true},
		{"/data/b/box.tga", "/data/b/box.tga", true},
		{"dir.tga", "", false},
		{"missing.tga", "", false},
		{"/missing.tga", "", false},
	}

	for _, c := range tests {
		path, err := d.FindFileInPath(c.file)
		if !c.found {
			assert.Error(t, err, c.file)
			continue
		}
		if assert.NoError(t, err, c.file) {
			assert.Equal(t, filepath.Clean(c.expected), filepath.Clean(path), c.file)
		}
	}
}

func TestManager_Create(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/box.tga", []byte("x"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/data/box.png", []byte("x"), 0644))

	reg := NewRegistry(fs)
	reg.Directories.AppendPath("/data")

	p := &fakePlugin{ext: ".tga"}
	reg.Textures.AddPlugin(p)
	assert.Len(t, reg.Textures.Plugins(), 1)

	a, err := reg.Textures.Create("box.tga")
	require.NoError(t, err)
	b, err := reg.Textures.Create("/data/box.tga")
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, 1, p.created)
	assert.Equal(t, 1, reg.Textures.Len())
	assert.Equal(t, 2, a.Width())

	_, err = reg.Textures.Create("box.png")
	assert.True(t, errors.Is(err, ErrNoPlugin))

	_, err = reg.Textures.Create("missing.tga")
	assert.Error(t, err)

	reg.Textures.Purge()
	assert.Equal(t, 0, reg.Textures.Len())
	assert.True(t, a.(*fakeTexture).unloaded)
}

func TestManager_Evict(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a.tga", []byte("x"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/b.tga", []byte("x"), 0644))

	m := NewManager[Texture](NewDirectoryManager(fs), 1)
	m.AddPlugin(&fakePlugin{ext: ".tga"})

	a, err := m.Create("/a.tga")
	require.NoError(t, err)
	_, err = m.Create("/b.tga")
	require.NoError(t, err)

	assert.Equal(t, 1, m.Len())
	assert.False(t, a.(*fakeTexture).unloaded)

	// a is forgotten but still usable by its holders
	again, err := m.Create("/a.tga")
	require.NoError(t, err)
	assert.NotSame(t, a, again)
	assert.False(t, a.(*fakeTexture).unloaded)
}

func TestImageTexture(t *testing.T) {
	tex := NewImageTexture(nil)
	assert.Equal(t, 0, tex.Width())
	assert.False(t, tex.Changed())

	tex.SetImage(image.NewRGBA(image.Rect(0, 0, 4, 8)))
	assert.Equal(t, 4, tex.Width())
	assert.Equal(t, 8, tex.Height())
	assert.True(t, tex.Changed())

	tex.SetID(7)
	tex.SetChanged(false)
	assert.Equal(t, uint32(7), tex.ID())
	assert.False(t, tex.Changed())

	tex.Unload()
	assert.Nil(t, tex.Image())
}
