package resources

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// DirectoryManager is an ordered list of directories searched for resource
// files.
type DirectoryManager struct {
	mu    sync.RWMutex
	fs    afero.Fs
	paths []string
}

func NewDirectoryManager(fs afero.Fs) *DirectoryManager {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &DirectoryManager{fs: fs}
}

func (d *DirectoryManager) Fs() afero.Fs { return d.fs }

func clean(dir string) string {
	return filepath.Clean(dir) + string(filepath.Separator)
}

// AppendPath adds dir to the end of the search path. Known directories are
// ignored.
func (d *DirectoryManager) AppendPath(dir string) {
	if d.IsInPath(dir) {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.paths = append(d.paths, clean(dir))
}

// PrependPath adds dir to the front of the search path. Known directories are
// ignored.
func (d *DirectoryManager) PrependPath(dir string) {
	if d.IsInPath(dir) {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.paths = append([]string{clean(dir)}, d.paths...)
}

func (d *DirectoryManager) IsInPath(dir string) bool {
	dir = clean(dir)

	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, p := range d.paths {
		if p == dir {
			return true
		}
	}
	return false
}

func (d *DirectoryManager) Paths() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	paths := make([]string, len(d.paths))
	copy(paths, d.paths)
	return paths
}

// FindFileInPath returns the first existing regular file named file, tried
// as given and then relative to each search directory.
func (d *DirectoryManager) FindFileInPath(file string) (string, error) {
	if isFile(d.fs, file) {
		return file, nil
	}

	if !filepath.IsAbs(file) {
		for _, p := range d.Paths() {
			if f := filepath.Join(p, file); isFile(d.fs, f) {
				return f, nil
			}
		}
	}

	return "", &os.PathError{Op: "find", Path: file, Err: os.ErrNotExist}
}

func isFile(fs afero.Fs, path string) bool {
	fi, err := fs.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
