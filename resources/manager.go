package resources

import (
	"path/filepath"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// DefaultCacheSize is the number of resources a Manager keeps per type.
const DefaultCacheSize = 256

// ErrNoPlugin is returned when no registered plugin accepts a file.
var ErrNoPlugin = errors.New("no plugin for file")

// Plugin creates resources of type T from files with known extensions.
type Plugin[T Resource] interface {
	// Accepts is called with the lower case extension including the dot.
	Accepts(ext string) bool
	Create(fs afero.Fs, file string) (T, error)
}

// Manager creates resources of one type through its plugins and caches them
// by resolved file name.
type Manager[T Resource] struct {
	mu      sync.RWMutex
	plugins []Plugin[T]
	dirs    *DirectoryManager
	cache   *lru.Cache[string, T]
}

func NewManager[T Resource](dirs *DirectoryManager, size int) *Manager[T] {
	if dirs == nil {
		dirs = NewDirectoryManager(nil)
	}
	if size <= 0 {
		size = DefaultCacheSize
	}

	// evicted resources stay loaded, only Purge unloads
	cache, err := lru.New[string, T](size)
	if err != nil {
		// only fails for non-positive sizes
		panic(err)
	}

	return &Manager[T]{
		dirs:  dirs,
		cache: cache,
	}
}

func (m *Manager[T]) AddPlugin(p Plugin[T]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plugins = append(m.plugins, p)
}

func (m *Manager[T]) Plugins() []Plugin[T] {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ps := make([]Plugin[T], len(m.plugins))
	copy(ps, m.plugins)
	return ps
}

func (m *Manager[T]) plugin(file string) (Plugin[T], bool) {
	ext := strings.ToLower(filepath.Ext(file))
	for _, p := range m.Plugins() {
		if p.Accepts(ext) {
			return p, true
		}
	}
	return nil, false
}

// Create returns the loaded resource for file, searching the data
// directories. Repeated calls return the cached instance.
func (m *Manager[T]) Create(file string) (T, error) {
	var zero T

	path, err := m.dirs.FindFileInPath(file)
	if err != nil {
		return zero, errors.Wrapf(err, "resource %q", file)
	}

	if r, ok := m.cache.Get(path); ok {
		return r, nil
	}

	p, ok := m.plugin(path)
	if !ok {
		return zero, errors.Wrapf(ErrNoPlugin, "resource %q", file)
	}

	r, err := p.Create(m.dirs.Fs(), path)
	if err != nil {
		return zero, errors.Wrapf(err, "create resource %q", path)
	}
	if err := r.Load(); err != nil {
		return zero, errors.Wrapf(err, "load resource %q", path)
	}

	m.cache.Add(path, r)
	return r, nil
}

// Purge unloads and forgets every cached resource.
func (m *Manager[T]) Purge() {
	for _, r := range m.cache.Values() {
		r.Unload()
	}
	m.cache.Purge()
}

func (m *Manager[T]) Len() int {
	return m.cache.Len()
}
