package fsutil

import (
	"os"
	"sync"
)

// FileOracle answers whether a file exists and how large it is.
type FileOracle interface {
	Stat(path string) (size int64, exists bool)
}

// OSFiles is the FileOracle backed by the real file system. Directories are
// reported as missing.
type OSFiles struct{}

// Stat implements FileOracle.
func (OSFiles) Stat(path string) (int64, bool) {
	if path == "" {
		return 0, false
	}
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return 0, false
	}
	return fi.Size(), true
}

// MapFiles is an in-memory FileOracle keyed by absolute path. It lets callers
// describe files that would be impractical to create, such as multi-gigabyte
// payloads.
type MapFiles struct {
	mu    sync.RWMutex
	sizes map[string]int64
}

// NewMapFiles returns a MapFiles seeded with the given path to size entries.
func NewMapFiles(sizes map[string]int64) *MapFiles {
	m := &MapFiles{sizes: make(map[string]int64, len(sizes))}
	for k, v := range sizes {
		m.sizes[k] = v
	}
	return m
}

// Put registers or replaces a file.
func (m *MapFiles) Put(path string, size int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sizes[path] = size
}

// Delete forgets a file.
func (m *MapFiles) Delete(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sizes, path)
}

// Stat implements FileOracle.
func (m *MapFiles) Stat(path string) (int64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	size, ok := m.sizes[path]
	return size, ok
}
