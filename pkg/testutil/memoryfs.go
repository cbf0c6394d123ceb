package testutil

import (
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryFS implements filesystem.FS with in-memory storage.
// Paths are slash-separated; the root is "." or "/".
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string][]byte // file path -> content
	dirs  map[string]bool   // explicit directories (parents are implied)

	// Error injection for exercising failure paths
	errorPaths map[string]error
}

// NewMemoryFS creates a new in-memory filesystem
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		files:      make(map[string][]byte),
		dirs:       map[string]bool{".": true},
		errorPaths: make(map[string]error),
	}
}

// AddFile stores a file, creating all parent directories
func (m *MemoryFS) AddFile(name string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name = m.normalize(name)
	m.files[name] = content
	for dir := path.Dir(name); dir != "." && dir != "/"; dir = path.Dir(dir) {
		m.dirs[dir] = true
	}
}

// AddFiles stores multiple files keyed by path
func (m *MemoryFS) AddFiles(files map[string]string) {
	for name, content := range files {
		m.AddFile(name, []byte(content))
	}
}

// InjectError makes any operation on the given path fail with err
func (m *MemoryFS) InjectError(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorPaths[m.normalize(name)] = err
}

func (m *MemoryFS) normalize(name string) string {
	name = strings.TrimPrefix(name, "/")
	name = path.Clean(name)
	if name == "" {
		return "."
	}
	return name
}

func (m *MemoryFS) checkError(name string) error {
	if err, ok := m.errorPaths[name]; ok {
		return err
	}
	return nil
}

// Stat implements filesystem.FS
func (m *MemoryFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name = m.normalize(name)
	if err := m.checkError(name); err != nil {
		return nil, err
	}

	if content, ok := m.files[name]; ok {
		return &memFileInfo{name: path.Base(name), size: int64(len(content))}, nil
	}
	if m.dirs[name] {
		return &memFileInfo{name: path.Base(name), isDir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}

// ReadFile implements filesystem.FS
func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name = m.normalize(name)
	if err := m.checkError(name); err != nil {
		return nil, err
	}

	content, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	out := make([]byte, len(content))
	copy(out, content)
	return out, nil
}

// ReadDir implements filesystem.FS
func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name = m.normalize(name)
	if err := m.checkError(name); err != nil {
		return nil, err
	}
	if !m.dirs[name] {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}

	seen := make(map[string]bool)
	var entries []fs.DirEntry

	appendChild := func(child string, isDir bool) {
		if seen[child] {
			return
		}
		seen[child] = true
		entries = append(entries, &memDirEntry{name: child, isDir: isDir})
	}

	for p := range m.files {
		if child, ok := directChild(name, p); ok {
			appendChild(child, child != path.Base(p) || p != joinUnder(name, child))
		}
	}
	for p := range m.dirs {
		if p == "." {
			continue
		}
		if child, ok := directChild(name, p); ok {
			_, isFile := m.files[joinUnder(name, child)]
			appendChild(child, !isFile)
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// directChild returns the first path segment of p below dir
func directChild(dir, p string) (string, bool) {
	if dir == "." {
		if i := strings.IndexByte(p, '/'); i >= 0 {
			return p[:i], true
		}
		return p, true
	}
	rest, ok := strings.CutPrefix(p, dir+"/")
	if !ok {
		return "", false
	}
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return rest[:i], true
	}
	return rest, true
}

func joinUnder(dir, child string) string {
	if dir == "." {
		return child
	}
	return dir + "/" + child
}

// memFileInfo implements fs.FileInfo for in-memory nodes
type memFileInfo struct {
	name  string
	size  int64
	isDir bool
}

func (fi *memFileInfo) Name() string { return fi.name }
func (fi *memFileInfo) Size() int64  { return fi.size }
func (fi *memFileInfo) Mode() fs.FileMode {
	if fi.isDir {
		return 0755 | fs.ModeDir
	}
	return 0644
}
func (fi *memFileInfo) ModTime() time.Time { return time.Time{} }
func (fi *memFileInfo) IsDir() bool        { return fi.isDir }
func (fi *memFileInfo) Sys() interface{}   { return nil }

// memDirEntry implements fs.DirEntry for in-memory nodes
type memDirEntry struct {
	name  string
	isDir bool
}

func (e *memDirEntry) Name() string { return e.name }
func (e *memDirEntry) IsDir() bool  { return e.isDir }
func (e *memDirEntry) Type() fs.FileMode {
	if e.isDir {
		return fs.ModeDir
	}
	return 0
}
func (e *memDirEntry) Info() (fs.FileInfo, error) {
	return &memFileInfo{name: e.name, isDir: e.isDir}, nil
}
