package resolver

import (
	"path"
	"sort"

	"github.com/crusader2000/sunpy/pkg/errors"
	"github.com/crusader2000/sunpy/pkg/filesystem"
	"github.com/crusader2000/sunpy/pkg/logging"
	"github.com/crusader2000/sunpy/pkg/pattern"
)

// FileTree is an immutable snapshot of the regular files under a
// packaging root. Paths are relative, slash-separated, normalized,
// deduplicated and sorted. A FileTree may be shared across concurrent
// resolution runs.
type FileTree struct {
	paths []string
}

// NewFileTree builds a snapshot from a list of relative paths
func NewFileTree(paths []string) *FileTree {
	seen := make(map[string]bool, len(paths))
	normalized := make([]string, 0, len(paths))
	for _, p := range paths {
		p = pattern.Normalize(p)
		if p == "." || seen[p] {
			continue
		}
		seen[p] = true
		normalized = append(normalized, p)
	}
	sort.Strings(normalized)
	return &FileTree{paths: normalized}
}

// Paths returns the snapshot contents. The returned slice is shared;
// callers must not modify it.
func (t *FileTree) Paths() []string {
	return t.paths
}

// Len returns the number of files in the snapshot
func (t *FileTree) Len() int {
	return len(t.paths)
}

// Snapshot walks root through the filesystem abstraction and collects
// every regular file as a root-relative path. Directories themselves and
// non-regular entries (symlinks, devices) are not part of the snapshot.
func Snapshot(fsys filesystem.FS, root string) (*FileTree, error) {
	logger := logging.GetLogger("resolver.snapshot")

	info, err := fsys.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileNotFound,
			"cannot access root %s", root).WithDetail("root", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput,
			"root %s is not a directory", root).WithDetail("root", root)
	}

	var paths []string
	if err := walk(fsys, root, ".", &paths); err != nil {
		return nil, err
	}

	logger.Debug().Str("root", root).Int("files", len(paths)).Msg("Built file tree snapshot")
	return NewFileTree(paths), nil
}

// walk recurses one directory level, collecting regular files under rel
func walk(fsys filesystem.FS, root, rel string, out *[]string) error {
	dir := root
	if rel != "." {
		dir = root + "/" + rel
	}

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess,
			"cannot read directory %s", dir).WithDetail("dir", dir)
	}

	for _, entry := range entries {
		childRel := path.Join(rel, entry.Name())
		switch {
		case entry.IsDir():
			if err := walk(fsys, root, childRel, out); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			*out = append(*out, childRel)
		}
	}

	return nil
}
