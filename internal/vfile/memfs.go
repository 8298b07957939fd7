package vfile

import (
	"io/fs"
	"strings"
	"time"

	"github.com/microsoft/typescript-go/shim/bundled"
	"github.com/microsoft/typescript-go/shim/tspath"
	"github.com/microsoft/typescript-go/shim/vfs"
	"github.com/microsoft/typescript-go/shim/vfs/cachedvfs"
	"github.com/microsoft/typescript-go/shim/vfs/osvfs"
)

// root is the fixed virtual directory every compile runs in. There is no
// real project directory to leak into diagnostics or module resolution.
const root = "/virtual-drc"

// MemFS is an in-memory vfs.FS: it serves the caller's virtual files and
// captured emit output by absolute virtual path, and passes every other
// path to its base filesystem, which serves the bundled standard-library
// lib files and hands any remaining path to the real OS filesystem
// (osvfs); lookups are not restricted to the standard library. Modeled on
// the teacher's internal/testutil.OverlayVFS, with one deliberate
// divergence: WriteFile does not panic on unknown paths, it captures emitted
// output (JS + source maps) into an in-memory map, since the whole point of
// this FS is that the compiler's emit step has nowhere else to write.
type MemFS struct {
	base     vfs.FS // bundled lib files over the OS filesystem
	sources  map[string]string
	emitted  map[string]string
	caseSens bool
}

var _ vfs.FS = (*MemFS)(nil)

// New creates a MemFS serving the given virtual files (keyed by absolute
// virtual path, e.g. "/virtual-drc/__user_file.ts") on top of the bundled
// TypeScript-standard-library filesystem.
func New(sources map[string]string) *MemFS {
	return &MemFS{
		base:     bundled.WrapFS(cachedvfs.From(osvfs.FS())),
		sources:  sources,
		emitted:  make(map[string]string),
		caseSens: true,
	}
}

// Root is the fixed virtual working directory.
func Root() string { return root }

func (m *MemFS) UseCaseSensitiveFileNames() bool { return m.caseSens }

func (m *MemFS) FileExists(path string) bool {
	if _, ok := m.sources[path]; ok {
		return true
	}
	if _, ok := m.emitted[path]; ok {
		return true
	}
	return m.base.FileExists(path)
}

func (m *MemFS) ReadFile(path string) (contents string, ok bool) {
	if src, ok := m.sources[path]; ok {
		return src, true
	}
	if src, ok := m.emitted[path]; ok {
		return src, true
	}
	return m.base.ReadFile(path)
}

func (m *MemFS) DirectoryExists(path string) bool {
	normalized := normalizeDir(path)
	for p := range m.sources {
		if strings.HasPrefix(p, normalized) {
			return true
		}
	}
	for p := range m.emitted {
		if strings.HasPrefix(p, normalized) {
			return true
		}
	}
	return m.base.DirectoryExists(path)
}

func (m *MemFS) GetAccessibleEntries(path string) vfs.Entries {
	result := m.base.GetAccessibleEntries(path)
	normalized := normalizeDir(path)

	seen := make(map[string]bool)
	for p := range m.sources {
		addEntry(&result, normalized, p, seen)
	}
	for p := range m.emitted {
		addEntry(&result, normalized, p, seen)
	}
	return result
}

func addEntry(result *vfs.Entries, normalizedDir, path string, seen map[string]bool) {
	withoutPrefix, found := strings.CutPrefix(path, normalizedDir)
	if !found || seen[path] {
		return
	}
	seen[path] = true
	if before, _, ok := strings.Cut(withoutPrefix, "/"); ok {
		result.Directories = append(result.Directories, before)
	} else {
		result.Files = append(result.Files, withoutPrefix)
	}
}

func normalizeDir(path string) string {
	normalized := tspath.NormalizePath(path)
	if !strings.HasSuffix(normalized, "/") {
		normalized += "/"
	}
	return normalized
}

type memFileInfo struct {
	name string
	size int64
}

var (
	_ fs.FileInfo = (*memFileInfo)(nil)
	_ fs.DirEntry = (*memFileInfo)(nil)
)

func (fi *memFileInfo) IsDir() bool                { return false }
func (fi *memFileInfo) ModTime() time.Time         { return time.Time{} }
func (fi *memFileInfo) Mode() fs.FileMode          { return 0o444 }
func (fi *memFileInfo) Name() string               { return fi.name }
func (fi *memFileInfo) Size() int64                { return fi.size }
func (fi *memFileInfo) Sys() any                   { return nil }
func (fi *memFileInfo) Info() (fs.FileInfo, error) { return fi, nil }
func (fi *memFileInfo) Type() fs.FileMode          { return 0 }

func (m *MemFS) Stat(path string) vfs.FileInfo {
	if src, ok := m.sources[path]; ok {
		return &memFileInfo{name: path, size: int64(len(src))}
	}
	if src, ok := m.emitted[path]; ok {
		return &memFileInfo{name: path, size: int64(len(src))}
	}
	return m.base.Stat(path)
}

func (m *MemFS) WalkDir(dir string, walkFn vfs.WalkDirFunc) error {
	return m.base.WalkDir(dir, walkFn)
}

func (m *MemFS) Realpath(path string) string {
	if _, ok := m.sources[path]; ok {
		return path
	}
	if _, ok := m.emitted[path]; ok {
		return path
	}
	return m.base.Realpath(path)
}

// WriteFile captures emitted output (the JS and source-map artifacts the
// compiler produces) instead of touching disk. This is the one place this
// FS behaves differently from a faithful overlay: there is no "real"
// filesystem underneath a virtual compile to fall through to.
func (m *MemFS) WriteFile(path string, data string, _ bool) error {
	m.emitted[path] = data
	return nil
}

func (m *MemFS) Remove(path string) error {
	delete(m.emitted, path)
	return nil
}

func (m *MemFS) Chtimes(path string, _ time.Time, _ time.Time) error {
	return nil
}

// Emitted returns everything written via WriteFile during a compile,
// keyed by absolute virtual path.
func (m *MemFS) Emitted() map[string]string {
	return m.emitted
}
