package filesystem

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Mock is an in-memory FileSystem. Paths always use forward slashes;
// directories exist implicitly as soon as a file lives below them.
type Mock struct {
	// Files maps absolute file paths to their contents.
	Files map[string][]byte

	// Errors makes FilesUnder fail for the given paths.
	Errors map[string]error
}

// NewMock creates a Mock holding the given files.
func NewMock(files map[string][]byte) *Mock {
	m := &Mock{
		Files:  make(map[string][]byte, len(files)),
		Errors: map[string]error{},
	}
	for p, data := range files {
		m.Files[path.Clean(p)] = data
	}
	return m
}

// Join implements FileSystem.
func (*Mock) Join(parts ...string) string {
	return path.Join(parts...)
}

// Glob implements FileSystem. Both files and directories can match.
func (m *Mock) Glob(pattern string) ([]string, error) {
	g, err := glob.Compile(path.Clean(pattern), '/')
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	seen := map[string]bool{}
	visited := map[string]bool{}
	for p := range m.Files {
		for ; p != "/" && p != "." && !visited[p]; p = path.Dir(p) {
			visited[p] = true
			if g.Match(p) {
				seen[p] = true
			}
		}
	}

	matches := make([]string, 0, len(seen))
	for p := range seen {
		matches = append(matches, p)
	}
	sort.Strings(matches)
	return matches, nil
}

// Splitext implements FileSystem.
func (*Mock) Splitext(p string) (root, ext string) {
	return Splitext(p)
}

// IsFile reports whether p is a file.
func (m *Mock) IsFile(p string) bool {
	_, ok := m.Files[path.Clean(p)]
	return ok
}

// FilesUnder implements FileSystem.
func (m *Mock) FilesUnder(p string, skipDirs map[string]bool, filter FileFilter) ([]string, error) {
	p = path.Clean(p)
	if err, ok := m.Errors[p]; ok {
		return nil, err
	}

	if m.IsFile(p) {
		if filter == nil || filter(m, path.Dir(p), path.Base(p)) {
			return []string{p}, nil
		}
		return nil, nil
	}

	if skipDirs[path.Base(p)] {
		return nil, nil
	}

	prefix := strings.TrimSuffix(p, "/") + "/"
	var files []string
	for f := range m.Files {
		if !strings.HasPrefix(f, prefix) {
			continue
		}
		dir, name := path.Split(f)
		if inSkippedDir(strings.TrimPrefix(dir, prefix), skipDirs) {
			continue
		}
		if filter == nil || filter(m, path.Clean(dir), name) {
			files = append(files, f)
		}
	}
	sort.Strings(files)
	return files, nil
}

// inSkippedDir reports whether any component of rel names a skipped directory.
func inSkippedDir(rel string, skipDirs map[string]bool) bool {
	for _, part := range strings.Split(rel, "/") {
		if skipDirs[part] {
			return true
		}
	}
	return false
}
