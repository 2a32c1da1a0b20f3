// Package filesystem abstracts the handful of filesystem operations needed to
// gather layout tests, so that the locator can run against the real disk or an
// in-memory tree.
package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FileFilter decides whether a file found during a walk is kept.
// dirname is the directory containing the file, filename its base name.
type FileFilter func(fsys FileSystem, dirname, filename string) bool

// FileSystem is the set of operations the test locator relies on.
type FileSystem interface {
	// Join joins path elements into a single path.
	Join(parts ...string) string

	// Glob returns the paths matching pattern.
	Glob(pattern string) ([]string, error)

	// Splitext splits path into everything before the extension and the
	// extension itself (including the leading dot).
	Splitext(path string) (root, ext string)

	// FilesUnder returns every file under path accepted by filter, never
	// descending into directories whose name is in skipDirs. If path is a
	// file it is returned when filter accepts it. A path that does not exist
	// yields no files and no error.
	FilesUnder(path string, skipDirs map[string]bool, filter FileFilter) ([]string, error)
}

// Splitext returns the extension of path the way the test locator expects it:
// the substring from the last dot of the base name. Leading dots of the base
// name never start an extension, so ".svn" has none.
func Splitext(path string) (root, ext string) {
	start := strings.LastIndexAny(path, "/"+string(filepath.Separator)) + 1
	base := path[start:]
	i := strings.LastIndexByte(base, '.')
	if i <= 0 || strings.Trim(base[:i], ".") == "" {
		return path, ""
	}
	return path[:start+i], path[start+i:]
}

var (
	_ FileSystem = (*OS)(nil)
	_ FileSystem = (*Mock)(nil)
)

// OS is a FileSystem backed by the host filesystem.
type OS struct{}

// NewOS returns a FileSystem for the real disk.
func NewOS() *OS {
	return &OS{}
}

// Join implements FileSystem.
func (*OS) Join(parts ...string) string {
	return filepath.Join(parts...)
}

// Glob implements FileSystem.
func (*OS) Glob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	return matches, nil
}

// Splitext implements FileSystem.
func (*OS) Splitext(path string) (root, ext string) {
	return Splitext(path)
}

// FilesUnder implements FileSystem.
func (o *OS) FilesUnder(path string, skipDirs map[string]bool, filter FileFilter) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	if !info.IsDir() {
		if filter == nil || filter(o, filepath.Dir(path), filepath.Base(path)) {
			return []string{path}, nil
		}
		return nil, nil
	}

	if skipDirs[filepath.Base(path)] {
		return nil, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if p != path && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		// Symlinked directories are neither followed nor files.
		if d.Type()&fs.ModeSymlink != 0 {
			if target, err := os.Stat(p); err == nil && target.IsDir() {
				return nil
			}
		}

		if filter == nil || filter(o, filepath.Dir(p), d.Name()) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", path, err)
	}

	return files, nil
}
