// Package port describes where the layout tests of a checkout live and which
// filesystem they are read from.
package port

import (
	"os"
	"path/filepath"

	"github.com/leonardomso/ltfind/internal/config"
	"github.com/leonardomso/ltfind/internal/filesystem"
)

// DefaultLayoutTestsDirName is the directory looked up in the working
// directory when nothing else names the test root.
const DefaultLayoutTestsDirName = "LayoutTests"

// Port is the platform collaborator of the test locator.
type Port interface {
	// LayoutTestsDir returns the absolute path of the layout tests root.
	LayoutTestsDir() string

	// FileSystem returns the filesystem the tests are read from.
	FileSystem() filesystem.FileSystem
}

// Base is a Port with a fixed tests directory.
type Base struct {
	fs  filesystem.FileSystem
	dir string
}

// New creates a Port rooted at dir. Relative directories are made absolute
// against the working directory when fs is the host filesystem.
func New(dir string, fs filesystem.FileSystem) *Base {
	if fs == nil {
		fs = filesystem.NewOS()
	}
	if _, ok := fs.(*filesystem.OS); ok {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
	}
	return &Base{dir: filepath.Clean(dir), fs: fs}
}

// LayoutTestsDir implements Port.
func (b *Base) LayoutTestsDir() string {
	return b.dir
}

// FileSystem implements Port.
func (b *Base) FileSystem() filesystem.FileSystem {
	return b.fs
}

// FromConfig builds a host-filesystem Port. The tests directory is taken from
// override when set, then from cfg, then ./LayoutTests if it exists, and
// finally the working directory.
func FromConfig(cfg *config.Config, override string) *Base {
	return New(ResolveDir(cfg, override), filesystem.NewOS())
}

// ResolveDir picks the layout tests directory following FromConfig's order.
func ResolveDir(cfg *config.Config, override string) string {
	if override != "" {
		return override
	}
	if cfg != nil && cfg.LayoutTestsDir != "" {
		return cfg.LayoutTestsDir
	}
	if info, err := os.Stat(DefaultLayoutTestsDirName); err == nil && info.IsDir() {
		return DefaultLayoutTestsDirName
	}
	return "."
}

var _ Port = (*Base)(nil)
