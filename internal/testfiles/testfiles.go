// Package testfiles finds the layout test files under a port's tests
// directory, optionally narrowed to a list of paths or glob patterns.
package testfiles

import (
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/leonardomso/ltfind/internal/filesystem"
	"github.com/leonardomso/ltfind/internal/logging"
	"github.com/leonardomso/ltfind/internal/port"
)

// SupportedExtensions are the extensions of files collected as tests.
var SupportedExtensions = map[string]bool{
	".html":    true,
	".shtml":   true,
	".xml":     true,
	".xhtml":   true,
	".xhtmlmp": true,
	".pl":      true,
	".php":     true,
	".svg":     true,
}

// SkippedDirectories are never descended into, at any depth.
var SkippedDirectories = map[string]bool{
	".svn":         true,
	"_svn":         true,
	"resources":    true,
	"script-tests": true,
}

// Reference files compared against by reftests.
var referenceSuffixes = []string{"-expected.html", "-expected-mismatch.html"}

// Finder gathers test files for a port.
type Finder struct {
	port port.Port
	log  *zap.Logger

	// Counters for the last Find.
	walked   int
	rejected int
}

// Option configures a Finder.
type Option func(*Finder)

// WithLogger sets the logger for debug and warning output.
func WithLogger(log *zap.Logger) Option {
	return func(f *Finder) {
		if log != nil {
			f.log = log
		}
	}
}

// New creates a Finder for p. Without WithLogger nothing is logged.
func New(p port.Port, opts ...Option) *Finder {
	f := &Finder{port: p, log: zap.NewNop()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Find is a shorthand for New(p, opts...).Find(paths).
func Find(p port.Port, paths []string, opts ...Option) ([]string, error) {
	return New(p, opts...).Find(paths)
}

// Find returns the sorted, deduplicated test files under the port's layout
// tests directory. paths are relative to that directory and may be glob
// patterns (any path containing '*'); with no paths the whole directory is
// searched. Paths that don't exist contribute nothing.
func (f *Finder) Find(paths []string) ([]string, error) {
	start := time.Now()
	root := f.port.LayoutTestsDir()
	f.walked, f.rejected = 0, 0

	candidates, err := f.CandidatePaths(paths)
	if err != nil {
		return nil, err
	}
	f.walked = len(candidates)

	fsys := f.port.FileSystem()
	seen := map[string]bool{}
	for _, c := range candidates {
		files, err := fsys.FilesUnder(c, SkippedDirectories, f.isTestFile)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			seen[file] = true
		}
	}

	tests := make([]string, 0, len(seen))
	for file := range seen {
		tests = append(tests, file)
	}
	sort.Strings(tests)

	f.log.Debug("test gathering finished",
		zap.String(logging.Root, root),
		zap.Int(logging.Candidates, len(candidates)),
		zap.Int(logging.Tests, len(tests)),
		zap.Duration(logging.Elapsed, time.Since(start)))

	return tests, nil
}

// CandidatePaths returns the sorted set of paths Find walks: the tests
// directory itself when paths is empty, otherwise each path joined onto it
// with glob patterns expanded. Absolute paths are used as given.
func (f *Finder) CandidatePaths(paths []string) ([]string, error) {
	root := f.port.LayoutTestsDir()
	fsys := f.port.FileSystem()

	if len(paths) == 0 {
		f.log.Debug("gathering tests", zap.String(logging.Root, root))
		return []string{root}, nil
	}

	f.log.Debug("gathering tests",
		zap.Strings(logging.Paths, paths),
		zap.String(logging.Root, root))

	set := map[string]bool{}
	for _, p := range paths {
		joined := p
		if !filepath.IsAbs(p) {
			joined = fsys.Join(root, p)
		}
		if !strings.Contains(joined, "*") {
			set[joined] = true
			continue
		}
		matches, err := fsys.Glob(joined)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			set[m] = true
		}
	}

	candidates := make([]string, 0, len(set))
	for c := range set {
		candidates = append(candidates, c)
	}
	sort.Strings(candidates)
	return candidates, nil
}

// Walked returns how many candidate paths the last Find walked.
func (f *Finder) Walked() int {
	return f.walked
}

// Rejected returns how many reference files the last Find skipped.
func (f *Finder) Rejected() int {
	return f.rejected
}

func (f *Finder) isTestFile(fsys filesystem.FileSystem, dirname, filename string) bool {
	if !HasSupportedExtension(fsys, filename) {
		return false
	}
	if IsReferenceFile(filename) {
		f.rejected++
		f.log.Warn("reftests are not supported - ignoring",
			zap.String(logging.Path, fsys.Join(dirname, filename)))
		return false
	}
	return true
}

// IsTestFile reports whether filename, found in dirname, is a layout test.
// Reference files are rejected with a warning on log.
func IsTestFile(log *zap.Logger, fsys filesystem.FileSystem, dirname, filename string) bool {
	f := &Finder{log: log}
	if log == nil {
		f.log = zap.NewNop()
	}
	return f.isTestFile(fsys, dirname, filename)
}

// HasSupportedExtension reports whether filename has one of
// SupportedExtensions. The comparison is case-sensitive.
func HasSupportedExtension(fsys filesystem.FileSystem, filename string) bool {
	_, ext := fsys.Splitext(filename)
	return SupportedExtensions[ext]
}

// IsReferenceFile reports whether filename is the expected output of a
// reftest.
func IsReferenceFile(filename string) bool {
	for _, suffix := range referenceSuffixes {
		if strings.HasSuffix(filename, suffix) {
			return true
		}
	}
	return false
}
