package testfiles

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/leonardomso/ltfind/internal/filesystem"
	"github.com/leonardomso/ltfind/internal/port"
)

const testRoot = "/LayoutTests"

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func newMockPort(files ...string) (*port.Base, *filesystem.Mock) {
	contents := make(map[string][]byte, len(files))
	for _, f := range files {
		contents[testRoot+"/"+f] = []byte("<html></html>")
	}
	mock := filesystem.NewMock(contents)
	return port.New(testRoot, mock), mock
}

func scenarioPort() *port.Base {
	p, _ := newMockPort(
		"a/test.html",
		"a/resources/helper.html",
		"a/test-expected.html",
		"a/test.txt",
	)
	return p
}

func TestIsTestFile(t *testing.T) {
	t.Parallel()
	fsys := filesystem.NewMock(nil)

	tests := []struct {
		name     string
		filename string
		expected bool
		warns    bool
	}{
		{name: "HTML", filename: "test.html", expected: true},
		{name: "SHTML", filename: "test.shtml", expected: true},
		{name: "XML", filename: "test.xml", expected: true},
		{name: "XHTML", filename: "test.xhtml", expected: true},
		{name: "XHTMLMP", filename: "test.xhtmlmp", expected: true},
		{name: "Perl", filename: "test.pl", expected: true},
		{name: "PHP", filename: "test.php", expected: true},
		{name: "SVG", filename: "test.svg", expected: true},
		{name: "MultipleDots", filename: "css.border.radius.html", expected: true},
		{name: "ExpectedText", filename: "test-expected.txt", expected: false},
		{name: "ExpectedPNG", filename: "test-expected.png", expected: false},
		{name: "Text", filename: "test.txt", expected: false},
		{name: "JavaScript", filename: "test.js", expected: false},
		{name: "UpperCaseExtension", filename: "TEST.HTML", expected: false},
		{name: "NoExtension", filename: "Makefile", expected: false},
		{name: "DotfileOnly", filename: ".html", expected: false},
		{name: "Reftest", filename: "test-expected.html", expected: false, warns: true},
		{name: "MismatchReftest", filename: "test-expected-mismatch.html", expected: false, warns: true},
		{name: "ExpectedSVGIsATest", filename: "test-expected.svg", expected: true},
		{name: "ExpectedInMiddle", filename: "test-expected.html.php", expected: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			log, logs := newObservedLogger()

			got := IsTestFile(log, fsys, testRoot+"/fast", tt.filename)
			assert.Equal(t, tt.expected, got)

			warnings := logs.FilterLevelExact(zapcore.WarnLevel)
			if tt.warns {
				require.Equal(t, 1, warnings.Len())
				assert.Equal(t, testRoot+"/fast/"+tt.filename,
					warnings.All()[0].ContextMap()["path"])
			} else {
				assert.Zero(t, warnings.Len())
			}
		})
	}

	t.Run("NilLogger", func(t *testing.T) {
		t.Parallel()
		assert.False(t, IsTestFile(nil, fsys, testRoot, "a-expected.html"))
		assert.True(t, IsTestFile(nil, fsys, testRoot, "a.html"))
	})
}

func TestHasSupportedExtension(t *testing.T) {
	t.Parallel()
	fsys := filesystem.NewOS()

	for ext := range SupportedExtensions {
		assert.True(t, HasSupportedExtension(fsys, "file"+ext), ext)
	}
	assert.False(t, HasSupportedExtension(fsys, "file.htm"))
	assert.False(t, HasSupportedExtension(fsys, "file.Html"))
}

func TestIsReferenceFile(t *testing.T) {
	t.Parallel()
	assert.True(t, IsReferenceFile("a-expected.html"))
	assert.True(t, IsReferenceFile("a-expected-mismatch.html"))
	assert.False(t, IsReferenceFile("a-expected.xhtml"))
	assert.False(t, IsReferenceFile("expected.html"))
}

func TestFind(t *testing.T) {
	t.Parallel()

	t.Run("NoPathsSearchesRoot", func(t *testing.T) {
		t.Parallel()
		log, logs := newObservedLogger()

		tests, err := Find(scenarioPort(), nil, WithLogger(log))
		require.NoError(t, err)
		assert.Equal(t, []string{testRoot + "/a/test.html"}, tests)

		// The reference file produced a warning, the resources dir did not
		assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
		assert.NotZero(t, logs.FilterMessage("gathering tests").Len())
		assert.NotZero(t, logs.FilterMessage("test gathering finished").Len())
	})

	t.Run("GlobAppliesPredicate", func(t *testing.T) {
		t.Parallel()
		tests, err := Find(scenarioPort(), []string{"a/*.html"})
		require.NoError(t, err)
		assert.Equal(t, []string{testRoot + "/a/test.html"}, tests)
	})

	t.Run("NoPathsEqualsRootPath", func(t *testing.T) {
		t.Parallel()
		p := scenarioPort()

		withoutPaths, err := Find(p, nil)
		require.NoError(t, err)
		withRoot, err := Find(p, []string{""})
		require.NoError(t, err)
		withDot, err := Find(p, []string{"."})
		require.NoError(t, err)

		assert.Equal(t, withoutPaths, withRoot)
		assert.Equal(t, withoutPaths, withDot)
	})

	t.Run("OverlappingSelectorsDeduplicate", func(t *testing.T) {
		t.Parallel()
		p, _ := newMockPort("fast/a.html", "fast/b.svg", "svg/c.svg")

		tests, err := Find(p, []string{"fast", "fast/*.html", "fast/a.html", "*"})
		require.NoError(t, err)
		assert.Equal(t, []string{
			testRoot + "/fast/a.html",
			testRoot + "/fast/b.svg",
			testRoot + "/svg/c.svg",
		}, tests)
	})

	t.Run("SkipsDirectoriesAtAnyDepth", func(t *testing.T) {
		t.Parallel()
		p, _ := newMockPort(
			"fast/test.html",
			"fast/resources/r.html",
			"fast/deep/er/resources/r.html",
			"fast/script-tests/s.html",
			"fast/.svn/text-base/t.html",
			"fast/_svn/t.html",
			"resources/top.html",
			"fast/resources-not/kept.html",
			"fast/my-resources/kept.html",
		)

		tests, err := Find(p, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{
			testRoot + "/fast/my-resources/kept.html",
			testRoot + "/fast/resources-not/kept.html",
			testRoot + "/fast/test.html",
		}, tests)
	})

	t.Run("SelectorNamingSkippedDirectory", func(t *testing.T) {
		t.Parallel()
		p, _ := newMockPort("fast/resources/r.html", "fast/t.html")

		tests, err := Find(p, []string{"fast/resources"})
		require.NoError(t, err)
		assert.Empty(t, tests)

		tests, err = Find(p, []string{"fast/*"})
		require.NoError(t, err)
		assert.Equal(t, []string{testRoot + "/fast/t.html"}, tests)
	})

	t.Run("NonexistentPath", func(t *testing.T) {
		t.Parallel()
		tests, err := Find(scenarioPort(), []string{"does/not/exist"})
		require.NoError(t, err)
		assert.Empty(t, tests)
	})

	t.Run("GlobWithNoMatches", func(t *testing.T) {
		t.Parallel()
		tests, err := Find(scenarioPort(), []string{"zzz*"})
		require.NoError(t, err)
		assert.Empty(t, tests)
	})

	t.Run("SingleFileSelector", func(t *testing.T) {
		t.Parallel()
		tests, err := Find(scenarioPort(), []string{"a/test.html", "a/test.txt"})
		require.NoError(t, err)
		assert.Equal(t, []string{testRoot + "/a/test.html"}, tests)
	})

	t.Run("AbsoluteSelectorUsedAsGiven", func(t *testing.T) {
		t.Parallel()
		tests, err := Find(scenarioPort(), []string{testRoot + "/a"})
		require.NoError(t, err)
		assert.Equal(t, []string{testRoot + "/a/test.html"}, tests)
	})

	t.Run("PropagatesFilesystemErrors", func(t *testing.T) {
		t.Parallel()
		p, mock := newMockPort("a/test.html")
		mock.Errors[testRoot+"/a"] = fs.ErrPermission

		tests, err := Find(p, []string{"a"})
		assert.ErrorIs(t, err, fs.ErrPermission)
		assert.Nil(t, tests)
	})
}

func TestFinder_Rejected(t *testing.T) {
	t.Parallel()
	p, _ := newMockPort("a/one-expected.html", "a/two-expected-mismatch.html", "a/t.html")
	f := New(p)

	_, err := f.Find(nil)
	require.NoError(t, err)
	assert.Equal(t, 2, f.Rejected())
	assert.Equal(t, 1, f.Walked())

	_, err = f.Find([]string{"a/t.html", "a/*-mismatch.html", "missing"})
	require.NoError(t, err)
	assert.Equal(t, 1, f.Rejected())
	assert.Equal(t, 3, f.Walked())
}

func TestFinder_CandidatePaths(t *testing.T) {
	t.Parallel()
	p, _ := newMockPort("fast/a.html", "fast/b.html", "svg/c.svg")
	f := New(p)

	t.Run("Empty", func(t *testing.T) {
		t.Parallel()
		got, err := f.CandidatePaths(nil)
		require.NoError(t, err)
		assert.Equal(t, []string{testRoot}, got)
	})

	t.Run("LiteralKeptEvenIfMissing", func(t *testing.T) {
		t.Parallel()
		got, err := f.CandidatePaths([]string{"missing", "fast"})
		require.NoError(t, err)
		assert.Equal(t, []string{testRoot + "/fast", testRoot + "/missing"}, got)
	})

	t.Run("GlobExpanded", func(t *testing.T) {
		t.Parallel()
		got, err := f.CandidatePaths([]string{"fast/*.html", "fast/a.html"})
		require.NoError(t, err)
		assert.Equal(t, []string{testRoot + "/fast/a.html", testRoot + "/fast/b.html"}, got)
	})
}

func TestFind_OS(t *testing.T) {
	t.Parallel()

	writeTree := func(t *testing.T, root string, files ...string) {
		t.Helper()
		for _, f := range files {
			p := filepath.Join(root, filepath.FromSlash(f))
			require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
			require.NoError(t, os.WriteFile(p, []byte("<html></html>"), 0o644))
		}
	}

	t.Run("Scenario", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		writeTree(t, root, "a/test.html", "a/resources/helper.html", "a/test-expected.html", "a/test.txt")
		p := port.New(root, filesystem.NewOS())

		tests, err := Find(p, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "a", "test.html")}, tests)

		tests, err = Find(p, []string{"a/*.html"})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "a", "test.html")}, tests)
	})

	t.Run("SkippedDirectoriesDeep", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		writeTree(t, root,
			"x/y/z/script-tests/a.html",
			"x/y/.svn/b.html",
			"x/_svn/c.html",
			"x/y/z/ok.svg",
		)
		p := port.New(root, filesystem.NewOS())

		tests, err := Find(p, []string{"x"})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "x", "y", "z", "ok.svg")}, tests)
	})

	t.Run("Overlap", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		writeTree(t, root, "fast/a.html", "fast/b.php")
		p := port.New(root, filesystem.NewOS())

		tests, err := Find(p, []string{"fast/*", "fast", "fast/a.html"})
		require.NoError(t, err)
		assert.Len(t, tests, 2)
	})

	t.Run("PermissionDenied", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("permissions are not enforced for root")
		}
		t.Parallel()
		root := t.TempDir()
		writeTree(t, root, "locked/inner/a.html")
		locked := filepath.Join(root, "locked", "inner")
		require.NoError(t, os.Chmod(locked, 0o000))
		t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

		_, err := Find(port.New(root, filesystem.NewOS()), nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, fs.ErrPermission))
	})
}
