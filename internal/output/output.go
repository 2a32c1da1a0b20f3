// Package output provides formatting and file writing for test listings.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/leonardomso/ltfind/internal/filesystem"
)

// Format represents an output format type.
type Format string

const (
	// FormatText outputs one path per line.
	FormatText Format = "text"
	// FormatJSON outputs as JSON.
	FormatJSON Format = "json"
	// FormatYAML outputs as YAML.
	FormatYAML Format = "yaml"
	// FormatTOML outputs as TOML.
	FormatTOML Format = "toml"
	// FormatXML outputs as generic XML.
	FormatXML Format = "xml"
	// FormatMarkdown outputs as a Markdown report.
	FormatMarkdown Format = "markdown"
)

// ValidFormats returns all valid format strings.
func ValidFormats() []string {
	return []string{
		string(FormatText),
		string(FormatJSON),
		string(FormatYAML),
		string(FormatTOML),
		string(FormatXML),
		string(FormatMarkdown),
	}
}

// IsValidFormat checks if a format string is valid.
func IsValidFormat(s string) bool {
	switch Format(strings.ToLower(s)) {
	case FormatText, FormatJSON, FormatYAML, FormatTOML, FormatXML, FormatMarkdown:
		return true
	default:
		return false
	}
}

// Report contains all data needed for output formatting.
type Report struct {
	GeneratedAt time.Time
	Root        string
	Selectors   []string
	Tests       []string // absolute paths
	Rejected    int      // reftests skipped

	// Stats holds gathering statistics, emitted by the structured formats
	// when set.
	Stats map[string]any
}

// Entry is a single test as shown in reports.
type Entry struct {
	Path      string // relative to the report root, slash separated
	Directory string // first path element, "." for tests at the root
	Extension string
}

// Entries returns the tests relative to the report root, in report order.
func (r *Report) Entries() []Entry {
	entries := make([]Entry, len(r.Tests))
	for i, t := range r.Tests {
		rel := r.Relative(t)
		dir := "."
		if j := strings.IndexByte(rel, '/'); j > 0 {
			dir = rel[:j]
		}
		_, ext := filesystem.Splitext(rel)
		entries[i] = Entry{Path: rel, Directory: dir, Extension: ext}
	}
	return entries
}

// Relative returns path relative to the report root. Paths outside the root
// are returned unchanged.
func (r *Report) Relative(path string) string {
	if r.Root == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(r.Root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// DirectoryCount is the number of tests under a top-level directory.
type DirectoryCount struct {
	Directory string
	Count     int
}

// CountByDirectory returns test counts per top-level directory, sorted by
// directory name.
func (r *Report) CountByDirectory() []DirectoryCount {
	counts := map[string]int{}
	for _, e := range r.Entries() {
		counts[e.Directory]++
	}

	result := make([]DirectoryCount, 0, len(counts))
	for dir, n := range counts {
		result = append(result, DirectoryCount{Directory: dir, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Directory < result[j].Directory
	})
	return result
}

// Formatter is the interface that output formatters implement.
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// GetFormatter returns the appropriate formatter for a format.
func GetFormatter(format Format) (Formatter, error) {
	switch format {
	case FormatText:
		return &TextFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	case FormatTOML:
		return &TOMLFormatter{}, nil
	case FormatXML:
		return &XMLFormatter{}, nil
	case FormatMarkdown:
		return &MarkdownFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// FormatReport formats a report using the specified format.
func FormatReport(report *Report, format Format) ([]byte, error) {
	formatter, err := GetFormatter(format)
	if err != nil {
		return nil, err
	}
	return formatter.Format(report)
}

// InferFormat determines the output format from a filename extension.
func InferFormat(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".list":
		return FormatText, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".xml":
		return FormatXML, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf(
			"cannot infer format from extension %q (supported: .txt, .list, .json, .yaml, .yml, .toml, .xml, .md, .markdown)",
			ext,
		)
	}
}

// WriteToFile writes a formatted report to a file.
func WriteToFile(report *Report, filename string) error {
	format, err := InferFormat(filename)
	if err != nil {
		return err
	}

	data, err := FormatReport(report, format)
	if err != nil {
		return fmt.Errorf("formatting report: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o600); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return nil
}
