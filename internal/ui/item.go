package ui

import (
	"fmt"
	"strings"

	"github.com/leonardomso/ltfind/internal/helpers"
	"github.com/leonardomso/ltfind/internal/output"
)

// maxDetailWidth bounds path lengths in the detail panel.
const maxDetailWidth = 64

// Kind groups test extensions for filtering.
type Kind int

// Test kinds.
const (
	KindUnknown Kind = iota
	KindMarkup       // .html .shtml .xhtml .xhtmlmp
	KindXML          // .xml .svg
	KindScript       // .pl .php, served through the HTTP server
)

// KindOf returns the kind of a test from its extension.
func KindOf(ext string) Kind {
	switch ext {
	case ".html", ".shtml", ".xhtml", ".xhtmlmp":
		return KindMarkup
	case ".xml", ".svg":
		return KindXML
	case ".pl", ".php":
		return KindScript
	default:
		return KindUnknown
	}
}

// TestItem wraps an output.Entry to implement list.Item interface.
type TestItem struct {
	Entry    output.Entry
	Absolute string
}

// FilterValue returns the string used for filtering.
// Implements list.Item interface.
func (i TestItem) FilterValue() string {
	return i.Entry.Path
}

// Title returns the main display text for the item.
// Implements list.DefaultItem interface.
func (i TestItem) Title() string {
	return i.Entry.Path
}

// Description returns secondary text for the item.
// Implements list.DefaultItem interface.
func (i TestItem) Description() string {
	return fmt.Sprintf("%s | %s", i.Entry.Extension, i.Entry.Directory)
}

// Kind returns the kind of the test.
func (i TestItem) Kind() Kind {
	return KindOf(i.Entry.Extension)
}

// DetailView returns an expanded detail view for the selected item.
func (i TestItem) DetailView() string {
	var b strings.Builder

	b.WriteString("┌─ Details ─────────────────────────────────────────────────────────────\n")
	fmt.Fprintf(&b, "│ %s  %s\n", DetailLabelStyle.Render("Kind:"), KindBadge(i.Kind()))
	fmt.Fprintf(&b, "│ %s  %s\n", DetailLabelStyle.Render("Directory:"), i.Entry.Directory)
	fmt.Fprintf(&b, "│ %s  %s\n", DetailLabelStyle.Render("Path:"), i.Entry.Path)
	if i.Absolute != "" {
		fmt.Fprintf(&b, "│ %s  %s\n", DetailLabelStyle.Render("File:"), helpers.TruncatePath(i.Absolute, maxDetailWidth))
	}
	b.WriteString("└────────────────────────────────────────────────────────────────────────\n")

	return b.String()
}

// TestsToItems converts a report's tests to TestItems.
func TestsToItems(report *output.Report) []TestItem {
	entries := report.Entries()
	items := make([]TestItem, len(entries))
	for i, e := range entries {
		items[i] = TestItem{Entry: e, Absolute: report.Tests[i]}
	}
	return items
}
