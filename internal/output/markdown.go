package output

import (
	"fmt"
	"strings"
)

// MarkdownFormatter formats reports as Markdown.
type MarkdownFormatter struct{}

// Format implements Formatter.
func (*MarkdownFormatter) Format(report *Report) ([]byte, error) {
	entries := report.Entries()

	var b strings.Builder
	b.Grow(len(entries)*60 + 500)

	b.WriteString("# Layout Tests\n\n")
	fmt.Fprintf(&b, "**Generated:** %s  \n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Root:** `%s`  \n", report.Root)
	if len(report.Selectors) > 0 {
		quoted := make([]string, len(report.Selectors))
		for i, s := range report.Selectors {
			quoted[i] = "`" + s + "`"
		}
		fmt.Fprintf(&b, "**Selectors:** %s  \n", strings.Join(quoted, ", "))
	}
	fmt.Fprintf(&b, "**Total Tests:** %d\n\n", len(entries))

	if len(entries) == 0 {
		b.WriteString("No tests found.\n")
		return []byte(b.String()), nil
	}

	b.WriteString("## Summary\n\n")
	b.WriteString("| Directory | Tests |\n")
	b.WriteString("|-----------|-------|\n")
	for _, d := range report.CountByDirectory() {
		fmt.Fprintf(&b, "| %s | %d |\n", escapeMarkdown(d.Directory), d.Count)
	}
	if report.Rejected > 0 {
		fmt.Fprintf(&b, "\n_%d reftest file(s) skipped._\n", report.Rejected)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Tests (%d)\n\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "- `%s`\n", e.Path)
	}

	return []byte(b.String()), nil
}

// escapeMarkdown escapes characters that break Markdown tables.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
