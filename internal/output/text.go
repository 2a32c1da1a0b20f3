package output

import "strings"

// TextFormatter writes one test path per line, relative to the root.
type TextFormatter struct{}

// Format implements Formatter.
func (*TextFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder
	for _, e := range report.Entries() {
		b.WriteString(e.Path)
		b.WriteByte('\n')
	}
	return []byte(b.String()), nil
}
