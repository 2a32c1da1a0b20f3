package output

import (
	"time"

	"github.com/pelletier/go-toml/v2"
)

// TOMLFormatter formats reports as TOML.
type TOMLFormatter struct{}

// tomlOutput is the TOML structure for output. Scalars come first so they
// stay at the top level of the document.
type tomlOutput struct {
	GeneratedAt string          `toml:"generated_at"`
	Root        string          `toml:"root"`
	Selectors   []string        `toml:"selectors,omitempty"`
	TotalTests  int             `toml:"total_tests"`
	Rejected    int             `toml:"reftests_skipped,omitempty"`
	Tests       []string        `toml:"tests"`
	Directories []tomlDirectory `toml:"directories"`
	Stats       map[string]any  `toml:"stats,omitempty"`
}

type tomlDirectory struct {
	Name  string `toml:"name"`
	Count int    `toml:"count"`
}

// Format implements Formatter.
func (*TOMLFormatter) Format(report *Report) ([]byte, error) {
	entries := report.Entries()
	output := tomlOutput{
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		Root:        report.Root,
		Selectors:   report.Selectors,
		TotalTests:  len(entries),
		Rejected:    report.Rejected,
		Tests:       make([]string, 0, len(entries)),
		Stats:       report.Stats,
	}

	for _, d := range report.CountByDirectory() {
		output.Directories = append(output.Directories, tomlDirectory{Name: d.Directory, Count: d.Count})
	}
	for _, e := range entries {
		output.Tests = append(output.Tests, e.Path)
	}

	return toml.Marshal(output)
}
