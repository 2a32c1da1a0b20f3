package output

import (
	"encoding/json"
	"time"
)

// JSONFormatter formats reports as JSON.
type JSONFormatter struct{}

// jsonOutput is the JSON structure for output.
type jsonOutput struct {
	GeneratedAt string          `json:"generated_at"`
	Root        string          `json:"root"`
	Selectors   []string        `json:"selectors,omitempty"`
	TotalTests  int             `json:"total_tests"`
	Rejected    int             `json:"reftests_skipped,omitempty"`
	Directories []jsonDirectory `json:"directories"`
	Tests       []jsonTest      `json:"tests"`
	Stats       map[string]any  `json:"stats,omitempty"`
}

type jsonDirectory struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type jsonTest struct {
	Path      string `json:"path"`
	Directory string `json:"directory"`
	Extension string `json:"extension"`
}

// Format implements Formatter.
func (*JSONFormatter) Format(report *Report) ([]byte, error) {
	entries := report.Entries()
	output := jsonOutput{
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		Root:        report.Root,
		Selectors:   report.Selectors,
		TotalTests:  len(entries),
		Rejected:    report.Rejected,
		Directories: make([]jsonDirectory, 0),
		Tests:       make([]jsonTest, 0, len(entries)),
		Stats:       report.Stats,
	}

	for _, d := range report.CountByDirectory() {
		output.Directories = append(output.Directories, jsonDirectory{Name: d.Directory, Count: d.Count})
	}
	for _, e := range entries {
		output.Tests = append(output.Tests, jsonTest{
			Path:      e.Path,
			Directory: e.Directory,
			Extension: e.Extension,
		})
	}

	return json.MarshalIndent(output, "", "  ")
}
