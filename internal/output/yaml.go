package output

import (
	"time"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats reports as YAML.
type YAMLFormatter struct{}

// yamlOutput is the YAML structure for output.
type yamlOutput struct {
	GeneratedAt string          `yaml:"generated_at"`
	Root        string          `yaml:"root"`
	Selectors   []string        `yaml:"selectors,omitempty"`
	Directories []yamlDirectory `yaml:"directories"`
	Tests       []string        `yaml:"tests"`
	TotalTests  int             `yaml:"total_tests"`
	Rejected    int             `yaml:"reftests_skipped,omitempty"`
	Stats       map[string]any  `yaml:"stats,omitempty"`
}

type yamlDirectory struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// Format implements Formatter.
func (*YAMLFormatter) Format(report *Report) ([]byte, error) {
	entries := report.Entries()
	output := yamlOutput{
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		Root:        report.Root,
		Selectors:   report.Selectors,
		Directories: make([]yamlDirectory, 0),
		Tests:       make([]string, 0, len(entries)),
		TotalTests:  len(entries),
		Rejected:    report.Rejected,
		Stats:       report.Stats,
	}

	for _, d := range report.CountByDirectory() {
		output.Directories = append(output.Directories, yamlDirectory{Name: d.Directory, Count: d.Count})
	}
	for _, e := range entries {
		output.Tests = append(output.Tests, e.Path)
	}

	return yaml.Marshal(output)
}
