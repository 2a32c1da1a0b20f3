package output

import (
	"encoding/xml"
	"time"
)

// XMLFormatter formats reports as generic XML.
type XMLFormatter struct{}

// xmlOutput is the XML structure for output.
type xmlOutput struct {
	XMLName     xml.Name       `xml:"tests"`
	GeneratedAt string         `xml:"generated_at,attr"`
	Root        string         `xml:"root,attr"`
	TotalTests  int            `xml:"total,attr"`
	Rejected    int            `xml:"reftests_skipped,attr,omitempty"`
	Selectors   *xmlSelectors  `xml:"selectors,omitempty"`
	Directories xmlDirectories `xml:"directories"`
	Tests       []xmlTest      `xml:"test"`
}

type xmlSelectors struct {
	Items []string `xml:"selector"`
}

type xmlDirectories struct {
	Items []xmlDirectory `xml:"directory"`
}

type xmlDirectory struct {
	Name  string `xml:"name,attr"`
	Count int    `xml:"count,attr"`
}

type xmlTest struct {
	Directory string `xml:"directory,attr"`
	Extension string `xml:"extension,attr"`
	Path      string `xml:",chardata"`
}

// Format implements Formatter.
func (*XMLFormatter) Format(report *Report) ([]byte, error) {
	entries := report.Entries()
	output := xmlOutput{
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		Root:        report.Root,
		TotalTests:  len(entries),
		Rejected:    report.Rejected,
		Tests:       make([]xmlTest, 0, len(entries)),
	}

	if len(report.Selectors) > 0 {
		output.Selectors = &xmlSelectors{Items: report.Selectors}
	}
	for _, d := range report.CountByDirectory() {
		output.Directories.Items = append(output.Directories.Items, xmlDirectory{Name: d.Directory, Count: d.Count})
	}
	for _, e := range entries {
		output.Tests = append(output.Tests, xmlTest{
			Directory: e.Directory,
			Extension: e.Extension,
			Path:      e.Path,
		})
	}

	data, err := xml.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, err
	}

	return append([]byte(xml.Header), data...), nil
}
