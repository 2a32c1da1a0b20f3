package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/leonardomso/ltfind/internal/output"
	"github.com/leonardomso/ltfind/internal/stats"
	"github.com/leonardomso/ltfind/internal/testfiles"
)

// Flag variables for the find command.
var (
	outputFormat string
	outputFile   string
	showStats    bool
	countOnly    bool
	absolute     bool
)

var summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))

// findCmd represents the find command.
var findCmd = &cobra.Command{
	Use:   "find [path|glob]...",
	Short: "List layout test files",
	Long: `List the layout test files under the tests directory.

Arguments are paths relative to the tests directory. Any argument
containing '*' is expanded as a glob. Without arguments the paths from
the config file are used, or the whole directory if there are none.
Paths that don't exist are silently ignored.

Examples:
  ltfind find                          # Every test, one per line
  ltfind find fast/dom http/tests      # Only these directories
  ltfind find 'svg/*/text-*.svg'       # Glob (quote it for the shell)
  ltfind find --count                  # Number of tests only
  ltfind find --format=json            # JSON to stdout
  ltfind find --output=tests.yaml      # Write a YAML report
  ltfind find --stats                  # Timing statistics on stderr

Supported formats: text, json, yaml, toml, xml, markdown

Note: --format and --output are mutually exclusive.`,
	Run: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)

	findCmd.Flags().StringVarP(&outputFormat, "format", "f", "",
		"Output format for stdout: "+strings.Join(output.ValidFormats(), ", "))
	findCmd.Flags().StringVarP(&outputFile, "output", "o", "",
		"Write report to file (format inferred from extension: .txt, .json, .yaml, .toml, .xml, .md)")
	findCmd.Flags().BoolVar(&showStats, "stats", false,
		"Show gathering statistics on stderr")
	findCmd.Flags().BoolVarP(&countOnly, "count", "c", false,
		"Print only the number of tests found")
	findCmd.Flags().BoolVarP(&absolute, "absolute", "a", false,
		"Print absolute paths in text output")
}

// runFind is the main entry point for the find command.
func runFind(_ *cobra.Command, args []string) {
	perf := stats.New()
	exitOnError(validateFindFlags(), "Invalid flags")

	perf.StartLoad()
	cfg, p, err := setup(logger)
	exitOnError(err, "")
	perf.EndLoad()

	selectors := ResolveSelectors(args, cfg)

	perf.StartGather(len(selectors))
	finder := testfiles.New(p, testfiles.WithLogger(logger))
	tests, err := finder.Find(selectors)
	exitOnError(err, "Error gathering tests")
	perf.EndGather(finder.Walked(), len(tests), finder.Rejected())

	report := &output.Report{
		GeneratedAt: time.Now(),
		Root:        p.LayoutTestsDir(),
		Selectors:   selectors,
		Tests:       tests,
		Rejected:    finder.Rejected(),
	}

	// Reports written with --format or --output carry the statistics
	// gathered so far.
	if showStats && (outputFile != "" || outputFormat != "") {
		report.Stats = perf.ToJSON()
	}

	perf.StartWrite()
	exitOnError(writeReport(report), "")
	perf.EndWrite()

	if showStats {
		fmt.Fprint(os.Stderr, perf.String())
	}
}

// validateFindFlags checks for conflicting flag combinations.
func validateFindFlags() error {
	if outputFormat != "" && outputFile != "" {
		return errors.New("--format and --output are mutually exclusive")
	}
	if outputFormat != "" && !output.IsValidFormat(outputFormat) {
		return fmt.Errorf("unknown format %q (supported: %s)",
			outputFormat, strings.Join(output.ValidFormats(), ", "))
	}
	if countOnly && (outputFormat != "" || outputFile != "") {
		return errors.New("--count cannot be combined with --format or --output")
	}
	return nil
}

// writeReport routes the report to stdout or a file.
func writeReport(report *output.Report) error {
	switch {
	case countOnly:
		fmt.Println(len(report.Tests))
		return nil

	case outputFile != "":
		if err := output.WriteToFile(report, outputFile); err != nil {
			return fmt.Errorf("error writing file: %w", err)
		}
		fmt.Println(summaryStyle.Render(
			fmt.Sprintf("Wrote %d test(s) to %s", len(report.Tests), outputFile)))
		return nil

	case outputFormat != "":
		data, err := output.FormatReport(report, output.Format(strings.ToLower(outputFormat)))
		if err != nil {
			return fmt.Errorf("error formatting output: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err

	case absolute:
		for _, t := range report.Tests {
			fmt.Println(t)
		}
		return nil

	default:
		data, err := output.FormatReport(report, output.FormatText)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}
}
