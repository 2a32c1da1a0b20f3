package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leonardomso/ltfind/internal/logging"
)

// version is set by main.go via SetVersion.
var version = "dev"

// Persistent flag variables shared by all commands.
var (
	rootDir    string
	configPath string
	noConfig   bool
	verbose    bool
	logFormat  string
)

// logger is the process-wide logger, built before any command runs.
var logger = zap.NewNop()

// SetVersion sets the version string (called from main).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "ltfind",
	Short:   "Find the layout tests a test run would execute",
	Version: version,
	Long: `ltfind lists the layout test files under a LayoutTests directory.

Tests are files with one of the extensions .html, .shtml, .xml, .xhtml,
.xhtmlmp, .pl, .php and .svg. Directories named resources, script-tests,
.svn and _svn are never searched. Reftest reference files
(*-expected.html, *-expected-mismatch.html) are skipped with a warning.

Examples:
  ltfind find                        # All tests under ./LayoutTests
  ltfind find fast/dom 'svg/*'       # Narrow to paths and globs
  ltfind find --root ~/webkit/LayoutTests --format=json
  ltfind interactive fast            # Browse tests in a terminal UI`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		log, err := logging.New(logging.Options{Verbose: verbose, Encoding: logFormat})
		if err != nil {
			return err
		}
		logger = log
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "r", "",
		"Layout tests directory (default: config file, then ./LayoutTests, then .)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file to use instead of searching for .ltfindrc.yaml/.ltfindrc.toml")
	rootCmd.PersistentFlags().BoolVar(&noConfig, "no-config", false,
		"Skip loading the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", logging.EncodingConsole,
		"Log encoding: console or json")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1) //nolint:revive // deep-exit is acceptable for CLI entry points
	}
}
