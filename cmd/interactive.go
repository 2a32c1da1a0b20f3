package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leonardomso/ltfind/internal/ui"
)

// interactiveCmd represents the interactive command.
var interactiveCmd = &cobra.Command{
	Use:   "interactive [path|glob]...",
	Short: "Browse layout tests in a terminal UI",
	Long: `Launch an interactive terminal UI listing the layout tests.

Arguments select tests exactly like 'ltfind find'.

Controls:
  ↑/↓ or j/k    Navigate through tests
  /             Search by path
  tab           Cycle test kind (HTML, XML/SVG, PHP/Perl)
  ctrl+r        Gather again
  q             Quit`,
	Run: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(_ *cobra.Command, args []string) {
	cfg, p, err := setup(logger)
	exitOnError(err, "")

	// Log lines would corrupt the alternate screen; reftests are counted in the UI.
	m := ui.New(p, ResolveSelectors(args, cfg), zap.NewNop())

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running interactive mode: %v\n", err)
		os.Exit(1)
	}
}
