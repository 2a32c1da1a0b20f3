package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/leonardomso/ltfind/internal/port"
	"github.com/leonardomso/ltfind/internal/testfiles"
)

// GatherTestsCmd returns a command that finds the tests selected by paths.
func GatherTestsCmd(p port.Port, paths []string, log *zap.Logger) tea.Cmd {
	return func() tea.Msg {
		f := testfiles.New(p, testfiles.WithLogger(log))
		tests, err := f.Find(paths)
		return TestsFoundMsg{Tests: tests, Err: err, Rejected: f.Rejected()}
	}
}
