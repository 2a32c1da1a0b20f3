package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/leonardomso/ltfind/internal/helpers"
	"github.com/leonardomso/ltfind/internal/output"
	"github.com/leonardomso/ltfind/internal/port"
)

// =============================================================================
// STATE MACHINE
// =============================================================================

type appState int

const (
	stateGathering appState = iota // Walking the tests directory
	stateResults                   // Showing results (list view)
)

// =============================================================================
// KIND FILTER
// =============================================================================

type kindFilter int

const (
	filterAll kindFilter = iota
	filterMarkup
	filterXML
	filterScript
)

const kindFilterCount = 4

func (f kindFilter) String() string {
	switch f {
	case filterAll:
		return "All"
	case filterMarkup:
		return "HTML"
	case filterXML:
		return "XML/SVG"
	case filterScript:
		return "PHP/Perl"
	default:
		return "Unknown"
	}
}

func (f kindFilter) Next() kindFilter {
	return (f + 1) % kindFilterCount
}

func (f kindFilter) matches(k Kind) bool {
	switch f {
	case filterMarkup:
		return k == KindMarkup
	case filterXML:
		return k == KindXML
	case filterScript:
		return k == KindScript
	default:
		return true
	}
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the main application model.
type Model struct {
	// State
	state    appState
	quitting bool
	err      error

	// Data
	report *output.Report
	items  []TestItem

	// Filter
	filter kindFilter

	// Components
	spinner spinner.Model
	list    list.Model
	help    help.Model
	keys    KeyMap

	// UI state
	width    int
	height   int
	showHelp bool

	// Config
	port  port.Port
	paths []string
	log   *zap.Logger
}

// New creates and returns a new Model that gathers the tests selected by
// paths under p.
func New(p port.Port, paths []string, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle()

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	delegate.Styles.SelectedTitle = SelectedStyle
	delegate.Styles.SelectedDesc = StatusStyle

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Layout Tests"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false) // We use our own help
	l.Styles.Title = TitleStyle

	return Model{
		state:   stateGathering,
		spinner: s,
		list:    l,
		help:    help.New(),
		keys:    DefaultKeyMap(),
		filter:  filterAll,
		port:    p,
		paths:   paths,
		log:     log,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, GatherTestsCmd(m.port, m.paths, m.log))
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and returns the updated model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Reserve space for header, summary, and detail panel
		listHeight := max(msg.Height-14, 5)
		m.list.SetSize(msg.Width, listHeight)
		return m, nil

	case spinner.TickMsg:
		if m.state != stateGathering {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case TestsFoundMsg:
		return m.handleTestsFound(msg), nil
	}

	if m.state == stateResults {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While typing a list filter every key belongs to the list
	if m.state == stateResults && m.list.FilterState() == list.Filtering && msg.String() != "ctrl+c" {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return m, nil
	}

	if m.state != stateResults {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Kind):
		m.filter = m.filter.Next()
		m.updateListItems()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.state = stateGathering
		m.err = nil
		return m, tea.Batch(m.spinner.Tick, GatherTestsCmd(m.port, m.paths, m.log))
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleTestsFound(msg TestsFoundMsg) Model {
	m.state = stateResults
	if msg.Err != nil {
		m.err = msg.Err
		return m
	}

	m.report = &output.Report{
		GeneratedAt: time.Now(),
		Root:        m.port.LayoutTestsDir(),
		Selectors:   m.paths,
		Tests:       msg.Tests,
		Rejected:    msg.Rejected,
	}
	m.items = TestsToItems(m.report)
	m.updateListItems()
	return m
}

// updateListItems updates the list with the tests matching the kind filter.
func (m *Model) updateListItems() {
	filtered := m.filteredItems()
	items := make([]list.Item, len(filtered))
	for i, it := range filtered {
		items[i] = it
	}
	m.list.SetItems(items)
}

func (m Model) filteredItems() []TestItem {
	var out []TestItem
	for _, it := range m.items {
		if m.filter.matches(it.Kind()) {
			out = append(out, it)
		}
	}
	return out
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var s string

	s += TitleStyle.Render("ltfind - Layout Test Locator")
	s += "\n\n"

	if m.err != nil {
		s += ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err))
		s += "\n"
		s += HelpStyle.Render("Press q to quit")
		return s
	}

	switch m.state {
	case stateGathering:
		s += m.spinner.View() + " Gathering tests under " + helpers.TruncatePath(m.port.LayoutTestsDir(), maxDetailWidth) + "..."
	case stateResults:
		s += m.renderResults()
	}

	if m.showHelp {
		s += "\n\n" + m.help.View(m.keys)
	} else {
		s += "\n\n" + m.renderShortHelp()
	}

	return s
}

func (m Model) renderResults() string {
	var s string

	s += fmt.Sprintf("Found %s under %s",
		SuccessStyle.Render(fmt.Sprintf("%d test(s)", len(m.items))),
		MutedStyle.Render(helpers.TruncatePath(m.report.Root, maxDetailWidth)))
	if m.report.Rejected > 0 {
		s += " " + WarningStyle.Render(fmt.Sprintf("(%d reftest(s) skipped)", m.report.Rejected))
	}
	s += "\n\n"

	if len(m.items) == 0 {
		s += WarningStyle.Render("No tests found.")
		return s
	}

	s += fmt.Sprintf("Selectors: %s\n",
		MutedStyle.Render(helpers.TruncateText(helpers.JoinSelectors(m.report.Selectors, "(all)"), maxDetailWidth)))
	s += fmt.Sprintf("Kind: %s (%d/%d)\n\n",
		SelectedStyle.Render(m.filter.String()),
		len(m.filteredItems()),
		len(m.items))

	s += m.list.View()

	if selected := m.list.SelectedItem(); selected != nil {
		if item, ok := selected.(TestItem); ok {
			s += "\n" + item.DetailView()
		}
	}

	return s
}

func (Model) renderShortHelp() string {
	return HelpStyle.Render("↑/↓ navigate • / search • tab kind • ? help • q quit")
}
