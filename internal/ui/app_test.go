package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardomso/ltfind/internal/filesystem"
	"github.com/leonardomso/ltfind/internal/port"
)

func newTestPort() *port.Base {
	mock := filesystem.NewMock(map[string][]byte{
		"/LayoutTests/fast/a.html":          nil,
		"/LayoutTests/fast/a-expected.html": nil,
		"/LayoutTests/svg/b.svg":            nil,
		"/LayoutTests/http/c.php":           nil,
		"/LayoutTests/fast/resources/r.js":  nil,
	})
	return port.New("/LayoutTests", mock)
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindMarkup, KindOf(".html"))
	assert.Equal(t, KindMarkup, KindOf(".xhtmlmp"))
	assert.Equal(t, KindXML, KindOf(".svg"))
	assert.Equal(t, KindScript, KindOf(".pl"))
	assert.Equal(t, KindUnknown, KindOf(".txt"))
}

func TestKindFilter(t *testing.T) {
	t.Parallel()

	f := filterAll
	seen := map[string]bool{}
	for i := 0; i < kindFilterCount; i++ {
		seen[f.String()] = true
		f = f.Next()
	}
	assert.Equal(t, filterAll, f)
	assert.Len(t, seen, kindFilterCount)

	assert.True(t, filterAll.matches(KindUnknown))
	assert.True(t, filterXML.matches(KindXML))
	assert.False(t, filterXML.matches(KindMarkup))
}

func TestGatherTestsCmd(t *testing.T) {
	t.Parallel()

	msg := GatherTestsCmd(newTestPort(), nil, nil)()
	found, ok := msg.(TestsFoundMsg)
	require.True(t, ok)
	require.NoError(t, found.Err)
	assert.Equal(t, []string{
		"/LayoutTests/fast/a.html",
		"/LayoutTests/http/c.php",
		"/LayoutTests/svg/b.svg",
	}, found.Tests)
	assert.Equal(t, 1, found.Rejected)
}

func TestModel(t *testing.T) {
	t.Parallel()

	t.Run("ShowsResults", func(t *testing.T) {
		t.Parallel()
		p := newTestPort()
		m := New(p, []string{"fast", "svg"}, nil)
		assert.Contains(t, m.View(), "Gathering tests")

		updated, _ := m.Update(GatherTestsCmd(p, []string{"fast", "svg"}, nil)())
		m = updated.(Model)

		assert.Equal(t, stateResults, m.state)
		assert.Len(t, m.items, 2)
		view := m.View()
		assert.Contains(t, view, "2 test(s)")
		assert.Contains(t, view, "1 reftest(s) skipped")
		assert.Contains(t, view, "fast svg")
	})

	t.Run("KindFilterNarrowsList", func(t *testing.T) {
		t.Parallel()
		p := newTestPort()
		updated, _ := New(p, nil, nil).Update(GatherTestsCmd(p, nil, nil)())
		m := updated.(Model)

		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = updated.(Model)

		assert.Equal(t, filterMarkup, m.filter)
		assert.Len(t, m.filteredItems(), 1)
		assert.Len(t, m.list.Items(), 1)
	})

	t.Run("Error", func(t *testing.T) {
		t.Parallel()
		updated, _ := New(newTestPort(), nil, nil).Update(TestsFoundMsg{Err: errors.New("permission denied")})
		m := updated.(Model)
		assert.Contains(t, m.View(), "Error: permission denied")
	})

	t.Run("Quit", func(t *testing.T) {
		t.Parallel()
		updated, cmd := New(newTestPort(), nil, nil).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		m := updated.(Model)
		assert.True(t, m.quitting)
		require.NotNil(t, cmd)
		assert.Equal(t, "Goodbye!\n", m.View())
	})
}

func TestTestItem(t *testing.T) {
	t.Parallel()

	p := newTestPort()
	msg := GatherTestsCmd(p, []string{"svg"}, nil)().(TestsFoundMsg)
	m := New(p, []string{"svg"}, nil).handleTestsFound(msg)

	require.Len(t, m.items, 1)
	item := m.items[0]
	assert.Equal(t, "svg/b.svg", item.Title())
	assert.Equal(t, "svg/b.svg", item.FilterValue())
	assert.Equal(t, ".svg | svg", item.Description())
	assert.Equal(t, KindXML, item.Kind())
	assert.Contains(t, item.DetailView(), "/LayoutTests/svg/b.svg")
}
