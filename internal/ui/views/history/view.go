package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	dueldto "mdrank/internal/modules/duel/dto"
	"mdrank/internal/ui/theme"
)

// Model renders the current session's comparison history, most recent
// entry first, in a scrollable viewport.
type Model struct {
	viewport viewport.Model
	entries  []dueldto.HistoryEntryOutput
	poolID   string
	width    int
	height   int
}

func New() Model {
	return Model{viewport: viewport.New(0, 0)}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.width
		m.viewport.Height = m.height - 2
		if m.viewport.Height < 1 {
			m.viewport.Height = 1
		}
		m.viewport.SetContent(m.renderEntries())
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	header := theme.Title.Render("History: "+m.poolID) +
		theme.Muted.Render(fmt.Sprintf("  %d comparisons", len(m.entries))) + "\n"
	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View())
}

// SetEntries replaces the rendered history. Entries arrive most recent
// first from the use-case layer.
func (m *Model) SetEntries(poolID string, entries []dueldto.HistoryEntryOutput) {
	m.poolID = poolID
	m.entries = entries
	m.viewport.SetContent(m.renderEntries())
	m.viewport.GotoTop()
}

func (m Model) renderEntries() string {
	if len(m.entries) == 0 {
		return theme.Muted.Render("No comparisons recorded yet.")
	}
	var sb strings.Builder
	for _, e := range m.entries {
		at := time.UnixMilli(e.At).UTC().Format("2006-01-02 15:04")
		sb.WriteString(theme.Muted.Render(at) + "  ")
		sb.WriteString(theme.Hot.Render(e.WinnerName))
		sb.WriteString(fmt.Sprintf(" %.0f→%.0f", e.WinnerBefore, e.WinnerAfter))
		sb.WriteString(theme.Muted.Render("  beat  "))
		sb.WriteString(e.LoserName)
		sb.WriteString(fmt.Sprintf(" %.0f→%.0f", e.LoserBefore, e.LoserAfter))
		sb.WriteString("\n")
	}
	return sb.String()
}
