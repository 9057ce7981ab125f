package standings

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	dueldto "mdrank/internal/modules/duel/dto"
	"mdrank/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Standings(ctx context.Context, poolID string, limit int) ([]dueldto.StandingOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type RowsLoadedMsg struct {
	PoolID string
	Rows   []dueldto.StandingOutput
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type standingItem struct {
	row dueldto.StandingOutput
}

func (i standingItem) Title() string {
	return fmt.Sprintf("#%d  %s", i.row.Rank, i.row.DisplayName)
}

func (i standingItem) Description() string {
	desc := fmt.Sprintf("%.0f  %d games", i.row.Rating, i.row.Games)
	if i.row.Last != "" {
		desc += "  last " + i.row.Last
	}
	return desc
}

func (i standingItem) FilterValue() string { return i.row.DisplayName }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    Port
	list    list.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Standings"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, spinner: sp}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.height)

	case RowsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Standings — " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Standings: " + msg.PoolID
		items := make([]list.Item, len(msg.Rows))
		for i, row := range msg.Rows {
			items[i] = standingItem{row: row}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading standings…")
	}
	return m.list.View()
}

// Reload fetches the standings for the given pool.
func (m *Model) Reload(poolID string) tea.Cmd {
	m.loading = true
	return tea.Batch(m.loadCmd(poolID), m.spinner.Tick)
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) loadCmd(poolID string) tea.Cmd {
	return func() tea.Msg {
		rows, err := m.port.Standings(context.Background(), poolID, 0)
		return RowsLoadedMsg{PoolID: poolID, Rows: rows, Err: err}
	}
}
