package pools

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	rosterdto "mdrank/internal/modules/roster/dto"
	"mdrank/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	ListPools(ctx context.Context) ([]rosterdto.PoolOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type PoolsLoadedMsg struct {
	Pools []rosterdto.PoolOutput
	Err   error
}

// SwitchMsg asks the app model to switch the active pool.
type SwitchMsg struct {
	PoolID string
}

// ─── list item ───────────────────────────────────────────────────────────────

type poolItem struct {
	pool rosterdto.PoolOutput
}

func (i poolItem) Title() string { return i.pool.Name }

func (i poolItem) Description() string {
	return fmt.Sprintf("%s  %d items", i.pool.Folder, i.pool.ItemCount)
}

func (i poolItem) FilterValue() string { return i.pool.Name }

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
	l.Title = "Pools"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadPoolsCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.height)

	case PoolsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Pools — " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Pools))
		for i, pool := range msg.Pools {
			items[i] = poolItem{pool: pool}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if !m.loading && msg.String() == "enter" && !m.Filtering() {
			if item, ok := m.list.SelectedItem().(poolItem); ok {
				id := item.pool.ID
				return m, func() tea.Msg { return SwitchMsg{PoolID: id} }
			}
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
			m.spinner.View()+" Loading pools…")
	}
	return m.list.View()
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// SelectedPoolID returns the current selection's pool ID, if any.
func (m Model) SelectedPoolID() (string, bool) {
	if item, ok := m.list.SelectedItem().(poolItem); ok {
		return item.pool.ID, true
	}
	return "", false
}

func (m Model) loadPoolsCmd() tea.Cmd {
	return func() tea.Msg {
		pools, err := m.port.ListPools(context.Background())
		return PoolsLoadedMsg{Pools: pools, Err: err}
	}
}
