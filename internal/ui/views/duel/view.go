package duel

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	dueldto "mdrank/internal/modules/duel/dto"
	previewdto "mdrank/internal/modules/preview/dto"
	"mdrank/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port loads note previews for the two contenders on screen.
type Port interface {
	Load(ctx context.Context, poolID, itemID string, page int) (previewdto.DocumentOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// PreviewLoadedMsg carries one side's rendered preview. Gen guards against
// a slow load landing after the pair has already moved on.
type PreviewLoadedMsg struct {
	Side int
	Gen  int
	Doc  previewdto.DocumentOutput
	Err  error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the Bubble Tea model for the Duel tab: two side-by-side panes
// showing the current pair, each rendered through glamour.
type Model struct {
	port     Port
	poolID   string
	pair     dueldto.PairOutput
	hasPair  bool
	panes    [2]viewport.Model
	loaded   [2]bool
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	gen      int
	loading  bool
	width    int
	height   int
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)

	return Model{
		port:     port,
		panes:    [2]viewport.Model{viewport.New(0, 0), viewport.New(0, 0)},
		spinner:  sp,
		renderer: r,
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case PreviewLoadedMsg:
		if msg.Gen != m.gen || msg.Side < 0 || msg.Side > 1 {
			return m, nil
		}
		m.loaded[msg.Side] = true
		if m.loaded[0] && m.loaded[1] {
			m.loading = false
		}
		if msg.Err != nil {
			m.panes[msg.Side].SetContent(theme.Hot.Render("Error: " + msg.Err.Error()))
			return m, nil
		}
		m.panes[msg.Side].SetContent(m.renderDoc(msg.Doc))
		m.panes[msg.Side].GotoTop()

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	var vCmd tea.Cmd
	m.panes[0], vCmd = m.panes[0].Update(msg)
	cmds = append(cmds, vCmd)
	m.panes[1], vCmd = m.panes[1].Update(msg)
	cmds = append(cmds, vCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if !m.hasPair {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("No pair on screen. Waiting for the pool to load…"))
	}
	if m.pair.Degenerate {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("Fewer than two eligible notes in this pool."))
	}

	header := m.renderHeader()
	footer := theme.Muted.Render("1/2: pick winner  d: draw  s: skip  x/X: remove  o: open  r: reset")
	paneH := m.height - lipgloss.Height(header) - 1
	if paneH < 1 {
		paneH = 1
	}

	if m.loading {
		loading := lipgloss.Place(m.width, paneH, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading pair…")
		return lipgloss.JoinVertical(lipgloss.Left, header, loading, footer)
	}

	paneW := m.width/2 - 2
	left := theme.Pane.Width(paneW).Height(paneH - 2).Render(m.paneAt(0, paneH-4))
	right := theme.Pane.Width(paneW).Height(paneH - 2).Render(m.paneAt(1, paneH-4))
	panes := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	return lipgloss.JoinVertical(lipgloss.Left, header, panes, footer)
}

// SetPair swaps in a new pair and kicks off both preview loads.
func (m *Model) SetPair(poolID string, pair dueldto.PairOutput) tea.Cmd {
	m.poolID = poolID
	m.pair = pair
	m.hasPair = true
	m.gen++
	m.loaded = [2]bool{false, false}
	if pair.Degenerate {
		m.loading = false
		return nil
	}
	m.loading = true
	return tea.Batch(
		m.loadCmd(0, pair.First.ID, m.gen),
		m.loadCmd(1, pair.Second.ID, m.gen),
		m.spinner.Tick,
	)
}

// Clear drops the current pair, e.g. after a reset.
func (m *Model) Clear() {
	m.hasPair = false
	m.loading = false
	m.gen++
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	paneW := m.width/2 - 4
	if paneW < 1 {
		paneW = 1
	}
	for i := range m.panes {
		m.panes[i].Width = paneW
		m.panes[i].Height = m.height - 6
		if m.panes[i].Height < 1 {
			m.panes[i].Height = 1
		}
	}
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(paneW),
	); err == nil {
		m.renderer = r
	}
}

func (m Model) paneAt(side, h int) string {
	vp := m.panes[side]
	if h < 1 {
		h = 1
	}
	vp.Height = h
	return vp.View()
}

func (m Model) renderHeader() string {
	left := fmt.Sprintf("[1] %s  %s", m.pair.First.DisplayName,
		ratingLabel(m.pair.First.Rating, m.pair.First.GamesPlayed))
	right := fmt.Sprintf("[2] %s  %s", m.pair.Second.DisplayName,
		ratingLabel(m.pair.Second.Rating, m.pair.Second.GamesPlayed))
	paneW := m.width / 2
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(paneW).Render(theme.Title.Render(left)),
		lipgloss.NewStyle().Width(paneW).Render(theme.Title.Render(right)),
	) + "\n"
}

func ratingLabel(rating float64, games int) string {
	return theme.Muted.Render(fmt.Sprintf("(%.0f, %d games)", rating, games))
}

func (m Model) renderDoc(doc previewdto.DocumentOutput) string {
	if doc.Content == "" {
		return theme.Muted.Render("(empty note)")
	}
	if doc.Kind == "pdf" {
		header := theme.Muted.Render(fmt.Sprintf("p.%d/%d\n\n", doc.Page, doc.TotalPages))
		return header + doc.Content
	}
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(doc.Content); err == nil {
			return rendered
		}
	}
	return doc.Content
}

func (m Model) loadCmd(side int, itemID string, gen int) tea.Cmd {
	return func() tea.Msg {
		doc, err := m.port.Load(context.Background(), m.poolID, itemID, 1)
		return PreviewLoadedMsg{Side: side, Gen: gen, Doc: doc, Err: err}
	}
}
