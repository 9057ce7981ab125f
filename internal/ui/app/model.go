package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	archivedto "mdrank/internal/modules/archive/dto"
	dueldto "mdrank/internal/modules/duel/dto"
	exporterdto "mdrank/internal/modules/exporter/dto"
	previewdto "mdrank/internal/modules/preview/dto"
	rosterdto "mdrank/internal/modules/roster/dto"
	apperrors "mdrank/internal/platform/errors"
	"mdrank/internal/ui/components"
	"mdrank/internal/ui/theme"
	duelview "mdrank/internal/ui/views/duel"
	historyview "mdrank/internal/ui/views/history"
	poolsview "mdrank/internal/ui/views/pools"
	standingsview "mdrank/internal/ui/views/standings"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type duelPort interface {
	StartSession(ctx context.Context, poolID string) (dueldto.SessionOutput, error)
	RecordOutcome(ctx context.Context, input dueldto.RecordOutcomeInput) (dueldto.SessionOutput, error)
	Skip(ctx context.Context, poolID string) (dueldto.SessionOutput, error)
	RemoveItem(ctx context.Context, poolID string, index int) (dueldto.SessionOutput, error)
	ResetPool(ctx context.Context, input dueldto.ResetInput) (dueldto.SessionOutput, error)
	Standings(ctx context.Context, poolID string, limit int) ([]dueldto.StandingOutput, error)
	PublishStandings(ctx context.Context, poolID string) (dueldto.PublishOutput, error)
	Reindex(ctx context.Context) error
	History(ctx context.Context, poolID string) ([]dueldto.HistoryEntryOutput, error)
}

type previewPort interface {
	Load(ctx context.Context, poolID, itemID string, page int) (previewdto.DocumentOutput, error)
	OpenExternal(ctx context.Context, poolID, itemID string) (previewdto.OpenExternalOutput, error)
}

type rosterPort interface {
	ListPools(ctx context.Context) ([]rosterdto.PoolOutput, error)
}

type archivePort interface {
	Stats(ctx context.Context, pool string) (archivedto.StatsOutput, error)
}

type exporterPort interface {
	Render(ctx context.Context, input exporterdto.RenderInput) (exporterdto.RenderOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabDuel tabID = iota
	tabStandings
	tabHistory
	tabPools
	tabCount
)

var tabLabels = [tabCount]string{
	"Duel", "Standings", "History", "Pools",
}

// ─── async messages ───────────────────────────────────────────────────────────

// sessionMsg carries an updated session after any duel operation. Gen
// guards against a stale response landing after a pool switch.
type sessionMsg struct {
	action string
	gen    int
	out    dueldto.SessionOutput
	err    error
}

type statusMsg struct {
	text string
	err  error
}

type externalOpenedMsg struct {
	target string
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	PickA   key.Binding
	PickB   key.Binding
	Draw    key.Binding
	Skip    key.Binding
	Remove  key.Binding
	Reset   key.Binding
	Open    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		PickA:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "left wins")),
		PickB:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "right wins")),
		Draw:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "draw")),
		Skip:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip pair")),
		Remove:  key.NewBinding(key.WithKeys("x", "X"), key.WithHelp("x/X", "remove left/right")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset pool")),
		Open:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open external")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PickA, k.PickB, k.Draw, k.Skip},
		{k.Remove, k.Reset, k.Open},
		{k.Tab, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the active
// pool, the global help overlay, and the command palette. All business
// logic is delegated to port interfaces; all rendering is delegated to
// sub-views.
type Model struct {
	vaultPath string

	duel     duelPort
	preview  previewPort
	archive  archivePort
	exporter exporterPort

	duelView      duelview.Model
	standingsView standingsview.Model
	historyView   historyview.Model
	poolsView     poolsview.Model

	pool         string
	session      dueldto.SessionOutput
	sessionGen   int
	confirmReset bool
	activeTab    tabID
	keys         keyMap
	help         help.Model
	showHelp     bool
	palette      components.Palette
	status       string
	width        int
	height       int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(
	vaultPath string,
	defaultPool string,
	duel duelPort,
	preview previewPort,
	roster rosterPort,
	archive archivePort,
	exporter exporterPort,
) Model {
	return Model{
		vaultPath:     vaultPath,
		duel:          duel,
		preview:       preview,
		archive:       archive,
		exporter:      exporter,
		duelView:      duelview.New(previewLoadBridge{p: preview}),
		standingsView: standingsview.New(standingsPortBridge{p: duel}),
		historyView:   historyview.New(),
		poolsView:     poolsview.New(poolsPortBridge{p: roster}),
		pool:          defaultPool,
		activeTab:     tabDuel,
		keys:          defaultKeys(),
		help:          help.New(),
		palette:       components.NewPalette(),
		status:        "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.poolsView.Init(),
		m.startSessionCmd(m.pool),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case sessionMsg:
		if msg.gen != m.sessionGen {
			return m, nil
		}
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		m.session = msg.out
		m.historyView.SetEntries(m.pool, msg.out.History)
		m.status = fmt.Sprintf("%s  pool=%s  %d comparisons",
			msg.action, msg.out.PoolID, len(msg.out.History))
		cmds = append(cmds, m.duelView.SetPair(m.pool, msg.out.Pair))

	case statusMsg:
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
		} else {
			m.status = msg.text
		}

	case externalOpenedMsg:
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
		} else {
			m.status = "opened " + msg.target
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case poolsview.SwitchMsg:
		return m.switchPool(msg.PoolID)

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.confirmReset {
			switch msg.String() {
			case "y", "Y":
				m.confirmReset = false
				m.status = "resetting " + m.pool
				return m, m.resetPoolCmd(m.pool)
			default:
				m.confirmReset = false
				m.status = "reset cancelled"
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			cmds = append(cmds, m.tabActivated())
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			cmds = append(cmds, m.tabActivated())
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "1":
			if m.activeTab == tabDuel {
				cmds = append(cmds, m.recordCmd(dueldto.OutcomeFirst))
			}
		case "2":
			if m.activeTab == tabDuel {
				cmds = append(cmds, m.recordCmd(dueldto.OutcomeSecond))
			}
		case "d":
			if m.activeTab == tabDuel {
				cmds = append(cmds, m.recordCmd(dueldto.OutcomeDraw))
			}
		case "s":
			if m.activeTab == tabDuel {
				cmds = append(cmds, m.skipCmd())
			}
		case "x":
			if m.activeTab == tabDuel {
				cmds = append(cmds, m.removeCmd(0))
			}
		case "X":
			if m.activeTab == tabDuel {
				cmds = append(cmds, m.removeCmd(1))
			}
		case "r":
			if m.activeTab == tabDuel {
				m.confirmReset = true
			}
		case "o":
			if m.activeTab == tabDuel && m.session.Pair.First.ID != "" {
				cmds = append(cmds, m.openExternalCmd(m.session.Pair.First.ID))
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabDuel:
		m.duelView, tabCmd = m.duelView.Update(msg)
	case tabStandings:
		m.standingsView, tabCmd = m.standingsView.Update(msg)
	case tabHistory:
		m.historyView, tabCmd = m.historyView.Update(msg)
	case tabPools:
		m.poolsView, tabCmd = m.poolsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.confirmReset:
		prompt := theme.Bad.Render("Reset pool "+m.pool+"?") +
			theme.Muted.Render("  y: confirm  n: cancel")
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, prompt)
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabDuel:
		return m.duelView.View()
	case tabStandings:
		return m.standingsView.View()
	case tabHistory:
		return m.historyView.View()
	case tabPools:
		return m.poolsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "mdrank  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := theme.Hot.Render("● "+m.pool) + "  "
	if strings.HasPrefix(m.status, "Error:") {
		left += theme.Bad.Render(m.status)
	} else {
		left += m.status
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "duel:skip":
		m.activeTab = tabDuel
		return m, m.skipCmd()

	case "duel:reset":
		m.activeTab = tabDuel
		m.confirmReset = true
		return m, nil

	case "pool:switch":
		if len(parts) < 2 {
			m.status = "usage: pool:switch <name>"
			return m, nil
		}
		return m.switchPool(parts[1])

	case "publish":
		m.status = "publishing standings…"
		return m, m.publishCmd()

	case "reindex":
		m.status = "reindexing…"
		return m, m.reindexCmd()

	case "archive:stats":
		return m, m.archiveStatsCmd()

	case "export:run":
		if len(parts) < 3 {
			m.status = "usage: export:run <exporter> <format>"
			return m, nil
		}
		m.status = "exporting…"
		return m, m.exportCmd(parts[1], parts[2])

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

func (m Model) switchPool(poolID string) (tea.Model, tea.Cmd) {
	m.pool = poolID
	m.sessionGen++
	m.activeTab = tabDuel
	m.duelView.Clear()
	m.status = "switching to " + poolID
	return m, m.startSessionCmd(poolID)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// tabActivated refreshes data that goes stale between visits.
func (m *Model) tabActivated() tea.Cmd {
	switch m.activeTab {
	case tabStandings:
		return m.standingsView.Reload(m.pool)
	case tabHistory:
		m.historyView.SetEntries(m.pool, m.session.History)
	}
	return nil
}

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabStandings:
		return m.standingsView.Filtering()
	case tabPools:
		return m.poolsView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.duelView, _ = m.duelView.Update(sz)
	m.standingsView, _ = m.standingsView.Update(sz)
	m.historyView, _ = m.historyView.Update(sz)
	m.poolsView, _ = m.poolsView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) startSessionCmd(poolID string) tea.Cmd {
	gen := m.sessionGen
	return func() tea.Msg {
		out, err := m.duel.StartSession(context.Background(), poolID)
		return sessionMsg{action: "session started", gen: gen, out: out, err: err}
	}
}

func (m Model) recordCmd(outcome dueldto.Outcome) tea.Cmd {
	gen := m.sessionGen
	pool := m.pool
	return func() tea.Msg {
		out, err := m.duel.RecordOutcome(context.Background(), dueldto.RecordOutcomeInput{
			PoolID:  pool,
			Outcome: outcome,
		})
		return sessionMsg{action: "recorded " + string(outcome), gen: gen, out: out, err: err}
	}
}

func (m Model) skipCmd() tea.Cmd {
	gen := m.sessionGen
	pool := m.pool
	return func() tea.Msg {
		out, err := m.duel.Skip(context.Background(), pool)
		return sessionMsg{action: "skipped", gen: gen, out: out, err: err}
	}
}

func (m Model) removeCmd(index int) tea.Cmd {
	gen := m.sessionGen
	pool := m.pool
	return func() tea.Msg {
		out, err := m.duel.RemoveItem(context.Background(), pool, index)
		return sessionMsg{action: "removed contender", gen: gen, out: out, err: err}
	}
}

func (m Model) resetPoolCmd(poolID string) tea.Cmd {
	gen := m.sessionGen
	return func() tea.Msg {
		out, err := m.duel.ResetPool(context.Background(), dueldto.ResetInput{PoolID: poolID, Confirm: true})
		if errors.Is(err, apperrors.ErrConfirmationRequired) {
			err = fmt.Errorf("reset needs confirmation")
		}
		return sessionMsg{action: "pool reset", gen: gen, out: out, err: err}
	}
}

func (m Model) openExternalCmd(itemID string) tea.Cmd {
	pool := m.pool
	return func() tea.Msg {
		out, err := m.preview.OpenExternal(context.Background(), pool, itemID)
		return externalOpenedMsg{target: out.Target, err: err}
	}
}

func (m Model) publishCmd() tea.Cmd {
	pool := m.pool
	return func() tea.Msg {
		out, err := m.duel.PublishStandings(context.Background(), pool)
		if err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{text: fmt.Sprintf("published %d rows to %s", out.RowCount, out.NotePath)}
	}
}

func (m Model) reindexCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.duel.Reindex(context.Background()); err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{text: "reindex complete"}
	}
}

func (m Model) archiveStatsCmd() tea.Cmd {
	pool := m.pool
	return func() tea.Msg {
		if m.archive == nil {
			return statusMsg{err: fmt.Errorf("archive adapter not configured")}
		}
		stats, err := m.archive.Stats(context.Background(), pool)
		if err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{text: fmt.Sprintf("archive: %d entries from %d nodes",
			stats.EntryCount, len(stats.Nodes))}
	}
}

func (m Model) exportCmd(exporterName, formatID string) tea.Cmd {
	pool := m.pool
	return func() tea.Msg {
		if m.exporter == nil {
			return statusMsg{err: fmt.Errorf("exporter adapter not configured")}
		}
		ctx := context.Background()
		rows, err := m.duel.Standings(ctx, pool, 0)
		if err != nil {
			return statusMsg{err: err}
		}
		entries, err := m.duel.History(ctx, pool)
		if err != nil {
			return statusMsg{err: err}
		}
		snapshot := buildSnapshot(pool, rows, entries)
		payload, err := json.Marshal(snapshot)
		if err != nil {
			return statusMsg{err: err}
		}
		out, err := m.exporter.Render(ctx, exporterdto.RenderInput{
			ExporterName: exporterName,
			FormatID:     formatID,
			SnapshotJSON: string(payload),
		})
		if err != nil {
			return statusMsg{err: err}
		}
		target := filepath.Join(m.vaultPath, out.Filename)
		if err := os.WriteFile(target, out.Data, 0o644); err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{text: "exported to " + target}
	}
}

func buildSnapshot(pool string, rows []dueldto.StandingOutput, entries []dueldto.HistoryEntryOutput) exporterdto.Snapshot {
	snap := exporterdto.Snapshot{
		Pool:        pool,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Standings:   make([]exporterdto.SnapshotRow, 0, len(rows)),
		History:     make([]exporterdto.SnapshotMatch, 0, len(entries)),
	}
	for _, row := range rows {
		snap.Standings = append(snap.Standings, exporterdto.SnapshotRow{
			Rank:   row.Rank,
			ItemID: row.ItemID,
			Name:   row.DisplayName,
			Rating: int(row.Rating),
			Games:  row.Games,
		})
	}
	for _, e := range entries {
		snap.History = append(snap.History, exporterdto.SnapshotMatch{
			At:     time.UnixMilli(e.At).UTC().Format(time.RFC3339),
			Winner: e.WinnerID,
			Loser:  e.LoserID,
		})
	}
	return snap
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows a broad port interface to the minimal interface needed
// by a specific sub-view, keeping view packages free of knowledge about the
// wider port surface.

type previewLoadBridge struct{ p previewPort }

func (b previewLoadBridge) Load(ctx context.Context, poolID, itemID string, page int) (previewdto.DocumentOutput, error) {
	return b.p.Load(ctx, poolID, itemID, page)
}

type standingsPortBridge struct{ p duelPort }

func (b standingsPortBridge) Standings(ctx context.Context, poolID string, limit int) ([]dueldto.StandingOutput, error) {
	return b.p.Standings(ctx, poolID, limit)
}

type poolsPortBridge struct{ p rosterPort }

func (b poolsPortBridge) ListPools(ctx context.Context) ([]rosterdto.PoolOutput, error) {
	return b.p.ListPools(ctx)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
