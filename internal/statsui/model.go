// Package statsui provides the Bubble Tea leaderboard interface.
package statsui

import (
	"bytes"
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/hangman/internal/model"
	"github.com/verte-zerg/hangman/internal/stats"
)

const (
	tabLeaderboard = iota
	tabHistory
)

const (
	historyLimit  = 50
	historyWindow = 10
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Source lists players and their round history.
type Source interface {
	ListPlayers(ctx context.Context, cfg model.LeaderboardConfig) ([]model.Player, error)
	ListRounds(ctx context.Context, player string, limit int) ([]model.RoundRecord, error)
}

// Model implements the Bubble Tea leaderboard UI.
type Model struct {
	src Source
	cfg model.LeaderboardConfig

	players []model.Player
	errMsg  string

	tabs      []string
	activeTab int
	board     table.Model
	history   viewport.Model

	width  int
	height int
}

// NewModel constructs the leaderboard UI and loads the first page.
func NewModel(src Source, cfg model.LeaderboardConfig) *Model {
	m := &Model{
		src:     src,
		cfg:     cfg,
		tabs:    []string{"Leaderboard", "History"},
		history: viewport.New(0, 0),
	}
	m.board = table.New(
		table.WithColumns(boardColumns()),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	m.board.SetStyles(boardStyles())
	m.reload()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "tab", "right":
			m.switchTab((m.activeTab + 1) % len(m.tabs))
			return m, nil
		case "shift+tab", "left":
			m.switchTab((m.activeTab + len(m.tabs) - 1) % len(m.tabs))
			return m, nil
		case "enter":
			if m.activeTab == tabLeaderboard {
				m.switchTab(tabHistory)
				return m, nil
			}
		case "r":
			m.reload()
			return m, nil
		}
	}
	var cmd tea.Cmd
	if m.activeTab == tabLeaderboard {
		m.board, cmd = m.board.Update(msg)
	} else {
		m.history, cmd = m.history.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	parts := []string{m.renderTabs()}
	if m.activeTab == tabLeaderboard {
		parts = append(parts, m.board.View())
	} else {
		parts = append(parts, m.history.View())
	}
	parts = append(parts, headerStyle.Render("tab: switch · enter: history · r: reload · q: quit"))
	if m.errMsg != "" {
		parts = append(parts, errorStyle.Render(m.errMsg))
	}
	return strings.Join(parts, "\n")
}

func (m *Model) renderTabs() string {
	rendered := make([]string, len(m.tabs))
	for i, name := range m.tabs {
		if i == m.activeTab {
			rendered[i] = activeNavStyle.Render(name)
		} else {
			rendered[i] = inactiveNavStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *Model) switchTab(tab int) {
	m.activeTab = tab
	if tab == tabHistory {
		m.loadHistory()
	}
}

func (m *Model) reload() {
	players, err := m.src.ListPlayers(context.Background(), m.cfg)
	if err != nil {
		m.errMsg = "failed to load players: " + err.Error()
		return
	}
	m.errMsg = ""
	m.players = players
	rows := make([]table.Row, 0, len(players))
	for _, cells := range stats.LeaderboardRows(players) {
		rows = append(rows, table.Row(cells))
	}
	m.board.SetRows(rows)
	if m.activeTab == tabHistory {
		m.loadHistory()
	}
}

// selected returns the player under the table cursor.
func (m *Model) selected() (model.Player, bool) {
	idx := m.board.Cursor()
	if idx < 0 || idx >= len(m.players) {
		return model.Player{}, false
	}
	return m.players[idx], true
}

func (m *Model) loadHistory() {
	p, ok := m.selected()
	if !ok {
		m.history.SetContent("No player selected.")
		return
	}
	rounds, err := m.src.ListRounds(context.Background(), p.Name, historyLimit)
	if err != nil {
		m.errMsg = "failed to load rounds: " + err.Error()
		return
	}
	var buf bytes.Buffer
	if err := stats.RenderPlayer(&buf, p, rounds, historyWindow); err != nil {
		m.errMsg = "failed to render rounds: " + err.Error()
		return
	}
	m.history.SetContent(buf.String())
	m.history.GotoTop()
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	bodyHeight := m.height - tabsHeight - 2
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	m.board.SetWidth(m.width)
	m.board.SetHeight(bodyHeight)
	m.history.Width = m.width
	m.history.Height = bodyHeight
}

func boardColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Player", Width: 16},
		{Title: "Level", Width: 8},
		{Title: "Games", Width: 6},
		{Title: "Wins", Width: 6},
		{Title: "Score", Width: 6},
		{Title: "Win rate", Width: 9},
	}
}

func boardStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F0F0F0")).
		Background(lipgloss.Color("#3A3A3A")).
		Bold(false)
	return styles
}
