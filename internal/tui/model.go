// Package tui provides the Bubble Tea hangman interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/verte-zerg/hangman/internal/model"
)

// errRoundOver is reported when a guess arrives after the round ended.
var errRoundOver = errors.New("round is over")

// Game is the part of a session the interface drives.
type Game interface {
	Start(ctx context.Context, dictionaryID string) (model.Report, error)
	Guess(ctx context.Context, guess string) (model.Report, error)
	Abandon()
	Active() bool
	Player() model.Player
	Dictionary() string
}

// Model implements the Bubble Tea hangman UI.
type Model struct {
	game       Game
	dictionary string
	budget     int
	logger     *log.Logger

	input  textinput.Model
	report model.Report
	errMsg string

	width  int
	height int
}

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	revealedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	missStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	wonStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	proposalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	gallowsStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C0C0C0"))
	containerStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

// NewModel constructs the game UI and starts the first round.
// budget is the configured attempt count used to draw the gallows.
func NewModel(game Game, dictionary string, budget int, logger *log.Logger) *Model {
	input := textinput.New()
	input.Prompt = "Guess: "
	input.Placeholder = "letter or word"
	input.CharLimit = 64
	input.Cursor.SetMode(cursor.CursorBlink)
	input.Focus()

	m := &Model{
		game:       game,
		dictionary: dictionary,
		budget:     budget,
		logger:     logger,
		input:      input,
	}
	m.startRound()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.game.Abandon()
			return m, tea.Quit
		case tea.KeyEnter:
			m.handleEnter()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleEnter() {
	if !m.game.Active() {
		m.startRound()
		return
	}
	guess := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if guess == "" {
		return
	}
	report, err := m.game.Guess(context.Background(), guess)
	m.report = report
	if err != nil {
		m.errMsg = err.Error()
		m.logger.Error("guess failed", "error", err)
		return
	}
	m.errMsg = ""
}

func (m *Model) startRound() {
	report, err := m.game.Start(context.Background(), m.dictionary)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to start round: %v", err)
		m.logger.Error("failed to start round", "dictionary", m.dictionary, "error", err)
		return
	}
	m.report = report
	m.errMsg = ""
	m.input.SetValue("")
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{titleStyle.Render("HANGMAN")}
	if m.report.Tracker != "" {
		sections = append(sections,
			gallowsStyle.Render(renderGallows(m.budget-m.report.Attempts, m.budget)),
			renderStyledRunes(buildTrackerRunes(m.report.Tracker)),
			m.renderStatus(),
		)
		if len(m.report.Proposals) > 0 {
			sections = append(sections, m.renderProposals())
		}
	}
	if m.report.Outcome == model.Pending && m.game.Active() {
		sections = append(sections, m.input.View())
	} else if m.report.Tracker != "" {
		sections = append(sections, footerStyle.Render("enter: new round · esc: quit"))
	}
	if m.errMsg != "" {
		sections = append(sections, errorStyle.Render(m.errMsg))
	}
	content := containerStyle.Render(strings.Join(sections, "\n\n"))
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderStatus() string {
	switch m.report.Outcome {
	case model.Won:
		return wonStyle.Render(fmt.Sprintf("You found %q with %d attempts left!", m.report.Word, m.report.Attempts))
	case model.Lost:
		return missStyle.Render(fmt.Sprintf("Out of attempts. The word was %q.", m.report.Word))
	default:
		return fmt.Sprintf("Attempts left: %d", m.report.Attempts)
	}
}

func (m *Model) renderProposals() string {
	text := "Tried: " + strings.Join(m.report.Proposals, " ")
	width := 0
	if m.width > 0 {
		width = int(float64(m.width) * 0.6)
	}
	return wrapStyledRunes(buildTextRunes(text, proposalStyle), width)
}

func (m *Model) renderFooter() string {
	p := m.game.Player()
	segments := []string{
		p.Name,
		fmt.Sprintf("Level %s", p.Level),
		fmt.Sprintf("Score %d", p.Score),
		fmt.Sprintf("Won %d/%d", p.Wins, p.Games),
	}
	if d := m.game.Dictionary(); d != "" {
		segments = append(segments, d)
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

// Submit feeds a guess programmatically, as the enter key does.
func (m *Model) Submit(guess string) error {
	if !m.game.Active() {
		return errRoundOver
	}
	m.input.SetValue(guess)
	m.handleEnter()
	if m.errMsg != "" {
		return errors.New(m.errMsg)
	}
	return nil
}
