package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/hangman/internal/model"
)

const (
	sparkChars          = " .:-=+*#%@"
	terminalWidthBackup = 80
	minBarWidth         = 10
)

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders values in [0,1] as a single ASCII line.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	var b strings.Builder
	for _, v := range values {
		idx := int(math.Round(v * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// WinRateCurve returns the rolling win rate of rounds in chronological order.
// rounds are expected newest first, as returned by the store.
func WinRateCurve(rounds []model.RoundRecord, window int) []float64 {
	values := make([]float64, len(rounds))
	for i, r := range rounds {
		if r.Outcome == model.Won {
			values[len(rounds)-1-i] = 1
		}
	}
	return MovingAverage(values, window)
}

// Bar renders a proportion as a fixed-width bar.
func Bar(rate float64, width int) string {
	if width < 1 {
		width = 1
	}
	filled := int(math.Round(rate * float64(width)))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
}

// RenderPlayer prints a player's summary followed by recent rounds.
func RenderPlayer(w io.Writer, p model.Player, rounds []model.RoundRecord, window int) error {
	lines := []string{
		fmt.Sprintf("Player: %s", p.Name),
		fmt.Sprintf("Level: %s", p.Level),
		fmt.Sprintf("Games: %d", p.Games),
		fmt.Sprintf("Wins: %d", p.Wins),
		fmt.Sprintf("Win rate: %.1f%%", p.WinRate()*100),
		fmt.Sprintf("Score: %d", p.Score),
	}
	if len(rounds) > 0 {
		lines = append(lines, fmt.Sprintf("Trend: [%s]", Sparkline(WinRateCurve(rounds, window))))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return RenderRounds(w, rounds)
}

// RenderRounds prints round history as a table.
func RenderRounds(w io.Writer, rounds []model.RoundRecord) error {
	if len(rounds) == 0 {
		_, err := fmt.Fprintln(w, "No rounds played yet.")
		return err
	}
	headers := []string{"When", "Dictionary", "Word", "Result", "Left", "Guesses"}
	rows := make([][]string, 0, len(rounds))
	for _, r := range rounds {
		rows = append(rows, []string{
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			r.Dictionary,
			r.Word,
			r.Outcome.String(),
			fmt.Sprintf("%d", r.AttemptsLeft),
			strings.Join(r.Guesses, " "),
		})
	}
	return writeLines(w, formatTable(headers, rows, map[int]bool{4: true}))
}

// RenderLeaderboard prints ranked players with a win-rate bar sized to the
// terminal.
func RenderLeaderboard(w io.Writer, players []model.Player) error {
	return RenderLeaderboardWithWidth(w, players, terminalWidth())
}

// RenderLeaderboardWithWidth prints ranked players for a given total width.
func RenderLeaderboardWithWidth(w io.Writer, players []model.Player, totalWidth int) error {
	if len(players) == 0 {
		_, err := fmt.Fprintln(w, "No players found.")
		return err
	}
	headers := []string{"#", "Player", "Level", "Games", "Wins", "Score", "Win rate"}
	rows := LeaderboardRows(players)
	lines := formatTable(headers, rows, map[int]bool{0: true, 3: true, 4: true, 5: true, 6: true})
	barWidth := totalWidth - displayWidth(lines[0]) - 1
	if barWidth >= minBarWidth {
		for i := range lines {
			if i == 0 {
				continue
			}
			lines[i] += " " + Bar(players[i-1].WinRate(), barWidth)
		}
	}
	return writeLines(w, lines)
}

// LeaderboardRows formats players as table cells.
func LeaderboardRows(players []model.Player) [][]string {
	rows := make([][]string, 0, len(players))
	for i, p := range players {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			p.Name,
			string(p.Level),
			fmt.Sprintf("%d", p.Games),
			fmt.Sprintf("%d", p.Wins),
			fmt.Sprintf("%d", p.Score),
			fmt.Sprintf("%.1f%%", p.WinRate()*100),
		})
	}
	return rows
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
