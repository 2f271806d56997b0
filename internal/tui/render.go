package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/hangman/internal/matcher"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildTrackerRunes styles each tracker cell and separates cells with a
// space so placeholders stay distinguishable.
func buildTrackerRunes(tracker string) []styledRune {
	cells := []rune(tracker)
	out := make([]styledRune, 0, len(cells)*2)
	for i, r := range cells {
		if i > 0 {
			out = append(out, styledRune{s: " ", width: 1, isSpace: true})
		}
		style := revealedStyle
		if r == matcher.Placeholder {
			style = pendingStyle
		}
		out = append(out, styledRune{
			s:     style.Render(string(r)),
			width: runewidth.RuneWidth(r),
		})
	}
	return out
}

func buildTextRunes(text string, style lipgloss.Style) []styledRune {
	out := make([]styledRune, 0, len(text))
	for _, r := range text {
		out = append(out, styledRune{
			s:       style.Render(string(r)),
			width:   runewidth.RuneWidth(r),
			isSpace: r == ' ',
		})
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}

// gallowsParts are drawn in order as attempts run out.
var gallowsParts = []struct {
	row, col int
	ch       rune
}{
	{6, 0, '='}, {6, 1, '='}, {6, 2, '='}, {6, 3, '='}, {6, 4, '='},
	{5, 1, '|'}, {4, 1, '|'}, {3, 1, '|'}, {2, 1, '|'}, {1, 1, '|'},
	{0, 1, '+'}, {0, 2, '-'}, {0, 3, '-'}, {0, 4, '+'},
	{1, 4, '|'},
	{2, 4, 'O'},
	{3, 4, '|'}, {3, 3, '/'}, {3, 5, '\\'},
	{4, 3, '/'}, {4, 5, '\\'},
}

// renderGallows draws a share of the gallows proportional to used/budget.
func renderGallows(used, budget int) string {
	grid := make([][]rune, 7)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", 6))
	}
	n := 0
	if budget > 0 && used > 0 {
		n = used * len(gallowsParts) / budget
		if n > len(gallowsParts) {
			n = len(gallowsParts)
		}
	}
	for _, part := range gallowsParts[:n] {
		grid[part.row][part.col] = part.ch
	}
	lines := make([]string, len(grid))
	for i, row := range grid {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}
