package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	defaultPlotHeight = 8
	minPlotWidth      = 10
	axisSeparator     = " | "
)

var axisLabels = [3]string{"100%", "50%", "0%"}

// brailleDots maps a dot position (column, row) inside a braille cell to
// its bit in the U+2800 block.
var brailleDots = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// PlotWidthFor returns the plot area width that fits totalWidth columns
// once the axis is drawn.
func PlotWidthFor(totalWidth int) int {
	width := totalWidth - utf8.RuneCountInString(axisLabels[0]) - utf8.RuneCountInString(axisSeparator)
	if width < minPlotWidth {
		return minPlotWidth
	}
	return width
}

// PlotRate draws values in [0,1] as a braille line chart. A width of zero
// fits the terminal; a height of zero uses the default.
func PlotRate(w io.Writer, title string, values []float64, width, height int) error {
	if len(values) == 0 {
		return nil
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}
	if height <= 0 {
		height = defaultPlotHeight
	}

	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	dotRows := height * 4
	prevX, prevY := -1, -1
	for x, v := range resample(values, width) {
		px := x * 2
		py := int(math.Round((1 - clamp01(v)) * float64(dotRows-1)))
		if prevX < 0 {
			setDot(cells, px, py)
		} else {
			drawLine(prevX, prevY, px, py, func(dx, dy int) { setDot(cells, dx, dy) })
		}
		prevX, prevY = px, py
	}

	lines := make([]string, 0, height+1)
	if title != "" {
		lines = append(lines, title)
	}
	labelWidth := utf8.RuneCountInString(axisLabels[0])
	for y, row := range cells {
		label := ""
		switch {
		case y == 0:
			label = axisLabels[0]
		case y == height-1:
			label = axisLabels[2]
		case height > 2 && y == height/2:
			label = axisLabels[1]
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%*s%s", labelWidth, label, axisSeparator)
		for _, mask := range row {
			b.WriteRune(rune(0x2800 + int(mask)))
		}
		lines = append(lines, b.String())
	}
	return writeLines(w, lines)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// resample stretches or averages values to exactly width points.
func resample(values []float64, width int) []float64 {
	out := make([]float64, width)
	n := len(values)
	switch {
	case n == width:
		copy(out, values)
	case n > width:
		for i := range out {
			start := i * n / width
			end := (i + 1) * n / width
			if end <= start {
				end = start + 1
			}
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case n == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		for i := range out {
			pos := float64(i) * float64(n-1) / float64(width-1)
			idx := int(pos)
			if idx >= n-1 {
				out[i] = values[n-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

func setDot(cells [][]uint8, x, y int) {
	cy, cx := y/4, x/2
	if x < 0 || y < 0 || cy >= len(cells) || cx >= len(cells[cy]) {
		return
	}
	cells[cy][cx] |= brailleDots[x%2][y%4]
}

// drawLine walks the Bresenham line between two dot coordinates.
func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
