package stats

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPlotRate(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotRate(&buf, "Win rate", []float64{1, 1, 1}, 10, 4); err != nil {
		t.Fatalf("PlotRate failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected title plus 4 rows, got %d: %q", len(lines), lines)
	}
	if lines[0] != "Win rate" {
		t.Fatalf("unexpected title %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "100% | ") || !strings.HasPrefix(lines[4], "  0% | ") {
		t.Fatalf("unexpected axis labels: %q / %q", lines[1], lines[4])
	}
	top := strings.TrimPrefix(lines[1], "100% | ")
	if utf8.RuneCountInString(top) != 10 || strings.ContainsRune(top, '\u2800') {
		t.Fatalf("expected a full top row, got %q", top)
	}
	bottom := strings.TrimPrefix(lines[4], "  0% | ")
	if strings.Trim(bottom, "\u2800") != "" {
		t.Fatalf("expected an empty bottom row, got %q", bottom)
	}
}

func TestPlotRateEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotRate(&buf, "x", nil, 10, 4); err != nil {
		t.Fatalf("PlotRate failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(80); got != 80-len("100%")-len(" | ") {
		t.Fatalf("unexpected width %d", got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
}

func TestResample(t *testing.T) {
	got := resample([]float64{0, 1, 0, 1}, 2)
	if len(got) != 2 || got[0] != 0.5 || got[1] != 0.5 {
		t.Fatalf("unexpected downsample %v", got)
	}
	got = resample([]float64{0, 1}, 3)
	if len(got) != 3 || got[1] != 0.5 {
		t.Fatalf("unexpected upsample %v", got)
	}
}
