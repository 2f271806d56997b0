package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Player", "Level", "Score"}
	rows := [][]string{
		{"ada", "godhead", "24"},
		{"zoé", "novice", "3"},
	}
	rightAlign := map[int]bool{2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Player Level   Score" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "ada    godhead    24" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "zoé    novice      3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableTrimsTrailingPadding(t *testing.T) {
	lines := formatTable([]string{"Word", "Guesses"}, [][]string{{"chat", ""}}, nil)
	if lines[1] != "chat" {
		t.Fatalf("expected trailing padding trimmed, got %q", lines[1])
	}
}
