package statsui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/hangman/internal/model"
	"github.com/verte-zerg/hangman/internal/store"
)

func seededSource(t *testing.T) *store.Memory {
	t.Helper()
	st := store.NewMemory()
	ctx := context.Background()
	for _, p := range []model.Player{
		{Name: "ada", Games: 6, Wins: 6, Score: 18, Level: model.LevelGodhead},
		{Name: "bob", Games: 2, Wins: 0, Score: 0, Level: model.LevelNovice},
	} {
		if err := st.PutPlayer(ctx, p); err != nil {
			t.Fatalf("put player: %v", err)
		}
	}
	if _, err := st.InsertRound(ctx, model.RoundRecord{Player: "ada", Dictionary: "fr_dict", Word: "chat", Outcome: model.Won, AttemptsLeft: 8, EndedAt: time.Unix(0, 0)}); err != nil {
		t.Fatalf("insert round: %v", err)
	}
	return st
}

func TestLeaderboardRows(t *testing.T) {
	m := NewModel(seededSource(t), model.LeaderboardConfig{})
	if len(m.players) != 2 || m.players[0].Name != "ada" {
		t.Fatalf("unexpected players: %+v", m.players)
	}
	if rows := m.board.Rows(); len(rows) != 2 || rows[0][1] != "ada" || rows[0][6] != "100.0%" {
		t.Fatalf("unexpected rows: %v", rows)
	}
}

func TestHistoryTabShowsSelectedPlayer(t *testing.T) {
	m := NewModel(seededSource(t), model.LeaderboardConfig{})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.activeTab != tabHistory {
		t.Fatalf("expected history tab")
	}
	out := m.View()
	for _, needle := range []string{"Player: ada", "chat", "won"} {
		if !strings.Contains(out, needle) {
			t.Fatalf("expected %q in history view: %s", needle, out)
		}
	}
}

func TestQuitKey(t *testing.T) {
	m := NewModel(seededSource(t), model.LeaderboardConfig{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
