package stats

import (
	"testing"

	"github.com/verte-zerg/hangman/internal/model"
)

func TestApplyWinAfterFivePerfectGames(t *testing.T) {
	p := model.Player{Name: "ada", Games: 5, Wins: 5, Score: 15, Level: model.LevelNovice}
	got := Apply(p, model.Won, DefaultRules())
	want := model.Player{Name: "ada", Games: 6, Wins: 6, Score: 18, Level: model.LevelGodhead}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestApplyLossKeepsScore(t *testing.T) {
	p := model.NewPlayer("ada")
	got := Apply(p, model.Lost, DefaultRules())
	if got.Games != 1 || got.Wins != 0 || got.Score != 0 || got.Level != model.LevelNovice {
		t.Fatalf("unexpected player after loss: %+v", got)
	}
}

func TestApplyLevelUnchangedUntilThreshold(t *testing.T) {
	p := model.Player{Name: "ada", Games: 4, Wins: 4, Score: 12, Level: model.LevelNovice}
	got := Apply(p, model.Won, DefaultRules())
	if got.Games != 5 || got.Level != model.LevelNovice {
		t.Fatalf("expected level untouched at 5 games, got %+v", got)
	}
}

func TestApplyPendingIsNoop(t *testing.T) {
	p := model.Player{Name: "ada", Games: 3, Wins: 1, Score: 3, Level: model.LevelNovice}
	if got := Apply(p, model.Pending, DefaultRules()); got != p {
		t.Fatalf("expected unchanged player, got %+v", got)
	}
}

func TestApplyCustomRules(t *testing.T) {
	rules := Rules{ScoreIncrement: 10, LevelThreshold: 0}
	got := Apply(model.NewPlayer("ada"), model.Won, rules)
	if got.Score != 10 || got.Level != model.LevelGodhead {
		t.Fatalf("unexpected player: %+v", got)
	}
}

func TestLevelFor(t *testing.T) {
	cases := []struct {
		wins, games int
		want        model.Level
	}{
		{0, 0, model.LevelNovice},
		{0, 10, model.LevelNovice},
		{1, 6, model.LevelNovice},
		{2, 10, model.LevelAverage},
		{3, 6, model.LevelPro},
		{7, 10, model.LevelExpert},
		{9, 10, model.LevelGodhead},
		{6, 6, model.LevelGodhead},
		{100, 100, model.LevelGodhead},
	}
	for _, tc := range cases {
		if got := LevelFor(tc.wins, tc.games); got != tc.want {
			t.Fatalf("LevelFor(%d, %d) = %s, want %s", tc.wins, tc.games, got, tc.want)
		}
	}
}
