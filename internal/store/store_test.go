package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/verte-zerg/hangman/internal/model"
)

type backend interface {
	Words(ctx context.Context, id string) ([]string, error)
	PutWords(ctx context.Context, id string, words []string) error
	ListDictionaries(ctx context.Context) ([]model.DictionaryInfo, error)
	Player(ctx context.Context, name string) (model.Player, error)
	PutPlayer(ctx context.Context, p model.Player) error
	UpdatePlayer(ctx context.Context, name string, fn func(model.Player) model.Player) (model.Player, error)
	ListPlayers(ctx context.Context, cfg model.LeaderboardConfig) ([]model.Player, error)
	InsertRound(ctx context.Context, rec model.RoundRecord) (int64, error)
	ListRounds(ctx context.Context, player string, limit int) ([]model.RoundRecord, error)
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "hangman.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func backends(t *testing.T) map[string]backend {
	return map[string]backend{
		"sqlite": openTestStore(t),
		"memory": NewMemory(),
	}
}

func TestWordsRoundTripAndOverwrite(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := st.Words(ctx, "fr_dict"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			if err := st.PutWords(ctx, "fr_dict", []string{"chat", "café", "élève"}); err != nil {
				t.Fatalf("put words: %v", err)
			}
			if err := st.PutWords(ctx, "fr_dict", []string{"chien", "oiseau"}); err != nil {
				t.Fatalf("overwrite words: %v", err)
			}
			words, err := st.Words(ctx, "fr_dict")
			if err != nil {
				t.Fatalf("words: %v", err)
			}
			if len(words) != 2 || words[0] != "chien" || words[1] != "oiseau" {
				t.Fatalf("unexpected words after overwrite: %v", words)
			}
			if err := st.PutWords(ctx, "eng_dict", []string{"dog"}); err != nil {
				t.Fatalf("put words: %v", err)
			}
			infos, err := st.ListDictionaries(ctx)
			if err != nil {
				t.Fatalf("list dictionaries: %v", err)
			}
			if len(infos) != 2 || infos[0].ID != "eng_dict" || infos[1].Words != 2 {
				t.Fatalf("unexpected dictionaries: %+v", infos)
			}
		})
	}
}

func TestPlayerPutAndGet(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := st.Player(ctx, "ada"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			want := model.Player{Name: "ada", Games: 7, Wins: 4, Score: 12, Level: model.LevelPro}
			if err := st.PutPlayer(ctx, want); err != nil {
				t.Fatalf("put player: %v", err)
			}
			if err := st.PutPlayer(ctx, want); err != nil {
				t.Fatalf("put player twice: %v", err)
			}
			got, err := st.Player(ctx, "ada")
			if err != nil {
				t.Fatalf("player: %v", err)
			}
			if got != want {
				t.Fatalf("expected %+v, got %+v", want, got)
			}
		})
	}
}

func TestUpdatePlayerMissing(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := st.UpdatePlayer(ctx, "ghost", func(p model.Player) model.Player { return p })
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestUpdatePlayerSerializesConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := st.PutPlayer(ctx, model.NewPlayer("ada")); err != nil {
				t.Fatalf("put player: %v", err)
			}
			const n = 20
			var wg sync.WaitGroup
			errs := make(chan error, n)
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := st.UpdatePlayer(ctx, "ada", func(p model.Player) model.Player {
						p.Games++
						return p
					})
					errs <- err
				}()
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				if err != nil {
					t.Fatalf("update player: %v", err)
				}
			}
			got, err := st.Player(ctx, "ada")
			if err != nil {
				t.Fatalf("player: %v", err)
			}
			if got.Games != n {
				t.Fatalf("expected %d games, got %d", n, got.Games)
			}
		})
	}
}

func TestListPlayersOrdering(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			players := []model.Player{
				{Name: "bob", Games: 10, Wins: 2, Score: 6, Level: model.LevelAverage},
				{Name: "ada", Games: 4, Wins: 2, Score: 6, Level: model.LevelNovice},
				{Name: "cyd", Games: 8, Wins: 8, Score: 24, Level: model.LevelGodhead},
				{Name: "dee", Games: 0, Wins: 0, Score: 0, Level: model.LevelNovice},
			}
			for _, p := range players {
				if err := st.PutPlayer(ctx, p); err != nil {
					t.Fatalf("put player: %v", err)
				}
			}
			got, err := st.ListPlayers(ctx, model.LeaderboardConfig{})
			if err != nil {
				t.Fatalf("list players: %v", err)
			}
			order := []string{"cyd", "ada", "bob", "dee"}
			if len(got) != len(order) {
				t.Fatalf("expected %d players, got %d", len(order), len(got))
			}
			for i, n := range order {
				if got[i].Name != n {
					t.Fatalf("expected %s at %d, got %s", n, i, got[i].Name)
				}
			}
			limited, err := st.ListPlayers(ctx, model.LeaderboardConfig{Limit: 2, MinGames: 5})
			if err != nil {
				t.Fatalf("list players: %v", err)
			}
			if len(limited) != 2 || limited[0].Name != "cyd" || limited[1].Name != "bob" {
				t.Fatalf("unexpected filtered players: %+v", limited)
			}
		})
	}
}

func TestRoundsHistory(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			base := time.Unix(0, 0).UTC()
			for i, outcome := range []model.Outcome{model.Won, model.Lost, model.Won} {
				rec := model.RoundRecord{
					Player:       "ada",
					Dictionary:   "fr_dict",
					Word:         "chat",
					Outcome:      outcome,
					AttemptsLeft: 3,
					Guesses:      []string{"a", "c"},
					EndedAt:      base.Add(time.Duration(i) * time.Minute),
				}
				if _, err := st.InsertRound(ctx, rec); err != nil {
					t.Fatalf("insert round: %v", err)
				}
			}
			if _, err := st.InsertRound(ctx, model.RoundRecord{Player: "bob", Dictionary: "eng_dict", Word: "dog", Outcome: model.Lost, EndedAt: base}); err != nil {
				t.Fatalf("insert round: %v", err)
			}

			rounds, err := st.ListRounds(ctx, "ada", 2)
			if err != nil {
				t.Fatalf("list rounds: %v", err)
			}
			if len(rounds) != 2 {
				t.Fatalf("expected 2 rounds, got %d", len(rounds))
			}
			if rounds[0].Outcome != model.Won || rounds[1].Outcome != model.Lost {
				t.Fatalf("expected newest first, got %+v", rounds)
			}
			if len(rounds[0].Guesses) != 2 || rounds[0].Guesses[1] != "c" {
				t.Fatalf("unexpected guesses: %v", rounds[0].Guesses)
			}
			all, err := st.ListRounds(ctx, "", 0)
			if err != nil {
				t.Fatalf("list rounds: %v", err)
			}
			if len(all) != 4 {
				t.Fatalf("expected 4 rounds, got %d", len(all))
			}
		})
	}
}
