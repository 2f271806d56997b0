package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/verte-zerg/hangman/internal/model"
)

// Memory is an in-process store with the same behavior as Store.
// State is lost when the process exits.
type Memory struct {
	mu           sync.RWMutex
	dictionaries map[string][]string
	players      map[string]model.Player
	rounds       []model.RoundRecord
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		dictionaries: map[string][]string{},
		players:      map[string]model.Player{},
	}
}

// Words returns a copy of the word list stored under id.
func (m *Memory) Words(_ context.Context, id string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	words, ok := m.dictionaries[id]
	if !ok || len(words) == 0 {
		return nil, fmt.Errorf("dictionary %q: %w", id, ErrNotFound)
	}
	return append([]string(nil), words...), nil
}

// PutWords replaces the word list stored under id.
func (m *Memory) PutWords(_ context.Context, id string, words []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dictionaries[id] = append([]string(nil), words...)
	return nil
}

// ListDictionaries returns every stored dictionary with its word count.
func (m *Memory) ListDictionaries(_ context.Context) ([]model.DictionaryInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]model.DictionaryInfo, 0, len(m.dictionaries))
	for id, words := range m.dictionaries {
		if len(words) == 0 {
			continue
		}
		result = append(result, model.DictionaryInfo{ID: id, Words: len(words)})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Player loads a player record.
func (m *Memory) Player(_ context.Context, name string) (model.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.players[name]
	if !ok {
		return model.Player{}, fmt.Errorf("player %q: %w", name, ErrNotFound)
	}
	return p, nil
}

// PutPlayer writes the full player record.
func (m *Memory) PutPlayer(_ context.Context, p model.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[p.Name] = p
	return nil
}

// UpdatePlayer applies fn to the stored player under the write lock.
func (m *Memory) UpdatePlayer(_ context.Context, name string, fn func(model.Player) model.Player) (model.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.players[name]
	if !ok {
		return model.Player{}, fmt.Errorf("player %q: %w", name, ErrNotFound)
	}
	updated := fn(current)
	updated.Name = name
	m.players[name] = updated
	return updated, nil
}

// ListPlayers returns players ordered like Store.ListPlayers.
func (m *Memory) ListPlayers(_ context.Context, cfg model.LeaderboardConfig) ([]model.Player, error) {
	m.mu.RLock()
	players := make([]model.Player, 0, len(m.players))
	for _, p := range m.players {
		if p.Games < cfg.MinGames {
			continue
		}
		players = append(players, p)
	}
	m.mu.RUnlock()

	sort.Slice(players, func(i, j int) bool {
		if players[i].Score != players[j].Score {
			return players[i].Score > players[j].Score
		}
		if ri, rj := players[i].WinRate(), players[j].WinRate(); ri != rj {
			return ri > rj
		}
		return players[i].Name < players[j].Name
	})
	if cfg.Limit > 0 && len(players) > cfg.Limit {
		players = players[:cfg.Limit]
	}
	return players, nil
}

// InsertRound appends a completed round.
func (m *Memory) InsertRound(_ context.Context, rec model.RoundRecord) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.ID = int64(len(m.rounds) + 1)
	rec.Guesses = append([]string(nil), rec.Guesses...)
	m.rounds = append(m.rounds, rec)
	return rec.ID, nil
}

// ListRounds returns the most recent rounds of a player, newest first.
func (m *Memory) ListRounds(_ context.Context, player string, limit int) ([]model.RoundRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []model.RoundRecord
	for i := len(m.rounds) - 1; i >= 0; i-- {
		rec := m.rounds[i]
		if player != "" && rec.Player != player {
			continue
		}
		result = append(result, rec)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}
