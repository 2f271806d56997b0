// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/verte-zerg/hangman/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when a dictionary or player is absent.
var ErrNotFound = errors.New("not found")

// Store wraps SQLite access for dictionaries, players and round history.
type Store struct {
	db    *sql.DB
	locks keyedMutex
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	// Immediate transactions take the write lock up front so concurrent
	// processes serialize player read-modify-write cycles.
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_txlock=immediate"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS dictionaries (
			id TEXT NOT NULL,
			position INTEGER NOT NULL,
			word TEXT NOT NULL,
			PRIMARY KEY (id, position)
		);`,
		`CREATE TABLE IF NOT EXISTS players (
			name TEXT PRIMARY KEY,
			games INTEGER NOT NULL,
			wins INTEGER NOT NULL,
			score INTEGER NOT NULL,
			level TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY,
			player TEXT NOT NULL,
			dictionary TEXT NOT NULL,
			word TEXT NOT NULL,
			outcome TEXT NOT NULL,
			attempts_left INTEGER NOT NULL,
			guesses TEXT NOT NULL,
			ended_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_player_ended_at ON rounds(player, ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Words returns the ordered word list of a dictionary.
func (s *Store) Words(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT word FROM dictionaries WHERE id = ? ORDER BY position ASC`, id)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var words []string
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("dictionary %q: %w", id, ErrNotFound)
	}
	return words, nil
}

// PutWords replaces the word list stored under id.
func (s *Store) PutWords(ctx context.Context, id string, words []string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM dictionaries WHERE id = ?`, id); err != nil {
		return err
	}
	if len(words) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO dictionaries (id, position, word) VALUES (?, ?, ?)`)
		if perr != nil {
			err = perr
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for i, word := range words {
			if _, err = stmt.ExecContext(ctx, id, i, word); err != nil {
				return err
			}
		}
	}
	err = tx.Commit()
	return err
}

// ListDictionaries returns every stored dictionary with its word count.
func (s *Store) ListDictionaries(ctx context.Context) ([]model.DictionaryInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, COUNT(*) FROM dictionaries GROUP BY id ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.DictionaryInfo
	for rows.Next() {
		var info model.DictionaryInfo
		if err := rows.Scan(&info.ID, &info.Words); err != nil {
			return nil, err
		}
		result = append(result, info)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Player loads a player record.
func (s *Store) Player(ctx context.Context, name string) (model.Player, error) {
	return scanPlayer(s.db.QueryRowContext(ctx,
		`SELECT name, games, wins, score, level FROM players WHERE name = ?`, name), name)
}

// PutPlayer writes the full player record, replacing any previous one.
func (s *Store) PutPlayer(ctx context.Context, p model.Player) error {
	_, err := s.db.ExecContext(ctx, upsertPlayerSQL, p.Name, p.Games, p.Wins, p.Score, string(p.Level))
	return err
}

const upsertPlayerSQL = `INSERT INTO players (name, games, wins, score, level)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET
		games = excluded.games,
		wins = excluded.wins,
		score = excluded.score,
		level = excluded.level`

// UpdatePlayer applies fn to the stored player and writes the result back
// inside one transaction. Updates for the same name are serialized.
func (s *Store) UpdatePlayer(ctx context.Context, name string, fn func(model.Player) model.Player) (updated model.Player, err error) {
	unlock := s.locks.lock(name)
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Player{}, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	current, err := scanPlayer(tx.QueryRowContext(ctx,
		`SELECT name, games, wins, score, level FROM players WHERE name = ?`, name), name)
	if err != nil {
		return model.Player{}, err
	}
	updated = fn(current)
	updated.Name = name
	if _, err = tx.ExecContext(ctx, upsertPlayerSQL, updated.Name, updated.Games, updated.Wins, updated.Score, string(updated.Level)); err != nil {
		return model.Player{}, err
	}
	if err = tx.Commit(); err != nil {
		return model.Player{}, err
	}
	return updated, nil
}

// ListPlayers returns players ordered by score, then win rate, then name.
func (s *Store) ListPlayers(ctx context.Context, cfg model.LeaderboardConfig) ([]model.Player, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.MinGames > 0 {
		clauses = append(clauses, "games >= ?")
		args = append(args, cfg.MinGames)
	}
	query := fmt.Sprintf(`SELECT name, games, wins, score, level
		FROM players
		WHERE %s
		ORDER BY score DESC,
			CASE WHEN games = 0 THEN 0 ELSE CAST(wins AS REAL) / games END DESC,
			name ASC`, strings.Join(clauses, " AND "))
	if cfg.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, cfg.Limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var players []model.Player
	for rows.Next() {
		p, err := scanPlayer(rows, "")
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

// InsertRound stores a completed round.
func (s *Store) InsertRound(ctx context.Context, rec model.RoundRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO rounds (player, dictionary, word, outcome, attempts_left, guesses, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Player,
		rec.Dictionary,
		rec.Word,
		rec.Outcome.String(),
		rec.AttemptsLeft,
		strings.Join(rec.Guesses, ","),
		rec.EndedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRounds returns the most recent rounds of a player, newest first.
// An empty player lists rounds of every player.
func (s *Store) ListRounds(ctx context.Context, player string, limit int) ([]model.RoundRecord, error) {
	query := `SELECT id, player, dictionary, word, outcome, attempts_left, guesses, ended_at
		FROM rounds
		WHERE (? = '' OR player = ?)
		ORDER BY ended_at DESC, id DESC`
	args := []any{player, player}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.RoundRecord
	for rows.Next() {
		var rec model.RoundRecord
		var outcome, guesses, endedAt string
		if err := rows.Scan(&rec.ID, &rec.Player, &rec.Dictionary, &rec.Word, &outcome, &rec.AttemptsLeft, &guesses, &endedAt); err != nil {
			return nil, err
		}
		if rec.Outcome, err = model.ParseOutcome(outcome); err != nil {
			return nil, err
		}
		if guesses != "" {
			rec.Guesses = strings.Split(guesses, ",")
		}
		if rec.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner, name string) (model.Player, error) {
	var p model.Player
	var level string
	if err := row.Scan(&p.Name, &p.Games, &p.Wins, &p.Score, &level); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Player{}, fmt.Errorf("player %q: %w", name, ErrNotFound)
		}
		return model.Player{}, err
	}
	parsed, err := model.ParseLevel(level)
	if err != nil {
		return model.Player{}, err
	}
	p.Level = parsed
	return p, nil
}

// keyedMutex serializes work per key.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = map[string]*keyedLock{}
	}
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
