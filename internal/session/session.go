// Package session ties a player record to the rounds they play.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/verte-zerg/hangman/internal/game"
	"github.com/verte-zerg/hangman/internal/generator"
	"github.com/verte-zerg/hangman/internal/model"
	"github.com/verte-zerg/hangman/internal/stats"
	"github.com/verte-zerg/hangman/internal/store"
)

// DefaultDictionary is used when neither the caller nor the config names one.
const DefaultDictionary = "fr_dict"

var (
	// ErrInvalidPlayer is returned for an empty player name.
	ErrInvalidPlayer = errors.New("player name is empty")
	// ErrUnknownDictionary is returned when a dictionary is outside the
	// configured set.
	ErrUnknownDictionary = errors.New("dictionary not configured")
	// ErrNoActiveRound is returned by Guess when no round is in progress.
	ErrNoActiveRound = errors.New("no active round")
)

// PlayerStore loads and persists player records.
type PlayerStore interface {
	Player(ctx context.Context, name string) (model.Player, error)
	PutPlayer(ctx context.Context, p model.Player) error
	UpdatePlayer(ctx context.Context, name string, fn func(model.Player) model.Player) (model.Player, error)
}

// RoundRecorder stores completed rounds.
type RoundRecorder interface {
	InsertRound(ctx context.Context, rec model.RoundRecord) (int64, error)
}

// Options configures a Session. Zero values select defaults.
type Options struct {
	Config model.Config
	Picker game.Picker
	// Recorder is optional; completed rounds are not kept without one.
	Recorder RoundRecorder
	Logger   *log.Logger
	Now      func() time.Time
}

// Session owns one player record and at most one active round.
// A Session is not safe for concurrent use.
type Session struct {
	players    PlayerStore
	dicts      game.DictionarySource
	recorder   RoundRecorder
	picker     game.Picker
	logger     *log.Logger
	now        func() time.Time
	cfg        model.Config
	rules      stats.Rules
	player     model.Player
	round      *game.Round
	dictionary string
}

// New loads the named player, creating and persisting a novice record when
// the player is unknown.
func New(ctx context.Context, players PlayerStore, dicts game.DictionarySource, name string, opts Options) (*Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidPlayer
	}
	s := &Session{
		players:  players,
		dicts:    dicts,
		recorder: opts.Recorder,
		picker:   opts.Picker,
		logger:   opts.Logger,
		now:      opts.Now,
		cfg:      withDefaults(opts.Config),
	}
	if s.picker == nil {
		s.picker = generator.New()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.rules = stats.Rules{ScoreIncrement: s.cfg.ScoreIncrement, LevelThreshold: s.cfg.LevelThreshold}

	p, err := players.Player(ctx, name)
	switch {
	case err == nil:
		s.logger.Debug("loaded player", "player", name, "games", p.Games, "level", p.Level)
	case errors.Is(err, store.ErrNotFound):
		p = model.NewPlayer(name)
		if err := players.PutPlayer(ctx, p); err != nil {
			return nil, fmt.Errorf("failed to create player: %w", err)
		}
		s.logger.Info("created player", "player", name)
	default:
		return nil, fmt.Errorf("failed to load player: %w", err)
	}
	s.player = p
	return s, nil
}

func withDefaults(cfg model.Config) model.Config {
	if cfg.Dictionary == "" {
		cfg.Dictionary = DefaultDictionary
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = game.DefaultAttempts
	}
	if cfg.ScoreIncrement <= 0 {
		cfg.ScoreIncrement = stats.DefaultScoreIncrement
	}
	if cfg.LevelThreshold <= 0 {
		cfg.LevelThreshold = stats.DefaultLevelThreshold
	}
	return cfg
}

// Player returns the current player record.
func (s *Session) Player() model.Player {
	return s.player
}

// Active reports whether a round is in progress.
func (s *Session) Active() bool {
	return s.round != nil
}

// Dictionary returns the dictionary of the active or last started round.
func (s *Session) Dictionary() string {
	return s.dictionary
}

// Start begins a new round, abandoning any round in progress. An empty
// dictionaryID selects the configured default.
func (s *Session) Start(ctx context.Context, dictionaryID string) (model.Report, error) {
	if dictionaryID == "" {
		dictionaryID = s.cfg.Dictionary
	}
	if !s.allowed(dictionaryID) {
		return model.Report{}, fmt.Errorf("%w: %s", ErrUnknownDictionary, dictionaryID)
	}
	if s.round != nil {
		s.Abandon()
	}
	round, err := game.Start(ctx, s.dicts, s.picker, dictionaryID, s.cfg.Attempts)
	if err != nil {
		return model.Report{}, err
	}
	s.round = round
	s.dictionary = dictionaryID
	s.logger.Debug("round started", "player", s.player.Name, "dictionary", dictionaryID, "attempts", round.Attempts())
	return round.Report(), nil
}

func (s *Session) allowed(id string) bool {
	if len(s.cfg.Dictionaries) == 0 {
		return true
	}
	for _, d := range s.cfg.Dictionaries {
		if d == id {
			return true
		}
	}
	return false
}

// Guess submits one guess to the active round. When the round ends the
// player statistics are updated and persisted exactly once.
func (s *Session) Guess(ctx context.Context, guess string) (model.Report, error) {
	if s.round == nil {
		return model.Report{}, ErrNoActiveRound
	}
	report, err := s.round.Submit(guess)
	if err != nil {
		return report, err
	}
	if !s.round.Over() {
		return report, nil
	}
	s.round = nil
	if err := s.finish(ctx, report); err != nil {
		return report, err
	}
	return report, nil
}

func (s *Session) finish(ctx context.Context, report model.Report) error {
	updated, err := s.players.UpdatePlayer(ctx, s.player.Name, func(p model.Player) model.Player {
		return stats.Apply(p, report.Outcome, s.rules)
	})
	if err != nil {
		return fmt.Errorf("failed to update player stats: %w", err)
	}
	s.player = updated
	s.logger.Info("round finished",
		"player", updated.Name,
		"outcome", report.Outcome,
		"word", report.Word,
		"games", updated.Games,
		"level", updated.Level,
	)

	if s.recorder == nil {
		return nil
	}
	rec := model.RoundRecord{
		Player:       updated.Name,
		Dictionary:   s.dictionary,
		Word:         report.Word,
		Outcome:      report.Outcome,
		AttemptsLeft: report.Attempts,
		Guesses:      report.Proposals,
		EndedAt:      s.now(),
	}
	if _, err := s.recorder.InsertRound(ctx, rec); err != nil {
		return fmt.Errorf("failed to record round: %w", err)
	}
	return nil
}

// Abandon discards the active round without recording an outcome.
func (s *Session) Abandon() {
	if s.round == nil {
		return
	}
	s.logger.Debug("round abandoned", "player", s.player.Name, "dictionary", s.dictionary)
	s.round = nil
}
