// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Level is a coarse skill tier derived from cumulative win rate.
type Level string

// Skill tiers in ascending order.
const (
	LevelNovice  Level = "novice"
	LevelAverage Level = "average"
	LevelPro     Level = "pro"
	LevelExpert  Level = "expert"
	LevelGodhead Level = "godhead"
)

// Levels lists every tier from lowest to highest.
var Levels = []Level{LevelNovice, LevelAverage, LevelPro, LevelExpert, LevelGodhead}

// ParseLevel maps a stored level name back to a Level.
func ParseLevel(s string) (Level, error) {
	for _, l := range Levels {
		if string(l) == strings.ToLower(strings.TrimSpace(s)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown level %q", s)
}

// Outcome is the result of a round.
type Outcome int

const (
	Pending Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "pending"
	}
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "won":
		return Won, nil
	case "lost":
		return Lost, nil
	case "pending":
		return Pending, nil
	}
	return Pending, fmt.Errorf("unknown outcome %q", s)
}

// Player holds cumulative statistics for one player.
type Player struct {
	Name  string
	Games int
	Wins  int
	Score int
	Level Level
}

// NewPlayer returns a fresh novice record.
func NewPlayer(name string) Player {
	return Player{Name: name, Level: LevelNovice}
}

// WinRate returns wins over games, or 0 before the first game.
func (p Player) WinRate() float64 {
	if p.Games == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.Games)
}

// Report is the state visible to the player after each guess.
type Report struct {
	// Word is MaskedWord while the round is pending.
	Word      string
	Tracker   string
	Attempts  int
	Proposals []string
	Outcome   Outcome
}

// MaskedWord stands in for the hidden word while a round is pending.
const MaskedWord = "*"

// Config defines game settings.
type Config struct {
	Dictionary     string
	Dictionaries   []string
	Attempts       int
	ScoreIncrement int
	LevelThreshold int
}

// RoundRecord captures a completed round.
type RoundRecord struct {
	ID           int64
	Player       string
	Dictionary   string
	Word         string
	Outcome      Outcome
	AttemptsLeft int
	Guesses      []string
	EndedAt      time.Time
}

// LeaderboardConfig defines ordering and limits for player listings.
type LeaderboardConfig struct {
	Limit int
	// MinGames hides players with fewer completed games.
	MinGames int
}

// DictionaryInfo summarizes a stored dictionary.
type DictionaryInfo struct {
	ID    string
	Words int
}
