// Package stats contains the player statistics rule and reporting.
package stats

import (
	"github.com/verte-zerg/hangman/internal/model"
)

// Defaults for the statistics rule.
const (
	DefaultScoreIncrement = 3
	DefaultLevelThreshold = 5
)

// Rules parameterizes Apply.
type Rules struct {
	ScoreIncrement int
	// LevelThreshold is the number of games a player must exceed before
	// the level is recomputed.
	LevelThreshold int
}

// DefaultRules returns the standard scoring rules.
func DefaultRules() Rules {
	return Rules{ScoreIncrement: DefaultScoreIncrement, LevelThreshold: DefaultLevelThreshold}
}

// Apply returns p updated for one completed round with the given outcome.
// Pending outcomes leave the player unchanged.
func Apply(p model.Player, outcome model.Outcome, rules Rules) model.Player {
	if outcome == model.Pending {
		return p
	}
	p.Games++
	if outcome == model.Won {
		p.Wins++
		p.Score += rules.ScoreIncrement
	}
	if p.Games > rules.LevelThreshold {
		p.Level = LevelFor(p.Wins, p.Games)
	}
	if p.Level == "" {
		p.Level = model.LevelNovice
	}
	return p
}

// LevelFor maps a win rate onto model.Levels. A perfect record maps to the
// highest level.
func LevelFor(wins, games int) model.Level {
	if games <= 0 {
		return model.LevelNovice
	}
	n := len(model.Levels)
	idx := wins * n / games
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return model.Levels[idx]
}
