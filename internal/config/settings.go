package config

import (
	"fmt"

	"github.com/verte-zerg/hangman/internal/model"
)

// Defaults applied before the config file and flags.
const (
	DefaultDictionary     = "fr_dict"
	DefaultAttempts       = 12
	DefaultScoreIncrement = 3
	DefaultLevelThreshold = 5
	DefaultLogLevel       = "info"
)

// Paths holds resolved file locations.
type Paths struct {
	DB      string
	DictDir string
	LogFile string
}

// Settings are the effective values after merging defaults and the file.
type Settings struct {
	Game     model.Config
	Paths    Paths
	LogLevel string
}

// DefaultSettings returns built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		Game: model.Config{
			Dictionary:     DefaultDictionary,
			Attempts:       DefaultAttempts,
			ScoreIncrement: DefaultScoreIncrement,
			LevelThreshold: DefaultLevelThreshold,
		},
		Paths: Paths{
			DB:      DefaultDBPath(),
			DictDir: DefaultDictDir(),
			LogFile: DefaultLogPath(),
		},
		LogLevel: DefaultLogLevel,
	}
}

// Merge overlays values set in the file onto s.
func (s Settings) Merge(f FileConfig) Settings {
	if f.LogLevel != nil {
		s.LogLevel = *f.LogLevel
	}
	if f.Game.Dictionary != nil {
		s.Game.Dictionary = *f.Game.Dictionary
	}
	if f.Game.Dictionaries != nil {
		s.Game.Dictionaries = append([]string(nil), f.Game.Dictionaries...)
	}
	if f.Game.Attempts != nil {
		s.Game.Attempts = *f.Game.Attempts
	}
	if f.Game.ScoreIncrement != nil {
		s.Game.ScoreIncrement = *f.Game.ScoreIncrement
	}
	if f.Game.LevelThreshold != nil {
		s.Game.LevelThreshold = *f.Game.LevelThreshold
	}
	if f.Paths.DB != nil {
		s.Paths.DB = *f.Paths.DB
	}
	if f.Paths.DictDir != nil {
		s.Paths.DictDir = *f.Paths.DictDir
	}
	if f.Paths.LogFile != nil {
		s.Paths.LogFile = *f.Paths.LogFile
	}
	return s
}

// Validate checks game settings.
func Validate(cfg model.Config) error {
	if cfg.Dictionary == "" {
		return fmt.Errorf("dictionary must not be empty")
	}
	if cfg.Attempts <= 0 {
		return fmt.Errorf("attempts must be > 0")
	}
	if cfg.ScoreIncrement <= 0 {
		return fmt.Errorf("score-increment must be > 0")
	}
	if cfg.LevelThreshold <= 0 {
		return fmt.Errorf("level-threshold must be > 0")
	}
	if len(cfg.Dictionaries) > 0 {
		found := false
		for _, d := range cfg.Dictionaries {
			if d == cfg.Dictionary {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("dictionary %q is not in the configured dictionaries", cfg.Dictionary)
		}
	}
	return nil
}
