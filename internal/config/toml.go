// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	LogLevel *string     `toml:"log-level"`
	Game     GameConfig  `toml:"game"`
	Paths    PathsConfig `toml:"paths"`
}

// GameConfig maps round and scoring settings.
type GameConfig struct {
	Dictionary     *string  `toml:"dictionary"`
	Dictionaries   []string `toml:"dictionaries"`
	Attempts       *int     `toml:"attempts"`
	ScoreIncrement *int     `toml:"score-increment"`
	LevelThreshold *int     `toml:"level-threshold"`
}

// PathsConfig overrides default file locations.
type PathsConfig struct {
	DB      *string `toml:"db"`
	DictDir *string `toml:"dict-dir"`
	LogFile *string `toml:"log-file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
