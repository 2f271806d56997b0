package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/hangman/internal/config"
)

func setupHome(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	return root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestIngestAndListDictionaries(t *testing.T) {
	root := setupHome(t)
	dir := filepath.Join(root, "dicos")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "words_fr.txt"), []byte("chat\nchien\n\n123\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := execute(t, "ingest", "--dir", dir)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if strings.TrimSpace(out) != "fr_dict\t2" {
		t.Fatalf("unexpected ingest output: %q", out)
	}

	out, err = execute(t, "dicts")
	if err != nil {
		t.Fatalf("dicts: %v", err)
	}
	if strings.TrimSpace(out) != "* fr_dict\t2" {
		t.Fatalf("unexpected dicts output: %q", out)
	}
}

func TestIngestEmptyDirectory(t *testing.T) {
	root := setupHome(t)
	if _, err := execute(t, "ingest", "--dir", filepath.Join(root, "missing")); err == nil {
		t.Fatalf("expected error for missing dictionary directory")
	}
	if _, err := os.Stat(filepath.Join(root, "missing")); err != nil {
		t.Fatalf("expected directory to be created: %v", err)
	}
}

func TestStatsUnknownPlayer(t *testing.T) {
	setupHome(t)
	_, err := execute(t, "stats", "--player", "nobody")
	if err == nil || !strings.Contains(err.Error(), "has not played yet") {
		t.Fatalf("expected unknown player error, got %v", err)
	}
}

func TestLeaderboardEmpty(t *testing.T) {
	setupHome(t)
	out, err := execute(t, "leaderboard")
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if strings.TrimSpace(out) != "No players found." {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	setupHome(t)
	path := config.DefaultConfigPath()
	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("write config: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	lines := strings.Split(string(raw), "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "# ") && strings.Contains(line, " = ") {
			lines[i] = strings.TrimPrefix(line, "# ")
		}
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	settings := config.DefaultSettings().Merge(cfg)
	if settings.Game.Attempts != config.DefaultAttempts || len(settings.Game.Dictionaries) != 1 {
		t.Fatalf("unexpected settings: %+v", settings.Game)
	}
	if err := config.Validate(settings.Game); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	if _, err := newLogger(&bytes.Buffer{}, "loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
