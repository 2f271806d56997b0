// Package main provides the CLI entrypoint for hangman.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/hangman/internal/config"
	"github.com/verte-zerg/hangman/internal/generator"
	"github.com/verte-zerg/hangman/internal/model"
	"github.com/verte-zerg/hangman/internal/session"
	"github.com/verte-zerg/hangman/internal/stats"
	"github.com/verte-zerg/hangman/internal/statsui"
	"github.com/verte-zerg/hangman/internal/store"
	"github.com/verte-zerg/hangman/internal/tui"
	"github.com/verte-zerg/hangman/internal/wordlist"
)

const (
	defaultPlayer      = "player"
	defaultStatsLast   = 20
	defaultTrendWindow = 5
	defaultBoardLimit  = 10
)

var (
	playPlayer   string
	playDict     string
	playAttempts int

	ingestDir string

	statsPlayer string
	statsLast   int
	statsWindow int
	statsPlot   bool

	boardLimit    int
	boardMinGames int
	boardTUI      bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hangman",
		Short:         "TUI hangman game",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}
	addPlayFlags(rootCmd)

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Play rounds in the terminal UI",
		Args:  cobra.NoArgs,
		RunE:  runPlayCmd,
	}
	addPlayFlags(playCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(newIngestCmd())
	rootCmd.AddCommand(newDictsCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&playPlayer, "player", currentUser(), "player name")
	cmd.Flags().StringVar(&playDict, "dict", config.DefaultDictionary, "dictionary id")
	cmd.Flags().IntVar(&playAttempts, "attempts", config.DefaultAttempts, "attempts per round")
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "dict", &playDict, &settings.Game.Dictionary)
	applyIntConfig(cmd, "attempts", &playAttempts, &settings.Game.Attempts)
	settings.Game.Dictionary = playDict
	settings.Game.Attempts = playAttempts
	if err := config.Validate(settings.Game); err != nil {
		return err
	}

	logFile, err := openLogFile(settings.Paths.LogFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logFile.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}()
	logger, err := newLogger(logFile, settings.LogLevel)
	if err != nil {
		return err
	}

	st, err := store.Open(settings.Paths.DB)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	if err := ensureDictionaries(ctx, st, settings.Paths.DictDir, logger); err != nil {
		return err
	}

	sess, err := session.New(ctx, st, st, playPlayer, session.Options{
		Config:   settings.Game,
		Picker:   generator.New(),
		Recorder: st,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}

	ui := tui.NewModel(sess, settings.Game.Dictionary, settings.Game.Attempts, logger)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// ensureDictionaries ingests the dictionary directory when the store holds
// no dictionaries yet.
func ensureDictionaries(ctx context.Context, st *store.Store, dir string, logger *log.Logger) error {
	dicts, err := st.ListDictionaries(ctx)
	if err != nil {
		return fmt.Errorf("failed to list dictionaries: %w", err)
	}
	if len(dicts) > 0 {
		return nil
	}
	results, err := wordlist.Ingest(ctx, dir, st)
	if err != nil {
		if errors.Is(err, wordlist.ErrNoDictionaries) {
			return fmt.Errorf("no dictionaries found in %s (add words_<id>.txt files and run: hangman ingest)", dir)
		}
		return fmt.Errorf("failed to ingest dictionaries: %w", err)
	}
	for _, r := range results {
		logger.Info("ingested dictionary", "id", r.ID, "words", r.Words, "path", r.Path)
	}
	return nil
}

func newIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load words_<id>.txt files into the store",
		Args:  cobra.NoArgs,
		RunE:  runIngestCmd,
	}
	cmd.Flags().StringVar(&ingestDir, "dir", "", "dictionary directory (default from config)")
	return cmd
}

func runIngestCmd(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), settings.LogLevel)
	if err != nil {
		return err
	}
	dir := ingestDir
	if dir == "" {
		dir = settings.Paths.DictDir
	}

	st, err := store.Open(settings.Paths.DB)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Error("failed to close db", "error", cerr)
		}
	}()

	results, err := wordlist.Ingest(context.Background(), dir, st)
	if err != nil {
		if errors.Is(err, wordlist.ErrNoDictionaries) {
			logger.Warn("no dictionary files found", "dir", dir, "expected", wordlist.FileName(config.DefaultDictionary))
		}
		return err
	}
	for _, r := range results {
		logger.Info("ingested dictionary", "id", r.ID, "words", r.Words)
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", r.ID, r.Words); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newDictsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dicts",
		Short: "List ingested dictionaries",
		Args:  cobra.NoArgs,
		RunE:  runDictsCmd,
	}
}

func runDictsCmd(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	st, err := store.Open(settings.Paths.DB)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	dicts, err := st.ListDictionaries(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list dictionaries: %w", err)
	}
	if len(dicts) == 0 {
		logErrln("No dictionaries ingested. Run: hangman ingest")
		return fmt.Errorf("no dictionaries found")
	}
	for _, d := range dicts {
		marker := " "
		if d.ID == settings.Game.Dictionary {
			marker = "*"
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%d\n", marker, d.ID, d.Words); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show a player's statistics and recent rounds",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsPlayer, "player", currentUser(), "player name")
	cmd.Flags().IntVar(&statsLast, "last", defaultStatsLast, "number of recent rounds")
	cmd.Flags().IntVar(&statsWindow, "window", defaultTrendWindow, "moving average window for the trend line")
	cmd.Flags().BoolVar(&statsPlot, "plot", false, "plot the rolling win rate")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	st, err := store.Open(settings.Paths.DB)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	p, err := st.Player(ctx, statsPlayer)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("player %q has not played yet", statsPlayer)
		}
		return fmt.Errorf("failed to load player: %w", err)
	}
	rounds, err := st.ListRounds(ctx, p.Name, statsLast)
	if err != nil {
		return fmt.Errorf("failed to load rounds: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderPlayer(out, p, rounds, statsWindow); err != nil {
		return err
	}
	if !statsPlot {
		return nil
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}
	title := fmt.Sprintf("Win rate (rolling %d)", statsWindow)
	return stats.PlotRate(out, title, stats.WinRateCurve(rounds, statsWindow), 0, 0)
}

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Rank players by score",
		Args:  cobra.NoArgs,
		RunE:  runLeaderboardCmd,
	}
	cmd.Flags().IntVar(&boardLimit, "limit", defaultBoardLimit, "number of players (0 for all)")
	cmd.Flags().IntVar(&boardMinGames, "min-games", 0, "hide players with fewer games")
	cmd.Flags().BoolVar(&boardTUI, "tui", false, "browse the leaderboard interactively")
	return cmd
}

func runLeaderboardCmd(cmd *cobra.Command, _ []string) error {
	if boardLimit < 0 {
		return fmt.Errorf("--limit must be >= 0")
	}
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	st, err := store.Open(settings.Paths.DB)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	cfg := model.LeaderboardConfig{Limit: boardLimit, MinGames: boardMinGames}
	if boardTUI {
		program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run leaderboard TUI: %w", err)
		}
		return nil
	}
	players, err := st.ListPlayers(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}
	return stats.RenderLeaderboard(cmd.OutOrStdout(), players)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeDefaultConfig(path); err != nil {
		return err
	}
	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeDefaultConfig writes the commented template unless a config exists.
func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func loadSettings() (config.Settings, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.Settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	return config.DefaultSettings().Merge(fileCfg), nil
}

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log-level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	}), nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func currentUser() string {
	if name := strings.TrimSpace(os.Getenv("USER")); name != "" {
		return name
	}
	return defaultPlayer
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# hangman configuration
# Uncomment a value to enable it. CLI flags override config values.

# log-level = %q              # debug, info, warn or error

[game]
# dictionary = %q        # Dictionary used when --dict is not given
# dictionaries = [%q]    # Restrict rounds to these dictionaries
# attempts = %d                # Attempts per round
# score-increment = %d          # Score gained per win
# level-threshold = %d          # Games played before levels are computed

[paths]
# db = %q
# dict-dir = %q
# log-file = %q
`,
		config.DefaultLogLevel,
		config.DefaultDictionary,
		config.DefaultDictionary,
		config.DefaultAttempts,
		config.DefaultScoreIncrement,
		config.DefaultLevelThreshold,
		config.DefaultDBPath(),
		config.DefaultDictDir(),
		config.DefaultLogPath(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
