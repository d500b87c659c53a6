// Package main provides the CLI entrypoint for keydrill.
package main

import (
	"bufio"
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"keydrill/internal/config"
	"keydrill/internal/highscore"
	"keydrill/internal/metrics"
	"keydrill/internal/model"
	"keydrill/internal/session"
	"keydrill/internal/stats"
	"keydrill/internal/store"
	"keydrill/internal/tui"
	"keydrill/internal/wordlist"
	"keydrill/internal/words"
)

const (
	defaultScoreLimit  = 10
	defaultTrendWindow = 10
	menuTimedSeconds   = 60
	menuWordCount      = 50
)

var (
	runTimed   int
	runWords   int
	runPunct   float64
	runNumbers bool
	runList    string
	runTop     int

	scoresLimit int

	statsMode   string
	statsLast   int
	statsWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "keydrill",
		Short:         "Terminal typing trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runSessionCmd,
	}

	rootCmd.Flags().IntVar(&runTimed, "timed", 0, "timed mode: session length in seconds")
	rootCmd.Flags().IntVar(&runWords, "words", 0, "word-count mode: number of words")
	rootCmd.Flags().Float64Var(&runPunct, "punct", 0, "punctuation probability per word (0-1)")
	rootCmd.Flags().BoolVar(&runNumbers, "numbers", false, "enable occasional number substitution")
	rootCmd.Flags().StringVar(&runList, "list", "", "custom word list file path")
	rootCmd.Flags().IntVar(&runTop, "top", 25, "highscores kept per mode")

	rootCmd.AddCommand(newScoresCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runSessionCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "timed", &runTimed, fileCfg.Session.Timed)
	applyIntConfig(cmd, "words", &runWords, fileCfg.Session.Words)
	applyFloatConfig(cmd, "punct", &runPunct, fileCfg.Session.Punct)
	applyBoolConfig(cmd, "numbers", &runNumbers, fileCfg.Session.Numbers)
	applyStringConfig(cmd, "list", &runList, fileCfg.Session.Wordlist)
	applyIntConfig(cmd, "top", &runTop, fileCfg.Session.Top)

	if runTimed > 0 && runWords > 0 {
		return fmt.Errorf("%w: --timed and --words are mutually exclusive", model.ErrInvalidConfiguration)
	}
	if runTimed == 0 && runWords == 0 {
		return interactiveMenu()
	}

	mode := model.Timed(runTimed)
	if runWords > 0 {
		mode = model.WordCount(runWords)
	}
	cfg := model.SessionConfig{
		Mode:         mode,
		PunctProb:    runPunct,
		Numbers:      runNumbers,
		WordlistPath: runList,
		TopN:         runTop,
	}
	return runSession(cfg)
}

func runSession(cfg model.SessionConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	vocab, err := wordlist.Resolve(cfg.WordlistPath, config.DefaultWordListPath())
	if err != nil {
		return err
	}

	source := words.New(vocab, cfg.PunctProb, cfg.Numbers, rand.New(rand.NewSource(time.Now().UnixNano())))
	keeper := &highscore.FileKeeper{Path: config.DefaultScoresPath(), TopN: cfg.TopN}
	engine, err := session.New(cfg, source, session.NopSink{}, keeper)
	if err != nil {
		return err
	}

	var result model.SessionResult
	switch session.Probe() {
	case session.RealTime:
		result, err = runRealTime(engine)
		if err != nil {
			// Degrade to the line-buffered loop when the full-screen
			// interface cannot start.
			logErrf("interactive interface unavailable: %v\n", err)
			engine, err = session.New(cfg, source, session.NopSink{}, keeper)
			if err != nil {
				return err
			}
			result, err = engine.RunPrompt(os.Stdin, os.Stdout)
		}
	default:
		result, err = engine.RunPrompt(os.Stdin, os.Stdout)
	}
	if err != nil {
		return err
	}

	printSummary(result)
	if err := config.SaveLastUsed(config.DefaultStatePath(), cfg); err != nil {
		logErrf("failed to save last-used config: %v\n", err)
	}
	recordHistory(result)
	return nil
}

func runRealTime(engine *session.Engine) (model.SessionResult, error) {
	m := tui.NewModel(engine)
	program := tea.NewProgram(m, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return model.SessionResult{}, fmt.Errorf("failed to run TUI: %w", err)
	}
	finalModel, ok := final.(*tui.Model)
	if !ok {
		return model.SessionResult{}, fmt.Errorf("unexpected final model type")
	}
	if ferr := finalModel.Err(); ferr != nil {
		return model.SessionResult{}, ferr
	}
	result, done := finalModel.Result()
	if !done {
		return model.SessionResult{}, fmt.Errorf("session ended without a result")
	}
	return result, nil
}

func printSummary(res model.SessionResult) {
	fmt.Printf("\n--- Session Summary ---\n")
	fmt.Printf("Mode: %s  Elapsed: %.1fs\n", res.Config.Mode.Describe(), res.ElapsedSeconds)
	fmt.Printf("Raw WPM: %.2f  Net WPM: %.2f  Accuracy: %.2f%%  Consistency: %.1f%%  Errors: %d  Chars: %d\n",
		res.RawWPM, res.NetWPM, res.Accuracy*100, res.Consistency*100, res.Errors, res.TotalChars)
	if res.HasPreviousBest {
		fmt.Printf("Previous best: %.2f WPM\n", res.PreviousBest)
	}
	if res.NewHighscore {
		fmt.Println("New highscore recorded!")
	}
}

// recordHistory appends the session to the SQLite history, best-effort: a
// storage hiccup must not fail a completed session.
func recordHistory(res model.SessionResult) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open history db: %v\n", err)
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close history db: %v\n", cerr)
		}
	}()
	rec := model.SessionRecord{
		ModeKey:     metrics.ModeKey(res.Config),
		StartedAt:   res.StartedAt,
		EndedAt:     res.EndedAt,
		RawWPM:      res.RawWPM,
		NetWPM:      res.NetWPM,
		Accuracy:    res.Accuracy,
		Consistency: res.Consistency,
		Errors:      res.Errors,
		TotalChars:  res.TotalChars,
		DurationMs:  int64(res.ElapsedSeconds * 1000),
	}
	if _, err := st.InsertSession(context.Background(), rec); err != nil {
		logErrf("failed to save session history: %v\n", err)
	}
}

func interactiveMenu() error {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Println("\nkeydrill")
		fmt.Printf("1) Timed %ds\n", menuTimedSeconds)
		fmt.Printf("2) Words %d\n", menuWordCount)
		fmt.Println("3) Repeat last session")
		fmt.Println("4) Show highscores")
		fmt.Println("Q) Quit")
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		choice := strings.ToLower(strings.TrimSpace(scanner.Text()))
		last, _ := config.LoadLastUsed(config.DefaultStatePath())

		// Each action builds a fresh config snapshot; nothing mutates
		// shared state between menu iterations.
		switch choice {
		case "1":
			cfg := last
			cfg.Mode = model.Timed(menuTimedSeconds)
			if err := runSession(cfg); err != nil {
				logErrf("session failed: %v\n", err)
			}
		case "2":
			cfg := last
			cfg.Mode = model.WordCount(menuWordCount)
			if err := runSession(cfg); err != nil {
				logErrf("session failed: %v\n", err)
			}
		case "3":
			if err := runSession(last); err != nil {
				logErrf("session failed: %v\n", err)
			}
		case "4":
			scores, _ := highscore.Load(config.DefaultScoresPath())
			if err := stats.RenderScores(os.Stdout, scores, defaultScoreLimit); err != nil {
				logErrf("failed to render highscores: %v\n", err)
			}
		case "q":
			return nil
		default:
			fmt.Println("Invalid option.")
		}
	}
}

func newScoresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Show ranked highscores per mode",
		Args:  cobra.NoArgs,
		RunE:  runScoresCmd,
	}
	cmd.Flags().IntVar(&scoresLimit, "limit", defaultScoreLimit, "entries shown per mode")
	return cmd
}

func runScoresCmd(cmd *cobra.Command, _ []string) error {
	scores, outcome := highscore.Load(config.DefaultScoresPath())
	if outcome == highscore.OutcomeRecovered {
		logErrln("highscore file was unreadable; showing an empty board")
	}
	return stats.RenderScores(cmd.OutOrStdout(), scores, scoresLimit)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show session history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsMode, "mode", "", "mode key filter (e.g. timed-60-p0-n0)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsWindow, "window", defaultTrendWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open history db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close history db: %v\n", cerr)
		}
	}()

	records, err := st.ListSessions(context.Background(), statsMode, statsLast)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	return stats.RenderHistory(cmd.OutOrStdout(), records, statsWindow)
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
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return `# keydrill configuration
# Uncomment a value to enable it. CLI flags override config values.

[session]
# timed = 60       # Timed mode: seconds (mutually exclusive with words)
# words = 50       # Word-count mode: number of words
# punct = 0.0      # Punctuation probability per word (0-1)
# numbers = false  # Replace occasional words with digit strings
# wordlist = ""    # Custom word list file path
# top = 25         # Highscores kept per mode
`
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
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
