// Package session orchestrates one typing session: it pulls targets from
// the word source, feeds keystroke outcomes into the live stats, decides
// termination, and emits a final result.
package session

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"keydrill/internal/highscore"
	"keydrill/internal/metrics"
	"keydrill/internal/model"
	"keydrill/internal/words"
)

// LookAhead is the minimum number of upcoming words kept materialized
// beyond the current index so rendering never blocks on word production.
const LookAhead = 25

// quitCommand quits the line-buffered loop.
const quitCommand = "/quit"

// ScoreKeeper is the narrow durable-ranking surface the engine talks to at
// session end.
type ScoreKeeper interface {
	// BestNetWPM returns the best prior net WPM for a mode key, or false
	// when none is readable.
	BestNetWPM(modeKey string) (float64, bool)
	// Submit records an entry and reports whether it was kept.
	Submit(entry highscore.Entry) bool
}

// Engine runs a single session. It exclusively owns its LiveStats and
// target list; there is no concurrent access.
type Engine struct {
	cfg         model.SessionConfig
	stats       *metrics.LiveStats
	source      *words.Source
	sink        FeedbackSink
	keeper      ScoreKeeper
	now         func() time.Time
	targets     []string
	committed   int
	wordStarted time.Time
	finished    bool
}

// New validates the config and builds an engine. The keeper may be nil, in
// which case no highscore lookup or submission happens.
func New(cfg model.SessionConfig, source *words.Source, sink FeedbackSink, keeper ScoreKeeper) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = NopSink{}
	}
	e := &Engine{
		cfg:    cfg,
		source: source,
		sink:   sink,
		keeper: keeper,
		now:    time.Now,
	}
	if cfg.Mode.Kind == model.ModeWordCount {
		// Finite sessions materialize their full target list up front.
		// An empty vocabulary degenerates to a zero-word session.
		e.targets = source.Take(cfg.Mode.Count)
	}
	start := e.now()
	e.stats = metrics.NewLiveStats(start)
	e.wordStarted = start
	return e, nil
}

// SetClock replaces the engine clock. Tests use this to make timing
// deterministic.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
	start := now()
	e.stats = metrics.NewLiveStats(start)
	e.wordStarted = start
}

// Stats exposes the live accumulator for rendering.
func (e *Engine) Stats() *metrics.LiveStats { return e.stats }

// Config returns the session config snapshot.
func (e *Engine) Config() model.SessionConfig { return e.cfg }

// Committed returns the number of committed words.
func (e *Engine) Committed() int { return e.committed }

// Now returns the engine clock reading.
func (e *Engine) Now() time.Time { return e.now() }

// EnsureAhead materializes targets up to n words beyond the current index.
// Word-count mode is fully materialized at construction and is a no-op here.
func (e *Engine) EnsureAhead(n int) error {
	if e.cfg.Mode.Kind == model.ModeWordCount {
		return nil
	}
	want := e.committed + n
	for len(e.targets) < want {
		word, err := e.source.Next()
		if err != nil {
			return err
		}
		e.targets = append(e.targets, word)
	}
	return nil
}

// CurrentTarget returns the word awaiting commitment, materializing it if
// needed.
func (e *Engine) CurrentTarget() (string, error) {
	if err := e.EnsureAhead(1); err != nil {
		return "", err
	}
	if e.committed >= len(e.targets) {
		return "", fmt.Errorf("no target available")
	}
	return e.targets[e.committed], nil
}

// Targets returns the materialized targets from the current word onward.
func (e *Engine) Targets() []string {
	return e.targets[e.committed:]
}

// CommittedTargets returns the already committed targets in order.
func (e *Engine) CommittedTargets() []string {
	return e.targets[:e.committed]
}

// EndReason evaluates the mode's termination condition. It is checked at
// loop-iteration entry, before the next word is fetched or prompted, so an
// uncommitted word earns no partial credit.
func (e *Engine) EndReason(now time.Time) (model.EndReason, bool) {
	switch e.cfg.Mode.Kind {
	case model.ModeTimed:
		if e.stats.ElapsedSeconds(now) >= float64(e.cfg.Mode.Seconds) {
			return model.EndTimeExpired, true
		}
	case model.ModeWordCount:
		// Bounded by the materialized list, not the configured count, so
		// a degenerate empty vocabulary still terminates.
		if e.committed >= len(e.targets) {
			return model.EndWordCountReached, true
		}
	}
	return 0, false
}

// RemainingSeconds returns the time left in a timed session, floored at 0.
func (e *Engine) RemainingSeconds(now time.Time) float64 {
	if e.cfg.Mode.Kind != model.ModeTimed {
		return 0
	}
	remaining := float64(e.cfg.Mode.Seconds) - e.stats.ElapsedSeconds(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ScoreKey scores one printable keystroke against the current target at the
// given buffer position. Used by the real-time variant; once scored, a
// character is never unscored.
func (e *Engine) ScoreKey(pos int, r rune) bool {
	target, err := e.CurrentTarget()
	if err != nil {
		return false
	}
	runes := []rune(target)
	correct := pos < len(runes) && runes[pos] == r
	e.stats.RecordChar(correct, e.now())
	return correct
}

// CommitWord finalizes a typed word against the current target, scoring
// every position: one RecordChar per typed character, then one incorrect
// RecordChar per trailing omitted target character. Reports whether the
// word was fully correct. Used by the line-buffered variant.
func (e *Engine) CommitWord(typed string) (bool, error) {
	target, err := e.CurrentTarget()
	if err != nil {
		return false, err
	}
	now := e.now()
	targetRunes := []rune(target)
	typedRunes := []rune(typed)
	for i, r := range typedRunes {
		correct := i < len(targetRunes) && targetRunes[i] == r
		e.stats.RecordChar(correct, now)
	}
	return e.finalizeCommit(target, typedRunes, targetRunes, now), nil
}

// CommitPrescored finalizes a word whose typed characters were already
// scored keystroke by keystroke: only trailing omissions are charged here.
// Used by the real-time variant, including the forced final commit of a
// non-empty partial word on abnormal exit.
func (e *Engine) CommitPrescored(typed string) (bool, error) {
	target, err := e.CurrentTarget()
	if err != nil {
		return false, err
	}
	return e.finalizeCommit(target, []rune(typed), []rune(target), e.now()), nil
}

func (e *Engine) finalizeCommit(target string, typedRunes, targetRunes []rune, now time.Time) bool {
	for i := len(typedRunes); i < len(targetRunes); i++ {
		e.stats.RecordChar(false, now)
	}
	duration := now.Sub(e.wordStarted).Seconds()
	if duration < 0 {
		duration = 0
	}
	e.stats.RecordWordDuration(duration)
	e.wordStarted = now
	e.committed++

	correct := string(typedRunes) == target
	e.sink.WordCommitted(correct)
	return correct
}

// Finish produces the one immutable SessionResult. The prior best for this
// mode key is looked up best-effort, and a new entry is submitted only when
// it strictly improves the prior best or no prior entry exists at all, so
// non-improving sessions never touch the ranked store.
func (e *Engine) Finish(reason model.EndReason) model.SessionResult {
	now := e.now()
	e.finished = true

	result := model.SessionResult{
		Config:         e.cfg,
		Reason:         reason,
		StartedAt:      e.stats.StartedAt,
		EndedAt:        now,
		RawWPM:         e.stats.RawWPM(now),
		NetWPM:         e.stats.NetWPM(now),
		Accuracy:       e.stats.Accuracy(),
		Consistency:    e.stats.Consistency(),
		Errors:         e.stats.Errors,
		TotalChars:     e.stats.CharsTyped,
		ElapsedSeconds: e.stats.ElapsedSeconds(now),
	}

	if e.keeper == nil {
		return result
	}
	key := metrics.ModeKey(e.cfg)
	best, ok := e.keeper.BestNetWPM(key)
	if ok {
		result.PreviousBest = best
		result.HasPreviousBest = true
	}
	if !ok || result.NetWPM > best {
		entry := highscore.NewEntry(key, result.NetWPM, result.Accuracy, result.RawWPM, result.Errors, result.TotalChars, now)
		result.NewHighscore = e.keeper.Submit(entry)
	}
	return result
}

// Finished reports whether Finish has run.
func (e *Engine) Finished() bool { return e.finished }

// RunPrompt drives the session over a line-buffered reader: one prompt per
// word, blocking on each read. This is the fallback path when no capable
// interactive terminal is available.
func (e *Engine) RunPrompt(in io.Reader, out io.Writer) (model.SessionResult, error) {
	scanner := bufio.NewScanner(in)
	for {
		now := e.now()
		if reason, ok := e.EndReason(now); ok {
			return e.Finish(reason), nil
		}
		target, err := e.CurrentTarget()
		if err != nil {
			return model.SessionResult{}, fmt.Errorf("failed to produce target word: %w", err)
		}
		prompt := fmt.Sprintf("[%d] %s", e.committed+1, target)
		if e.cfg.Mode.Kind == model.ModeTimed {
			prompt += fmt.Sprintf(" (%.1fs left)", e.RemainingSeconds(now))
		}
		if _, err := fmt.Fprintf(out, "%s: ", prompt); err != nil {
			return model.SessionResult{}, fmt.Errorf("failed to write prompt: %w", err)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return model.SessionResult{}, fmt.Errorf("failed to read input: %w", err)
			}
			// EOF quits like an explicit quit command.
			return e.Finish(model.EndUserQuit), nil
		}
		typed := scanner.Text()
		if strings.TrimSpace(typed) == quitCommand {
			return e.Finish(model.EndUserQuit), nil
		}
		if _, err := e.CommitWord(typed); err != nil {
			return model.SessionResult{}, err
		}
	}
}
