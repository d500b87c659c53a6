package tui

import (
	"math/rand"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"keydrill/internal/model"
	"keydrill/internal/session"
	"keydrill/internal/words"
)

type stubClock struct {
	now time.Time
}

func (c *stubClock) Now() time.Time { return c.now }

func newSessionModel(t *testing.T, cfg model.SessionConfig, vocab []string) (*Model, *session.Engine, *stubClock) {
	t.Helper()
	src := words.New(vocab, cfg.PunctProb, cfg.Numbers, rand.New(rand.NewSource(1)))
	engine, err := session.New(cfg, src, nil, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	clock := &stubClock{now: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
	engine.SetClock(clock.Now)
	m := NewModel(engine)
	m.Init()
	return m, engine, clock
}

func TestEscCommitsBufferedPartialWord(t *testing.T) {
	m, engine, clock := newSessionModel(t, model.SessionConfig{Mode: model.WordCount(3), TopN: 25}, []string{"abcd"})

	var tm tea.Model = m
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ax")})
	clock.now = clock.now.Add(2 * time.Second)
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyEsc})

	result, done := tm.(*Model).Result()
	if !done {
		t.Fatalf("expected session to finish on esc")
	}
	if result.Reason != model.EndUserQuit {
		t.Fatalf("expected UserQuit, got %v", result.Reason)
	}
	// 1 correct + 1 wrong keystroke, then 2 trailing omissions charged by
	// the forced commit of the buffered partial word.
	if result.TotalChars != 4 || result.Errors != 3 {
		t.Fatalf("expected buffered keystrokes committed, got %+v", result)
	}
	durations := engine.Stats().WordDurations
	if len(durations) != 1 || durations[0] != 2 {
		t.Fatalf("expected one 2s word duration, got %v", durations)
	}
}

func TestTimeExpiryCommitsBufferedPartialWord(t *testing.T) {
	m, engine, clock := newSessionModel(t, model.SessionConfig{Mode: model.Timed(10), TopN: 25}, []string{"abcd"})

	var tm tea.Model = m
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	clock.now = clock.now.Add(10 * time.Second)
	tm, _ = tm.Update(tickMsg(clock.now))

	result, done := tm.(*Model).Result()
	if !done {
		t.Fatalf("expected session to finish when the clock expires")
	}
	if result.Reason != model.EndTimeExpired {
		t.Fatalf("expected TimeExpired, got %v", result.Reason)
	}
	if result.TotalChars != 4 || result.Errors != 3 {
		t.Fatalf("expected partial word committed on expiry, got %+v", result)
	}
	if got := engine.Committed(); got != 1 {
		t.Fatalf("expected forced commit to advance, got %d", got)
	}
}
