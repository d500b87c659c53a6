// Package model defines shared data structures.
package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfiguration marks configuration errors detected before a
// session starts. Check with errors.Is.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ModeKind discriminates timed and word-count sessions.
type ModeKind int

const (
	// ModeTimed runs until a fixed number of seconds has elapsed.
	ModeTimed ModeKind = iota
	// ModeWordCount runs until a fixed number of words has been committed.
	ModeWordCount
)

// Mode is the tagged session-mode variant. Exactly one of Seconds/Count is
// meaningful, selected by Kind.
type Mode struct {
	Kind    ModeKind
	Seconds int
	Count   int
}

// Timed builds a timed mode.
func Timed(seconds int) Mode {
	return Mode{Kind: ModeTimed, Seconds: seconds}
}

// WordCount builds a word-count mode.
func WordCount(count int) Mode {
	return Mode{Kind: ModeWordCount, Count: count}
}

// Describe returns a short human-readable mode description.
func (m Mode) Describe() string {
	switch m.Kind {
	case ModeTimed:
		return fmt.Sprintf("timed %ds", m.Seconds)
	case ModeWordCount:
		return fmt.Sprintf("%d words", m.Count)
	default:
		return "invalid"
	}
}

// SessionConfig defines how a typing session should run. Values are
// immutable snapshots: menu actions and flag merges build new configs
// instead of mutating shared state.
type SessionConfig struct {
	Mode         Mode
	PunctProb    float64
	Numbers      bool
	WordlistPath string
	TopN         int
}

// Validate rejects invalid configs before any session state is created.
func (c SessionConfig) Validate() error {
	switch c.Mode.Kind {
	case ModeTimed:
		if c.Mode.Seconds <= 0 {
			return fmt.Errorf("%w: timed seconds must be > 0", ErrInvalidConfiguration)
		}
	case ModeWordCount:
		if c.Mode.Count <= 0 {
			return fmt.Errorf("%w: word count must be > 0", ErrInvalidConfiguration)
		}
	default:
		return fmt.Errorf("%w: unknown mode", ErrInvalidConfiguration)
	}
	if c.PunctProb < 0 || c.PunctProb > 1 {
		return fmt.Errorf("%w: punctuation probability must be between 0 and 1", ErrInvalidConfiguration)
	}
	if c.TopN <= 0 {
		return fmt.Errorf("%w: highscore top-n must be > 0", ErrInvalidConfiguration)
	}
	return nil
}

// EndReason records why a session terminated.
type EndReason int

const (
	// EndTimeExpired ends a timed session whose clock ran out.
	EndTimeExpired EndReason = iota
	// EndWordCountReached ends a word-count session with all words committed.
	EndWordCountReached
	// EndUserQuit ends a session on an explicit quit command or key.
	EndUserQuit
)

// SessionResult is the immutable snapshot produced once per session.
type SessionResult struct {
	Config         SessionConfig
	Reason         EndReason
	StartedAt      time.Time
	EndedAt        time.Time
	RawWPM         float64
	NetWPM         float64
	Accuracy       float64
	Consistency    float64
	Errors         int
	TotalChars     int
	ElapsedSeconds float64

	// PreviousBest is the best prior net WPM for the same mode key,
	// when one was readable.
	PreviousBest    float64
	HasPreviousBest bool
	NewHighscore    bool
}

// SessionRecord is the session-history row persisted to SQLite.
type SessionRecord struct {
	ID          int64
	ModeKey     string
	StartedAt   time.Time
	EndedAt     time.Time
	RawWPM      float64
	NetWPM      float64
	Accuracy    float64
	Consistency float64
	Errors      int
	TotalChars  int
	DurationMs  int64
}
