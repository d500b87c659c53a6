// Package metrics accumulates per-character typing outcomes and derives
// speed, accuracy, and consistency figures.
package metrics

import (
	"fmt"
	"math"
	"time"

	"keydrill/internal/model"
)

// LiveStats is the mutable per-session accumulator. It is exclusively owned
// by one running session; nothing else mutates it.
type LiveStats struct {
	StartedAt     time.Time
	LastUpdate    time.Time
	CharsTyped    int
	CorrectChars  int
	Errors        int
	WordDurations []float64
}

// NewLiveStats starts an accumulator at the given time.
func NewLiveStats(now time.Time) *LiveStats {
	return &LiveStats{StartedAt: now, LastUpdate: now}
}

// RecordChar scores one character outcome.
func (s *LiveStats) RecordChar(correct bool, now time.Time) {
	s.CharsTyped++
	if correct {
		s.CorrectChars++
	} else {
		s.Errors++
	}
	s.LastUpdate = now
}

// RecordWordDuration appends one word completion time for consistency
// tracking.
func (s *LiveStats) RecordWordDuration(seconds float64) {
	s.WordDurations = append(s.WordDurations, seconds)
}

// ElapsedSeconds returns the session duration, clamped at zero so clock
// skew never yields a negative elapsed time.
func (s *LiveStats) ElapsedSeconds(now time.Time) float64 {
	elapsed := now.Sub(s.StartedAt).Seconds()
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Accuracy is correct chars over typed chars, 0 before any input.
func (s *LiveStats) Accuracy() float64 {
	if s.CharsTyped == 0 {
		return 0
	}
	return float64(s.CorrectChars) / float64(s.CharsTyped)
}

// RawWPM is chars/5 normalized to one minute, independent of correctness.
func (s *LiveStats) RawWPM(now time.Time) float64 {
	minutes := s.ElapsedSeconds(now) / 60
	if minutes <= 0 {
		return 0
	}
	return (float64(s.CharsTyped) / 5) / minutes
}

// NetWPM is (correct - errors)/5 normalized to one minute, floored at zero.
// Net never exceeds raw for any accumulated state.
func (s *LiveStats) NetWPM(now time.Time) float64 {
	minutes := s.ElapsedSeconds(now) / 60
	if minutes <= 0 {
		return 0
	}
	effective := s.CorrectChars - s.Errors
	if effective < 0 {
		effective = 0
	}
	return (float64(effective) / 5) / minutes
}

// Consistency is 1 minus the coefficient of variation of word durations,
// floored at zero. Defined only with at least two durations recorded.
func (s *LiveStats) Consistency() float64 {
	if len(s.WordDurations) < 2 {
		return 0
	}
	mean := 0.0
	for _, d := range s.WordDurations {
		mean += d
	}
	mean /= float64(len(s.WordDurations))
	if mean <= 0 {
		return 0
	}
	variance := 0.0
	for _, d := range s.WordDurations {
		diff := d - mean
		variance += diff * diff
	}
	variance /= float64(len(s.WordDurations))
	consistency := 1 - math.Sqrt(variance)/mean
	if consistency < 0 {
		return 0
	}
	return consistency
}

// ModeKey derives the canonical highscore partition key for a config.
// Examples: timed-60-p0-n0, words-50-p10-n1.
func ModeKey(cfg model.SessionConfig) string {
	var base string
	switch cfg.Mode.Kind {
	case model.ModeTimed:
		base = fmt.Sprintf("timed-%d", cfg.Mode.Seconds)
	case model.ModeWordCount:
		base = fmt.Sprintf("words-%d", cfg.Mode.Count)
	default:
		base = "invalid"
	}
	p := int(math.Round(cfg.PunctProb * 100))
	n := 0
	if cfg.Numbers {
		n = 1
	}
	return fmt.Sprintf("%s-p%d-n%d", base, p, n)
}
