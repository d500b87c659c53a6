package metrics

import (
	"math"
	"testing"
	"time"

	"keydrill/internal/model"
)

func TestScenarioHundredChars(t *testing.T) {
	start := time.Now()
	s := NewLiveStats(start)
	for i := 0; i < 95; i++ {
		s.RecordChar(true, start)
	}
	for i := 0; i < 5; i++ {
		s.RecordChar(false, start)
	}
	now := start.Add(60 * time.Second)

	if got := s.RawWPM(now); math.Abs(got-20.0) > 1e-9 {
		t.Fatalf("expected raw WPM 20.0, got %f", got)
	}
	if got := s.NetWPM(now); math.Abs(got-18.0) > 1e-9 {
		t.Fatalf("expected net WPM 18.0, got %f", got)
	}
	if got := s.Accuracy(); math.Abs(got-0.95) > 1e-9 {
		t.Fatalf("expected accuracy 0.95, got %f", got)
	}
}

func TestAccuracyBoundsAndNetNeverAboveRaw(t *testing.T) {
	start := time.Now()
	sequences := [][]bool{
		{},
		{true},
		{false},
		{true, false, false, true, true},
		{false, false, false},
	}
	for _, seq := range sequences {
		s := NewLiveStats(start)
		for _, correct := range seq {
			s.RecordChar(correct, start)
		}
		now := start.Add(30 * time.Second)
		acc := s.Accuracy()
		if acc < 0 || acc > 1 {
			t.Fatalf("accuracy out of range: %f", acc)
		}
		if s.NetWPM(now) > s.RawWPM(now)+1e-9 {
			t.Fatalf("net WPM %f exceeds raw WPM %f", s.NetWPM(now), s.RawWPM(now))
		}
	}
}

func TestZeroElapsedYieldsZeroWPM(t *testing.T) {
	start := time.Now()
	s := NewLiveStats(start)
	s.RecordChar(true, start)
	if got := s.RawWPM(start); got != 0 {
		t.Fatalf("expected 0 raw WPM at zero elapsed, got %f", got)
	}
	if got := s.NetWPM(start); got != 0 {
		t.Fatalf("expected 0 net WPM at zero elapsed, got %f", got)
	}
}

func TestElapsedNeverNegative(t *testing.T) {
	start := time.Now()
	s := NewLiveStats(start)
	if got := s.ElapsedSeconds(start.Add(-5 * time.Second)); got != 0 {
		t.Fatalf("expected clamped elapsed 0, got %f", got)
	}
}

func TestConsistency(t *testing.T) {
	s := NewLiveStats(time.Now())
	if got := s.Consistency(); got != 0 {
		t.Fatalf("expected 0 consistency with no durations, got %f", got)
	}
	s.RecordWordDuration(1.0)
	if got := s.Consistency(); got != 0 {
		t.Fatalf("expected 0 consistency with one duration, got %f", got)
	}
	s.RecordWordDuration(1.0)
	if got := s.Consistency(); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("expected perfect consistency for equal durations, got %f", got)
	}

	varied := NewLiveStats(time.Now())
	varied.RecordWordDuration(1.0)
	varied.RecordWordDuration(3.0)
	// mean 2, stddev 1, consistency 0.5
	if got := varied.Consistency(); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("expected consistency 0.5, got %f", got)
	}

	erratic := NewLiveStats(time.Now())
	erratic.RecordWordDuration(0.1)
	erratic.RecordWordDuration(10.0)
	if got := erratic.Consistency(); got < 0 {
		t.Fatalf("consistency must be floored at zero, got %f", got)
	}
}

func TestModeKey(t *testing.T) {
	timed := model.SessionConfig{Mode: model.Timed(60), TopN: 25}
	if got := ModeKey(timed); got != "timed-60-p0-n0" {
		t.Fatalf("unexpected mode key %q", got)
	}
	wordy := model.SessionConfig{Mode: model.WordCount(50), PunctProb: 0.1, Numbers: true, TopN: 25}
	if got := ModeKey(wordy); got != "words-50-p10-n1" {
		t.Fatalf("unexpected mode key %q", got)
	}
	rounded := model.SessionConfig{Mode: model.Timed(30), PunctProb: 0.255, TopN: 25}
	if got := ModeKey(rounded); got != "timed-30-p26-n0" {
		t.Fatalf("expected rounded punctuation percent, got %q", got)
	}
}
