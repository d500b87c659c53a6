// Package highscore keeps ranked best results per session mode in a JSON
// file with atomic replacement.
package highscore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Entry is one immutable ranked result.
type Entry struct {
	ModeKey    string  `json:"modeKey"`
	NetWPM     float64 `json:"wpm"`
	Accuracy   float64 `json:"accuracy"`
	RawWPM     float64 `json:"rawWpm"`
	Errors     int     `json:"errors"`
	TotalChars int     `json:"totalChars"`
	// Timestamp is ISO-8601 UTC with a Z suffix.
	Timestamp string `json:"timestamp"`
}

// NewEntry builds an entry with the original rounding: WPM to two decimals,
// accuracy to four.
func NewEntry(modeKey string, netWPM, accuracy, rawWPM float64, errors, totalChars int, now time.Time) Entry {
	return Entry{
		ModeKey:    modeKey,
		NetWPM:     round(netWPM, 2),
		Accuracy:   round(accuracy, 4),
		RawWPM:     round(rawWPM, 2),
		Errors:     errors,
		TotalChars: totalChars,
		Timestamp:  now.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func round(v float64, places int) float64 {
	scale := 1.0
	for i := 0; i < places; i++ {
		scale *= 10
	}
	if v >= 0 {
		return float64(int64(v*scale+0.5)) / scale
	}
	return float64(int64(v*scale-0.5)) / scale
}

// Store maps mode keys to ranked entry buckets. Modes are independent
// partitions; an insert never affects another key's ranking or truncation.
type Store struct {
	Modes map[string][]Entry `json:"modes"`
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{Modes: map[string][]Entry{}}
}

// LoadOutcome reports how durable state was obtained.
type LoadOutcome int

const (
	// OutcomeLoaded means the durable file parsed cleanly.
	OutcomeLoaded LoadOutcome = iota
	// OutcomeEmpty means no durable file existed yet.
	OutcomeEmpty
	// OutcomeRecovered means the file was unreadable or corrupt and an
	// empty store was substituted.
	OutcomeRecovered
)

// Load reads durable state. It never fails: missing files yield an empty
// store and corrupt content is recovered to an empty store, with the
// distinction reported for observability.
func Load(path string) (*Store, LoadOutcome) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewStore(), OutcomeEmpty
		}
		return NewStore(), OutcomeRecovered
	}
	var store Store
	if err := json.Unmarshal(data, &store); err != nil {
		return NewStore(), OutcomeRecovered
	}
	if store.Modes == nil {
		store.Modes = map[string][]Entry{}
	}
	return &store, OutcomeLoaded
}

// Insert appends the entry to its mode bucket, re-sorts the bucket, and
// truncates it to topN. It reports whether the entry survived truncation.
// Ranking is recomputed by full re-sort; entries are never edited in place.
// The inserted entry is tracked through the sort so an identical existing
// entry is never mistaken for it.
func (s *Store) Insert(entry Entry, topN int) bool {
	old := s.Modes[entry.ModeKey]
	ranked := make([]rankedEntry, 0, len(old)+1)
	for _, e := range old {
		ranked = append(ranked, rankedEntry{entry: e})
	}
	ranked = append(ranked, rankedEntry{entry: entry, inserted: true})
	sort.SliceStable(ranked, func(i, j int) bool {
		return entryLess(ranked[i].entry, ranked[j].entry)
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}

	bucket := make([]Entry, len(ranked))
	kept := false
	for i, r := range ranked {
		bucket[i] = r.entry
		if r.inserted {
			kept = true
		}
	}
	s.Modes[entry.ModeKey] = bucket
	return kept
}

type rankedEntry struct {
	entry    Entry
	inserted bool
}

// entryLess orders by net WPM descending, accuracy descending, then
// timestamp ascending so earlier attempts win ties.
func entryLess(a, b Entry) bool {
	if a.NetWPM != b.NetWPM {
		return a.NetWPM > b.NetWPM
	}
	if a.Accuracy != b.Accuracy {
		return a.Accuracy > b.Accuracy
	}
	return a.Timestamp < b.Timestamp
}

// Top returns up to limit entries for a mode key in ranked order without
// mutating the store.
func (s *Store) Top(modeKey string, limit int) []Entry {
	bucket := s.Modes[modeKey]
	if limit <= 0 || limit > len(bucket) {
		limit = len(bucket)
	}
	out := make([]Entry, limit)
	copy(out, bucket[:limit])
	return out
}

// BestNetWPM returns the best net WPM recorded for a mode key.
func (s *Store) BestNetWPM(modeKey string) (float64, bool) {
	bucket := s.Modes[modeKey]
	if len(bucket) == 0 {
		return 0, false
	}
	return bucket[0].NetWPM, true
}

// ModeKeys returns all mode keys in sorted order.
func (s *Store) ModeKeys() []string {
	keys := make([]string, 0, len(s.Modes))
	for key := range s.Modes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Save serializes the whole store and persists it via a temporary file and
// atomic rename, so a crash mid-write never corrupts previous state.
func (s *Store) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create highscore dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode highscores: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "highscores-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp highscore file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write highscores: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close highscores: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace highscores: %w", err)
	}
	return nil
}
