package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"keydrill/internal/model"
)

// lastState is the persisted shape of the last-used session config. It is
// deliberately flat: exactly one of timed/words is non-zero.
type lastState struct {
	Timed    int     `toml:"timed"`
	Words    int     `toml:"words"`
	Punct    float64 `toml:"punct"`
	Numbers  bool    `toml:"numbers"`
	Wordlist string  `toml:"wordlist"`
	Top      int     `toml:"top"`
}

// Defaults returns the built-in session config: 60-second timed session, no
// punctuation, no numbers, default vocabulary, top 25 highscores.
func Defaults() model.SessionConfig {
	return model.SessionConfig{
		Mode:      model.Timed(60),
		PunctProb: 0,
		Numbers:   false,
		TopN:      25,
	}
}

// LoadLastUsed reads the last-used session config from the state file.
// Corrupt, missing, or invalid content silently falls back to the built-in
// defaults; the second return reports whether stored state was usable.
func LoadLastUsed(path string) (model.SessionConfig, bool) {
	var st lastState
	if _, err := toml.DecodeFile(path, &st); err != nil {
		return Defaults(), false
	}
	cfg := model.SessionConfig{
		PunctProb:    st.Punct,
		Numbers:      st.Numbers,
		WordlistPath: st.Wordlist,
		TopN:         st.Top,
	}
	switch {
	case st.Timed > 0 && st.Words == 0:
		cfg.Mode = model.Timed(st.Timed)
	case st.Words > 0 && st.Timed == 0:
		cfg.Mode = model.WordCount(st.Words)
	default:
		return Defaults(), false
	}
	if cfg.Validate() != nil {
		return Defaults(), false
	}
	return cfg, true
}

// SaveLastUsed persists a session config snapshot to the state file.
func SaveLastUsed(path string, cfg model.SessionConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}
	st := lastState{
		Punct:    cfg.PunctProb,
		Numbers:  cfg.Numbers,
		Wordlist: cfg.WordlistPath,
		Top:      cfg.TopN,
	}
	switch cfg.Mode.Kind {
	case model.ModeTimed:
		st.Timed = cfg.Mode.Seconds
	case model.ModeWordCount:
		st.Words = cfg.Mode.Count
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create state file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close; encode errors are surfaced below.
			_ = cerr
		}
	}()
	if err := toml.NewEncoder(file).Encode(st); err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	return nil
}
