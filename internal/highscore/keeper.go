package highscore

import (
	"fmt"
	"os"
)

// FileKeeper performs the once-per-session read-modify-write of the durable
// highscore file. There is no cross-process locking; concurrent writers race
// and the last writer wins.
type FileKeeper struct {
	Path string
	TopN int
}

// BestNetWPM scans the durable file for the best prior net WPM. Read
// failures yield "no prior best" rather than aborting the session.
func (k *FileKeeper) BestNetWPM(modeKey string) (float64, bool) {
	store, _ := Load(k.Path)
	return store.BestNetWPM(modeKey)
}

// Submit inserts an entry and persists the whole store. Persistence is
// best-effort; a write failure is reported to stderr and the session result
// still stands.
func (k *FileKeeper) Submit(entry Entry) bool {
	store, _ := Load(k.Path)
	kept := store.Insert(entry, k.TopN)
	if err := store.Save(k.Path); err != nil {
		if _, werr := fmt.Fprintf(os.Stderr, "failed to save highscores: %v\n", err); werr != nil {
			// Best-effort logging to stderr.
			_ = werr
		}
	}
	return kept
}
