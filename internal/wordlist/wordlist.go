// Package wordlist loads typing vocabularies from files.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"keydrill/internal/model"
)

// builtin is the placeholder vocabulary used when no word list file is
// available. Small on purpose; real practice should use a downloaded list.
var builtin = []string{
	"the", "of", "and", "a", "to", "in", "is", "you", "that", "it",
	"he", "was", "for", "on", "are", "as", "with", "his", "they", "at",
	"be", "this", "have", "from", "or", "one", "had", "by", "word", "but",
	"not", "what", "all", "were", "we", "when", "your", "can", "said", "there",
	"use", "an", "each", "which", "she", "do", "how", "their", "if", "will",
	"up", "other", "about", "out", "many", "then", "them", "these", "so", "some",
	"her", "would", "make", "like", "him", "into", "time", "has", "look", "two",
	"more", "write", "go", "see", "number", "no", "way", "could", "people", "my",
}

// Builtin returns a copy of the built-in placeholder vocabulary.
func Builtin() []string {
	out := make([]string, len(builtin))
	copy(out, builtin)
	return out
}

// LoadWords reads whitespace-delimited tokens from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

// Resolve loads the vocabulary for a session. An explicitly configured path
// that does not resolve is an InvalidConfiguration; with no explicit path a
// missing default file falls back to the built-in vocabulary.
func Resolve(explicitPath, defaultPath string) ([]string, error) {
	if explicitPath != "" {
		words, err := LoadWords(explicitPath)
		if err != nil {
			return nil, fmt.Errorf("%w: word list %s: %v", model.ErrInvalidConfiguration, explicitPath, err)
		}
		return words, nil
	}
	words, err := LoadWords(defaultPath)
	if err != nil {
		return Builtin(), nil
	}
	return words, nil
}
