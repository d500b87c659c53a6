// Package words generates target word sequences for typing sessions.
package words

import (
	"fmt"
	"math/rand"
)

// numbersProb is the chance a word is replaced with digits when number
// substitution is enabled.
const numbersProb = 0.15

const maxDigits = 4

var punctMarks = []rune{'.', ',', '!', '?', ';', ':'}

// Source produces target words from a shuffle-bag over a base vocabulary:
// the vocabulary is shuffled into a working bag and drawn front to back, so
// every word appears once before any repeats within a pass.
type Source struct {
	rnd       *rand.Rand
	vocab     []string
	bag       []string
	next      int
	punctProb float64
	numbers   bool
}

// New builds a Source. The caller owns the vocabulary and random generator;
// there is no process-wide word cache.
func New(vocab []string, punctProb float64, numbers bool, rnd *rand.Rand) *Source {
	s := &Source{
		rnd:       rnd,
		vocab:     vocab,
		punctProb: punctProb,
		numbers:   numbers,
	}
	return s
}

func (s *Source) refill() {
	if s.bag == nil {
		s.bag = make([]string, len(s.vocab))
	}
	copy(s.bag, s.vocab)
	s.rnd.Shuffle(len(s.bag), func(i, j int) {
		s.bag[i], s.bag[j] = s.bag[j], s.bag[i]
	})
	s.next = 0
}

// Next draws the next word for an infinite stream (timed mode). It fails
// fast on an empty vocabulary instead of looping on an empty bag.
func (s *Source) Next() (string, error) {
	if len(s.vocab) == 0 {
		return "", fmt.Errorf("vocabulary is empty")
	}
	if s.bag == nil || s.next >= len(s.bag) {
		s.refill()
	}
	word := s.bag[s.next]
	s.next++
	return s.substitute(word), nil
}

// Take draws exactly count words (word-count mode). An empty vocabulary
// degrades to an empty result.
func (s *Source) Take(count int) []string {
	if len(s.vocab) == 0 || count <= 0 {
		return nil
	}
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		word, err := s.Next()
		if err != nil {
			return out
		}
		out = append(out, word)
	}
	return out
}

// substitute applies the two independent post-draw substitutions; number
// replacement happens before punctuation so digits can carry a mark too.
func (s *Source) substitute(word string) string {
	if s.numbers && s.rnd.Float64() < numbersProb {
		word = s.randomDigits()
	}
	if s.punctProb > 0 && s.rnd.Float64() < s.punctProb {
		word += string(punctMarks[s.rnd.Intn(len(punctMarks))])
	}
	return word
}

func (s *Source) randomDigits() string {
	n := 1 + s.rnd.Intn(maxDigits)
	digits := make([]byte, n)
	for i := range digits {
		digits[i] = byte('0' + s.rnd.Intn(10))
	}
	return string(digits)
}
