// internal/game/types.go
//
// Core type definitions for the guessing game.
// Defines:
//   - HintCode: per-letter result of a guess (absent/present/correct).
//   - Hint: the five codes for one guess.
//   - Round: state for one secret word within a session.

package game

import (
	"strings"

	"github.com/taylozac/wordle-5757/internal/words"
)

// MaxGuesses is the number of accepted guesses in a round.
const MaxGuesses = 6

// HintCode is the evaluation of a single guessed letter.
type HintCode int

const (
	Absent  HintCode = iota // letter does not occur in the secret
	Present                 // letter occurs in the secret, elsewhere
	Correct                 // letter is in the right position
)

func (c HintCode) String() string {
	switch c {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Correct:
		return "correct"
	}
	return "unknown"
}

// Hint holds one HintCode per letter position.
type Hint [words.WordLength]HintCode

// String renders the hint as the wire digits, e.g. "02212".
func (h Hint) String() string {
	var b strings.Builder
	for _, c := range h {
		b.WriteByte(byte('0' + c))
	}
	return b.String()
}

// Solved reports whether every letter is Correct.
func (h Hint) Solved() bool {
	for _, c := range h {
		if c != Correct {
			return false
		}
	}
	return true
}

// Round holds the state of one secret word.
type Round struct {
	Number  int      // 1-based round number within the session
	Secret  string   // lowercase secret word
	Guesses []string // accepted guesses so far (lowercased)
}
