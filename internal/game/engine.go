// internal/game/engine.go
//
// Game rules for a single round.
// Responsibilities:
//   - Validate decoded guess messages (schema, then length and dictionary).
//   - Score guesses with the simplified per-letter rule.
//   - Count accepted guesses and report when the round is exhausted.
//
// Notes:
//   - Scoring does NOT budget repeated letters: a guessed letter that occurs
//     anywhere in the secret is marked present at every position it appears.
//     This differs from canonical Wordle and matches the protocol clients expect.
//   - A correct guess does not end the round; only MaxGuesses does.
//   - Lowercasing is Go's per-rune mapping, so "İ" becomes a single "i" and
//     "İRATE" counts as five letters.

package game

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/taylozac/wordle-5757/internal/protocol"
	"github.com/taylozac/wordle-5757/internal/words"
)

// ErrRoundOver is returned when applying a guess to an exhausted round.
var ErrRoundOver = errors.New("round finished")

// Dictionary answers whether a word is playable.
type Dictionary interface {
	Contains(w string) bool
}

// SchemaError reports JSON that does not match the guess schema.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string { return "guess does not match schema: " + e.Err.Error() }

func (e *SchemaError) Unwrap() error { return e.Err }

// DictionaryError reports a guess of the wrong length or outside the wordlist.
type DictionaryError struct {
	Guess string
}

func (e *DictionaryError) Error() string {
	return fmt.Sprintf("guess %q not in dictionary", e.Guess)
}

// Validate checks a decoded request and returns the lowercased guess.
// The schema check always runs first, so a malformed message never reaches
// the dictionary lookup.
func Validate(req *protocol.Request, dict Dictionary) (string, error) {
	if err := protocol.GuessSchema().VisitJSON(req.Value()); err != nil {
		return "", &SchemaError{Err: err}
	}
	msg, err := req.Guess()
	if err != nil {
		return "", &SchemaError{Err: err}
	}

	guess := strings.ToLower(msg.Guess)
	if utf8.RuneCountInString(guess) != words.WordLength || !dict.Contains(guess) {
		return "", &DictionaryError{Guess: guess}
	}
	return guess, nil
}

// ComputeHint scores guess against secret, letter by letter.
//
// For each position: absent by default; present if the letter occurs
// anywhere in secret; correct if it matches secret at that position.
func ComputeHint(guess, secret string) Hint {
	var h Hint
	g, s := []rune(guess), []rune(secret)
	for i := 0; i < len(h) && i < len(g); i++ {
		if strings.ContainsRune(secret, g[i]) {
			h[i] = Present
		}
		if i < len(s) && g[i] == s[i] {
			h[i] = Correct
		}
	}
	return h
}

// NewRound starts round number n with the given secret.
func NewRound(n int, secret string) *Round {
	return &Round{
		Number:  n,
		Secret:  strings.ToLower(secret),
		Guesses: make([]string, 0, MaxGuesses),
	}
}

// Apply records an already validated guess and returns its hint.
func (r *Round) Apply(guess string) (Hint, error) {
	if r.Finished() {
		return Hint{}, ErrRoundOver
	}
	r.Guesses = append(r.Guesses, guess)
	return ComputeHint(guess, r.Secret), nil
}

// Count is the number of accepted guesses so far.
func (r *Round) Count() int { return len(r.Guesses) }

// Finished reports whether the round has used all its guesses.
func (r *Round) Finished() bool { return len(r.Guesses) >= MaxGuesses }

// Feedback builds the wire response for the most recent guess.
func (r *Round) Feedback(h Hint) protocol.FeedbackMessage {
	return protocol.FeedbackMessage{
		Hint:       h.String(),
		GuessCount: r.Count(),
		Word:       r.Secret,
	}
}
