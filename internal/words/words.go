// internal/words/words.go
//
// Wordlist provider for the game server.
//
// Responsibilities:
//   - Load an ordered list of five-letter words from a file (one per line) or
//     fall back to the embedded default list.
//   - Answer membership queries case-insensitively.
//   - Pick a uniformly random word using a caller-supplied source.
//
// Constraints:
//   • Words must be 5 alphabetic letters (a–z).
//   • Lists are normalized to lowercase; duplicates are dropped, order is kept.
//   • A List is immutable once built, so it can be shared by every session.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/taylozac/wordle-5757/assets"
)

// WordLength is the number of letters in every playable word.
const WordLength = 5

// ErrEmpty is returned when a source yields no usable words.
var ErrEmpty = errors.New("words: list is empty")

// List is an ordered, read-only collection of candidate words.
type List struct {
	words []string
	set   map[string]struct{}
}

// New builds a List from raw entries, normalizing and filtering them.
func New(entries []string) (*List, error) {
	words := lo.Uniq(lo.FilterMap(entries, func(line string, _ int) (string, bool) {
		w := strings.TrimSpace(strings.ToLower(line))
		if strings.HasPrefix(w, "#") {
			return "", false
		}
		return w, len(w) == WordLength && isAlpha(w)
	}))
	if len(words) == 0 {
		return nil, ErrEmpty
	}
	return &List{words: words, set: toSet(words)}, nil
}

// Parse reads one word per line from r.
func Parse(r io.Reader) (*List, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return New(lines)
}

// Load reads a wordlist file from disk.
func Load(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	l, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return l, nil
}

// Default returns the embedded wordlist.
func Default() (*List, error) {
	f, err := assets.OpenWords()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// LoadOrDefault loads path, or the embedded list when path is empty.
func LoadOrDefault(path string) (*List, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Len reports the number of words.
func (l *List) Len() int { return len(l.words) }

// Words returns a copy of the words in load order.
func (l *List) Words() []string { return append([]string(nil), l.words...) }

// Contains reports whether w is in the list, ignoring case.
func (l *List) Contains(w string) bool {
	_, ok := l.set[strings.ToLower(w)]
	return ok
}

// Random returns a uniformly chosen word drawn from r.
func (l *List) Random(r *rand.Rand) string {
	return l.words[r.IntN(len(l.words))]
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
