// internal/words/store.go
//
// Store holds the wordlist currently served to sessions and lets it be
// swapped at runtime (hot reload). Lists themselves are immutable; the store
// only swaps the pointer, so a session working on a snapshot never observes
// a partial update.

package words

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Provider hands out the current wordlist snapshot.
type Provider interface {
	Current() *List
}

// Store is a Provider whose list can be replaced concurrently.
type Store struct {
	mu   sync.RWMutex // guards list
	list *List
}

// NewStore returns a Store serving l.
func NewStore(l *List) *Store {
	return &Store{list: l}
}

// Current returns the list in effect right now.
func (s *Store) Current() *List {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.list
}

// Replace swaps in a new list. Nil lists are ignored.
func (s *Store) Replace(l *List) {
	if l == nil {
		return
	}
	s.mu.Lock()
	s.list = l
	s.mu.Unlock()
}

// Reload re-reads path and swaps it in. On failure the previous list stays.
func (s *Store) Reload(path string) (*List, error) {
	l, err := Load(path)
	if err != nil {
		return nil, err
	}
	s.Replace(l)
	return l, nil
}

// Watch reloads path into s whenever the file changes, until ctx is done.
// The parent directory is watched so editors that replace the file on save
// are picked up as well.
func Watch(ctx context.Context, path string, s *Store, log zerolog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return err
	}
	log.Info().Str("path", target).Msg("watching wordlist")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			l, err := s.Reload(target)
			if err != nil {
				log.Warn().Err(err).Str("path", target).Msg("wordlist reload failed, keeping previous list")
				continue
			}
			log.Info().Str("path", target).Int("words", l.Len()).Msg("wordlist reloaded")
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("wordlist watcher")
		}
	}
}
