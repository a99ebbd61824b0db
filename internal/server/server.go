// internal/server/server.go
//
// Connection dispatcher for the game server.
// Responsibilities:
//   - Accept TCP connections and run one Session per connection in its own
//     goroutine.
//   - Keep a failing session's error inside its goroutine; the accept loop
//     and other sessions carry on.
//   - Shut down cleanly: stop accepting, close live connections, wait for
//     every session goroutine.
//
// Sessions share only the wordlist provider (read-only) and the registry
// (diagnostics only).

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/taylozac/wordle-5757/internal/config"
	"github.com/taylozac/wordle-5757/internal/session"
	"github.com/taylozac/wordle-5757/internal/store"
	"github.com/taylozac/wordle-5757/internal/transport"
	"github.com/taylozac/wordle-5757/internal/words"
)

// Server accepts connections and hands each one to a Session.
type Server struct {
	cfg      config.Config
	words    words.Provider
	registry store.Registry
	log      zerolog.Logger

	mu sync.Mutex
	ln net.Listener
	wg sync.WaitGroup
}

// New constructs a Server. registry may be nil.
func New(cfg config.Config, provider words.Provider, registry store.Registry, log zerolog.Logger) *Server {
	if registry == nil {
		registry = store.NewMemory()
	}
	return &Server{cfg: cfg, words: provider, registry: registry, log: log}
}

// Config returns the configuration the server was built with.
func (s *Server) Config() config.Config { return s.cfg }

// Registry exposes the live-session registry.
func (s *Server) Registry() store.Registry { return s.registry }

// Words exposes the wordlist provider.
func (s *Server) Words() words.Provider { return s.words }

// Addr returns the bound listener address, or nil before Serve.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// ListenAndServe listens on the configured TCP address and serves until ctx
// is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled or ln fails.
// It returns after every session goroutine has finished. A fatal accept
// error closes ln and ends the live sessions before Serve returns it.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()
	// Deferred calls run in reverse: sessions are cancelled and ln is
	// closed before waiting on the session goroutines.
	defer s.wg.Wait()
	defer func() {
		cancel()
		_ = ln.Close()
	}()

	s.log.Info().Str("addr", ln.Addr().String()).Msg("bound")

	var delay time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.log.Info().Msg("listener closed")
				return nil
			}
			if isTemporary(err) {
				delay = min(max(delay*2, 5*time.Millisecond), time.Second)
				s.log.Warn().Err(err).Dur("retry_in", delay).Msg("accept failed")
				select {
				case <-time.After(delay):
				case <-ctx.Done():
				}
				continue
			}
			s.log.Error().Err(err).Msg("failed to accept connection")
			return err
		}
		delay = 0

		stream := transport.NewStream(conn, s.cfg.Framing, s.cfg.MaxMessageSize, s.cfg.IdleTimeout)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.ServeConn(ctx, stream)
		}()
	}
}

// isTemporary reports accept errors worth retrying: timeouts, descriptor
// exhaustion and connections aborted before they were accepted.
func isTemporary(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(err, syscall.EMFILE) ||
		errors.Is(err, syscall.ENFILE) ||
		errors.Is(err, syscall.ENOBUFS) ||
		errors.Is(err, syscall.ENOMEM) ||
		errors.Is(err, syscall.ECONNABORTED) ||
		errors.Is(err, syscall.ECONNRESET)
}

// ServeConn runs one session over c and blocks until it ends. Errors are
// logged, never returned, so one session cannot affect another.
func (s *Server) ServeConn(ctx context.Context, c transport.Conn) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("remote", c.RemoteAddr()).Msg("session panicked")
			_ = c.Close()
		}
	}()

	sess := session.New(c, s.words,
		session.WithLogger(s.log),
		session.WithSeed(s.cfg.Seed),
		session.WithRateLimit(s.cfg.RateLimitRPS, s.cfg.RateLimitBurst),
		session.WithRegistry(s.registry),
	)
	if err := sess.Run(ctx); err != nil {
		s.log.Warn().Err(err).Str("session", sess.ID()).Msg("session ended with error")
	}
}
