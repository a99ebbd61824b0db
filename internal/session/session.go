// internal/session/session.go
//
// Session drives one client connection through the game.
//
// Lifecycle:
//   AwaitingConnection → RoundActive → AwaitingMessage
//     → MessageAccepted (guess counted, feedback sent)
//     → MessageRejected (error sent, guess not counted)
//     → AwaitingMessage … until MaxGuesses accepted guesses → RoundComplete
//   RoundComplete starts a new round with a fresh secret word.
//   A disconnect while awaiting a message → Terminal; no new round starts.
//
// Every received message gets exactly one reply. Malformed, mismatching and
// unknown guesses are answered with an ErrorMessage and never use up a guess.
// Transport failures end this session only.

package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/taylozac/wordle-5757/internal/game"
	"github.com/taylozac/wordle-5757/internal/protocol"
	"github.com/taylozac/wordle-5757/internal/rng"
	"github.com/taylozac/wordle-5757/internal/store"
	"github.com/taylozac/wordle-5757/internal/transport"
	"github.com/taylozac/wordle-5757/internal/words"
)

// ErrTransport wraps read and write failures that end a session.
var ErrTransport = errors.New("transport failure")

// State is the position of a session in its lifecycle.
type State int

const (
	AwaitingConnection State = iota
	RoundActive
	AwaitingMessage
	MessageAccepted
	MessageRejected
	RoundComplete
	Terminal
)

var stateNames = [...]string{
	AwaitingConnection: "awaiting_connection",
	RoundActive:        "round_active",
	AwaitingMessage:    "awaiting_message",
	MessageAccepted:    "message_accepted",
	MessageRejected:    "message_rejected",
	RoundComplete:      "round_complete",
	Terminal:           "terminal",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Session is the per-connection game state. It is owned by the goroutine
// running Run; its accessors are only meaningful once Run has returned.
type Session struct {
	id       string
	conn     transport.Conn
	words    words.Provider
	seed     string
	rnd      *rand.Rand
	log      zerolog.Logger
	limiter  *rate.Limiter
	registry store.Registry
	started  time.Time

	state  State
	round  *game.Round
	rounds int
}

// Option configures a Session.
type Option func(*Session)

// WithID sets the session ID (default: a random UUID).
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// WithSeed derives the session's word choices from seed and its ID.
func WithSeed(seed string) Option {
	return func(s *Session) { s.seed = seed }
}

// WithRand sets the random source directly, overriding WithSeed.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rnd = r }
}

// WithLogger sets the parent logger (default: the global zerolog logger).
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithRateLimit delays message handling beyond rps messages per second.
// Messages are never dropped. rps <= 0 disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Session) {
		if rps <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

// WithRegistry publishes the session's progress to r.
func WithRegistry(r store.Registry) Option {
	return func(s *Session) { s.registry = r }
}

// New prepares a session over conn. Nothing is read until Run.
func New(conn transport.Conn, provider words.Provider, opts ...Option) *Session {
	s := &Session{
		conn:  conn,
		words: provider,
		log:   log.Logger,
		state: AwaitingConnection,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	if s.rnd == nil {
		s.rnd = rng.ForSession(s.seed, s.id)
	}
	s.log = s.log.With().
		Str("session", s.id).
		Str("remote", conn.RemoteAddr()).
		Str("transport", conn.Kind()).
		Logger()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State returns the last state reached.
func (s *Session) State() State { return s.state }

// Rounds returns how many rounds were started.
func (s *Session) Rounds() int { return s.rounds }

// Round returns the current (or last) round.
func (s *Session) Round() *game.Round { return s.round }

// Run plays rounds until the peer disconnects, ctx is cancelled or the
// transport fails. A disconnect or cancellation returns nil. The connection
// is closed on every return path.
func (s *Session) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { _ = s.conn.Close() })
	defer stop()

	s.started = time.Now().UTC()
	s.log.Info().Msg("connection opened")
	defer s.close(ctx)

	for {
		if err := s.startRound(ctx); err != nil {
			return err
		}
		for !s.round.Finished() {
			err := s.step(ctx)
			if err == nil {
				continue
			}
			s.state = Terminal
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			s.log.Error().Err(err).Msg("session aborted")
			return err
		}
		s.state = RoundComplete
		s.log.Info().Int("round", s.round.Number).Msg("round complete")
	}
}

// startRound picks a new secret from the current wordlist.
func (s *Session) startRound(ctx context.Context) error {
	list := s.words.Current()
	if list == nil || list.Len() == 0 {
		s.state = Terminal
		return words.ErrEmpty
	}
	s.rounds++
	s.round = game.NewRound(s.rounds, list.Random(s.rnd))
	s.state = RoundActive
	s.log.Debug().Int("round", s.rounds).Str("secret", s.round.Secret).Msg("round started")
	s.publish(ctx)
	return nil
}

// step reads one message and writes its reply.
func (s *Session) step(ctx context.Context) error {
	s.state = AwaitingMessage
	raw, err := s.conn.ReadMessage()
	switch {
	case errors.Is(err, transport.ErrMessageTooLong):
		s.reject(err, protocol.ErrTextMalformed)
		return s.send(protocol.NewDecodeFailure())
	case err != nil:
		return fmt.Errorf("%w: read message: %w", ErrTransport, err)
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}
	return s.send(s.handle(ctx, raw))
}

// handle turns one inbound message into its reply.
func (s *Session) handle(ctx context.Context, raw []byte) any {
	req, err := protocol.Decode(raw)
	if err != nil {
		s.reject(err, protocol.ErrTextMalformed)
		return protocol.NewDecodeFailure()
	}

	guess, err := game.Validate(req, s.words.Current())
	var (
		schemaErr *game.SchemaError
		dictErr   *game.DictionaryError
	)
	switch {
	case errors.As(err, &schemaErr):
		s.reject(err, protocol.ErrTextSchema)
		return protocol.NewSchemaFailure()
	case errors.As(err, &dictErr):
		s.reject(err, protocol.ErrTextDictionary)
		return protocol.NewDictionaryFailure()
	case err != nil:
		s.reject(err, protocol.ErrTextSchema)
		return protocol.NewSchemaFailure()
	}

	hint, err := s.round.Apply(guess)
	if err != nil {
		// Unreachable while Run checks Finished before every step.
		s.reject(err, protocol.ErrTextDictionary)
		return protocol.NewDictionaryFailure()
	}
	s.state = MessageAccepted
	s.log.Info().
		Int("round", s.round.Number).
		Int("guess_count", s.round.Count()).
		Str("guess", guess).
		Str("hint", hint.String()).
		Bool("solved", hint.Solved()).
		Msg("guess accepted")
	s.publish(ctx)
	return s.round.Feedback(hint)
}

func (s *Session) reject(err error, category string) {
	s.state = MessageRejected
	s.log.Error().Err(err).Int("round", s.round.Number).Msg(category)
}

func (s *Session) send(msg any) error {
	b, err := protocol.Encode(msg)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	if err := s.conn.WriteMessage(b); err != nil {
		return fmt.Errorf("%w: write response: %w", ErrTransport, err)
	}
	return nil
}

func (s *Session) publish(ctx context.Context) {
	if s.registry == nil {
		return
	}
	snap := store.Snapshot{
		ID:         s.id,
		RemoteAddr: s.conn.RemoteAddr(),
		Transport:  s.conn.Kind(),
		StartedAt:  s.started,
	}
	if s.round != nil {
		snap.Round = s.round.Number
		snap.GuessCount = s.round.Count()
	}
	if err := s.registry.Put(ctx, snap); err != nil {
		s.log.Warn().Err(err).Msg("publish session")
	}
}

func (s *Session) close(ctx context.Context) {
	if err := s.conn.Close(); err != nil && !errors.Is(err, io.EOF) {
		s.log.Debug().Err(err).Msg("close connection")
	}
	if s.registry != nil {
		_ = s.registry.Delete(context.WithoutCancel(ctx), s.id)
	}
	s.state = Terminal
	s.log.Info().Int("rounds", s.rounds).Msg("connection closed")
}
