// internal/httpserver/server.go
//
// Diagnostics and WebSocket front end for the game server.
// Responsibilities:
//   - Router + middleware (JSON, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Debug endpoints: "/debug/words" (wordlist size), "/debug/sessions"
//     (live session snapshots from the registry), "/debug/sessions/{id}".
//   - "/ws": upgrades to a WebSocket and plays the same game as the TCP
//     listener, one message per frame.
//
// Notes:
//   - The timeout middleware only wraps the short-lived routes; a WebSocket
//     session lives as long as its peer.
//   - Started only when HTTP_ADDR is set.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/taylozac/wordle-5757/internal/server"
	"github.com/taylozac/wordle-5757/internal/store"
	"github.com/taylozac/wordle-5757/internal/transport"
)

// Server bundles the router and the game server it exposes.
type Server struct {
	r        *chi.Mux
	game     *server.Server
	upgrader websocket.Upgrader
}

// New constructs a Server, installs middleware, and registers routes.
func New(game *server.Server) *Server {
	s := &Server{
		r:    chi.NewRouter(),
		game: game,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Any origin may play; there is nothing to protect behind a cookie.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics

	// --- diagnostics ---
	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Use(jsonContentType)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"wordle","endpoints":["/health","/debug/words","/debug/sessions","/ws"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/debug/words", s.handleWords)
		r.Get("/debug/sessions", s.handleSessions)
		r.Get("/debug/sessions/{id}", s.handleSession)

		// JSON 404 for easier debugging
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
		})
	})

	// --- game ---
	s.r.Get("/ws", s.handleWebSocket)

	return s
}

// Start serves HTTP on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
		// WebSocket sessions end with ctx.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	stop := context.AfterFunc(ctx, func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hs.Shutdown(sctx)
	})
	defer stop()

	log.Info().Str("addr", addr).Msg("http listening")
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- DEBUG -------------------------------------

// handleWords reports the wordlist size; ?list=true includes the words.
func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	l := s.game.Words().Current()
	if l == nil {
		_ = json.NewEncoder(w).Encode(map[string]int{"count": 0})
		return
	}
	if r.URL.Query().Get("list") == "true" {
		_ = json.NewEncoder(w).Encode(map[string]any{"count": l.Len(), "words": l.Words()})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]int{"count": l.Len()})
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	list, err := s.game.Registry().List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list sessions")
		http.Error(w, `{"error":"list_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"count":    s.game.Registry().Count(r.Context()),
		"sessions": list,
	})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.game.Registry().Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("get session")
		http.Error(w, `{"error":"get_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(snap)
}

// ------------------------------- GAME --------------------------------------

// handleWebSocket upgrades the request and runs a session over it until the
// peer leaves or the server shuts down.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("websocket upgrade")
		return
	}
	cfg := s.game.Config()
	s.game.ServeConn(r.Context(), transport.NewWebSocket(c, cfg.MaxMessageSize, cfg.IdleTimeout))
}
