package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/taylozac/wordle-5757/internal/httpserver"
	"github.com/taylozac/wordle-5757/internal/logging"
	"github.com/taylozac/wordle-5757/internal/server"
	"github.com/taylozac/wordle-5757/internal/store"
	"github.com/taylozac/wordle-5757/internal/words"
)

// serveCmd runs the game server.
var serveCmd = &cobra.Command{
	Use:   "serve [host] [port] [wordlist]",
	Short: "Run the game server",
	Long: `Listen for game clients on TCP (default localhost:31337).

With HTTP_ADDR set, a second listener serves /health, /debug/* and a
WebSocket game endpoint at /ws. With WATCH_WORDLIST=true a wordlist file
given by path is reloaded whenever it changes.`,
	Args: cobra.RangeArgs(0, 3),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	list, err := words.LoadOrDefault(cfg.WordlistPath)
	if err != nil {
		return fmt.Errorf("failed to load word list: %w", err)
	}
	wordStore := words.NewStore(list)
	logger.Info().Int("words", list.Len()).Str("path", cfg.WordlistPath).Msg("word list loaded")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, wordStore, store.NewMemory(), logger)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.ListenAndServe(ctx) })

	if cfg.HTTPAddr != "" {
		hs := httpserver.New(srv)
		g.Go(func() error { return hs.Start(ctx, cfg.HTTPAddr) })
	}
	if cfg.WatchWords && cfg.WordlistPath != "" {
		g.Go(func() error {
			if err := words.Watch(ctx, cfg.WordlistPath, wordStore, logger); err != nil {
				// Serving continues with the list already loaded.
				logger.Warn().Err(err).Msg("wordlist watcher stopped")
			}
			return nil
		})
	}

	logger.Info().Str("addr", cfg.Addr()).Str("framing", string(cfg.Framing)).Msg("starting wordle server")
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
