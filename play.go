package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/taylozac/wordle-5757/internal/client"
	"github.com/taylozac/wordle-5757/internal/logging"
)

// playCmd is the interactive terminal client.
var playCmd = &cobra.Command{
	Use:   "play [host] [port]",
	Short: "Play against a running server",
	Long:  "Connect to a server and send each typed word as a guess. An empty line quits.",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(args)
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		logger := logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr)

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		c, err := client.Dial(ctx, cfg.Addr(), cfg.Framing)
		if err != nil {
			return fmt.Errorf("failed to connect to %s: %w", cfg.Addr(), err)
		}
		defer c.Close()
		logger.Debug().Str("addr", cfg.Addr()).Msg("connected")

		return client.Play(c, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}
