package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/taylozac/wordle-5757/internal/config"
)

var (
	envFile   string
	logLevel  string
	logFormat string
)

// rootCmd runs the server when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "wordle [host] [port] [wordlist]",
	Short: "Networked Wordle server and client",
	Long: `Wordle is a word-guessing game played over TCP.

The server holds a secret five-letter word per connection and answers each
guess with a hint. After six accepted guesses a new round starts with a new
word. Use 'wordle play' to connect with the interactive client.

Settings come from the environment (and an optional .env file); positional
arguments override WORDLE_HOST, WORDLE_PORT and WORDLE_WORDLIST.`,
	Args:          cobra.RangeArgs(0, 3),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("wordle exited")
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", `log format, "json" or "console" (overrides LOG_FORMAT)`)
}

// loadConfig reads .env, the environment, flags and positional args, in
// increasing order of precedence.
func loadConfig(args []string) (config.Config, error) {
	if _, err := os.Stat(envFile); err == nil {
		config.LoadDotEnv(envFile)
	}
	cfg := config.FromEnv()
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	if err := cfg.ApplyArgs(args); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}
