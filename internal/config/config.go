// internal/config/config.go
//
// Runtime configuration for the server and client.
//
// Values come from the environment (optionally seeded from a `.env` file)
// and may be overridden by command line arguments.
//
// Environment variables:
//   WORDLE_HOST        bind/dial host                 (default localhost)
//   WORDLE_PORT        TCP port                       (default 31337)
//   WORDLE_WORDLIST    wordlist file; empty = embedded list
//   WATCH_WORDLIST     reload the wordlist on change  (default false)
//   WORDLE_SEED        derive session words from this seed; empty = random
//   HTTP_ADDR          diagnostics/WebSocket listener; empty = disabled
//   FRAMING            "read" (one read = one message) or "line"
//   MAX_MESSAGE_SIZE   per-message byte limit         (default 256)
//   IDLE_TIMEOUT       read timeout per message, e.g. 5m; 0 = none
//   RATE_LIMIT_RPS     messages/second per session; 0 = unlimited
//   RATE_LIMIT_BURST   burst for the limiter          (default 1)
//   LOG_LEVEL          zerolog level                  (default info)
//   LOG_FORMAT         "json" or "console"            (default json)

package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/taylozac/wordle-5757/internal/protocol"
	"github.com/taylozac/wordle-5757/internal/transport"
)

const (
	DefaultHost = "localhost"
	DefaultPort = 31337
)

// Config holds every tunable of the process.
type Config struct {
	Host         string
	Port         int
	WordlistPath string
	WatchWords   bool
	Seed         string

	HTTPAddr string

	Framing        transport.Framing
	MaxMessageSize int
	IdleTimeout    time.Duration
	RateLimitRPS   float64
	RateLimitBurst int

	LogLevel  string
	LogFormat string
}

// LoadDotEnv loads `.env` if present. A missing file is not an error.
func LoadDotEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to load .env")
	}
}

// FromEnv builds a Config from environment variables and defaults.
func FromEnv() Config {
	return Config{
		Host:           getEnv("WORDLE_HOST", DefaultHost),
		Port:           getEnvInt("WORDLE_PORT", DefaultPort),
		WordlistPath:   os.Getenv("WORDLE_WORDLIST"),
		WatchWords:     getEnvBool("WATCH_WORDLIST", false),
		Seed:           os.Getenv("WORDLE_SEED"),
		HTTPAddr:       os.Getenv("HTTP_ADDR"),
		Framing:        transport.Framing(getEnv("FRAMING", string(transport.FramingRead))),
		MaxMessageSize: getEnvInt("MAX_MESSAGE_SIZE", protocol.MaxMessageSize),
		IdleTimeout:    getEnvDuration("IDLE_TIMEOUT", 0),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 1),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if _, err := transport.ParseFraming(string(c.Framing)); err != nil {
		return err
	}
	if c.MaxMessageSize <= 0 {
		return fmt.Errorf("max message size must be positive, got %d", c.MaxMessageSize)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("idle timeout must not be negative, got %s", c.IdleTimeout)
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("rate limit must not be negative, got %v", c.RateLimitRPS)
	}
	return nil
}

// Addr is the TCP address to listen on or dial.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ApplyArgs overrides host, port and wordlist from positional arguments, in
// that order. Missing arguments keep their current value.
func (c *Config) ApplyArgs(args []string) error {
	if len(args) > 0 && args[0] != "" {
		c.Host = args[0]
	}
	if len(args) > 1 {
		p, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid port %q: %w", args[1], err)
		}
		c.Port = p
	}
	if len(args) > 2 {
		c.WordlistPath = args[2]
	}
	return nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getEnvInt reads an int from the environment or returns a fallback.
func getEnvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Int("default", fallback).Msg("invalid int, using default")
		return fallback
	}
	return i
}

func getEnvFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Float64("default", fallback).Msg("invalid number, using default")
		return fallback
	}
	return f
}

func getEnvBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Bool("default", fallback).Msg("invalid bool, using default")
		return fallback
	}
	return b
}

// getEnvDuration reads a time.Duration from the environment or returns a fallback.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Dur("default", fallback).Msg("invalid duration, using default")
		return fallback
	}
	return d
}
