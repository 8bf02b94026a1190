// Package config loads the TOML configuration shared by hosts and the
// CLI. A missing config file is not an error; every field has a default.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/markbuf/markbuf/mark"
)

// Config is the root of the configuration file.
type Config struct {
	Log    Log    `toml:"log"`
	Reaper Reaper `toml:"reaper"`
}

// Log configures the slog setup.
type Log struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `toml:"level"`

	// Format is "text" or "json".
	Format string `toml:"format"`
}

// Reaper configures deferred mark destruction.
type Reaper struct {
	QueueSize      int      `toml:"queue_size"`
	AcquireTimeout Duration `toml:"acquire_timeout"`
}

// Duration decodes TOML strings like "5s" or "200ms".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", b, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		Reaper: Reaper{
			QueueSize:      mark.DefaultQueueSize,
			AcquireTimeout: Duration(mark.DefaultAcquireTimeout),
		},
	}
}

// Load reads the configuration at path, falling back to defaults when the
// file does not exist.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes TOML data over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	if c.Reaper.QueueSize <= 0 {
		return fmt.Errorf("reaper queue_size must be positive, got %d", c.Reaper.QueueSize)
	}
	if c.Reaper.AcquireTimeout <= 0 {
		return fmt.Errorf("reaper acquire_timeout must be positive, got %s", c.Reaper.AcquireTimeout)
	}
	return nil
}

// SlogLevel parses the configured log level.
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", l.Level)
	}
	return level, nil
}

// NewLogger builds a logger writing to w per the log section.
func (l Log) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := l.SlogLevel()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if l.Format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h), nil
}

// Options translates the reaper section into reaper options.
func (r Reaper) Options(log *slog.Logger) []mark.ReaperOption {
	return []mark.ReaperOption{
		mark.WithQueueSize(r.QueueSize),
		mark.WithAcquireTimeout(time.Duration(r.AcquireTimeout)),
		mark.WithLogger(log),
	}
}
