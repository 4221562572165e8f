// Package toolconfig holds the small set of run-time knobs the CLI and
// the two execution paths share: stack depth limits and the trace/log
// level. It is deliberately not a general configuration framework — a
// struct of defaults plus an optional file override, in the spirit of
// the teacher's own "no config file at all, flags only" stance, widened
// just enough to give SPEC_FULL's ambient stack a config layer.
package toolconfig

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Config is the fixed set of tunables SPEC_FULL §2 names: the two
// stack-depth ceilings the machine and interp packages may choose to
// enforce, and the trace/log level cobra flags and Load both feed.
type Config struct {
	MaxControlDepth int
	MaxValueDepth   int
	LogLevel        zerolog.Level
}

// Default returns the zero-configuration baseline: generous stack
// ceilings and logging off (zerolog.Disabled), matching "nothing is
// logged by default" (SPEC_FULL §2).
func Default() Config {
	return Config{
		MaxControlDepth: 4096,
		MaxValueDepth:   4096,
		LogLevel:        zerolog.Disabled,
	}
}

// Load reads path as a flat key=value file (one setting per line, '#'
// starts a comment) and overrides Default's fields with whatever keys
// it finds. Recognized keys: max_control_depth, max_value_depth,
// log_level (any name zerolog.ParseLevel accepts). An empty path is not
// an error — Load then just returns Default(), since this layer only
// activates when a path is actually given (SPEC_FULL §2).
//
// A full TOML library is not wired in here: every key is a bare scalar,
// so a key=value reader already gives the same effect a TOML table
// would for this shape, without pulling a parser in for three fields.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("toolconfig: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			return Config{}, fmt.Errorf("toolconfig: malformed line %q in %s", line, path)
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(strings.Trim(val, `"`))

		switch key {
		case "max_control_depth":
			n, err := strconv.Atoi(val)
			if err != nil {
				return Config{}, fmt.Errorf("toolconfig: %s: %w", key, err)
			}
			cfg.MaxControlDepth = n
		case "max_value_depth":
			n, err := strconv.Atoi(val)
			if err != nil {
				return Config{}, fmt.Errorf("toolconfig: %s: %w", key, err)
			}
			cfg.MaxValueDepth = n
		case "log_level":
			lvl, err := zerolog.ParseLevel(val)
			if err != nil {
				return Config{}, fmt.Errorf("toolconfig: %s: %w", key, err)
			}
			cfg.LogLevel = lvl
		default:
			return Config{}, fmt.Errorf("toolconfig: unknown key %q in %s", key, path)
		}
	}
	if err := scanner.Err(); err != nil {
		return Config{}, fmt.Errorf("toolconfig: %w", err)
	}
	return cfg, nil
}

// Logger builds a zerolog.Logger writing to stderr at cfg.LogLevel,
// the logger interp.RunWithLogger/RunWithConfig take and machine.VM
// holds in its Log field.
func Logger(cfg Config) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
		Level(cfg.LogLevel).
		With().Timestamp().Logger()
}
