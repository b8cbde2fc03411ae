// Package config builds the immutable run configuration for peat from
// defaults, an optional config file, the environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"mvdan.cc/sh/v3/shell"

	"peat/internal/logging"
)

// Separator names how the path list on standard input is split.
type Separator string

const (
	SeparatorWhitespace Separator = "whitespace"
	SeparatorNewline    Separator = "newline"
	SeparatorSpace      Separator = "space"
	SeparatorNUL        Separator = "nul"
)

// Delimiter returns the literal delimiter for the separator. Whitespace has
// none and reports false.
func (s Separator) Delimiter() (string, bool) {
	switch s {
	case SeparatorNewline:
		return "\n", true
	case SeparatorSpace:
		return " ", true
	case SeparatorNUL:
		return "\x00", true
	default:
		return "", false
	}
}

func ParseSeparator(value string) (Separator, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "whitespace":
		return SeparatorWhitespace, nil
	case "newline", "newlines":
		return SeparatorNewline, nil
	case "space", "spaces":
		return SeparatorSpace, nil
	case "nul", "null", "zero":
		return SeparatorNUL, nil
	default:
		return "", fmt.Errorf("unknown separator %q", value)
	}
}

var ErrInvalidInterval = errors.New("interval must be a positive number of milliseconds")

// Config is created once at startup and never modified afterwards.
type Config struct {
	Command string
	// Interval is zero when the interval should be derived from the watch set.
	Interval     time.Duration
	Dynamic      bool
	PathsCommand string
	Clear        bool
	Verbose      bool
	Separator    Separator
	Shell        []string
	// LogLevel is empty unless a level was configured explicitly.
	LogLevel logging.Level
}

func (c Config) HasInterval() bool {
	return c.Interval > 0
}

// Options is the mutable form filled in layer by layer before Build.
type Options struct {
	IntervalMS int64
	Dynamic    bool
	Clear      bool
	Verbose    bool
	Separator  Separator
	Shell      string
	LogLevel   logging.Level
}

func Defaults() Options {
	return Options{
		Clear:     true,
		Verbose:   true,
		Separator: SeparatorWhitespace,
		Shell:     DefaultShell(),
	}
}

func DefaultShell() string {
	if runtime.GOOS == "windows" {
		return "cmd /C"
	}
	return "sh -c"
}

// Build validates the options and produces the final Config.
func (o Options) Build(command, pathsCommand string) (Config, error) {
	if o.IntervalMS < 0 {
		return Config{}, ErrInvalidInterval
	}
	separator := o.Separator
	if separator == "" {
		separator = SeparatorWhitespace
	}
	shellArgs, err := SplitShell(o.Shell)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Command:      command,
		Interval:     time.Duration(o.IntervalMS) * time.Millisecond,
		Dynamic:      o.Dynamic,
		PathsCommand: pathsCommand,
		Clear:        o.Clear,
		Verbose:      o.Verbose,
		Separator:    separator,
		Shell:        shellArgs,
		LogLevel:     o.LogLevel,
	}, nil
}

// MinLogLevel is the configured level, or info when verbose and warning
// when quiet. Quiet never lets info or debug output through.
func (c Config) MinLogLevel() logging.Level {
	level := c.LogLevel
	if level == "" {
		level = logging.LevelInfo
	}
	if !c.Verbose && (level == logging.LevelDebug || level == logging.LevelInfo) {
		return logging.LevelWarning
	}
	return level
}

// ParseLogLevel accepts debug, info, warning (or warn) and error.
func ParseLogLevel(value string) (logging.Level, error) {
	level, ok := logging.ParseLevel(value)
	if !ok {
		return "", fmt.Errorf("unknown log level %q", value)
	}
	return level, nil
}

// SplitShell turns a shell prefix such as "bash -lc" into argv using shell
// quoting rules. An empty value selects DefaultShell.
func SplitShell(value string) ([]string, error) {
	if strings.TrimSpace(value) == "" {
		value = DefaultShell()
	}
	fields, err := shell.Fields(value, os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("parse shell %q: %w", value, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("parse shell %q: no program", value)
	}
	return fields, nil
}
