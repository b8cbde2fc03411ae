package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	EnvConfig    = "PEAT_CONFIG"
	EnvInterval  = "PEAT_INTERVAL"
	EnvDynamic   = "PEAT_DYNAMIC"
	EnvClear     = "PEAT_CLEAR"
	EnvVerbose   = "PEAT_VERBOSE"
	EnvSeparator = "PEAT_SEPARATOR"
	EnvShell     = "PEAT_SHELL"
	EnvLogLevel  = "PEAT_LOG_LEVEL"
)

// LoadFile decodes a config file, choosing YAML for .yaml/.yml and TOML
// otherwise.
func LoadFile(path string) (Store, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return Store{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var store Store
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		store, err = DecodeYAML(payload)
	default:
		store, err = DecodeTOML(payload)
	}
	if err != nil {
		return Store{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return store, nil
}

// ApplyStore overlays values present in the store.
func (o *Options) ApplyStore(store Store) error {
	if interval, ok, err := store.Int("interval"); err != nil {
		return err
	} else if ok {
		if interval <= 0 {
			return fmt.Errorf("config key %q: %w", "interval", ErrInvalidInterval)
		}
		o.IntervalMS = interval
	}
	for _, entry := range []struct {
		key    string
		target *bool
	}{
		{key: "dynamic", target: &o.Dynamic},
		{key: "clear", target: &o.Clear},
		{key: "verbose", target: &o.Verbose},
	} {
		value, ok, err := store.Bool(entry.key)
		if err != nil {
			return err
		}
		if ok {
			*entry.target = value
		}
	}
	if raw, ok, err := store.String("separator"); err != nil {
		return err
	} else if ok {
		separator, err := ParseSeparator(raw)
		if err != nil {
			return fmt.Errorf("config key %q: %w", "separator", err)
		}
		o.Separator = separator
	}
	if shellValue, ok, err := store.String("shell"); err != nil {
		return err
	} else if ok && shellValue != "" {
		o.Shell = shellValue
	}
	if raw, ok, err := store.String("log_level"); err != nil {
		return err
	} else if ok && raw != "" {
		level, err := ParseLogLevel(raw)
		if err != nil {
			return fmt.Errorf("config key %q: %w", "log_level", err)
		}
		o.LogLevel = level
	}
	return nil
}

// ApplyEnv overlays PEAT_* environment variables. Empty values are ignored.
func (o *Options) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		return nil
	}
	get := func(key string) (string, bool) {
		value, ok := lookup(key)
		value = strings.TrimSpace(value)
		return value, ok && value != ""
	}

	if raw, ok := get(EnvInterval); ok {
		if strings.EqualFold(raw, "smart") {
			o.IntervalMS = 0
		} else {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || parsed <= 0 {
				return fmt.Errorf("%s: %w", EnvInterval, ErrInvalidInterval)
			}
			o.IntervalMS = parsed
		}
	}
	for _, entry := range []struct {
		key    string
		target *bool
	}{
		{key: EnvDynamic, target: &o.Dynamic},
		{key: EnvClear, target: &o.Clear},
		{key: EnvVerbose, target: &o.Verbose},
	} {
		raw, ok := get(entry.key)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", entry.key, raw)
		}
		*entry.target = parsed
	}
	if raw, ok := get(EnvSeparator); ok {
		separator, err := ParseSeparator(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeparator, err)
		}
		o.Separator = separator
	}
	if raw, ok := get(EnvShell); ok {
		o.Shell = raw
	}
	if raw, ok := get(EnvLogLevel); ok {
		level, err := ParseLogLevel(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		o.LogLevel = level
	}
	return nil
}
