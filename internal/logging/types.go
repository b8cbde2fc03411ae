package logging

import "time"

type Level string

const (
	LevelDebug   Level = "debug"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Format selects how entries are rendered on the output writer.
type Format int

const (
	// FormatPlain writes the bare message followed by any fields. It is meant
	// for people watching a terminal.
	FormatPlain Format = iota
	// FormatText writes level=... msg=... key=value lines.
	FormatText
)

type LogEntry struct {
	Timestamp time.Time         `json:"timestamp"`
	Level     Level             `json:"level"`
	Message   string            `json:"message"`
	Context   map[string]string `json:"context,omitempty"`
}
