//go:build !windows

package watcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"peat/internal/config"
	"peat/internal/process"
)

func TestDynamicGeneratorRunsBeforeEveryCheck(t *testing.T) {
	dir := t.TempDir()
	watched := writeFile(t, dir, "watched", time.Now().Add(-time.Hour))
	calls := filepath.Join(dir, "calls")
	runner := &process.Runner{Shell: []string{"sh", "-c"}, Stdout: io.Discard, Stderr: io.Discard}

	generator := fmt.Sprintf("echo x >> '%s'; echo '%s'", calls, watched)
	source, err := NewDynamicSource(generator, config.SeparatorNewline, runner)
	if err != nil {
		t.Fatalf("new dynamic source: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sleep, iterations := stepSleep(cancel, 3, nil)
	loop, err := NewLoop(LoopOptions{
		Config: config.Config{Command: "true", Dynamic: true},
		Source: source,
		Runner: runner,
		Sleep:  sleep,
	})
	if err != nil {
		t.Fatalf("new loop: %v", err)
	}
	if err := loop.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}

	data, err := os.ReadFile(calls)
	if err != nil {
		t.Fatalf("read calls: %v", err)
	}
	got := len(strings.Fields(string(data)))
	// The startup listing plus one run per check.
	if got != *iterations+1 {
		t.Fatalf("expected %d generator runs, got %d", *iterations+1, got)
	}
}

func TestDynamicGeneratorFailureStopsLoop(t *testing.T) {
	runner := &process.Runner{Shell: []string{"sh", "-c"}, Stdout: io.Discard, Stderr: io.Discard}
	source, err := NewDynamicSource("exit 2", config.SeparatorWhitespace, runner)
	if err != nil {
		t.Fatalf("new dynamic source: %v", err)
	}
	loop, err := NewLoop(LoopOptions{
		Config: config.Config{Command: "true", Dynamic: true},
		Source: source,
		Runner: runner,
	})
	if err != nil {
		t.Fatalf("new loop: %v", err)
	}

	err = loop.Run(context.Background())
	var generatorErr *GeneratorError
	if !errors.As(err, &generatorErr) {
		t.Fatalf("expected generator error, got %v", err)
	}
}
