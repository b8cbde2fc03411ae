package watcher

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"peat/internal/config"
)

type fakeOutputRunner struct {
	outputs  [][]byte
	err      error
	commands []string
}

func (r *fakeOutputRunner) Output(_ context.Context, command string) ([]byte, error) {
	r.commands = append(r.commands, command)
	if r.err != nil {
		return nil, r.err
	}
	if len(r.outputs) == 0 {
		return nil, nil
	}
	output := r.outputs[0]
	if len(r.outputs) > 1 {
		r.outputs = r.outputs[1:]
	}
	return output, nil
}

func TestStaticSourceReturnsFixedSet(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a", time.Time{})
	b := writeFile(t, dir, "b", time.Time{})

	source, err := NewStaticSource([]byte(a+"\n"+b+"\n"+a+"\n"), config.SeparatorNewline, nil)
	if err != nil {
		t.Fatalf("new static source: %v", err)
	}
	for i := 0; i < 2; i++ {
		paths, err := source.Paths(context.Background())
		if err != nil {
			t.Fatalf("paths: %v", err)
		}
		if paths.Len() != 2 || !paths.Contains(a) || !paths.Contains(b) {
			t.Fatalf("expected {a, b}, got %v", paths.Sorted())
		}
	}
}

func TestStaticSourceRejectsEmptyList(t *testing.T) {
	_, err := NewStaticSource([]byte(" \n\t\n"), config.SeparatorWhitespace, nil)
	if !errors.Is(err, ErrNoPaths) {
		t.Fatalf("expected no paths error, got %v", err)
	}
}

func TestStaticSourceRejectsMissingPath(t *testing.T) {
	dir := t.TempDir()
	present := writeFile(t, dir, "present", time.Time{})
	missing := filepath.Join(dir, "missing")

	_, err := NewStaticSource([]byte(present+" "+missing), config.SeparatorWhitespace, nil)
	if !errors.Is(err, ErrPathNotFound) {
		t.Fatalf("expected path not found, got %v", err)
	}
	want := `path to watch does not exist: "` + missing + `"`
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestDynamicSourceRejectsBlankCommand(t *testing.T) {
	_, err := NewDynamicSource(" \n", config.SeparatorWhitespace, &fakeOutputRunner{})
	if !errors.Is(err, ErrNoPathsCommand) {
		t.Fatalf("expected no paths command error, got %v", err)
	}
}

func TestDynamicSourceRerunsGenerator(t *testing.T) {
	runner := &fakeOutputRunner{outputs: [][]byte{
		[]byte("/tmp/one\n"),
		[]byte("/tmp/one\n/tmp/two\n"),
	}}
	source, err := NewDynamicSource("find /tmp\n", config.SeparatorNewline, runner)
	if err != nil {
		t.Fatalf("new dynamic source: %v", err)
	}
	if source.Command() != "find /tmp" {
		t.Fatalf("expected trailing newline stripped, got %q", source.Command())
	}

	first, err := source.Paths(context.Background())
	if err != nil {
		t.Fatalf("paths: %v", err)
	}
	second, err := source.Paths(context.Background())
	if err != nil {
		t.Fatalf("paths: %v", err)
	}
	if first.Len() != 1 || second.Len() != 2 {
		t.Fatalf("expected growing watch set, got %v then %v", first.Sorted(), second.Sorted())
	}
	if len(runner.commands) != 2 || runner.commands[1] != "find /tmp" {
		t.Fatalf("expected generator to run twice, got %v", runner.commands)
	}
}

func TestDynamicSourceGeneratorFailure(t *testing.T) {
	failure := errors.New("exit status 1")
	source, err := NewDynamicSource("false", config.SeparatorWhitespace, &fakeOutputRunner{err: failure})
	if err != nil {
		t.Fatalf("new dynamic source: %v", err)
	}

	_, err = source.Paths(context.Background())
	var generatorErr *GeneratorError
	if !errors.As(err, &generatorErr) {
		t.Fatalf("expected generator error, got %v", err)
	}
	if generatorErr.Command != "false" || !errors.Is(err, failure) {
		t.Fatalf("expected wrapped exit error, got %v", err)
	}
}

func TestDynamicSourceCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	source, err := NewDynamicSource("find .", config.SeparatorWhitespace, &fakeOutputRunner{err: context.Canceled})
	if err != nil {
		t.Fatalf("new dynamic source: %v", err)
	}
	if _, err := source.Paths(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
}
