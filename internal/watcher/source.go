package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"unicode"

	"peat/internal/config"
)

// StaticSource returns the same set on every call.
type StaticSource struct {
	set WatchSet
}

// NewStaticSource parses the path list once and checks that it is non-empty
// and that every path exists.
func NewStaticSource(data []byte, separator config.Separator, stat StatFunc) (*StaticSource, error) {
	set, err := ParsePaths(data, separator)
	if err != nil {
		return nil, err
	}
	if set.Len() == 0 {
		return nil, ErrNoPaths
	}
	stat = defaultStat(stat)
	for _, path := range set.Sorted() {
		if _, err := stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %q", ErrPathNotFound, path)
			}
			return nil, &StatError{Path: path, Err: err}
		}
	}
	return &StaticSource{set: set}, nil
}

func (s *StaticSource) Paths(context.Context) (WatchSet, error) {
	return s.set, nil
}

// DynamicSource re-runs a generator command on every call and parses its
// output. Generated paths are not required to exist.
type DynamicSource struct {
	command   string
	separator config.Separator
	runner    OutputRunner
}

func NewDynamicSource(command string, separator config.Separator, runner OutputRunner) (*DynamicSource, error) {
	command = strings.TrimRightFunc(command, unicode.IsSpace)
	if strings.TrimSpace(command) == "" {
		return nil, ErrNoPathsCommand
	}
	if runner == nil {
		return nil, errors.New("dynamic source requires a runner")
	}
	return &DynamicSource{
		command:   command,
		separator: separator,
		runner:    runner,
	}, nil
}

func (s *DynamicSource) Command() string {
	return s.command
}

func (s *DynamicSource) Paths(ctx context.Context) (WatchSet, error) {
	output, err := s.runner.Output(ctx, s.command)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &GeneratorError{Command: s.command, Err: err}
	}
	return ParsePaths(output, s.separator)
}
