package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
)

var (
	ErrNoPaths        = errors.New("no paths to watch were given on standard input")
	ErrNoPathsCommand = errors.New("no command to generate watch list was given on standard input")
	ErrPathNotFound   = errors.New("path to watch does not exist")
)

// StatFunc fetches file metadata. os.Stat is used unless a test swaps it.
type StatFunc func(path string) (fs.FileInfo, error)

func defaultStat(stat StatFunc) StatFunc {
	if stat == nil {
		return os.Stat
	}
	return stat
}

// WatchSet is a set of absolute paths.
type WatchSet map[string]struct{}

func NewWatchSet(paths ...string) WatchSet {
	set := make(WatchSet, len(paths))
	for _, path := range paths {
		set[path] = struct{}{}
	}
	return set
}

func (s WatchSet) Len() int {
	return len(s)
}

func (s WatchSet) Contains(path string) bool {
	_, ok := s[path]
	return ok
}

// Sorted lists the paths in lexical order.
func (s WatchSet) Sorted() []string {
	paths := make([]string, 0, len(s))
	for path := range s {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// PathSource produces the set of paths to check.
type PathSource interface {
	Paths(ctx context.Context) (WatchSet, error)
}

// CommandRunner runs shell command strings for the loop.
type CommandRunner interface {
	Run(ctx context.Context, command string) error
	Clear(ctx context.Context) error
}

// OutputRunner runs a shell command string and returns its stdout.
type OutputRunner interface {
	Output(ctx context.Context, command string) ([]byte, error)
}

// StatError is a metadata failure other than the path being gone. The watch
// session cannot recover from it.
type StatError struct {
	Path string
	Err  error
}

func (e *StatError) Error() string {
	return fmt.Sprintf("stat %q: %v", e.Path, e.Err)
}

func (e *StatError) Unwrap() error {
	return e.Err
}

// GeneratorError reports that the dynamic paths command failed.
type GeneratorError struct {
	Command string
	Err     error
}

func (e *GeneratorError) Error() string {
	return fmt.Sprintf("command to generate watch list failed: %v", e.Err)
}

func (e *GeneratorError) Unwrap() error {
	return e.Err
}
