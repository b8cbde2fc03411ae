package main

import (
	"errors"
	"fmt"
	"io"

	"peat/internal/watcher"
)

var errInterrupted = errors.New("interrupted")

// usageError marks failures caused by how peat was invoked. They are
// reported together with the usage text.
type usageError struct {
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

func usageErr(err error) error {
	if err == nil {
		return nil
	}
	return &usageError{err: err}
}

func usageErrf(format string, args ...any) error {
	return usageErr(fmt.Errorf(format, args...))
}

func isUsageError(err error) bool {
	var target *usageError
	if errors.As(err, &target) {
		return true
	}
	return errors.Is(err, watcher.ErrNoPaths) || errors.Is(err, watcher.ErrNoPathsCommand)
}

func reportError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "ERROR: %s\n", err)
	if isUsageError(err) {
		fmt.Fprintln(errOut, "")
		printUsage(errOut)
	}
	return exitCodeError
}
