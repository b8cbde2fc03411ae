//go:build windows

package process

import (
	"errors"
	"os"
)

// Windows cannot deliver a console interrupt to a single child, so the child
// is killed instead.
func interruptProcess(proc *os.Process) error {
	if proc == nil {
		return ErrProcessNotFound
	}
	err := proc.Kill()
	if errors.Is(err, os.ErrProcessDone) {
		return ErrProcessNotFound
	}
	return err
}

func clearArgs() []string {
	return []string{"cmd", "/C", "cls"}
}
