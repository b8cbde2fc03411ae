//go:build !windows

package process

import (
	"errors"
	"os"
	"syscall"
)

func interruptProcess(proc *os.Process) error {
	if proc == nil {
		return ErrProcessNotFound
	}
	err := proc.Signal(syscall.SIGINT)
	if errors.Is(err, os.ErrProcessDone) || errors.Is(err, syscall.ESRCH) {
		return ErrProcessNotFound
	}
	return err
}

func clearArgs() []string {
	return []string{"clear"}
}
