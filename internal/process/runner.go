package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

var ErrNoShell = errors.New("no shell configured")

// Runner executes command strings through a shell, one at a time.
type Runner struct {
	Shell    []string
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Registry *Registry
}

// Run executes command and blocks until it exits. The child shares the
// runner's streams. A non-zero exit is returned as *exec.ExitError.
func (r *Runner) Run(ctx context.Context, command string) error {
	cmd, err := r.shellCommand(command)
	if err != nil {
		return err
	}
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return r.execute(ctx, cmd, "command")
}

// Output executes command and returns what it wrote to stdout. Its stderr
// goes to the runner's stderr.
func (r *Runner) Output(ctx context.Context, command string) ([]byte, error) {
	cmd, err := r.shellCommand(command)
	if err != nil {
		return nil, err
	}
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = r.Stderr
	if err := r.execute(ctx, cmd, "paths command"); err != nil {
		return stdout.Bytes(), err
	}
	return stdout.Bytes(), nil
}

// Clear runs the platform clear-screen command.
func (r *Runner) Clear(ctx context.Context) error {
	args := clearArgs()
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return r.execute(ctx, cmd, "clear")
}

func (r *Runner) shellCommand(command string) (*exec.Cmd, error) {
	if len(r.Shell) == 0 {
		return nil, ErrNoShell
	}
	args := append(append([]string{}, r.Shell[1:]...), command)
	return exec.Command(r.Shell[0], args...), nil
}

func (r *Runner) execute(ctx context.Context, cmd *exec.Cmd, name string) error {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	if err := r.Registry.Start(cmd, name); err != nil {
		if errors.Is(err, ErrRegistryClosed) {
			return err
		}
		return fmt.Errorf("start %s: %w", name, err)
	}
	defer r.Registry.Unregister(cmd.Process.Pid)
	return cmd.Wait()
}
