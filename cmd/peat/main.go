package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"unicode"

	"peat/internal/config"
	"peat/internal/logging"
	"peat/internal/process"
	"peat/internal/version"
	"peat/internal/watcher"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, out, errOut io.Writer) int {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt)
	defer signal.Stop(signalCh)

	return runWithSignals(args, stdin, out, errOut, os.LookupEnv, signalCh)
}

func runWithSignals(args []string, stdin io.Reader, out, errOut io.Writer, lookupEnv func(string) (string, bool), signalCh <-chan os.Signal) int {
	parsed, err := parseArgs(args, lookupEnv, out)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitCodeSuccess
		}
		return reportError(errOut, err)
	}
	if parsed.ShowVersion {
		fmt.Fprintln(out, version.Line("peat"))
		return exitCodeSuccess
	}

	input, err := readInput(stdin, signalCh)
	if err != nil {
		if errors.Is(err, errInterrupted) {
			fmt.Fprintln(out)
			return exitCodeInterrupt
		}
		return reportError(errOut, fmt.Errorf("read standard input: %w", err))
	}

	pathsCommand := ""
	if parsed.Options.Dynamic {
		pathsCommand = strings.TrimRightFunc(string(input), unicode.IsSpace)
	}
	cfg, err := parsed.Options.Build(parsed.Command, pathsCommand)
	if err != nil {
		return reportError(errOut, usageErr(err))
	}

	logger := logging.NewLoggerWithOutput(cfg.MinLogLevel(), out, logging.FormatPlain)

	registry := process.NewRegistry()
	runner := &process.Runner{
		Shell:    cfg.Shell,
		Stdin:    stdin,
		Stdout:   out,
		Stderr:   errOut,
		Registry: registry,
	}

	source, err := newSource(cfg, input, runner)
	if err != nil {
		return reportError(errOut, err)
	}

	loop, err := watcher.NewLoop(watcher.LoopOptions{
		Config: cfg,
		Source: source,
		Runner: runner,
		Logger: logger,
	})
	if err != nil {
		return reportError(errOut, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- loop.Run(ctx)
	}()

	select {
	case sig := <-signalCh:
		cancel()
		return interrupt(out, logger, registry, sig)
	case err := <-done:
		// A signal that raced with a failing command still counts as an interrupt.
		select {
		case sig := <-signalCh:
			return interrupt(out, logger, registry, sig)
		default:
		}
		return reportError(errOut, err)
	}
}

func newSource(cfg config.Config, input []byte, runner watcher.OutputRunner) (watcher.PathSource, error) {
	if cfg.Dynamic {
		return watcher.NewDynamicSource(string(input), cfg.Separator, runner)
	}
	return watcher.NewStaticSource(input, cfg.Separator, nil)
}

// readInput reads standard input to EOF, giving up early on an interrupt.
func readInput(stdin io.Reader, signalCh <-chan os.Signal) ([]byte, error) {
	if stdin == nil {
		return nil, nil
	}
	type result struct {
		data []byte
		err  error
	}
	resultCh := make(chan result, 1)
	go func() {
		data, err := io.ReadAll(stdin)
		resultCh <- result{data: data, err: err}
	}()
	select {
	case res := <-resultCh:
		return res.data, res.err
	case <-signalCh:
		return nil, errInterrupted
	}
}

// interrupt forwards the signal to any running command and exits without
// waiting for it.
func interrupt(out io.Writer, logger *logging.Logger, registry *process.Registry, sig os.Signal) int {
	fmt.Fprintln(out)
	logger.Debug("interrupt received", map[string]string{"signal": sig.String()})
	if err := registry.InterruptAll(); err != nil {
		logger.Debug("interrupt children failed", map[string]string{"error": err.Error()})
	}
	return exitCodeInterrupt
}
