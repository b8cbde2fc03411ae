package watcher

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"peat/internal/config"
	"peat/internal/logging"
)

type LoopOptions struct {
	Config config.Config
	Source PathSource
	Runner CommandRunner
	Logger *logging.Logger
	// Sleep waits between checks. It must return ctx.Err() when ctx ends.
	Sleep func(ctx context.Context, d time.Duration) error
	Now   func() time.Time
	Stat  StatFunc
}

// Loop is the watch loop. It is not safe for concurrent use.
type Loop struct {
	cfg      config.Config
	source   PathSource
	runner   CommandRunner
	logger   *logging.Logger
	sleep    func(ctx context.Context, d time.Duration) error
	now      func() time.Time
	stat     StatFunc
	interval time.Duration
	detector *Detector
}

func NewLoop(options LoopOptions) (*Loop, error) {
	if options.Source == nil {
		return nil, errors.New("watch loop requires a path source")
	}
	if options.Runner == nil {
		return nil, errors.New("watch loop requires a command runner")
	}
	sleep := options.Sleep
	if sleep == nil {
		sleep = sleepContext
	}
	return &Loop{
		cfg:    options.Config,
		source: options.Source,
		runner: options.Runner,
		logger: options.Logger,
		sleep:  sleep,
		now:    options.Now,
		stat:   options.Stat,
	}, nil
}

// Interval returns the poll interval chosen at startup. It is zero before
// Run has resolved the initial watch set.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Run performs startup and then polls until ctx ends or a fatal error occurs.
// It never returns nil.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.Start(ctx); err != nil {
		return err
	}
	for {
		if err := l.sleep(ctx, l.interval); err != nil {
			return err
		}
		if _, err := l.Step(ctx); err != nil {
			return err
		}
	}
}

// Start resolves the initial watch set, fixes the interval, logs the banner
// and runs the command once without clearing the screen.
func (l *Loop) Start(ctx context.Context) error {
	paths, err := l.source.Paths(ctx)
	if err != nil {
		return err
	}
	l.interval = ResolveInterval(l.cfg, paths.Len())
	l.detector = NewDetector(DetectorOptions{
		Interval: l.interval,
		Now:      l.now,
		Stat:     l.stat,
	})
	l.banner(paths)
	return l.runCommand(ctx)
}

// Step resolves the watch set, checks it once and reruns the command when
// something changed. It reports whether the command was rerun.
func (l *Loop) Step(ctx context.Context) (bool, error) {
	if l.detector == nil {
		return false, errors.New("watch loop not started")
	}
	paths, err := l.source.Paths(ctx)
	if err != nil {
		return false, err
	}
	changed, err := l.detector.Check(paths)
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}
	if l.cfg.Clear {
		if err := l.runner.Clear(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return false, ctxErr
			}
			l.logger.Warn("clear screen failed", map[string]string{"error": err.Error()})
		}
	}
	return true, l.runCommand(ctx)
}

func (l *Loop) runCommand(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.logger.Info("running: "+l.cfg.Command, nil)
	err := l.runner.Run(ctx, l.cfg.Command)
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		l.logger.Debug("command exited", map[string]string{"status": strconv.Itoa(exitErr.ExitCode())})
		return nil
	}
	return fmt.Errorf("run command: %w", err)
}

func (l *Loop) banner(paths WatchSet) {
	if l.logger == nil || !l.logger.Enabled(logging.LevelInfo) {
		return
	}
	if dynamic, ok := l.source.(*DynamicSource); ok {
		l.logger.Info("Running the following command to generate watch list:", nil)
		l.logger.Info("  "+dynamic.Command(), nil)
		l.logger.Info("", nil)
	}
	l.logger.Info("Watching the following paths:", nil)
	for _, path := range paths.Sorted() {
		l.logger.Info("  "+path, nil)
	}
	l.logger.Info("", nil)
	l.logger.Info(fmt.Sprintf("Checking for changes every %d milliseconds.", l.interval.Milliseconds()), nil)
	l.logger.Info("", nil)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
