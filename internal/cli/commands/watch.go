package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/ecltoml/internal/cli/config"
)

// runWatch translates once, then again after every change to input until
// interrupted. Translation errors are reported and watching continues.
func runWatch(ctx context.Context, cmdCtx *CommandContext, input string, rebuild func() error) error {
	target, err := filepath.Abs(input)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", input, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", input, err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	debounce := cmdCtx.Cfg.Watch.Debounce
	if debounce <= 0 {
		debounce = config.DefaultDebounce
	}

	logger := cmdCtx.Logger
	run := func() {
		if err := rebuild(); err != nil && !isReported(err) {
			cmdCtx.Renderer.Error(err.Error())
		}
	}

	run()
	cmdCtx.Renderer.Muted(fmt.Sprintf("watching %s (Ctrl+C to stop)", input))
	return watchLoop(ctx, watcher.Events, watcher.Errors, target, debounce, run, logger)
}

// isReported reports whether err stands for defects already printed.
func isReported(err error) bool {
	return errors.Is(err, ErrTranslationFailed) || errors.Is(err, ErrStaleOutput)
}

// watchLoop calls rebuild once events for target have been quiet for debounce.
func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error,
	target string, debounce time.Duration, rebuild func(), logger *slog.Logger) error {
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("change detected", "file", event.Name, "op", event.Op.String())
			pending = time.After(debounce)

		case <-pending:
			pending = nil
			rebuild()

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}
