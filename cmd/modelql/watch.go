package main

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// defaultDebounce groups the bursts of events editors produce on save.
const defaultDebounce = 200 * time.Millisecond

// watchModels calls fn whenever a file matching one of the patterns is
// written or created, until ctx is done. Directories are watched instead of
// files so atomic saves are seen. A failing fn is logged, not returned.
func watchModels(ctx context.Context, patterns []string, debounce time.Duration, logger zerolog.Logger, fn func(context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	var dirs []string
	for _, p := range patterns {
		if dir := filepath.Dir(p); !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch directory: %w", err)
		}
		logger.Info().Str("path", dir).Msg("watching model files")
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !matchAny(patterns, event.Name) {
				continue
			}
			logger.Debug().
				Str("event", event.Op.String()).
				Str("path", event.Name).
				Msg("model file changed")
			timer.Reset(debounce)

		case <-timer.C:
			if err := fn(ctx); err != nil {
				logger.Error().Err(err).Msg("generate failed")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("file watcher error")

		case <-ctx.Done():
			return nil
		}
	}
}

func matchAny(patterns []string, name string) bool {
	return slices.ContainsFunc(patterns, func(p string) bool {
		ok, err := filepath.Match(p, name)
		return err == nil && ok
	})
}
