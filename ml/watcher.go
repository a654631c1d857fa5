package ml

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchModel reloads the predictor bundle whenever the artifact on disk
// changes, so a retrain swaps in without a restart. Writers replace the
// file, so the parent directory is watched rather than the file itself.
func WatchModel(path string, predictor *Predictor, logger *zap.Logger) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	target := filepath.Clean(path)
	go func() {
		var lastReload time.Time
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				// Editors and atomic renames fire bursts of events.
				if time.Since(lastReload) < time.Second {
					continue
				}
				lastReload = time.Now()

				bundle, err := LoadBundle(path)
				if err != nil {
					logger.Warn("model reload failed", zap.String("path", path), zap.Error(err))
					continue
				}
				predictor.Swap(bundle)
				logger.Info("model reloaded",
					zap.String("path", path),
					zap.Float64("test_mae", bundle.Stats.Test.MAE),
					zap.Float64("test_r2", bundle.Stats.Test.R2),
				)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("model watcher error", zap.Error(err))
			}
		}
	}()
	return watcher, nil
}
