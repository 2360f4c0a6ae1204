package index

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ignatij/folio/internal/models"
	"github.com/ignatij/folio/internal/storage"
)

// DebounceInterval is how long the watcher waits for a burst of file events
// to settle before reporting a change.
var DebounceInterval = 200 * time.Millisecond

// ChangeCallback is called once per content kind after its directory settled.
type ChangeCallback func(kind models.Kind)

// Watch starts an fsnotify watcher on the content root and the per-kind
// directories in dirs (relative to root) and runs until ctx is cancelled.
//
// A kind directory that does not exist yet is picked up when it is created
// under root. Events on markdown files are debounced per kind; cb receives
// each changed kind once the burst is over.
func Watch(ctx context.Context, root string, dirs map[string]models.Kind, logger *slog.Logger, cb ChangeCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	root = filepath.Clean(root)
	if err := w.Add(root); err != nil {
		return err
	}

	kinds := make(map[string]models.Kind, len(dirs))
	for rel, kind := range dirs {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		kinds[abs] = kind
		if err := w.Add(abs); err != nil {
			logger.Debug("watcher: directory not watched yet", slog.String("dir", abs), slog.String("error", err.Error()))
		}
	}

	logger.Info("watcher: started", slog.String("root", root))

	pending := make(map[models.Kind]struct{})
	var timer *time.Timer
	var timerCh <-chan time.Time

	schedule := func(kind models.Kind) {
		pending[kind] = struct{}{}
		if timer == nil {
			timer = time.NewTimer(DebounceInterval)
			timerCh = timer.C
		} else {
			timer.Reset(DebounceInterval)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			changed := make([]models.Kind, 0, len(pending))
			for k := range pending {
				changed = append(changed, k)
			}
			clear(pending)
			slices.Sort(changed)
			for _, k := range changed {
				logger.Debug("watcher: content changed", slog.String("kind", string(k)))
				if cb != nil {
					cb(k)
				}
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name := filepath.Clean(ev.Name)

			// A kind directory appeared (or was replaced): watch it and rescan.
			if kind, isDir := kinds[name]; isDir {
				if ev.Op&fsnotify.Create != 0 {
					if addErr := w.Add(name); addErr != nil {
						logger.Warn("watcher: add dir failed", slog.String("dir", name), slog.String("error", addErr.Error()))
					} else {
						logger.Debug("watcher: watching new dir", slog.String("dir", name))
					}
				}
				schedule(kind)
				continue
			}

			if !strings.HasSuffix(name, storage.MarkdownExt) {
				continue
			}
			kind, ok := kinds[filepath.Dir(name)]
			if !ok {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			schedule(kind)

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
