package profile

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// ChangeEvent reports that one or more dataset files changed.
type ChangeEvent struct {
	Paths []string
	At    time.Time
}

// Watcher watches dataset files and emits a debounced ChangeEvent after a
// burst of writes. At most one event is pending at a time: a change arriving
// while an event is still unread is folded into it.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]struct{}
	debounce time.Duration
	logger   zerolog.Logger

	changes chan ChangeEvent
	stopCh  chan struct{}
	doneCh  chan struct{}

	mu      sync.Mutex
	running bool
	stopped bool
}

// NewWatcher creates a watcher for paths. It does not start watching until Start.
func NewWatcher(paths []string, debounce time.Duration, logger zerolog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	files := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		abs, absErr := filepath.Abs(p)
		if absErr != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("resolving %s: %w", p, absErr)
		}
		files[abs] = struct{}{}
	}

	return &Watcher{
		watcher:  fw,
		files:    files,
		debounce: debounce,
		logger:   logger,
		changes:  make(chan ChangeEvent, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Changes delivers debounced change events. It is closed by Stop.
func (w *Watcher) Changes() <-chan ChangeEvent {
	return w.changes
}

// Start watches the directories holding the dataset files. Directories are
// watched instead of files so editors that save by rename are still seen.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running || w.stopped {
		return nil
	}

	dirs := make(map[string]struct{})
	for f := range w.files {
		dirs[filepath.Dir(f)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		w.logger.Debug().Str("dir", dir).Msg("watching dataset directory")
	}

	w.running = true
	go w.run(ctx)
	return nil
}

// Stop ends watching and closes Changes. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	running := w.running
	w.mu.Unlock()

	close(w.stopCh)
	if running {
		<-w.doneCh
	} else {
		close(w.changes)
	}

	if err := w.watcher.Close(); err != nil {
		w.logger.Warn().Err(err).Msg("closing file watcher")
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	defer close(w.changes)

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending = make(map[string]struct{})
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			pending[filepath.Clean(event.Name)] = struct{}{}
			if w.debounce <= 0 {
				w.emit(pending)
				pending = make(map[string]struct{})
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("file watcher error")

		case <-timerC:
			timerC = nil
			w.emit(pending)
			pending = make(map[string]struct{})
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	_, ok := w.files[abs]
	return ok
}

func (w *Watcher) emit(pending map[string]struct{}) {
	if len(pending) == 0 {
		return
	}
	ev := ChangeEvent{At: time.Now()}
	for p := range pending {
		ev.Paths = append(ev.Paths, p)
	}

	select {
	case w.changes <- ev:
		w.logger.Debug().Strs("paths", ev.Paths).Msg("dataset files changed")
	default:
		// an unread event already covers this change
	}
}
