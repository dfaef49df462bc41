package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"pushmic/internal/hotkey"
)

// Store holds the live configuration and serves the current trigger to the
// input dispatcher. Watch keeps it synchronized with the config file so
// settings edits apply to in-flight gestures without a restart.
type Store struct {
	path string
	log  *slog.Logger

	mu      sync.RWMutex
	cfg     Config
	trigger hotkey.Config

	onReload func(Config)
}

// NewStore builds a store around an already-loaded config. The trigger is
// parsed eagerly; Load has already validated it.
func NewStore(cfg Config, path string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	trigger, err := cfg.Hotkey.TriggerConfig()
	if err != nil {
		return nil, err
	}
	return &Store{path: path, log: log, cfg: cfg, trigger: trigger}, nil
}

// Trigger implements ports.TriggerSource.
func (s *Store) Trigger() hotkey.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trigger
}

// Config returns the full current configuration.
func (s *Store) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// OnReload registers a callback invoked after each successful reload. It
// must be set before Watch starts.
func (s *Store) OnReload(fn func(Config)) {
	s.onReload = fn
}

// Watch reloads the store whenever the config file changes, until ctx is
// done. A reload that fails to parse keeps the previous configuration.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files on save and
	// the watch on the old inode would go stale.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("watch config directory: %w", err)
	}

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		var fired <-chan time.Time
		if debounce != nil {
			fired = debounce.C
		}

		select {
		case <-ctx.Done():
			return nil

		case <-fired:
			debounce = nil
			s.reload()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Editors emit bursts of events per save; coalesce them.
			if debounce == nil {
				debounce = time.NewTimer(100 * time.Millisecond)
			} else {
				debounce.Reset(100 * time.Millisecond)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("config watcher error", "error", err)
		}
	}
}

func (s *Store) reload() {
	cfg, err := Load(s.path)
	if err != nil {
		s.log.Warn("config reload failed, keeping previous settings", "error", err)
		return
	}
	trigger, err := cfg.Hotkey.TriggerConfig()
	if err != nil {
		s.log.Warn("config reload failed, keeping previous settings", "error", err)
		return
	}

	s.mu.Lock()
	s.cfg = cfg
	s.trigger = trigger
	s.mu.Unlock()

	s.log.Info("configuration reloaded", "trigger", cfg.Hotkey.Trigger)
	if s.onReload != nil {
		s.onReload(cfg)
	}
}
