package content

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Store hands out the current content and swaps it when the source file
// changes.
type Store struct {
	path    string
	current atomic.Pointer[Content]
	logger  *slog.Logger
}

// NewStore loads content from path (or the embedded default).
func NewStore(path string, logger *slog.Logger) (*Store, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{path: path, logger: logger}
	s.current.Store(c)
	return s, nil
}

// StaticStore wraps already loaded content.
func StaticStore(c *Content) *Store {
	s := &Store{logger: slog.Default()}
	s.current.Store(c)
	return s
}

// Get returns the current content.
func (s *Store) Get() *Content { return s.current.Load() }

// Reload re-reads the source file. Invalid content is rejected and the
// previous content stays in place.
func (s *Store) Reload() error {
	c, err := Load(s.path)
	if err != nil {
		return err
	}
	s.current.Store(c)
	return nil
}

// Watch reloads the content whenever its file is written, until ctx is done.
// It watches the parent directory so editors that replace the file by
// renaming are picked up. Watching the embedded default is a no-op.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating content watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("watching %s: %w", s.path, err)
	}
	target := filepath.Clean(s.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := s.Reload(); err != nil {
				s.logger.Warn("content reload failed, keeping previous content", "path", s.path, "error", err)
				continue
			}
			s.logger.Info("content reloaded", "path", s.path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("content watcher error", "error", err)
		}
	}
}
