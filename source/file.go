package source

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/thisisjab/dbir/entity"
)

type FileSourceConfig struct {
	Name  string `yaml:"name"`
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// FileSource reads a DBIR file once, or again every time it changes when
// watching is enabled.
type FileSource struct {
	cfg    FileSourceConfig
	logger *slog.Logger
}

func NewFileSource(logger *slog.Logger, cfg FileSourceConfig) (*FileSource, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("file path is required")
	}
	if cfg.Name == "" {
		cfg.Name = cfg.Path
	}

	return &FileSource{cfg: cfg, logger: logger}, nil
}

func (f *FileSource) Name() string {
	return f.cfg.Name
}

func (f *FileSource) Provide(ctx context.Context, units chan<- entity.Unit) error {
	text, err := os.ReadFile(f.cfg.Path)
	if err != nil {
		return fmt.Errorf("cannot read file: %w", err)
	}

	if err := f.send(ctx, units, text); err != nil || !f.cfg.Watch {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cannot create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often save by writing a new file and renaming it over the old
	// one, which a watch on the file itself would miss.
	path := filepath.Clean(f.cfg.Path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("cannot add directory to watcher: %w", err)
	}

	last := text

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				f.logger.Debug("fsnotify watcher channel is closed.")
				return nil
			}
			if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			text, err := os.ReadFile(path)
			if err != nil {
				f.logger.Warn("cannot read changed file.", "path", path, "error", err)
				continue
			}
			if bytes.Equal(text, last) {
				continue
			}
			last = text

			if err := f.send(ctx, units, text); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

func (f *FileSource) send(ctx context.Context, units chan<- entity.Unit, text []byte) error {
	u := entity.Unit{
		Source:    f.cfg.Name,
		Name:      filepath.Base(f.cfg.Path),
		Text:      text,
		Timestamp: time.Now(),
	}

	select {
	case units <- u:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
