package gen

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch regenerates the bindings whenever the schema document changes.
// It blocks until the context is canceled. Rapid write bursts, as editors
// produce on save, are coalesced into a single regeneration.
func Watch(ctx context.Context, cfg *Config) error {
	const debounce = 250 * time.Millisecond

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory rather than the file: editors replace files on
	// save, which drops a watch on the file itself.
	dir := filepath.Dir(cfg.Schema)
	if err := watcher.Add(dir); err != nil {
		return err
	}
	target := filepath.Clean(cfg.Schema)

	regen := func() {
		g, err := NewGenerator(cfg)
		if err != nil {
			slog.Error("schema reload failed", "schema", cfg.Schema, "err", err)
			return
		}
		if err := g.Generate(ctx); err != nil {
			slog.Error("regeneration failed", "schema", cfg.Schema, "err", err)
			return
		}
	}
	regen()
	slog.Info("watching schema", "schema", cfg.Schema)

	var timer *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "err", err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case <-pending:
			slog.Info("schema changed, regenerating", "schema", cfg.Schema)
			regen()
		}
	}
}
