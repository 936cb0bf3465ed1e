// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package appicon

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.astrophena.name/base/logger"

	"github.com/fsnotify/fsnotify"
)

// Used in tests.
var (
	watchReadyHook func()          // called when Watch started watching the source
	regenerateHook func(err error) // called after each regeneration
)

// Editors tend to write a file in several steps, so wait a bit before
// regenerating.
const debounceTimeout = 250 * time.Millisecond

// debouncer delays execution of a function until a specified duration has
// passed without any new events.
type debouncer struct {
	d  time.Duration
	mu sync.Mutex
	f  func()
	t  *time.Timer
}

func newDebouncer(d time.Duration, f func()) *debouncer {
	return &debouncer{d: d, f: f}
}

// Do schedules a function to be executed.
func (d *debouncer) Do() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.t != nil {
		d.t.Stop()
	}

	d.t = time.AfterFunc(d.d, d.f)
}

// Stop cancels a scheduled execution, if any.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.t != nil {
		d.t.Stop()
	}
}

// Watch generates an icon set and regenerates it every time the source image
// changes, until ctx is canceled. Generation failures are logged and don't
// stop watching, so the source image may be missing when Watch starts. The
// directory of the source image is created if it doesn't exist.
func Watch(ctx context.Context, c *Config) error {
	c.setDefaults()

	var (
		mu   sync.Mutex // serializes generations started by the debouncer
		hook = regenerateHook
	)
	regenerate := func() {
		mu.Lock()
		defer mu.Unlock()
		err := Generate(ctx, c)
		if err != nil {
			logger.Error(ctx, "failed to generate icons", slog.Any("err", err))
		}
		if hook != nil {
			hook(err)
		}
	}

	logger.Info(ctx, "performing an initial generation")
	regenerate()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors often replace files instead of writing to them, so watch the
	// parent directory.
	srcDir := filepath.Dir(c.Src)
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		return err
	}
	if err := watcher.Add(srcDir); err != nil {
		return err
	}
	src := filepath.Clean(c.Src)

	debouncer := newDebouncer(debounceTimeout, regenerate)
	defer debouncer.Stop()

	logger.Info(ctx, "started watching for changes", slog.String("src", c.Src))
	if watchReadyHook != nil {
		watchReadyHook()
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != src || !shouldRegenerate(event.Name, event.Op) {
				continue
			}
			logger.Info(ctx, "detected change, scheduling generation",
				slog.String("name", event.Name),
				slog.Any("op", event.Op),
			)
			debouncer.Do()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error(ctx, "watcher failed", slog.Any("err", err))
		case <-ctx.Done():
			logger.Info(ctx, "stopped watching")
			return nil
		}
	}
}

// Adapted from
// https://github.com/brandur/modulir/blob/1ff912fdc45a79cb4d8d9f199d213ae9c3598cbd/watch.go#L201.
func shouldRegenerate(path string, op fsnotify.Op) bool {
	base := filepath.Base(path)

	// Mac OS' worst mistake.
	if base == ".DS_Store" {
		return false
	}

	// Vim creates this temporary file to see whether it can write into a target
	// directory.
	if base == "4913" {
		return false
	}

	// Vim backups.
	if strings.HasSuffix(base, "~") {
		return false
	}

	// Chmod doesn't change pixels and rename is followed by a create.
	return op.Has(fsnotify.Create) || op.Has(fsnotify.Write) || op.Has(fsnotify.Remove)
}
