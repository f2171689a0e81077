package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/opmodel/buildcond/internal/conditionals"
	"github.com/opmodel/buildcond/internal/output"
)

// Watch resolves the manifest, then re-resolves whenever the manifest or the
// config file changes, until ctx is cancelled. A single Build is recycled
// across passes. Passes that leave the flag set unchanged are not reported.
//
// Failures of the first pass are returned. Later failures are logged and the
// watch continues with the last good result.
func Watch(ctx context.Context, opts WatchOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := opts.LoadConfig()
	if err != nil {
		return err
	}
	p := NewPipeline(cfg)

	manifestPath, err := filepath.Abs(opts.Resolve.ManifestPath)
	if err != nil {
		return fmt.Errorf("resolving manifest path: %w", err)
	}
	files := []string{manifestPath}

	var configPath string
	if opts.ConfigPath != "" {
		if configPath, err = filepath.Abs(opts.ConfigPath); err != nil {
			return fmt.Errorf("resolving config path: %w", err)
		}
		files = append(files, configPath)
	}

	// Watch before the first pass so edits made while it runs are not lost.
	changed, err := watchFiles(ctx, files, opts.Debounce)
	if err != nil {
		return err
	}

	b := conditionals.DefaultBuildConditionals()
	res, err := p.ResolveInto(ctx, opts.Resolve, b)
	if err != nil {
		return err
	}
	last := b.Clone()
	lastFingerprint := conditionals.Fingerprint(b)
	if err := opts.OnResult(res, nil); err != nil {
		return err
	}
	output.Info("watching for changes", "files", len(files))

	// Passes run on this goroutine only, so b is never shared.
	for {
		select {
		case <-ctx.Done():
			return nil
		case batch, ok := <-changed:
			if !ok {
				return nil
			}

			if configPath != "" && slices.Contains(batch, configPath) {
				cfg, err := opts.LoadConfig()
				if err != nil {
					output.Warn("config reload failed, keeping previous config", "err", err)
				} else {
					p = NewPipeline(cfg)
					output.Debug("config reloaded", "path", configPath)
				}
			}

			res, err := p.ResolveInto(ctx, opts.Resolve, b)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				output.Error("resolve failed", "err", err)
				continue
			}

			fp := conditionals.Fingerprint(b)
			if fp == lastFingerprint {
				output.Debug("build conditionals unchanged")
				continue
			}

			changes := conditionals.Changes(last, b)
			last = b.Clone()
			lastFingerprint = fp
			if err := opts.OnResult(res, changes); err != nil {
				return err
			}
		}
	}
}

// watchFiles reports changes to files in debounced batches. Parent
// directories are watched so files replaced by rename are still seen.
// The channel is closed when ctx is cancelled.
func watchFiles(ctx context.Context, files []string, debounce time.Duration) (<-chan []string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	tracked := make(map[string]bool, len(files))
	var dirs []string
	for _, f := range files {
		tracked[f] = true
		if dir := filepath.Dir(f); !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	batches := make(chan []string)

	go func() {
		defer watcher.Close()
		defer close(batches)

		timer := time.NewTimer(debounce)
		timer.Stop()
		pending := make(map[string]bool)

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				name := filepath.Clean(event.Name)
				if !tracked[name] || (!event.Has(fsnotify.Write) && !event.Has(fsnotify.Create)) {
					continue
				}
				pending[name] = true
				timer.Reset(debounce)

			case <-timer.C:
				if len(pending) == 0 {
					continue
				}
				batch := make([]string, 0, len(pending))
				for name := range pending {
					batch = append(batch, name)
				}
				slices.Sort(batch)
				clear(pending)

				select {
				case batches <- batch:
				case <-ctx.Done():
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				output.Warn("file watcher error", "err", err)
			}
		}
	}()

	return batches, nil
}
